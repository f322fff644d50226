package config

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

type Config struct {
	ConfigFile string        `json:"-"`
	LogLevel   zerolog.Level `json:"-"`

	LogLevelName string `json:"log_level"`
	LogFile      string `json:"log_file"`

	// empty means the embedded reference tables
	TablesDB string `json:"tables_db"`

	ListenPort         int     `json:"listen_port"`
	DefaultMaxVelocity float64 `json:"default_max_velocity"`
	ReportFormat       string  `json:"report_format"`

	EnableDatadog bool     `json:"enable_datadog"`
	DDAgentAddr   string   `json:"dd_agent_addr"`
	DDNamespace   string   `json:"dd_namespace"`
	DDTags        []string `json:"dd_tags"`
}

func Defaults() Config {
	return Config{
		LogLevelName:       "info",
		ListenPort:         8080,
		DefaultMaxVelocity: 1.5,
		ReportFormat:       "styled",
		DDAgentAddr:        "127.0.0.1:8125",
		DDNamespace:        "pompput.",
	}
}

// Load reads the JSON config file at path over the defaults. An empty path
// returns the defaults. Invalid files and values panic.
func Load(path string) Config {
	cfg := Defaults()
	cfg.ConfigFile = path

	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			panic("Failed to load config file: " + err.Error())
		}
		defer file.Close()

		if err := json.NewDecoder(file).Decode(&cfg); err != nil {
			panic("Failed to parse config file: " + err.Error())
		}
	}

	if cfg.ListenPort == 0 {
		cfg.ListenPort = 8080
	}
	if cfg.DefaultMaxVelocity == 0 {
		cfg.DefaultMaxVelocity = 1.5
	}
	cfg.LogLevel = ParseLogLevel(cfg.LogLevelName)

	cfg.validate()
	return cfg
}

func ParseLogLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func (cfg *Config) validate() {
	var problems []string

	if cfg.ListenPort < 1 || cfg.ListenPort > 65535 {
		problems = append(problems, "listen_port "+strconv.Itoa(cfg.ListenPort)+" out of range")
	}
	if cfg.DefaultMaxVelocity <= 0 {
		problems = append(problems, "default_max_velocity must be positive")
	}
	switch cfg.ReportFormat {
	case "text", "styled", "json":
	default:
		problems = append(problems, "report_format must be text, styled or json")
	}
	if cfg.EnableDatadog && cfg.DDAgentAddr == "" {
		problems = append(problems, "dd_agent_addr is required when enable_datadog is set")
	}

	if len(problems) > 0 {
		panic("Invalid config: " + strings.Join(problems, ", "))
	}
}
