package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg := Load("")

	assert.Equal(t, 8080, cfg.ListenPort)
	assert.Equal(t, 1.5, cfg.DefaultMaxVelocity)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
	assert.Equal(t, "", cfg.TablesDB)
	assert.False(t, cfg.EnableDatadog)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `{
		"log_level": "debug",
		"tables_db": "data/tables.db",
		"listen_port": 9090,
		"report_format": "json",
		"enable_datadog": true,
		"dd_tags": ["site:zaandam"]
	}`)

	cfg := Load(path)

	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
	assert.Equal(t, "data/tables.db", cfg.TablesDB)
	assert.Equal(t, 9090, cfg.ListenPort)
	assert.Equal(t, "json", cfg.ReportFormat)
	assert.Equal(t, 1.5, cfg.DefaultMaxVelocity)
	assert.Equal(t, "127.0.0.1:8125", cfg.DDAgentAddr)
	assert.Equal(t, []string{"site:zaandam"}, cfg.DDTags)
}

func TestValidate_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"port out of range", Config{ListenPort: 70000, DefaultMaxVelocity: 1.5, ReportFormat: "text"}},
		{"negative max velocity", Config{ListenPort: 8080, DefaultMaxVelocity: -1, ReportFormat: "text"}},
		{"unknown report format", Config{ListenPort: 8080, DefaultMaxVelocity: 1.5, ReportFormat: "pdf"}},
		{"datadog without agent", Config{ListenPort: 8080, DefaultMaxVelocity: 1.5, ReportFormat: "text", EnableDatadog: true}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Panics(t, func() { tc.cfg.validate() })
		})
	}
}

func TestLoad_MissingFilePanics(t *testing.T) {
	assert.Panics(t, func() { Load(filepath.Join(t.TempDir(), "nope.json")) })
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLogLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLogLevel("warning"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLogLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, ParseLogLevel("bogus"))
}
