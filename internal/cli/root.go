// Package cli holds the pompput commands.
package cli

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/thatsimonsguy/pompput-sizer/db"
	"github.com/thatsimonsguy/pompput-sizer/internal/config"
	"github.com/thatsimonsguy/pompput-sizer/internal/datadog"
	"github.com/thatsimonsguy/pompput-sizer/internal/logging"
	"github.com/thatsimonsguy/pompput-sizer/internal/tables"
)

var (
	configFile string
	logLevel   string
	tablesDB   string

	cfg = config.Defaults()
)

var rootCmd = &cobra.Command{
	Use:   "pompput",
	Short: "Pump sump sizing calculator",
	Long: `pompput sizes a pumped sump: design inflow from a catchment and the
RIONED storm tables, buffer volume and switching levels, discharge pipe head
loss and a recommended pipe diameter.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load(configFile)
		if logLevel != "" {
			cfg.LogLevelName = logLevel
			cfg.LogLevel = config.ParseLogLevel(logLevel)
		}
		if tablesDB != "" {
			cfg.TablesDB = tablesDB
		}

		logging.Init(cfg.LogLevel, cfg.LogFile)
		datadog.InitMetrics(&cfg)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		datadog.Close()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "JSON config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().StringVar(&tablesDB, "tables-db", "", "SQLite reference tables (default: embedded tables)")
}

// loadTables returns the reference tables from the configured database, or
// the embedded defaults when none is configured.
func loadTables() (*tables.RainfallTable, *tables.FittingTable, error) {
	if cfg.TablesDB == "" {
		return tables.DefaultRainfall(), tables.DefaultFittings(), nil
	}

	rain, fittings, err := db.LoadTables(cfg.TablesDB)
	if err != nil {
		return nil, nil, err
	}
	log.Debug().Str("path", cfg.TablesDB).Msg("Loaded reference tables from database")
	return rain, fittings, nil
}
