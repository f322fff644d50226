package cli

import (
	"github.com/spf13/cobra"

	"github.com/thatsimonsguy/pompput-sizer/internal/api"
)

var listenPort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculations over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		rain, fittings, err := loadTables()
		if err != nil {
			return err
		}

		port := cfg.ListenPort
		if listenPort != 0 {
			port = listenPort
		}
		return api.NewServer(rain, fittings, &cfg).Start(port)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&listenPort, "port", "p", 0, "Listen port (default from config)")
}
