package cli

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/thatsimonsguy/pompput-sizer/internal/form"
	"github.com/thatsimonsguy/pompput-sizer/internal/report"
	"github.com/thatsimonsguy/pompput-sizer/internal/store"
)

var saveFile string

var formCmd = &cobra.Command{
	Use:   "form",
	Short: "Enter a design interactively and print the report",
	RunE: func(cmd *cobra.Command, args []string) error {
		rain, fittings, err := loadTables()
		if err != nil {
			return err
		}

		design, err := form.New(rain, fittings).Run()
		if err != nil {
			return err
		}

		if saveFile != "" {
			if err := store.New(saveFile).Save(&design); err != nil {
				return err
			}
			log.Info().Str("path", saveFile).Msg("Design saved")
		}

		res, err := evaluate(design, "source:form")
		if err != nil {
			return err
		}
		return report.Build(design, res).Write(cmd.OutOrStdout(), "styled")
	},
}

func init() {
	rootCmd.AddCommand(formCmd)
	formCmd.Flags().StringVar(&saveFile, "save", "", "Save the entered design to a JSON file")
}
