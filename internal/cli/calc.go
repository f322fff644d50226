package cli

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/thatsimonsguy/pompput-sizer/internal/datadog"
	"github.com/thatsimonsguy/pompput-sizer/internal/hydraulics"
	"github.com/thatsimonsguy/pompput-sizer/internal/model"
	"github.com/thatsimonsguy/pompput-sizer/internal/report"
	"github.com/thatsimonsguy/pompput-sizer/internal/store"
)

var (
	designFile   string
	reportFormat string
	outFile      string
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Evaluate a design file and print the report",
	Long: `Evaluate a design JSON file and print the sizing report.

Advisories (switch-on level above the allowed maximum, inflow above pump
capacity) are reported but do not fail the command. Invalid input does.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCalc(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(calcCmd)
	calcCmd.Flags().StringVarP(&designFile, "design", "d", "", "Design JSON file")
	calcCmd.Flags().StringVar(&reportFormat, "format", "", "Report format: text, styled, json (default from config)")
	calcCmd.Flags().StringVarP(&outFile, "out", "o", "", "Write the report to a file instead of stdout")
	_ = calcCmd.MarkFlagRequired("design")
}

func runCalc(w io.Writer) error {
	design, err := store.New(designFile).Load()
	if err != nil {
		return err
	}

	res, err := evaluate(*design, "source:cli")
	if err != nil {
		return err
	}

	format := reportFormat
	if format == "" {
		format = cfg.ReportFormat
	}
	r := report.Build(*design, res)

	if outFile != "" {
		if err := store.WriteReport(outFile, r, format); err != nil {
			return err
		}
		log.Info().Str("path", outFile).Str("format", format).Msg("Report written")
		return nil
	}
	return r.Write(w, format)
}

// evaluate runs the design through an engine over the configured tables,
// logs advisories and records metrics.
func evaluate(design model.Design, source string) (model.DesignResult, error) {
	rain, fittings, err := loadTables()
	if err != nil {
		return model.DesignResult{}, err
	}
	if design.MaxVelocity == 0 {
		design.MaxVelocity = cfg.DefaultMaxVelocity
	}

	res, err := hydraulics.NewEngine(rain, fittings).Evaluate(design)
	if err != nil {
		log.Error().Err(err).Str("design", design.Name).Msg("Design rejected")
		return res, fmt.Errorf("design %q: %w", design.Name, err)
	}

	for _, a := range res.Advisories {
		log.Warn().Str("design", design.Name).Str("kind", string(a.Kind)).Msg(a.Message)
	}
	log.Info().
		Str("design", design.Name).
		Float64("inflow_m3s", res.InflowRateM3S).
		Float64("buffer_m3", res.Buffer.BufferVolumeM3).
		Float64("head_loss_m", res.HeadLoss.TotalHeadLossM).
		Msg("Design evaluated")
	datadog.RecordDesign(res, source)

	return res, nil
}
