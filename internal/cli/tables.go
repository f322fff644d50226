package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/thatsimonsguy/pompput-sizer/db"
	"github.com/thatsimonsguy/pompput-sizer/internal/model"
	"github.com/thatsimonsguy/pompput-sizer/internal/report"
	"github.com/thatsimonsguy/pompput-sizer/internal/tables"
)

var errNoTablesDB = errors.New("--tables-db (or tables_db in the config) is required")

var (
	rainDuration int
	rainPeriod   int
	rainDepth    float64

	fittingDN   int
	fittingName string
	fittingK    float64
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Inspect and maintain the reference tables",
}

var tablesSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the tables database and fill it with the embedded defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.TablesDB == "" {
			return errNoTablesDB
		}
		conn, err := db.Open(cfg.TablesDB)
		if err != nil {
			return err
		}
		defer conn.Close()
		return db.SeedDefaults(conn)
	},
}

var tablesShowCmd = &cobra.Command{
	Use:       "show [rainfall|fittings]",
	Short:     "Print the active reference tables",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"rainfall", "fittings"},
	RunE: func(cmd *cobra.Command, args []string) error {
		rain, fittings, err := loadTables()
		if err != nil {
			return err
		}
		which := ""
		if len(args) == 1 {
			which = args[0]
		}
		return showTables(cmd.OutOrStdout(), which, rain, fittings)
	},
}

var tablesSetRainfallCmd = &cobra.Command{
	Use:   "set-rainfall",
	Short: "Set the rainfall depth for a duration and return period",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.TablesDB == "" {
			return errNoTablesDB
		}
		conn, err := db.Open(cfg.TablesDB)
		if err != nil {
			return err
		}
		defer conn.Close()

		if err := db.SetRainfallDepth(conn, model.RainDuration(rainDuration), model.ReturnPeriod(rainPeriod), rainDepth); err != nil {
			return err
		}
		log.Info().Int("duration_min", rainDuration).Int("return_period", rainPeriod).Float64("depth_mm", rainDepth).Msg("Rainfall depth updated")
		return nil
	},
}

var tablesSetFittingCmd = &cobra.Command{
	Use:   "set-fitting",
	Short: "Set the K value of a fitting for a nominal diameter",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.TablesDB == "" {
			return errNoTablesDB
		}
		conn, err := db.Open(cfg.TablesDB)
		if err != nil {
			return err
		}
		defer conn.Close()

		if err := db.SetFittingK(conn, fittingDN, fittingName, fittingK); err != nil {
			return err
		}
		log.Info().Int("diameter_mm", fittingDN).Str("fitting", fittingName).Float64("k", fittingK).Msg("Fitting K updated")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tablesCmd)
	tablesCmd.AddCommand(tablesSeedCmd, tablesShowCmd, tablesSetRainfallCmd, tablesSetFittingCmd)

	tablesSetRainfallCmd.Flags().IntVar(&rainDuration, "duration", 0, "Storm duration in minutes")
	tablesSetRainfallCmd.Flags().IntVar(&rainPeriod, "period", 0, "Return period in years")
	tablesSetRainfallCmd.Flags().Float64Var(&rainDepth, "depth", 0, "Rainfall depth in mm")
	_ = tablesSetRainfallCmd.MarkFlagRequired("duration")
	_ = tablesSetRainfallCmd.MarkFlagRequired("period")
	_ = tablesSetRainfallCmd.MarkFlagRequired("depth")

	tablesSetFittingCmd.Flags().IntVar(&fittingDN, "dn", 0, "Nominal diameter in mm")
	tablesSetFittingCmd.Flags().StringVar(&fittingName, "name", "", "Fitting name")
	tablesSetFittingCmd.Flags().Float64Var(&fittingK, "k", 0, "Loss coefficient K")
	_ = tablesSetFittingCmd.MarkFlagRequired("dn")
	_ = tablesSetFittingCmd.MarkFlagRequired("name")
	_ = tablesSetFittingCmd.MarkFlagRequired("k")
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(report.Muted)).
		Headers(headers...)
}

// showTables renders the rainfall table as durations by return period and
// the fitting table as fittings by nominal diameter. An empty which prints
// both.
func showTables(w io.Writer, which string, rain *tables.RainfallTable, fittings *tables.FittingTable) error {
	switch which {
	case "", "rainfall", "fittings":
	default:
		return fmt.Errorf("unknown table %q", which)
	}

	if which == "" || which == "rainfall" {
		durations := rain.Durations()
		var periods []model.ReturnPeriod
		if len(durations) > 0 {
			periods = rain.ReturnPeriods(durations[0])
		}

		headers := []string{"Duration"}
		for _, rp := range periods {
			headers = append(headers, "T="+strconv.Itoa(int(rp)))
		}
		t := newTable(headers...)
		for _, d := range durations {
			row := []string{fmt.Sprintf("%d min", d)}
			for _, rp := range periods {
				depth, err := rain.Depth(d, rp)
				if err != nil {
					row = append(row, "-")
					continue
				}
				row = append(row, strconv.FormatFloat(depth, 'f', 0, 64))
			}
			t.Row(row...)
		}
		if _, err := fmt.Fprintf(w, "Rainfall depth (mm)\n%s\n", t.Render()); err != nil {
			return err
		}
	}

	if which == "" || which == "fittings" {
		diameters := fittings.Diameters()
		if len(diameters) == 0 {
			return nil
		}

		headers := []string{"Fitting"}
		for _, dn := range diameters {
			headers = append(headers, "DN"+strconv.Itoa(dn))
		}
		t := newTable(headers...)
		names, err := fittings.Fittings(diameters[0])
		if err != nil {
			return err
		}
		for _, fe := range names {
			row := []string{fe.Name}
			for _, dn := range diameters {
				k, err := fittings.K(dn, fe.Name)
				if err != nil {
					row = append(row, "-")
					continue
				}
				row = append(row, strconv.FormatFloat(k, 'f', 1, 64))
			}
			t.Row(row...)
		}
		if _, err := fmt.Fprintf(w, "Fitting loss coefficient K\n%s\n", t.Render()); err != nil {
			return err
		}
	}
	return nil
}
