// Package report turns a sizing result into ordered, rounded result lines
// and renders them as plain text, styled terminal output or JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/thatsimonsguy/pompput-sizer/internal/model"
)

const Title = "Pump sump sizing report"

type Line struct {
	Key      string  `json:"key"`
	Label    string  `json:"label"`
	Value    float64 `json:"value"`
	Unit     string  `json:"unit"`
	Decimals int     `json:"-"`
}

// Text formats the line the way it appears in the report.
func (l Line) Text() string {
	v := formatFixed(l.Value, l.Decimals)
	if l.Unit == "" {
		return fmt.Sprintf("%s: %s", l.Label, v)
	}
	return fmt.Sprintf("%s: %s %s", l.Label, v, l.Unit)
}

type Report struct {
	Title      string             `json:"title"`
	Design     string             `json:"design,omitempty"`
	Lines      []Line             `json:"lines"`
	Advisories []model.Advisory   `json:"advisories,omitempty"`
	Result     model.DesignResult `json:"result"`
}

// Round rounds half away from zero to the given number of decimals.
func Round(x float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(x*p) / p
}

func formatFixed(v float64, decimals int) string {
	return fmt.Sprintf("%.*f", decimals, Round(v, decimals))
}

func line(key, label string, value float64, unit string, decimals int) Line {
	return Line{Key: key, Label: label, Value: Round(value, decimals), Unit: unit, Decimals: decimals}
}

// Build assembles the report lines for one design and its result.
func Build(d model.Design, res model.DesignResult) Report {
	b := res.Buffer
	h := res.HeadLoss

	lines := []Line{
		line("inflow_rate", "Inflow rate", res.InflowRateM3S*1000, "l/s", 1),
		line("pump_capacity", "Pump capacity", b.CapacityM3S*1000, "l/s", 1),
		line("run_time", "Pump run time", b.RunTimeSeconds, "s", 0),
		line("cross_section", "Sump cross-section", b.CrossSectionM2, "m²", 3),
		line("buffer_volume", "Buffer volume", b.BufferVolumeM3, "m³", 3),
		line("level_rise", "Level rise Δh", b.LevelRiseM, "m", 3),
		line("switch_off_level", "Switch-off level (sump bottom)", b.SwitchOffLevelM, "m NAP", 3),
		line("switch_on_level", "Switch-on level", b.SwitchOnLevelM, "m NAP", 3),
		line("max_allowed_level", "Maximum allowed level", b.MaxAllowedLevelM, "m NAP", 3),
		line("velocity", fmt.Sprintf("Velocity in DN%d", d.Pipe.NominalDiameterMM), h.VelocityMS, "m/s", 2),
		line("friction_loss", "Straight pipe loss", h.FrictionLossM, "m", 3),
		line("check_valve_k", "Check valve K", h.CheckValveK, "", 1),
		line("fitting_loss", "Fitting loss incl. check valve", h.FittingLossM, "m", 3),
		line("total_head_loss", "Total head loss", h.TotalHeadLossM, "m", 3),
		line("min_diameter", fmt.Sprintf("Minimum diameter at %.1f m/s", res.Diameter.MaxVelocityMS), res.Diameter.MinDiameterM*1000, "mm", 0),
	}
	if res.Diameter.NominalDiameterMM > 0 {
		lines = append(lines, line("nominal_diameter", "Suggested nominal diameter DN", float64(res.Diameter.NominalDiameterMM), "mm", 0))
	}

	return Report{
		Title:      Title,
		Design:     d.Name,
		Lines:      lines,
		Advisories: res.Advisories,
		Result:     res,
	}
}

// TextLines returns every report line including advisories, in order.
func (r Report) TextLines() []string {
	out := make([]string, 0, len(r.Lines)+len(r.Advisories))
	for _, l := range r.Lines {
		out = append(out, l.Text())
	}
	for _, a := range r.Advisories {
		out = append(out, "WARNING: "+a.Message)
	}
	return out
}

// Render writes the plain text report.
func (r Report) Render(w io.Writer) error {
	var sb strings.Builder
	sb.WriteString(r.Title + "\n")
	if r.Design != "" {
		sb.WriteString(r.Design + "\n")
	}
	sb.WriteString("\n")
	for _, l := range r.TextLines() {
		sb.WriteString(l + "\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func (r Report) RenderJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// Write renders the report in the named format: text, styled or json.
func (r Report) Write(w io.Writer, format string) error {
	switch format {
	case "json":
		return r.RenderJSON(w)
	case "styled":
		return r.RenderStyled(w)
	case "text", "":
		return r.Render(w)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}
