// Package form collects a design interactively in the terminal. Field
// values are kept as strings while the form runs and converted to a
// model.Design afterwards.
package form

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/thatsimonsguy/pompput-sizer/internal/model"
	"github.com/thatsimonsguy/pompput-sizer/internal/report"
	"github.com/thatsimonsguy/pompput-sizer/internal/tables"
)

// Form holds the raw field values. The zero value is not usable; call New.
type Form struct {
	rainfall *tables.RainfallTable
	fittings *tables.FittingTable

	Name string

	InflowMode   string
	Coefficient  string
	Area         string
	ReturnPeriod string
	Duration     string
	FixedRate    string

	CapacityUnit    string
	Capacity        string
	RunTimeMode     string
	RunTime         string
	SwitchesPerHour string

	Shape    string
	Diameter string
	Width    string
	Length   string

	GroundLevel  string
	InvertLevel  string
	SumpDepth    string
	SafetyMargin string

	PipeLength     string
	PipeDiameter   string
	FrictionFactor string

	// fitting counts per nominal diameter, then fitting name
	FittingCounts map[int]map[string]*string

	CheckValveMode string
	CheckValveK    string
}

// New returns a form prefilled with the defaults of a typical municipal
// sump: 5000 m² at C=0.9, a 60 l/s pump and a Ø1.0 m sump.
func New(rainfall *tables.RainfallTable, fittings *tables.FittingTable) *Form {
	f := &Form{
		rainfall: rainfall,
		fittings: fittings,

		InflowMode:   string(model.InflowRainfall),
		Coefficient:  "0.9",
		Area:         "5000",
		ReturnPeriod: "10",
		Duration:     "30",
		FixedRate:    "180",

		CapacityUnit:    string(model.UnitLitersPerSecond),
		Capacity:        "60",
		RunTimeMode:     string(model.RunTimeFixed),
		RunTime:         "120",
		SwitchesPerHour: "12",

		Shape:    string(model.ShapeCircular),
		Diameter: "1.0",
		Width:    "1.0",
		Length:   "1.0",

		GroundLevel:  "2.00",
		InvertLevel:  "1.20",
		SumpDepth:    "2.0",
		SafetyMargin: "0.01",

		PipeLength:     "20",
		FrictionFactor: "0.03",

		FittingCounts: map[int]map[string]*string{},

		CheckValveMode: string(model.CheckValveAutomatic),
		CheckValveK:    "10",
	}

	if dns := fittings.Diameters(); len(dns) > 0 {
		f.PipeDiameter = strconv.Itoa(dns[0])
	}
	for _, dn := range fittings.Diameters() {
		row, _ := fittings.Fittings(dn)
		counts := map[string]*string{}
		for _, fe := range row {
			zero := "0"
			counts[fe.Name] = &zero
		}
		f.FittingCounts[dn] = counts
	}
	return f
}

func createTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Group.Title = lipgloss.NewStyle().
		Foreground(report.Primary).
		Bold(true).
		MarginBottom(1)
	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(report.Primary)
	t.Focused.Title = lipgloss.NewStyle().
		Foreground(report.Primary).
		Bold(true)
	t.Focused.ErrorMessage = lipgloss.NewStyle().
		Foreground(report.Danger)
	t.Focused.SelectedOption = lipgloss.NewStyle().
		Foreground(report.Primary).
		Bold(true)

	t.Blurred = t.Focused
	t.Blurred.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true)
	t.Blurred.Title = lipgloss.NewStyle().
		Foreground(report.Muted)

	return t
}

func numberInput(title string, value *string, validate func(string) error) *huh.Input {
	return huh.NewInput().
		Title(title).
		Value(value).
		Validate(validate)
}

// Build assembles the huh form. Groups that do not apply to the current
// selections are hidden.
func (f *Form) Build() *huh.Form {
	var durationOpts []huh.Option[string]
	for _, d := range f.rainfall.Durations() {
		durationOpts = append(durationOpts, huh.NewOption(fmt.Sprintf("%d min", d), strconv.Itoa(int(d))))
	}
	var periodOpts []huh.Option[string]
	if durs := f.rainfall.Durations(); len(durs) > 0 {
		for _, rp := range f.rainfall.ReturnPeriods(durs[0]) {
			periodOpts = append(periodOpts, huh.NewOption(fmt.Sprintf("T=%d", rp), strconv.Itoa(int(rp))))
		}
	}
	var diameterOpts []huh.Option[string]
	for _, dn := range f.fittings.Diameters() {
		diameterOpts = append(diameterOpts, huh.NewOption(fmt.Sprintf("DN%d", dn), strconv.Itoa(dn)))
	}

	groups := []*huh.Group{
		huh.NewGroup(
			huh.NewInput().Title("Design name").Value(&f.Name),
			huh.NewSelect[string]().
				Title("Inflow source").
				Options(
					huh.NewOption("Catchment and storm (RIONED)", string(model.InflowRainfall)),
					huh.NewOption("Fixed flow in m³/h", string(model.InflowFixed)),
				).
				Value(&f.InflowMode),
		).Title("1. Inflow"),

		huh.NewGroup(
			numberInput("Runoff coefficient C", &f.Coefficient, between(0, 1)),
			numberInput("Catchment area (m²)", &f.Area, between(0, 100000)),
			huh.NewSelect[string]().Title("Return period").Options(periodOpts...).Value(&f.ReturnPeriod),
			huh.NewSelect[string]().Title("Storm duration").Options(durationOpts...).Value(&f.Duration),
		).Title("1. Inflow: storm").WithHideFunc(func() bool { return f.InflowMode != string(model.InflowRainfall) }),

		huh.NewGroup(
			numberInput("Fixed inflow (m³/h)", &f.FixedRate, between(0, 10000)),
		).Title("1. Inflow: fixed").WithHideFunc(func() bool { return f.InflowMode != string(model.InflowFixed) }),

		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Pump capacity unit").
				Options(
					huh.NewOption("l/s", string(model.UnitLitersPerSecond)),
					huh.NewOption("m³/h", string(model.UnitCubicMetersPerHour)),
				).
				Value(&f.CapacityUnit),
			numberInput("Pump capacity", &f.Capacity, between(0.1, 1000)),
			huh.NewSelect[string]().
				Title("Run time source").
				Options(
					huh.NewOption("Run time in seconds", string(model.RunTimeFixed)),
					huh.NewOption("Switches per hour", string(model.RunTimeSwitchesPerHour)),
				).
				Value(&f.RunTimeMode),
		).Title("2. Pump"),

		huh.NewGroup(
			numberInput("Pump run time (s)", &f.RunTime, between(30, 600)),
		).Title("2. Pump: run time").WithHideFunc(func() bool { return f.RunTimeMode != string(model.RunTimeFixed) }),

		huh.NewGroup(
			numberInput("Switches per hour", &f.SwitchesPerHour, positive),
		).Title("2. Pump: switching").WithHideFunc(func() bool { return f.RunTimeMode != string(model.RunTimeSwitchesPerHour) }),

		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Sump shape").
				Options(
					huh.NewOption("Round", string(model.ShapeCircular)),
					huh.NewOption("Rectangular", string(model.ShapeRectangular)),
				).
				Value(&f.Shape),
		).Title("3. Sump"),

		huh.NewGroup(
			numberInput("Diameter (m)", &f.Diameter, between(0.2, 10)),
		).Title("3. Sump: round").WithHideFunc(func() bool { return f.Shape != string(model.ShapeCircular) }),

		huh.NewGroup(
			numberInput("Width (m)", &f.Width, between(0.2, 10)),
			numberInput("Length (m)", &f.Length, between(0.2, 10)),
		).Title("3. Sump: rectangular").WithHideFunc(func() bool { return f.Shape != string(model.ShapeRectangular) }),

		huh.NewGroup(
			numberInput("Ground level (m NAP)", &f.GroundLevel, anyNumber),
			numberInput("Inflow pipe invert B.O.B. (m NAP)", &f.InvertLevel, anyNumber),
			numberInput("Sump depth below ground (m)", &f.SumpDepth, between(0.1, 10)),
			numberInput("Safety margin below B.O.B. (m)", &f.SafetyMargin, between(0, 1)),
		).Title("3. Sump: levels"),

		huh.NewGroup(
			numberInput("Pipe length (m)", &f.PipeLength, between(1, 1000)),
			huh.NewSelect[string]().Title("Pipe diameter").Options(diameterOpts...).Value(&f.PipeDiameter),
			numberInput("Friction factor f", &f.FrictionFactor, between(0.01, 0.1)),
		).Title("4. Discharge pipe"),
	}

	for _, dn := range f.fittings.Diameters() {
		row, _ := f.fittings.Fittings(dn)
		var fields []huh.Field
		for _, fe := range row {
			fields = append(fields, numberInput(fmt.Sprintf("Number of %s (K=%.1f)", fe.Name, fe.K), f.FittingCounts[dn][fe.Name], countBetween(0, 10)))
		}
		groups = append(groups, huh.NewGroup(fields...).
			Title(fmt.Sprintf("4. Fittings DN%d", dn)).
			WithHideFunc(func() bool { return f.PipeDiameter != strconv.Itoa(dn) }))
	}

	groups = append(groups,
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Check valve K value").
				Options(
					huh.NewOption("Automatic (by velocity)", string(model.CheckValveAutomatic)),
					huh.NewOption("Manual", string(model.CheckValveManual)),
					huh.NewOption("No check valve", string(model.CheckValveNone)),
				).
				Value(&f.CheckValveMode),
		).Title("5. Check valve"),

		huh.NewGroup(
			numberInput("Check valve K", &f.CheckValveK, between(0, 100)),
		).Title("5. Check valve: manual").WithHideFunc(func() bool { return f.CheckValveMode != string(model.CheckValveManual) }),
	)

	return huh.NewForm(groups...).WithTheme(createTheme())
}

// Run shows the form and returns the collected design.
func (f *Form) Run() (model.Design, error) {
	if err := f.Build().Run(); err != nil {
		return model.Design{}, err
	}
	return f.Design()
}

// Design converts the current field values. Only the fields of the selected
// variants are parsed.
func (f *Form) Design() (model.Design, error) {
	p := &parser{}
	d := model.Design{Name: strings.TrimSpace(f.Name)}

	switch model.InflowMode(f.InflowMode) {
	case model.InflowRainfall:
		d.Inflow = model.InflowSpec{Mode: model.InflowRainfall, Rainfall: &model.RainfallInflow{
			Coefficient:  p.float("runoff coefficient", f.Coefficient),
			AreaM2:       p.float("catchment area", f.Area),
			Duration:     model.RainDuration(p.int("storm duration", f.Duration)),
			ReturnPeriod: model.ReturnPeriod(p.int("return period", f.ReturnPeriod)),
		}}
	case model.InflowFixed:
		d.Inflow = model.InflowSpec{Mode: model.InflowFixed, Fixed: &model.FixedInflow{
			RateM3H: p.float("fixed inflow", f.FixedRate),
		}}
	default:
		return d, fmt.Errorf("unknown inflow source %q", f.InflowMode)
	}

	d.Pump.Capacity = model.PumpCapacity{Value: p.float("pump capacity", f.Capacity), Unit: model.CapacityUnit(f.CapacityUnit)}
	d.Pump.RunTime.Mode = model.RunTimeMode(f.RunTimeMode)
	switch d.Pump.RunTime.Mode {
	case model.RunTimeFixed:
		d.Pump.RunTime.RunTimeSeconds = p.float("run time", f.RunTime)
	case model.RunTimeSwitchesPerHour:
		d.Pump.RunTime.SwitchesPerHour = p.float("switches per hour", f.SwitchesPerHour)
	default:
		return d, fmt.Errorf("unknown run time source %q", f.RunTimeMode)
	}

	d.Geometry.Shape = model.SumpShape(f.Shape)
	switch d.Geometry.Shape {
	case model.ShapeCircular:
		d.Geometry.DiameterM = p.float("sump diameter", f.Diameter)
	case model.ShapeRectangular:
		d.Geometry.WidthM = p.float("sump width", f.Width)
		d.Geometry.LengthM = p.float("sump length", f.Length)
	default:
		return d, fmt.Errorf("unknown sump shape %q", f.Shape)
	}

	margin := p.float("safety margin", f.SafetyMargin)
	d.Elevations = model.Elevations{
		GroundLevelM:     p.float("ground level", f.GroundLevel),
		PipeInvertLevelM: p.float("pipe invert level", f.InvertLevel),
		SumpDepthM:       p.float("sump depth", f.SumpDepth),
		SafetyMarginM:    &margin,
	}

	dn := p.int("pipe diameter", f.PipeDiameter)
	d.Pipe = model.PipeSpec{
		NominalDiameterMM: dn,
		LengthM:           p.float("pipe length", f.PipeLength),
		FrictionFactor:    p.float("friction factor", f.FrictionFactor),
	}

	d.Fittings = model.FittingInventory{}
	for name, count := range f.FittingCounts[dn] {
		if n := p.int("number of "+name, *count); n != 0 {
			d.Fittings[name] = n
		}
	}

	d.CheckValve.Mode = model.CheckValveMode(f.CheckValveMode)
	if d.CheckValve.Mode == model.CheckValveManual {
		d.CheckValve.K = p.float("check valve K", f.CheckValveK)
	}

	if p.err != nil {
		return d, p.err
	}
	return d, nil
}
