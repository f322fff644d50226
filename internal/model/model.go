package model

type InflowMode string

const (
	InflowRainfall InflowMode = "rainfall"
	InflowFixed    InflowMode = "fixed"
)

// RainDuration is a storm duration in minutes.
type RainDuration int

const (
	Duration10Min  RainDuration = 10
	Duration30Min  RainDuration = 30
	Duration60Min  RainDuration = 60
	Duration120Min RainDuration = 120
)

func (d RainDuration) Seconds() float64 {
	return float64(d) * 60
}

// ReturnPeriod is a storm return period (T) in years.
type ReturnPeriod int

var (
	Durations     = []RainDuration{Duration10Min, Duration30Min, Duration60Min, Duration120Min}
	ReturnPeriods = []ReturnPeriod{2, 5, 10, 25, 50, 100}
)

type RainfallInflow struct {
	Coefficient  float64      `json:"coefficient"` // runoff coefficient C, 0..1
	AreaM2       float64      `json:"area_m2"`
	Duration     RainDuration `json:"duration_min"`
	ReturnPeriod ReturnPeriod `json:"return_period_years"`
}

type FixedInflow struct {
	RateM3H float64 `json:"rate_m3h"`
}

// InflowSpec selects exactly one inflow source by Mode. Only the block
// matching Mode is read.
type InflowSpec struct {
	Mode     InflowMode      `json:"mode"`
	Rainfall *RainfallInflow `json:"rainfall,omitempty"`
	Fixed    *FixedInflow    `json:"fixed,omitempty"`
}

type CapacityUnit string

const (
	UnitLitersPerSecond    CapacityUnit = "l/s"
	UnitCubicMetersPerHour CapacityUnit = "m3/h"
)

type PumpCapacity struct {
	Value float64      `json:"value"`
	Unit  CapacityUnit `json:"unit"`
}

type RunTimeMode string

const (
	RunTimeFixed           RunTimeMode = "run_time"
	RunTimeSwitchesPerHour RunTimeMode = "switches_per_hour"
)

// RunTimeSource holds both inputs; Mode decides which one is authoritative.
type RunTimeSource struct {
	Mode            RunTimeMode `json:"mode"`
	RunTimeSeconds  float64     `json:"run_time_s,omitempty"`
	SwitchesPerHour float64     `json:"switches_per_hour,omitempty"`
}

type PumpCycle struct {
	Capacity PumpCapacity  `json:"capacity"`
	RunTime  RunTimeSource `json:"run_time"`
}

type SumpShape string

const (
	ShapeCircular    SumpShape = "circular"
	ShapeRectangular SumpShape = "rectangular"
)

type SumpGeometry struct {
	Shape     SumpShape `json:"shape"`
	DiameterM float64   `json:"diameter_m,omitempty"`
	WidthM    float64   `json:"width_m,omitempty"`
	LengthM   float64   `json:"length_m,omitempty"`
}

// Elevations are in metres relative to NAP, SumpDepthM is measured down from
// ground level. A nil SafetyMarginM means the default margin.
type Elevations struct {
	GroundLevelM     float64  `json:"ground_level_m"`
	PipeInvertLevelM float64  `json:"pipe_invert_level_m"` // B.O.B. of the inflow pipe
	SumpDepthM       float64  `json:"sump_depth_m"`
	SafetyMarginM    *float64 `json:"safety_margin_m,omitempty"`
}

type PipeSpec struct {
	NominalDiameterMM int     `json:"nominal_diameter_mm"`
	LengthM           float64 `json:"length_m"`
	FrictionFactor    float64 `json:"friction_factor"` // Darcy-Weisbach f
}

// FittingInventory maps a fitting name from the fitting table to its count.
type FittingInventory map[string]int

type CheckValveMode string

const (
	CheckValveNone      CheckValveMode = "none"
	CheckValveManual    CheckValveMode = "manual"
	CheckValveAutomatic CheckValveMode = "automatic"
)

type CheckValve struct {
	Mode CheckValveMode `json:"mode"`
	K    float64        `json:"k,omitempty"` // manual mode only
}

// Design is the full input of one sizing run.
type Design struct {
	Name        string           `json:"name,omitempty"`
	Inflow      InflowSpec       `json:"inflow"`
	Pump        PumpCycle        `json:"pump"`
	Geometry    SumpGeometry     `json:"geometry"`
	Elevations  Elevations       `json:"elevations"`
	Pipe        PipeSpec         `json:"pipe"`
	Fittings    FittingInventory `json:"fittings,omitempty"`
	CheckValve  CheckValve       `json:"check_valve"`
	MaxVelocity float64          `json:"max_velocity_ms,omitempty"` // 0 means the default
}

type AdvisoryKind string

const (
	AdvisorySafety         AdvisoryKind = "safety"
	AdvisoryBottomAboveBOB AdvisoryKind = "bottom_above_invert"
	AdvisoryInflowExceeds  AdvisoryKind = "inflow_exceeds_capacity"
	AdvisoryNoNominalFits  AdvisoryKind = "no_nominal_diameter"
)

// Advisory is a non-fatal finding reported next to a complete result.
type Advisory struct {
	Kind    AdvisoryKind `json:"kind"`
	Message string       `json:"message"`
}

type BufferResult struct {
	CapacityM3S       float64    `json:"capacity_m3s"`
	RunTimeSeconds    float64    `json:"run_time_s"`
	CrossSectionM2    float64    `json:"cross_section_m2"`
	BufferVolumeM3    float64    `json:"buffer_volume_m3"`
	LevelRiseM        float64    `json:"level_rise_m"`
	SwitchOffLevelM   float64    `json:"switch_off_level_m"`
	SwitchOnLevelM    float64    `json:"switch_on_level_m"`
	MaxAllowedLevelM  float64    `json:"max_allowed_level_m"`
	SafetyViolated    bool       `json:"safety_violated"`
	BottomBelowInvert bool       `json:"bottom_below_invert"`
	Advisories        []Advisory `json:"advisories,omitempty"`
}

type HeadLossResult struct {
	DiameterM      float64 `json:"diameter_m"`
	VelocityMS     float64 `json:"velocity_ms"`
	VelocityHeadM  float64 `json:"velocity_head_m"`
	FrictionLossM  float64 `json:"friction_loss_m"`
	FittingK       float64 `json:"fitting_k"`
	CheckValveK    float64 `json:"check_valve_k"`
	TotalK         float64 `json:"total_k"`
	FittingLossM   float64 `json:"fitting_loss_m"`
	TotalHeadLossM float64 `json:"total_head_loss_m"`
}

type DiameterAdvice struct {
	MaxVelocityMS     float64 `json:"max_velocity_ms"`
	MinDiameterM      float64 `json:"min_diameter_m"`
	NominalDiameterMM int     `json:"nominal_diameter_mm,omitempty"` // 0 when no table diameter fits
}

type DesignResult struct {
	InflowRateM3S float64        `json:"inflow_rate_m3s"`
	Buffer        BufferResult   `json:"buffer"`
	HeadLoss      HeadLossResult `json:"head_loss"`
	Diameter      DiameterAdvice `json:"diameter"`
	Advisories    []Advisory     `json:"advisories,omitempty"`
}
