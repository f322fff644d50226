package hydraulics

import (
	"fmt"

	"github.com/thatsimonsguy/pompput-sizer/internal/model"
)

// EstimateInflow returns the inflow rate in m³/s.
func (e *Engine) EstimateInflow(spec model.InflowSpec) (float64, error) {
	switch spec.Mode {
	case model.InflowRainfall:
		r := spec.Rainfall
		if r == nil {
			return 0, fmt.Errorf("rainfall inflow selected without rainfall parameters: %w", ErrInvalidParameter)
		}
		if r.Coefficient < 0 || r.Coefficient > 1 {
			return 0, fmt.Errorf("runoff coefficient %.3f outside [0,1]: %w", r.Coefficient, ErrInvalidParameter)
		}
		if r.AreaM2 < 0 {
			return 0, fmt.Errorf("catchment area %.3f m² is negative: %w", r.AreaM2, ErrInvalidParameter)
		}
		depth, err := e.rainfall.Depth(r.Duration, r.ReturnPeriod)
		if err != nil {
			return 0, err
		}
		return r.Coefficient * RainfallIntensity(depth, r.Duration) * r.AreaM2, nil

	case model.InflowFixed:
		f := spec.Fixed
		if f == nil {
			return 0, fmt.Errorf("fixed inflow selected without a rate: %w", ErrInvalidParameter)
		}
		if f.RateM3H < 0 {
			return 0, fmt.Errorf("fixed inflow %.3f m³/h is negative: %w", f.RateM3H, ErrInvalidParameter)
		}
		return f.RateM3H / 3600, nil

	default:
		return 0, fmt.Errorf("unknown inflow mode %q: %w", spec.Mode, ErrInvalidParameter)
	}
}

// RainfallIntensity converts a depth in mm over a duration to m/s.
func RainfallIntensity(depthMM float64, d model.RainDuration) float64 {
	return depthMM / 1000 / d.Seconds()
}
