package hydraulics

import (
	"fmt"
	"math"

	"github.com/thatsimonsguy/pompput-sizer/internal/model"
)

func LitersPerSecondToCubicMetersPerHour(ls float64) float64 {
	return ls * 3600 / 1000
}

func CubicMetersPerHourToLitersPerSecond(m3h float64) float64 {
	return m3h * 1000 / 3600
}

// CapacityM3S normalizes a pump capacity to m³/s.
func CapacityM3S(c model.PumpCapacity) (float64, error) {
	var ls float64
	switch c.Unit {
	case model.UnitLitersPerSecond:
		ls = c.Value
	case model.UnitCubicMetersPerHour:
		ls = CubicMetersPerHourToLitersPerSecond(c.Value)
	default:
		return 0, fmt.Errorf("unknown capacity unit %q: %w", c.Unit, ErrInvalidParameter)
	}
	if ls <= 0 {
		return 0, fmt.Errorf("pump capacity %.3f %s must be positive: %w", c.Value, c.Unit, ErrInvalidParameter)
	}
	return ls / 1000, nil
}

// ResolveRunTime returns the pump run time in seconds from the source
// selected by Mode.
func ResolveRunTime(src model.RunTimeSource) (float64, error) {
	switch src.Mode {
	case model.RunTimeFixed:
		if src.RunTimeSeconds <= 0 {
			return 0, fmt.Errorf("run time %.1f s must be positive: %w", src.RunTimeSeconds, ErrInvalidParameter)
		}
		return src.RunTimeSeconds, nil
	case model.RunTimeSwitchesPerHour:
		if src.SwitchesPerHour <= 0 {
			return 0, fmt.Errorf("switches per hour %.2f must be positive: %w", src.SwitchesPerHour, ErrInvalidParameter)
		}
		return 3600 / src.SwitchesPerHour, nil
	default:
		return 0, fmt.Errorf("unknown run time mode %q: %w", src.Mode, ErrInvalidParameter)
	}
}

// CrossSectionArea returns the plan area of the sump in m².
func CrossSectionArea(g model.SumpGeometry) (float64, error) {
	switch g.Shape {
	case model.ShapeCircular:
		if g.DiameterM <= 0 {
			return 0, fmt.Errorf("sump diameter %.3f m must be positive: %w", g.DiameterM, ErrInvalidParameter)
		}
		return math.Pi * math.Pow(g.DiameterM/2, 2), nil
	case model.ShapeRectangular:
		if g.WidthM <= 0 || g.LengthM <= 0 {
			return 0, fmt.Errorf("sump %.3f x %.3f m must have positive sides: %w", g.WidthM, g.LengthM, ErrInvalidParameter)
		}
		return g.WidthM * g.LengthM, nil
	default:
		return 0, fmt.Errorf("unknown sump shape %q: %w", g.Shape, ErrInvalidParameter)
	}
}

// CalculateBuffer sizes the buffer and the switching levels. A switch-on
// level above the allowed maximum is reported through SafetyViolated and an
// advisory, never as an error.
func CalculateBuffer(cycle model.PumpCycle, geom model.SumpGeometry, elev model.Elevations) (model.BufferResult, error) {
	capacity, err := CapacityM3S(cycle.Capacity)
	if err != nil {
		return model.BufferResult{}, err
	}
	runTime, err := ResolveRunTime(cycle.RunTime)
	if err != nil {
		return model.BufferResult{}, err
	}
	area, err := CrossSectionArea(geom)
	if err != nil {
		return model.BufferResult{}, err
	}
	if elev.SumpDepthM <= 0 {
		return model.BufferResult{}, fmt.Errorf("sump depth %.3f m must be positive: %w", elev.SumpDepthM, ErrInvalidParameter)
	}
	margin := DefaultSafetyMargin
	if elev.SafetyMarginM != nil {
		margin = *elev.SafetyMarginM
	}
	if margin < 0 {
		return model.BufferResult{}, fmt.Errorf("safety margin %.3f m is negative: %w", margin, ErrInvalidParameter)
	}

	volume := capacity * runTime
	rise := volume / area
	bottom := elev.GroundLevelM - elev.SumpDepthM

	res := model.BufferResult{
		CapacityM3S:       capacity,
		RunTimeSeconds:    runTime,
		CrossSectionM2:    area,
		BufferVolumeM3:    volume,
		LevelRiseM:        rise,
		SwitchOffLevelM:   bottom,
		SwitchOnLevelM:    bottom + rise,
		MaxAllowedLevelM:  elev.PipeInvertLevelM - margin,
		BottomBelowInvert: bottom < elev.PipeInvertLevelM,
	}
	res.SafetyViolated = SafetyViolated(res.SwitchOnLevelM, res.MaxAllowedLevelM)

	if res.SafetyViolated {
		msg := fmt.Sprintf("switch-on level %.3f m NAP exceeds the maximum %.3f m NAP; the inflow pipe would be submerged",
			res.SwitchOnLevelM, res.MaxAllowedLevelM)
		res.Advisories = append(res.Advisories, model.Advisory{Kind: model.AdvisorySafety, Message: msg})
	}
	if !res.BottomBelowInvert {
		msg := fmt.Sprintf("sump bottom %.3f m NAP is not below the pipe invert %.3f m NAP", bottom, elev.PipeInvertLevelM)
		res.Advisories = append(res.Advisories, model.Advisory{Kind: model.AdvisoryBottomAboveBOB, Message: msg})
	}
	return res, nil
}

// SafetyViolated is true only when the switch-on level is strictly above
// the allowed maximum.
func SafetyViolated(switchOn, maxAllowed float64) bool {
	return switchOn > maxAllowed
}
