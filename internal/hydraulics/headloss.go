package hydraulics

import (
	"fmt"
	"math"
	"sort"

	"github.com/thatsimonsguy/pompput-sizer/internal/model"
)

// PipeArea returns the internal cross-section of a pipe in m².
func PipeArea(diameterM float64) float64 {
	return math.Pi * math.Pow(diameterM/2, 2)
}

// VelocityHead returns v²/2g in metres.
func VelocityHead(v float64) float64 {
	return v * v / (2 * Gravity)
}

// AutomaticCheckValveK picks a check-valve coefficient from the flow
// velocity. Brackets are half-open: [0,0.6) 25, [0.6,1.2) 15, [1.2,2.0) 8,
// [2.0,∞) 5.
func AutomaticCheckValveK(v float64) float64 {
	switch {
	case v < 0.6:
		return 25
	case v < 1.2:
		return 15
	case v < 2.0:
		return 8
	default:
		return 5
	}
}

// CheckValveK resolves the coefficient for the configured check valve.
func CheckValveK(cv model.CheckValve, v float64) (float64, error) {
	switch cv.Mode {
	case model.CheckValveNone, "":
		return 0, nil
	case model.CheckValveManual:
		if cv.K < 0 {
			return 0, fmt.Errorf("check valve K %.2f is negative: %w", cv.K, ErrInvalidParameter)
		}
		return cv.K, nil
	case model.CheckValveAutomatic:
		return AutomaticCheckValveK(v), nil
	default:
		return 0, fmt.Errorf("unknown check valve mode %q: %w", cv.Mode, ErrInvalidParameter)
	}
}

// CalculateHeadLoss computes velocity and head loss for pumpFlow (m³/s)
// through the discharge pipe.
func (e *Engine) CalculateHeadLoss(pumpFlow float64, pipe model.PipeSpec, fittings model.FittingInventory, cv model.CheckValve) (model.HeadLossResult, error) {
	if !e.fittings.HasDiameter(pipe.NominalDiameterMM) {
		return model.HeadLossResult{}, fmt.Errorf("pipe diameter DN%d: %w", pipe.NominalDiameterMM, ErrLookup)
	}
	d := float64(pipe.NominalDiameterMM) / 1000
	if d <= 0 {
		return model.HeadLossResult{}, fmt.Errorf("pipe diameter %.3f m must be positive: %w", d, ErrInvalidParameter)
	}
	if pumpFlow <= 0 {
		return model.HeadLossResult{}, fmt.Errorf("pump flow %.4f m³/s must be positive: %w", pumpFlow, ErrInvalidParameter)
	}
	if pipe.LengthM <= 0 {
		return model.HeadLossResult{}, fmt.Errorf("pipe length %.2f m must be positive: %w", pipe.LengthM, ErrInvalidParameter)
	}
	if pipe.FrictionFactor <= 0 || pipe.FrictionFactor >= 1 {
		return model.HeadLossResult{}, fmt.Errorf("friction factor %.4f outside (0,1): %w", pipe.FrictionFactor, ErrInvalidParameter)
	}

	v := pumpFlow / PipeArea(d)
	vh := VelocityHead(v)

	fittingK, err := e.fittingK(pipe.NominalDiameterMM, fittings)
	if err != nil {
		return model.HeadLossResult{}, err
	}
	cvK, err := CheckValveK(cv, v)
	if err != nil {
		return model.HeadLossResult{}, err
	}

	friction := pipe.FrictionFactor * (pipe.LengthM / d) * vh
	totalK := fittingK + cvK
	fittingLoss := totalK * vh

	return model.HeadLossResult{
		DiameterM:      d,
		VelocityMS:     v,
		VelocityHeadM:  vh,
		FrictionLossM:  friction,
		FittingK:       fittingK,
		CheckValveK:    cvK,
		TotalK:         totalK,
		FittingLossM:   fittingLoss,
		TotalHeadLossM: friction + fittingLoss,
	}, nil
}

// fittingK sums count×K over the inventory. Names are visited in sorted
// order so the float sum does not depend on map iteration.
func (e *Engine) fittingK(dn int, inv model.FittingInventory) (float64, error) {
	names := make([]string, 0, len(inv))
	for name := range inv {
		names = append(names, name)
	}
	sort.Strings(names)

	var total float64
	for _, name := range names {
		count := inv[name]
		if count < 0 {
			return 0, fmt.Errorf("fitting %q count %d is negative: %w", name, count, ErrInvalidParameter)
		}
		if count == 0 {
			continue
		}
		k, err := e.fittings.K(dn, name)
		if err != nil {
			return 0, err
		}
		total += float64(count) * k
	}
	return total, nil
}
