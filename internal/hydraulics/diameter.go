package hydraulics

import (
	"fmt"
	"math"
)

// RecommendDiameter returns the smallest internal diameter (m) that keeps
// pumpFlow (m³/s) at or below maxVelocity (m/s).
func RecommendDiameter(pumpFlow, maxVelocity float64) (float64, error) {
	if pumpFlow <= 0 {
		return 0, fmt.Errorf("pump flow %.4f m³/s must be positive: %w", pumpFlow, ErrInvalidParameter)
	}
	if maxVelocity <= 0 {
		return 0, fmt.Errorf("max velocity %.3f m/s must be positive: %w", maxVelocity, ErrInvalidParameter)
	}
	return math.Sqrt(4 * pumpFlow / (math.Pi * maxVelocity)), nil
}

// NominalDiameterFor returns the smallest table diameter (mm) not below
// minDiameterM, and false when the table has none that large.
func (e *Engine) NominalDiameterFor(minDiameterM float64) (int, bool) {
	for _, dn := range e.fittings.Diameters() {
		if float64(dn)/1000 >= minDiameterM {
			return dn, true
		}
	}
	return 0, false
}
