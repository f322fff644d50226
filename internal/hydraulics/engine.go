// Package hydraulics sizes a pump sump: inflow, buffer volume, switching
// levels, discharge pipe velocity and head loss. Every function is a pure
// computation over its arguments and the reference tables the Engine was
// built with; nothing here logs, blocks or keeps state between calls.
package hydraulics

import (
	"errors"

	"github.com/thatsimonsguy/pompput-sizer/internal/model"
	"github.com/thatsimonsguy/pompput-sizer/internal/tables"
)

const (
	Gravity             = 9.81 // m/s²
	DefaultSafetyMargin = 0.01 // m below the pipe invert
	DefaultMaxVelocity  = 1.5  // m/s, used by the diameter advisory
)

var (
	// ErrInvalidParameter marks an input that violates a precondition.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrLookup marks a key missing from a reference table.
	ErrLookup = tables.ErrLookup
)

// RainfallSource supplies rainfall depths in mm.
type RainfallSource interface {
	Depth(d model.RainDuration, rp model.ReturnPeriod) (float64, error)
}

// FittingSource supplies loss coefficients keyed by nominal diameter (mm)
// and fitting name.
type FittingSource interface {
	K(dn int, name string) (float64, error)
	HasDiameter(dn int) bool
	Diameters() []int
}

// Engine binds the calculations to a pair of immutable reference tables. It
// is safe for concurrent use.
type Engine struct {
	rainfall RainfallSource
	fittings FittingSource
}

func NewEngine(rainfall RainfallSource, fittings FittingSource) *Engine {
	return &Engine{rainfall: rainfall, fittings: fittings}
}

// NewDefaultEngine uses the embedded RIONED and fitting tables.
func NewDefaultEngine() *Engine {
	return NewEngine(tables.DefaultRainfall(), tables.DefaultFittings())
}
