package tables

import "github.com/thatsimonsguy/pompput-sizer/internal/model"

// RIONED rainfall depths in mm per duration and return period.
var rionedDepths = map[model.RainDuration][6]float64{
	model.Duration10Min:  {17, 21, 27, 33, 38, 43},
	model.Duration30Min:  {26, 33, 42, 53, 61, 68},
	model.Duration60Min:  {32, 41, 53, 66, 76, 85},
	model.Duration120Min: {37, 48, 62, 78, 90, 100},
}

var fittingNames = []string{
	"knie",
	"bocht",
	"recht T",
	"90° T",
	"terugslagklep",
	"terugslagklep veer",
	"kogelafsluiter",
	"schuifafsluiter",
	"schroefafsluiter",
	"vlinderklep",
}

// K values per DN, in fittingNames order.
var fittingKs = map[int][]float64{
	100: {3.5, 1.8, 2.5, 7.5, 10.5, 37.2, 11.5, 0.7, 37.0, 6.3},
	150: {5.2, 2.6, 3.8, 11.2, 14.5, 49.3, 16.8, 1.1, 53.4, 9.4},
	200: {7.0, 3.5, 5.2, 15.4, 18.8, 64.0, 21.6, 1.4, 70.4, 12.5},
}

func DefaultRainfallEntries() []RainfallEntry {
	var out []RainfallEntry
	for _, d := range model.Durations {
		for i, rp := range model.ReturnPeriods {
			out = append(out, RainfallEntry{Duration: d, ReturnPeriod: rp, DepthMM: rionedDepths[d][i]})
		}
	}
	return out
}

func DefaultFittingEntries() []FittingEntry {
	var out []FittingEntry
	for _, dn := range []int{100, 150, 200} {
		for i, name := range fittingNames {
			out = append(out, FittingEntry{DiameterMM: dn, Name: name, K: fittingKs[dn][i]})
		}
	}
	return out
}

// DefaultRainfall returns the embedded RIONED table.
func DefaultRainfall() *RainfallTable {
	t, err := NewRainfallTable(DefaultRainfallEntries())
	if err != nil {
		panic("embedded rainfall table is invalid: " + err.Error())
	}
	return t
}

// DefaultFittings returns the embedded fitting loss-coefficient table.
func DefaultFittings() *FittingTable {
	t, err := NewFittingTable(DefaultFittingEntries())
	if err != nil {
		panic("embedded fitting table is invalid: " + err.Error())
	}
	return t
}
