package tables

import (
	"errors"
	"fmt"
	"sort"

	"github.com/thatsimonsguy/pompput-sizer/internal/model"
)

// ErrLookup is returned when a key is not present in a reference table.
var ErrLookup = errors.New("reference table lookup failed")

type RainfallEntry struct {
	Duration     model.RainDuration `json:"duration_min"`
	ReturnPeriod model.ReturnPeriod `json:"return_period_years"`
	DepthMM      float64            `json:"depth_mm"`
}

// RainfallTable maps (duration, return period) to rainfall depth. It is
// immutable after construction.
type RainfallTable struct {
	depths map[model.RainDuration]map[model.ReturnPeriod]float64
}

func NewRainfallTable(entries []RainfallEntry) (*RainfallTable, error) {
	t := &RainfallTable{depths: map[model.RainDuration]map[model.ReturnPeriod]float64{}}
	for _, e := range entries {
		if e.Duration <= 0 || e.ReturnPeriod <= 0 {
			return nil, fmt.Errorf("invalid rainfall key %d min / T=%d", e.Duration, e.ReturnPeriod)
		}
		if e.DepthMM < 0 {
			return nil, fmt.Errorf("negative rainfall depth %.1f mm for %d min / T=%d", e.DepthMM, e.Duration, e.ReturnPeriod)
		}
		row, ok := t.depths[e.Duration]
		if !ok {
			row = map[model.ReturnPeriod]float64{}
			t.depths[e.Duration] = row
		}
		if _, dup := row[e.ReturnPeriod]; dup {
			return nil, fmt.Errorf("duplicate rainfall entry for %d min / T=%d", e.Duration, e.ReturnPeriod)
		}
		row[e.ReturnPeriod] = e.DepthMM
	}
	return t, nil
}

// Depth returns the rainfall depth in millimetres.
func (t *RainfallTable) Depth(d model.RainDuration, rp model.ReturnPeriod) (float64, error) {
	row, ok := t.depths[d]
	if !ok {
		return 0, fmt.Errorf("rainfall duration %d min: %w", d, ErrLookup)
	}
	depth, ok := row[rp]
	if !ok {
		return 0, fmt.Errorf("rainfall return period T=%d for %d min: %w", rp, d, ErrLookup)
	}
	return depth, nil
}

func (t *RainfallTable) Durations() []model.RainDuration {
	out := make([]model.RainDuration, 0, len(t.depths))
	for d := range t.depths {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (t *RainfallTable) ReturnPeriods(d model.RainDuration) []model.ReturnPeriod {
	out := make([]model.ReturnPeriod, 0, len(t.depths[d]))
	for rp := range t.depths[d] {
		out = append(out, rp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Entries returns every entry ordered by duration, then return period.
func (t *RainfallTable) Entries() []RainfallEntry {
	var out []RainfallEntry
	for _, d := range t.Durations() {
		for _, rp := range t.ReturnPeriods(d) {
			out = append(out, RainfallEntry{Duration: d, ReturnPeriod: rp, DepthMM: t.depths[d][rp]})
		}
	}
	return out
}

type FittingEntry struct {
	DiameterMM int     `json:"diameter_mm"`
	Name       string  `json:"name"`
	K          float64 `json:"k"`
}

// FittingTable maps nominal diameter, then fitting name, to a loss
// coefficient. Fitting order within a diameter follows insertion order.
type FittingTable struct {
	rows  map[int]map[string]float64
	order map[int][]string
}

func NewFittingTable(entries []FittingEntry) (*FittingTable, error) {
	t := &FittingTable{
		rows:  map[int]map[string]float64{},
		order: map[int][]string{},
	}
	for _, e := range entries {
		if e.DiameterMM <= 0 {
			return nil, fmt.Errorf("invalid fitting diameter %d mm", e.DiameterMM)
		}
		if e.Name == "" {
			return nil, fmt.Errorf("empty fitting name for DN%d", e.DiameterMM)
		}
		if e.K < 0 {
			return nil, fmt.Errorf("negative K %.2f for %s DN%d", e.K, e.Name, e.DiameterMM)
		}
		row, ok := t.rows[e.DiameterMM]
		if !ok {
			row = map[string]float64{}
			t.rows[e.DiameterMM] = row
		}
		if _, dup := row[e.Name]; dup {
			return nil, fmt.Errorf("duplicate fitting %s for DN%d", e.Name, e.DiameterMM)
		}
		row[e.Name] = e.K
		t.order[e.DiameterMM] = append(t.order[e.DiameterMM], e.Name)
	}
	return t, nil
}

func (t *FittingTable) HasDiameter(dn int) bool {
	_, ok := t.rows[dn]
	return ok
}

// K returns the loss coefficient of a fitting for the given diameter.
func (t *FittingTable) K(dn int, name string) (float64, error) {
	row, ok := t.rows[dn]
	if !ok {
		return 0, fmt.Errorf("pipe diameter DN%d: %w", dn, ErrLookup)
	}
	k, ok := row[name]
	if !ok {
		return 0, fmt.Errorf("fitting %q for DN%d: %w", name, dn, ErrLookup)
	}
	return k, nil
}

func (t *FittingTable) Diameters() []int {
	out := make([]int, 0, len(t.rows))
	for dn := range t.rows {
		out = append(out, dn)
	}
	sort.Ints(out)
	return out
}

// Fittings returns the row of one diameter in table order.
func (t *FittingTable) Fittings(dn int) ([]FittingEntry, error) {
	row, ok := t.rows[dn]
	if !ok {
		return nil, fmt.Errorf("pipe diameter DN%d: %w", dn, ErrLookup)
	}
	out := make([]FittingEntry, 0, len(row))
	for _, name := range t.order[dn] {
		out = append(out, FittingEntry{DiameterMM: dn, Name: name, K: row[name]})
	}
	return out, nil
}

func (t *FittingTable) Entries() []FittingEntry {
	var out []FittingEntry
	for _, dn := range t.Diameters() {
		row, _ := t.Fittings(dn)
		out = append(out, row...)
	}
	return out
}
