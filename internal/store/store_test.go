package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thatsimonsguy/pompput-sizer/internal/hydraulics"
	"github.com/thatsimonsguy/pompput-sizer/internal/model"
	"github.com/thatsimonsguy/pompput-sizer/internal/report"
)

func sampleDesign() *model.Design {
	margin := 0.05
	return &model.Design{
		Name:   "Gemaal Oost",
		Inflow: model.InflowSpec{Mode: model.InflowFixed, Fixed: &model.FixedInflow{RateM3H: 180}},
		Pump: model.PumpCycle{
			Capacity: model.PumpCapacity{Value: 216, Unit: model.UnitCubicMetersPerHour},
			RunTime:  model.RunTimeSource{Mode: model.RunTimeSwitchesPerHour, SwitchesPerHour: 12},
		},
		Geometry:   model.SumpGeometry{Shape: model.ShapeRectangular, WidthM: 2, LengthM: 2.5},
		Elevations: model.Elevations{GroundLevelM: 1.5, PipeInvertLevelM: -0.4, SumpDepthM: 3.5, SafetyMarginM: &margin},
		Pipe:       model.PipeSpec{NominalDiameterMM: 200, LengthM: 85, FrictionFactor: 0.02},
		Fittings:   model.FittingInventory{"bocht": 3, "schuifafsluiter": 1},
		CheckValve: model.CheckValve{Mode: model.CheckValveManual, K: 10},
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "design.json")
	s := New(path)

	require.NoError(t, s.Save(sampleDesign()))
	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, sampleDesign(), loaded)
}

func TestLoad_RejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "design.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"inflow": {"mode": "fixed"}, "pomp": {}}`), 0644))

	_, err := New(path).Load()
	assert.Error(t, err)
}

func TestLoad_Missing(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing.json")).Load()
	assert.True(t, os.IsNotExist(err))
}

func TestWriteReport(t *testing.T) {
	d := sampleDesign()
	res, err := hydraulics.NewDefaultEngine().Evaluate(*d)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "rapport.txt")
	require.NoError(t, WriteReport(path, report.Build(*d, res), "text"))

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(contents), report.Title))
	assert.Contains(t, string(contents), "Buffer volume: 18.000 m³")

	assert.Error(t, WriteReport(path, report.Build(*d, res), "pdf"))
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}
