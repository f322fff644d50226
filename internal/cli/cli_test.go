package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thatsimonsguy/pompput-sizer/db"
	"github.com/thatsimonsguy/pompput-sizer/internal/config"
	"github.com/thatsimonsguy/pompput-sizer/internal/model"
	"github.com/thatsimonsguy/pompput-sizer/internal/tables"
)

const referenceDesign = `{
	"name": "reference",
	"inflow": {"mode": "rainfall", "rainfall": {"coefficient": 0.9, "area_m2": 5000, "duration_min": 30, "return_period_years": 10}},
	"pump": {"capacity": {"value": 60, "unit": "l/s"}, "run_time": {"mode": "run_time", "run_time_s": 120}},
	"geometry": {"shape": "circular", "diameter_m": 1.0},
	"elevations": {"ground_level_m": 2.0, "pipe_invert_level_m": 1.2, "sump_depth_m": 2.0},
	"pipe": {"nominal_diameter_mm": 150, "length_m": 20, "friction_factor": 0.03},
	"fittings": {"knie": 2},
	"check_valve": {"mode": "automatic"}
}`

func resetFlags(t *testing.T) {
	t.Cleanup(func() {
		cfg = config.Defaults()
		designFile, reportFormat, outFile = "", "", ""
	})
	cfg = config.Defaults()
}

func writeDesign(t *testing.T, body string) string {
	path := filepath.Join(t.TempDir(), "design.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestRunCalc_TextReport(t *testing.T) {
	resetFlags(t)
	designFile = writeDesign(t, referenceDesign)
	reportFormat = "text"

	var buf bytes.Buffer
	require.NoError(t, runCalc(&buf))

	out := buf.String()
	assert.Contains(t, out, "Inflow rate: 105.0 l/s")
	assert.Contains(t, out, "Buffer volume: 7.200 m³")
	assert.Contains(t, out, "WARNING: ")
}

func TestRunCalc_ReportFile(t *testing.T) {
	resetFlags(t)
	designFile = writeDesign(t, referenceDesign)
	reportFormat = "json"
	outFile = filepath.Join(t.TempDir(), "report.json")

	var buf bytes.Buffer
	require.NoError(t, runCalc(&buf))
	assert.Empty(t, buf.String())

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"buffer_volume"`)
}

func TestRunCalc_Errors(t *testing.T) {
	resetFlags(t)

	designFile = filepath.Join(t.TempDir(), "missing.json")
	assert.Error(t, runCalc(&bytes.Buffer{}))

	designFile = writeDesign(t, `{"name": "x", "colour": "red"}`)
	assert.Error(t, runCalc(&bytes.Buffer{}), "unknown fields are rejected")

	designFile = writeDesign(t, `{"name": "empty"}`)
	err := runCalc(&bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `design "empty"`)
}

func TestEvaluate_UsesConfiguredMaxVelocity(t *testing.T) {
	resetFlags(t)
	cfg.DefaultMaxVelocity = 2.0

	designFile = writeDesign(t, referenceDesign)
	var buf bytes.Buffer
	reportFormat = "text"
	require.NoError(t, runCalc(&buf))
	assert.Contains(t, buf.String(), "Minimum diameter at 2.0 m/s")
}

func TestLoadTables(t *testing.T) {
	resetFlags(t)

	rain, fittings, err := loadTables()
	require.NoError(t, err)
	assert.Equal(t, tables.DefaultRainfall().Entries(), rain.Entries())
	assert.Equal(t, tables.DefaultFittings().Entries(), fittings.Entries())

	path := filepath.Join(t.TempDir(), "tables.db")
	conn, err := db.Open(path)
	require.NoError(t, err)
	require.NoError(t, db.SeedDefaults(conn))
	require.NoError(t, db.SetRainfallDepth(conn, model.Duration30Min, 10, 50))
	require.NoError(t, conn.Close())

	cfg.TablesDB = path
	rain, _, err = loadTables()
	require.NoError(t, err)
	depth, err := rain.Depth(model.Duration30Min, 10)
	require.NoError(t, err)
	assert.Equal(t, 50.0, depth)

	cfg.TablesDB = filepath.Join(t.TempDir(), "empty.db")
	_, _, err = loadTables()
	assert.Error(t, err)
}

func TestShowTables(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, showTables(&buf, "", tables.DefaultRainfall(), tables.DefaultFittings()))

	out := buf.String()
	assert.Contains(t, out, "Rainfall depth (mm)")
	assert.Contains(t, out, "T=100")
	assert.Contains(t, out, "120 min")
	assert.Contains(t, out, "Fitting loss coefficient K")
	assert.Contains(t, out, "DN200")
	assert.Contains(t, out, "vlinderklep")

	buf.Reset()
	require.NoError(t, showTables(&buf, "fittings", tables.DefaultRainfall(), tables.DefaultFittings()))
	assert.NotContains(t, buf.String(), "Rainfall depth")

	assert.Error(t, showTables(&buf, "pumps", tables.DefaultRainfall(), tables.DefaultFittings()))
}
