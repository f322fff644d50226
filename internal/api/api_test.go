package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thatsimonsguy/pompput-sizer/internal/config"
	"github.com/thatsimonsguy/pompput-sizer/internal/tables"
)

const referenceDesign = `{
	"name": "test",
	"inflow": {"mode": "rainfall", "rainfall": {"coefficient": 0.9, "area_m2": 5000, "duration_min": 30, "return_period_years": 10}},
	"pump": {"capacity": {"value": 60, "unit": "l/s"}, "run_time": {"mode": "run_time", "run_time_s": 120}},
	"geometry": {"shape": "circular", "diameter_m": 1.0},
	"elevations": {"ground_level_m": 2.0, "pipe_invert_level_m": 1.2, "sump_depth_m": 2.0},
	"pipe": {"nominal_diameter_mm": 150, "length_m": 20, "friction_factor": 0.03},
	"fittings": {"knie": 2},
	"check_valve": {"mode": "automatic"}
}`

func setupTestServer(t *testing.T) http.Handler {
	cfg := config.Defaults()
	return NewServer(tables.DefaultRainfall(), tables.DefaultFittings(), &cfg).Handler()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestCalculate(t *testing.T) {
	h := setupTestServer(t)

	w := do(t, h, http.MethodPost, "/api/calculate", referenceDesign)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp CalculateResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))

	assert.InDelta(t, 0.105, resp.Result.InflowRateM3S, 1e-9)
	assert.InDelta(t, 7.2, resp.Result.Buffer.BufferVolumeM3, 1e-9)
	assert.True(t, resp.Result.Buffer.SafetyViolated)
	assert.Equal(t, 1.5, resp.Result.Diameter.MaxVelocityMS)
	assert.Contains(t, resp.Lines, "Inflow rate: 105.0 l/s")
}

func TestCalculate_InvalidParameter(t *testing.T) {
	h := setupTestServer(t)

	body := `{
		"inflow": {"mode": "fixed", "fixed": {"rate_m3h": 100}},
		"pump": {"capacity": {"value": 60, "unit": "l/s"}, "run_time": {"mode": "switches_per_hour", "switches_per_hour": 0}},
		"geometry": {"shape": "circular", "diameter_m": 1.0},
		"elevations": {"ground_level_m": 2.0, "pipe_invert_level_m": 1.2, "sump_depth_m": 2.0},
		"pipe": {"nominal_diameter_mm": 150, "length_m": 20, "friction_factor": 0.03},
		"check_valve": {"mode": "none"}
	}`
	w := do(t, h, http.MethodPost, "/api/calculate", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Contains(t, resp.Error, "switches per hour")
}

func TestCalculate_LookupError(t *testing.T) {
	h := setupTestServer(t)

	var design map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(referenceDesign), &design))
	design["pipe"] = map[string]interface{}{"nominal_diameter_mm": 125, "length_m": 20, "friction_factor": 0.03}
	body, err := json.Marshal(design)
	require.NoError(t, err)

	w := do(t, h, http.MethodPost, "/api/calculate", string(body))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCalculate_BadRequests(t *testing.T) {
	h := setupTestServer(t)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/api/calculate", "{not json").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(t, h, http.MethodGet, "/api/calculate", "").Code)
}

func TestDiameter(t *testing.T) {
	h := setupTestServer(t)

	w := do(t, h, http.MethodPost, "/api/diameter", `{"flow_m3s": 0.015, "max_velocity_ms": 2.0}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp DiameterResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.InDelta(t, 0.0977, resp.MinDiameterM, 1e-4)
	assert.Equal(t, 100, resp.NominalDiameterMM)

	w = do(t, h, http.MethodPost, "/api/diameter", `{"flow_m3s": 0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTables(t *testing.T) {
	h := setupTestServer(t)

	w := do(t, h, http.MethodGet, "/api/tables/rainfall", "")
	require.Equal(t, http.StatusOK, w.Code)
	var rain []tables.RainfallEntry
	require.NoError(t, json.NewDecoder(w.Body).Decode(&rain))
	assert.Len(t, rain, 24)

	w = do(t, h, http.MethodGet, "/api/tables/fittings", "")
	require.Equal(t, http.StatusOK, w.Code)
	var fittings FittingsResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&fittings))
	assert.Equal(t, []int{100, 150, 200}, fittings.Diameters)
	assert.Len(t, fittings.Fittings, 30)
}

func TestPreflight(t *testing.T) {
	h := setupTestServer(t)

	w := do(t, h, http.MethodOptions, "/api/calculate", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
