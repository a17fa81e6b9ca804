package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wind-storage-sim/internal/api/models"
	"wind-storage-sim/internal/model"
	"wind-storage-sim/internal/store"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	preset := "turbine:\n  name: Test E-82\n  swept_area_m2: 5281\n  efficiency: 0.4\n  count: 2\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test_e82.yaml"), []byte(preset), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.txt"), []byte("not a preset"), 0o644))

	runs := store.NewRunStore(0)
	t.Cleanup(runs.Close)

	return NewRouter(Options{Runs: runs, TurbineDir: dir})
}

func do(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func baselineRequest() map[string]interface{} {
	return map[string]interface{}{
		"config": map[string]interface{}{
			"storage":  map[string]interface{}{"max_capacity_kwh": 1000, "initial_kwh": 500},
			"strategy": map[string]interface{}{"name": "baseline"},
		},
		"series": map[string]interface{}{
			"speeds": []float64{0, 0},
			"demand": []float64{10, 10},
		},
	}
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestRunAndFetchSimulation(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/v1/simulations", baselineRequest())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var created models.SimulationResponse
	decode(t, w, &created)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "completed", created.Status)
	assert.Equal(t, "baseline", created.Summary.Strategy)
	assert.Equal(t, 2, created.Summary.Hours)
	// Each hour the fuel cell draws 2 x 10 kWh.
	assert.InDelta(t, 460, created.Summary.FinalStorageKWh, 1e-9)
	assert.Empty(t, created.Trace)

	w = do(t, r, http.MethodGet, "/api/v1/simulations/"+created.ID+"?include_trace=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var fetched models.SimulationResponse
	decode(t, w, &fetched)
	assert.Equal(t, created.ID, fetched.ID)
	require.Len(t, fetched.Trace, 2)
	assert.Equal(t, model.OutcomeBalanced, fetched.Trace[0].Outcome)
	assert.InDelta(t, 480, fetched.Trace[0].StorageAfterKWh, 1e-9)

	w = do(t, r, http.MethodGet, "/api/v1/simulations/"+created.ID+"/trace", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var trace models.TraceResponse
	decode(t, w, &trace)
	assert.Len(t, trace.Trace, 2)

	w = do(t, r, http.MethodGet, "/api/v1/simulations/"+created.ID+"/trace?format=csv", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "hour,speed_ms,"))
}

func TestRunSimulationIncludeTraceAndLimit(t *testing.T) {
	r := newTestRouter(t)

	req := baselineRequest()
	req["options"] = map[string]interface{}{"include_trace": true, "limit_hours": 1}
	w := do(t, r, http.MethodPost, "/api/v1/simulations", req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.SimulationResponse
	decode(t, w, &resp)
	assert.Len(t, resp.Trace, 1)
	assert.Equal(t, 1, resp.Summary.Hours)
}

func TestRunSimulationWithTurbinePreset(t *testing.T) {
	r := newTestRouter(t)

	req := baselineRequest()
	cfg := req["config"].(map[string]interface{})
	cfg["turbine_file"] = "test_e82"
	cfg["turbine"] = map[string]interface{}{"count": 1}
	w := do(t, r, http.MethodPost, "/api/v1/simulations", req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	cfg["turbine_file"] = "missing"
	w = do(t, r, http.MethodPost, "/api/v1/simulations", req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var errResp models.ErrorResponse
	decode(t, w, &errResp)
	assert.Equal(t, models.CodeInvalidConfig, errResp.Error.Code)
}

func TestRunSimulationErrors(t *testing.T) {
	r := newTestRouter(t)

	cases := []struct {
		name string
		body interface{}
		code string
	}{
		{name: "malformed json", body: `{"config":`, code: models.CodeInvalidRequest},
		{name: "missing series", body: map[string]interface{}{"config": map[string]interface{}{}}, code: models.CodeInvalidRequest},
		{
			name: "missing capacity",
			body: map[string]interface{}{
				"config": map[string]interface{}{"strategy": map[string]interface{}{"name": "baseline"}},
				"series": map[string]interface{}{"speeds": []float64{1}, "demand": []float64{1}},
			},
			code: models.CodeInvalidConfig,
		},
		{
			name: "initial above capacity",
			body: map[string]interface{}{
				"config": map[string]interface{}{"storage": map[string]interface{}{"max_capacity_kwh": 10, "initial_kwh": 11}},
				"series": map[string]interface{}{"speeds": []float64{1}, "demand": []float64{1}},
			},
			code: models.CodeInvalidConfig,
		},
		{
			name: "unknown strategy",
			body: map[string]interface{}{
				"config": map[string]interface{}{
					"storage":  map[string]interface{}{"max_capacity_kwh": 10},
					"strategy": map[string]interface{}{"name": "oracle"},
				},
				"series": map[string]interface{}{"speeds": []float64{1}, "demand": []float64{1}},
			},
			code: models.CodeInvalidConfig,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(t, r, http.MethodPost, "/api/v1/simulations", tc.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var resp models.ErrorResponse
			decode(t, w, &resp)
			assert.Equal(t, tc.code, resp.Error.Code)
		})
	}
}

func TestGetUnknownSimulation(t *testing.T) {
	r := newTestRouter(t)

	for _, path := range []string{
		"/api/v1/simulations/nope",
		"/api/v1/simulations/6f1c3c1e-1a2b-4c3d-9e8f-0a1b2c3d4e5f/trace",
	} {
		w := do(t, r, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		var resp models.ErrorResponse
		decode(t, w, &resp)
		assert.Equal(t, models.CodeNotFound, resp.Error.Code)
	}
}

func TestCompareSimulations(t *testing.T) {
	r := newTestRouter(t)

	body := map[string]interface{}{
		"base_config": map[string]interface{}{
			"storage":  map[string]interface{}{"max_capacity_kwh": 1000, "initial_kwh": 0},
			"strategy": map[string]interface{}{"name": "baseline"},
		},
		"series": map[string]interface{}{
			"speeds": []float64{0, 0, 0},
			"demand": []float64{10, 10, 10},
		},
		"variations": []map[string]interface{}{
			{"name": "empty", "config": map[string]interface{}{}},
			{"name": "full", "config": map[string]interface{}{"initial_kwh": 1000}},
			{"name": "broken", "config": map[string]interface{}{"max_capacity_kwh": -1}},
		},
	}
	w := do(t, r, http.MethodPost, "/api/v1/simulations/compare", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.CompareResponse
	decode(t, w, &resp)
	require.Len(t, resp.Comparison, 3)
	assert.InDelta(t, 60, resp.Comparison[0].Summary.TotalShortageKWh, 1e-9)
	assert.Equal(t, 0.0, resp.Comparison[1].Summary.TotalShortageKWh)
	assert.NotEmpty(t, resp.Comparison[2].Error)
	assert.Empty(t, resp.Comparison[2].ID)

	require.Len(t, resp.Ranking, 2)
	assert.Equal(t, "full", resp.Ranking[0].Name)
	assert.Equal(t, "empty", resp.Ranking[1].Name)

	// Compared runs are stored too.
	w = do(t, r, http.MethodGet, "/api/v1/simulations/"+resp.Comparison[0].ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodPost, "/api/v1/simulations/compare", map[string]interface{}{"variations": []interface{}{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListStrategiesAndTurbines(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/v1/strategies", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var strategies struct {
		Strategies []models.StrategyInfo `json:"strategies"`
	}
	decode(t, w, &strategies)
	require.Len(t, strategies.Strategies, 2)
	assert.Equal(t, "forecast", strategies.Strategies[0].Name)
	assert.Equal(t, "baseline", strategies.Strategies[1].Name)

	w = do(t, r, http.MethodGet, "/api/v1/turbines", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var turbines struct {
		Turbines []models.TurbineInfo `json:"turbines"`
	}
	decode(t, w, &turbines)
	require.Len(t, turbines.Turbines, 1)
	assert.Equal(t, "test_e82", turbines.Turbines[0].ID)
	assert.Equal(t, "Test E-82", turbines.Turbines[0].Name)
	assert.Equal(t, 2, turbines.Turbines[0].Specs.Count)
}

func TestCORSPreflight(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/simulations", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
