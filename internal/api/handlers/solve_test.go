package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charlotteesavage/ev-scheduling-dp/internal/api/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(h *SolveHandler) *gin.Engine {
	r := gin.New()
	r.POST("/api/v1/solve", h.RunSolve)
	return r
}

func minimalRequest() models.SolveRequest {
	return models.SolveRequest{
		Activities: []models.ActivityPayload{
			{ID: 0, Group: 0, MinDuration: 1, MaxDuration: 20, EarliestStart: 0, LatestStart: 0},
			{ID: 1, Group: 0, MinDuration: 1, MaxDuration: 20, EarliestStart: 0, LatestStart: 19},
		},
		General: models.GeneralPayload{
			Horizon: 20, IntervalMinutes: 5, SpeedMetersPerMinute: 1000,
			DSSRMaxIterations: 10,
		},
		Tariff: models.TariffPayload{PeakFactor: 1, MidpeakFactor: 1, OffpeakFactor: 1},
		Charger: models.ChargerPayload{
			SlowKW: 7, FastKW: 22, RapidKW: 50,
			PriceHomeSlowPerKWh: 0.1, PriceACPerKWh: 0.25, PricePublicDCPerKWh: 0.4,
		},
		Battery:    models.BatteryPayload{CapacityKWh: 50, ConsumptionKWhPerKm: 0},
		InitialSoC: 1.0,
	}
}

func postJSON(t *testing.T, r *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/solve", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRunSolveFeasibleReturnsOK(t *testing.T) {
	h := NewSolveHandler(nil)
	r := newRouter(h)

	rec := postJSON(t, r, minimalRequest())
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp models.SolveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Len(t, resp.Steps, 2)
}

func TestRunSolveInfeasibleReturns422(t *testing.T) {
	h := NewSolveHandler(nil)
	r := newRouter(h)

	req := minimalRequest()
	req.Activities[1].EarliestStart = 9999
	req.Activities[1].LatestStart = 9999

	rec := postJSON(t, r, req)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "INFEASIBLE", resp.Error.Code)
}

func TestRunSolveBadJSONReturns400(t *testing.T) {
	h := NewSolveHandler(nil)
	r := newRouter(h)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/solve", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRunSolveMissingBatteryCapacityReturns400(t *testing.T) {
	h := NewSolveHandler(nil)
	r := newRouter(h)

	req := minimalRequest()
	req.Battery.CapacityKWh = 0 // fails domain.GeneralParams.Validate

	rec := postJSON(t, r, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
