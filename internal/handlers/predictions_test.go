package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/courtside/tennis-stats-api/internal/logic"
	"github.com/courtside/tennis-stats-api/internal/models"
)

func TestGetPredictionHistory(t *testing.T) {
	var got logic.PredictionHistoryRequest
	history := &MockPredictionHistory{RecentFunc: func(_ context.Context, req logic.PredictionHistoryRequest) ([]models.LoggedPrediction, error) {
		got = req
		return []models.LoggedPrediction{{Player1: "Jannik Sinner", Player2: "Carlos Alcaraz", WinProbabilityP1: 0.512}}, nil
	}}
	router := New(Config{Service: &MockTennisService{}, History: history, Logger: zap.NewNop()}).Routes()

	w := do(t, router, http.MethodGet, "/api/v1/predictions/history?player=Sinner&surface=clay&limit=5&since=2026-04-01T00:00:00Z")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, "Sinner", got.Player)
	require.NotNil(t, got.Surface)
	assert.Equal(t, models.SurfaceClay, *got.Surface)
	assert.Equal(t, 5, got.Limit)
	assert.Equal(t, time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC), got.Since)

	var body []models.LoggedPrediction
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body, 1)
}

func TestGetPredictionHistoryBadInput(t *testing.T) {
	router := New(Config{Service: &MockTennisService{}, History: &MockPredictionHistory{}, Logger: zap.NewNop()}).Routes()

	for _, target := range []string{
		"/api/v1/predictions/history?limit=abc",
		"/api/v1/predictions/history?limit=5000",
		"/api/v1/predictions/history?since=yesterday",
		"/api/v1/predictions/history?surface=sand",
	} {
		w := do(t, router, http.MethodGet, target)
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
	}
}

func TestGetPredictionHistoryDisabled(t *testing.T) {
	w := do(t, newTestHandler(&MockTennisService{}, nil), http.MethodGet, "/api/v1/predictions/history")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
