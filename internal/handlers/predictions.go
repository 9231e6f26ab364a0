package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/courtside/tennis-stats-api/internal/logic"
	"github.com/courtside/tennis-stats-api/internal/models"
)

// Predict forecasts a head-to-head match
// @Summary Predict a match
// @Description Weighted comparison of win rate, aces, efficiency and consistency
// @Tags Predictions
// @Produce json
// @Param player1 query string true "First player"
// @Param player2 query string true "Second player"
// @Param surface query string false "Hard, Clay, Grass or Indoor"
// @Success 200 {object} models.Prediction
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string "Not Found"
// @Router /api/v1/predict [get]
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	q := models.PredictQuery{
		Player1: params.Get("player1"),
		Player2: params.Get("player2"),
		Surface: params.Get("surface"),
	}
	if err := h.validator.Struct(q); err != nil {
		h.validationError(w, err)
		return
	}
	surface, err := surfaceParam(q.Surface)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	pred, err := h.service.Predict(r.Context(), q.Player1, q.Player2, surface)
	if err != nil {
		h.serviceError(w, err, "Failed to predict match", "player1", q.Player1, "player2", q.Player2)
		return
	}
	h.jsonResponse(w, http.StatusOK, pred)
}

// PredictToday forecasts every matchup of the day
// @Summary Predict today's matchups
// @Tags Predictions
// @Produce json
// @Param surface query string false "Overrides each matchup's surface"
// @Success 200 {array} models.TodayPrediction
// @Failure 400 {object} map[string]string
// @Router /api/v1/predict/today [get]
func (h *Handler) PredictToday(w http.ResponseWriter, r *http.Request) {
	surface, err := surfaceParam(r.URL.Query().Get("surface"))
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	preds, err := h.service.PredictToday(r.Context(), surface)
	if err != nil {
		h.serviceError(w, err, "Failed to predict today's matches")
		return
	}
	h.jsonResponse(w, http.StatusOK, preds)
}

// GetPredictionHistory lists logged predictions, newest first
// @Summary Prediction history
// @Tags Predictions
// @Produce json
// @Param player query string false "Either side of the matchup"
// @Param surface query string false "Hard, Clay, Grass or Indoor"
// @Param since query string false "RFC 3339 timestamp"
// @Param limit query int false "At most 1000, default 50"
// @Success 200 {array} models.LoggedPrediction
// @Failure 400 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /api/v1/predictions/history [get]
func (h *Handler) GetPredictionHistory(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		h.errorResponse(w, http.StatusServiceUnavailable, "Prediction log disabled")
		return
	}

	params := r.URL.Query()
	q := models.PredictionHistoryQuery{
		Player:  params.Get("player"),
		Surface: params.Get("surface"),
	}
	if raw := params.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			h.errorResponse(w, http.StatusBadRequest, "invalid limit")
			return
		}
		q.Limit = limit
	}
	if err := h.validator.Struct(q); err != nil {
		h.validationError(w, err)
		return
	}
	surface, err := surfaceParam(q.Surface)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	req := logic.PredictionHistoryRequest{Player: q.Player, Surface: surface, Limit: q.Limit}
	if raw := params.Get("since"); raw != "" {
		since, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.errorResponse(w, http.StatusBadRequest, "invalid since")
			return
		}
		req.Since = since
	}

	preds, err := h.history.Recent(r.Context(), req)
	if err != nil {
		h.serviceError(w, err, "Failed to read prediction history")
		return
	}
	h.jsonResponse(w, http.StatusOK, preds)
}
