package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/courtside/tennis-stats-api/internal/models"
)

// GetPlayerMetrics returns aggregated metrics for a player
// @Summary Player metrics
// @Description Overall and per-surface averages over the player's most recent matches
// @Tags Players
// @Produce json
// @Param name path string true "Player name"
// @Param surface query string false "Hard, Clay, Grass or Indoor"
// @Success 200 {object} models.AggregateMetrics
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string "Not Found"
// @Router /api/v1/players/{name}/metrics [get]
func (h *Handler) GetPlayerMetrics(w http.ResponseWriter, r *http.Request) {
	q := models.PlayerMetricsQuery{
		Name:    chi.URLParam(r, "name"),
		Surface: r.URL.Query().Get("surface"),
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

	metrics, err := h.service.GetPlayerMetrics(r.Context(), q.Name, surface)
	if err != nil {
		h.serviceError(w, err, "Failed to get player metrics", "player", q.Name)
		return
	}
	h.jsonResponse(w, http.StatusOK, metrics)
}

// RefreshPlayer refetches a player's history. With ?async=true the refresh
// is queued on the background pool instead.
// @Summary Refresh player history
// @Tags Players
// @Produce json
// @Param name path string true "Player name"
// @Param async query bool false "Queue the refresh instead of waiting"
// @Success 200 {object} models.RefreshResponse
// @Success 202 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 503 {object} map[string]string "Queue full"
// @Router /api/v1/players/{name}/refresh [post]
func (h *Handler) RefreshPlayer(w http.ResponseWriter, r *http.Request) {
	q := models.PlayerMetricsQuery{Name: chi.URLParam(r, "name")}
	if err := h.validator.Struct(q); err != nil {
		h.validationError(w, err)
		return
	}

	if r.URL.Query().Get("async") == "true" && h.queue != nil {
		if !h.queue.Enqueue(q.Name) {
			h.errorResponse(w, http.StatusServiceUnavailable, "Refresh queue full")
			return
		}
		h.jsonResponse(w, http.StatusAccepted, map[string]interface{}{
			"player": q.Name,
			"queued": true,
		})
		return
	}

	profile, err := h.service.RefreshPlayer(r.Context(), q.Name)
	if err != nil {
		h.serviceError(w, err, "Failed to refresh player", "player", q.Name)
		return
	}
	h.jsonResponse(w, http.StatusOK, models.RefreshResponse{
		Player:  profile.Name,
		Matches: len(profile.Matches),
		Source:  profile.Source,
	})
}
