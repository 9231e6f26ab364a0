package handlers

import (
	"net/http"
)

// GetTodayMatches returns today's matchups
// @Summary Today's matchups
// @Description Live providers are tried in order; sample matchups are served when none answer
// @Tags Matches
// @Produce json
// @Success 200 {object} models.TodayMatches
// @Router /api/v1/matches/today [get]
func (h *Handler) GetTodayMatches(w http.ResponseWriter, r *http.Request) {
	today, err := h.service.GetMatchesForToday(r.Context())
	if err != nil {
		h.serviceError(w, err, "Failed to get today's matches")
		return
	}
	h.jsonResponse(w, http.StatusOK, today)
}

// WarmTodayPlayers queues a history refresh for every player in today's matchups
// @Summary Warm the cache for today's players
// @Tags Matches
// @Produce json
// @Success 202 {object} map[string]interface{}
// @Failure 503 {object} map[string]string
// @Router /api/v1/matches/today/warm [post]
func (h *Handler) WarmTodayPlayers(w http.ResponseWriter, r *http.Request) {
	if h.queue == nil {
		h.errorResponse(w, http.StatusServiceUnavailable, "Refresh queue disabled")
		return
	}

	today, err := h.service.GetMatchesForToday(r.Context())
	if err != nil {
		h.serviceError(w, err, "Failed to get today's matches")
		return
	}

	accepted := h.queue.WarmToday(today.Matches)
	h.jsonResponse(w, http.StatusAccepted, map[string]interface{}{
		"matches":  len(today.Matches),
		"accepted": accepted,
		"source":   today.Source,
	})
}
