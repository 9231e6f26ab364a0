package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/swaggo/swag"

	"github.com/courtside/tennis-stats-api/internal/cache"
	"github.com/courtside/tennis-stats-api/internal/models"
)

// Health check endpoint
// @Summary Liveness probe
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

// Ready check endpoint
// @Summary Readiness probe
// @Description Pings the configured store and prediction log
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /ready [get]
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	checks := make(map[string]bool, len(h.checks))
	allHealthy := true
	for name, ping := range h.checks {
		ok := ping(ctx) == nil
		checks[name] = ok
		if !ok {
			allHealthy = false
		}
	}

	body := map[string]interface{}{
		"ready":  allHealthy,
		"checks": checks,
	}
	if h.queue != nil {
		body["queueDepth"] = h.queue.QueueDepth()
	}

	status := http.StatusOK
	if !allHealthy {
		status = http.StatusServiceUnavailable
	}
	h.jsonResponse(w, status, body)
}

// SwaggerDoc serves the registered OpenAPI document.
func (h *Handler) SwaggerDoc(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		h.errorResponse(w, http.StatusNotFound, "API docs not registered")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(doc))
}

func (h *Handler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Warnw("Failed to encode response", "error", err)
	}
}

func (h *Handler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{"error": message})
}

// serviceError maps a service error onto a status code.
func (h *Handler) serviceError(w http.ResponseWriter, err error, msg string, kv ...interface{}) {
	var nf *cache.NotFoundError
	switch {
	case errors.As(err, &nf):
		h.errorResponse(w, http.StatusNotFound, "No match history found for "+nf.Player)
	case errors.Is(err, cache.ErrNotFound):
		h.errorResponse(w, http.StatusNotFound, "Player not found")
	case errors.Is(err, context.DeadlineExceeded):
		h.errorResponse(w, http.StatusGatewayTimeout, "Upstream sources timed out")
	default:
		h.logger.Errorw(msg, append(kv, "error", err)...)
		h.errorResponse(w, http.StatusInternalServerError, msg)
	}
}

// validationError renders the first failing field.
func (h *Handler) validationError(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		f := verrs[0]
		h.errorResponse(w, http.StatusBadRequest, "invalid "+strings.ToLower(f.Field())+": failed "+f.Tag())
		return
	}
	h.errorResponse(w, http.StatusBadRequest, err.Error())
}

// surfaceParam parses an optional surface. An empty string means no filter.
func surfaceParam(raw string) (*models.Surface, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	s, err := models.ParseSurface(raw)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
