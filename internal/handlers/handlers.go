package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/courtside/tennis-stats-api/internal/logic"
	"github.com/courtside/tennis-stats-api/internal/models"
)

// RefreshQueue defines the interface for the background refresh pool
type RefreshQueue interface {
	Enqueue(player string) bool
	WarmToday(pairings []models.MatchPairing) int
	QueueDepth() int
}

// PingFunc reports whether a dependency is reachable.
type PingFunc func(ctx context.Context) error

type Config struct {
	Service        logic.TennisService
	History        logic.PredictionHistory // nil when no prediction log is configured
	RefreshQueue   RefreshQueue
	Checks         map[string]PingFunc
	AllowedOrigins []string
	RequestTimeout time.Duration
	Logger         *zap.Logger
}

type Handler struct {
	service   logic.TennisService
	history   logic.PredictionHistory
	queue     RefreshQueue
	checks    map[string]PingFunc
	origins   []string
	timeout   time.Duration
	logger    *zap.SugaredLogger
	validator *validator.Validate
}

func New(cfg Config) *Handler {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	return &Handler{
		service:   cfg.Service,
		history:   cfg.History,
		queue:     cfg.RefreshQueue,
		checks:    cfg.Checks,
		origins:   cfg.AllowedOrigins,
		timeout:   cfg.RequestTimeout,
		logger:    cfg.Logger.Sugar(),
		validator: validator.New(),
	}
}

// Routes builds the HTTP router.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: h.origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/doc.json", h.SwaggerDoc)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Timeout(h.timeout))

		r.Get("/matches/today", h.GetTodayMatches)
		r.Post("/matches/today/warm", h.WarmTodayPlayers)

		r.Get("/players/{name}/metrics", h.GetPlayerMetrics)
		r.Post("/players/{name}/refresh", h.RefreshPlayer)

		r.Get("/predict", h.Predict)
		r.Get("/predict/today", h.PredictToday)
		r.Get("/predictions/history", h.GetPredictionHistory)
	})

	return r
}

func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.logger.Debugw("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"requestId", middleware.GetReqID(r.Context()),
		)
	})
}
