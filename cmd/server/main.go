// Command server runs the tennis stats HTTP API.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"go.uber.org/zap"

	_ "github.com/courtside/tennis-stats-api/docs"
	"github.com/courtside/tennis-stats-api/internal/cache"
	"github.com/courtside/tennis-stats-api/internal/config"
	"github.com/courtside/tennis-stats-api/internal/handlers"
	"github.com/courtside/tennis-stats-api/internal/logic"
	"github.com/courtside/tennis-stats-api/internal/providers"
	"github.com/courtside/tennis-stats-api/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Server exited", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if cfg.Env == "development" {
		zcfg = zap.NewDevelopmentConfig()
	}
	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	zcfg.Level = level
	return zcfg.Build()
}

func run(cfg *config.Config, logger *zap.Logger) error {
	sugar := logger.Sugar()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	checks := make(map[string]handlers.PingFunc)

	backend, err := cache.OpenBackend(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer backend.Close()
	checks[backend.Name] = backend.Ping

	chain := providers.NewChainFromConfig(cfg.Providers, logger)
	sugar.Infow("Providers configured", "sources", chain.Sources())

	statsCache := cache.New(chain, backend.Store, logger)

	var serviceOpts []logic.ServiceOption
	var history logic.PredictionHistory
	if cfg.ClickHouseURL != "" {
		opts, err := clickhouse.ParseDSN(cfg.ClickHouseURL)
		if err != nil {
			return fmt.Errorf("parse CLICKHOUSE_URL: %w", err)
		}
		conn, err := clickhouse.Open(opts)
		if err != nil {
			return fmt.Errorf("open clickhouse: %w", err)
		}
		defer conn.Close()

		recorder := worker.NewPredictionRecorder(worker.RecorderConfig{
			Conn:          conn,
			BatchSize:     cfg.BatchSize,
			FlushInterval: cfg.FlushInterval,
			Logger:        logger,
		})
		if err := recorder.EnsureSchema(ctx); err != nil {
			sugar.Warnw("Prediction log disabled", "error", err)
		} else {
			recorder.Start()
			defer recorder.Stop()
			serviceOpts = append(serviceOpts, logic.WithPredictionSink(recorder))
			history = logic.NewPredictionHistory(conn)
			checks["clickhouse"] = conn.Ping
		}
	}

	service := logic.NewTennisService(chain, statsCache, logger, serviceOpts...)

	pool := worker.NewPool(worker.PoolConfig{
		WorkerCount: cfg.WorkerCount,
		QueueSize:   cfg.QueueSize,
		JobTimeout:  4 * cfg.Providers.Timeout,
		Refresher:   statsCache,
		Logger:      logger,
	})
	pool.Start(ctx)
	defer pool.Stop()

	go func() {
		today, err := service.GetMatchesForToday(ctx)
		if err != nil {
			sugar.Warnw("Startup warmup skipped", "error", err)
			return
		}
		sugar.Infow("Warming today's players", "matches", len(today.Matches), "source", today.Source,
			"queued", pool.WarmToday(today.Matches))
	}()

	h := handlers.New(handlers.Config{
		Service:        service,
		History:        history,
		RefreshQueue:   pool,
		Checks:         checks,
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         logger,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      h.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		sugar.Infow("Starting server", "port", cfg.Port, "env", cfg.Env, "store", cfg.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	sugar.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
