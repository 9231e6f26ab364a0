package cache

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/courtside/tennis-stats-api/internal/config"
)

// Backend is an opened Store with its health check and cleanup.
type Backend struct {
	Name  string
	Store Store
	Ping  func(ctx context.Context) error
	Close func()
}

// OpenBackend builds the Store named by cfg.StoreBackend.
func OpenBackend(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Backend, error) {
	switch cfg.StoreBackend {
	case config.BackendRedis:
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		client := redis.NewClient(opts)
		return &Backend{
			Name:  config.BackendRedis,
			Store: NewRedisStore(client, 0, logger),
			Ping:  func(ctx context.Context) error { return client.Ping(ctx).Err() },
			Close: func() { client.Close() },
		}, nil

	case config.BackendPostgres:
		pool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		store := NewPostgresStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		return &Backend{
			Name:  config.BackendPostgres,
			Store: store,
			Ping:  pool.Ping,
			Close: pool.Close,
		}, nil

	default:
		store, err := NewFileStore(cfg.CacheDir, logger)
		if err != nil {
			return nil, err
		}
		return &Backend{
			Name:  config.BackendFile,
			Store: store,
			Ping: func(context.Context) error {
				_, err := os.Stat(cfg.CacheDir)
				return err
			},
			Close: func() {},
		}, nil
	}
}
