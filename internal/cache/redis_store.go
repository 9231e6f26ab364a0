package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/courtside/tennis-stats-api/internal/models"
)

const redisKeyPrefix = "tennis:player:"

// RedisClient is the subset of the go-redis client the store uses.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RedisStore keeps each history as a JSON array under tennis:player:<key>.
type RedisStore struct {
	client RedisClient
	ttl    time.Duration
	logger *zap.SugaredLogger
}

// NewRedisStore builds the store. A zero ttl keeps entries until overwritten.
func NewRedisStore(client RedisClient, ttl time.Duration, logger *zap.Logger) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, logger: logger.Sugar()}
}

func redisKey(player string) string {
	return redisKeyPrefix + models.NormalizeName(player)
}

func (s *RedisStore) Load(ctx context.Context, player string) ([]models.MatchRecord, error) {
	data, err := s.client.Get(ctx, redisKey(player)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotStored
	}
	if err != nil {
		return nil, err
	}
	records, dropped, err := decodeRecords(data)
	if err != nil {
		return nil, err
	}
	if dropped > 0 {
		s.logger.Warnw("Dropped unreadable cached records", "player", player, "dropped", dropped)
	}
	return records, nil
}

func (s *RedisStore) Save(ctx context.Context, player string, records []models.MatchRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, redisKey(player), data, s.ttl).Err()
}
