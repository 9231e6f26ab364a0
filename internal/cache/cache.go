// Package cache keeps each player's recent match history in memory, backed
// by a durable Store, and refreshes it through the acquisition chain.
package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/courtside/tennis-stats-api/internal/logic"
	"github.com/courtside/tennis-stats-api/internal/models"
)

// HistoryFetcher acquires a player's recent matches and names the source.
type HistoryFetcher interface {
	History(ctx context.Context, player string) ([]models.MatchRecord, string, error)
}

// PlayerStatsCache serves player profiles and their aggregates. A profile
// loaded or refreshed since startup is fresh; there is no expiry.
type PlayerStatsCache struct {
	history HistoryFetcher
	store   Store
	logger  *zap.SugaredLogger
	now     func() time.Time

	mu       sync.RWMutex
	profiles map[string]*models.PlayerProfile
	locks    *keyedMutex
}

func New(history HistoryFetcher, store Store, logger *zap.Logger) *PlayerStatsCache {
	return &PlayerStatsCache{
		history:  history,
		store:    store,
		logger:   logger.Sugar(),
		now:      time.Now,
		profiles: make(map[string]*models.PlayerProfile),
		locks:    newKeyedMutex(),
	}
}

// Get returns the aggregate metrics for a player, with the surface
// breakdown filled in when surface is set.
func (c *PlayerStatsCache) Get(ctx context.Context, name string, surface *models.Surface) (*models.AggregateMetrics, error) {
	profile, err := c.GetProfile(ctx, name, false)
	if err != nil {
		return nil, err
	}
	metrics := logic.Aggregate(profile.Name, profile.Matches)
	if surface != nil {
		ms := metrics.BySurface[*surface]
		metrics.Surface = surface
		metrics.SurfaceMetrics = &ms
	}
	return &metrics, nil
}

// Refresh refetches a player's history and merges it into the profile.
func (c *PlayerStatsCache) Refresh(ctx context.Context, name string) (*models.PlayerProfile, error) {
	return c.GetProfile(ctx, name, true)
}

// GetProfile returns the player's profile. The read path is memory, then
// the store, then a refresh; force skips straight to the refresh.
func (c *PlayerStatsCache) GetProfile(ctx context.Context, name string, force bool) (*models.PlayerProfile, error) {
	key := models.NormalizeName(name)
	if key == "" {
		return nil, &NotFoundError{Player: name, Err: errors.New("empty player name")}
	}

	if !force {
		if p, ok := c.memory(key); ok {
			cacheLookups.WithLabelValues("memory").Inc()
			return p, nil
		}
	}

	unlock := c.locks.Lock(key)
	defer unlock()

	if !force {
		// Another caller may have filled it while we waited.
		if p, ok := c.memory(key); ok {
			cacheLookups.WithLabelValues("memory").Inc()
			return p, nil
		}
	}

	stored, err := c.store.Load(ctx, name)
	switch {
	case err == nil:
	case errors.Is(err, ErrNotStored):
		stored = nil
	default:
		storeErrors.WithLabelValues("load").Inc()
		c.logger.Warnw("Failed to load stored profile", "player", name, "error", err)
		stored = nil
	}

	if !force && len(stored) > 0 {
		cacheLookups.WithLabelValues("store").Inc()
		return c.remember(key, name, stored, "store"), nil
	}
	if !force {
		cacheLookups.WithLabelValues("miss").Inc()
	}

	return c.refreshLocked(ctx, key, name, stored)
}

func (c *PlayerStatsCache) refreshLocked(ctx context.Context, key, name string, stored []models.MatchRecord) (*models.PlayerProfile, error) {
	existing, existingSource := stored, "store"
	if p, ok := c.memory(key); ok && len(p.Matches) > 0 {
		existing, existingSource = p.Matches, p.Source
	}

	fetched, source, err := c.history.History(ctx, name)
	if err != nil {
		cacheRefreshes.WithLabelValues("failed").Inc()
		if len(existing) > 0 {
			c.logger.Warnw("Refresh failed, keeping existing history", "player", name, "error", err)
			return c.remember(key, name, existing, existingSource), nil
		}
		return nil, &NotFoundError{Player: name, Err: err}
	}

	merged := Merge(existing, fetched)
	if err := c.store.Save(ctx, name, merged); err != nil {
		storeErrors.WithLabelValues("save").Inc()
		c.logger.Errorw("Failed to persist profile", "player", name, "error", err)
	}

	cacheRefreshes.WithLabelValues("success").Inc()
	c.logger.Infow("Refreshed player history", "player", name, "source", source, "fetched", len(fetched), "kept", len(merged))
	return c.remember(key, name, merged, source), nil
}

// memory returns a copy of the in-memory profile for key.
func (c *PlayerStatsCache) memory(key string) (*models.PlayerProfile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.profiles[key]
	if !ok {
		return nil, false
	}
	return cloneProfile(p), true
}

func (c *PlayerStatsCache) remember(key, name string, records []models.MatchRecord, source string) *models.PlayerProfile {
	sorted := append([]models.MatchRecord(nil), records...)
	sortRecent(sorted)
	if len(sorted) > models.RetentionWindow {
		sorted = sorted[:models.RetentionWindow]
	}
	p := &models.PlayerProfile{
		Name:     models.DisplayName(name),
		Key:      key,
		Matches:  sorted,
		LoadedAt: c.now(),
		Source:   source,
	}

	c.mu.Lock()
	c.profiles[key] = p
	cachedProfiles.Set(float64(len(c.profiles)))
	c.mu.Unlock()
	return cloneProfile(p)
}

// Len reports how many profiles are held in memory.
func (c *PlayerStatsCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.profiles)
}

func cloneProfile(p *models.PlayerProfile) *models.PlayerProfile {
	out := *p
	out.Matches = append([]models.MatchRecord(nil), p.Matches...)
	return &out
}
