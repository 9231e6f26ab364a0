package logic

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/courtside/tennis-stats-api/internal/models"
)

// predictTodayLimit bounds concurrent predictions in PredictToday.
const predictTodayLimit = 4

type tennisService struct {
	matches MatchFinder
	cache   StatsCache
	engine  *PredictionEngine
	sink    PredictionSink
	logger  *zap.SugaredLogger
}

// ServiceOption configures the service.
type ServiceOption func(*tennisService)

// WithPredictionSink sends every prediction to sink.
func WithPredictionSink(sink PredictionSink) ServiceOption {
	return func(s *tennisService) {
		s.sink = sink
	}
}

// WithEngine replaces the default prediction engine.
func WithEngine(e *PredictionEngine) ServiceOption {
	return func(s *tennisService) {
		s.engine = e
	}
}

func NewTennisService(matches MatchFinder, cache StatsCache, logger *zap.Logger, opts ...ServiceOption) TennisService {
	s := &tennisService{
		matches: matches,
		cache:   cache,
		engine:  NewPredictionEngine(),
		logger:  logger.Sugar(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetMatchesForToday never fails: the sample tier always answers.
func (s *tennisService) GetMatchesForToday(ctx context.Context) (*models.TodayMatches, error) {
	res := s.matches.Today(ctx)
	out := &models.TodayMatches{
		Date:     res.Date,
		Source:   res.Source,
		Fallback: res.Fallback,
		Matches:  res.Pairings,
	}
	if out.Matches == nil {
		out.Matches = []models.MatchPairing{}
	}
	return out, nil
}

func (s *tennisService) GetPlayerMetrics(ctx context.Context, name string, surface *models.Surface) (*models.AggregateMetrics, error) {
	return s.cache.Get(ctx, name, surface)
}

func (s *tennisService) RefreshPlayer(ctx context.Context, name string) (*models.PlayerProfile, error) {
	return s.cache.Refresh(ctx, name)
}

// Predict loads both players concurrently and forecasts the match. A player
// may be compared with themself; the result is an even split.
func (s *tennisService) Predict(ctx context.Context, player1, player2 string, surface *models.Surface) (*models.Prediction, error) {
	var m1, m2 *models.AggregateMetrics

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := s.cache.Get(ctx, player1, nil)
		if err != nil {
			return fmt.Errorf("player1: %w", err)
		}
		m1 = m
		return nil
	})
	g.Go(func() error {
		m, err := s.cache.Get(ctx, player2, nil)
		if err != nil {
			return fmt.Errorf("player2: %w", err)
		}
		m2 = m
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	pred := s.engine.Predict(models.DisplayName(player1), *m1, models.DisplayName(player2), *m2, surface)
	if s.sink != nil {
		s.sink.Record(pred)
	}
	return pred, nil
}

// PredictToday forecasts every matchup of the day. The surface argument
// overrides each matchup's own surface. Matchups with an unknown player
// carry the error instead of a prediction.
func (s *tennisService) PredictToday(ctx context.Context, surface *models.Surface) ([]models.TodayPrediction, error) {
	today, err := s.GetMatchesForToday(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.TodayPrediction, len(today.Matches))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(predictTodayLimit)

	for i, m := range today.Matches {
		out[i].Match = m
		g.Go(func() error {
			sf := m.Surface
			if surface != nil {
				sf = surface
			}
			pred, err := s.Predict(gctx, m.Player1, m.Player2, sf)
			if err != nil {
				s.logger.Warnw("Skipping matchup", "player1", m.Player1, "player2", m.Player2, "error", err)
				out[i].Error = err.Error()
				return nil
			}
			out[i].Prediction = pred
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
