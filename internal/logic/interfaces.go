package logic

import (
	"context"

	"github.com/courtside/tennis-stats-api/internal/models"
	"github.com/courtside/tennis-stats-api/internal/providers"
)

// TennisService is the public surface used by the HTTP handlers.
type TennisService interface {
	GetMatchesForToday(ctx context.Context) (*models.TodayMatches, error)
	GetPlayerMetrics(ctx context.Context, name string, surface *models.Surface) (*models.AggregateMetrics, error)
	RefreshPlayer(ctx context.Context, name string) (*models.PlayerProfile, error)
	Predict(ctx context.Context, player1, player2 string, surface *models.Surface) (*models.Prediction, error)
	PredictToday(ctx context.Context, surface *models.Surface) ([]models.TodayPrediction, error)
}

// StatsCache serves player metrics, acquiring histories on a miss.
type StatsCache interface {
	Get(ctx context.Context, name string, surface *models.Surface) (*models.AggregateMetrics, error)
	Refresh(ctx context.Context, name string) (*models.PlayerProfile, error)
}

// MatchFinder looks up today's matchups.
type MatchFinder interface {
	Today(ctx context.Context) providers.TodayResult
}

// PredictionSink receives every prediction made. Record must not block.
type PredictionSink interface {
	Record(p *models.Prediction)
}
