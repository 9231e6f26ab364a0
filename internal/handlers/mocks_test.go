package handlers

import (
	"context"

	"github.com/courtside/tennis-stats-api/internal/logic"
	"github.com/courtside/tennis-stats-api/internal/models"
)

// MockTennisService implements logic.TennisService for testing
type MockTennisService struct {
	logic.TennisService
	GetMatchesForTodayFunc func(ctx context.Context) (*models.TodayMatches, error)
	GetPlayerMetricsFunc   func(ctx context.Context, name string, surface *models.Surface) (*models.AggregateMetrics, error)
	RefreshPlayerFunc      func(ctx context.Context, name string) (*models.PlayerProfile, error)
	PredictFunc            func(ctx context.Context, p1, p2 string, surface *models.Surface) (*models.Prediction, error)
	PredictTodayFunc       func(ctx context.Context, surface *models.Surface) ([]models.TodayPrediction, error)
}

func (m *MockTennisService) GetMatchesForToday(ctx context.Context) (*models.TodayMatches, error) {
	if m.GetMatchesForTodayFunc != nil {
		return m.GetMatchesForTodayFunc(ctx)
	}
	return &models.TodayMatches{Matches: []models.MatchPairing{}}, nil
}

func (m *MockTennisService) GetPlayerMetrics(ctx context.Context, name string, surface *models.Surface) (*models.AggregateMetrics, error) {
	if m.GetPlayerMetricsFunc != nil {
		return m.GetPlayerMetricsFunc(ctx, name, surface)
	}
	return &models.AggregateMetrics{Player: name}, nil
}

func (m *MockTennisService) RefreshPlayer(ctx context.Context, name string) (*models.PlayerProfile, error) {
	if m.RefreshPlayerFunc != nil {
		return m.RefreshPlayerFunc(ctx, name)
	}
	return &models.PlayerProfile{Name: name}, nil
}

func (m *MockTennisService) Predict(ctx context.Context, p1, p2 string, surface *models.Surface) (*models.Prediction, error) {
	if m.PredictFunc != nil {
		return m.PredictFunc(ctx, p1, p2, surface)
	}
	return &models.Prediction{Player1: p1, Player2: p2, Surface: surface, WinProbabilityP1: 0.5, WinProbabilityP2: 0.5}, nil
}

func (m *MockTennisService) PredictToday(ctx context.Context, surface *models.Surface) ([]models.TodayPrediction, error) {
	if m.PredictTodayFunc != nil {
		return m.PredictTodayFunc(ctx, surface)
	}
	return []models.TodayPrediction{}, nil
}

// MockRefreshQueue implements RefreshQueue for testing
type MockRefreshQueue struct {
	EnqueueFunc func(player string) bool
	Enqueued    []string
	Warmed      []models.MatchPairing
}

func (m *MockRefreshQueue) Enqueue(player string) bool {
	m.Enqueued = append(m.Enqueued, player)
	if m.EnqueueFunc != nil {
		return m.EnqueueFunc(player)
	}
	return true
}

func (m *MockRefreshQueue) WarmToday(pairings []models.MatchPairing) int {
	m.Warmed = append(m.Warmed, pairings...)
	return 2 * len(pairings)
}

func (m *MockRefreshQueue) QueueDepth() int { return len(m.Enqueued) }

// MockPredictionHistory implements logic.PredictionHistory for testing
type MockPredictionHistory struct {
	RecentFunc func(ctx context.Context, req logic.PredictionHistoryRequest) ([]models.LoggedPrediction, error)
}

func (m *MockPredictionHistory) Recent(ctx context.Context, req logic.PredictionHistoryRequest) ([]models.LoggedPrediction, error) {
	if m.RecentFunc != nil {
		return m.RecentFunc(ctx, req)
	}
	return []models.LoggedPrediction{}, nil
}
