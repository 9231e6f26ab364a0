package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	_ "github.com/courtside/tennis-stats-api/docs"
	"github.com/courtside/tennis-stats-api/internal/cache"
	"github.com/courtside/tennis-stats-api/internal/models"
)

func newTestHandler(svc *MockTennisService, queue RefreshQueue) http.Handler {
	h := New(Config{
		Service:        svc,
		RefreshQueue:   queue,
		AllowedOrigins: []string{"http://localhost:3000"},
		Logger:         zap.NewNop(),
	})
	return h.Routes()
}

func do(t *testing.T, router http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPredict_TableDriven(t *testing.T) {
	notFound := &cache.NotFoundError{Player: "Nobody", Err: errors.New("all sources failed")}

	tests := []struct {
		name           string
		query          string
		predictErr     error
		expectedStatus int
		expectSurface  *models.Surface
	}{
		{
			name:           "Happy Path",
			query:          "?player1=Sinner&player2=Alcaraz",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Surface Is Case Insensitive",
			query:          "?player1=Sinner&player2=Alcaraz&surface=hard",
			expectedStatus: http.StatusOK,
			expectSurface:  ptr(models.SurfaceHard),
		},
		{
			name:           "Missing Player2",
			query:          "?player1=Sinner",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Unknown Surface",
			query:          "?player1=Sinner&player2=Alcaraz&surface=sand",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Unknown Player",
			query:          "?player1=Sinner&player2=Nobody",
			predictErr:     notFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Service Error",
			query:          "?player1=Sinner&player2=Alcaraz",
			predictErr:     errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotSurface *models.Surface
			svc := &MockTennisService{PredictFunc: func(_ context.Context, p1, p2 string, s *models.Surface) (*models.Prediction, error) {
				gotSurface = s
				if tt.predictErr != nil {
					return nil, tt.predictErr
				}
				return &models.Prediction{Player1: p1, Player2: p2, Favorite: p1, WinProbabilityP1: 0.512, WinProbabilityP2: 0.488}, nil
			}}

			w := do(t, newTestHandler(svc, nil), http.MethodGet, "/api/v1/predict"+tt.query)
			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())

			if tt.expectedStatus == http.StatusOK {
				var pred models.Prediction
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pred))
				assert.Equal(t, "Sinner", pred.Favorite)
				assert.Equal(t, tt.expectSurface, gotSurface)
			}
		})
	}
}

func TestGetPlayerMetrics(t *testing.T) {
	var gotName string
	var gotSurface *models.Surface
	svc := &MockTennisService{GetPlayerMetricsFunc: func(_ context.Context, name string, s *models.Surface) (*models.AggregateMetrics, error) {
		gotName, gotSurface = name, s
		return &models.AggregateMetrics{Player: "Carlos Alcaraz", Surface: s}, nil
	}}

	w := do(t, newTestHandler(svc, nil), http.MethodGet, "/api/v1/players/Carlos%20Alcaraz/metrics?surface=Clay")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Carlos Alcaraz", gotName)
	require.NotNil(t, gotSurface)
	assert.Equal(t, models.SurfaceClay, *gotSurface)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
}

func TestGetPlayerMetricsNotFound(t *testing.T) {
	svc := &MockTennisService{GetPlayerMetricsFunc: func(context.Context, string, *models.Surface) (*models.AggregateMetrics, error) {
		return nil, &cache.NotFoundError{Player: "Nobody"}
	}}

	w := do(t, newTestHandler(svc, nil), http.MethodGet, "/api/v1/players/Nobody/metrics")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Nobody")
}

func TestRefreshPlayer(t *testing.T) {
	svc := &MockTennisService{RefreshPlayerFunc: func(_ context.Context, name string) (*models.PlayerProfile, error) {
		return &models.PlayerProfile{Name: "Jannik Sinner", Matches: make([]models.MatchRecord, 25), Source: "tennisabstract"}, nil
	}}

	w := do(t, newTestHandler(svc, nil), http.MethodPost, "/api/v1/players/sinner/refresh")
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.RefreshResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.RefreshResponse{Player: "Jannik Sinner", Matches: 25, Source: "tennisabstract"}, resp)
}

func TestRefreshPlayerAsync(t *testing.T) {
	t.Run("Queued", func(t *testing.T) {
		queue := &MockRefreshQueue{}
		w := do(t, newTestHandler(&MockTennisService{}, queue), http.MethodPost, "/api/v1/players/Rublev/refresh?async=true")
		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.Equal(t, []string{"Rublev"}, queue.Enqueued)
	})

	t.Run("Queue Full", func(t *testing.T) {
		queue := &MockRefreshQueue{EnqueueFunc: func(string) bool { return false }}
		w := do(t, newTestHandler(&MockTennisService{}, queue), http.MethodPost, "/api/v1/players/Rublev/refresh?async=true")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestGetTodayMatches(t *testing.T) {
	svc := &MockTennisService{GetMatchesForTodayFunc: func(context.Context) (*models.TodayMatches, error) {
		return &models.TodayMatches{Source: "sample", Fallback: true, Matches: []models.MatchPairing{
			{Player1: "Jannik Sinner", Player2: "Carlos Alcaraz"},
		}}, nil
	}}

	w := do(t, newTestHandler(svc, nil), http.MethodGet, "/api/v1/matches/today")
	require.Equal(t, http.StatusOK, w.Code)

	var today models.TodayMatches
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &today))
	assert.True(t, today.Fallback)
	assert.Len(t, today.Matches, 1)
}

func TestWarmTodayPlayers(t *testing.T) {
	svc := &MockTennisService{GetMatchesForTodayFunc: func(context.Context) (*models.TodayMatches, error) {
		return &models.TodayMatches{Source: "sgo", Matches: []models.MatchPairing{
			{Player1: "Sinner", Player2: "Alcaraz"},
			{Player1: "Zverev", Player2: "Rublev"},
		}}, nil
	}}
	queue := &MockRefreshQueue{}

	w := do(t, newTestHandler(svc, queue), http.MethodPost, "/api/v1/matches/today/warm")
	require.Equal(t, http.StatusAccepted, w.Code)
	assert.Len(t, queue.Warmed, 2)
	assert.Contains(t, w.Body.String(), `"accepted":4`)

	w = do(t, newTestHandler(svc, nil), http.MethodPost, "/api/v1/matches/today/warm")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestPredictToday(t *testing.T) {
	var gotSurface *models.Surface
	svc := &MockTennisService{PredictTodayFunc: func(_ context.Context, s *models.Surface) ([]models.TodayPrediction, error) {
		gotSurface = s
		return []models.TodayPrediction{{Match: models.MatchPairing{Player1: "A", Player2: "B"}, Error: "player2: player not found"}}, nil
	}}

	w := do(t, newTestHandler(svc, nil), http.MethodGet, "/api/v1/predict/today?surface=Grass")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, gotSurface)
	assert.Equal(t, models.SurfaceGrass, *gotSurface)

	w = do(t, newTestHandler(svc, nil), http.MethodGet, "/api/v1/predict/today?surface=ice")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReady(t *testing.T) {
	h := New(Config{
		Service: &MockTennisService{},
		Checks: map[string]PingFunc{
			"store":      func(context.Context) error { return nil },
			"clickhouse": func(context.Context) error { return errors.New("down") },
		},
		Logger: zap.NewNop(),
	})

	w := do(t, h.Routes(), http.MethodGet, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body struct {
		Ready  bool            `json:"ready"`
		Checks map[string]bool `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Ready)
	assert.True(t, body.Checks["store"])
	assert.False(t, body.Checks["clickhouse"])
}

func TestHealth(t *testing.T) {
	w := do(t, newTestHandler(&MockTennisService{}, nil), http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestSwaggerDoc(t *testing.T) {
	w := do(t, newTestHandler(&MockTennisService{}, nil), http.MethodGet, "/swagger/doc.json")
	require.Equal(t, http.StatusOK, w.Code)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Contains(t, doc["paths"], "/api/v1/predict")
}

func ptr[T any](v T) *T { return &v }
