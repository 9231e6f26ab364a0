package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtside/tennis-stats-api/internal/models"
)

func metrics(wr, aces, df, winners, games float64) models.MetricSet {
	return models.MetricSet{
		Available:       true,
		Matches:         10,
		WinRate:         models.NewStat(wr),
		AvgAces:         models.NewStat(aces),
		AvgDoubleFaults: models.NewStat(df),
		AvgWinners:      models.NewStat(winners),
		AvgGames:        models.NewStat(games),
	}
}

func aggregate(name string, overall models.MetricSet, surfaces map[models.Surface]models.MetricSet) models.AggregateMetrics {
	if surfaces == nil {
		surfaces = map[models.Surface]models.MetricSet{}
	}
	return models.AggregateMetrics{Player: name, Overall: overall, BySurface: surfaces}
}

func TestPredictIdenticalPlayersIsEven(t *testing.T) {
	m := aggregate("Same", metrics(0.7, 9, 3, 40, 22), nil)
	p := NewPredictionEngine().Predict("Same", m, "Same", m, nil)

	assert.Equal(t, 0.5, p.WinProbabilityP1)
	assert.Equal(t, 0.5, p.WinProbabilityP2)
	assert.Equal(t, 50.0, p.Confidence)
	assert.Empty(t, p.Favorite)
}

func TestPredictFavorsStrongerPlayer(t *testing.T) {
	strong := aggregate("Strong", metrics(0.8, 12, 2, 45, 20), nil)
	weak := aggregate("Weak", metrics(0.4, 5, 5, 30, 22), nil)

	p := NewPredictionEngine().Predict("Strong", strong, "Weak", weak, nil)
	assert.Greater(t, p.WinProbabilityP1, 0.5)
	assert.InDelta(t, 1.0, p.WinProbabilityP1+p.WinProbabilityP2, 1e-12)
	assert.Equal(t, "Strong", p.Favorite)
	assert.InDelta(t, p.WinProbabilityP1*100, p.Confidence, 1e-9)

	swapped := NewPredictionEngine().Predict("Weak", weak, "Strong", strong, nil)
	assert.InDelta(t, p.WinProbabilityP1, swapped.WinProbabilityP2, 1e-12)
	assert.Equal(t, "Strong", swapped.Favorite)
}

func TestPredictNoDataIsNeutral(t *testing.T) {
	known := aggregate("Known", metrics(0.9, 15, 1, 50, 20), nil)
	unknown := aggregate("Unknown", models.MetricSet{}, nil)

	p := NewPredictionEngine().Predict("Known", known, "Unknown", unknown, nil)
	assert.Equal(t, 0.5, p.WinProbabilityP1)
	for _, f := range p.Factors {
		assert.True(t, f.Neutral, f.Name)
		assert.Equal(t, 0.5, f.Value, f.Name)
	}
}

func TestPredictSurfaceFallbackIsPerPlayer(t *testing.T) {
	clay := models.SurfaceClay
	p1 := aggregate("Clay Lover", metrics(0.5, 5, 3, 30, 22), map[models.Surface]models.MetricSet{
		models.SurfaceClay: metrics(0.9, 4, 2, 35, 22),
	})
	p2 := aggregate("Hard Hitter", metrics(0.6, 10, 3, 30, 22), map[models.Surface]models.MetricSet{
		models.SurfaceClay: {},
	})

	pred := NewPredictionEngine().Predict("Clay Lover", p1, "Hard Hitter", p2, &clay)
	assert.Equal(t, models.ScopeSurface, pred.Player1Scope)
	assert.Equal(t, models.ScopeOverall, pred.Player2Scope)
	require.Len(t, pred.Factors, 4)
	assert.InDelta(t, 0.9/1.5, pred.Factors[0].Value, 1e-12)
	require.NotNil(t, pred.Surface)
	assert.Equal(t, clay, *pred.Surface)
}

func TestFactorWeights(t *testing.T) {
	factors := Factors(metrics(0.5, 1, 1, 1, 1), metrics(0.5, 1, 1, 1, 1))
	var sum float64
	for _, f := range factors {
		sum += f.Weight
	}
	assert.InDelta(t, 1.0, sum, 1e-12)
	assert.Equal(t, []string{FactorWinRate, FactorAces, FactorEfficiency, FactorConsistency},
		[]string{factors[0].Name, factors[1].Name, factors[2].Name, factors[3].Name})
}

func TestConsistencyFactor(t *testing.T) {
	tests := []struct {
		name     string
		df1, df2 models.Stat
		want     float64
	}{
		{"fewer double faults is better", models.NewStat(1), models.NewStat(3), 0.75},
		{"more double faults is worse", models.NewStat(3), models.NewStat(1), 0.25},
		{"equal", models.NewStat(2), models.NewStat(2), 0.5},
		{"both zero", models.NewStat(0), models.NewStat(0), 0.5},
		{"missing data", models.NoData, models.NewStat(2), 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ConsistencyFactor(tt.df1, tt.df2), 1e-12)
		})
	}
}

func TestPredictClampsToUnitInterval(t *testing.T) {
	best := aggregate("Best", metrics(1, 20, 0.0001, 60, 18), nil)
	worst := aggregate("Worst", metrics(0.0001, 0.0001, 10, 0.0001, 30), nil)

	p := NewPredictionEngine().Predict("Best", best, "Worst", worst, nil)
	assert.LessOrEqual(t, p.WinProbabilityP1, 1.0)
	assert.GreaterOrEqual(t, p.WinProbabilityP2, 0.0)
}
