package logic

import (
	"math"
	"time"

	"github.com/courtside/tennis-stats-api/internal/models"
)

// Factor weights. They sum to 1.
const (
	WeightWinRate     = 0.40
	WeightAces        = 0.25
	WeightEfficiency  = 0.20
	WeightConsistency = 0.15
)

const (
	FactorWinRate     = "win_rate"
	FactorAces        = "avg_aces"
	FactorEfficiency  = "efficiency"
	FactorConsistency = "consistency"
)

// PredictionEngine turns two players' metrics into a win probability.
// It never fails: missing inputs make the affected factor neutral.
type PredictionEngine struct {
	now func() time.Time
}

func NewPredictionEngine() *PredictionEngine {
	return &PredictionEngine{now: time.Now}
}

// Predict forecasts name1 vs name2. With a surface, each player's surface
// metrics are used when that player has any; otherwise that player falls
// back to overall metrics independently of the opponent.
func (e *PredictionEngine) Predict(name1 string, m1 models.AggregateMetrics, name2 string, m2 models.AggregateMetrics, surface *models.Surface) *models.Prediction {
	s1, scope1 := m1.For(surface)
	s2, scope2 := m2.For(surface)

	factors := Factors(s1, s2)

	// Summing deviations from 0.5 keeps identical inputs at exactly 0.5.
	p1 := 0.5
	for _, f := range factors {
		p1 += f.Weight * (f.Value - 0.5)
	}
	p1 = math.Max(0, math.Min(1, p1))
	p2 := 1 - p1

	pred := &models.Prediction{
		Player1:          name1,
		Player2:          name2,
		Surface:          surface,
		WinProbabilityP1: p1,
		WinProbabilityP2: p2,
		Confidence:       math.Max(p1, p2) * 100,
		Factors:          factors,
		Player1Scope:     scope1,
		Player2Scope:     scope2,
		GeneratedAt:      e.now().UTC(),
	}
	switch {
	case p1 > 0.5:
		pred.Favorite = name1
	case p1 < 0.5:
		pred.Favorite = name2
	}
	return pred
}

// Factors computes the four weighted factors from player 1's side.
func Factors(s1, s2 models.MetricSet) []models.Factor {
	wr, wrNeutral := share(s1.WinRate, s2.WinRate)
	aces, acesNeutral := share(s1.AvgAces, s2.AvgAces)
	eff, effNeutral := share(efficiency(s1), efficiency(s2))
	cons, consNeutral := consistency(s1.AvgDoubleFaults, s2.AvgDoubleFaults)

	return []models.Factor{
		{Name: FactorWinRate, Weight: WeightWinRate, Value: wr, Neutral: wrNeutral},
		{Name: FactorAces, Weight: WeightAces, Value: aces, Neutral: acesNeutral},
		{Name: FactorEfficiency, Weight: WeightEfficiency, Value: eff, Neutral: effNeutral},
		{Name: FactorConsistency, Weight: WeightConsistency, Value: cons, Neutral: consNeutral},
	}
}

// ConsistencyFactor is 1 - df1/(df1+df2): fewer double faults raises
// player 1's value.
func ConsistencyFactor(df1, df2 models.Stat) float64 {
	v, _ := consistency(df1, df2)
	return v
}

func consistency(df1, df2 models.Stat) (float64, bool) {
	v, neutral := share(df1, df2)
	if neutral {
		return 0.5, true
	}
	return 1 - v, false
}

// share is a/(a+b), or 0.5 when either side has no data or both are zero.
func share(a, b models.Stat) (float64, bool) {
	if !a.Valid || !b.Valid {
		return 0.5, true
	}
	sum := a.Value + b.Value
	if sum <= 0 {
		return 0.5, true
	}
	return a.Value / sum, false
}

// efficiency is winners per game played.
func efficiency(s models.MetricSet) models.Stat {
	if !s.AvgWinners.Valid || !s.AvgGames.Valid || s.AvgGames.Value <= 0 {
		return models.NoData
	}
	return models.NewStat(s.AvgWinners.Value / s.AvgGames.Value)
}
