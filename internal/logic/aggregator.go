package logic

import (
	"math"

	"github.com/courtside/tennis-stats-api/internal/models"
)

// Aggregate reduces a player's records to overall and per-surface metrics.
// Every surface is present in BySurface; surfaces without matches are
// marked unavailable with all stats set to no data.
func Aggregate(player string, records []models.MatchRecord) models.AggregateMetrics {
	out := models.AggregateMetrics{
		Player:    player,
		Overall:   aggregateSet(records),
		BySurface: make(map[models.Surface]models.MetricSet, len(models.Surfaces)),
	}
	for _, s := range models.Surfaces {
		out.BySurface[s] = AggregateSurface(records, s)
	}
	return out
}

// AggregateSurface computes metrics restricted to matches on surface.
func AggregateSurface(records []models.MatchRecord, surface models.Surface) models.MetricSet {
	filtered := make([]models.MatchRecord, 0, len(records))
	for _, r := range records {
		if r.Surface == surface {
			filtered = append(filtered, r)
		}
	}
	return aggregateSet(filtered)
}

func aggregateSet(records []models.MatchRecord) models.MetricSet {
	n := len(records)
	if n == 0 {
		return models.MetricSet{}
	}

	var wins, aces, games, sets, dfs, winners, tiebreaks float64
	for _, r := range records {
		if r.Won() {
			wins++
		}
		aces += float64(r.Aces)
		games += float64(r.TotalGames())
		sets += float64(r.TotalSets())
		dfs += float64(r.DoubleFaults)
		winners += float64(r.Winners)
		tiebreaks += float64(r.TotalTiebreaks())
	}

	count := float64(n)
	return models.MetricSet{
		Available:       true,
		Matches:         n,
		WinRate:         models.NewStat(wins / count),
		AvgAces:         models.NewStat(aces / count),
		AvgGames:        models.NewStat(games / count),
		AvgSets:         models.NewStat(sets / count),
		AvgDoubleFaults: models.NewStat(dfs / count),
		AvgWinners:      models.NewStat(winners / count),
		AvgTiebreaks:    models.NewStat(tiebreaks / count),
		AcesStdDev:      models.NewStat(acesStdDev(records, aces/count)),
	}
}

// acesStdDev is the sample standard deviation; 0 below two matches.
func acesStdDev(records []models.MatchRecord, mean float64) float64 {
	if len(records) < 2 {
		return 0
	}
	var sq float64
	for _, r := range records {
		d := float64(r.Aces) - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(records)-1))
}
