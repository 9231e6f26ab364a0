package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// Stat is a derived value that may be unavailable. An invalid Stat means
// "no data" and serializes as null, never as 0.
type Stat struct {
	Value float64
	Valid bool
}

// NewStat returns a valid Stat.
func NewStat(v float64) Stat { return Stat{Value: v, Valid: true} }

// NoData is the unavailable Stat.
var NoData = Stat{}

func (s Stat) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(s.Value)
}

func (s *Stat) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = NoData
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = NewStat(v)
	return nil
}

// MetricSet holds the averaged statistics over one set of matches.
type MetricSet struct {
	Available       bool `json:"available"`
	Matches         int  `json:"matches"`
	WinRate         Stat `json:"win_rate"`
	AvgAces         Stat `json:"avg_aces"`
	AvgGames        Stat `json:"avg_games"`
	AvgSets         Stat `json:"avg_sets"`
	AvgDoubleFaults Stat `json:"avg_double_faults"`
	AvgWinners      Stat `json:"avg_winners"`
	AvgTiebreaks    Stat `json:"avg_tiebreaks"`
	AcesStdDev      Stat `json:"aces_std_dev"`
}

// AggregateMetrics is computed on demand from a player's profile and never persisted.
type AggregateMetrics struct {
	Player    string                `json:"player"`
	Overall   MetricSet             `json:"overall"`
	BySurface map[Surface]MetricSet `json:"by_surface"`
	// Surface is the requested breakdown, if any.
	Surface        *Surface   `json:"surface,omitempty"`
	SurfaceMetrics *MetricSet `json:"surface_metrics,omitempty"`
}

// MetricScope names which metric set fed a prediction.
type MetricScope string

const (
	ScopeOverall MetricScope = "overall"
	ScopeSurface MetricScope = "surface"
)

// For returns the metrics to use for surface: the surface breakdown when it
// has data, otherwise the overall set.
func (a AggregateMetrics) For(surface *Surface) (MetricSet, MetricScope) {
	if surface != nil {
		if ms, ok := a.BySurface[*surface]; ok && ms.Available {
			return ms, ScopeSurface
		}
	}
	return a.Overall, ScopeOverall
}

// PlayerProfile is a player's retained match history, most recent first.
type PlayerProfile struct {
	Name     string        `json:"name"`
	Key      string        `json:"key"`
	Matches  []MatchRecord `json:"matches"`
	LoadedAt time.Time     `json:"loaded_at"`
	Source   string        `json:"source,omitempty"`
}
