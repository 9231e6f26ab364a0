package providers

import (
	"context"
	"errors"

	"github.com/courtside/tennis-stats-api/internal/models"
	"github.com/courtside/tennis-stats-api/internal/seed"
)

// SampleSource serves the built-in sample set. It is always the last tier
// and never fails for today's matchups.
type SampleSource struct{}

func (*SampleSource) Name() string { return "sample" }

func (*SampleSource) FetchToday(context.Context) ([]models.MatchPairing, error) {
	matchups := seed.Matchups()
	if len(matchups) == 0 {
		return nil, errors.New("sample matchups unavailable")
	}
	out := make([]models.MatchPairing, 0, len(matchups))
	for _, m := range matchups {
		out = append(out, models.MatchPairing{
			Player1:    m.Player1,
			Player2:    m.Player2,
			Surface:    m.Surface,
			Tournament: m.Tournament,
		})
	}
	return out, nil
}

// FetchHistory returns the sample history for player, or nothing when the
// sample set does not include them.
func (*SampleSource) FetchHistory(_ context.Context, player string) ([]models.MatchRecord, error) {
	_, records, ok := seed.Lookup(player)
	if !ok {
		return nil, nil
	}
	return records, nil
}
