package providers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/courtside/tennis-stats-api/internal/models"
)

// stubSource implements MatchSource and HistorySource for testing
type stubSource struct {
	name        string
	TodayFunc   func(ctx context.Context) ([]models.MatchPairing, error)
	HistoryFunc func(ctx context.Context, player string) ([]models.MatchRecord, error)
	calls       int
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) FetchToday(ctx context.Context) ([]models.MatchPairing, error) {
	s.calls++
	if s.TodayFunc != nil {
		return s.TodayFunc(ctx)
	}
	return nil, nil
}

func (s *stubSource) FetchHistory(ctx context.Context, player string) ([]models.MatchRecord, error) {
	s.calls++
	if s.HistoryFunc != nil {
		return s.HistoryFunc(ctx, player)
	}
	return nil, nil
}

func failing(name string) *stubSource {
	return &stubSource{
		name: name,
		TodayFunc: func(context.Context) ([]models.MatchPairing, error) {
			return nil, errors.New("connection refused")
		},
		HistoryFunc: func(context.Context, string) ([]models.MatchRecord, error) {
			return nil, errors.New("connection refused")
		},
	}
}

func pairings(names ...string) []models.MatchPairing {
	var out []models.MatchPairing
	for i := 0; i+1 < len(names); i += 2 {
		out = append(out, models.MatchPairing{Player1: names[i], Player2: names[i+1]})
	}
	return out
}

func fixedClock() time.Time { return time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC) }

func TestChainTodayFirstNonEmptyWins(t *testing.T) {
	empty := &stubSource{name: "sgo"}
	live := &stubSource{name: "rapidapi", TodayFunc: func(context.Context) ([]models.MatchPairing, error) {
		return pairings("Jannik Sinner", "Carlos Alcaraz"), nil
	}}
	never := &stubSource{name: "espn"}

	chain := NewChain(zap.NewNop(), []MatchSource{empty, live, never, &SampleSource{}}, nil, WithClock(fixedClock))
	res := chain.Today(context.Background())

	assert.Equal(t, "rapidapi", res.Source)
	assert.False(t, res.Fallback)
	assert.Equal(t, "2026-10-19", res.Date.String())
	require.Len(t, res.Pairings, 1)
	assert.Equal(t, "rapidapi", res.Pairings[0].Source)
	assert.Equal(t, 1, empty.calls)
	assert.Equal(t, 0, never.calls, "sources after a success must not be called")

	require.Len(t, res.Outcomes, 2)
	assert.Equal(t, StatusEmpty, res.Outcomes[0].Status())
	assert.Equal(t, StatusSuccess, res.Outcomes[1].Status())
}

func TestChainTodayFallsBackToSample(t *testing.T) {
	chain := NewChain(zap.NewNop(), []MatchSource{failing("sgo"), failing("rapidapi"), &SampleSource{}}, nil)
	res := chain.Today(context.Background())

	assert.Equal(t, "sample", res.Source)
	assert.True(t, res.Fallback)
	assert.NotEmpty(t, res.Pairings)
	for _, o := range res.Outcomes[:2] {
		var pe *ProviderError
		assert.ErrorAs(t, o.Err, &pe)
		assert.Equal(t, StatusFailed, o.Status())
	}
}

func TestChainSampleOnlyIsNeverEmpty(t *testing.T) {
	chain := NewChain(zap.NewNop(), []MatchSource{&SampleSource{}}, []HistorySource{&SampleSource{}})
	res := chain.Today(context.Background())
	assert.Len(t, res.Pairings, 3)
	assert.True(t, res.Fallback)
}

func TestChainSampleAnswersAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	chain := NewChain(zap.NewNop(), []MatchSource{failing("sgo"), &SampleSource{}}, nil)
	for i := 0; i < 50; i++ {
		res := chain.Today(ctx)
		require.NotEmpty(t, res.Pairings)
		assert.Equal(t, "sample", res.Source)
		assert.True(t, res.Fallback)
		assert.Equal(t, StatusFailed, res.Outcomes[0].Status())
	}
}

func TestChainTimeoutAbandonsSlowSource(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	slow := &stubSource{name: "sgo", TodayFunc: func(context.Context) ([]models.MatchPairing, error) {
		<-release // ignores its context
		return pairings("A Player", "B Player"), nil
	}}

	chain := NewChain(zap.NewNop(), []MatchSource{slow, &SampleSource{}}, nil, WithTimeout(20*time.Millisecond))

	start := time.Now()
	res := chain.Today(context.Background())

	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, "sample", res.Source)
	assert.ErrorIs(t, res.Outcomes[0].Err, context.DeadlineExceeded)
}

func TestChainRecoversFromPanickingSource(t *testing.T) {
	bad := &stubSource{name: "espn", TodayFunc: func(context.Context) ([]models.MatchPairing, error) {
		panic("nil map")
	}}
	chain := NewChain(zap.NewNop(), []MatchSource{bad, &SampleSource{}}, nil)

	res := chain.Today(context.Background())
	assert.Equal(t, "sample", res.Source)
	assert.Error(t, res.Outcomes[0].Err)
}

func TestChainHistory(t *testing.T) {
	good := models.MatchRecord{
		Date: models.NewDate(2026, 10, 1), Opponent: "Ruud", Surface: models.SurfaceHard,
		Result: models.ResultWin, GamesWon: 12, GamesLost: 7, SetsWon: 2, SetsLost: 0,
	}
	bad := good
	bad.Opponent = "Fritz"
	bad.Aces = -1

	t.Run("skips failing source and drops invalid records", func(t *testing.T) {
		live := &stubSource{name: "tennisabstract", HistoryFunc: func(context.Context, string) ([]models.MatchRecord, error) {
			return []models.MatchRecord{good, bad}, nil
		}}
		chain := NewChain(zap.NewNop(), nil, []HistorySource{failing("first"), live, &SampleSource{}})

		records, source, err := chain.History(context.Background(), "Casper Ruud")
		require.NoError(t, err)
		assert.Equal(t, "tennisabstract", source)
		assert.Equal(t, []models.MatchRecord{good}, records)
	})

	t.Run("sample answers for known players", func(t *testing.T) {
		chain := NewChain(zap.NewNop(), nil, []HistorySource{failing("tennisabstract"), &SampleSource{}})
		records, source, err := chain.History(context.Background(), "Jannik Sinner")
		require.NoError(t, err)
		assert.Equal(t, "sample", source)
		assert.NotEmpty(t, records)
	})

	t.Run("unknown player", func(t *testing.T) {
		chain := NewChain(zap.NewNop(), nil, []HistorySource{&SampleSource{}})
		_, _, err := chain.History(context.Background(), "Nobody Known")
		assert.ErrorIs(t, err, ErrNoHistory)
	})
}
