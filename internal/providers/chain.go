package providers

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/courtside/tennis-stats-api/internal/models"
)

const defaultTimeout = 5 * time.Second

const (
	opToday   = "today"
	opHistory = "history"
)

// Chain tries sources in a fixed order and returns the first non-empty
// result. Each source gets exactly one attempt per call, bounded by the
// per-provider timeout. Failures are logged and never returned.
type Chain struct {
	today   []MatchSource
	history []HistorySource
	timeout time.Duration
	logger  *zap.SugaredLogger
	now     func() time.Time
}

// ChainOption configures a Chain.
type ChainOption func(*Chain)

// WithTimeout bounds each provider attempt.
func WithTimeout(d time.Duration) ChainOption {
	return func(c *Chain) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithClock overrides the clock used to stamp today's date.
func WithClock(now func() time.Time) ChainOption {
	return func(c *Chain) {
		c.now = now
	}
}

func NewChain(logger *zap.Logger, today []MatchSource, history []HistorySource, opts ...ChainOption) *Chain {
	c := &Chain{
		today:   today,
		history: history,
		timeout: defaultTimeout,
		logger:  logger.Sugar(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TodayResult is the outcome of a today's-matchups lookup. Fallback is the
// informational signal that the sample tier answered.
type TodayResult struct {
	Date     models.Date
	Source   string
	Fallback bool
	Pairings []models.MatchPairing
	Outcomes []Outcome
}

// Sources lists the today's-matchup sources in order.
func (c *Chain) Sources() []string {
	names := make([]string, 0, len(c.today))
	for _, s := range c.today {
		names = append(names, s.Name())
	}
	return names
}

// Today returns today's matchups from the first source with any.
func (c *Chain) Today(ctx context.Context) TodayResult {
	now := c.now()
	res := TodayResult{Date: models.NewDate(now.Year(), now.Month(), now.Day())}

	for _, src := range c.today {
		var (
			raw []models.MatchPairing
			err error
		)
		if _, local := src.(*SampleSource); local {
			// The sample tier answers even once the caller's context is done.
			raw, err = src.FetchToday(context.WithoutCancel(ctx))
			if err != nil {
				err = asProviderError(src.Name(), opToday, err)
			}
		} else {
			raw, err = attempt(ctx, c.timeout, src.Name(), opToday, src.FetchToday)
		}
		pairings := NormalizePairings(res.Date, src.Name(), raw)

		outcome := Outcome{Provider: src.Name(), Count: len(pairings), Err: err}
		res.Outcomes = append(res.Outcomes, outcome)
		providerAttempts.WithLabelValues(src.Name(), opToday, string(outcome.Status())).Inc()

		if err != nil {
			c.logger.Warnw("Match source failed, trying next", "provider", src.Name(), "error", err)
			continue
		}
		if len(pairings) == 0 {
			c.logger.Infow("Match source returned no matches", "provider", src.Name(), "raw", len(raw))
			continue
		}

		res.Source = src.Name()
		res.Pairings = pairings
		if _, ok := src.(*SampleSource); ok {
			res.Fallback = true
			sampleFallbacks.Inc()
			c.logger.Infow("Using sample matchups", "matches", len(pairings))
		} else {
			c.logger.Infow("Fetched today's matches", "provider", src.Name(), "matches", len(pairings))
		}
		return res
	}

	c.logger.Errorw("No match source produced matches", "sources", c.Sources())
	return res
}

// History returns the first non-empty set of valid records for player and
// the name of the source that supplied them.
func (c *Chain) History(ctx context.Context, player string) ([]models.MatchRecord, string, error) {
	for _, src := range c.history {
		fetch := func(ctx context.Context) ([]models.MatchRecord, error) {
			return src.FetchHistory(ctx, player)
		}
		raw, err := attempt(ctx, c.timeout, src.Name(), opHistory, fetch)
		records := validRecords(raw)
		if dropped := len(raw) - len(records); dropped > 0 {
			discardedRecords.WithLabelValues(src.Name()).Add(float64(dropped))
			c.logger.Warnw("Dropped invalid history records", "provider", src.Name(), "player", player, "dropped", dropped)
		}

		outcome := Outcome{Provider: src.Name(), Count: len(records), Err: err}
		providerAttempts.WithLabelValues(src.Name(), opHistory, string(outcome.Status())).Inc()

		if err != nil {
			c.logger.Warnw("History source failed, trying next", "provider", src.Name(), "player", player, "error", err)
			continue
		}
		if len(records) == 0 {
			continue
		}
		return records, src.Name(), nil
	}
	return nil, "", fmt.Errorf("%s: %w", player, ErrNoHistory)
}

type fetchResult[T any] struct {
	items []T
	err   error
}

// attempt runs fetch under a timeout. A source that ignores its context is
// abandoned when the timeout fires; its goroutine finishes in the background.
func attempt[T any](ctx context.Context, timeout time.Duration, provider, op string, fetch func(context.Context) ([]T, error)) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	defer func() {
		providerDuration.WithLabelValues(provider, op).Observe(time.Since(start).Seconds())
	}()

	done := make(chan fetchResult[T], 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fetchResult[T]{err: newProviderError(provider, op, fmt.Errorf("panic: %v", r))}
			}
		}()
		items, err := fetch(ctx)
		done <- fetchResult[T]{items: items, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return nil, asProviderError(provider, op, res.err)
		}
		return res.items, nil
	case <-ctx.Done():
		return nil, newProviderError(provider, op, ctx.Err())
	}
}

func asProviderError(provider, op string, err error) error {
	if pe, ok := err.(*ProviderError); ok {
		return pe
	}
	return newProviderError(provider, op, err)
}

func validRecords(records []models.MatchRecord) []models.MatchRecord {
	out := make([]models.MatchRecord, 0, len(records))
	for _, r := range records {
		if r.Validate() == nil {
			out = append(out, r)
		}
	}
	return out
}
