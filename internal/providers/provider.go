// Package providers acquires today's matchups and player match histories
// from an ordered list of sources, degrading from live APIs to a scrape and
// finally to the built-in sample set.
package providers

import (
	"context"
	"errors"
	"fmt"

	"github.com/courtside/tennis-stats-api/internal/models"
)

// MatchSource returns the matchups scheduled for today.
// An empty, error-free result means the source had nothing to offer.
type MatchSource interface {
	Name() string
	FetchToday(ctx context.Context) ([]models.MatchPairing, error)
}

// HistorySource returns a player's recent completed matches.
type HistorySource interface {
	Name() string
	FetchHistory(ctx context.Context, player string) ([]models.MatchRecord, error)
}

// ErrNoHistory is returned when no history source knows the player.
var ErrNoHistory = errors.New("no match history available")

// ProviderError reports a single source failing. It is always recoverable
// by moving on to the next source.
type ProviderError struct {
	Provider string
	Op       string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %s: %v", e.Provider, e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

func newProviderError(provider, op string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Op: op, Err: err}
}

// Status classifies one provider attempt.
type Status string

const (
	StatusSuccess Status = "success"
	StatusEmpty   Status = "empty"
	StatusFailed  Status = "failed"
)

// Outcome records what a single provider attempt produced.
type Outcome struct {
	Provider string
	Count    int
	Err      error
}

func (o Outcome) Status() Status {
	switch {
	case o.Err != nil:
		return StatusFailed
	case o.Count == 0:
		return StatusEmpty
	default:
		return StatusSuccess
	}
}
