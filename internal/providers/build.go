package providers

import (
	"go.uber.org/zap"

	"github.com/courtside/tennis-stats-api/internal/config"
)

// NewChainFromConfig assembles the source order: sgo, rapidapi, espn, sample
// for matchups and tennisabstract, sample for histories. Live APIs without
// a key and disabled scrapers are left out entirely.
func NewChainFromConfig(cfg config.ProviderConfig, logger *zap.Logger, opts ...ChainOption) *Chain {
	common := []ClientOption{WithUserAgent(cfg.UserAgent)}
	withLimit := func(rps float64) []ClientOption {
		return append(append([]ClientOption(nil), common...), WithRateLimit(rps, defaultBurst))
	}

	var today []MatchSource
	if cfg.SGO.Enabled() {
		today = append(today, NewSGOProvider(cfg.SGO, logger, withLimit(cfg.SGO.RateLimit)...))
	}
	if cfg.RapidAPI.Enabled() {
		today = append(today, NewRapidAPIProvider(cfg.RapidAPI, withLimit(cfg.RapidAPI.RateLimit)...))
	}
	if cfg.ESPN.Enabled && cfg.ESPN.URL != "" {
		var fetcher PageFetcher = HTTPFetcher{Client: NewClient(common...)}
		if cfg.ESPN.Headless {
			fetcher = ChromeFetcher{UserAgent: cfg.UserAgent}
		}
		today = append(today, NewScheduleScraper(cfg.ESPN.URL, fetcher))
	}
	sample := &SampleSource{}
	today = append(today, sample)

	var history []HistorySource
	if cfg.TennisAbstract.Enabled && cfg.TennisAbstract.URL != "" {
		history = append(history, NewTennisAbstractSource(cfg.TennisAbstract.URL, common...))
	}
	history = append(history, sample)

	opts = append([]ChainOption{WithTimeout(cfg.Timeout)}, opts...)
	return NewChain(logger, today, history, opts...)
}
