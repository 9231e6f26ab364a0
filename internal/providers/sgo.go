package providers

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/courtside/tennis-stats-api/internal/config"
	"github.com/courtside/tennis-stats-api/internal/models"
)

// SGOProvider reads today's tennis schedule from the Sports Game Odds API.
// Its endpoints are tried in order; a non-200 answer moves to the next one.
type SGOProvider struct {
	apiKey    string
	endpoints []string
	client    *Client
	logger    *zap.SugaredLogger
	now       func() time.Time
}

func NewSGOProvider(cfg config.APIConfig, logger *zap.Logger, opts ...ClientOption) *SGOProvider {
	return &SGOProvider{
		apiKey:    cfg.APIKey,
		endpoints: cfg.Endpoints,
		client:    NewClient(opts...),
		logger:    logger.Sugar(),
		now:       time.Now,
	}
}

func (p *SGOProvider) Name() string { return "sgo" }

func (p *SGOProvider) FetchToday(ctx context.Context) ([]models.MatchPairing, error) {
	if len(p.endpoints) == 0 {
		return nil, errors.New("no endpoints configured")
	}

	var lastErr error
	answered := false
	for _, endpoint := range p.endpoints {
		params := url.Values{}
		params.Set("apikey", p.apiKey)
		params.Set("sport", "tennis")
		if !strings.Contains(endpoint, "today") {
			params.Set("date", p.now().Format("2006-01-02"))
		}

		body, err := p.client.GetBody(ctx, endpoint, params)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			p.logger.Debugw("SGO endpoint failed", "endpoint", endpoint, "error", err)
			lastErr = err
			continue
		}

		items, err := listField(body, "matches", "data", "events")
		if err != nil {
			p.logger.Debugw("SGO endpoint returned an unreadable body", "endpoint", endpoint, "error", err)
			lastErr = err
			continue
		}
		answered = true
		pairings, dropped := decodePairings(items, "tennis")
		if dropped > 0 {
			discardedRecords.WithLabelValues(p.Name()).Add(float64(dropped))
		}
		if len(pairings) > 0 {
			return pairings, nil
		}
		p.logger.Debugw("SGO endpoint had no tennis matches", "endpoint", endpoint, "items", len(items))
	}

	if !answered && lastErr != nil {
		return nil, fmt.Errorf("all endpoints failed, last: %w", lastErr)
	}
	return nil, nil
}
