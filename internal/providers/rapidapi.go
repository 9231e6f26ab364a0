package providers

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/courtside/tennis-stats-api/internal/config"
	"github.com/courtside/tennis-stats-api/internal/models"
)

// RapidAPIProvider reads today's fixtures from the RapidAPI tennis feed.
type RapidAPIProvider struct {
	endpoint string
	client   *Client
	now      func() time.Time
}

// NewRapidAPIProvider builds the provider. The key and host headers are
// attached to the client here.
func NewRapidAPIProvider(cfg config.APIConfig, opts ...ClientOption) *RapidAPIProvider {
	endpoint := ""
	if len(cfg.Endpoints) > 0 {
		endpoint = cfg.Endpoints[0]
	}
	opts = append(opts,
		WithHeader("X-RapidAPI-Key", cfg.APIKey),
		WithHeader("X-RapidAPI-Host", cfg.Host),
	)
	return &RapidAPIProvider{
		endpoint: endpoint,
		client:   NewClient(opts...),
		now:      time.Now,
	}
}

func (p *RapidAPIProvider) Name() string { return "rapidapi" }

func (p *RapidAPIProvider) FetchToday(ctx context.Context) ([]models.MatchPairing, error) {
	if p.endpoint == "" {
		return nil, errors.New("no endpoint configured")
	}

	params := url.Values{}
	params.Set("date", p.now().Format("2006-01-02"))

	body, err := p.client.GetBody(ctx, p.endpoint, params)
	if err != nil {
		return nil, err
	}

	items, err := listField(body, "response", "results")
	if err != nil {
		return nil, err
	}
	pairings, dropped := decodePairings(items, "")
	if dropped > 0 {
		discardedRecords.WithLabelValues(p.Name()).Add(float64(dropped))
	}
	return pairings, nil
}
