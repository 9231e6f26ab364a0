package providers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	providerAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tennis_provider_attempts_total",
		Help: "Provider attempts by provider, operation and outcome",
	}, []string{"provider", "op", "status"})

	providerDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tennis_provider_fetch_duration_seconds",
		Help:    "Duration of a single provider attempt",
		Buckets: prometheus.DefBuckets,
	}, []string{"provider", "op"})

	sampleFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tennis_sample_fallbacks_total",
		Help: "Today's-matchup lookups answered by the sample set",
	})

	discardedRecords = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tennis_provider_discarded_records_total",
		Help: "Provider records dropped during normalization",
	}, []string{"provider"})
)
