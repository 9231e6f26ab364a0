package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tennis_cache_lookups_total",
		Help: "Profile lookups by where they were answered: memory, store or miss",
	}, []string{"result"})

	cacheRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tennis_cache_refreshes_total",
		Help: "Profile refreshes by outcome",
	}, []string{"status"})

	storeErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tennis_store_errors_total",
		Help: "Durable store failures by operation",
	}, []string{"op"})

	cachedProfiles = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tennis_cached_profiles",
		Help: "Player profiles held in memory",
	})
)
