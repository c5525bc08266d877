package registry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	schemasRegistered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "eas_schemas_registered",
		Help: "Number of schema registration transactions submitted",
	})
	schemaCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "eas_schema_cache_hits",
		Help: "Number of schema lookups served from the cache",
	})
	schemaCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "eas_schema_cache_misses",
		Help: "Number of schema lookups that went to the contract",
	})
)
