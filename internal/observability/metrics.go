// Package observability provides Prometheus metrics for the application.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dtwitter_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// CacheInvalidations counts cache keys dropped by mutation event type.
	CacheInvalidations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dtwitter_cache_invalidations_total",
		Help: "Total number of cache keys invalidated, by mutation event",
	}, []string{"event"})

	// CacheReads counts read-through cache outcomes.
	CacheReads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dtwitter_cache_reads_total",
		Help: "Total cache reads by outcome (hit or miss)",
	}, []string{"outcome"})

	// MutationFailures counts rejected mutations by handler and error code.
	MutationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dtwitter_mutation_failures_total",
		Help: "Total rejected mutations by handler and error code",
	}, []string{"handler", "code"})
)
