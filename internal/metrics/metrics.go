// Package metrics exposes the Prometheus collectors shared by the HTTP
// layer, the response cache and the background workers.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dealflow"

var (
	// HTTPRequests counts handled requests by route template, method and status.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Handled HTTP requests.",
		},
		[]string{"route", "method", "status"},
	)

	// HTTPDuration tracks request latency with the default buckets.
	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	// CacheLookups counts response cache reads by result (hit|miss|error|stale). A stale result is a fill dropped because its key was invalidated while loading.
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Response cache lookups.",
		},
		[]string{"result"},
	)

	// CacheInvalidations counts keys removed after mutations, by mutation.
	CacheInvalidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_invalidations_total",
			Help:      "Cache keys invalidated by mutations.",
		},
		[]string{"mutation"},
	)

	// JobsProcessed counts background jobs by type and outcome.
	JobsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jobs_processed_total",
			Help:      "Background jobs processed.",
		},
		[]string{"type", "status"},
	)
)
