package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Refresh outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeStale   = "stale"
	OutcomeError   = "error"
)

var (
	// RateRefreshTotal counts refresh attempts by the provider that served
	// them and the outcome.
	RateRefreshTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fx_rate_refresh_total",
		Help: "Total number of rate refresh attempts by source and outcome",
	}, []string{"source", "outcome"})

	// RateRefreshDuration observes how long a full refresh chain takes.
	RateRefreshDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "fx_rate_refresh_duration_seconds",
		Help:    "Duration of rate refresh attempts in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// ProviderRequestTotal counts upstream provider HTTP calls.
	ProviderRequestTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fx_provider_requests_total",
		Help: "Total number of upstream provider requests by provider and result",
	}, []string{"provider", "result"})

	// HTTPRequestsTotal counts API requests by method, route and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fx_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration observes API request latency by route.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fx_http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})
)
