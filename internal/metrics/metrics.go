package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taxblog_http_requests_total",
			Help: "Number of HTTP requests by method, path and status.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "taxblog_http_request_duration_seconds",
			Help:    "HTTP request latency by method and path.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taxblog_ai_generations_total",
			Help: "Number of AI content generations by outcome.",
		},
		[]string{"outcome"},
	)

	GenerationTokens = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "taxblog_ai_generation_tokens_total",
			Help: "Total tokens reported by the generation provider.",
		},
	)
)
