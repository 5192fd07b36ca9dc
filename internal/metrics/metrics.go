package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "provider_lookups_total",
		Help: "Provider lookups by contract version, query shape and outcome",
	}, []string{"version", "shape", "outcome"})

	LookupDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "provider_lookup_duration_seconds",
		Help:    "Time spent in the graph read for a provider lookup",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}, []string{"shape"})

	LookupRows = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "provider_lookup_rows",
		Help:    "Rows returned per provider lookup",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 500},
	})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "provider_http_requests_total",
		Help: "HTTP requests by route and status code",
	}, []string{"method", "route", "status"})
)
