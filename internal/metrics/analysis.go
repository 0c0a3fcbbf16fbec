package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Image analysis and search Prometheus metrics.
var (
	AnalysisRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ratonica",
			Name:      "analysis_requests_total",
			Help:      "Total number of image analysis requests",
		},
		[]string{"provider", "status"},
	)

	AnalysisDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ratonica",
			Name:      "analysis_duration_seconds",
			Help:      "Image analysis duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 1.5, 2.5, 5, 10},
		},
		[]string{"provider"},
	)

	AnalysisCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ratonica",
			Name:      "analysis_cache_total",
			Help:      "Image analysis cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ratonica",
			Name:      "searches_total",
			Help:      "Total number of product searches by query type",
		},
		[]string{"type", "status"},
	)

	SavedSearchesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ratonica",
			Name:      "saved_searches_total",
			Help:      "Total number of searches saved to history",
		},
	)
)

var registerOnce sync.Once

// RegisterSearchMetrics registers analysis and search metrics with the default registry.
// Safe to call more than once.
func RegisterSearchMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			AnalysisRequestsTotal,
			AnalysisDuration,
			AnalysisCacheTotal,
			SearchesTotal,
			SavedSearchesTotal,
		)
	})
}
