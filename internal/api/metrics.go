package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	analyzeRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_analyze_requests_total",
			Help: "Total number of analyze requests by strategy",
		},
		[]string{"strategy"},
	)

	suggestRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_suggest_requests_total",
			Help: "Total number of suggestion requests by strategy",
		},
		[]string{"strategy"},
	)

	cycleRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "triage_cycle_rejections_total",
			Help: "Total number of requests rejected due to circular dependencies",
		},
	)

	analysisDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "triage_analysis_duration_seconds",
			Help:    "Time spent scoring a batch of tasks",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)
)
