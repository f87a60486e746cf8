package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "linkguard_checks_total",
			Help: "Total number of URL checks by structure/safety/redirect outcome.",
		},
		[]string{"structure", "safety", "redirects"},
	)

	BatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "linkguard_batch_duration_seconds",
			Help:    "Duration of full batch evaluations.",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	ScanSubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "linkguard_scan_submissions_total",
			Help: "Submissions to the scanning service by result.",
		},
		[]string{"result"}, // accepted, rejected, error
	)

	ScanPollsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "linkguard_scan_polls_total",
			Help: "Report polls issued against the scanning service.",
		},
	)

	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "linkguard_cache_lookups_total",
			Help: "TTL cache lookups by component and outcome.",
		},
		[]string{"component", "outcome"}, // hit, miss
	)

	RedirectHopsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "linkguard_redirect_hops_total",
			Help: "Redirect hops requested during chain traversal.",
		},
	)
)
