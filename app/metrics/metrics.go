package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline instrumentation, exposed on /metrics.
var (
	FetchedNotices = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notices_fetched_total",
		Help: "Number of notices fetched and normalized, per source.",
	}, []string{"source"})

	FetchErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notices_fetch_errors_total",
		Help: "Number of failed fetch cycles, per source.",
	}, []string{"source"})

	FetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "notices_fetch_duration_seconds",
		Help:    "Duration of one adapter fetch cycle, per source.",
		Buckets: prometheus.DefBuckets,
	}, []string{"source"})

	UpsertedNotices = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notices_upserted_total",
		Help: "Number of notice rows written through the upsert path.",
	})

	RefreshRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notices_refresh_runs_total",
		Help: "Number of completed refresh cycles.",
	})
)
