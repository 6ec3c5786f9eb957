package mih

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Query-path observability, registered against the default Prometheus
// registry the way the teacher registers its own RPC metrics in its
// root metrics.go.
var (
	metricsQueryLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mih",
			Name:      "query_duration_seconds",
			Help:      "Query latency by dispatch path (mih or linear).",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"path"},
	)

	metricsCandidatesExamined = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mih",
			Name:      "query_candidates_examined",
			Help:      "Number of candidate records examined per query, by dispatch path.",
			Buckets:   []float64{1, 10, 100, 1000, 10000, 100000},
		},
		[]string{"path"},
	)

	metricsFrozenRecords = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "mih",
			Name:      "frozen_records",
			Help:      "Number of frozen records in the most recently trained index.",
		},
	)
)

func init() {
	prometheus.MustRegister(metricsQueryLatency)
	prometheus.MustRegister(metricsCandidatesExamined)
	prometheus.MustRegister(metricsFrozenRecords)
}

func observeQuery(path string, d time.Duration) {
	metricsQueryLatency.WithLabelValues(path).Observe(d.Seconds())
}

func observeCandidates(path string, n int) {
	metricsCandidatesExamined.WithLabelValues(path).Observe(float64(n))
}

func observeTrained(count int) {
	metricsFrozenRecords.Set(float64(count))
}
