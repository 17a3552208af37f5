// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "marketing_intelligence"

var (
	// Ingestion metrics
	recordsIngested = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ingestion",
		Name:      "records_ingested_total",
		Help:      "Total number of records accepted and stored",
	}, []string{"kind"}) // news | trend

	recordsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ingestion",
		Name:      "records_rejected_total",
		Help:      "Total number of records rejected at the ingestion boundary",
	}, []string{"kind"})

	contractViolations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ingestion",
		Name:      "contract_violations_total",
		Help:      "Total data contract violations by offending field",
	}, []string{"field"})

	fetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ingestion",
		Name:      "fetches_total",
		Help:      "Total upstream fetches by outcome",
	}, []string{"endpoint", "outcome"}) // outcome: success | error | superseded

	// Analytics metrics
	snapshotsComputed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "analytics",
		Name:      "snapshots_computed_total",
		Help:      "Total analytics snapshots computed",
	}, []string{"time_range"})

	snapshotDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "analytics",
		Name:      "snapshot_duration_seconds",
		Help:      "Time spent computing one analytics snapshot",
		Buckets:   prometheus.DefBuckets,
	})

	// Config metrics
	configPersists = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "config",
		Name:      "persist_total",
		Help:      "Total config persistence attempts by outcome",
	}, []string{"outcome"}) // success | error
)

// RecordIngested increments the accepted-record counter for a record kind.
func RecordIngested(kind string, n int) {
	recordsIngested.WithLabelValues(kind).Add(float64(n))
}

// RecordRejected increments the rejected-record counter for a record kind.
func RecordRejected(kind string, n int) {
	recordsRejected.WithLabelValues(kind).Add(float64(n))
}

// RecordContractViolation counts one contract violation by offending field.
func RecordContractViolation(field string) {
	contractViolations.WithLabelValues(field).Inc()
}

// RecordFetch counts one upstream fetch by endpoint and outcome.
func RecordFetch(endpoint, outcome string) {
	fetchesTotal.WithLabelValues(endpoint, outcome).Inc()
}

// RecordSnapshot counts one computed snapshot and observes its duration.
func RecordSnapshot(timeRange string, seconds float64) {
	snapshotsComputed.WithLabelValues(timeRange).Inc()
	snapshotDuration.Observe(seconds)
}

// RecordConfigPersist counts one config persistence attempt by outcome.
func RecordConfigPersist(outcome string) {
	configPersists.WithLabelValues(outcome).Inc()
}

// Handler returns the HTTP handler serving the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
