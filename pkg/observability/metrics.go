package observability

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus metrics recorded during a run
type Metrics struct {
	registry *prometheus.Registry

	// Feed metrics
	FeedRequestsTotal   *prometheus.CounterVec
	FeedRequestDuration *prometheus.HistogramVec
	CatalogPlugins      prometheus.Gauge

	// Evaluation metrics
	VerdictsTotal *prometheus.CounterVec

	// Run metrics
	LastRunSuccess   prometheus.Gauge
	LastRunTimestamp prometheus.Gauge
	RunDuration      prometheus.Gauge
}

// NewMetrics creates and registers all metrics on a fresh registry
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,

		FeedRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "plugcompat_feed_requests_total",
				Help: "Total number of feed requests by source and outcome",
			},
			[]string{"source", "outcome"},
		),
		FeedRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "plugcompat_feed_request_duration_seconds",
				Help:    "Feed request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"source"},
		),
		CatalogPlugins: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "plugcompat_catalog_plugins",
				Help: "Number of plugins in the fetched catalog",
			},
		),
		VerdictsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "plugcompat_verdicts_total",
				Help: "Plugin verdicts by status",
			},
			[]string{"status"},
		),
		LastRunSuccess: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "plugcompat_last_run_success",
				Help: "1 if the last run found no compatibility issues",
			},
		),
		LastRunTimestamp: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "plugcompat_last_run_timestamp_seconds",
				Help: "Unix time the last run finished",
			},
		),
		RunDuration: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "plugcompat_run_duration_seconds",
				Help: "Wall time of the last run in seconds",
			},
		),
	}

	registry.MustRegister(
		m.FeedRequestsTotal,
		m.FeedRequestDuration,
		m.CatalogPlugins,
		m.VerdictsTotal,
		m.LastRunSuccess,
		m.LastRunTimestamp,
		m.RunDuration,
	)

	return m
}

// Registry returns the registry the metrics are registered on
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordFeedRequest records one feed request. Safe on a nil receiver.
func (m *Metrics) RecordFeedRequest(source, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.FeedRequestsTotal.WithLabelValues(source, outcome).Inc()
	m.FeedRequestDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordCatalogSize sets the catalog size gauge
func (m *Metrics) RecordCatalogSize(n int) {
	if m == nil {
		return
	}
	m.CatalogPlugins.Set(float64(n))
}

// RecordVerdict counts one plugin verdict
func (m *Metrics) RecordVerdict(status string) {
	if m == nil {
		return
	}
	m.VerdictsTotal.WithLabelValues(status).Inc()
}

// RecordRun records the outcome of a finished run
func (m *Metrics) RecordRun(success bool, started, finished time.Time) {
	if m == nil {
		return
	}
	if success {
		m.LastRunSuccess.Set(1)
	} else {
		m.LastRunSuccess.Set(0)
	}
	m.LastRunTimestamp.Set(float64(finished.Unix()))
	m.RunDuration.Set(finished.Sub(started).Seconds())
}

// WriteTextfile writes the registry in the node_exporter textfile format.
// The write is atomic: the file is replaced only once fully written.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
