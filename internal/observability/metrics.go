package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "temperature_dashboard"

// Metrics holds the Prometheus collectors for the feed and scheduler.
type Metrics struct {
	TicksTotal        prometheus.Counter
	SourceFallbacks   prometheus.Counter
	SnapshotReads     prometheus.Counter
	LatestTemperature prometheus.Gauge
	HistoryLength     prometheus.Gauge
	SchedulerRunning  prometheus.Gauge
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.TicksTotal,
		m.SourceFallbacks,
		m.SnapshotReads,
		m.LatestTemperature,
		m.HistoryLength,
		m.SchedulerRunning,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics so tests can build as
// many feeds as they like without "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		TicksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Total readings generated by the feed.",
		}),
		SourceFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_fallbacks_total",
			Help:      "Ticks where the primary source failed and the synthetic source was used.",
		}),
		SnapshotReads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_reads_total",
			Help:      "Total history snapshots handed to readers.",
		}),
		LatestTemperature: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "latest_temperature_celsius",
			Help:      "Most recent reading in degrees Celsius.",
		}),
		HistoryLength: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "history_length",
			Help:      "Number of readings currently held in the history window.",
		}),
		SchedulerRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "scheduler_running",
			Help:      "1 while the tick scheduler is active, 0 otherwise.",
		}),
	}
}
