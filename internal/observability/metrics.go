package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for forecast requests.
type Metrics struct {
	RequestsInFlight prometheus.Gauge
	Requests         *prometheus.CounterVec // labels: outcome={success,error,cancelled,superseded}
	RequestDuration  prometheus.Histogram

	// Attempt metrics.
	Attempts        *prometheus.CounterVec // labels: outcome={success,retry,failure}
	AttemptFailures *prometheus.CounterVec // labels: kind
	AttemptDuration prometheus.Histogram

	// Response cache metrics.
	CacheLookups *prometheus.CounterVec // labels: result={hit,miss}

	// State publishing metrics.
	StatePublishErrors prometheus.Counter
}

// NewMetrics creates and registers all forecast metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RequestsInFlight,
		m.Requests,
		m.RequestDuration,
		m.Attempts,
		m.AttemptFailures,
		m.AttemptDuration,
		m.CacheLookups,
		m.StatePublishErrors,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RequestsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "groundwater_forecast",
			Name:      "requests_in_flight",
			Help:      "Logical forecast requests currently running, including superseded ones still unwinding.",
		}),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "groundwater_forecast",
			Name:      "requests_total",
			Help:      "Logical forecast requests by terminal outcome.",
		}, []string{"outcome"}),
		RequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "groundwater_forecast",
			Name:      "request_duration_seconds",
			Help:      "Duration of a logical request including retries and backoff.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
		}),
		Attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "groundwater_forecast",
			Name:      "attempts_total",
			Help:      "Remote generation attempts by outcome.",
		}, []string{"outcome"}),
		AttemptFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "groundwater_forecast",
			Name:      "attempt_failures_total",
			Help:      "Failed attempts by error kind.",
		}, []string{"kind"}),
		AttemptDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "groundwater_forecast",
			Name:      "attempt_duration_seconds",
			Help:      "Duration of one remote call including decode, validation, and sanitization.",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 40, 60},
		}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "groundwater_forecast",
			Name:      "cache_lookups_total",
			Help:      "Response cache lookups by result.",
		}, []string{"result"}),
		StatePublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "groundwater_forecast",
			Name:      "state_publish_errors_total",
			Help:      "State transitions that could not be published to Kafka.",
		}),
	}
}
