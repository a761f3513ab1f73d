package analysis

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records engine activity on a Prometheus registry. A nil *Metrics
// records nothing.
type Metrics struct {
	analyses *prometheus.CounterVec
	duration *prometheus.HistogramVec
	failures *prometheus.CounterVec
}

// NewMetrics registers the engine collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		analyses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tsanalysis_analyses_total",
				Help: "Total number of completed analyses",
			},
			[]string{"kind"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tsanalysis_component_duration_seconds",
				Help:    "Duration of estimator runs in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"component"},
		),
		failures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tsanalysis_component_failures_total",
				Help: "Total number of estimators replaced by their empty result",
			},
			[]string{"component"},
		),
	}
}

func (m *Metrics) recordAnalysis(kind string) {
	if m == nil {
		return
	}
	m.analyses.WithLabelValues(kind).Inc()
}

func (m *Metrics) recordDuration(c Component, d time.Duration) {
	if m == nil {
		return
	}
	m.duration.WithLabelValues(string(c)).Observe(d.Seconds())
}

func (m *Metrics) recordFailure(c Component) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(string(c)).Inc()
}
