package updater

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "semdelta"

// Failure kinds used as the "kind" label of the failures counter.
const (
	FailureUnmapped = "unmapped"
	FailureLiteral  = "literal"
	FailureBuild    = "build"
	FailurePublish  = "publish"
	FailurePersist  = "persist"
)

// Metrics holds the updater's Prometheus collectors.
type Metrics struct {
	Published prometheus.Counter
	Changes   prometheus.Histogram
	Failures  *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Published: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "updater",
			Name:      "updates_published_total",
			Help:      "Number of SPARQL updates published.",
		}),
		Changes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "updater",
			Name:      "changes_per_update",
			Help:      "Number of changed attributes carried by each published update.",
			Buckets:   []float64{1, 2, 4, 8, 16, 32, 64},
		}),
		Failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "updater",
			Name:      "failures_total",
			Help:      "Number of failed saves by failure kind.",
		}, []string{"kind"}),
	}
	if reg != nil {
		reg.MustRegister(m.Published, m.Changes, m.Failures)
	}
	return m
}

func (m *Metrics) failed(kind string) {
	if m == nil {
		return
	}
	m.Failures.WithLabelValues(kind).Inc()
}

func (m *Metrics) published(changes int) {
	if m == nil {
		return
	}
	m.Published.Inc()
	m.Changes.Observe(float64(changes))
}
