package trace

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK      = "ok"
	outcomeFault   = "fault"
	outcomeUnknown = "unknown"
)

// Metrics records trace generation. All series are namespaced "algoviz".
type Metrics struct {
	generated *prometheus.CounterVec
	faults    *prometheus.CounterVec
	steps     *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		generated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "algoviz",
			Name:      "traces_generated_total",
			Help:      "Traces materialized, by algorithm and outcome.",
		}, []string{"algorithm", "outcome"}),
		faults: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "algoviz",
			Name:      "producer_faults_total",
			Help:      "Producers replaced by an error trace.",
		}, []string{"algorithm"}),
		steps: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "algoviz",
			Name:      "trace_steps",
			Help:      "Number of steps per materialized trace.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}, []string{"algorithm"}),
	}
}

func (m *Metrics) observe(algorithm, outcome string, steps int) {
	if m == nil {
		return
	}
	m.generated.WithLabelValues(algorithm, outcome).Inc()
	if outcome == outcomeFault {
		m.faults.WithLabelValues(algorithm).Inc()
	}
	m.steps.WithLabelValues(algorithm).Observe(float64(steps))
}
