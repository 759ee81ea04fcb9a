package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OrderFlowMetrics records quote and commit outcomes.
type OrderFlowMetrics struct {
	duration *prometheus.HistogramVec
	outcomes *prometheus.CounterVec
	aborts   prometheus.Counter
}

// NewOrderFlowMetrics registers the order flow metrics on the provided registerer.
func NewOrderFlowMetrics(reg prometheus.Registerer) *OrderFlowMetrics {
	if reg == nil {
		return &OrderFlowMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "order_flow_duration_seconds",
		Help:    "Duration of quote and commit operations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_flow_outcomes",
		Help: "Quote and commit outcomes by operation and result.",
	}, []string{"operation", "outcome"})
	aborts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "order_commit_conflicts",
		Help: "Commit transactions aborted because stock moved under lock.",
	})
	reg.MustRegister(duration, outcomes, aborts)
	return &OrderFlowMetrics{
		duration: duration,
		outcomes: outcomes,
		aborts:   aborts,
	}
}

// ObserveDuration records the duration for the named operation.
func (m *OrderFlowMetrics) ObserveDuration(operation string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(operation)).Observe(duration.Seconds())
}

// IncOutcome increments the outcome counter for the named operation.
func (m *OrderFlowMetrics) IncOutcome(operation, outcome string) {
	if m == nil || m.outcomes == nil {
		return
	}
	m.outcomes.WithLabelValues(normalizeLabel(operation), normalizeLabel(outcome)).Inc()
}

// IncConflict counts one commit abort caused by concurrent stock movement.
func (m *OrderFlowMetrics) IncConflict() {
	if m == nil || m.aborts == nil {
		return
	}
	m.aborts.Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
