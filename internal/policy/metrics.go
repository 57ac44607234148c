// SPDX-License-Identifier: Apache-2.0

package policy

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics instruments policy evaluation: a histogram of check latencies
// and a counter of decisions broken down by outcome. Evaluation itself
// never logs or records metrics directly (spec.md §5: the core has no
// I/O); Metrics is an optional collaborator a caller wires in around its
// own CheckAction/Check calls.
type Metrics struct {
	duration  *prometheus.HistogramVec
	decisions *prometheus.CounterVec
}

// NewMetrics registers the policy engine's collectors against reg. Pass
// prometheus.NewRegistry() in tests to avoid colliding with the global
// default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "iampolicy",
			Subsystem: "engine",
			Name:      "check_duration_seconds",
			Help:      "Latency of a single Statement/Policy check call.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "iampolicy",
			Subsystem: "engine",
			Name:      "decisions_total",
			Help:      "Count of policy decisions by outcome.",
		}, []string{"decision"}),
	}
	reg.MustRegister(m.duration, m.decisions)
	return m
}

// Observe records the latency and outcome of one check call. op is
// "check_action" or "check".
func (m *Metrics) Observe(op string, result CheckResult, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.duration.WithLabelValues(op).Observe(elapsed.Seconds())
	m.decisions.WithLabelValues(result.String()).Inc()
}

// Track wraps a check call with timing, recording the result fn returned
// to Observe, also when fn returned an error (Policy's checks return
// Unspecified alongside an error).
func Track(m *Metrics, op string, fn func() (CheckResult, error)) (CheckResult, error) {
	start := time.Now()
	result, err := fn()
	if m != nil {
		m.Observe(op, result, time.Since(start))
	}
	return result, err
}
