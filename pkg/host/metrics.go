package host

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts what the extension did. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry    *prometheus.Registry
	rewrites    prometheus.Counter
	toggles     *prometheus.CounterVec
	rejected    *prometheus.CounterVec
	annotations *prometheus.CounterVec
	failures    *prometheus.CounterVec
}

// NewMetrics creates the counters on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		rewrites: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "autoquote_rewrites_total",
			Help: "Number of submitted inputs rewritten",
		}),
		toggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "autoquote_toggles_total",
			Help: "Number of toggle commands by resulting state",
		}, []string{"state"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "autoquote_rejected_inputs_total",
			Help: "Number of submitted inputs rejected by the sanitizer",
		}, []string{"reason"}),
		annotations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "autoquote_paragraphs_total",
			Help: "Number of paragraphs changed by operation and variant",
		}, []string{"op", "variant"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "autoquote_paragraph_failures_total",
			Help: "Number of paragraph updates that failed",
		}, []string{"op"}),
	}
	m.registry.MustRegister(m.rewrites, m.toggles, m.rejected, m.annotations, m.failures)
	return m
}

// Registry exposes the registry, e.g. for a caller-owned exporter.
// It is nil for a nil *Metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// WriteToTextfile writes every metric in the text exposition format.
func (m *Metrics) WriteToTextfile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}

func (m *Metrics) observeRewrite() {
	if m == nil {
		return
	}
	m.rewrites.Inc()
}

func (m *Metrics) observeToggle(enabled bool) {
	if m == nil {
		return
	}
	state := "disabled"
	if enabled {
		state = "enabled"
	}
	m.toggles.WithLabelValues(state).Inc()
}

func (m *Metrics) observeRejected(reason string) {
	if m == nil {
		return
	}
	m.rejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) observeParagraphs(op, variant string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.annotations.WithLabelValues(op, variant).Add(float64(n))
}

func (m *Metrics) observeFailure(op string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(op).Inc()
}
