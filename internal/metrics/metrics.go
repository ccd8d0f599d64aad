// Package metrics holds the Prometheus instruments of the bridge.
//
// A nil *Metrics is valid and records nothing, so components can be built
// without metrics in tests.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "klokku"

// Refresh results.
const (
	ResultOK     = "ok"
	ResultFailed = "failed"
)

// Metrics records refresh and selection outcomes in its own registry.
type Metrics struct {
	registry *prometheus.Registry

	refreshTotal    *prometheus.CounterVec
	refreshDuration *prometheus.HistogramVec
	partialFailures *prometheus.CounterVec
	selectionsTotal *prometheus.CounterVec
}

// New creates the instruments and registers them together with the Go and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		refreshTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refresh_total",
			Help:      "Refresh cycles by generation and result.",
		}, []string{"generation", "result"}),
		refreshDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "refresh_duration_seconds",
			Help:      "Duration of refresh cycles.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"generation"}),
		partialFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "partial_failures_total",
			Help:      "Successful refresh cycles whose current event read failed.",
		}, []string{"generation"}),
		selectionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "selections_total",
			Help:      "Select calls by generation and result.",
		}, []string{"generation", "result"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.refreshTotal,
		m.refreshDuration,
		m.partialFailures,
		m.selectionsTotal,
	)

	return m
}

// RecordRefresh records one refresh cycle.
func (m *Metrics) RecordRefresh(generation string, duration time.Duration, err error, degraded bool) {
	if m == nil {
		return
	}

	result := ResultOK
	if err != nil {
		result = ResultFailed
	}

	m.refreshTotal.WithLabelValues(generation, result).Inc()
	m.refreshDuration.WithLabelValues(generation).Observe(duration.Seconds())
	if err == nil && degraded {
		m.partialFailures.WithLabelValues(generation).Inc()
	}
}

// RecordSelection records the outcome of one Select call.
func (m *Metrics) RecordSelection(generation, result string) {
	if m == nil {
		return
	}
	m.selectionsTotal.WithLabelValues(generation, result).Inc()
}

// Registry returns the registry the instruments live in.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
