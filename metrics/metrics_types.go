// Package metrics holds the Prometheus collectors of the isochrone pipeline
// and its HTTP adapter. Every Registry owns a private prometheus.Registry, so
// tests and embedded services never collide on the global default.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the application
type Registry struct {
	// Pipeline Metrics
	ComputationsTotal       *prometheus.CounterVec
	ComputationDuration     prometheus.Histogram
	LimitsTotal             *prometheus.CounterVec
	SamplesPerComputation   prometheus.Histogram
	TrianglesPerComputation prometheus.Histogram
	RingsDroppedTotal       prometheus.Counter
	ChainsSnappedTotal      prometheus.Counter
	LineBufferFallbacks     prometheus.Counter

	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	registry *prometheus.Registry
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the process-wide registry.
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initPipelineMetrics()
	r.initHTTPMetrics()

	return r
}

// PrometheusRegistry returns the underlying Prometheus registry, e.g. for
// promhttp.HandlerFor.
func (r *Registry) PrometheusRegistry() *prometheus.Registry {
	return r.registry
}
