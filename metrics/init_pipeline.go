package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initPipelineMetrics() {
	r.ComputationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "isochrone_computations_total",
			Help: "Total number of isochrone computations",
		},
		[]string{"status"}, // success, error
	)

	r.ComputationDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "isochrone_computation_duration_seconds",
			Help:    "Duration of one isochrone computation in seconds",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5},
		},
	)

	r.LimitsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "isochrone_limits_total",
			Help: "Total number of cost limits processed",
		},
		[]string{"status"}, // success, error
	)

	r.SamplesPerComputation = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "isochrone_samples",
			Help:    "Number of samples per computation",
			Buckets: prometheus.ExponentialBuckets(4, 4, 10),
		},
	)

	r.TrianglesPerComputation = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "isochrone_triangles",
			Help:    "Number of triangles per computation",
			Buckets: prometheus.ExponentialBuckets(4, 4, 10),
		},
	)

	r.RingsDroppedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "isochrone_rings_dropped_total",
			Help: "Rings dropped because their area was below epsilon",
		},
	)

	r.ChainsSnappedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "isochrone_chains_snapped_total",
			Help: "Open chains closed by a straight snap",
		},
	)

	r.LineBufferFallbacks = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "isochrone_line_buffer_fallbacks_total",
			Help: "Computations answered by the collinear line-buffer fallback",
		},
	)
}
