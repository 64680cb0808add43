package metrics

import (
	"time"
)

// Status label values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// RecordComputation records one Compute call.
func (r *Registry) RecordComputation(status string, duration time.Duration, samples, triangles int) {
	r.ComputationsTotal.WithLabelValues(status).Inc()
	r.ComputationDuration.Observe(duration.Seconds())
	r.SamplesPerComputation.Observe(float64(samples))
	r.TrianglesPerComputation.Observe(float64(triangles))
}

// RecordLimit records the outcome of one cost limit and what the assembler
// had to repair.
func (r *Registry) RecordLimit(status string, dropped, snapped int) {
	r.LimitsTotal.WithLabelValues(status).Inc()
	r.RingsDroppedTotal.Add(float64(dropped))
	r.ChainsSnappedTotal.Add(float64(snapped))
}

// RecordLineBufferFallback counts a computation served by the line buffer.
func (r *Registry) RecordLineBufferFallback() {
	r.LineBufferFallbacks.Inc()
}

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}
