package isochrone

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"runtime"

	"github.com/paulmach/orb"

	"github.com/katalvlaran/isochrone/metrics"
	"github.com/katalvlaran/isochrone/polygon"
	"github.com/katalvlaran/isochrone/samples"
)

// ErrInvalidCostLimit indicates a limit list that is empty, contains a
// non-positive or non-finite limit, or is not strictly increasing.
var ErrInvalidCostLimit = errors.New("isochrone: invalid cost limit")

// LimitError describes the offending entry of a limit list.
// Index is -1 when the list itself is empty.
type LimitError struct {
	Index  int
	Limit  float64
	Reason string
}

func (e *LimitError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("isochrone: invalid cost limits: %s", e.Reason)
	}
	return fmt.Sprintf("isochrone: invalid cost limit %v at index %d: %s", e.Limit, e.Index, e.Reason)
}

// Unwrap makes errors.Is(err, ErrInvalidCostLimit) hold.
func (e *LimitError) Unwrap() error { return ErrInvalidCostLimit }

// Options configures a Service.
type Options struct {
	Logger     *slog.Logger      // never nil after New
	Metrics    *metrics.Registry // nil disables metrics
	Epsilon    float64           // minimum ring area, see polygon.WithEpsilon
	Workers    int               // ComputeBatch concurrency
	LineBuffer float64           // half-width of the collinear fallback; 0 disables it
}

// Option is a functional option for New.
type Option func(*Options)

// DefaultOptions returns the defaults: discarded logs, no metrics,
// polygon.DefaultEpsilon, GOMAXPROCS workers and no line-buffer fallback.
func DefaultOptions() Options {
	return Options{
		Logger:  slog.New(slog.DiscardHandler),
		Epsilon: polygon.DefaultEpsilon,
		Workers: runtime.GOMAXPROCS(0),
	}
}

// WithLogger sets the structured logger. Panics if l is nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("isochrone: WithLogger requires a non-nil logger")
	}
	return func(o *Options) {
		o.Logger = l
	}
}

// WithMetrics records every computation into r.
func WithMetrics(r *metrics.Registry) Option {
	return func(o *Options) {
		o.Metrics = r
	}
}

// WithEpsilon sets the minimum absolute ring area. Panics if eps < 0.
func WithEpsilon(eps float64) Option {
	if eps < 0 || math.IsNaN(eps) {
		panic("isochrone: WithEpsilon requires eps ≥ 0")
	}
	return func(o *Options) {
		o.Epsilon = eps
	}
}

// WithWorkers bounds the number of requests ComputeBatch runs at once.
// Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic("isochrone: WithWorkers requires n ≥ 1")
	}
	return func(o *Options) {
		o.Workers = n
	}
}

// WithLineBufferFallback answers collinear sample sets with rectangles of the
// given half-width around the reachable stretches of the line instead of
// failing. Panics unless width is positive and finite.
func WithLineBufferFallback(width float64) Option {
	if !(width > 0) || math.IsInf(width, 0) {
		panic("isochrone: WithLineBufferFallback requires a positive finite width")
	}
	return func(o *Options) {
		o.LineBuffer = width
	}
}

// LimitResult is the outcome of one cost limit. Exactly one of Polygons
// (possibly empty) and Err is meaningful.
type LimitResult struct {
	Limit    float64
	Polygons []orb.Polygon
	Err      error
}

// Result is the outcome of one Compute call, one entry per limit in input
// order.
type Result struct {
	RequestID  string
	Limits     []LimitResult
	Samples    int
	Triangles  int
	LineBuffer bool // answered by the collinear fallback
}

// Request is one independent job of ComputeBatch.
type Request struct {
	Set    *samples.Set
	Limits []float64
}

// Response pairs a Request with its outcome.
type Response struct {
	Result *Result
	Err    error
}
