package samples

import (
	"errors"

	"github.com/paulmach/orb"
)

// Sentinel errors returned by the samples package.
var (
	// ErrInsufficientData indicates that fewer than 3 distinct coordinates
	// remain after deduplication, so no 2-D surface can be built.
	ErrInsufficientData = errors.New("samples: at least 3 distinct points are required")

	// ErrInvalidSample indicates a sample with a non-finite coordinate, a
	// non-finite cost or a negative cost.
	ErrInvalidSample = errors.New("samples: invalid sample")
)

// MinPoints is the smallest number of distinct points a Set may hold.
const MinPoints = 3

// Sample is a graph node position together with its cumulative travel cost
// from the source. The source itself has Cost 0.
type Sample struct {
	Point orb.Point
	Cost  float64
}

// EdgeSample is the cost increment along one traversed graph edge.
// Weight is the travel cost of going From → To.
type EdgeSample struct {
	From   orb.Point
	To     orb.Point
	Weight int64
}

// Options configures Set construction.
type Options struct {
	Edges        []EdgeSample // edges used for densification; nil disables it
	Subdivisions int          // number of equal parts each edge is split into
}

// Option is a functional option for New.
type Option func(*Options)

// DefaultOptions returns Options without densification.
func DefaultOptions() Options {
	return Options{Subdivisions: 1}
}

// WithEdges densifies the sample cloud along the given edges. Each edge is cut
// into subdivisions equal parts. Panics if subdivisions < 1.
func WithEdges(edges []EdgeSample, subdivisions int) Option {
	if subdivisions < 1 {
		panic("samples: WithEdges subdivisions must be ≥ 1")
	}
	return func(o *Options) {
		o.Edges = edges
		o.Subdivisions = subdivisions
	}
}

// Set is a validated, deduplicated and order-stable array of samples.
// A Set is immutable once built and safe for concurrent reads.
type Set struct {
	samples []Sample
	index   map[orb.Point]int
	maxCost float64
	bound   orb.Bound
}
