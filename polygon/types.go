package polygon

import (
	"errors"

	"github.com/paulmach/orb"

	"github.com/katalvlaran/isochrone/contour"
)

// Sentinel errors for polygon assembly.
var (
	// ErrNilTriangulation indicates that Assemble was called without a triangulation.
	ErrNilTriangulation = errors.New("polygon: triangulation is nil")

	// ErrInconsistentSegments indicates segments that cannot come from one
	// Extract call for the given threshold.
	ErrInconsistentSegments = errors.New("polygon: inconsistent segments")
)

// DefaultEpsilon is the default minimum absolute ring area.
const DefaultEpsilon = 1e-12

// Options configures Assemble.
type Options struct {
	Epsilon float64 // rings with |area| below Epsilon are dropped
}

// Option is a functional option for Assemble.
type Option func(*Options)

// DefaultOptions returns Options with Epsilon = DefaultEpsilon.
func DefaultOptions() Options {
	return Options{Epsilon: DefaultEpsilon}
}

// WithEpsilon sets the minimum absolute ring area. Panics if eps < 0.
func WithEpsilon(eps float64) Option {
	if eps < 0 {
		panic("polygon: WithEpsilon requires eps ≥ 0")
	}
	return func(o *Options) {
		o.Epsilon = eps
	}
}

// Stats summarises one assembly.
type Stats struct {
	Rings         int // rings kept, outer and holes
	Holes         int // rings kept as holes
	Dropped       int // rings dropped as degenerate
	SnappedChains int // chains that had to be closed by a straight snap
}

// piece is one directed boundary step towards node to.
type piece struct {
	to   contour.Node
	a, b orb.Point
}

// ring is a cleaned closed ring with its signed area.
type ring struct {
	pts  orb.Ring
	area float64
}
