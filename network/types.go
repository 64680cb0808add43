package network

import (
	"errors"
	"math"

	"github.com/paulmach/orb"
)

// Sentinel errors returned by the network package.
var (
	// ErrNilGraph indicates that a nil *Graph was passed to ShortestPaths.
	ErrNilGraph = errors.New("network: graph is nil")

	// ErrEmptySource indicates an empty source node ID.
	ErrEmptySource = errors.New("network: source node ID is empty")

	// ErrNodeNotFound indicates a reference to a node that was never added.
	ErrNodeNotFound = errors.New("network: node not found")

	// ErrDuplicateNode indicates that a node ID was added twice.
	ErrDuplicateNode = errors.New("network: duplicate node")

	// ErrNegativeWeight indicates an edge with a negative weight.
	ErrNegativeWeight = errors.New("network: negative edge weight")

	// ErrBadGridSize indicates a grid with fewer than one row or column, or a
	// non-positive spacing.
	ErrBadGridSize = errors.New("network: bad grid size")
)

// Options configures ShortestPaths.
type Options struct {
	MaxCost     int64 // nodes beyond this cost are not settled
	BlockedFrom int64 // edges with weight ≥ BlockedFrom are skipped
}

// Option is a functional option for ShortestPaths.
type Option func(*Options)

// DefaultOptions returns Options without a cost cap and without blocked edges.
func DefaultOptions() Options {
	return Options{
		MaxCost:     math.MaxInt64,
		BlockedFrom: math.MaxInt64,
	}
}

// WithMaxCost stops the search at cost c. Panics if c < 0.
func WithMaxCost(c int64) Option {
	if c < 0 {
		panic("network: WithMaxCost requires c ≥ 0")
	}
	return func(o *Options) {
		o.MaxCost = c
	}
}

// WithBlockedFrom treats edges with weight ≥ w as impassable. Panics if w ≤ 0.
func WithBlockedFrom(w int64) Option {
	if w <= 0 {
		panic("network: WithBlockedFrom requires w > 0")
	}
	return func(o *Options) {
		o.BlockedFrom = w
	}
}

// arc is one directed adjacency entry.
type arc struct {
	to     int
	weight int64
}

// node is one graph node.
type node struct {
	id  string
	pos orb.Point
}

// Unreached is the cost of a node the search did not settle.
const Unreached = int64(math.MaxInt64)
