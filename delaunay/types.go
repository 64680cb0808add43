package delaunay

import "github.com/katalvlaran/isochrone/samples"

// DefaultCheckEvery is the number of insertions between two context polls.
const DefaultCheckEvery = 256

// Triangle references three vertices of the Set in counter-clockwise order.
// N[i] is the triangle across edge V[i]→V[(i+1)%3], or -1 on the hull.
type Triangle struct {
	V [3]int
	N [3]int
}

// Edge returns the endpoints of edge i (V[i], V[(i+1)%3]).
func (t Triangle) Edge(i int) (from, to int) {
	return t.V[i], t.V[next(i)]
}

// Opposite returns the vertex opposite edge i.
func (t Triangle) Opposite(i int) int {
	return t.V[prev(i)]
}

// HullEdge is one counter-clockwise edge of the convex hull together with the
// triangle that owns it; the interior lies on the left of From→To.
type HullEdge struct {
	From, To int
	Triangle int
	Side     int // edge index inside Triangle
}

// Options configures Triangulate.
type Options struct {
	CheckEvery int // insertions between ctx polls
}

// Option is a functional option for Triangulate.
type Option func(*Options)

// DefaultOptions returns Options with CheckEvery = DefaultCheckEvery.
func DefaultOptions() Options {
	return Options{CheckEvery: DefaultCheckEvery}
}

// WithCheckEvery sets how many insertions happen between two cancellation
// checks. Panics if k < 1.
func WithCheckEvery(k int) Option {
	if k < 1 {
		panic("delaunay: WithCheckEvery requires k ≥ 1")
	}
	return func(o *Options) {
		o.CheckEvery = k
	}
}

// Triangulation owns the triangle arena and the hull of one Set.
// It is immutable once returned and safe for concurrent reads.
type Triangulation struct {
	set       *samples.Set
	triangles []Triangle
	hull      []int
	hullEdges map[int]edgeRef
}

// edgeRef addresses one edge of one triangle.
type edgeRef struct {
	t, e int
}

func next(i int) int { return (i + 1) % 3 }
func prev(i int) int { return (i + 2) % 3 }
