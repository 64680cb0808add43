package contour

import (
	"errors"

	"github.com/paulmach/orb"
)

// ErrInvalidThreshold indicates a NaN or infinite threshold.
var ErrInvalidThreshold = errors.New("contour: threshold must be finite")

// checkEvery is the number of triangles between two context polls.
const checkEvery = 1024

// Node identifies a point of a contour or boundary chain. A crossing node
// names the triangulation edge {U, V} (U < V) it lies on; a vertex node names
// sample U and has V == -1.
type Node struct {
	U, V int
}

// EdgeNode returns the crossing node of the undirected edge {u, v}.
func EdgeNode(u, v int) Node {
	if u > v {
		u, v = v, u
	}
	return Node{U: u, V: v}
}

// VertexNode returns the node of sample v.
func VertexNode(v int) Node {
	return Node{U: v, V: -1}
}

// IsVertex reports whether n names a sample rather than an edge crossing.
func (n Node) IsVertex() bool { return n.V < 0 }

// Segment is one piece of the threshold contour inside one triangle. The
// reachable region lies on the left of A→B.
type Segment struct {
	From, To  Node
	A, B      orb.Point
	Threshold float64
	Triangle  int
}
