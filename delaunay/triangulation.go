package delaunay

import (
	"fmt"

	"github.com/paulmach/orb"

	"github.com/katalvlaran/isochrone/samples"
)

// Set returns the samples the triangulation indexes into.
func (tr *Triangulation) Set() *samples.Set { return tr.set }

// Len returns the number of triangles.
func (tr *Triangulation) Len() int { return len(tr.triangles) }

// Triangle returns triangle i.
func (tr *Triangulation) Triangle(i int) Triangle { return tr.triangles[i] }

// Triangles returns a copy of the triangle arena.
func (tr *Triangulation) Triangles() []Triangle {
	out := make([]Triangle, len(tr.triangles))
	copy(out, tr.triangles)
	return out
}

// Neighbors returns the neighbours of triangle i across its three edges;
// -1 marks a hull edge.
func (tr *Triangulation) Neighbors(i int) [3]int { return tr.triangles[i].N }

// Vertices returns the coordinates of triangle i in counter-clockwise order.
func (tr *Triangulation) Vertices(i int) [3]orb.Point {
	v := tr.triangles[i].V
	return [3]orb.Point{tr.set.Point(v[0]), tr.set.Point(v[1]), tr.set.Point(v[2])}
}

// Hull returns the convex hull as counter-clockwise vertex indices. Collinear
// points lying on a hull edge are kept as hull vertices.
func (tr *Triangulation) Hull() []int {
	out := make([]int, len(tr.hull))
	copy(out, tr.hull)
	return out
}

// HullRing returns the convex hull as a closed counter-clockwise ring.
func (tr *Triangulation) HullRing() orb.Ring {
	ring := make(orb.Ring, 0, len(tr.hull)+1)
	for _, v := range tr.hull {
		ring = append(ring, tr.set.Point(v))
	}
	return append(ring, ring[0])
}

// HullEdges returns the hull edges in counter-clockwise order, each with the
// triangle that owns it.
func (tr *Triangulation) HullEdges() []HullEdge {
	out := make([]HullEdge, 0, len(tr.hull))
	for i, v := range tr.hull {
		ref := tr.hullEdges[v]
		out = append(out, HullEdge{
			From:     v,
			To:       tr.hull[(i+1)%len(tr.hull)],
			Triangle: ref.t,
			Side:     ref.e,
		})
	}
	return out
}

// Validate checks the structural invariants of the triangulation:
//  1. every triangle has distinct vertices in counter-clockwise order;
//  2. adjacency is symmetric and neighbours share the reversed edge;
//  3. no vertex lies strictly inside the circumcircle of a neighbour;
//  4. the hull edges are owned by triangles with no neighbour on that side.
//
// It returns ErrInvalidTriangulation wrapped with the first violation found.
// Complexity: O(T + h).
func (tr *Triangulation) Validate() error {
	for i, t := range tr.triangles {
		a, b, c := tr.set.Point(t.V[0]), tr.set.Point(t.V[1]), tr.set.Point(t.V[2])
		if t.V[0] == t.V[1] || t.V[1] == t.V[2] || t.V[0] == t.V[2] {
			return fmt.Errorf("%w: triangle %d repeats a vertex %v", ErrInvalidTriangulation, i, t.V)
		}
		if orient(a, b, c) <= 0 {
			return fmt.Errorf("%w: triangle %d is not counter-clockwise", ErrInvalidTriangulation, i)
		}

		for e := 0; e < 3; e++ {
			u := t.N[e]
			if u < 0 {
				continue
			}
			from, to := t.Edge(e)
			j := -1
			for k := 0; k < 3; k++ {
				if f, g := tr.triangles[u].Edge(k); f == to && g == from {
					j = k
				}
			}
			if j < 0 || tr.triangles[u].N[j] != i {
				return fmt.Errorf("%w: triangles %d and %d disagree on edge %d→%d",
					ErrInvalidTriangulation, i, u, from, to)
			}
			d := tr.set.Point(tr.triangles[u].Opposite(j))
			if inCircle(a, b, c, d) {
				return fmt.Errorf("%w: vertex %d lies inside circumcircle of triangle %d",
					ErrInvalidTriangulation, tr.triangles[u].Opposite(j), i)
			}
		}
	}

	for _, he := range tr.HullEdges() {
		t := tr.triangles[he.Triangle]
		from, to := t.Edge(he.Side)
		if from != he.From || to != he.To || t.N[he.Side] != -1 {
			return fmt.Errorf("%w: hull edge %d→%d not owned by triangle %d",
				ErrInvalidTriangulation, he.From, he.To, he.Triangle)
		}
	}

	return nil
}
