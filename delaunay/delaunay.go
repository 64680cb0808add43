package delaunay

import (
	"context"
	"fmt"
	"slices"

	"github.com/paulmach/orb"

	"github.com/katalvlaran/isochrone/samples"
)

// Triangulate builds the Delaunay triangulation of the Set's coordinates.
//
// Steps:
//  1. Sort vertex indices lexicographically by coordinate.
//  2. Skip the leading run of collinear points and seed a triangle fan from
//     the first point off that line (ErrDegenerateGeometry if none exists).
//  3. Insert the remaining points in order, each attached to the hull edges
//     it sees, then legalize the new edges with Lawson flips.
//
// The Set is never modified. ctx is polled every CheckEvery insertions.
func Triangulate(ctx context.Context, set *samples.Set, opts ...Option) (*Triangulation, error) {
	// 1) Build Options and validate the Set.
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	if set == nil {
		return nil, ErrNilSet
	}
	n := set.Len()
	if n < samples.MinPoints {
		return nil, fmt.Errorf("delaunay: %w: got %d", samples.ErrInsufficientData, n)
	}

	// 2) Insertion order: lexicographic by coordinate. Every later point then
	//    lies outside the hull built so far.
	pts := set.Points()
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(i, j int) int {
		switch {
		case lexLess(pts[i], pts[j]):
			return -1
		case lexLess(pts[j], pts[i]):
			return 1
		}
		return 0
	})

	// 3) Leading collinear run: order[0..k-1].
	k := 2
	for k < n && orient(pts[order[0]], pts[order[1]], pts[order[k]]) == 0 {
		k++
	}
	if k == n {
		return nil, fmt.Errorf("%w: all %d points on one line", ErrDegenerateGeometry, n)
	}

	// 4) Fan the run to the first point off its line.
	b := &builder{
		pts:       pts,
		triangles: make([]Triangle, 0, 2*n),
		hullEdges: make(map[int]edgeRef, n),
	}
	b.seed(order[:k], order[k])

	// 5) Insert the rest, polling ctx every CheckEvery points.
	for i := k + 1; i < n; i++ {
		if (i-k)%cfg.CheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("delaunay: cancelled after %d of %d points: %w", i, n, err)
			}
		}
		b.insert(order[i])
	}

	return &Triangulation{
		set:       set,
		triangles: b.triangles,
		hull:      b.hull,
		hullEdges: b.hullEdges,
	}, nil
}

// builder holds the mutable state of one triangulation run.
type builder struct {
	pts       []orb.Point
	triangles []Triangle
	hull      []int           // counter-clockwise hull vertices
	hullEdges map[int]edgeRef // hull vertex → the hull edge starting there
	stack     []edgeRef       // edges awaiting legalization
}

// seed builds a fan from q to the collinear chain, which is sorted along its line.
func (b *builder) seed(chain []int, q int) {
	left := orient(b.pts[chain[0]], b.pts[chain[1]], b.pts[q]) > 0
	m := len(chain) - 1 // number of fan triangles

	for i := 0; i < m; i++ {
		t := Triangle{N: [3]int{-1, -1, -1}}
		lo, hi := i-1, i+1
		if hi == m {
			hi = -1
		}
		if left {
			// (c_i, c_i+1, q): edge 1 faces the next fan triangle, edge 2 the previous one.
			t.V = [3]int{chain[i], chain[i+1], q}
			t.N[1], t.N[2] = hi, lo
		} else {
			// (c_i+1, c_i, q): edge 1 faces the previous fan triangle, edge 2 the next one.
			t.V = [3]int{chain[i+1], chain[i], q}
			t.N[1], t.N[2] = lo, hi
		}
		b.triangles = append(b.triangles, t)
	}

	if left {
		b.hull = append(b.hull, chain...)
		b.hull = append(b.hull, q)
	} else {
		for i := len(chain) - 1; i >= 0; i-- {
			b.hull = append(b.hull, chain[i])
		}
		b.hull = append(b.hull, q)
	}

	for t := range b.triangles {
		b.indexHull(t)
	}
}

// insert attaches p, which lies outside the current hull, to every hull edge
// it sees and legalizes the resulting triangles.
func (b *builder) insert(p int) {
	// 1) Hull edge i is visible when p lies strictly to its right.
	h := len(b.hull)
	visible := make([]bool, h)
	for i := 0; i < h; i++ {
		a, c := b.hull[i], b.hull[(i+1)%h]
		visible[i] = orient(b.pts[a], b.pts[c], b.pts[p]) < 0
	}

	// 2) The visible edges form one cyclic run; find where it starts.
	start := -1
	for i := 0; i < h; i++ {
		if visible[i] && !visible[(i+h-1)%h] {
			start = i
			break
		}
	}
	if start < 0 {
		// Cannot happen for a point outside a convex hull.
		return
	}
	run := 0
	for visible[(start+run)%h] {
		run++
	}

	// 3) One new triangle (c, a, p) per visible edge a→c. Edge 0 faces the
	//    old hull triangle, edges 1 and 2 chain the new triangles together.
	first := len(b.triangles)
	for j := 0; j < run; j++ {
		a := b.hull[(start+j)%h]
		c := b.hull[(start+j+1)%h]
		old := b.hullEdges[a]

		t := len(b.triangles)
		tri := Triangle{V: [3]int{c, a, p}, N: [3]int{old.t, -1, -1}}
		if j > 0 {
			tri.N[1] = t - 1
			b.triangles[t-1].N[2] = t
		}
		b.triangles = append(b.triangles, tri)
		b.triangles[old.t].N[old.e] = t
		delete(b.hullEdges, a)
	}
	last := len(b.triangles) - 1

	// 4) New hull: from the end of the run around to its start, then p.
	from := b.hull[start]
	end := (start + run) % h
	hull := make([]int, 0, h-run+2)
	for i := end; ; i = (i + 1) % h {
		hull = append(hull, b.hull[i])
		if i == start {
			break
		}
	}
	hull = append(hull, p)
	b.hull = hull

	b.hullEdges[from] = edgeRef{t: first, e: 1}
	b.hullEdges[p] = edgeRef{t: last, e: 2}

	// 5) The old hull edges are the only ones that may now be illegal.
	for t := first; t <= last; t++ {
		b.stack = append(b.stack, edgeRef{t: t, e: 0})
	}
	b.legalize()
}

// legalize flips stacked edges until every one satisfies the empty-circle
// test. Each stacked edge is opposite the point being inserted.
func (b *builder) legalize() {
	for len(b.stack) > 0 {
		ref := b.stack[len(b.stack)-1]
		b.stack = b.stack[:len(b.stack)-1]

		// Hull edges have nothing to flip against.
		t, e := ref.t, ref.e
		u := b.triangles[t].N[e]
		if u < 0 {
			continue
		}
		tv := b.triangles[t].V
		a, c, pv := tv[e], tv[next(e)], tv[prev(e)]

		// d is the apex of u opposite the shared edge; co-circular d is kept.
		j := b.sharedEdge(u, c, a)
		d := b.triangles[u].V[prev(j)]
		if !inCircle(b.pts[a], b.pts[c], b.pts[pv], b.pts[d]) {
			continue
		}

		b.flip(t, e, u, j)
		// After the flip p sees a→d in t (edge 1) and d→c in u (edge 0).
		b.stack = append(b.stack, edgeRef{t: t, e: 1}, edgeRef{t: u, e: 0})
	}
}

// sharedEdge returns the index of edge from→to inside triangle u.
func (b *builder) sharedEdge(u, from, to int) int {
	v := b.triangles[u].V
	for i := 0; i < 3; i++ {
		if v[i] == from && v[next(i)] == to {
			return i
		}
	}
	panic(fmt.Sprintf("delaunay: triangle %d has no edge %d→%d", u, from, to))
}

// flip replaces the diagonal a–c shared by t=(a,c,p) and u=(c,a,d) with p–d.
// Triangle slots are reused: t becomes (p,a,d) and u becomes (d,c,p).
func (b *builder) flip(t, e, u, j int) {
	tt, uu := b.triangles[t], b.triangles[u]
	a, c, p := tt.V[e], tt.V[next(e)], tt.V[prev(e)]
	d := uu.V[prev(j)]

	nPA := tt.N[prev(e)] // across p→a
	nCP := tt.N[next(e)] // across c→p
	nAD := uu.N[next(j)] // across a→d
	nDC := uu.N[prev(j)] // across d→c

	b.triangles[t] = Triangle{V: [3]int{p, a, d}, N: [3]int{nPA, nAD, u}}
	b.triangles[u] = Triangle{V: [3]int{d, c, p}, N: [3]int{nDC, nCP, t}}

	b.relink(nAD, u, t)
	b.relink(nCP, t, u)
	b.indexHull(t)
	b.indexHull(u)
}

// relink makes triangle x point at to wherever it pointed at from.
func (b *builder) relink(x, from, to int) {
	if x < 0 {
		return
	}
	for i := 0; i < 3; i++ {
		if b.triangles[x].N[i] == from {
			b.triangles[x].N[i] = to
			return
		}
	}
}

// indexHull records every hull edge of triangle t.
func (b *builder) indexHull(t int) {
	tri := b.triangles[t]
	for i := 0; i < 3; i++ {
		if tri.N[i] < 0 {
			b.hullEdges[tri.V[i]] = edgeRef{t: t, e: i}
		}
	}
}
