package polygon

import (
	"fmt"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/katalvlaran/isochrone/contour"
	"github.com/katalvlaran/isochrone/delaunay"
)

// Assemble stitches the segments of one threshold into polygons.
// See AssembleWithStats.
func Assemble(tr *delaunay.Triangulation, segs []contour.Segment, threshold float64, opts ...Option) ([]orb.Polygon, error) {
	polys, _, err := AssembleWithStats(tr, segs, threshold, opts...)
	return polys, err
}

// AssembleWithStats stitches the segments produced by contour.Extract for
// threshold into polygons and reports what happened on the way.
//
// Steps:
//  1. Link every segment and the reachable part of every hull edge into a
//     map keyed by the piece's start node.
//  2. Walk the map in insertion order, deleting pieces as they are consumed,
//     until each chain returns to its start node.
//  3. Clean each loop, split pinches, drop rings with |area| < Epsilon.
//  4. Attach clockwise rings to the smallest containing outer ring.
//
// Output polygons are sorted by outer area, largest first; a polygon's holes
// likewise. Outer rings are counter-clockwise, holes clockwise, all rings
// closed.
func AssembleWithStats(tr *delaunay.Triangulation, segs []contour.Segment, threshold float64, opts ...Option) ([]orb.Polygon, Stats, error) {
	var st Stats
	if tr == nil {
		return nil, st, ErrNilTriangulation
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	pieces, order, err := link(tr, segs, threshold)
	if err != nil {
		return nil, st, err
	}

	var outers, holes []ring
	for _, loop := range walk(pieces, order, &st) {
		for _, pts := range clean(loop) {
			r := closeRing(pts)
			if abs(r.area) < cfg.Epsilon || r.area == 0 {
				st.Dropped++
				continue
			}
			if r.area > 0 {
				outers = append(outers, r)
			} else {
				holes = append(holes, r)
			}
		}
	}

	polys := nest(outers, holes, &st)
	return polys, st, nil
}

// link builds the working map of directed pieces. order records start nodes
// in insertion order so the walk does not depend on map iteration.
func link(tr *delaunay.Triangulation, segs []contour.Segment, threshold float64) (map[contour.Node]piece, []contour.Node, error) {
	pieces := make(map[contour.Node]piece, len(segs)+len(tr.Hull()))
	order := make([]contour.Node, 0, len(segs)+len(tr.Hull()))
	add := func(from contour.Node, p piece) error {
		if _, dup := pieces[from]; dup {
			return fmt.Errorf("%w: two pieces leave node %v", ErrInconsistentSegments, from)
		}
		pieces[from] = p
		order = append(order, from)
		return nil
	}

	for i, s := range segs {
		if s.Threshold != threshold {
			return nil, nil, fmt.Errorf("%w: segment %d has threshold %v, want %v",
				ErrInconsistentSegments, i, s.Threshold, threshold)
		}
		if err := add(s.From, piece{to: s.To, a: s.A, b: s.B}); err != nil {
			return nil, nil, err
		}
	}

	// Hull edges close the chains that leave the triangulation.
	set := tr.Set()
	for _, he := range tr.HullEdges() {
		fromIn := contour.Below(set.Cost(he.From), threshold)
		toIn := contour.Below(set.Cost(he.To), threshold)
		var err error
		switch {
		case fromIn && toIn:
			err = add(contour.VertexNode(he.From), piece{
				to: contour.VertexNode(he.To),
				a:  set.Point(he.From),
				b:  set.Point(he.To),
			})
		case fromIn:
			err = add(contour.VertexNode(he.From), piece{
				to: contour.EdgeNode(he.From, he.To),
				a:  set.Point(he.From),
				b:  contour.Crossing(set, he.From, he.To, threshold),
			})
		case toIn:
			err = add(contour.EdgeNode(he.From, he.To), piece{
				to: contour.VertexNode(he.To),
				a:  contour.Crossing(set, he.From, he.To, threshold),
				b:  set.Point(he.To),
			})
		}
		if err != nil {
			return nil, nil, err
		}
	}
	return pieces, order, nil
}

// walk consumes pieces into loops. A chain that runs into a missing piece
// is closed by a straight snap from its tail to its head.
func walk(pieces map[contour.Node]piece, order []contour.Node, st *Stats) [][]orb.Point {
	var loops [][]orb.Point
	for _, start := range order {
		if _, ok := pieces[start]; !ok {
			continue // consumed by an earlier loop
		}

		var pts []orb.Point
		cur := start
		for {
			p := pieces[cur]
			delete(pieces, cur)
			pts = append(pts, p.a)
			cur = p.to
			if cur == start {
				break
			}
			if _, ok := pieces[cur]; !ok {
				pts = append(pts, p.b)
				st.SnappedChains++
				break
			}
		}
		loops = append(loops, pts)
	}
	return loops
}

// nest attaches holes to outers and sorts the result.
func nest(outers, holes []ring, st *Stats) []orb.Polygon {
	byArea := func(rs []ring) {
		sort.SliceStable(rs, func(i, j int) bool {
			ai, aj := abs(rs[i].area), abs(rs[j].area)
			if ai != aj {
				return ai > aj
			}
			return lexLess(rs[i].pts[0], rs[j].pts[0])
		})
	}
	byArea(outers)
	byArea(holes)

	owned := make([][]ring, len(outers))
	var orphans []ring
	for _, h := range holes {
		best := -1
		for i, o := range outers {
			if o.area <= -h.area || !containsAll(o.pts, h.pts) {
				continue
			}
			// outers are sorted largest first, so the last match is the smallest
			best = i
		}
		if best < 0 {
			h.pts.Reverse()
			h.area = -h.area
			orphans = append(orphans, h)
			continue
		}
		owned[best] = append(owned[best], h)
		st.Holes++
	}

	type group struct {
		outer ring
		holes []ring
	}
	groups := make([]group, 0, len(outers)+len(orphans))
	for i, o := range outers {
		groups = append(groups, group{outer: o, holes: owned[i]})
	}
	for _, o := range orphans {
		groups = append(groups, group{outer: o})
	}
	sort.SliceStable(groups, func(i, j int) bool {
		ai, aj := groups[i].outer.area, groups[j].outer.area
		if ai != aj {
			return ai > aj
		}
		return lexLess(groups[i].outer.pts[0], groups[j].outer.pts[0])
	})

	polys := make([]orb.Polygon, 0, len(groups))
	for _, g := range groups {
		poly := make(orb.Polygon, 0, 1+len(g.holes))
		poly = append(poly, g.outer.pts)
		for _, h := range g.holes {
			poly = append(poly, h.pts)
		}
		polys = append(polys, poly)
		st.Rings += len(poly)
	}
	return polys
}

// containsAll reports whether every vertex of inner lies in or on outer.
func containsAll(outer, inner orb.Ring) bool {
	for _, p := range inner {
		if !planar.RingContains(outer, p) {
			return false
		}
	}
	return true
}
