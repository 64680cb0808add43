package contour

import (
	"context"
	"fmt"
	"math"

	"github.com/paulmach/orb"

	"github.com/katalvlaran/isochrone/delaunay"
	"github.com/katalvlaran/isochrone/samples"
)

// Below reports whether cost lies on the reachable side of threshold.
// Equality counts as reachable.
func Below(cost, threshold float64) bool {
	return cost <= threshold
}

// Crossing returns the point where the cost interpolated along edge {u, v}
// equals threshold. Exactly one endpoint must be below the threshold; the
// result does not depend on the order of u and v.
func Crossing(set *samples.Set, u, v int, threshold float64) orb.Point {
	lo, hi := u, v
	if !Below(set.Cost(lo), threshold) {
		lo, hi = v, u
	}
	pl, ph := set.Point(lo), set.Point(hi)
	cl, ch := set.Cost(lo), set.Cost(hi)

	f := (threshold - cl) / (ch - cl)
	return orb.Point{
		pl[0] + f*(ph[0]-pl[0]),
		pl[1] + f*(ph[1]-pl[1]),
	}
}

// Extract walks every triangle of tr and returns the contour segments for
// threshold, in triangle order. ctx is polled between triangles.
//
// Complexity: O(T) time.
func Extract(ctx context.Context, tr *delaunay.Triangulation, threshold float64) ([]Segment, error) {
	if math.IsNaN(threshold) || math.IsInf(threshold, 0) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidThreshold, threshold)
	}

	set := tr.Set()
	var segs []Segment
	for t := 0; t < tr.Len(); t++ {
		if t%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("contour: cancelled at triangle %d of %d: %w", t, tr.Len(), err)
			}
		}

		seg, ok := segmentOf(set, tr.Triangle(t), threshold)
		if !ok {
			continue
		}
		seg.Triangle = t
		segs = append(segs, seg)
	}
	return segs, nil
}

// segmentOf builds the segment of one triangle, if any. Walking the edges
// counter-clockwise, the edge leaving the reachable side holds the start of
// the segment and the edge returning to it holds the end.
func segmentOf(set *samples.Set, tri delaunay.Triangle, threshold float64) (Segment, bool) {
	var below [3]bool
	for i, v := range tri.V {
		below[i] = Below(set.Cost(v), threshold)
	}
	if below[0] == below[1] && below[1] == below[2] {
		return Segment{}, false
	}

	seg := Segment{Threshold: threshold}
	for i := 0; i < 3; i++ {
		j := (i + 1) % 3
		if below[i] == below[j] {
			continue
		}
		u, v := tri.V[i], tri.V[j]
		if below[i] {
			seg.From, seg.A = EdgeNode(u, v), Crossing(set, u, v, threshold)
		} else {
			seg.To, seg.B = EdgeNode(u, v), Crossing(set, u, v, threshold)
		}
	}
	return seg, true
}
