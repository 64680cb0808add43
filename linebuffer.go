package isochrone

import (
	"math"
	"sort"

	"github.com/paulmach/orb"

	"github.com/katalvlaran/isochrone/contour"
	"github.com/katalvlaran/isochrone/samples"
)

// station is a sample projected onto the sample line.
type station struct {
	s    float64 // distance along the line
	cost float64
}

// lineBuffer answers collinear samples: for every limit the reachable
// intervals along the line, extended by width at both ends, become
// rectangles of half-width width. Intervals whose rectangles would overlap
// are merged.
func lineBuffer(set *samples.Set, limits []float64, width float64) []LimitResult {
	origin, dir := axis(set)
	normal := orb.Point{-dir[1], dir[0]}

	stations := make([]station, set.Len())
	for i := range stations {
		p := set.Point(i)
		stations[i] = station{
			s:    (p[0]-origin[0])*dir[0] + (p[1]-origin[1])*dir[1],
			cost: set.Cost(i),
		}
	}
	sort.Slice(stations, func(i, j int) bool { return stations[i].s < stations[j].s })

	at := func(s, off float64) orb.Point {
		return orb.Point{
			origin[0] + s*dir[0] + off*normal[0],
			origin[1] + s*dir[1] + off*normal[1],
		}
	}

	out := make([]LimitResult, len(limits))
	for k, limit := range limits {
		out[k].Limit = limit
		out[k].Polygons = []orb.Polygon{}
		for _, iv := range reachable(stations, limit, width) {
			a, b := iv[0]-width, iv[1]+width
			out[k].Polygons = append(out[k].Polygons, orb.Polygon{orb.Ring{
				at(a, -width), at(b, -width), at(b, width), at(a, width), at(a, -width),
			}})
		}
	}
	return out
}

// axis returns the lexicographically smallest point and the unit direction
// towards the largest one.
func axis(set *samples.Set) (orb.Point, orb.Point) {
	lo, hi := set.Point(0), set.Point(0)
	for _, p := range set.Points() {
		if p[0] < lo[0] || (p[0] == lo[0] && p[1] < lo[1]) {
			lo = p
		}
		if p[0] > hi[0] || (p[0] == hi[0] && p[1] > hi[1]) {
			hi = p
		}
	}
	dx, dy := hi[0]-lo[0], hi[1]-lo[1]
	n := math.Hypot(dx, dy)
	return lo, orb.Point{dx / n, dy / n}
}

// reachable returns the maximal intervals [from, to] along the line whose
// interpolated cost is within limit, merging those closer than 2·width.
func reachable(st []station, limit, width float64) [][2]float64 {
	var (
		out  [][2]float64
		open bool
		cur  [2]float64
	)
	push := func(iv [2]float64) {
		if n := len(out); n > 0 && iv[0]-out[n-1][1] <= 2*width {
			out[n-1][1] = iv[1]
			return
		}
		out = append(out, iv)
	}

	for i, x := range st {
		in := contour.Below(x.cost, limit)
		switch {
		case in && !open:
			open = true
			cur[0] = x.s
			if i > 0 {
				cur[0] = cross(st[i-1], x, limit)
			}
		case !in && open:
			open = false
			cur[1] = cross(st[i-1], x, limit)
			push(cur)
		}
	}
	if open {
		cur[1] = st[len(st)-1].s
		push(cur)
	}
	return out
}

// cross interpolates where the cost between a and b equals limit; exactly
// one of them is within limit.
func cross(a, b station, limit float64) float64 {
	lo, hi := a, b
	if !contour.Below(lo.cost, limit) {
		lo, hi = b, a
	}
	f := (limit - lo.cost) / (hi.cost - lo.cost)
	return lo.s + f*(hi.s-lo.s)
}
