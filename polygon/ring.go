package polygon

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// clean turns one walked loop into simple loops: vertices visited twice
// split the loop at that vertex, and exactly collinear vertices (including
// zero-width spikes) are removed. Loops shorter than three vertices vanish.
func clean(loop []orb.Point) [][]orb.Point {
	var out [][]orb.Point
	for _, l := range splitPinches(dedupe(loop)) {
		l = dropCollinear(l)
		if len(l) >= 3 {
			out = append(out, l)
		}
	}
	return out
}

// dedupe removes consecutive repeats, including the wrap from last to first.
func dedupe(loop []orb.Point) []orb.Point {
	out := make([]orb.Point, 0, len(loop))
	for _, p := range loop {
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}
	return out
}

// splitPinches cuts a cyclic vertex sequence at every repeated vertex.
func splitPinches(loop []orb.Point) [][]orb.Point {
	var (
		out   [][]orb.Point
		stack = make([]orb.Point, 0, len(loop))
		pos   = make(map[orb.Point]int, len(loop))
	)
	for _, p := range loop {
		i, seen := pos[p]
		if !seen {
			pos[p] = len(stack)
			stack = append(stack, p)
			continue
		}
		sub := make([]orb.Point, len(stack)-i)
		copy(sub, stack[i:])
		out = append(out, sub)
		for _, q := range stack[i+1:] {
			delete(pos, q)
		}
		stack = stack[:i+1]
	}
	return append(out, stack)
}

// dropCollinear removes vertices whose neighbours are exactly collinear
// with them, treating the slice as cyclic.
func dropCollinear(loop []orb.Point) []orb.Point {
	out := make([]orb.Point, 0, len(loop))
	for _, p := range loop {
		out = append(out, p)
		for len(out) >= 3 && cross(out[len(out)-3], out[len(out)-2], out[len(out)-1]) == 0 {
			out = append(out[:len(out)-2], out[len(out)-1])
		}
	}
	for changed := true; changed && len(out) >= 3; {
		changed = false
		n := len(out)
		if cross(out[n-2], out[n-1], out[0]) == 0 {
			out = out[:n-1]
			changed = true
			continue
		}
		if cross(out[n-1], out[0], out[1]) == 0 {
			out = out[1:]
			changed = true
		}
	}
	return out
}

// closeRing rotates pts to start at the lexicographically smallest vertex,
// repeats it at the end and measures the signed area, positive for
// counter-clockwise rings.
func closeRing(pts []orb.Point) ring {
	start := 0
	for i, p := range pts {
		if lexLess(p, pts[start]) {
			start = i
		}
	}
	r := make(orb.Ring, 0, len(pts)+1)
	r = append(r, pts[start:]...)
	r = append(r, pts[:start]...)
	r = append(r, pts[start])

	return ring{pts: r, area: planar.Area(r)}
}

// cross is twice the signed area of triangle abc.
func cross(a, b, c orb.Point) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

func lexLess(a, b orb.Point) bool {
	if a[0] != b[0] {
		return a[0] < b[0]
	}
	return a[1] < b[1]
}

func abs(x float64) float64 { return math.Abs(x) }
