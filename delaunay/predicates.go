package delaunay

import (
	"math"

	"github.com/paulmach/orb"
)

// inCircleTolerance scales the in-circle determinant against the magnitude of
// its terms. Points closer than this to the circumcircle count as co-circular
// and are never flipped; this also keeps flip sequences from cycling.
const inCircleTolerance = 1e-12

// orient returns twice the signed area of (a, b, c): > 0 when c lies to the
// left of a→b (counter-clockwise), < 0 to the right, 0 when collinear.
func orient(a, b, c orb.Point) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

// inCircle reports whether d lies strictly inside the circumcircle of the
// counter-clockwise triangle (a, b, c).
func inCircle(a, b, c, d orb.Point) bool {
	adx, ady := a[0]-d[0], a[1]-d[1]
	bdx, bdy := b[0]-d[0], b[1]-d[1]
	cdx, cdy := c[0]-d[0], c[1]-d[1]

	ad := adx*adx + ady*ady
	bd := bdx*bdx + bdy*bdy
	cd := cdx*cdx + cdy*cdy

	det := ad*(bdx*cdy-cdx*bdy) + bd*(cdx*ady-adx*cdy) + cd*(adx*bdy-bdx*ady)
	perm := ad*(math.Abs(bdx*cdy)+math.Abs(cdx*bdy)) +
		bd*(math.Abs(cdx*ady)+math.Abs(adx*cdy)) +
		cd*(math.Abs(adx*bdy)+math.Abs(bdx*ady))

	return det > inCircleTolerance*perm
}

// lexLess orders points by x, then y.
func lexLess(a, b orb.Point) bool {
	if a[0] != b[0] {
		return a[0] < b[0]
	}
	return a[1] < b[1]
}
