// Package polygon stitches contour segments into closed isochrone rings and
// groups them into polygons with holes.
//
// What:
//
//   - Every contour segment becomes a directed piece From → To with the
//     reachable side on its left.
//   - Chains that run into the convex hull are closed by snapping to the hull:
//     each hull edge contributes the part lying on the reachable side, so the
//     pieces form closed loops in which every node has one way in and one way
//     out.
//   - Loops are walked iteratively; a consumed piece is removed from the
//     working map, so no visited set is needed.
//   - Rings are cleaned (duplicate and collinear vertices removed, pinched
//     loops split), rotated to start at their lexicographically smallest
//     vertex and closed.
//   - Signed area decides the role: counter-clockwise rings are outer
//     boundaries, clockwise rings are holes. Each hole is attached to the
//     smallest outer ring that contains it.
//
// Options:
//
//   - WithEpsilon(eps): rings with |area| < eps are dropped (default DefaultEpsilon).
//
// Errors:
//
//   - ErrNilTriangulation:     nil triangulation.
//   - ErrInconsistentSegments: a segment for another threshold, or two pieces
//     leaving the same node.
//
// Complexity: O(s + h + r·v) for s segments, h hull edges and r rings of v
// vertices (hole nesting is O(outer·hole·v) in the worst case).
package polygon
