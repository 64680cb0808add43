// Package delaunay builds a Delaunay triangulation over the coordinates of a
// samples.Set and exposes it as an arena of triangles with integer adjacency.
//
// What:
//
//   - Triangulate inserts the points in lexicographic (x, then y) order. Each
//     new point lies outside the current convex hull, so it is connected to
//     every hull edge it can see. Lawson edge flips then restore the
//     empty-circumcircle property around the new point.
//   - Triangle stores three vertex indices into the Set (counter-clockwise) and
//     the index of the neighbour across each edge; -1 marks a hull edge.
//   - The hull is kept as a counter-clockwise ring of vertex indices.
//
// Determinism:
//
//	The insertion order depends only on the coordinates, and co-circular ties
//	are never flipped, so the same Set always yields the same triangle arena,
//	slot for slot.
//
// Complexity:
//
//   - Time:  O(n log n) sort + O(n·h) hull scans + expected O(n) flips overall
//     (h = hull size at insertion time).
//   - Space: O(n) triangles (2n - h - 2).
//
// Options:
//
//   - WithCheckEvery(k): poll ctx every k insertions (default 256).
//
// Errors:
//
//   - ErrNilSet:               nil *samples.Set.
//   - ErrDegenerateGeometry:   all points are collinear; no 2-D triangulation.
//   - ErrInvalidTriangulation: returned by Validate when an invariant is broken.
//   - samples.ErrInsufficientData is wrapped when fewer than 3 points are given.
package delaunay
