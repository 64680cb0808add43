// Package contour extracts threshold-crossing segments from a Delaunay
// triangulation of cost samples.
//
// For a threshold T a vertex is "below" (reachable) when its cost ≤ T and
// "above" otherwise. An edge crosses the threshold when its endpoints lie on
// different sides; the crossing point is interpolated linearly from the below
// endpoint lo towards the above endpoint hi:
//
//	p = lo + (T − cost(lo)) / (cost(hi) − cost(lo)) · (hi − lo)
//
// Because the formula always starts at the below endpoint, the two triangles
// sharing an edge compute the same bits for its crossing point, and Node gives
// each crossing a topological identity on top of that.
//
// Each triangle has either zero or two crossing edges; with two it emits one
// Segment oriented so the reachable side lies on the left of A→B.
//
// Complexity: O(T) time, O(s) memory for s emitted segments.
package contour
