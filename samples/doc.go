// Package samples holds the input of the isochrone pipeline: a cloud of
// (coordinate, cumulative cost) pairs produced by an external shortest-path
// search over a road network.
//
// What:
//
//   - Sample pairs a planar coordinate (orb.Point) with the cumulative travel
//     cost from the source to that coordinate.
//   - EdgeSample optionally describes one traversed graph edge with its cost
//     increment; it is used to densify the cloud along edges.
//   - Set is the validated, deduplicated, order-stable array consumed by the
//     triangulator. Indices into a Set are stable for its whole lifetime.
//
// Validation (New):
//
//   - Coordinates and costs must be finite; costs must be ≥ 0 (ErrInvalidSample).
//   - Exact coordinate collisions keep the minimum cost; the first occurrence
//     keeps its slot so the order of distinct points is preserved.
//   - Fewer than 3 distinct points → ErrInsufficientData.
//
// Densification (WithEdges):
//
//	For every EdgeSample whose From coordinate is already a sample, the edge is
//	split into `subdivisions` equal parts and each inner point receives
//	cost(From) + f·Weight. The To endpoint receives cost(From) + Weight.
//	Collisions keep the minimum cost, exactly as for plain samples.
//
// Complexity:
//
//   - New: O(n + e·k) time and memory (n samples, e edges, k subdivisions).
//
// Errors:
//
//   - ErrInvalidSample: NaN/Inf coordinate or cost, or negative cost.
//   - ErrInsufficientData: fewer than 3 distinct points remain.
package samples
