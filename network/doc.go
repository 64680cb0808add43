// Package network is a small coordinate road graph with a Dijkstra
// shortest-path tree, used to produce the cost samples the isochrone
// pipeline consumes.
//
// What:
//
//   - Graph: nodes with string IDs and planar positions, weighted edges
//     (int64, non-negative). Edges are two-way unless added with AddArc.
//   - ShortestPaths(g, source, opts...) settles nodes in increasing cost from
//     source using a lazy binary heap and returns a Tree.
//   - Tree.Samples() and Tree.EdgeSamples() convert the result to
//     samples.Sample and samples.EdgeSample.
//   - Grid(rows, cols, spacing, weight) builds an orthogonal test network.
//
// Complexity:
//
//   - ShortestPaths: O((V + E) log V) time, O(V + E) space (lazy decrease-key).
//   - Grid: O(rows·cols).
//
// Options:
//
//   - WithMaxCost(c):   nodes whose cost would exceed c are not settled.
//   - WithBlockedFrom(w): edges with weight ≥ w are impassable.
//
// Errors:
//
//   - ErrNilGraph, ErrEmptySource, ErrNodeNotFound, ErrDuplicateNode,
//     ErrNegativeWeight, ErrBadGridSize.
package network
