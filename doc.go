// Package isochrone computes the regions reachable from a source within one
// or more travel-cost budgets.
//
// The input is a cloud of samples, each a coordinate and the cumulative cost
// of reaching it, as produced by a shortest-path search over a road network
// (see package network for one). The pipeline:
//
//	samples/   validated, deduplicated sample set (optionally densified along edges)
//	delaunay/  incremental Delaunay triangulation with an integer triangle arena
//	contour/   threshold crossings per triangle, oriented reachable-on-left
//	polygon/   stitching crossings and hull pieces into rings with holes
//
// Service ties them together: one triangulation per request, one contour and
// one polygon set per cost limit.
//
//	svc := isochrone.New(isochrone.WithLogger(logger))
//	res, err := svc.Compute(ctx, set, []float64{300, 600, 900})
//	fc := res.FeatureCollection() // GeoJSON, one feature per limit
//
// Guarantees:
//
//   - Limits must be positive, finite and strictly increasing; otherwise Compute
//     fails with a *LimitError matching ErrInvalidCostLimit.
//   - Polygons of a smaller limit lie inside the union of those of a larger one.
//   - The result is deterministic for a given sample set.
//   - A limit whose assembly fails carries its own Err; other limits are
//     unaffected and no partial polygons are returned for it.
//
// Collinear samples cannot be triangulated and fail with
// delaunay.ErrDegenerateGeometry, unless WithLineBufferFallback is set, in
// which case the reachable stretches of the line are buffered into
// rectangles.
//
// Compute is single-threaded and touches no shared mutable state; ComputeBatch
// runs independent requests on a bounded worker pool.
package isochrone
