package delaunay

import "errors"

var (
	// ErrNilSet indicates that a nil *samples.Set was passed to Triangulate.
	ErrNilSet = errors.New("delaunay: sample set is nil")

	// ErrDegenerateGeometry indicates that every point lies on one line, so
	// the points do not span a 2-D area. Callers may treat the samples as a
	// line buffer instead.
	ErrDegenerateGeometry = errors.New("delaunay: points are collinear")

	// ErrInvalidTriangulation is reported by Validate when winding, adjacency
	// or the empty-circumcircle property does not hold.
	ErrInvalidTriangulation = errors.New("delaunay: invalid triangulation")
)
