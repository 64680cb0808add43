package contour_test

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/isochrone/contour"
	"github.com/katalvlaran/isochrone/delaunay"
	"github.com/katalvlaran/isochrone/samples"
)

func triangulate(t testing.TB, in []samples.Sample) *delaunay.Triangulation {
	set, err := samples.New(in)
	require.NoError(t, err)
	tr, err := delaunay.Triangulate(context.Background(), set)
	require.NoError(t, err)
	return tr
}

func square() []samples.Sample {
	return []samples.Sample{
		{Point: orb.Point{0, 0}, Cost: 0},
		{Point: orb.Point{10, 0}, Cost: 10},
		{Point: orb.Point{0, 10}, Cost: 10},
		{Point: orb.Point{10, 10}, Cost: 20},
	}
}

func radial(t testing.TB, seed int64, n int) *delaunay.Triangulation {
	r := rand.New(rand.NewSource(seed))
	in := make([]samples.Sample, n)
	for i := range in {
		p := orb.Point{r.Float64()*200 - 100, r.Float64()*200 - 100}
		in[i] = samples.Sample{Point: p, Cost: math.Hypot(p[0], p[1])}
	}
	return triangulate(t, in)
}

func TestCrossing_Symmetric(t *testing.T) {
	set, err := samples.New(square())
	require.NoError(t, err)

	a := contour.Crossing(set, 0, 3, 5)
	b := contour.Crossing(set, 3, 0, 5)
	assert.Equal(t, a, b)
	assert.Equal(t, orb.Point{2.5, 2.5}, a)

	// A vertex exactly on the threshold is reachable, so the crossing sits on it.
	assert.Equal(t, orb.Point{10, 0}, contour.Crossing(set, 1, 3, 10))
}

func TestExtract_Square(t *testing.T) {
	tr := triangulate(t, square())

	segs, err := contour.Extract(context.Background(), tr, 5)
	require.NoError(t, err)
	require.Len(t, segs, 1)
	s := segs[0]
	assert.Equal(t, orb.Point{5, 0}, s.A)
	assert.Equal(t, orb.Point{0, 5}, s.B)
	assert.Equal(t, contour.EdgeNode(0, 1), s.From)
	assert.Equal(t, contour.EdgeNode(2, 0), s.To)
	assert.Equal(t, 5.0, s.Threshold)

	segs, err = contour.Extract(context.Background(), tr, 10)
	require.NoError(t, err)
	require.Len(t, segs, 1)
	assert.Equal(t, 1, segs[0].Triangle)
}

func TestExtract_NoCrossing(t *testing.T) {
	tr := triangulate(t, square())
	for _, th := range []float64{-1, 20, 25} {
		segs, err := contour.Extract(context.Background(), tr, th)
		require.NoError(t, err)
		assert.Empty(t, segs, "threshold %v", th)
	}
}

func TestExtract_InvalidThreshold(t *testing.T) {
	tr := triangulate(t, square())
	_, err := contour.Extract(context.Background(), tr, math.NaN())
	require.ErrorIs(t, err, contour.ErrInvalidThreshold)
	_, err = contour.Extract(context.Background(), tr, math.Inf(1))
	require.ErrorIs(t, err, contour.ErrInvalidThreshold)
}

func TestExtract_Cancelled(t *testing.T) {
	tr := radial(t, 1, 100)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := contour.Extract(ctx, tr, 50)
	require.ErrorIs(t, err, context.Canceled)
}

// TestExtract_SharedEndpoints checks that every interior crossing node is the
// end of exactly one segment and the start of exactly one other, with
// identical coordinates.
func TestExtract_SharedEndpoints(t *testing.T) {
	tr := radial(t, 5, 500)
	segs, err := contour.Extract(context.Background(), tr, 60)
	require.NoError(t, err)
	require.NotEmpty(t, segs)

	starts := make(map[contour.Node]orb.Point)
	for _, s := range segs {
		_, dup := starts[s.From]
		require.False(t, dup, "node %v starts two segments", s.From)
		starts[s.From] = s.A
	}
	for _, s := range segs {
		if p, ok := starts[s.To]; ok {
			assert.Equal(t, p, s.B, "node %v has two coordinates", s.To)
		}
	}
}

// TestExtract_ReachableOnLeft checks the orientation of every segment.
func TestExtract_ReachableOnLeft(t *testing.T) {
	tr := radial(t, 9, 300)
	set := tr.Set()
	segs, err := contour.Extract(context.Background(), tr, 40)
	require.NoError(t, err)

	for _, s := range segs {
		for _, v := range tr.Triangle(s.Triangle).V {
			p := set.Point(v)
			side := (s.B[0]-s.A[0])*(p[1]-s.A[1]) - (s.B[1]-s.A[1])*(p[0]-s.A[0])
			if contour.Below(set.Cost(v), 40) {
				assert.GreaterOrEqual(t, side, -1e-9)
			} else {
				assert.LessOrEqual(t, side, 1e-9)
			}
		}
	}
}

func TestNode(t *testing.T) {
	assert.Equal(t, contour.EdgeNode(3, 1), contour.EdgeNode(1, 3))
	assert.True(t, contour.VertexNode(4).IsVertex())
	assert.False(t, contour.EdgeNode(4, 5).IsVertex())
}
