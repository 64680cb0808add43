package isochrone_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/isochrone"
	"github.com/katalvlaran/isochrone/delaunay"
	"github.com/katalvlaran/isochrone/metrics"
	"github.com/katalvlaran/isochrone/samples"
)

func mustSet(t testing.TB, in []samples.Sample) *samples.Set {
	set, err := samples.New(in)
	require.NoError(t, err)
	return set
}

func square(t testing.TB) *samples.Set {
	return mustSet(t, []samples.Sample{
		{Point: orb.Point{0, 0}, Cost: 0},
		{Point: orb.Point{10, 0}, Cost: 10},
		{Point: orb.Point{0, 10}, Cost: 10},
		{Point: orb.Point{10, 10}, Cost: 20},
	})
}

func line(t testing.TB, costs ...float64) *samples.Set {
	in := make([]samples.Sample, len(costs))
	for i, c := range costs {
		in[i] = samples.Sample{Point: orb.Point{float64(10 * i), 0}, Cost: c}
	}
	return mustSet(t, in)
}

func radial(t testing.TB, seed int64, n int) *samples.Set {
	r := rand.New(rand.NewSource(seed))
	in := make([]samples.Sample, 0, n+1)
	in = append(in, samples.Sample{Point: orb.Point{0, 0}, Cost: 0})
	for i := 0; i < n; i++ {
		p := orb.Point{r.Float64()*200 - 100, r.Float64()*200 - 100}
		// anisotropic cost keeps the contours from being circles
		in = append(in, samples.Sample{Point: p, Cost: math.Hypot(2*p[0], p[1])})
	}
	return mustSet(t, in)
}

func TestCompute_Square(t *testing.T) {
	res, err := isochrone.New().Compute(context.Background(), square(t), []float64{10, 20})
	require.NoError(t, err)
	require.Len(t, res.Limits, 2)
	assert.NotEmpty(t, res.RequestID)
	assert.Equal(t, 4, res.Samples)
	assert.Equal(t, 2, res.Triangles)
	assert.False(t, res.LineBuffer)

	l10 := res.Limits[0]
	require.NoError(t, l10.Err)
	assert.Equal(t, 10.0, l10.Limit)
	require.Len(t, l10.Polygons, 1)
	assert.Equal(t, orb.Ring{{0, 0}, {10, 0}, {0, 10}, {0, 0}}, l10.Polygons[0][0])

	l20 := res.Limits[1]
	require.NoError(t, l20.Err)
	require.Len(t, l20.Polygons, 1)
	assert.Equal(t, orb.Ring{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}, l20.Polygons[0][0])

	assert.Equal(t, l20.Polygons, res.Polygons(20))
	assert.Nil(t, res.Polygons(15))
}

func TestCompute_InvalidLimits(t *testing.T) {
	svc := isochrone.New()
	cases := []struct {
		name   string
		limits []float64
		index  int
	}{
		{"decreasing", []float64{5, 3}, 1},
		{"repeated", []float64{5, 5}, 1},
		{"zero", []float64{0, 3}, 0},
		{"negative", []float64{-1}, 0},
		{"nan", []float64{1, math.NaN()}, 1},
		{"inf", []float64{math.Inf(1)}, 0},
		{"empty", nil, -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := svc.Compute(context.Background(), square(t), tc.limits)
			require.ErrorIs(t, err, isochrone.ErrInvalidCostLimit)
			assert.Nil(t, res)

			var le *isochrone.LimitError
			require.True(t, errors.As(err, &le))
			assert.Equal(t, tc.index, le.Index)
		})
	}
}

func TestCompute_Degenerate(t *testing.T) {
	_, err := isochrone.New().Compute(context.Background(), line(t, 0, 10, 20), []float64{5})
	assert.ErrorIs(t, err, delaunay.ErrDegenerateGeometry)

	_, err = isochrone.New().Compute(context.Background(), nil, []float64{5})
	assert.ErrorIs(t, err, delaunay.ErrNilSet)
}

func TestCompute_LineBufferFallback(t *testing.T) {
	svc := isochrone.New(isochrone.WithLineBufferFallback(1))

	res, err := svc.Compute(context.Background(), line(t, 0, 10, 20), []float64{5, 20})
	require.NoError(t, err)
	assert.True(t, res.LineBuffer)
	require.Len(t, res.Limits, 2)

	require.Len(t, res.Limits[0].Polygons, 1)
	assert.Equal(t, orb.Ring{{-1, -1}, {6, -1}, {6, 1}, {-1, 1}, {-1, -1}}, res.Limits[0].Polygons[0][0])
	require.Len(t, res.Limits[1].Polygons, 1)
	assert.Equal(t, orb.Ring{{-1, -1}, {21, -1}, {21, 1}, {-1, 1}, {-1, -1}}, res.Limits[1].Polygons[0][0])
	assert.Equal(t, orb.CCW, res.Limits[1].Polygons[0][0].Orientation())
}

func TestCompute_LineBufferSeparatesAndMerges(t *testing.T) {
	set := line(t, 0, 10, 0)

	res, err := isochrone.New(isochrone.WithLineBufferFallback(1)).Compute(context.Background(), set, []float64{4})
	require.NoError(t, err)
	assert.Len(t, res.Limits[0].Polygons, 2)

	res, err = isochrone.New(isochrone.WithLineBufferFallback(7)).Compute(context.Background(), set, []float64{4})
	require.NoError(t, err)
	require.Len(t, res.Limits[0].Polygons, 1)
	assert.InDelta(t, 34*14, planar.Area(res.Limits[0].Polygons[0]), 1e-9)
}

func TestCompute_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := isochrone.New().Compute(ctx, square(t), []float64{10})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompute_LogsAndMetrics(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	reg := metrics.NewRegistry()

	svc := isochrone.New(isochrone.WithLogger(logger), isochrone.WithMetrics(reg))
	res, err := svc.Compute(context.Background(), square(t), []float64{5, 10})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `"request_id":"`+res.RequestID+`"`)
	assert.Contains(t, buf.String(), `"msg":"isochrone computed"`)
	assert.Contains(t, buf.String(), `"msg":"limit assembled"`)

	families, err := reg.PrometheusRegistry().Gather()
	require.NoError(t, err)
	found := map[string]float64{}
	for _, f := range families {
		for _, m := range f.GetMetric() {
			if c := m.GetCounter(); c != nil {
				found[f.GetName()] += c.GetValue()
			}
		}
	}
	assert.Equal(t, 1.0, found["isochrone_computations_total"])
	assert.Equal(t, 2.0, found["isochrone_limits_total"])
}

func TestComputeBatch(t *testing.T) {
	reqs := []isochrone.Request{
		{Set: square(t), Limits: []float64{10}},
		{Set: square(t), Limits: []float64{5, 3}},
		{Set: radial(t, 7, 200), Limits: []float64{20, 40, 80}},
		{Set: line(t, 0, 1, 2), Limits: []float64{1}},
	}
	out := isochrone.New(isochrone.WithWorkers(2)).ComputeBatch(context.Background(), reqs)
	require.Len(t, out, len(reqs))

	require.NoError(t, out[0].Err)
	assert.Len(t, out[0].Result.Limits[0].Polygons, 1)
	assert.ErrorIs(t, out[1].Err, isochrone.ErrInvalidCostLimit)
	require.NoError(t, out[2].Err)
	assert.Len(t, out[2].Result.Limits, 3)
	assert.ErrorIs(t, out[3].Err, delaunay.ErrDegenerateGeometry)
}

func TestResult_FeatureCollection(t *testing.T) {
	res, err := isochrone.New().Compute(context.Background(), square(t), []float64{5, 20})
	require.NoError(t, err)

	fc := res.FeatureCollection()
	require.Len(t, fc.Features, 2)
	assert.Equal(t, 5.0, fc.Features[0].Properties[isochrone.PropertyLimit])
	assert.Equal(t, 1, fc.Features[0].Properties[isochrone.PropertyPolygons])

	mp, ok := fc.Features[1].Geometry.(orb.MultiPolygon)
	require.True(t, ok)
	assert.InDelta(t, 100, planar.Area(mp), 1e-9)

	raw, err := json.Marshal(fc)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"type":"MultiPolygon"`)
}

func TestOptions_Panics(t *testing.T) {
	assert.Panics(t, func() { isochrone.WithLogger(nil) })
	assert.Panics(t, func() { isochrone.WithEpsilon(-1) })
	assert.Panics(t, func() { isochrone.WithWorkers(0) })
	assert.Panics(t, func() { isochrone.WithLineBufferFallback(0) })
	assert.Panics(t, func() { isochrone.WithLineBufferFallback(math.Inf(1)) })
}

// onRing reports whether p lies on r up to rounding.
func onRing(r orb.Ring, p orb.Point) bool {
	for i := 0; i+1 < len(r); i++ {
		if planar.DistanceFromSegment(r[i], r[i+1], p) < 1e-9 {
			return true
		}
	}
	return false
}

// nestedAndClassified checks one Result: every limit's outer rings are
// counter-clockwise and its holes clockwise, samples above the limit stay
// outside its polygons, and every vertex of a smaller limit's polygons lies
// inside the polygons of the next larger limit.
func nestedAndClassified(set *samples.Set, hull orb.Ring, res *isochrone.Result) bool {
	for _, lr := range res.Limits {
		if lr.Err != nil {
			return false
		}
		mp := orb.MultiPolygon(lr.Polygons)
		for _, poly := range lr.Polygons {
			if poly[0].Orientation() != orb.CCW {
				return false
			}
			for _, h := range poly[1:] {
				if h.Orientation() != orb.CW {
					return false
				}
			}
		}
		for i := 0; i < set.Len(); i++ {
			// skip samples whose crossing may round onto the sample itself
			if set.Cost(i) > lr.Limit+1e-9 && planar.MultiPolygonContains(mp, set.Point(i)) {
				return false
			}
		}
	}

	for k := 0; k+1 < len(res.Limits); k++ {
		inner, outer := res.Limits[k], res.Limits[k+1]
		mp := orb.MultiPolygon(outer.Polygons)
		for _, poly := range inner.Polygons {
			for _, p := range poly[0] {
				if !planar.MultiPolygonContains(mp, p) && !onRing(hull, p) {
					return false
				}
			}
		}
	}
	return true
}

// costGrid is a rows×cols unit grid with random integer costs; its
// isochrones have holes and islands.
func costGrid(t testing.TB, seed int64, rows, cols int) *samples.Set {
	r := rand.New(rand.NewSource(seed))
	in := make([]samples.Sample, 0, rows*cols)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			in = append(in, samples.Sample{Point: orb.Point{float64(x), float64(y)}, Cost: float64(r.Intn(10))})
		}
	}
	return mustSet(t, in)
}

// TestNestedLimits checks containment between consecutive limits and the
// classification of samples against each limit.
func TestNestedLimits(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 25
	properties := gopter.NewProperties(parameters)

	check := func(set *samples.Set, limits []float64) bool {
		res, err := isochrone.New().Compute(context.Background(), set, limits)
		if err != nil {
			return false
		}
		tr, err := delaunay.Triangulate(context.Background(), set)
		if err != nil {
			return false
		}
		return nestedAndClassified(set, tr.HullRing(), res)
	}

	properties.Property("smaller limit is contained in larger", prop.ForAll(
		func(seed int64, n int) bool {
			set := radial(t, seed, n)
			top := set.MaxCost()
			return check(set, []float64{top * 0.2, top * 0.4, top * 0.6, top * 0.8, top})
		},
		gen.Int64(),
		gen.IntRange(10, 200),
	))

	properties.Property("limits with holes stay nested", prop.ForAll(
		func(seed int64, rows, cols int) bool {
			return check(costGrid(t, seed, rows, cols), []float64{1.5, 3.5, 5.5, 7.5, 9.5})
		},
		gen.Int64(),
		gen.IntRange(3, 9),
		gen.IntRange(3, 9),
	))

	properties.TestingRun(t)
}
