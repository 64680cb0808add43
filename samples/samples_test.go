package samples_test

import (
	"errors"
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/isochrone/samples"
)

func square() []samples.Sample {
	return []samples.Sample{
		{Point: orb.Point{0, 0}, Cost: 0},
		{Point: orb.Point{10, 0}, Cost: 10},
		{Point: orb.Point{0, 10}, Cost: 10},
		{Point: orb.Point{10, 10}, Cost: 20},
	}
}

func TestNew_Errors(t *testing.T) {
	cases := []struct {
		name string
		in   []samples.Sample
		err  error
	}{
		{"Empty", nil, samples.ErrInsufficientData},
		{"TwoPoints", square()[:2], samples.ErrInsufficientData},
		{"DuplicatesCollapse", []samples.Sample{
			{Point: orb.Point{1, 1}, Cost: 1},
			{Point: orb.Point{1, 1}, Cost: 2},
			{Point: orb.Point{2, 2}, Cost: 3},
		}, samples.ErrInsufficientData},
		{"NegativeCost", []samples.Sample{{Point: orb.Point{0, 0}, Cost: -1}}, samples.ErrInvalidSample},
		{"NaNCost", []samples.Sample{{Point: orb.Point{0, 0}, Cost: math.NaN()}}, samples.ErrInvalidSample},
		{"InfCoordinate", []samples.Sample{{Point: orb.Point{math.Inf(1), 0}}}, samples.ErrInvalidSample},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := samples.New(tc.in)
			if !errors.Is(err, tc.err) {
				t.Errorf("New() error = %v; want %v", err, tc.err)
			}
		})
	}
}

func TestNew_DeduplicatesKeepingMinimum(t *testing.T) {
	in := append(square(), samples.Sample{Point: orb.Point{10, 10}, Cost: 7})
	set, err := samples.New(in)
	require.NoError(t, err)

	require.Equal(t, 4, set.Len())
	i, ok := set.Index(orb.Point{10, 10})
	require.True(t, ok)
	assert.Equal(t, 3, i, "first occurrence keeps its slot")
	assert.Equal(t, 7.0, set.Cost(i))
	assert.Equal(t, 10.0, set.MaxCost())
}

func TestNew_DoesNotMutateInput(t *testing.T) {
	in := append(square(), samples.Sample{Point: orb.Point{10, 10}, Cost: 1})
	_, err := samples.New(in)
	require.NoError(t, err)
	assert.Equal(t, 20.0, in[3].Cost)
}

func TestSet_Accessors(t *testing.T) {
	set, err := samples.New(square())
	require.NoError(t, err)

	assert.Equal(t, []orb.Point{{0, 0}, {10, 0}, {0, 10}, {10, 10}}, set.Points())
	assert.Equal(t, []float64{0, 10, 10, 20}, set.Costs())
	assert.Equal(t, orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{10, 10}}, set.Bound())

	src, ok := set.Source()
	require.True(t, ok)
	assert.Equal(t, orb.Point{0, 0}, src.Point)

	cp := set.Samples()
	cp[0].Cost = 99
	assert.Equal(t, 0.0, set.Cost(0), "Samples returns a copy")
}

func TestNew_WithEdges(t *testing.T) {
	edges := []samples.EdgeSample{
		{From: orb.Point{0, 0}, To: orb.Point{10, 0}, Weight: 4},
		{From: orb.Point{10, 0}, To: orb.Point{20, 0}, Weight: 6},
		{From: orb.Point{50, 50}, To: orb.Point{60, 60}, Weight: 1}, // unknown From
	}
	set, err := samples.New(square(), samples.WithEdges(edges, 2))
	require.NoError(t, err)

	// (10,0) is lowered from 10 to 4 by the first edge.
	i, ok := set.Index(orb.Point{10, 0})
	require.True(t, ok)
	assert.Equal(t, 4.0, set.Cost(i))

	mid, ok := set.Index(orb.Point{5, 0})
	require.True(t, ok)
	assert.Equal(t, 2.0, set.Cost(mid))

	end, ok := set.Index(orb.Point{20, 0})
	require.True(t, ok)
	assert.Equal(t, 10.0, set.Cost(end))

	_, ok = set.Index(orb.Point{60, 60})
	assert.False(t, ok)
}

func TestNew_WithEdgesRejectsNegativeWeight(t *testing.T) {
	edges := []samples.EdgeSample{{From: orb.Point{0, 0}, To: orb.Point{1, 0}, Weight: -1}}
	_, err := samples.New(square(), samples.WithEdges(edges, 1))
	require.ErrorIs(t, err, samples.ErrInvalidSample)
}

func TestWithEdges_PanicsOnZeroSubdivisions(t *testing.T) {
	require.Panics(t, func() { samples.WithEdges(nil, 0) })
}

func TestFromFeatureCollection(t *testing.T) {
	fc := geojson.NewFeatureCollection()
	for _, s := range square() {
		f := geojson.NewFeature(s.Point)
		f.Properties["cost"] = s.Cost
		fc.Append(f)
	}
	fc.Append(geojson.NewFeature(orb.LineString{{0, 0}, {1, 1}}))

	got, err := samples.FromFeatureCollection(fc, "")
	require.NoError(t, err)
	assert.Equal(t, square(), got)

	bad := geojson.NewFeatureCollection()
	bad.Append(geojson.NewFeature(orb.Point{1, 2}))
	_, err = samples.FromFeatureCollection(bad, "cost")
	require.ErrorIs(t, err, samples.ErrInvalidSample)
}

func TestSet_FeatureCollectionRoundTrip(t *testing.T) {
	set, err := samples.New(square())
	require.NoError(t, err)

	data, err := set.FeatureCollection().MarshalJSON()
	require.NoError(t, err)
	fc, err := geojson.UnmarshalFeatureCollection(data)
	require.NoError(t, err)

	got, err := samples.FromFeatureCollection(fc, samples.DefaultCostProperty)
	require.NoError(t, err)
	assert.Equal(t, square(), got)
}
