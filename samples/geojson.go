package samples

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// DefaultCostProperty is the Feature property read by FromFeatureCollection
// when no other name is given.
const DefaultCostProperty = "cost"

// FromFeatureCollection converts Point features carrying a numeric cost
// property into samples. Features of other geometry types are skipped.
// A Point without a numeric cost property fails with ErrInvalidSample.
func FromFeatureCollection(fc *geojson.FeatureCollection, costProperty string) ([]Sample, error) {
	if fc == nil {
		return nil, nil
	}
	if costProperty == "" {
		costProperty = DefaultCostProperty
	}

	out := make([]Sample, 0, len(fc.Features))
	for i, f := range fc.Features {
		p, ok := f.Geometry.(orb.Point)
		if !ok {
			continue
		}
		raw, ok := f.Properties[costProperty]
		if !ok {
			return nil, fmt.Errorf("feature %d: %w: missing %q property", i, ErrInvalidSample, costProperty)
		}
		cost, ok := raw.(float64)
		if !ok {
			return nil, fmt.Errorf("feature %d: %w: %q is %T, want number", i, ErrInvalidSample, costProperty, raw)
		}
		out = append(out, Sample{Point: p, Cost: cost})
	}
	return out, nil
}

// FeatureCollection renders the Set as Point features with a cost property.
func (s *Set) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, smp := range s.samples {
		f := geojson.NewFeature(smp.Point)
		f.Properties[DefaultCostProperty] = smp.Cost
		fc.Append(f)
	}
	return fc
}
