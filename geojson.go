package isochrone

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Property keys of the features built by FeatureCollection.
const (
	PropertyLimit    = "limit"
	PropertyPolygons = "polygons"
)

// FeatureCollection converts r to GeoJSON: one MultiPolygon feature per
// successful limit, in limit order. Failed limits are left out.
func (r *Result) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, lr := range r.Limits {
		if lr.Err != nil {
			continue
		}
		mp := make(orb.MultiPolygon, len(lr.Polygons))
		copy(mp, lr.Polygons)

		f := geojson.NewFeature(mp)
		f.Properties[PropertyLimit] = lr.Limit
		f.Properties[PropertyPolygons] = len(lr.Polygons)
		fc.Append(f)
	}
	return fc
}

// Polygons returns the polygons of limit, or nil if limit was not computed
// or failed.
func (r *Result) Polygons(limit float64) []orb.Polygon {
	for _, lr := range r.Limits {
		if lr.Limit == limit && lr.Err == nil {
			return lr.Polygons
		}
	}
	return nil
}
