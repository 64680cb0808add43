package network

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// Feature properties read by FromFeatureCollection.
const (
	PropertyOneway = "oneway" // bool; true adds arcs in drawing direction only
	PropertySpeed  = "speed"  // number > 0; length units per cost unit, default 1
)

// NodeID returns the node ID FromFeatureCollection uses for position p.
func NodeID(p orb.Point) string {
	return fmt.Sprintf("%g,%g", p[0], p[1])
}

// FromFeatureCollection builds a Graph from LineString features. Every
// vertex becomes a node (shared vertices are joined); every segment becomes
// an edge whose weight is its length divided by the feature's speed,
// rounded to the nearest integer. Other geometry types are skipped.
func FromFeatureCollection(fc *geojson.FeatureCollection) (*Graph, error) {
	g := NewGraph()
	if fc == nil {
		return g, nil
	}

	for i, f := range fc.Features {
		ls, ok := f.Geometry.(orb.LineString)
		if !ok {
			continue
		}
		speed := 1.0
		if raw, ok := f.Properties[PropertySpeed]; ok {
			v, ok := raw.(float64)
			if !ok || !(v > 0) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("network: feature %d: %q must be a positive number, got %v", i, PropertySpeed, raw)
			}
			speed = v
		}
		oneway := f.Properties.MustBool(PropertyOneway, false)

		for k := 0; k < len(ls); k++ {
			id := NodeID(ls[k])
			if _, ok := g.index[id]; !ok {
				if err := g.AddNode(id, ls[k]); err != nil {
					return nil, err
				}
			}
			if k == 0 {
				continue
			}

			from := NodeID(ls[k-1])
			w := int64(math.Round(planar.Distance(ls[k-1], ls[k]) / speed))
			var err error
			if oneway {
				err = g.AddArc(from, id, w)
			} else {
				err = g.AddEdge(from, id, w)
			}
			if err != nil {
				return nil, fmt.Errorf("network: feature %d segment %d: %w", i, k, err)
			}
		}
	}
	return g, nil
}
