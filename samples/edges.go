package samples

import (
	"fmt"

	"github.com/paulmach/orb"
)

// densify adds interpolated samples along every edge whose From endpoint is
// already known. Edges are processed in the given order, so an edge may start
// at the To endpoint of an earlier one.
func (b *builder) densify(edges []EdgeSample, parts int) error {
	for i, e := range edges {
		if !finite(e.From[0]) || !finite(e.From[1]) || !finite(e.To[0]) || !finite(e.To[1]) {
			return fmt.Errorf("edge %d: %w: endpoint is not finite", i, ErrInvalidSample)
		}
		if e.Weight < 0 {
			return fmt.Errorf("edge %d: %w: weight %d is negative", i, ErrInvalidSample, e.Weight)
		}

		fi, ok := b.index[e.From]
		if !ok {
			// the traversal never settled From; nothing to anchor the costs on
			continue
		}
		base := b.out[fi].Cost
		w := float64(e.Weight)

		for k := 1; k < parts; k++ {
			f := float64(k) / float64(parts)
			p := orb.Point{
				e.From[0] + f*(e.To[0]-e.From[0]),
				e.From[1] + f*(e.To[1]-e.From[1]),
			}
			b.add(p, base+f*w)
		}
		b.add(e.To, base+w)
	}
	return nil
}
