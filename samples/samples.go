package samples

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// New validates and deduplicates the given samples and returns a Set.
//
// Steps:
//  1. Apply options (densification is off by default).
//  2. Validate every sample; the first invalid one fails the call with
//     ErrInvalidSample wrapped with its index.
//  3. Merge exact coordinate collisions keeping the minimum cost.
//  4. Densify along edges when WithEdges was given.
//  5. Require at least MinPoints distinct points (ErrInsufficientData).
//
// The input slice is never modified.
// Complexity: O(n + e·k) time and memory.
func New(in []Sample, opts ...Option) (*Set, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	b := newBuilder(len(in))
	for i, s := range in {
		if err := validate(s); err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		b.add(s.Point, s.Cost)
	}

	if len(cfg.Edges) > 0 {
		if err := b.densify(cfg.Edges, cfg.Subdivisions); err != nil {
			return nil, err
		}
	}

	if len(b.out) < MinPoints {
		return nil, fmt.Errorf("%w: got %d", ErrInsufficientData, len(b.out))
	}

	return b.build(), nil
}

// Len returns the number of distinct samples.
func (s *Set) Len() int { return len(s.samples) }

// At returns the i-th sample. It panics if i is out of range, like a slice.
func (s *Set) At(i int) Sample { return s.samples[i] }

// Point returns the coordinate of the i-th sample.
func (s *Set) Point(i int) orb.Point { return s.samples[i].Point }

// Cost returns the cumulative cost of the i-th sample.
func (s *Set) Cost(i int) float64 { return s.samples[i].Cost }

// Samples returns a copy of the underlying samples in Set order.
func (s *Set) Samples() []Sample {
	out := make([]Sample, len(s.samples))
	copy(out, s.samples)
	return out
}

// Points returns the coordinates in Set order.
func (s *Set) Points() []orb.Point {
	out := make([]orb.Point, len(s.samples))
	for i, smp := range s.samples {
		out[i] = smp.Point
	}
	return out
}

// Costs returns the costs in Set order.
func (s *Set) Costs() []float64 {
	out := make([]float64, len(s.samples))
	for i, smp := range s.samples {
		out[i] = smp.Cost
	}
	return out
}

// MaxCost returns the largest cost in the Set.
func (s *Set) MaxCost() float64 { return s.maxCost }

// Bound returns the bounding box of all sample coordinates.
func (s *Set) Bound() orb.Bound { return s.bound }

// Index returns the position of the sample at p, if any.
func (s *Set) Index(p orb.Point) (int, bool) {
	i, ok := s.index[p]
	return i, ok
}

// Source returns the first sample with zero cost. Routing engines put the
// search origin there; ok is false when no such sample exists.
func (s *Set) Source() (Sample, bool) {
	for _, smp := range s.samples {
		if smp.Cost == 0 {
			return smp, true
		}
	}
	return Sample{}, false
}

// validate checks the per-sample invariants.
func validate(s Sample) error {
	if !finite(s.Point[0]) || !finite(s.Point[1]) {
		return fmt.Errorf("%w: coordinate %v is not finite", ErrInvalidSample, s.Point)
	}
	if !finite(s.Cost) {
		return fmt.Errorf("%w: cost %v is not finite", ErrInvalidSample, s.Cost)
	}
	if s.Cost < 0 {
		return fmt.Errorf("%w: cost %v is negative", ErrInvalidSample, s.Cost)
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// builder accumulates distinct samples in first-seen order.
type builder struct {
	out   []Sample
	index map[orb.Point]int
}

func newBuilder(capacity int) *builder {
	return &builder{
		out:   make([]Sample, 0, capacity),
		index: make(map[orb.Point]int, capacity),
	}
}

// add inserts p or lowers its cost when p is already known.
func (b *builder) add(p orb.Point, cost float64) {
	if i, ok := b.index[p]; ok {
		if cost < b.out[i].Cost {
			b.out[i].Cost = cost
		}
		return
	}
	b.index[p] = len(b.out)
	b.out = append(b.out, Sample{Point: p, Cost: cost})
}

func (b *builder) build() *Set {
	set := &Set{
		samples: b.out,
		index:   b.index,
		bound:   orb.Bound{Min: b.out[0].Point, Max: b.out[0].Point},
	}
	for _, smp := range b.out {
		set.bound = set.bound.Extend(smp.Point)
		if smp.Cost > set.maxCost {
			set.maxCost = smp.Cost
		}
	}
	return set
}
