package network

import (
	"fmt"
	"math/rand"

	"github.com/paulmach/orb"
)

const (
	minGridDim = 1
	gridIDFmt  = "%d,%d" // "r,c"
)

// WeightFn returns the weight of the grid edge between cells (r1, c1) and
// (r2, c2). It must be deterministic for a given RNG state.
type WeightFn func(rng *rand.Rand, r1, c1, r2, c2 int) int64

// ConstantWeight returns a WeightFn that always yields w. Panics if w < 0.
func ConstantWeight(w int64) WeightFn {
	if w < 0 {
		panic(fmt.Sprintf("network: ConstantWeight requires w ≥ 0, got %d", w))
	}
	return func(_ *rand.Rand, _, _, _, _ int) int64 { return w }
}

// UniformWeight returns a WeightFn sampling uniformly in [min, max].
// A nil rng yields min. Panics unless 0 ≤ min ≤ max.
func UniformWeight(min, max int64) WeightFn {
	if min < 0 || max < min {
		panic(fmt.Sprintf("network: UniformWeight requires 0 ≤ min ≤ max, got min=%d, max=%d", min, max))
	}
	return func(rng *rand.Rand, _, _, _, _ int) int64 {
		if rng == nil || max == min {
			return min
		}
		return min + rng.Int63n(max-min+1)
	}
}

// GridID returns the node ID of cell (r, c) in a grid built by Grid.
func GridID(r, c int) string {
	return fmt.Sprintf(gridIDFmt, r, c)
}

// Grid builds a rows×cols orthogonal road grid. Cell (r, c) sits at
// (c·spacing, r·spacing) with ID GridID(r, c); two-way edges connect each
// cell to its right and upper neighbours with weights from weight.
//
// Nodes are added in row-major order and edges right-then-up per cell, so
// the graph is deterministic for a fixed rng.
func Grid(rows, cols int, spacing float64, weight WeightFn, rng *rand.Rand) (*Graph, error) {
	if rows < minGridDim || cols < minGridDim || !(spacing > 0) {
		return nil, fmt.Errorf("%w: rows=%d, cols=%d, spacing=%g", ErrBadGridSize, rows, cols, spacing)
	}

	g := NewGraph()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			p := orb.Point{float64(c) * spacing, float64(r) * spacing}
			if err := g.AddNode(GridID(r, c), p); err != nil {
				return nil, fmt.Errorf("network: grid node (%d,%d): %w", r, c, err)
			}
		}
	}

	link := func(r1, c1, r2, c2 int) error {
		w := weight(rng, r1, c1, r2, c2)
		if err := g.AddEdge(GridID(r1, c1), GridID(r2, c2), w); err != nil {
			return fmt.Errorf("network: grid edge (%d,%d)→(%d,%d): %w", r1, c1, r2, c2, err)
		}
		return nil
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if c+1 < cols {
				if err := link(r, c, r, c+1); err != nil {
					return nil, err
				}
			}
			if r+1 < rows {
				if err := link(r, c, r+1, c); err != nil {
					return nil, err
				}
			}
		}
	}
	return g, nil
}
