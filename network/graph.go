package network

import (
	"fmt"

	"github.com/paulmach/orb"
)

// Graph is a weighted road graph with planar node positions.
// It is not safe for concurrent mutation; once built it may be searched
// from many goroutines.
type Graph struct {
	nodes []node
	index map[string]int
	adj   [][]arc
	edges int
}

// NewGraph returns an empty Graph.
func NewGraph() *Graph {
	return &Graph{index: make(map[string]int)}
}

// AddNode adds node id at position p.
func (g *Graph) AddNode(id string, p orb.Point) error {
	if _, ok := g.index[id]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateNode, id)
	}
	g.index[id] = len(g.nodes)
	g.nodes = append(g.nodes, node{id: id, pos: p})
	g.adj = append(g.adj, nil)
	return nil
}

// AddEdge adds a two-way edge of weight w between from and to.
func (g *Graph) AddEdge(from, to string, w int64) error {
	if err := g.AddArc(from, to, w); err != nil {
		return err
	}
	if from == to {
		return nil
	}
	return g.AddArc(to, from, w)
}

// AddArc adds a one-way edge of weight w from → to.
func (g *Graph) AddArc(from, to string, w int64) error {
	u, ok := g.index[from]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNodeNotFound, from)
	}
	v, ok := g.index[to]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNodeNotFound, to)
	}
	if w < 0 {
		return fmt.Errorf("%w: %s→%s weight=%d", ErrNegativeWeight, from, to, w)
	}
	g.adj[u] = append(g.adj[u], arc{to: v, weight: w})
	g.edges++
	return nil
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Arcs returns the number of directed adjacency entries.
func (g *Graph) Arcs() int { return g.edges }

// Position returns the position of node id.
func (g *Graph) Position(id string) (orb.Point, bool) {
	i, ok := g.index[id]
	if !ok {
		return orb.Point{}, false
	}
	return g.nodes[i].pos, true
}

// Bound returns the bounding box of all node positions.
func (g *Graph) Bound() orb.Bound {
	if len(g.nodes) == 0 {
		return orb.Bound{}
	}
	b := g.nodes[0].pos.Bound()
	for _, n := range g.nodes[1:] {
		b = b.Extend(n.pos)
	}
	return b
}
