package network

import (
	"github.com/katalvlaran/isochrone/samples"
)

// Tree is the result of ShortestPaths. It is immutable.
type Tree struct {
	g       *Graph
	source  int
	cost    []int64
	prev    []int
	settled []int
	blocked int64
}

// Source returns the source node ID.
func (t *Tree) Source() string { return t.g.nodes[t.source].id }

// Len returns the number of settled nodes.
func (t *Tree) Len() int { return len(t.settled) }

// Cost returns the settled cost of node id, or Unreached.
func (t *Tree) Cost(id string) int64 {
	i, ok := t.g.index[id]
	if !ok || !t.isSettled(i) {
		return Unreached
	}
	return t.cost[i]
}

// Path returns the node IDs from the source to id, or nil if id was not
// settled.
func (t *Tree) Path(id string) []string {
	i, ok := t.g.index[id]
	if !ok || !t.isSettled(i) {
		return nil
	}
	var rev []string
	for v := i; v >= 0; v = t.prev[v] {
		rev = append(rev, t.g.nodes[v].id)
	}
	path := make([]string, len(rev))
	for k, id := range rev {
		path[len(rev)-1-k] = id
	}
	return path
}

// Samples returns one sample per settled node in settle order; the first is
// the source with cost 0.
func (t *Tree) Samples() []samples.Sample {
	out := make([]samples.Sample, len(t.settled))
	for k, v := range t.settled {
		out[k] = samples.Sample{Point: t.g.nodes[v].pos, Cost: float64(t.cost[v])}
	}
	return out
}

// EdgeSamples returns every passable arc leaving a settled node, in settle
// order. Arcs towards unsettled nodes are included so the caller can
// interpolate beyond the cost cap.
func (t *Tree) EdgeSamples() []samples.EdgeSample {
	var out []samples.EdgeSample
	for _, u := range t.settled {
		for _, a := range t.g.adj[u] {
			if a.weight >= t.blocked {
				continue
			}
			out = append(out, samples.EdgeSample{
				From:   t.g.nodes[u].pos,
				To:     t.g.nodes[a.to].pos,
				Weight: a.weight,
			})
		}
	}
	return out
}

func (t *Tree) isSettled(i int) bool {
	return t.cost[i] != Unreached
}
