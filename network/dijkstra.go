package network

import (
	"container/heap"
	"context"
	"fmt"
)

// checkEvery is the number of settled nodes between two context polls.
const checkEvery = 4096

// ShortestPaths computes the minimum cost from source to every node reachable
// within the configured cap.
//
// Steps:
//  1. Validate inputs and options.
//  2. Seed the heap with source at cost 0.
//  3. Pop the cheapest node, skip it if already settled, stop once its cost
//     exceeds MaxCost, otherwise settle it and relax its arcs.
//
// ctx is polled every few thousand settled nodes.
func ShortestPaths(ctx context.Context, g *Graph, source string, opts ...Option) (*Tree, error) {
	// 1) Build Options.
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	// 2) Validate source and graph, in that order.
	if source == "" {
		return nil, ErrEmptySource
	}
	if g == nil {
		return nil, ErrNilGraph
	}
	src, ok := g.index[source]
	if !ok {
		return nil, fmt.Errorf("%w: source %q", ErrNodeNotFound, source)
	}

	// 3) Run the search from src.
	r := newRunner(g, cfg)
	r.init(src)
	if err := r.process(ctx); err != nil {
		return nil, err
	}

	// 4) The tree keeps the search arrays; nothing is copied.
	return &Tree{g: g, source: src, cost: r.dist, prev: r.prev, settled: r.settled, blocked: cfg.BlockedFrom}, nil
}

// runner holds the mutable state of one search.
type runner struct {
	g       *Graph
	options Options
	dist    []int64 // node → best known cost
	prev    []int   // node → predecessor on the best path, -1 for none
	visited []bool  // node → cost is final
	settled []int   // settle order
	pq      nodePQ
}

func newRunner(g *Graph, cfg Options) *runner {
	n := g.Len()
	return &runner{
		g:       g,
		options: cfg,
		dist:    make([]int64, n),
		prev:    make([]int, n),
		visited: make([]bool, n),
		settled: make([]int, 0, n),
		pq:      make(nodePQ, 0, n),
	}
}

func (r *runner) init(src int) {
	// 1) Every node starts unreached with no predecessor.
	for v := range r.dist {
		r.dist[v] = Unreached
		r.prev[v] = -1
	}
	// 2) Source costs nothing and is the only heap entry.
	r.dist[src] = 0

	heap.Init(&r.pq)
	heap.Push(&r.pq, &nodeItem{id: src, dist: 0})
}

// process settles nodes in cost order until the heap is empty or the
// cheapest entry is over MaxCost.
func (r *runner) process(ctx context.Context) error {
	for r.pq.Len() > 0 {
		// 1) Extract the cheapest entry.
		item := heap.Pop(&r.pq).(*nodeItem)
		u := item.id

		// 2) Stale duplicate from a lazy decrease-key.
		if r.visited[u] {
			continue
		}
		// 3) Costs only grow from here on.
		if item.dist > r.options.MaxCost {
			break
		}

		// 4) Settle u, polling ctx on the way.
		r.visited[u] = true
		r.settled = append(r.settled, u)
		if len(r.settled)%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("network: cancelled after %d nodes: %w", len(r.settled), err)
			}
		}
		// 5) Push improved neighbours.
		r.relax(u)
	}
	return nil
}

// relax pushes every neighbour of u whose cost improves through u.
func (r *runner) relax(u int) {
	for _, a := range r.g.adj[u] {
		// Arcs at or above BlockedFrom are walls.
		if a.weight >= r.options.BlockedFrom {
			continue
		}
		// Only strictly better costs within the cap are kept; equal costs keep
		// the first predecessor found.
		nd := r.dist[u] + a.weight
		if nd > r.options.MaxCost || nd >= r.dist[a.to] {
			continue
		}
		r.dist[a.to] = nd
		r.prev[a.to] = u
		heap.Push(&r.pq, &nodeItem{id: a.to, dist: nd})
	}
}

type nodeItem struct {
	id   int
	dist int64
}

// nodePQ is a min-heap of nodeItem ordered by dist, ties by node index.
type nodePQ []*nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].id < pq[j].id
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
