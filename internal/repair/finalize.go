package repair

import (
	"fmt"
	"sort"

	"github.com/roach88/cee/internal/graph"
)

// Finalize makes a graph's serialization reproducible: every edge lacking
// an id gets "{from}::{to}::{index}" where index is a 0-based counter
// scoped to the (from, to) pair (parallel edges get 0, 1, 2, …), then nodes
// are sorted by id and edges by (from, to, id), ties lexicographic.
//
// Client-supplied edge ids are preserved; they still consume an index so
// derived ids never collide within a pair.
func Finalize(g *graph.Graph) *graph.Graph {
	assignEdgeIDs(g)
	sortGraph(g)
	return g
}

// HasStableEdgeIDs reports whether every edge already carries an id, i.e.
// Finalize would assign nothing. Finalize only fills blank ids, so a
// finalized graph always satisfies this.
func HasStableEdgeIDs(g *graph.Graph) bool {
	for _, e := range g.Edges {
		if e.ID == "" {
			return false
		}
	}
	return true
}

// IsSorted reports whether nodes are id-ascending and edges are
// (from, to, id)-ascending.
func IsSorted(g *graph.Graph) bool {
	nodesSorted := sort.SliceIsSorted(g.Nodes, func(i, j int) bool {
		return g.Nodes[i].ID < g.Nodes[j].ID
	})
	if !nodesSorted {
		return false
	}
	return sort.SliceIsSorted(g.Edges, func(i, j int) bool {
		return edgeLess(g.Edges[i], g.Edges[j])
	})
}

func assignEdgeIDs(g *graph.Graph) {
	counters := make(map[[2]string]int)
	for _, e := range g.Edges {
		key := [2]string{e.From, e.To}
		idx := counters[key]
		counters[key]++
		if e.ID == "" {
			e.ID = fmt.Sprintf("%s::%s::%d", e.From, e.To, idx)
		}
	}
}

func sortGraph(g *graph.Graph) {
	sort.Slice(g.Nodes, func(i, j int) bool {
		return g.Nodes[i].ID < g.Nodes[j].ID
	})
	sort.Slice(g.Edges, func(i, j int) bool {
		return edgeLess(g.Edges[i], g.Edges[j])
	})
}

func edgeLess(a, b *graph.Edge) bool {
	if a.From != b.From {
		return a.From < b.From
	}
	if a.To != b.To {
		return a.To < b.To
	}
	return a.ID < b.ID
}
