package repair

import (
	"sort"

	"github.com/roach88/cee/internal/graph"
)

// StructuralMeta carries cycle information produced by DAG stabilization.
// The repair pipeline assumes stabilization runs before it and treats the
// input as a DAG for reachability purposes; contradicting metadata still
// surfaces as a cycle_detected warning.
type StructuralMeta struct {
	HadCycles    bool     `json:"had_cycles"`
	CycleNodeIDs []string `json:"cycle_node_ids,omitempty"`
}

// DetectCycles finds strongly connected components over the directed edge
// set and reports the nodes involved. It never breaks cycles; removing
// edges is the stabilizer's job, detection here only feeds the warning
// detector and callers that want to stabilize first.
//
// Single-node SCCs without self-loops are not cycles.
func DetectCycles(g *graph.Graph) StructuralMeta {
	adj := make(map[string][]string, len(g.Nodes))
	for _, n := range g.Nodes {
		adj[n.ID] = nil
	}
	for _, e := range g.Edges {
		adj[e.From] = append(adj[e.From], e.To)
	}

	cycleNodes := make(map[string]bool)
	for _, scc := range tarjanSCC(adj) {
		if len(scc) > 1 || (len(scc) == 1 && hasSelfLoop(scc[0], adj)) {
			for _, id := range scc {
				cycleNodes[id] = true
			}
		}
	}

	if len(cycleNodes) == 0 {
		return StructuralMeta{}
	}

	ids := make([]string, 0, len(cycleNodes))
	for id := range cycleNodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return StructuralMeta{HadCycles: true, CycleNodeIDs: ids}
}

// hasSelfLoop checks if a node has an edge to itself.
func hasSelfLoop(node string, adj map[string][]string) bool {
	for _, neighbor := range adj[node] {
		if neighbor == node {
			return true
		}
	}
	return false
}

// tarjanSCC finds strongly connected components using Tarjan's algorithm.
func tarjanSCC(adj map[string][]string) [][]string {
	var (
		index   = 0
		stack   []string
		indices = make(map[string]int)
		lowlink = make(map[string]int)
		onStack = make(map[string]bool)
		sccs    [][]string
	)

	var strongConnect func(string)
	strongConnect = func(v string) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range adj[v] {
			if _, visited := indices[w]; !visited {
				strongConnect(w)
				lowlink[v] = min(lowlink[v], lowlink[w])
			} else if onStack[w] {
				lowlink[v] = min(lowlink[v], indices[w])
			}
		}

		// v is a root node: pop the stack to form an SCC.
		if lowlink[v] == indices[v] {
			var scc []string
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				scc = append(scc, w)
				if w == v {
					break
				}
			}
			sccs = append(sccs, scc)
		}
	}

	// Iterate node ids in sorted order so traversal order (and therefore
	// SCC emission order) is deterministic.
	ids := make([]string, 0, len(adj))
	for id := range adj {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if _, visited := indices[id]; !visited {
			strongConnect(id)
		}
	}

	return sccs
}
