package repair

import "github.com/roach88/cee/internal/graph"

// PruneUnreachable removes factor nodes that no decision's forward
// traversal reaches, together with every edge touching them. All other
// kinds are protected regardless of reachability.
//
// Graphs with zero decision nodes are returned unchanged: a malformed graph
// should not be further destroyed by aggressive deletion.
//
// Returns the ids of removed nodes in node order.
func PruneUnreachable(g *graph.Graph) (*graph.Graph, []string) {
	decisions := g.IDsOfKind(graph.KindDecision)
	if len(decisions) == 0 {
		return g, nil
	}

	adj := make(map[string][]string, len(g.Nodes))
	for _, e := range g.Edges {
		adj[e.From] = append(adj[e.From], e.To)
	}

	reached := make(map[string]bool)
	for _, dec := range decisions {
		for id := range bfs(adj, dec) {
			reached[id] = true
		}
	}

	removed := make(map[string]bool)
	var removedIDs []string
	kept := g.Nodes[:0]
	for _, n := range g.Nodes {
		if !graph.ProtectedKinds[n.Kind] && !reached[n.ID] {
			removed[n.ID] = true
			removedIDs = append(removedIDs, n.ID)
			continue
		}
		kept = append(kept, n)
	}
	g.Nodes = kept

	if len(removed) == 0 {
		return g, nil
	}

	keptEdges := g.Edges[:0]
	for _, e := range g.Edges {
		if removed[e.From] || removed[e.To] {
			continue
		}
		keptEdges = append(keptEdges, e)
	}
	g.Edges = keptEdges

	return g, removedIDs
}
