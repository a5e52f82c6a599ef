package repair

import (
	"sort"

	"github.com/roach88/cee/internal/graph"
)

// FailureClass classifies why minimum-structure connectivity failed.
// Classification is deterministic: the first matching class in priority
// order wins, so exactly one hint applies per diagnostic.
type FailureClass string

const (
	// FailureNeither: no decision reaches any option or any goal.
	FailureNeither FailureClass = "neither_reachable"

	// FailureNoPathToOptions: no decision reaches any option.
	FailureNoPathToOptions FailureClass = "no_path_to_options"

	// FailureNoPathToGoal: no decision reaches any goal.
	FailureNoPathToGoal FailureClass = "no_path_to_goal"

	// FailurePartial: options and goals are both reachable, but some
	// option/goal node is never reached by any decision.
	FailurePartial FailureClass = "partial"

	// FailureNone: the graph passed.
	FailureNone FailureClass = "none"
)

// failureHints maps each failure class to its single human-readable hint.
var failureHints = map[FailureClass]string{
	FailureNeither:         "the decision node is isolated: neither its options nor the goal is connected to it",
	FailureNoPathToOptions: "no option node is connected to any decision; add decision→option edges",
	FailureNoPathToGoal:    "the goal is not connected to any decision's causal chain; add edges linking outcomes to the goal",
	FailurePartial:         "some option or goal nodes are disconnected from every decision",
	FailureNone:            "",
}

// ConnectivityDiagnostic is the result of the minimum-structure check.
// Read-only: the check never mutates the graph.
type ConnectivityDiagnostic struct {
	Passed           bool         `json:"passed"`
	DecisionIDs      []string     `json:"decision_ids"`
	ReachableOptions []string     `json:"reachable_options"`
	ReachableGoals   []string     `json:"reachable_goals"`
	UnreachableNodes []string     `json:"unreachable_nodes"`
	FailureClass     FailureClass `json:"failure_class"`
	Hint             string       `json:"conditional_hint,omitempty"`
}

// CheckConnectedMinimumStructure verifies that at least one decision node
// can reach (in the undirected sense) at least one option AND at least one
// goal. Reachability ignores edge direction because the diagnostic cares
// about connectedness, not causal orientation.
//
// A graph with zero decision nodes fails immediately with every option and
// goal marked unreachable.
func CheckConnectedMinimumStructure(g *graph.Graph) ConnectivityDiagnostic {
	optionIDs := g.IDsOfKind(graph.KindOption)
	goalIDs := g.IDsOfKind(graph.KindGoal)
	decisionIDs := g.IDsOfKind(graph.KindDecision)

	diag := ConnectivityDiagnostic{
		DecisionIDs:      decisionIDs,
		ReachableOptions: []string{},
		ReachableGoals:   []string{},
		UnreachableNodes: []string{},
	}

	if len(decisionIDs) == 0 {
		diag.UnreachableNodes = append(diag.UnreachableNodes, optionIDs...)
		diag.UnreachableNodes = append(diag.UnreachableNodes, goalIDs...)
		diag.FailureClass, diag.Hint = classify(&diag)
		return diag
	}

	adj := undirectedAdjacency(g)
	kinds := make(map[string]graph.NodeKind, len(g.Nodes))
	for _, n := range g.Nodes {
		kinds[n.ID] = n.Kind
	}

	reachedOptions := make(map[string]bool)
	reachedGoals := make(map[string]bool)

	for _, dec := range decisionIDs {
		reachable := bfs(adj, dec)
		sawOption, sawGoal := false, false
		for id := range reachable {
			switch kinds[id] {
			case graph.KindOption:
				reachedOptions[id] = true
				sawOption = true
			case graph.KindGoal:
				reachedGoals[id] = true
				sawGoal = true
			}
		}
		if sawOption && sawGoal {
			diag.Passed = true
		}
	}

	diag.ReachableOptions = sortedKeys(reachedOptions)
	diag.ReachableGoals = sortedKeys(reachedGoals)
	for _, id := range optionIDs {
		if !reachedOptions[id] {
			diag.UnreachableNodes = append(diag.UnreachableNodes, id)
		}
	}
	for _, id := range goalIDs {
		if !reachedGoals[id] {
			diag.UnreachableNodes = append(diag.UnreachableNodes, id)
		}
	}

	diag.FailureClass, diag.Hint = classify(&diag)
	return diag
}

// classify picks the single failure class in priority order:
// neither_reachable > no_path_to_options > no_path_to_goal > partial > none.
func classify(diag *ConnectivityDiagnostic) (FailureClass, string) {
	if diag.Passed && len(diag.UnreachableNodes) == 0 {
		return FailureNone, failureHints[FailureNone]
	}

	var class FailureClass
	switch {
	case len(diag.ReachableOptions) == 0 && len(diag.ReachableGoals) == 0:
		class = FailureNeither
	case len(diag.ReachableOptions) == 0:
		class = FailureNoPathToOptions
	case len(diag.ReachableGoals) == 0:
		class = FailureNoPathToGoal
	default:
		class = FailurePartial
	}
	return class, failureHints[class]
}

// undirectedAdjacency builds a both-directions adjacency map from the edge
// list. Edges referencing unknown nodes still contribute entries; BFS from a
// decision never visits them unless the decision links to them.
func undirectedAdjacency(g *graph.Graph) map[string][]string {
	adj := make(map[string][]string, len(g.Nodes))
	for _, e := range g.Edges {
		adj[e.From] = append(adj[e.From], e.To)
		adj[e.To] = append(adj[e.To], e.From)
	}
	return adj
}

// bfs returns the set of node ids reachable from start, including start.
func bfs(adj map[string][]string, start string) map[string]bool {
	visited := map[string]bool{start: true}
	queue := []string{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range adj[cur] {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	return visited
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
