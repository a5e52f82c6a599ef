package repair

import (
	"fmt"

	"github.com/roach88/cee/internal/graph"
)

// WireOutcomesToGoal adds a goal edge to every outcome and risk node that
// lacks one, using the canonical parameters for its kind. Existing goal
// edges are never overwritten. No-op when the graph has no goal node.
//
// This pass runs before pruning so that newly added edges are visible to
// the pruner's reachability walk.
func WireOutcomesToGoal(g *graph.Graph) (*graph.Graph, []RepairRecord) {
	goal := g.GoalNode()
	if goal == nil {
		return g, nil
	}

	hasGoalEdge := make(map[string]bool)
	for _, e := range g.Edges {
		if e.To == goal.ID {
			hasGoalEdge[e.From] = true
		}
	}

	var records []RepairRecord
	for _, n := range g.Nodes {
		if n.Kind != graph.KindOutcome && n.Kind != graph.KindRisk {
			continue
		}
		if hasGoalEdge[n.ID] {
			continue
		}
		defaults, ok := DefaultsFor(n.Kind, graph.KindGoal)
		if !ok {
			continue
		}
		g.Edges = append(g.Edges, &graph.Edge{
			From:            n.ID,
			To:              goal.ID,
			StrengthMean:    graph.FloatPtr(defaults.StrengthMean),
			StrengthStd:     graph.FloatPtr(defaults.StrengthStd),
			BeliefExists:    graph.FloatPtr(defaults.BeliefExists),
			EffectDirection: defaults.EffectDirection,
		})
		records = append(records, RepairRecord{
			Field:     "edge",
			Action:    ActionDefaulted,
			FromValue: nil,
			ToValue:   fmt.Sprintf("%s→%s", n.ID, goal.ID),
			Reason:    fmt.Sprintf("%s node had no path to the goal", n.Kind),
			EdgeFrom:  n.ID,
			EdgeTo:    goal.ID,
		})
	}

	return g, records
}

// WireFromCausalChain adds an inbound factor edge to every outcome and risk
// node that has none, anchoring it to the causal chain. The donor factor is
// the first controllable factor in node order, falling back to the first
// factor of any category. Nodes that already have a factor inbound edge are
// skipped; graphs with no factor nodes are returned unchanged.
func WireFromCausalChain(g *graph.Graph) (*graph.Graph, []RepairRecord) {
	factors := g.NodesOfKind(graph.KindFactor)
	if len(factors) == 0 {
		return g, nil
	}

	donor := factors[0]
	for _, f := range factors {
		if f.Category == graph.CategoryControllable {
			donor = f
			break
		}
	}

	factorIDs := make(map[string]bool, len(factors))
	for _, f := range factors {
		factorIDs[f.ID] = true
	}
	hasFactorInbound := make(map[string]bool)
	for _, e := range g.Edges {
		if factorIDs[e.From] {
			hasFactorInbound[e.To] = true
		}
	}

	var records []RepairRecord
	for _, n := range g.Nodes {
		if n.Kind != graph.KindOutcome && n.Kind != graph.KindRisk {
			continue
		}
		if hasFactorInbound[n.ID] {
			continue
		}
		defaults, ok := DefaultsFor(graph.KindFactor, n.Kind)
		if !ok {
			continue
		}
		g.Edges = append(g.Edges, &graph.Edge{
			From:            donor.ID,
			To:              n.ID,
			StrengthMean:    graph.FloatPtr(defaults.StrengthMean),
			StrengthStd:     graph.FloatPtr(defaults.StrengthStd),
			BeliefExists:    graph.FloatPtr(defaults.BeliefExists),
			EffectDirection: defaults.EffectDirection,
		})
		records = append(records, RepairRecord{
			Field:     "edge",
			Action:    ActionDefaulted,
			FromValue: nil,
			ToValue:   fmt.Sprintf("%s→%s", donor.ID, n.ID),
			Reason:    fmt.Sprintf("%s node had no inbound edge from any factor", n.Kind),
			EdgeFrom:  donor.ID,
			EdgeTo:    n.ID,
		})
	}

	return g, records
}

// SimpleRepair runs orphan wiring followed by unreachable pruning as one
// unit, for callers that want structural cleanup without the full pipeline.
func SimpleRepair(g *graph.Graph) *graph.Graph {
	g, _ = WireOutcomesToGoal(g)
	g, _ = WireFromCausalChain(g)
	g, _ = PruneUnreachable(g)
	return g
}
