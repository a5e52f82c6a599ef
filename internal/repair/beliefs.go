package repair

import (
	"fmt"

	"github.com/roach88/cee/internal/graph"
)

// NormalizeDecisionBranches renormalizes decision→option branch beliefs so
// each decision's branches sum to 1.0.
//
// For each decision node, the outgoing edges targeting option nodes that
// carry a numeric belief form one group. A group whose sum already lies
// within tolerance of 1.0 is left untouched value-for-value, so repeated
// runs add no audit noise. A group summing to zero is also left unchanged:
// dividing by zero would fabricate data, and a zero-probability branch set
// is a pre-existing input problem flagged by diagnostics, not repaired here.
//
// One RepairRecord is emitted per belief actually rescaled.
func NormalizeDecisionBranches(g *graph.Graph) (*graph.Graph, []RepairRecord) {
	nodes := g.NodeByID()
	var records []RepairRecord

	for _, dec := range g.NodesOfKind(graph.KindDecision) {
		var branches []*graph.Edge
		sum := 0.0
		for _, e := range g.Edges {
			if e.From != dec.ID || e.Belief == nil {
				continue
			}
			target, ok := nodes[e.To]
			if !ok || target.Kind != graph.KindOption {
				continue
			}
			branches = append(branches, e)
			sum += *e.Belief
		}

		if len(branches) == 0 || sum == 0 || graph.ApproxOne(sum) {
			continue
		}

		for _, e := range branches {
			prev := *e.Belief
			scaled := prev / sum
			if scaled == prev {
				continue
			}
			e.Belief = graph.FloatPtr(scaled)
			records = append(records, RepairRecord{
				Field:     "belief",
				Action:    ActionNormalised,
				FromValue: prev,
				ToValue:   scaled,
				Reason:    fmt.Sprintf("decision %s branch beliefs summed to %g, rescaled to 1.0", dec.ID, sum),
				EdgeID:    e.ID,
				EdgeFrom:  e.From,
				EdgeTo:    e.To,
			})
		}
	}

	return g, records
}

// FillOutcomeBeliefs assigns the default belief to option→outcome edges
// that carry none. Edges already holding a belief are never overwritten.
func FillOutcomeBeliefs(g *graph.Graph, defaultBelief float64) (*graph.Graph, []RepairRecord) {
	nodes := g.NodeByID()
	var records []RepairRecord

	for _, e := range g.Edges {
		if e.Belief != nil {
			continue
		}
		from, okFrom := nodes[e.From]
		to, okTo := nodes[e.To]
		if !okFrom || !okTo || from.Kind != graph.KindOption || to.Kind != graph.KindOutcome {
			continue
		}
		e.Belief = graph.FloatPtr(defaultBelief)
		records = append(records, RepairRecord{
			Field:     "belief",
			Action:    ActionDefaulted,
			FromValue: nil,
			ToValue:   defaultBelief,
			Reason:    "option→outcome edge lacked a belief",
			EdgeID:    e.ID,
			EdgeFrom:  e.From,
			EdgeTo:    e.To,
		})
	}

	return g, records
}
