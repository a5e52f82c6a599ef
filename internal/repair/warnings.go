package repair

import (
	"github.com/roach88/cee/internal/graph"
)

// Severity grades a structural warning.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Warning ids.
const (
	WarnNoOutcomeNode        = "no_outcome_node"
	WarnOrphanNode           = "orphan_node"
	WarnCycleDetected        = "cycle_detected"
	WarnDecisionAfterOutcome = "decision_after_outcome"
)

// StructuralWarning is a residual issue found by the read-only scan. It is
// consumed by reporting and confidence scoring, never by correction.
type StructuralWarning struct {
	ID       string   `json:"id"`
	Severity Severity `json:"severity"`
	NodeIDs  []string `json:"node_ids,omitempty"`
	EdgeIDs  []string `json:"edge_ids,omitempty"`
}

// DetectWarnings scans a (possibly repaired) graph for residual structural
// issues and returns them together with the union of node ids they touch.
// The node-id union feeds downstream confidence scoring, which treats any
// node implicated in a warning as uncertain.
//
// Cycle warnings are populated from the supplied structural metadata, not
// re-derived: stabilization runs upstream, and contradicting metadata is
// reported as-is.
func DetectWarnings(g *graph.Graph, meta StructuralMeta) ([]StructuralWarning, []string) {
	var warnings []StructuralWarning

	if g.CountKind(graph.KindOutcome) == 0 {
		warnings = append(warnings, StructuralWarning{
			ID:       WarnNoOutcomeNode,
			Severity: SeverityMedium,
		})
	}

	warnings = append(warnings, orphanWarnings(g)...)

	if meta.HadCycles {
		warnings = append(warnings, StructuralWarning{
			ID:       WarnCycleDetected,
			Severity: SeverityHigh,
			NodeIDs:  append([]string(nil), meta.CycleNodeIDs...),
		})
	}

	warnings = append(warnings, backwardsEdgeWarnings(g)...)

	uncertain := make(map[string]bool)
	for _, w := range warnings {
		for _, id := range w.NodeIDs {
			uncertain[id] = true
		}
	}
	return warnings, sortedKeys(uncertain)
}

// orphanWarnings flags nodes with no incident edges in either direction.
// An orphaned factor or action is low severity; orphaned goal, decision,
// option, outcome or risk nodes matter more to downstream scoring and are
// flagged medium.
func orphanWarnings(g *graph.Graph) []StructuralWarning {
	incident := make(map[string]bool, len(g.Nodes))
	for _, e := range g.Edges {
		incident[e.From] = true
		incident[e.To] = true
	}

	var warnings []StructuralWarning
	for _, n := range g.Nodes {
		if incident[n.ID] {
			continue
		}
		severity := SeverityMedium
		if n.Kind == graph.KindFactor || n.Kind == graph.KindAction {
			severity = SeverityLow
		}
		warnings = append(warnings, StructuralWarning{
			ID:       WarnOrphanNode,
			Severity: severity,
			NodeIDs:  []string{n.ID},
		})
	}
	return warnings
}

// backwardsEdgeWarnings flags edges flowing from an outcome back into the
// decision structure (outcome→decision, outcome→option). outcome→goal is
// valid topology: goals aggregate outcomes.
func backwardsEdgeWarnings(g *graph.Graph) []StructuralWarning {
	nodes := g.NodeByID()

	var warnings []StructuralWarning
	for _, e := range g.Edges {
		from, okFrom := nodes[e.From]
		to, okTo := nodes[e.To]
		if !okFrom || !okTo || from.Kind != graph.KindOutcome {
			continue
		}
		if to.Kind != graph.KindDecision && to.Kind != graph.KindOption {
			continue
		}
		warnings = append(warnings, StructuralWarning{
			ID:       WarnDecisionAfterOutcome,
			Severity: SeverityMedium,
			NodeIDs:  []string{e.From, e.To},
			EdgeIDs:  []string{edgeRef(e)},
		})
	}
	return warnings
}

// edgeRef identifies an edge in a warning, falling back to from→to when the
// edge has no id yet (the finalizer may not have run).
func edgeRef(e *graph.Edge) string {
	if e.ID != "" {
		return e.ID
	}
	return e.From + "→" + e.To
}
