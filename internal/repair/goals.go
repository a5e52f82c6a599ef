package repair

import (
	"sort"
	"strings"

	"github.com/roach88/cee/internal/graph"
)

// StageSingleGoal names the goal-merge stage in field-deletion events.
const StageSingleGoal = "single_goal"

// SingleGoalResult reports what the single-goal enforcer did.
type SingleGoalResult struct {
	HadMultipleGoals  bool                 `json:"had_multiple_goals"`
	OriginalGoalCount int                  `json:"original_goal_count"`
	MergedGoalIDs     []string             `json:"merged_goal_ids,omitempty"`
	Deletions         []FieldDeletionEvent `json:"deletions,omitempty"`
}

// EnforceSingleGoal merges multiple goal nodes into one compound goal.
//
// The first goal in node order survives as the primary. Its label becomes
// "Compound Goal: {label₁}, {label₂}, …" over all original goal labels in
// original order. Every edge endpoint referencing a removed goal is
// redirected to the primary, then edges sharing the same (from, to) are
// deduplicated, preferring the one carrying provenance (first wins among
// several). Surviving edges leaving the compound goal get belief forced to
// 1.0. meta.roots is rewritten to contain only the primary goal id.
//
// Graphs with at most one goal are returned unchanged.
func EnforceSingleGoal(g *graph.Graph) (*graph.Graph, SingleGoalResult) {
	goals := g.NodesOfKind(graph.KindGoal)
	if len(goals) <= 1 {
		return g, SingleGoalResult{OriginalGoalCount: len(goals)}
	}

	primary := goals[0]
	result := SingleGoalResult{
		HadMultipleGoals:  true,
		OriginalGoalCount: len(goals),
	}

	labels := make([]string, 0, len(goals))
	merged := make(map[string]bool, len(goals)-1)
	for _, goal := range goals {
		labels = append(labels, goalLabel(goal))
		if goal != primary {
			merged[goal.ID] = true
			result.MergedGoalIDs = append(result.MergedGoalIDs, goal.ID)
			result.Deletions = append(result.Deletions, dropGoalData(goal)...)
		}
	}
	primary.Label = "Compound Goal: " + strings.Join(labels, ", ")

	// Drop merged goal nodes.
	kept := g.Nodes[:0]
	for _, n := range g.Nodes {
		if !merged[n.ID] {
			kept = append(kept, n)
		}
	}
	g.Nodes = kept

	// Redirect edge endpoints from merged goals to the primary.
	for _, e := range g.Edges {
		if merged[e.From] {
			e.From = primary.ID
		}
		if merged[e.To] {
			e.To = primary.ID
		}
	}

	g.Edges = dedupeEdges(g.Edges)

	// A compound goal's outgoing branches are certain by construction.
	for _, e := range g.Edges {
		if e.From == primary.ID {
			e.Belief = graph.FloatPtr(1.0)
		}
	}

	g.Meta.Roots = []string{primary.ID}
	return g, result
}

// goalLabel falls back to the node id when a goal carries no label.
func goalLabel(n *graph.Node) string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// dropGoalData strips the data map from a goal being merged away, emitting
// one deletion event per top-level field.
func dropGoalData(goal *graph.Node) []FieldDeletionEvent {
	if len(goal.Data) == 0 {
		return nil
	}
	fields := make([]string, 0, len(goal.Data))
	for field := range goal.Data {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	events := make([]FieldDeletionEvent, 0, len(fields))
	for _, field := range fields {
		events = append(events, FieldDeletionEvent{
			Stage:  StageSingleGoal,
			NodeID: goal.ID,
			Field:  field,
			Reason: "goal_merged_into_compound",
		})
	}
	goal.Data = nil
	return events
}

// dedupeEdges removes edges sharing the same (from, to) pair. Within a
// duplicate group the first edge carrying provenance survives; if none
// carries provenance, the first edge survives. Surviving edges keep their
// first-seen position.
func dedupeEdges(edges []*graph.Edge) []*graph.Edge {
	chosen := make(map[[2]string]*graph.Edge, len(edges))
	order := make([][2]string, 0, len(edges))
	for _, e := range edges {
		key := [2]string{e.From, e.To}
		cur, seen := chosen[key]
		if !seen {
			chosen[key] = e
			order = append(order, key)
			continue
		}
		if cur.Provenance == nil && e.Provenance != nil {
			chosen[key] = e
		}
	}

	out := make([]*graph.Edge, 0, len(order))
	for _, key := range order {
		out = append(out, chosen[key])
	}
	return out
}
