package repair

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cee/internal/graph"
	"github.com/roach88/cee/internal/testutil"
)

func warningIDs(warnings []StructuralWarning) []string {
	ids := make([]string, 0, len(warnings))
	for _, w := range warnings {
		ids = append(ids, w.ID)
	}
	return ids
}

// TestDetectWarnings_NoOutcomeNode tests the missing-outcome warning on a
// graph with none.
func TestDetectWarnings_NoOutcomeNode(t *testing.T) {
	warnings, uncertain := DetectWarnings(testutil.MinimalValid(), StructuralMeta{})

	require.Len(t, warnings, 1)
	assert.Equal(t, WarnNoOutcomeNode, warnings[0].ID)
	assert.Equal(t, SeverityMedium, warnings[0].Severity)
	assert.Empty(t, uncertain, "the warning names no specific node")
}

// TestDetectWarnings_OrphanSeverityByKind tests that an orphaned factor is
// low severity while an orphaned outcome is medium, one warning each.
func TestDetectWarnings_OrphanSeverityByKind(t *testing.T) {
	g := testutil.MinimalValid()
	g.Nodes = append(g.Nodes,
		testutil.Factor("fac_orphan", graph.CategoryExternal),
		testutil.Node("out_orphan", graph.KindOutcome),
	)

	warnings, uncertain := DetectWarnings(g, StructuralMeta{})

	bySubject := make(map[string]StructuralWarning)
	for _, w := range warnings {
		if w.ID == WarnOrphanNode {
			require.Len(t, w.NodeIDs, 1)
			bySubject[w.NodeIDs[0]] = w
		}
	}
	require.Len(t, bySubject, 2)
	assert.Equal(t, SeverityLow, bySubject["fac_orphan"].Severity)
	assert.Equal(t, SeverityMedium, bySubject["out_orphan"].Severity)
	assert.Equal(t, []string{"fac_orphan", "out_orphan"}, uncertain)
}

// TestDetectWarnings_CycleFromMeta tests that cycle warnings come from the
// supplied metadata, not a re-scan.
func TestDetectWarnings_CycleFromMeta(t *testing.T) {
	g := testutil.MinimalValid()
	g.Nodes = append(g.Nodes, testutil.Node("out1", graph.KindOutcome))
	g.Edges = append(g.Edges, testutil.Edge("opt1", "out1"))
	meta := StructuralMeta{HadCycles: true, CycleNodeIDs: []string{"a", "b"}}

	warnings, uncertain := DetectWarnings(g, meta)

	require.Contains(t, warningIDs(warnings), WarnCycleDetected)
	for _, w := range warnings {
		if w.ID == WarnCycleDetected {
			assert.Equal(t, SeverityHigh, w.Severity)
			assert.Equal(t, []string{"a", "b"}, w.NodeIDs)
		}
	}
	assert.Equal(t, []string{"a", "b"}, uncertain)
}

// TestDetectWarnings_DecisionAfterOutcome tests the backwards-edge warning
// for outcome→option, and that outcome→goal stays clean.
func TestDetectWarnings_DecisionAfterOutcome(t *testing.T) {
	g := testutil.Graph(
		[]*graph.Node{
			testutil.Node("dec1", graph.KindDecision),
			testutil.Node("opt1", graph.KindOption),
			testutil.Node("out1", graph.KindOutcome),
			testutil.Node("goal1", graph.KindGoal),
		},
		[]*graph.Edge{
			testutil.Edge("dec1", "opt1"),
			testutil.Edge("opt1", "out1"),
			testutil.Edge("out1", "goal1"),
			testutil.Edge("out1", "opt1", testutil.WithEdgeID("back-1")),
		},
	)

	warnings, uncertain := DetectWarnings(g, StructuralMeta{})

	var backwards []StructuralWarning
	for _, w := range warnings {
		if w.ID == WarnDecisionAfterOutcome {
			backwards = append(backwards, w)
		}
	}
	require.Len(t, backwards, 1, "outcome→goal must not be flagged")
	assert.Equal(t, []string{"out1", "opt1"}, backwards[0].NodeIDs)
	assert.Equal(t, []string{"back-1"}, backwards[0].EdgeIDs)
	assert.Equal(t, []string{"opt1", "out1"}, uncertain)
}

// TestDetectWarnings_CleanGraph tests that a fully wired graph with an
// outcome produces no warnings.
func TestDetectWarnings_CleanGraph(t *testing.T) {
	g := testutil.Graph(
		[]*graph.Node{
			testutil.Node("dec1", graph.KindDecision),
			testutil.Node("opt1", graph.KindOption),
			testutil.Node("out1", graph.KindOutcome),
			testutil.Node("goal1", graph.KindGoal),
		},
		[]*graph.Edge{
			testutil.Edge("dec1", "opt1"),
			testutil.Edge("opt1", "out1"),
			testutil.Edge("out1", "goal1"),
		},
	)

	warnings, uncertain := DetectWarnings(g, StructuralMeta{})

	assert.Empty(t, warnings)
	assert.Empty(t, uncertain)
}
