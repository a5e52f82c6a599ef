package repair

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cee/internal/graph"
	"github.com/roach88/cee/internal/testutil"
)

// TestCheckConnectedMinimumStructure_Passes tests the minimal valid graph.
func TestCheckConnectedMinimumStructure_Passes(t *testing.T) {
	diag := CheckConnectedMinimumStructure(testutil.MinimalValid())

	assert.True(t, diag.Passed)
	assert.Equal(t, FailureNone, diag.FailureClass)
	assert.Empty(t, diag.Hint)
	assert.Equal(t, []string{"opt1"}, diag.ReachableOptions)
	assert.Equal(t, []string{"goal1"}, diag.ReachableGoals)
	assert.Empty(t, diag.UnreachableNodes)
}

// TestCheckConnectedMinimumStructure_NoPathToGoal tests a goal present but
// edgeless: the decision reaches its option but never the goal.
func TestCheckConnectedMinimumStructure_NoPathToGoal(t *testing.T) {
	g := testutil.Graph(
		[]*graph.Node{
			testutil.Node("dec", graph.KindDecision),
			testutil.Node("opt1", graph.KindOption),
			testutil.Node("goal1", graph.KindGoal),
		},
		[]*graph.Edge{testutil.Edge("dec", "opt1")},
	)

	diag := CheckConnectedMinimumStructure(g)
	assert.False(t, diag.Passed)
	assert.Equal(t, FailureNoPathToGoal, diag.FailureClass)
	assert.Contains(t, diag.Hint, "goal is not connected")
	assert.Equal(t, []string{"goal1"}, diag.UnreachableNodes)
}

// TestCheckConnectedMinimumStructure_NoPathToOptions tests the symmetric
// failure: goal wired, options stranded.
func TestCheckConnectedMinimumStructure_NoPathToOptions(t *testing.T) {
	g := testutil.Graph(
		[]*graph.Node{
			testutil.Node("dec", graph.KindDecision),
			testutil.Node("opt1", graph.KindOption),
			testutil.Node("goal1", graph.KindGoal),
		},
		[]*graph.Edge{testutil.Edge("dec", "goal1")},
	)

	diag := CheckConnectedMinimumStructure(g)
	assert.Equal(t, FailureNoPathToOptions, diag.FailureClass)
}

// TestCheckConnectedMinimumStructure_NeitherReachable tests an isolated
// decision.
func TestCheckConnectedMinimumStructure_NeitherReachable(t *testing.T) {
	g := testutil.Graph(
		[]*graph.Node{
			testutil.Node("dec", graph.KindDecision),
			testutil.Node("opt1", graph.KindOption),
			testutil.Node("goal1", graph.KindGoal),
		},
		[]*graph.Edge{testutil.Edge("opt1", "goal1")},
	)

	diag := CheckConnectedMinimumStructure(g)
	assert.False(t, diag.Passed)
	assert.Equal(t, FailureNeither, diag.FailureClass)
}

// TestCheckConnectedMinimumStructure_Partial tests a passing decision with
// a second, stranded option.
func TestCheckConnectedMinimumStructure_Partial(t *testing.T) {
	g := testutil.MinimalValid()
	g.Nodes = append(g.Nodes, testutil.Node("opt2", graph.KindOption))

	diag := CheckConnectedMinimumStructure(g)
	assert.True(t, diag.Passed, "one passing decision passes the graph")
	assert.Equal(t, FailurePartial, diag.FailureClass)
	assert.Equal(t, []string{"opt2"}, diag.UnreachableNodes)
}

// TestCheckConnectedMinimumStructure_ZeroDecisions tests immediate failure
// with every option and goal marked unreachable.
func TestCheckConnectedMinimumStructure_ZeroDecisions(t *testing.T) {
	g := testutil.Graph(
		[]*graph.Node{
			testutil.Node("opt1", graph.KindOption),
			testutil.Node("goal1", graph.KindGoal),
		},
		[]*graph.Edge{testutil.Edge("opt1", "goal1")},
	)

	diag := CheckConnectedMinimumStructure(g)
	require.False(t, diag.Passed)
	assert.Empty(t, diag.DecisionIDs)
	assert.Equal(t, []string{"opt1", "goal1"}, diag.UnreachableNodes)
	assert.Equal(t, FailureNeither, diag.FailureClass)
}

// TestCheckConnectedMinimumStructure_UndirectedReachability tests that edge
// direction does not matter for the diagnostic: goal→decision still counts.
func TestCheckConnectedMinimumStructure_UndirectedReachability(t *testing.T) {
	g := testutil.Graph(
		[]*graph.Node{
			testutil.Node("dec", graph.KindDecision),
			testutil.Node("opt1", graph.KindOption),
			testutil.Node("goal1", graph.KindGoal),
		},
		[]*graph.Edge{
			testutil.Edge("dec", "opt1"),
			testutil.Edge("goal1", "dec"),
		},
	)

	diag := CheckConnectedMinimumStructure(g)
	assert.True(t, diag.Passed)
	assert.Equal(t, FailureNone, diag.FailureClass)
}
