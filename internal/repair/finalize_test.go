package repair

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cee/internal/graph"
	"github.com/roach88/cee/internal/testutil"
)

// TestFinalize_AssignsDerivedEdgeIDs tests the "{from}::{to}::{index}"
// id scheme with a 0-based per-pair index.
func TestFinalize_AssignsDerivedEdgeIDs(t *testing.T) {
	g := testutil.Graph(
		[]*graph.Node{
			testutil.Node("a", graph.KindOption),
			testutil.Node("b", graph.KindFactor),
		},
		[]*graph.Edge{
			testutil.Edge("a", "b"),
		},
	)

	g = Finalize(g)

	assert.Equal(t, "a::b::0", g.Edges[0].ID)
	assert.True(t, HasStableEdgeIDs(g))
}

// TestFinalize_ParallelEdgesGetDistinctIndices tests that two edges
// between the same endpoints get indices 0 and 1.
func TestFinalize_ParallelEdgesGetDistinctIndices(t *testing.T) {
	g := testutil.Graph(
		[]*graph.Node{
			testutil.Node("a", graph.KindOption),
			testutil.Node("b", graph.KindFactor),
		},
		[]*graph.Edge{
			testutil.Edge("a", "b"),
			testutil.Edge("a", "b"),
		},
	)

	g = Finalize(g)

	assert.Equal(t, "a::b::0", g.Edges[0].ID)
	assert.Equal(t, "a::b::1", g.Edges[1].ID)
}

// TestFinalize_ClientIDsPreserved tests that a client-supplied edge id
// survives and still consumes an index, so derived ids never collide.
func TestFinalize_ClientIDsPreserved(t *testing.T) {
	g := testutil.Graph(
		[]*graph.Node{
			testutil.Node("a", graph.KindOption),
			testutil.Node("b", graph.KindFactor),
		},
		[]*graph.Edge{
			testutil.Edge("a", "b", testutil.WithEdgeID("custom-1")),
			testutil.Edge("a", "b"),
		},
	)

	g = Finalize(g)

	ids := []string{g.Edges[0].ID, g.Edges[1].ID}
	assert.Contains(t, ids, "custom-1")
	assert.Contains(t, ids, "a::b::1")
}

// TestFinalize_SortsNodesAndEdges tests canonical ordering: nodes by id,
// edges by (from, to, id).
func TestFinalize_SortsNodesAndEdges(t *testing.T) {
	g := testutil.Graph(
		[]*graph.Node{
			testutil.Node("zeta", graph.KindGoal),
			testutil.Node("alpha", graph.KindDecision),
			testutil.Node("mid", graph.KindOption),
		},
		[]*graph.Edge{
			testutil.Edge("mid", "zeta"),
			testutil.Edge("alpha", "mid"),
			testutil.Edge("alpha", "zeta"),
		},
	)

	g = Finalize(g)

	require.True(t, IsSorted(g))
	assert.Equal(t, "alpha", g.Nodes[0].ID)
	assert.Equal(t, "mid", g.Nodes[1].ID)
	assert.Equal(t, "zeta", g.Nodes[2].ID)
	assert.Equal(t, "alpha", g.Edges[0].From)
	assert.Equal(t, "mid", g.Edges[0].To)
	assert.Equal(t, "zeta", g.Edges[1].To)
	assert.Equal(t, "mid", g.Edges[2].From)
}

// TestFinalize_Idempotent tests that finalizing twice yields the same
// ids and ordering.
func TestFinalize_Idempotent(t *testing.T) {
	g := testutil.MinimalValid()

	g = Finalize(g)
	first, err := graph.ContentHash(g)
	require.NoError(t, err)

	g = Finalize(g)
	second, err := graph.ContentHash(g)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// TestHasStableEdgeIDs tests the blank-id detector.
func TestHasStableEdgeIDs(t *testing.T) {
	g := testutil.MinimalValid()
	assert.False(t, HasStableEdgeIDs(g))

	Finalize(g)
	assert.True(t, HasStableEdgeIDs(g))
}

// TestIsSorted_DetectsUnsortedNodes tests the sortedness check on an
// out-of-order node list.
func TestIsSorted_DetectsUnsortedNodes(t *testing.T) {
	g := testutil.Graph(
		[]*graph.Node{
			testutil.Node("b", graph.KindOption),
			testutil.Node("a", graph.KindDecision),
		},
		nil,
	)
	assert.False(t, IsSorted(g))
}
