package repair

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cee/internal/graph"
	"github.com/roach88/cee/internal/testutil"
)

func optionFactorGraph(edge *graph.Edge) *graph.Graph {
	return testutil.Graph(
		[]*graph.Node{
			testutil.Node("opt1", graph.KindOption),
			testutil.Node("fac1", graph.KindFactor),
		},
		[]*graph.Edge{edge},
	)
}

// TestEnforceCanonicalEdges_NormalisesWrongValues tests that an edge with
// three non-canonical numeric fields yields three "normalised" records and
// ends up canonical.
func TestEnforceCanonicalEdges_NormalisesWrongValues(t *testing.T) {
	g := optionFactorGraph(testutil.Edge("opt1", "fac1",
		testutil.WithStrength(0.5, 0.15),
		testutil.WithBeliefExists(0.8),
		testutil.WithDirection(graph.EffectPositive),
	))

	g, records := EnforceCanonicalEdges(g)

	require.Len(t, records, 3)
	for _, rec := range records {
		assert.Equal(t, ActionNormalised, rec.Action)
		assert.NotNil(t, rec.FromValue)
	}
	assert.Equal(t, "strength.mean", records[0].Field)
	assert.Equal(t, 0.5, records[0].FromValue)
	assert.Equal(t, 1.0, records[0].ToValue)
	assert.Equal(t, "strength.std", records[1].Field)
	assert.Equal(t, "belief_exists", records[2].Field)

	e := g.Edges[0]
	assert.Equal(t, 1.0, *e.StrengthMean)
	assert.Equal(t, 0.01, *e.StrengthStd)
	assert.Equal(t, 1.0, *e.BeliefExists)
}

// TestEnforceCanonicalEdges_DefaultsAbsentValues tests that absent fields
// yield "defaulted" records with nil from_value.
func TestEnforceCanonicalEdges_DefaultsAbsentValues(t *testing.T) {
	g := optionFactorGraph(testutil.Edge("opt1", "fac1"))

	g, records := EnforceCanonicalEdges(g)

	require.Len(t, records, 4)
	for _, rec := range records {
		assert.Equal(t, ActionDefaulted, rec.Action)
		assert.Nil(t, rec.FromValue)
	}
	assert.Equal(t, "effect_direction", records[3].Field)
	assert.Equal(t, "positive", records[3].ToValue)
	assert.Equal(t, graph.EffectPositive, g.Edges[0].EffectDirection)
}

// TestEnforceCanonicalEdges_Idempotent tests that a second pass over an
// already-canonical edge emits zero records.
func TestEnforceCanonicalEdges_Idempotent(t *testing.T) {
	g := optionFactorGraph(testutil.Edge("opt1", "fac1",
		testutil.WithStrength(0.5, 0.15),
	))

	g, first := EnforceCanonicalEdges(g)
	require.NotEmpty(t, first)

	g, second := EnforceCanonicalEdges(g)
	assert.Empty(t, second)
}

// TestEnforceCanonicalEdges_ToleranceRespected tests that values within
// epsilon of canonical are not rewritten.
func TestEnforceCanonicalEdges_ToleranceRespected(t *testing.T) {
	g := optionFactorGraph(testutil.Edge("opt1", "fac1",
		testutil.WithStrength(1.0+1e-9, 0.01),
		testutil.WithBeliefExists(1.0),
		testutil.WithDirection(graph.EffectPositive),
	))

	_, records := EnforceCanonicalEdges(g)
	assert.Empty(t, records)
}

// TestEnforceCanonicalEdges_OtherPairsUntouched tests that edges between
// other kind pairs keep their parameters.
func TestEnforceCanonicalEdges_OtherPairsUntouched(t *testing.T) {
	g := testutil.Graph(
		[]*graph.Node{
			testutil.Node("out1", graph.KindOutcome),
			testutil.Node("goal1", graph.KindGoal),
		},
		[]*graph.Edge{
			testutil.Edge("out1", "goal1", testutil.WithStrength(0.42, 0.3)),
		},
	)

	g, records := EnforceCanonicalEdges(g)

	assert.Empty(t, records)
	assert.Equal(t, 0.42, *g.Edges[0].StrengthMean)
}

// TestEnforceCanonicalEdges_WrongDirectionNormalised tests the direction
// field on its own.
func TestEnforceCanonicalEdges_WrongDirectionNormalised(t *testing.T) {
	g := optionFactorGraph(testutil.Edge("opt1", "fac1",
		testutil.WithStrength(1.0, 0.01),
		testutil.WithBeliefExists(1.0),
		testutil.WithDirection(graph.EffectNegative),
	))

	g, records := EnforceCanonicalEdges(g)

	require.Len(t, records, 1)
	assert.Equal(t, "effect_direction", records[0].Field)
	assert.Equal(t, ActionNormalised, records[0].Action)
	assert.Equal(t, "negative", records[0].FromValue)
	assert.Equal(t, "positive", records[0].ToValue)
	assert.Equal(t, graph.EffectPositive, g.Edges[0].EffectDirection)
}
