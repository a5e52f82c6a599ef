package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cee/internal/graph"
)

const validPayload = `{
	"nodes": [
		{"id": "dec1", "kind": "decision"},
		{"id": "opt1", "kind": "option", "label": "Ship now"},
		{"id": "goal1", "kind": "goal"}
	],
	"edges": [
		{"from": "dec1", "to": "opt1", "belief": 1.0},
		{"from": "opt1", "to": "goal1"}
	]
}`

// TestValidateGraphJSON_ValidPayload tests that a well-typed payload
// produces no errors.
func TestValidateGraphJSON_ValidPayload(t *testing.T) {
	errs := ValidateGraphJSON([]byte(validPayload))
	assert.Empty(t, errs)
}

// TestValidateGraphJSON_MalformedJSON tests the E001 rejection.
func TestValidateGraphJSON_MalformedJSON(t *testing.T) {
	errs := ValidateGraphJSON([]byte(`{"nodes": [`))

	require.Len(t, errs, 1)
	assert.Equal(t, ErrInvalidJSON, errs[0].Code)
}

// TestValidateGraphJSON_UnknownKind tests that an out-of-enum kind is a
// schema violation.
func TestValidateGraphJSON_UnknownKind(t *testing.T) {
	payload := `{"nodes": [{"id": "x", "kind": "wish"}], "edges": []}`

	errs := ValidateGraphJSON([]byte(payload))

	require.NotEmpty(t, errs)
	assert.Equal(t, ErrSchemaViolation, errs[0].Code)
}

// TestValidateGraphJSON_BeliefOutOfRange tests the [0,1] bound on belief.
func TestValidateGraphJSON_BeliefOutOfRange(t *testing.T) {
	payload := `{
		"nodes": [{"id": "a", "kind": "decision"}, {"id": "b", "kind": "option"}],
		"edges": [{"from": "a", "to": "b", "belief": 1.5}]
	}`

	errs := ValidateGraphJSON([]byte(payload))

	require.NotEmpty(t, errs)
	assert.Equal(t, ErrSchemaViolation, errs[0].Code)
}

// TestValidateGraphJSON_NegativeStrengthStd tests the non-negativity bound
// on strength_std.
func TestValidateGraphJSON_NegativeStrengthStd(t *testing.T) {
	payload := `{
		"nodes": [{"id": "a", "kind": "option"}, {"id": "b", "kind": "factor"}],
		"edges": [{"from": "a", "to": "b", "strength_mean": 0.5, "strength_std": -0.1}]
	}`

	errs := ValidateGraphJSON([]byte(payload))
	require.NotEmpty(t, errs)
	assert.Equal(t, ErrSchemaViolation, errs[0].Code)
}

// TestValidateGraphJSON_EmptyNodeID tests that blank ids are rejected.
func TestValidateGraphJSON_EmptyNodeID(t *testing.T) {
	payload := `{"nodes": [{"id": "", "kind": "goal"}], "edges": []}`

	errs := ValidateGraphJSON([]byte(payload))
	require.NotEmpty(t, errs)
	assert.Equal(t, ErrSchemaViolation, errs[0].Code)
}

// TestValidateGraphJSON_MissingRequiredField tests that a node without a
// kind is rejected, with the field path populated.
func TestValidateGraphJSON_MissingRequiredField(t *testing.T) {
	payload := `{"nodes": [{"id": "a"}], "edges": []}`

	errs := ValidateGraphJSON([]byte(payload))
	require.NotEmpty(t, errs)
	assert.Equal(t, ErrSchemaViolation, errs[0].Code)
}

// TestDecodeGraph_RoundTrip tests that a valid payload decodes into typed
// structures.
func TestDecodeGraph_RoundTrip(t *testing.T) {
	g, errs := DecodeGraph([]byte(validPayload))

	require.Empty(t, errs)
	require.NotNil(t, g)
	assert.Len(t, g.Nodes, 3)
	assert.Len(t, g.Edges, 2)
	assert.Equal(t, graph.KindDecision, g.Nodes[0].Kind)
	assert.Equal(t, "Ship now", g.Nodes[1].Label)
	require.NotNil(t, g.Edges[0].Belief)
	assert.Equal(t, 1.0, *g.Edges[0].Belief)
	assert.Nil(t, g.Edges[1].Belief)
}

// TestDecodeGraph_DuplicateNodeID tests the E003 rejection: the engine
// indexes nodes by id and duplicates would corrupt audit attribution.
func TestDecodeGraph_DuplicateNodeID(t *testing.T) {
	payload := `{
		"nodes": [{"id": "a", "kind": "goal"}, {"id": "a", "kind": "option"}],
		"edges": []
	}`

	g, errs := DecodeGraph([]byte(payload))

	assert.Nil(t, g)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrDuplicateNodeID, errs[0].Code)
	assert.Contains(t, errs[0].Message, `"a"`)
}

// TestDecodeGraph_InvalidPayloadReturnsNil tests the error/nil contract.
func TestDecodeGraph_InvalidPayloadReturnsNil(t *testing.T) {
	g, errs := DecodeGraph([]byte(`not json`))

	assert.Nil(t, g)
	assert.NotEmpty(t, errs)
}

// TestValidationError_Error tests both message shapes.
func TestValidationError_Error(t *testing.T) {
	withField := ValidationError{Field: "nodes.0.kind", Code: ErrSchemaViolation, Message: "bad kind"}
	assert.Equal(t, "[E002] nodes.0.kind: bad kind", withField.Error())

	bare := ValidationError{Code: ErrInvalidJSON, Message: "unexpected EOF"}
	assert.Equal(t, "[E001] unexpected EOF", bare.Error())
}
