package repair

import (
	"fmt"

	"github.com/roach88/cee/internal/graph"
)

// Engine failure codes surfaced to callers. None are retryable from the
// engine's point of view; re-drafting is the caller's decision.
const (
	// CodeGraphInvalid: a required node kind (decision, option, goal) is
	// missing entirely.
	CodeGraphInvalid = "CEE_GRAPH_INVALID"

	// CodeGraphConnectivityFailed: required kinds are present but no
	// decision reaches both an option and a goal, even after repair.
	CodeGraphConnectivityFailed = "CEE_GRAPH_CONNECTIVITY_FAILED"

	// CodeGraphTooLarge: node/edge counts exceed the configured maxima.
	// Rejected before any repair runs, to bound worst-case repair cost.
	CodeGraphTooLarge = "CEE_GRAPH_TOO_LARGE"
)

// Options configures one pipeline run.
type Options struct {
	// CheckSizeLimits rejects oversized graphs before any repair.
	CheckSizeLimits bool
	MaxNodes        int
	MaxEdges        int

	// EnforceSingleGoal merges multiple goals into a compound goal.
	EnforceSingleGoal bool

	// FillOutcomeBeliefs defaults the belief on option→outcome edges
	// lacking one, using DefaultOutcomeBelief.
	FillOutcomeBeliefs   bool
	DefaultOutcomeBelief float64

	// RunIDs generates the run identifier. Defaults to UUIDv7.
	RunIDs RunIDGenerator
}

// DefaultOptions returns the production defaults: all fixes on, size limits
// enforced at 50 nodes / 200 edges.
func DefaultOptions() Options {
	return Options{
		CheckSizeLimits:      true,
		MaxNodes:             DefaultMaxNodes,
		MaxEdges:             DefaultMaxEdges,
		EnforceSingleGoal:    true,
		FillOutcomeBeliefs:   true,
		DefaultOutcomeBelief: DefaultOutcomeBelief,
	}
}

// Fixes reports which repair families actually changed the graph.
type Fixes struct {
	SingleGoalApplied          bool `json:"single_goal_applied"`
	OutcomeBeliefsFilled       bool `json:"outcome_beliefs_filled"`
	DecisionBranchesNormalized bool `json:"decision_branches_normalized"`
}

// Result is the outcome of one ValidateAndFixGraph run.
//
// On size-limit or missing-kind rejection, Graph is nil and ErrorCode/Error
// describe the rejection. On a residual connectivity failure the repaired
// graph IS returned (the caller may still want it for re-drafting context)
// with Valid=false.
type Result struct {
	RunID string `json:"run_id"`
	Valid bool   `json:"valid"`

	Graph *graph.Graph `json:"graph,omitempty"`

	Fixes            Fixes                `json:"fixes"`
	Warnings         []StructuralWarning  `json:"warnings"`
	UncertainNodeIDs []string             `json:"uncertain_node_ids,omitempty"`
	Repairs          []RepairRecord       `json:"repairs,omitempty"`
	Deletions        []FieldDeletionEvent `json:"deletions,omitempty"`
	PrunedNodeIDs    []string             `json:"pruned_node_ids,omitempty"`
	MergedGoalIDs    []string             `json:"merged_goal_ids,omitempty"`

	Connectivity *ConnectivityDiagnostic `json:"connectivity,omitempty"`

	// InputHash and OutputHash are content hashes of the graph before and
	// after repair, for audit correlation. OutputHash is empty when no
	// graph is returned.
	InputHash  string `json:"input_hash,omitempty"`
	OutputHash string `json:"output_hash,omitempty"`

	ErrorCode string `json:"error_code,omitempty"`
	Error     string `json:"error,omitempty"`
}

// ValidateAndFixGraph runs the full repair pipeline over a candidate graph.
//
// Stage order is fixed: single-goal enforcement → branch-belief
// normalization → outcome-belief fill → orphan wiring (to-goal, then
// from-causal-chain) → unreachable pruning → canonical edge enforcement →
// determinism finalization. DAG stabilization is the caller's job; pass its
// StructuralMeta in meta, or nil to have cycles detected (not broken) here.
//
// The graph is mutated in place and must be exclusively owned by this call
// for its duration.
func ValidateAndFixGraph(g *graph.Graph, meta *StructuralMeta, opts Options) Result {
	if opts.RunIDs == nil {
		opts.RunIDs = UUIDv7Generator{}
	}
	result := Result{
		RunID:    opts.RunIDs.Generate(),
		Warnings: []StructuralWarning{},
	}

	if g == nil {
		result.ErrorCode = CodeGraphInvalid
		result.Error = "graph is nil"
		return result
	}

	if opts.CheckSizeLimits {
		if len(g.Nodes) > opts.MaxNodes {
			result.ErrorCode = CodeGraphTooLarge
			result.Error = fmt.Sprintf("graph exceeds node limit: %d nodes > max %d", len(g.Nodes), opts.MaxNodes)
			return result
		}
		if len(g.Edges) > opts.MaxEdges {
			result.ErrorCode = CodeGraphTooLarge
			result.Error = fmt.Sprintf("graph exceeds edge limit: %d edges > max %d", len(g.Edges), opts.MaxEdges)
			return result
		}
	}

	if code, msg := missingKinds(g); code != "" {
		result.ErrorCode = code
		result.Error = msg
		return result
	}

	if hash, err := graph.ContentHash(g); err == nil {
		result.InputHash = hash
	}

	structural := StructuralMeta{}
	if meta != nil {
		structural = *meta
	} else {
		structural = DetectCycles(g)
	}

	if opts.EnforceSingleGoal {
		var goalResult SingleGoalResult
		g, goalResult = EnforceSingleGoal(g)
		result.Fixes.SingleGoalApplied = goalResult.HadMultipleGoals
		result.MergedGoalIDs = goalResult.MergedGoalIDs
		result.Deletions = append(result.Deletions, goalResult.Deletions...)
	}

	var records []RepairRecord
	g, records = NormalizeDecisionBranches(g)
	result.Fixes.DecisionBranchesNormalized = len(records) > 0
	result.Repairs = append(result.Repairs, records...)

	if opts.FillOutcomeBeliefs {
		g, records = FillOutcomeBeliefs(g, opts.DefaultOutcomeBelief)
		result.Fixes.OutcomeBeliefsFilled = len(records) > 0
		result.Repairs = append(result.Repairs, records...)
	}

	g, records = WireOutcomesToGoal(g)
	result.Repairs = append(result.Repairs, records...)

	g, records = WireFromCausalChain(g)
	result.Repairs = append(result.Repairs, records...)

	g, result.PrunedNodeIDs = PruneUnreachable(g)

	g, records = EnforceCanonicalEdges(g)
	result.Repairs = append(result.Repairs, records...)

	g = Finalize(g)

	result.Warnings, result.UncertainNodeIDs = DetectWarnings(g, structural)

	diag := CheckConnectedMinimumStructure(g)
	result.Connectivity = &diag
	result.Graph = g
	if hash, err := graph.ContentHash(g); err == nil {
		result.OutputHash = hash
	}

	if !diag.Passed {
		result.ErrorCode = CodeGraphConnectivityFailed
		result.Error = diag.Hint
		return result
	}

	result.Valid = true
	return result
}

// missingKinds reports the structural-invalidity rejection when a required
// node kind is absent entirely.
func missingKinds(g *graph.Graph) (code, msg string) {
	var missing []string
	for _, kind := range []graph.NodeKind{graph.KindDecision, graph.KindOption, graph.KindGoal} {
		if g.CountKind(kind) == 0 {
			missing = append(missing, string(kind))
		}
	}
	if len(missing) == 0 {
		return "", ""
	}
	return CodeGraphInvalid, fmt.Sprintf("graph is missing required node kinds: %v", missing)
}
