package repair

import "github.com/roach88/cee/internal/graph"

// Default size limits. Graphs larger than this are rejected before any
// repair is attempted, to bound worst-case repair cost.
const (
	DefaultMaxNodes = 50
	DefaultMaxEdges = 200
)

// DefaultOutcomeBelief is the belief filled onto option→outcome edges that
// carry none, unless the caller overrides it.
const DefaultOutcomeBelief = 0.5

// EdgeDefaults holds the canonical parameter set for one (source kind,
// target kind) pair.
type EdgeDefaults struct {
	StrengthMean    float64
	StrengthStd     float64
	BeliefExists    float64
	EffectDirection graph.EffectDirection
}

// kindPair keys the defaults table.
type kindPair struct {
	From graph.NodeKind
	To   graph.NodeKind
}

// edgeDefaultsTable is the single source of canonical edge parameters,
// consumed by both orphan wiring and the canonical edge enforcer. Keeping
// one table prevents the two call sites from drifting apart.
var edgeDefaultsTable = map[kindPair]EdgeDefaults{
	// Option→factor links are definitionally certain: a chosen option
	// controls the factor it sets.
	{graph.KindOption, graph.KindFactor}: {
		StrengthMean:    1.0,
		StrengthStd:     0.01,
		BeliefExists:    1.0,
		EffectDirection: graph.EffectPositive,
	},
	// Outcome/risk → goal wiring defaults.
	{graph.KindOutcome, graph.KindGoal}: {
		StrengthMean:    0.7,
		StrengthStd:     0.15,
		BeliefExists:    0.9,
		EffectDirection: graph.EffectPositive,
	},
	{graph.KindRisk, graph.KindGoal}: {
		StrengthMean:    -0.5,
		StrengthStd:     0.15,
		BeliefExists:    0.9,
		EffectDirection: graph.EffectNegative,
	},
	// Factor → outcome/risk causal-chain wiring defaults.
	{graph.KindFactor, graph.KindOutcome}: {
		StrengthMean:    0.5,
		StrengthStd:     0.2,
		BeliefExists:    0.75,
		EffectDirection: graph.EffectPositive,
	},
	{graph.KindFactor, graph.KindRisk}: {
		StrengthMean:    0.3,
		StrengthStd:     0.2,
		BeliefExists:    0.75,
		EffectDirection: graph.EffectPositive,
	},
}

// DefaultsFor returns the canonical parameters for a kind pair, and whether
// that pair has any.
func DefaultsFor(from, to graph.NodeKind) (EdgeDefaults, bool) {
	d, ok := edgeDefaultsTable[kindPair{From: from, To: to}]
	return d, ok
}
