package graph

// NodeKind classifies a node's role in a causal decision graph.
type NodeKind string

const (
	KindGoal     NodeKind = "goal"
	KindDecision NodeKind = "decision"
	KindOption   NodeKind = "option"
	KindOutcome  NodeKind = "outcome"
	KindRisk     NodeKind = "risk"
	KindAction   NodeKind = "action"
	KindFactor   NodeKind = "factor"
)

// ValidNodeKinds defines allowed node kinds.
var ValidNodeKinds = map[NodeKind]bool{
	KindGoal:     true,
	KindDecision: true,
	KindOption:   true,
	KindOutcome:  true,
	KindRisk:     true,
	KindAction:   true,
	KindFactor:   true,
}

// ProtectedKinds lists kinds that are never removed by reachability pruning.
// Only factor nodes may be pruned.
var ProtectedKinds = map[NodeKind]bool{
	KindGoal:     true,
	KindDecision: true,
	KindOption:   true,
	KindOutcome:  true,
	KindRisk:     true,
	KindAction:   true,
}

// FactorCategory classifies a factor node. It is only semantically active
// when the node's kind is "factor".
type FactorCategory string

const (
	CategoryControllable FactorCategory = "controllable"
	CategoryExternal     FactorCategory = "external"
	CategoryObservable   FactorCategory = "observable"
)

// EffectDirection is the sign of an edge's causal effect.
type EffectDirection string

const (
	EffectPositive EffectDirection = "positive"
	EffectNegative EffectDirection = "negative"
)

// Node is a single node in a decision graph.
//
// Data carries extraction metadata (value, value_std, factor_type,
// uncertainty_drivers, is_status_quo, interventions) and is kept as an open
// map for forward compatibility; repair stages that strip Data fields emit
// FieldDeletionEvents rather than mutating silently.
type Node struct {
	ID       string         `json:"id"`
	Kind     NodeKind       `json:"kind"`
	Label    string         `json:"label,omitempty"`
	Category FactorCategory `json:"category,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
	Body     string         `json:"body,omitempty"`
}

// Provenance records where an edge came from in the source material.
type Provenance struct {
	Source string `json:"source,omitempty"`
	Quote  string `json:"quote,omitempty"`
}

// Edge is a directed causal/probabilistic link between two nodes.
//
// Two numeric systems coexist and are intentionally NOT unified:
//   - Belief/Weight: legacy decision-branch probabilities (decision→option)
//   - StrengthMean/StrengthStd/BeliefExists/EffectDirection: the newer
//     distributional representation (option→factor and causal-chain edges)
//
// Pointer fields distinguish "absent" from "zero", which matters for
// audit-record emission (absent → defaulted, present-but-wrong → normalised).
type Edge struct {
	From            string          `json:"from"`
	To              string          `json:"to"`
	ID              string          `json:"id,omitempty"`
	StrengthMean    *float64        `json:"strength_mean,omitempty"`
	StrengthStd     *float64        `json:"strength_std,omitempty"`
	BeliefExists    *float64        `json:"belief_exists,omitempty"`
	EffectDirection EffectDirection `json:"effect_direction,omitempty"`
	Belief          *float64        `json:"belief,omitempty"`
	Weight          *float64        `json:"weight,omitempty"`
	Provenance      *Provenance     `json:"provenance,omitempty"`
}

// Meta holds layout and provenance hints attached to a graph.
type Meta struct {
	Roots              []string       `json:"roots,omitempty"`
	Leaves             []string       `json:"leaves,omitempty"`
	SuggestedPositions map[string]any `json:"suggested_positions,omitempty"`
	Source             string         `json:"source,omitempty"`
}

// Graph is an in-memory causal decision graph.
//
// Nodes and Edges keep insertion order until the determinism finalizer runs,
// after which nodes are id-ascending and edges are (from, to, id)-ascending.
// A Graph is exclusively owned by one pipeline run at a time; stages mutate
// it in place and return it together with their audit records.
type Graph struct {
	Version     string  `json:"version,omitempty"`
	DefaultSeed *int64  `json:"default_seed,omitempty"`
	Nodes       []*Node `json:"nodes"`
	Edges       []*Edge `json:"edges"`
	Meta        Meta    `json:"meta,omitempty"`
}

// NodeByID returns an id → node index. Later duplicates win, matching the
// boundary validator's duplicate-id rejection (a well-formed graph never has
// duplicates by the time this is called).
func (g *Graph) NodeByID() map[string]*Node {
	idx := make(map[string]*Node, len(g.Nodes))
	for _, n := range g.Nodes {
		idx[n.ID] = n
	}
	return idx
}

// NodesOfKind returns all nodes of the given kind in current order.
func (g *Graph) NodesOfKind(kind NodeKind) []*Node {
	var out []*Node
	for _, n := range g.Nodes {
		if n.Kind == kind {
			out = append(out, n)
		}
	}
	return out
}

// IDsOfKind returns the ids of all nodes of the given kind in current order.
func (g *Graph) IDsOfKind(kind NodeKind) []string {
	var out []string
	for _, n := range g.Nodes {
		if n.Kind == kind {
			out = append(out, n.ID)
		}
	}
	return out
}

// CountKind returns how many nodes of the given kind the graph holds.
func (g *Graph) CountKind(kind NodeKind) int {
	count := 0
	for _, n := range g.Nodes {
		if n.Kind == kind {
			count++
		}
	}
	return count
}

// GoalNode returns the first goal node in current order, or nil.
func (g *Graph) GoalNode() *Node {
	for _, n := range g.Nodes {
		if n.Kind == KindGoal {
			return n
		}
	}
	return nil
}

// FloatPtr returns a pointer to v. Convenience for building edges.
func FloatPtr(v float64) *float64 {
	return &v
}
