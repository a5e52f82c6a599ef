// Package testutil provides shared graph builders for tests.
//
// The builders keep test fixtures terse: a node is declared by id and kind,
// an edge by endpoints plus optional parameter setters. All builders return
// fresh values; tests may mutate the result freely.
package testutil

import "github.com/roach88/cee/internal/graph"

// Node builds a node with the given id and kind.
func Node(id string, kind graph.NodeKind) *graph.Node {
	return &graph.Node{ID: id, Kind: kind}
}

// LabeledNode builds a node with a label.
func LabeledNode(id string, kind graph.NodeKind, label string) *graph.Node {
	return &graph.Node{ID: id, Kind: kind, Label: label}
}

// Factor builds a factor node with the given category.
func Factor(id string, category graph.FactorCategory) *graph.Node {
	return &graph.Node{ID: id, Kind: graph.KindFactor, Category: category}
}

// EdgeOpt mutates an edge under construction.
type EdgeOpt func(*graph.Edge)

// Edge builds an edge from → to, applying any options.
func Edge(from, to string, opts ...EdgeOpt) *graph.Edge {
	e := &graph.Edge{From: from, To: to}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WithBelief sets the legacy branch belief.
func WithBelief(v float64) EdgeOpt {
	return func(e *graph.Edge) { e.Belief = graph.FloatPtr(v) }
}

// WithStrength sets strength_mean and strength_std.
func WithStrength(mean, std float64) EdgeOpt {
	return func(e *graph.Edge) {
		e.StrengthMean = graph.FloatPtr(mean)
		e.StrengthStd = graph.FloatPtr(std)
	}
}

// WithBeliefExists sets belief_exists.
func WithBeliefExists(v float64) EdgeOpt {
	return func(e *graph.Edge) { e.BeliefExists = graph.FloatPtr(v) }
}

// WithDirection sets effect_direction.
func WithDirection(d graph.EffectDirection) EdgeOpt {
	return func(e *graph.Edge) { e.EffectDirection = d }
}

// WithEdgeID sets a client-supplied edge id.
func WithEdgeID(id string) EdgeOpt {
	return func(e *graph.Edge) { e.ID = id }
}

// WithProvenance attaches provenance.
func WithProvenance(source, quote string) EdgeOpt {
	return func(e *graph.Edge) {
		e.Provenance = &graph.Provenance{Source: source, Quote: quote}
	}
}

// Graph assembles a graph from nodes and edges.
func Graph(nodes []*graph.Node, edges []*graph.Edge) *graph.Graph {
	return &graph.Graph{Nodes: nodes, Edges: edges}
}

// MinimalValid returns the smallest graph that passes every structural
// check: one decision, one option, one goal, fully wired.
func MinimalValid() *graph.Graph {
	return Graph(
		[]*graph.Node{
			Node("dec1", graph.KindDecision),
			Node("opt1", graph.KindOption),
			Node("goal1", graph.KindGoal),
		},
		[]*graph.Edge{
			Edge("dec1", "opt1", WithBelief(1.0)),
			Edge("opt1", "goal1"),
		},
	)
}
