// Package repair implements the canonicalization and repair engine for
// causal decision graphs.
//
// A candidate graph drafted by an LLM (or accepted from a client) may
// violate the structural invariants downstream probabilistic analysis
// needs: multiple goals, disconnected decisions, missing beliefs,
// non-canonical edge parameters, unreachable factors. The engine repairs
// it deterministically and records every mutation for auditability.
//
// ARCHITECTURE:
//
// Pure, synchronous transforms:
// Every component is a pure function over an in-memory graph value. No
// I/O, no network, no shared state across invocations. A graph is
// exclusively owned by one pipeline run and mutated in place; each stage
// returns the graph plus its audit records, and the orchestrator
// concatenates those into one trail.
//
// Fixed stage order (ValidateAndFixGraph):
//  1. Single-goal enforcement (merge goals into a compound goal)
//  2. Decision-branch belief normalization
//  3. Outcome-belief fill
//  4. Orphan wiring: outcomes/risks to the goal, then from the causal chain
//  5. Unreachable factor pruning
//  6. Canonical option→factor edge enforcement
//  7. Determinism finalization (stable edge ids, sorted nodes/edges)
//
// DAG stabilization runs upstream; the engine only detects and reports
// cycles (DetectCycles), never breaks them.
//
// Read-only diagnostics (CheckConnectedMinimumStructure, DetectWarnings)
// run before and after repair and never mutate the graph.
//
// DETERMINISM:
//
// No randomness, no map-iteration-order dependence in outputs, one shared
// epsilon for every float comparison. Identical inputs produce identical
// repaired graphs, audit trails, and content hashes.
package repair
