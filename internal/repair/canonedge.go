package repair

import (
	"github.com/roach88/cee/internal/graph"
)

// EnforceCanonicalEdges forces every option→factor edge onto the canonical
// parameter set (strength_mean=1.0, strength_std=0.01, belief_exists=1.0,
// effect_direction=positive) and emits one RepairRecord per field actually
// changed: "defaulted" when the field was absent, "normalised" when a
// present value differed. Edges canonical on all four fields contribute no
// records; edges between other kind pairs are untouched.
//
// Running this twice emits zero records on the second pass.
func EnforceCanonicalEdges(g *graph.Graph) (*graph.Graph, []RepairRecord) {
	nodes := g.NodeByID()
	defaults, _ := DefaultsFor(graph.KindOption, graph.KindFactor)

	var records []RepairRecord
	for _, e := range g.Edges {
		from, okFrom := nodes[e.From]
		to, okTo := nodes[e.To]
		if !okFrom || !okTo || from.Kind != graph.KindOption || to.Kind != graph.KindFactor {
			continue
		}
		records = append(records, enforceFloat(e, &e.StrengthMean, "strength.mean", defaults.StrengthMean)...)
		records = append(records, enforceFloat(e, &e.StrengthStd, "strength.std", defaults.StrengthStd)...)
		records = append(records, enforceFloat(e, &e.BeliefExists, "belief_exists", defaults.BeliefExists)...)
		records = append(records, enforceDirection(e, defaults.EffectDirection)...)
	}

	return g, records
}

// enforceFloat canonicalizes one numeric field, emitting at most one record.
func enforceFloat(e *graph.Edge, field **float64, path string, canonical float64) []RepairRecord {
	if *field != nil && graph.ApproxEqual(**field, canonical) {
		return nil
	}

	rec := RepairRecord{
		Field:    path,
		ToValue:  canonical,
		Reason:   "option→factor edges carry canonical parameters",
		EdgeID:   e.ID,
		EdgeFrom: e.From,
		EdgeTo:   e.To,
	}
	if *field == nil {
		rec.Action = ActionDefaulted
		rec.FromValue = nil
	} else {
		rec.Action = ActionNormalised
		rec.FromValue = **field
	}
	*field = graph.FloatPtr(canonical)
	return []RepairRecord{rec}
}

// enforceDirection canonicalizes the effect_direction field.
func enforceDirection(e *graph.Edge, canonical graph.EffectDirection) []RepairRecord {
	if e.EffectDirection == canonical {
		return nil
	}

	rec := RepairRecord{
		Field:    "effect_direction",
		ToValue:  string(canonical),
		Reason:   "option→factor edges carry canonical parameters",
		EdgeID:   e.ID,
		EdgeFrom: e.From,
		EdgeTo:   e.To,
	}
	if e.EffectDirection == "" {
		rec.Action = ActionDefaulted
		rec.FromValue = nil
	} else {
		rec.Action = ActionNormalised
		rec.FromValue = string(e.EffectDirection)
	}
	e.EffectDirection = canonical
	return []RepairRecord{rec}
}
