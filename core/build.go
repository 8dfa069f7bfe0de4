package core

import (
	"fmt"
	"maps"
	"slices"

	"github.com/huangsam/outrank/core/algo"
	"github.com/huangsam/outrank/internal/ingest"
	"github.com/huangsam/outrank/schema"
)

// BuildProblem turns a decoded problem file into a Problem. Weight overrides
// replace the raw weight of the named criteria before normalization, and
// flipped criteria have their direction toggled after construction.
func BuildProblem(spec *schema.ProblemSpec, weightOverrides map[string]float64, flips []string) (*Problem, error) {
	functions, err := ingest.Functions(spec)
	if err != nil {
		return nil, err
	}

	alts := make([]Alternative, len(spec.Alternatives))
	for i, a := range spec.Alternatives {
		alts[i] = Alternative{Name: a.Name, Performances: a.Performances}
	}
	table, err := NewPerformanceTable(alts,
		WithCriteriaNames(spec.CriteriaNames()...),
		WithDirections(spec.Directions()...),
	)
	if err != nil {
		return nil, err
	}

	weights := spec.Weights()
	for _, name := range slices.Sorted(maps.Keys(weightOverrides)) {
		k, ok := table.CriterionIndex(name)
		if !ok {
			return nil, fmt.Errorf("%w: weight override for %q", ErrUnknownCriterion, name)
		}
		weights[k] = weightOverrides[name]
	}

	problem, err := NewProblem(table, functions, weights)
	if err != nil {
		return nil, err
	}

	for _, name := range flips {
		k, ok := table.CriterionIndex(name)
		if !ok {
			return nil, fmt.Errorf("%w: cannot flip %q", ErrUnknownCriterion, name)
		}
		if err := problem.FlipDirection(k); err != nil {
			return nil, err
		}
	}
	return problem, nil
}

// Summarize describes a problem in display units for the show command.
func Summarize(name string, p *Problem) schema.ProblemSummary {
	summary := schema.ProblemSummary{
		Name:         name,
		Criteria:     make([]schema.CriterionSummary, p.Q()),
		Alternatives: make([]schema.AlternativeSpec, p.N()),
	}

	for k := range p.Q() {
		fn, _ := p.Function(k)
		w, _ := p.Weight(k)
		c := schema.CriterionSummary{
			Name:      p.CriterionName(k),
			Direction: p.Direction(k),
			Kind:      fn.Kind(),
			Function:  fn.String(),
			Weight:    w,
		}
		switch f := fn.(type) {
		case algo.UShape:
			c.P = f.P
		case algo.VShape:
			c.P = f.P
		case algo.Linear:
			c.Q, c.P = f.Q, f.P
		}
		if gap, ok := p.SmallestGap(k); ok {
			c.SmallestGap = &gap
		}
		summary.Criteria[k] = c
	}

	table := p.Table()
	for i := range p.N() {
		perf := make([]float64, p.Q())
		for k := range perf {
			perf[k], _ = table.DisplayPerformance(i, k)
		}
		summary.Alternatives[i] = schema.AlternativeSpec{Name: p.AlternativeName(i), Performances: perf}
	}
	return summary
}
