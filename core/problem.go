package core

import (
	"fmt"
	"math"
	"slices"

	"github.com/huangsam/outrank/core/algo"
	"github.com/huangsam/outrank/schema"
)

// Problem is a PROMETHEE II instance: a performance table, one preference
// function and one normalized weight per criterion, and the ascending sort
// order of every criterion that takes the sliding-window path.
//
// A Problem is read-mostly. The mutating methods (ShiftPerformance,
// SetPerformance, FlipDirection) must not run concurrently with Solve.
type Problem struct {
	table     *PerformanceTable
	functions []algo.PreferenceFunction
	weights   []float64

	// orders is keyed by criterion index and only holds ramp criteria.
	orders map[int][]int
}

// NewProblem validates the inputs, normalizes weights to sum to 1 and builds
// the sort cache. The table is used as is; clone it first to keep the caller's copy.
func NewProblem(table *PerformanceTable, functions []algo.PreferenceFunction, weights []float64) (*Problem, error) {
	if table == nil || table.N() == 0 {
		return nil, ErrEmptyTable
	}
	q := table.Q()
	if len(functions) != q {
		return nil, fmt.Errorf("%w: %d preference functions for %d criteria", ErrCountMismatch, len(functions), q)
	}
	if len(weights) != q {
		return nil, fmt.Errorf("%w: %d weights for %d criteria", ErrCountMismatch, len(weights), q)
	}

	var total float64
	for k, w := range weights {
		if !isFinite(w) || w < 0 {
			return nil, fmt.Errorf("%w: criterion %q has weight %v", ErrInvalidWeight, table.CriterionName(k), w)
		}
		total += w
	}
	if total == 0 {
		return nil, ErrZeroWeights
	}

	for k, fn := range functions {
		if fn == nil {
			return nil, fmt.Errorf("criterion %q has no preference function", table.CriterionName(k))
		}
		if err := fn.Validate(); err != nil {
			return nil, fmt.Errorf("criterion %q: %w", table.CriterionName(k), err)
		}
	}

	normalized := make([]float64, q)
	for k, w := range weights {
		normalized[k] = w / total
	}

	p := &Problem{
		table:     table,
		functions: slices.Clone(functions),
		weights:   normalized,
		orders:    make(map[int][]int),
	}
	for k := range q {
		p.refreshOrder(k)
	}
	return p, nil
}

// refreshOrder recomputes the sort cache entry of criterion k only.
func (p *Problem) refreshOrder(k int) {
	if !algo.UsesFastPath(p.functions[k]) {
		delete(p.orders, k)
		return
	}
	col, _ := p.table.Column(k)
	p.orders[k] = algo.Argsort(col)
}

// N returns the number of alternatives.
func (p *Problem) N() int { return p.table.N() }

// Q returns the number of criteria.
func (p *Problem) Q() int { return p.table.Q() }

// Table returns the underlying table. Mutate it only through the Problem.
func (p *Problem) Table() *PerformanceTable { return p.table }

// Weight returns the normalized weight of criterion k.
func (p *Problem) Weight(k int) (float64, bool) {
	if k < 0 || k >= len(p.weights) {
		return 0, false
	}
	return p.weights[k], true
}

// Weights returns a copy of the normalized weights.
func (p *Problem) Weights() []float64 { return slices.Clone(p.weights) }

// Function returns the preference function of criterion k.
func (p *Problem) Function(k int) (algo.PreferenceFunction, bool) {
	if k < 0 || k >= len(p.functions) {
		return nil, false
	}
	return p.functions[k], true
}

// CriterionName returns the display name of criterion k.
func (p *Problem) CriterionName(k int) string { return p.table.CriterionName(k) }

// Direction returns the optimization direction of criterion k.
func (p *Problem) Direction(k int) schema.Direction { return p.table.Direction(k) }

// AlternativeName returns the name of alternative i.
func (p *Problem) AlternativeName(i int) string { return p.table.AlternativeName(i) }

// Performance returns the stored value of alternative i on criterion k.
func (p *Problem) Performance(k, i int) (float64, bool) { return p.table.Performance(i, k) }

// ShiftPerformance adds delta to alternative i on criterion k and recomputes
// that criterion's sort order.
func (p *Problem) ShiftPerformance(k, i int, delta float64) error {
	if err := p.table.ShiftPerformance(i, k, delta); err != nil {
		return err
	}
	p.refreshOrder(k)
	return nil
}

// SetPerformance overwrites alternative i on criterion k and recomputes that
// criterion's sort order.
func (p *Problem) SetPerformance(k, i int, v float64) error {
	if err := p.table.SetPerformance(i, k, v); err != nil {
		return err
	}
	p.refreshOrder(k)
	return nil
}

// FlipDirection negates criterion k in place, toggles its direction and
// recomputes its sort order.
func (p *Problem) FlipDirection(k int) error {
	if err := p.table.FlipDirection(k); err != nil {
		return err
	}
	p.refreshOrder(k)
	return nil
}

// SortedPerformances returns criterion k's stored values in ascending order.
func (p *Problem) SortedPerformances(k int) ([]float64, bool) {
	col, ok := p.table.Column(k)
	if !ok {
		return nil, false
	}
	order, cached := p.orders[k]
	if !cached {
		slices.Sort(col)
		return col, true
	}
	sorted := make([]float64, len(order))
	for r, i := range order {
		sorted[r] = col[i]
	}
	return sorted, true
}

// SmallestGap returns the smallest non-zero difference between two sorted
// performances of criterion k. It is a lower bound hint for a VShape P.
// ok is false when the column has fewer than two distinct values.
func (p *Problem) SmallestGap(k int) (float64, bool) {
	sorted, ok := p.SortedPerformances(k)
	if !ok {
		return 0, false
	}
	gap := math.Inf(1)
	for r := 1; r < len(sorted); r++ {
		if d := sorted[r] - sorted[r-1]; d > 0 && d < gap {
			gap = d
		}
	}
	if math.IsInf(gap, 1) {
		return 0, false
	}
	return gap, true
}

// UnicriterionFlows computes the positive and negative flows of criterion k alone.
func (p *Problem) UnicriterionFlows(k int) (pos, neg []float64, ok bool) {
	col, ok := p.table.Column(k)
	if !ok {
		return nil, nil, false
	}
	pos, neg = algo.UnicriterionFlows(col, p.functions[k], p.orders[k])
	return pos, neg, true
}

// VerifyCriterion returns the largest deviation between the sliding-window
// flows and the pairwise reference on criterion k.
func (p *Problem) VerifyCriterion(k int) (float64, bool) {
	col, ok := p.table.Column(k)
	if !ok {
		return 0, false
	}
	return algo.MaxDeviation(col, p.functions[k], p.orders[k]), true
}

// NetPreferenceMatrix returns the weighted pairwise net preference
// Σ_k w_k · SymNormalize_k(f_k(a) - f_k(b)) as row-major rows.
func (p *Problem) NetPreferenceMatrix() [][]float64 {
	n := p.N()
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, n)
	}
	for k := range p.Q() {
		col, _ := p.table.Column(k)
		m := algo.NetPreferenceMatrix(col, p.functions[k])
		for i := range n {
			for j := range n {
				out[i][j] += p.weights[k] * m.At(i, j)
			}
		}
	}
	return out
}
