package core

import (
	"slices"

	"github.com/huangsam/outrank/core/algo"
)

// Result is the outcome of one Solve call. It stores positive and negative
// flows only; net flows and the ranking are derived on demand.
type Result struct {
	positive []float64
	negative []float64
	critPos  [][]float64
	critNeg  [][]float64
	weights  []float64
}

// N returns the number of alternatives.
func (r *Result) N() int { return len(r.positive) }

// Q returns the number of criteria.
func (r *Result) Q() int { return len(r.critPos) }

// NetFlow returns positive(i) - negative(i).
func (r *Result) NetFlow(i int) (float64, bool) {
	if i < 0 || i >= len(r.positive) {
		return 0, false
	}
	return r.positive[i] - r.negative[i], true
}

// NetFlows returns the net flow of every alternative.
func (r *Result) NetFlows() []float64 {
	net := make([]float64, len(r.positive))
	for i := range net {
		net[i] = r.positive[i] - r.negative[i]
	}
	return net
}

// Positive returns a copy of the aggregated positive flows.
func (r *Result) Positive() []float64 { return slices.Clone(r.positive) }

// Negative returns a copy of the aggregated negative flows.
func (r *Result) Negative() []float64 { return slices.Clone(r.negative) }

// CriterionPositive returns a copy of criterion k's unweighted positive flows.
func (r *Result) CriterionPositive(k int) ([]float64, bool) {
	if k < 0 || k >= len(r.critPos) {
		return nil, false
	}
	return slices.Clone(r.critPos[k]), true
}

// CriterionNegative returns a copy of criterion k's unweighted negative flows.
func (r *Result) CriterionNegative(k int) ([]float64, bool) {
	if k < 0 || k >= len(r.critNeg) {
		return nil, false
	}
	return slices.Clone(r.critNeg[k]), true
}

// CriterionNetFlows returns criterion k's unweighted net flows.
func (r *Result) CriterionNetFlows(k int) ([]float64, bool) {
	if k < 0 || k >= len(r.critPos) {
		return nil, false
	}
	net := make([]float64, len(r.critPos[k]))
	for i := range net {
		net[i] = r.critPos[k][i] - r.critNeg[k][i]
	}
	return net, true
}

// RankedAlternatives returns alternative indices by descending net flow.
// Equal net flows keep ascending index order.
func (r *Result) RankedAlternatives() []int {
	return algo.RankByNetFlow(r.NetFlows())
}

// IsPreferred reports whether a strictly outranks b. Equal net flows are
// incomparable. Out of range indices are never preferred.
func (r *Result) IsPreferred(a, b int) bool {
	na, okA := r.NetFlow(a)
	nb, okB := r.NetFlow(b)
	return okA && okB && na > nb
}

// Contributions splits alternative i's net flow into weighted per-criterion
// parts. Their sum equals NetFlow(i) up to rounding.
func (r *Result) Contributions(i int) ([]float64, bool) {
	if i < 0 || i >= len(r.positive) {
		return nil, false
	}
	out := make([]float64, len(r.critPos))
	for k := range out {
		out[k] = r.weights[k] * (r.critPos[k][i] - r.critNeg[k][i])
	}
	return out, true
}
