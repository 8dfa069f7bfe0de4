package algo

import (
	"cmp"
	"math"
	"slices"
)

// Argsort returns the indices of perf ordered by ascending performance.
// The sort is stable, so equal performances keep their index order.
func Argsort(perf []float64) []int {
	order := make([]int, len(perf))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(perf[a], perf[b])
	})
	return order
}

// UsesFastPath reports whether fn is routed to the sliding-window algorithm.
func UsesFastPath(fn PreferenceFunction) bool {
	_, _, ok := fn.Ramp()
	return ok
}

// UnicriterionFlows computes the positive and negative flows of one criterion.
// Ramp functions use FastFlows with the given ascending order (computed here
// when nil); every other function uses SlowFlows.
func UnicriterionFlows(perf []float64, fn PreferenceFunction, order []int) (pos, neg []float64) {
	q, p, ok := fn.Ramp()
	if !ok {
		return SlowFlows(perf, fn)
	}
	if order == nil {
		order = Argsort(perf)
	}
	return FastFlows(perf, order, q, p)
}

// MaxDeviation returns the largest absolute difference between the fast and
// the reference flows of a ramp criterion. It is zero for functions that
// already take the reference path.
func MaxDeviation(perf []float64, fn PreferenceFunction, order []int) float64 {
	if !UsesFastPath(fn) {
		return 0
	}
	fastPos, fastNeg := UnicriterionFlows(perf, fn, order)
	slowPos, slowNeg := SlowFlows(perf, fn)

	var worst float64
	for i := range perf {
		worst = max(worst, math.Abs(fastPos[i]-slowPos[i]), math.Abs(fastNeg[i]-slowNeg[i]))
	}
	return worst
}

