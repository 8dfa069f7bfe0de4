package algo

import (
	"cmp"
	"slices"
)

// RankByNetFlow returns alternative indices sorted by descending net flow.
// Equal net flows keep ascending index order.
func RankByNetFlow(net []float64) []int {
	ranked := make([]int, len(net))
	for i := range ranked {
		ranked[i] = i
	}
	slices.SortStableFunc(ranked, func(a, b int) int {
		return cmp.Compare(net[b], net[a])
	})
	return ranked
}

// TopN returns at most limit leading entries of ranked. A non-positive limit keeps all.
func TopN[T any](ranked []T, limit int) []T {
	if limit > 0 && len(ranked) > limit {
		return ranked[:limit]
	}
	return ranked
}
