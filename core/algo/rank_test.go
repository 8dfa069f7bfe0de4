package algo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRankByNetFlow(t *testing.T) {
	tests := []struct {
		name     string
		net      []float64
		expected []int
	}{
		{"distinct", []float64{-0.425, 0.3, 0.125}, []int{1, 2, 0}},
		{"ties keep index order", []float64{0.1, 0.5, 0.1, 0.5}, []int{1, 3, 0, 2}},
		{"all equal", []float64{0, 0, 0}, []int{0, 1, 2}},
		{"empty", nil, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RankByNetFlow(tt.net))
		})
	}
}

func TestTopN(t *testing.T) {
	ranked := []int{3, 1, 0, 2}
	assert.Equal(t, []int{3, 1}, TopN(ranked, 2))
	assert.Equal(t, ranked, TopN(ranked, 10))
	assert.Equal(t, ranked, TopN(ranked, 0))
}
