package core

import (
	"math/rand/v2"
	"testing"

	"github.com/huangsam/outrank/core/algo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertFlowsInDelta(t *testing.T, expected, actual []float64, msgAndArgs ...any) {
	t.Helper()
	require.Len(t, actual, len(expected), msgAndArgs...)
	for i := range expected {
		assert.InDelta(t, expected[i], actual[i], flowTolerance, msgAndArgs...)
	}
}

func TestSolve_Scenarios(t *testing.T) {
	tests := []struct {
		name        string
		rows        [][]float64
		fns         []algo.PreferenceFunction
		weights     []float64
		expectedPos []float64
		expectedNeg []float64
		expectedNet []float64
	}{
		{
			name:        "vshape and linear",
			rows:        [][]float64{{3, 1}, {2, 4}, {2, 3}},
			fns:         []algo.PreferenceFunction{algo.VShape{P: 3}, algo.Linear{Q: 1, P: 3}},
			weights:     []float64{3, 7},
			expectedPos: []float64{0.1, 0.35, 0.175},
			expectedNeg: []float64{0.525, 0.05, 0.05},
			expectedNet: []float64{-0.425, 0.3, 0.125},
		},
		{
			name:        "two vshapes",
			rows:        [][]float64{{3, 1}, {2, 4}, {0, 5}},
			fns:         []algo.PreferenceFunction{algo.VShape{P: 2}, algo.VShape{P: 3}},
			weights:     []float64{1, 1},
			expectedPos: []float64{0.375, 0.5, 1.0 / 3},
			expectedNeg: []float64{0.5, 0.5 / 2.4, 0.5},
			expectedNet: []float64{-0.125, 0.7 / 2.4, -1.0 / 6},
		},
		{
			name:        "usual all equal",
			rows:        [][]float64{{1}, {1}, {1}},
			fns:         []algo.PreferenceFunction{algo.Usual{}},
			weights:     []float64{1},
			expectedPos: []float64{0, 0, 0},
			expectedNeg: []float64{0, 0, 0},
			expectedNet: []float64{0, 0, 0},
		},
		{
			name:        "degenerate linear equals ushape",
			rows:        [][]float64{{1}, {4}},
			fns:         []algo.PreferenceFunction{algo.Linear{Q: 2, P: 2}},
			weights:     []float64{1},
			expectedPos: []float64{0, 1},
			expectedNeg: []float64{1, 0},
			expectedNet: []float64{-1, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestProblem(t, tt.rows, tt.fns, tt.weights)
			result := p.Solve()
			assertFlowsInDelta(t, tt.expectedPos, result.Positive(), "positive")
			assertFlowsInDelta(t, tt.expectedNeg, result.Negative(), "negative")
			assertFlowsInDelta(t, tt.expectedNet, result.NetFlows(), "net")
		})
	}
}

func TestSolve_DegenerateLinearMatchesUShape(t *testing.T) {
	rows := [][]float64{{1}, {4}, {2}, {2}, {7}, {3.5}}
	linear := newTestProblem(t, rows, []algo.PreferenceFunction{algo.Linear{Q: 2, P: 2}}, []float64{1}).Solve()
	ushape := newTestProblem(t, rows, []algo.PreferenceFunction{algo.UShape{P: 2}}, []float64{1}).Solve()

	assertFlowsInDelta(t, ushape.Positive(), linear.Positive())
	assertFlowsInDelta(t, ushape.Negative(), linear.Negative())
}

func randomProblem(t *testing.T, rng *rand.Rand, n, q int) *Problem {
	t.Helper()
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, q)
		for k := range rows[i] {
			rows[i][k] = float64(rng.IntN(50))
		}
	}
	fns := make([]algo.PreferenceFunction, q)
	weights := make([]float64, q)
	for k := range fns {
		switch k % 4 {
		case 0:
			fns[k] = algo.Usual{}
		case 1:
			fns[k] = algo.UShape{P: float64(rng.IntN(5))}
		case 2:
			fns[k] = algo.VShape{P: float64(1 + rng.IntN(10))}
		default:
			q := float64(rng.IntN(3))
			fns[k] = algo.Linear{Q: q, P: q + float64(rng.IntN(6))}
		}
		weights[k] = rng.Float64() + 0.01
	}
	return newTestProblem(t, rows, fns, weights)
}

func TestSolveParallel_MatchesSolve(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 11))
	for _, workers := range []int{0, 1, 3, 16} {
		p := randomProblem(t, rng, 60, 9)
		sequential := p.Solve()
		parallel := p.SolveParallel(workers)

		assert.Equal(t, sequential.Positive(), parallel.Positive(), "workers=%d", workers)
		assert.Equal(t, sequential.Negative(), parallel.Negative(), "workers=%d", workers)
		assert.Equal(t, sequential.RankedAlternatives(), parallel.RankedAlternatives(), "workers=%d", workers)
	}
}

func TestSolve_Properties(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 8))
	for range 50 {
		p := randomProblem(t, rng, 1+rng.IntN(30), 1+rng.IntN(8))
		result := p.Solve()

		pos, neg, net := result.Positive(), result.Negative(), result.NetFlows()
		for i := range net {
			assert.Equal(t, pos[i]-neg[i], net[i])
			v, ok := result.NetFlow(i)
			require.True(t, ok)
			assert.Equal(t, net[i], v)
		}

		ranked := result.RankedAlternatives()
		assert.ElementsMatch(t, indices(p.N()), ranked)
		for r := 1; r < len(ranked); r++ {
			assert.GreaterOrEqual(t, net[ranked[r-1]], net[ranked[r]])
		}
	}
}

func TestSolve_SingleAlternative(t *testing.T) {
	p := newTestProblem(t, [][]float64{{4, 2}}, []algo.PreferenceFunction{algo.VShape{P: 1}, algo.Usual{}}, []float64{1, 1})
	result := p.Solve()
	assert.Equal(t, []float64{0}, result.NetFlows())
	assert.Equal(t, []int{0}, result.RankedAlternatives())
}

func indices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
