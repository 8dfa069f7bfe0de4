package algo

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const flowTolerance = 1e-9

func assertFlowsInDelta(t *testing.T, expected, actual []float64, msgAndArgs ...any) {
	t.Helper()
	require.Len(t, actual, len(expected), msgAndArgs...)
	for i := range expected {
		assert.InDelta(t, expected[i], actual[i], flowTolerance, msgAndArgs...)
	}
}

func TestUnicriterionFlows_KnownValues(t *testing.T) {
	tests := []struct {
		name        string
		perf        []float64
		fn          PreferenceFunction
		expectedPos []float64
		expectedNeg []float64
	}{
		{
			name:        "vshape p=3",
			perf:        []float64{3, 2, 2},
			fn:          VShape{P: 3},
			expectedPos: []float64{1.0 / 3, 0, 0},
			expectedNeg: []float64{0, 1.0 / 6, 1.0 / 6},
		},
		{
			name:        "linear q=1 p=3",
			perf:        []float64{1, 4, 3},
			fn:          Linear{Q: 1, P: 3},
			expectedPos: []float64{0, 0.5, 0.25},
			expectedNeg: []float64{0.75, 0, 0},
		},
		{
			name:        "usual all equal",
			perf:        []float64{1, 1, 1},
			fn:          Usual{},
			expectedPos: []float64{0, 0, 0},
			expectedNeg: []float64{0, 0, 0},
		},
		{
			name:        "usual strict order",
			perf:        []float64{1, 3, 2},
			fn:          Usual{},
			expectedPos: []float64{0, 1, 0.5},
			expectedNeg: []float64{1, 0, 0.5},
		},
		{
			name:        "ushape step",
			perf:        []float64{0, 1, 4},
			fn:          UShape{P: 2},
			expectedPos: []float64{0, 0, 1},
			expectedNeg: []float64{0.5, 0.5, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, neg := UnicriterionFlows(tt.perf, tt.fn, nil)
			assertFlowsInDelta(t, tt.expectedPos, pos, "positive")
			assertFlowsInDelta(t, tt.expectedNeg, neg, "negative")
		})
	}
}

func TestFastFlows_MatchesSlowFlows(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 7))
	integerThresholds := []float64{0, 0.5, 1, 2, 2.5, 3}

	for trial := range 2000 {
		n := 1 + rng.IntN(40)
		integer := trial%2 == 0

		perf := make([]float64, n)
		for i := range perf {
			if integer {
				perf[i] = float64(rng.IntN(11))
			} else {
				perf[i] = rng.Float64()*100 - 50
			}
		}

		var fn PreferenceFunction
		pickThreshold := func(scale float64) float64 {
			if integer {
				return integerThresholds[rng.IntN(len(integerThresholds))]
			}
			return rng.Float64() * scale
		}
		if rng.IntN(2) == 0 {
			fn = VShape{P: pickThreshold(20)}
		} else {
			q := pickThreshold(10)
			width := pickThreshold(10)
			if rng.IntN(4) == 0 {
				width = 0
			}
			fn = Linear{Q: q, P: q + width}
		}

		order := Argsort(perf)
		q, p, ok := fn.Ramp()
		require.True(t, ok)
		fastPos, fastNeg := FastFlows(perf, order, q, p)
		slowPos, slowNeg := SlowFlows(perf, fn)
		assertFlowsInDelta(t, slowPos, fastPos, "trial %d positive %s %v", trial, fn, perf)
		assertFlowsInDelta(t, slowNeg, fastNeg, "trial %d negative %s %v", trial, fn, perf)
	}
}

func TestFastFlows_DegenerateMatchesUShape(t *testing.T) {
	perf := []float64{1, 4, 2, 2, 7}
	pos, neg := UnicriterionFlows(perf, Linear{Q: 2, P: 2}, nil)
	ushapePos, ushapeNeg := SlowFlows(perf, UShape{P: 2})

	assertFlowsInDelta(t, ushapePos, pos)
	assertFlowsInDelta(t, ushapeNeg, neg)
	assertFlowsInDelta(t, []float64{0, 0.75, 0, 0, 1}, pos)
	assertFlowsInDelta(t, []float64{0.5, 0.25, 0.5, 0.5, 0}, neg)
}

func TestFastFlows_ZeroThresholdExcludesSelf(t *testing.T) {
	perf := []float64{5, 5, 1}
	pos, neg := UnicriterionFlows(perf, Linear{Q: 0, P: 0}, nil)

	// A ramp collapsed to d >= 0 counts ties as full preference in both
	// directions. The anchor itself never does.
	assertFlowsInDelta(t, []float64{1, 1, 0}, pos)
	assertFlowsInDelta(t, []float64{0.5, 0.5, 1}, neg)
	for i := range perf {
		assert.LessOrEqual(t, pos[i], 1.0)
		assert.LessOrEqual(t, neg[i], 1.0)
	}
}

func TestFastFlows_LargeOffset(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	perf := make([]float64, 2000)
	for i := range perf {
		perf[i] = 1e9 + rng.Float64()*10
	}

	for _, fn := range []PreferenceFunction{Linear{Q: 0.5, P: 3}, VShape{P: 2}} {
		assert.LessOrEqual(t, MaxDeviation(perf, fn, nil), flowTolerance, fn.String())
	}

	shifted := make([]float64, len(perf))
	for i, v := range perf {
		shifted[i] = v - 1e9
	}
	pos, neg := UnicriterionFlows(perf, Linear{Q: 0.5, P: 3}, nil)
	wantPos, wantNeg := UnicriterionFlows(shifted, Linear{Q: 0.5, P: 3}, nil)
	assertFlowsInDelta(t, wantPos, pos)
	assertFlowsInDelta(t, wantNeg, neg)
}

func TestFlows_SmallInputs(t *testing.T) {
	for _, fn := range []PreferenceFunction{Usual{}, UShape{P: 1}, VShape{P: 1}, Linear{Q: 0, P: 1}} {
		pos, neg := UnicriterionFlows(nil, fn, nil)
		assert.Empty(t, pos)
		assert.Empty(t, neg)

		pos, neg = UnicriterionFlows([]float64{42}, fn, nil)
		assert.Equal(t, []float64{0}, pos, fn.String())
		assert.Equal(t, []float64{0}, neg, fn.String())
	}
}

func TestFlows_DirectionFlipSwapsFlows(t *testing.T) {
	perf := []float64{3, 1, 4, 1, 5, 9, 2, 6}
	flipped := make([]float64, len(perf))
	for i, v := range perf {
		flipped[i] = -v
	}

	for _, fn := range []PreferenceFunction{Usual{}, UShape{P: 2}, VShape{P: 3}, Linear{Q: 1, P: 3}} {
		t.Run(fn.String(), func(t *testing.T) {
			pos, neg := UnicriterionFlows(perf, fn, nil)
			flipPos, flipNeg := UnicriterionFlows(flipped, fn, nil)
			assertFlowsInDelta(t, neg, flipPos)
			assertFlowsInDelta(t, pos, flipNeg)
		})
	}
}

func TestFlows_Bounds(t *testing.T) {
	perf := []float64{0.5, 8, 3.25, 3.25, -2, 11}
	for _, fn := range []PreferenceFunction{Usual{}, UShape{P: 0}, VShape{P: 4}, Linear{Q: 1, P: 6}} {
		pos, neg := UnicriterionFlows(perf, fn, nil)
		for i := range perf {
			assert.GreaterOrEqual(t, pos[i], 0.0)
			assert.LessOrEqual(t, pos[i], 1.0+flowTolerance)
			assert.GreaterOrEqual(t, neg[i], 0.0)
			assert.LessOrEqual(t, neg[i], 1.0+flowTolerance)
		}
	}
}

func TestArgsort(t *testing.T) {
	assert.Equal(t, []int{1, 3, 2, 0, 4}, Argsort([]float64{5, 1, 3, 1, 9}))
	assert.Equal(t, []int{0, 1, 2}, Argsort([]float64{2, 2, 2}), "stable on ties")
	assert.Empty(t, Argsort(nil))
}

func TestNetPreferenceMatrix(t *testing.T) {
	perf := []float64{3, 2, 0}
	m := NetPreferenceMatrix(perf, VShape{P: 2})
	require.NotNil(t, m)

	rows, cols := m.Dims()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 3, cols)

	assert.InDelta(t, 0.5, m.At(0, 1), flowTolerance)
	assert.InDelta(t, 1.0, m.At(0, 2), flowTolerance)
	assert.InDelta(t, -0.5, m.At(1, 0), flowTolerance)
	assert.InDelta(t, 1.0, m.At(1, 2), flowTolerance)
	for i := range 3 {
		assert.Zero(t, m.At(i, i))
		for j := range 3 {
			assert.InDelta(t, -m.At(i, j), m.At(j, i), flowTolerance)
		}
	}

	assert.Nil(t, NetPreferenceMatrix(nil, Usual{}))
}

func TestMaxDeviation(t *testing.T) {
	perf := []float64{1, 7, 3, 3, 9, 4}
	assert.Less(t, MaxDeviation(perf, Linear{Q: 1, P: 4}, nil), flowTolerance)
	assert.Zero(t, MaxDeviation(perf, Usual{}, nil))
}
