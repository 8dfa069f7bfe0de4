package algo

import (
	"math"
	"testing"

	"github.com/huangsam/outrank/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		fn       PreferenceFunction
		d        float64
		expected float64
	}{
		{"usual positive", Usual{}, 0.1, 1},
		{"usual zero", Usual{}, 0, 0},
		{"usual negative", Usual{}, -3, 0},
		{"ushape below", UShape{P: 2}, 1.99, 0},
		{"ushape at threshold", UShape{P: 2}, 2, 1},
		{"ushape above", UShape{P: 2}, 5, 1},
		{"vshape negative", VShape{P: 4}, -1, 0},
		{"vshape zero", VShape{P: 4}, 0, 0},
		{"vshape ramp", VShape{P: 4}, 1, 0.25},
		{"vshape at threshold", VShape{P: 4}, 4, 1},
		{"vshape above", VShape{P: 4}, 10, 1},
		{"linear below q", Linear{Q: 1, P: 3}, 0.5, 0},
		{"linear at q", Linear{Q: 1, P: 3}, 1, 0},
		{"linear ramp", Linear{Q: 1, P: 3}, 2, 0.5},
		{"linear at p", Linear{Q: 1, P: 3}, 3, 1},
		{"linear degenerate below", Linear{Q: 2, P: 2}, 1.5, 0},
		{"linear degenerate at", Linear{Q: 2, P: 2}, 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, tt.fn.Normalize(tt.d), 1e-12)
		})
	}
}

func TestSymNormalize(t *testing.T) {
	fns := []PreferenceFunction{Usual{}, UShape{P: 1}, VShape{P: 2}, Linear{Q: 0.5, P: 2}}
	for _, fn := range fns {
		t.Run(fn.String(), func(t *testing.T) {
			for _, d := range []float64{-3, -1.5, -0.7, 0, 0.7, 1.5, 3} {
				expected := fn.Normalize(math.Abs(d))
				if d < 0 {
					expected = -expected
				}
				if d == 0 {
					expected = 0
				}
				assert.InDelta(t, expected, fn.SymNormalize(d), 1e-12, "d=%v", d)
				assert.InDelta(t, -fn.SymNormalize(d), fn.SymNormalize(-d), 1e-12, "odd symmetry at d=%v", d)
			}
		})
	}
}

func TestRampRouting(t *testing.T) {
	tests := []struct {
		fn   PreferenceFunction
		kind schema.FunctionKind
		fast bool
		q, p float64
	}{
		{Usual{}, schema.UsualKind, false, 0, 0},
		{UShape{P: 3}, schema.UShapeKind, false, 0, 0},
		{VShape{P: 3}, schema.VShapeKind, true, 0, 3},
		{Linear{Q: 1, P: 3}, schema.LinearKind, true, 1, 3},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.fn.Kind())
			q, p, ok := tt.fn.Ramp()
			assert.Equal(t, tt.fast, ok)
			assert.Equal(t, tt.fast, UsesFastPath(tt.fn))
			if ok {
				assert.Equal(t, tt.q, q)
				assert.Equal(t, tt.p, p)
			}
		})
	}
}

func TestConstructors(t *testing.T) {
	_, err := NewLinear(1, 3)
	assert.NoError(t, err)

	_, err = NewLinear(2, 2)
	assert.NoError(t, err, "q == p is a valid degenerate ramp")

	_, err = NewLinear(3, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidThreshold)

	_, err = NewVShape(-1)
	assert.ErrorIs(t, err, ErrInvalidThreshold)

	_, err = NewVShape(0)
	assert.ErrorIs(t, err, ErrInvalidThreshold, "a zero p would prefer ties")

	_, err = NewUShape(math.NaN())
	assert.ErrorIs(t, err, ErrInvalidThreshold)

	_, err = NewLinear(-0.5, 1)
	assert.ErrorIs(t, err, ErrInvalidThreshold)

	_, err = NewVShape(math.Inf(1))
	assert.ErrorIs(t, err, ErrInvalidThreshold)

	assert.NoError(t, Usual{}.Validate())
}

func TestString(t *testing.T) {
	assert.Equal(t, "Usual", Usual{}.String())
	assert.Equal(t, "UShape(p=2)", UShape{P: 2}.String())
	assert.Equal(t, "VShape(p=0.5)", VShape{P: 0.5}.String())
	assert.Equal(t, "Linear(q=1, p=3)", Linear{Q: 1, P: 3}.String())
}
