package core

import (
	"math"
	"testing"

	"github.com/huangsam/outrank/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAlternatives() []Alternative {
	return []Alternative{
		{Name: "A", Performances: []float64{3, 1}},
		{Name: "B", Performances: []float64{2, 4}},
		{Name: "C", Performances: []float64{2, 3}},
	}
}

func TestNewPerformanceTable(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		table, err := NewPerformanceTable(sampleAlternatives())
		require.NoError(t, err)
		assert.Equal(t, 3, table.N())
		assert.Equal(t, 2, table.Q())
		assert.Equal(t, []string{"Criterion 1", "Criterion 2"}, table.CriteriaNames())
		assert.Equal(t, schema.MaxDirection, table.Direction(0))
		assert.Equal(t, []string{"A", "B", "C"}, table.AlternativeNames())
	})

	t.Run("options", func(t *testing.T) {
		table, err := NewPerformanceTable(sampleAlternatives(),
			WithCriteriaNames("price", ""),
			WithDirections(schema.MinDirection, schema.MaxDirection))
		require.NoError(t, err)
		assert.Equal(t, "price", table.CriterionName(0))
		assert.Equal(t, "Criterion 2", table.CriterionName(1))
		assert.Equal(t, schema.MinDirection, table.Direction(0))

		stored, ok := table.Performance(0, 0)
		require.True(t, ok)
		assert.Equal(t, -3.0, stored)
		shown, _ := table.DisplayPerformance(0, 0)
		assert.Equal(t, 3.0, shown)
	})

	t.Run("copies input", func(t *testing.T) {
		alts := sampleAlternatives()
		table, err := NewPerformanceTable(alts)
		require.NoError(t, err)
		alts[0].Performances[0] = 100
		v, _ := table.Performance(0, 0)
		assert.Equal(t, 3.0, v)
	})

	t.Run("unnamed alternatives", func(t *testing.T) {
		table, err := NewPerformanceTable([]Alternative{{Performances: []float64{1}}, {Name: "x", Performances: []float64{2}}})
		require.NoError(t, err)
		assert.Equal(t, []string{"A1", "x"}, table.AlternativeNames())
	})
}

func TestNewPerformanceTable_Errors(t *testing.T) {
	tests := []struct {
		name string
		alts []Alternative
		opts []TableOption
		want error
	}{
		{"empty", nil, nil, ErrEmptyTable},
		{"ragged", []Alternative{{Name: "a", Performances: []float64{1, 2}}, {Name: "b", Performances: []float64{1}}}, nil, ErrRaggedTable},
		{"nan", []Alternative{{Name: "a", Performances: []float64{math.NaN()}}}, nil, ErrNonFinite},
		{"inf", []Alternative{{Name: "a", Performances: []float64{math.Inf(-1)}}}, nil, ErrNonFinite},
		{"names", sampleAlternatives(), []TableOption{WithCriteriaNames("only one")}, ErrCountMismatch},
		{"directions", sampleAlternatives(), []TableOption{WithDirections(schema.MaxDirection)}, ErrCountMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := NewPerformanceTable(tt.alts, tt.opts...)
			assert.Nil(t, table)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewPerformanceTableFromMatrix(t *testing.T) {
	table, err := NewPerformanceTableFromMatrix([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "A2"}, table.AlternativeNames())

	col, ok := table.Column(1)
	require.True(t, ok)
	assert.Equal(t, []float64{2, 4}, col)

	_, err = NewPerformanceTableFromMatrix(nil)
	assert.ErrorIs(t, err, ErrEmptyTable)
}

func TestPerformanceTable_Mutation(t *testing.T) {
	table, err := NewPerformanceTable(sampleAlternatives())
	require.NoError(t, err)

	require.NoError(t, table.SetPerformance(1, 0, 7))
	v, _ := table.Performance(1, 0)
	assert.Equal(t, 7.0, v)

	require.NoError(t, table.ShiftPerformance(1, 0, -2.5))
	v, _ = table.Performance(1, 0)
	assert.Equal(t, 4.5, v)

	assert.ErrorIs(t, table.SetPerformance(3, 0, 1), ErrIndexOutOfRange)
	assert.ErrorIs(t, table.SetPerformance(0, -1, 1), ErrIndexOutOfRange)
	assert.ErrorIs(t, table.SetPerformance(0, 0, math.NaN()), ErrNonFinite)
	assert.ErrorIs(t, table.ShiftPerformance(0, 0, math.Inf(1)), ErrNonFinite)
	assert.ErrorIs(t, table.ShiftPerformance(0, 5, 1), ErrIndexOutOfRange)
}

func TestPerformanceTable_FlipDirection(t *testing.T) {
	table, err := NewPerformanceTable(sampleAlternatives())
	require.NoError(t, err)

	require.NoError(t, table.FlipDirection(1))
	col, _ := table.Column(1)
	assert.Equal(t, []float64{-1, -4, -3}, col)
	assert.Equal(t, schema.MinDirection, table.Direction(1))

	shown, _ := table.DisplayPerformance(1, 1)
	assert.Equal(t, 4.0, shown)

	require.NoError(t, table.FlipDirection(1))
	col, _ = table.Column(1)
	assert.Equal(t, []float64{1, 4, 3}, col)
	assert.Equal(t, schema.MaxDirection, table.Direction(1))

	assert.ErrorIs(t, table.FlipDirection(2), ErrIndexOutOfRange)
}

func TestPerformanceTable_Lookups(t *testing.T) {
	table, err := NewPerformanceTable(sampleAlternatives(), WithCriteriaNames("cost", "quality"))
	require.NoError(t, err)

	k, ok := table.CriterionIndex("quality")
	assert.True(t, ok)
	assert.Equal(t, 1, k)
	_, ok = table.CriterionIndex("speed")
	assert.False(t, ok)

	i, ok := table.AlternativeIndex("C")
	assert.True(t, ok)
	assert.Equal(t, 2, i)
	_, ok = table.AlternativeIndex("Z")
	assert.False(t, ok)

	_, ok = table.Performance(9, 0)
	assert.False(t, ok)
	_, ok = table.Column(2)
	assert.False(t, ok)
	assert.Empty(t, table.CriterionName(-1))
	assert.Empty(t, table.AlternativeName(3))
	assert.Empty(t, table.Direction(5))
}

func TestPerformanceTable_Clone(t *testing.T) {
	table, err := NewPerformanceTable(sampleAlternatives())
	require.NoError(t, err)

	clone := table.Clone()
	require.NoError(t, clone.SetPerformance(0, 0, 42))
	require.NoError(t, clone.FlipDirection(1))

	v, _ := table.Performance(0, 0)
	assert.Equal(t, 3.0, v)
	assert.Equal(t, schema.MaxDirection, table.Direction(1))
}
