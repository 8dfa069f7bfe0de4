package schema_test

import (
	"testing"

	"github.com/huangsam/outrank/schema"
	"github.com/stretchr/testify/assert"
)

func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		name     string
		netFlow  float64
		expected string
	}{
		{"Strong Upper", 1.0, schema.StrongValue},
		{"Strong Lower", 0.5, schema.StrongValue},
		{"Favorable Upper", 0.49, schema.FavorableValue},
		{"Favorable Lower", 0.1, schema.FavorableValue},
		{"Neutral Upper", 0.099, schema.NeutralValue},
		{"Neutral Zero", 0.0, schema.NeutralValue},
		{"Neutral Lower", -0.099, schema.NeutralValue},
		{"Weak Boundary", -0.1, schema.WeakValue},
		{"Weak Lower", -1.0, schema.WeakValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, schema.GetPlainLabel(tt.netFlow))
		})
	}
}

func TestProblemSpecAccessors(t *testing.T) {
	spec := &schema.ProblemSpec{
		Criteria: []schema.CriterionSpec{
			{Name: "price", Direction: schema.MinDirection, Weight: 3},
			{Name: "comfort", Weight: 2},
		},
	}

	assert.Equal(t, []string{"price", "comfort"}, spec.CriteriaNames())
	assert.Equal(t, []float64{3, 2}, spec.Weights())
	assert.Equal(t, []schema.Direction{schema.MinDirection, schema.MaxDirection}, spec.Directions())
}

func TestDirectionOpposite(t *testing.T) {
	assert.Equal(t, schema.MinDirection, schema.MaxDirection.Opposite())
	assert.Equal(t, schema.MaxDirection, schema.MinDirection.Opposite())
	assert.Equal(t, schema.MinDirection, schema.Direction("").Opposite())
}
