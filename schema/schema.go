// Package schema has models and constants shared by all parts of outrank.
package schema

// ProblemSpec is the serialized form of a ranking problem.
// It is what problem files decode into before the core model is built.
type ProblemSpec struct {
	Name         string            `json:"name,omitempty" yaml:"name,omitempty"`
	Criteria     []CriterionSpec   `json:"criteria" yaml:"criteria"`
	Alternatives []AlternativeSpec `json:"alternatives" yaml:"alternatives"`
}

// CriterionSpec describes one criterion and its preference function.
type CriterionSpec struct {
	Name      string       `json:"name" yaml:"name"`
	Direction Direction    `json:"direction,omitempty" yaml:"direction,omitempty"`
	Weight    float64      `json:"weight" yaml:"weight"`
	Function  FunctionKind `json:"function" yaml:"function"`
	Q         float64      `json:"q,omitempty" yaml:"q,omitempty"` // indifference threshold
	P         float64      `json:"p,omitempty" yaml:"p,omitempty"` // preference threshold
}

// AlternativeSpec is one row of the performance table.
type AlternativeSpec struct {
	Name         string    `json:"name" yaml:"name"`
	Performances []float64 `json:"performances" yaml:"performances"`
}

// CriteriaNames returns the criterion names in order.
func (p *ProblemSpec) CriteriaNames() []string {
	names := make([]string, len(p.Criteria))
	for i, c := range p.Criteria {
		names[i] = c.Name
	}
	return names
}

// Weights returns the raw criterion weights in order.
func (p *ProblemSpec) Weights() []float64 {
	weights := make([]float64, len(p.Criteria))
	for i, c := range p.Criteria {
		weights[i] = c.Weight
	}
	return weights
}

// Directions returns the criterion directions in order, defaulting to max.
func (p *ProblemSpec) Directions() []Direction {
	dirs := make([]Direction, len(p.Criteria))
	for i, c := range p.Criteria {
		dirs[i] = c.Direction
		if dirs[i] == "" {
			dirs[i] = MaxDirection
		}
	}
	return dirs
}
