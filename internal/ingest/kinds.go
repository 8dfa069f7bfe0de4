package ingest

import (
	"fmt"
	"strings"

	"github.com/huangsam/outrank/core/algo"
	"github.com/huangsam/outrank/schema"
)

// functionAliases maps every accepted spelling to its canonical kind.
var functionAliases = map[string]schema.FunctionKind{
	"usual":   schema.UsualKind,
	"ushape":  schema.UShapeKind,
	"u-shape": schema.UShapeKind,
	"u":       schema.UShapeKind,
	"vshape":  schema.VShapeKind,
	"v-shape": schema.VShapeKind,
	"v":       schema.VShapeKind,
	"linear":  schema.LinearKind,
	"l":       schema.LinearKind,
}

// ParseFunctionKind resolves a preference function name, case-insensitively.
func ParseFunctionKind(s string) (schema.FunctionKind, error) {
	kind, ok := functionAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("unknown preference function %q (expected usual, ushape, vshape or linear)", s)
	}
	return kind, nil
}

// ParseDirection resolves an optimization direction. Empty means max.
func ParseDirection(s string) (schema.Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "max", "maximize":
		return schema.MaxDirection, nil
	case "min", "minimize":
		return schema.MinDirection, nil
	default:
		return "", fmt.Errorf("unknown direction %q (expected max or min)", s)
	}
}

// NewFunction builds a validated preference function of the given kind.
// Thresholds a kind does not use are ignored.
func NewFunction(kind schema.FunctionKind, q, p float64) (algo.PreferenceFunction, error) {
	switch kind {
	case schema.UsualKind:
		return algo.Usual{}, nil
	case schema.UShapeKind:
		return algo.NewUShape(p)
	case schema.VShapeKind:
		return algo.NewVShape(p)
	case schema.LinearKind:
		return algo.NewLinear(q, p)
	default:
		return nil, fmt.Errorf("unknown preference function %q", kind)
	}
}

// Functions builds the preference function of every criterion in the problem.
func Functions(spec *schema.ProblemSpec) ([]algo.PreferenceFunction, error) {
	fns := make([]algo.PreferenceFunction, len(spec.Criteria))
	for k, c := range spec.Criteria {
		fn, err := NewFunction(c.Function, c.Q, c.P)
		if err != nil {
			return nil, fmt.Errorf("criterion %q: %w", c.Name, err)
		}
		fns[k] = fn
	}
	return fns, nil
}
