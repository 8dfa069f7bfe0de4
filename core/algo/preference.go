// Package algo has the preference functions and the flow algorithms of PROMETHEE II.
package algo

import (
	"errors"
	"fmt"
	"math"

	"github.com/huangsam/outrank/schema"
)

// ErrInvalidThreshold is returned when a preference function has unusable thresholds.
var ErrInvalidThreshold = errors.New("invalid preference threshold")

// PreferenceFunction maps a performance difference d = f(a) - f(b) to a
// preference intensity in [0, 1].
//
// The set of implementations is closed: Usual, UShape, VShape and Linear.
// Each one decides through Ramp whether the sliding-window algorithm applies.
type PreferenceFunction interface {
	// Kind returns the function family.
	Kind() schema.FunctionKind

	// Normalize returns the one-directional preference intensity for d.
	Normalize(d float64) float64

	// SymNormalize returns sign(d) * Normalize(|d|).
	SymNormalize(d float64) float64

	// Ramp reports the thresholds (q, p) of a linear ramp between
	// indifference and strict preference. ok is false when the function
	// has no such closed form and flows must use the quadratic algorithm.
	Ramp() (q, p float64, ok bool)

	// Validate checks the thresholds.
	Validate() error

	String() string

	sealed()
}

// Usual is the step function: any strictly positive difference is full preference.
type Usual struct{}

// UShape is a step at P: 0 below P, 1 at or above.
type UShape struct {
	P float64
}

// VShape ramps linearly from 0 at d=0 to 1 at d=P, with P > 0.
type VShape struct {
	P float64
}

// Linear is 0 below Q, ramps linearly between Q and P, and is 1 from P on.
type Linear struct {
	Q float64
	P float64
}

var (
	_ PreferenceFunction = Usual{}
	_ PreferenceFunction = UShape{}
	_ PreferenceFunction = VShape{}
	_ PreferenceFunction = Linear{}
)

// NewUShape returns a validated UShape function.
func NewUShape(p float64) (UShape, error) {
	f := UShape{P: p}
	return f, f.Validate()
}

// NewVShape returns a validated VShape function.
func NewVShape(p float64) (VShape, error) {
	f := VShape{P: p}
	return f, f.Validate()
}

// NewLinear returns a validated Linear function.
func NewLinear(q, p float64) (Linear, error) {
	f := Linear{Q: q, P: p}
	return f, f.Validate()
}

// validThreshold checks that a threshold is finite and non-negative.
func validThreshold(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidThreshold, name, v)
	}
	if v < 0 {
		return fmt.Errorf("%w: %s must be non-negative, got %v", ErrInvalidThreshold, name, v)
	}
	return nil
}

// sign returns -1, 0 or 1.
func sign(d float64) float64 {
	switch {
	case d > 0:
		return 1
	case d < 0:
		return -1
	default:
		return 0
	}
}

func (Usual) Kind() schema.FunctionKind { return schema.UsualKind }

func (Usual) Normalize(d float64) float64 {
	if d > 0 {
		return 1
	}
	return 0
}

func (f Usual) SymNormalize(d float64) float64 { return sign(d) * f.Normalize(math.Abs(d)) }

func (Usual) Ramp() (q, p float64, ok bool) { return 0, 0, false }

func (Usual) Validate() error { return nil }

func (Usual) String() string { return "Usual" }

func (Usual) sealed() {}

func (UShape) Kind() schema.FunctionKind { return schema.UShapeKind }

func (f UShape) Normalize(d float64) float64 {
	if d >= f.P {
		return 1
	}
	return 0
}

func (f UShape) SymNormalize(d float64) float64 { return sign(d) * f.Normalize(math.Abs(d)) }

// Ramp is not available for UShape; it always takes the quadratic path.
func (UShape) Ramp() (q, p float64, ok bool) { return 0, 0, false }

func (f UShape) Validate() error { return validThreshold("p", f.P) }

func (f UShape) String() string { return fmt.Sprintf("UShape(p=%g)", f.P) }

func (UShape) sealed() {}

func (VShape) Kind() schema.FunctionKind { return schema.VShapeKind }

func (f VShape) Normalize(d float64) float64 {
	switch {
	case d < 0:
		return 0
	case d < f.P:
		return d / f.P
	default:
		return 1
	}
}

func (f VShape) SymNormalize(d float64) float64 { return sign(d) * f.Normalize(math.Abs(d)) }

func (f VShape) Ramp() (q, p float64, ok bool) { return 0, f.P, true }

// Validate requires p > 0. A zero p would be a step at d >= 0 and count ties as preference.
func (f VShape) Validate() error {
	if err := validThreshold("p", f.P); err != nil {
		return err
	}
	if f.P == 0 {
		return fmt.Errorf("%w: p must be positive for a v-shape", ErrInvalidThreshold)
	}
	return nil
}

func (f VShape) String() string { return fmt.Sprintf("VShape(p=%g)", f.P) }

func (VShape) sealed() {}

func (Linear) Kind() schema.FunctionKind { return schema.LinearKind }

func (f Linear) Normalize(d float64) float64 {
	switch {
	case d < f.Q:
		return 0
	case d < f.P:
		return (d - f.Q) / (f.P - f.Q)
	default:
		return 1
	}
}

func (f Linear) SymNormalize(d float64) float64 { return sign(d) * f.Normalize(math.Abs(d)) }

func (f Linear) Ramp() (q, p float64, ok bool) { return f.Q, f.P, true }

func (f Linear) Validate() error {
	if err := validThreshold("q", f.Q); err != nil {
		return err
	}
	if err := validThreshold("p", f.P); err != nil {
		return err
	}
	if f.Q > f.P {
		return fmt.Errorf("%w: q (%g) must not exceed p (%g)", ErrInvalidThreshold, f.Q, f.P)
	}
	return nil
}

func (f Linear) String() string { return fmt.Sprintf("Linear(q=%g, p=%g)", f.Q, f.P) }

func (Linear) sealed() {}
