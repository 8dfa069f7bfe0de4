package core

import (
	"fmt"
	"math"
	"slices"

	"github.com/huangsam/outrank/schema"
)

// Alternative is one ranked option: a display name and one performance per criterion.
type Alternative struct {
	Name         string
	Performances []float64
}

// PerformanceTable is an n x q matrix of performances with per-criterion names
// and optimization directions.
//
// Values are stored in the maximize convention. A criterion with the min
// direction holds negated values; DisplayPerformance restores the input sign.
type PerformanceTable struct {
	alts       []Alternative
	criteria   []string
	directions []schema.Direction
}

type tableOptions struct {
	criteria   []string
	directions []schema.Direction
}

// TableOption customizes a PerformanceTable at construction.
type TableOption func(*tableOptions)

// WithCriteriaNames sets the criterion display names.
func WithCriteriaNames(names ...string) TableOption {
	return func(o *tableOptions) {
		o.criteria = names
	}
}

// WithDirections sets the optimization directions. Columns marked min are
// negated on construction.
func WithDirections(directions ...schema.Direction) TableOption {
	return func(o *tableOptions) {
		o.directions = directions
	}
}

// NewPerformanceTable validates alts and builds a table that owns a copy of them.
func NewPerformanceTable(alts []Alternative, opts ...TableOption) (*PerformanceTable, error) {
	if len(alts) == 0 {
		return nil, ErrEmptyTable
	}

	q := len(alts[0].Performances)
	rows := make([]Alternative, len(alts))
	for i, alt := range alts {
		if len(alt.Performances) != q {
			return nil, fmt.Errorf("%w: alternative %d has %d, expected %d", ErrRaggedTable, i, len(alt.Performances), q)
		}
		for k, v := range alt.Performances {
			if !isFinite(v) {
				return nil, fmt.Errorf("%w: alternative %d, criterion %d is %v", ErrNonFinite, i, k, v)
			}
		}
		name := alt.Name
		if name == "" {
			name = fmt.Sprintf("A%d", i+1)
		}
		rows[i] = Alternative{Name: name, Performances: slices.Clone(alt.Performances)}
	}

	var o tableOptions
	for _, opt := range opts {
		opt(&o)
	}

	t := &PerformanceTable{
		alts:       rows,
		criteria:   make([]string, q),
		directions: make([]schema.Direction, q),
	}

	if o.criteria != nil && len(o.criteria) != q {
		return nil, fmt.Errorf("%w: %d criterion names for %d criteria", ErrCountMismatch, len(o.criteria), q)
	}
	if o.directions != nil && len(o.directions) != q {
		return nil, fmt.Errorf("%w: %d directions for %d criteria", ErrCountMismatch, len(o.directions), q)
	}

	for k := range q {
		t.criteria[k] = fmt.Sprintf("Criterion %d", k+1)
		if o.criteria != nil && o.criteria[k] != "" {
			t.criteria[k] = o.criteria[k]
		}
		t.directions[k] = schema.MaxDirection
		if o.directions != nil && o.directions[k] == schema.MinDirection {
			t.negateColumn(k)
			t.directions[k] = schema.MinDirection
		}
	}
	return t, nil
}

// NewPerformanceTableFromMatrix builds a table from alternative-major rows,
// naming the alternatives A1..An.
func NewPerformanceTableFromMatrix(rows [][]float64, opts ...TableOption) (*PerformanceTable, error) {
	alts := make([]Alternative, len(rows))
	for i, row := range rows {
		alts[i] = Alternative{Name: fmt.Sprintf("A%d", i+1), Performances: row}
	}
	return NewPerformanceTable(alts, opts...)
}

// N returns the number of alternatives.
func (t *PerformanceTable) N() int { return len(t.alts) }

// Q returns the number of criteria.
func (t *PerformanceTable) Q() int { return len(t.criteria) }

func (t *PerformanceTable) valid(i, k int) bool {
	return i >= 0 && i < len(t.alts) && k >= 0 && k < len(t.criteria)
}

// Performance returns the stored (maximize convention) value of alternative i on criterion k.
func (t *PerformanceTable) Performance(i, k int) (float64, bool) {
	if !t.valid(i, k) {
		return 0, false
	}
	return t.alts[i].Performances[k], true
}

// DisplayPerformance returns the value of alternative i on criterion k with its input sign.
func (t *PerformanceTable) DisplayPerformance(i, k int) (float64, bool) {
	v, ok := t.Performance(i, k)
	if !ok {
		return 0, false
	}
	if t.directions[k] == schema.MinDirection {
		return -v, true
	}
	return v, true
}

// SetPerformance overwrites one stored value. Dependent sort caches are the caller's concern.
func (t *PerformanceTable) SetPerformance(i, k int, v float64) error {
	if !t.valid(i, k) {
		return fmt.Errorf("%w: alternative %d, criterion %d", ErrIndexOutOfRange, i, k)
	}
	if !isFinite(v) {
		return fmt.Errorf("%w: %v", ErrNonFinite, v)
	}
	t.alts[i].Performances[k] = v
	return nil
}

// ShiftPerformance adds delta to one stored value.
func (t *PerformanceTable) ShiftPerformance(i, k int, delta float64) error {
	v, ok := t.Performance(i, k)
	if !ok {
		return fmt.Errorf("%w: alternative %d, criterion %d", ErrIndexOutOfRange, i, k)
	}
	return t.SetPerformance(i, k, v+delta)
}

// Column returns a copy of criterion k's stored values.
func (t *PerformanceTable) Column(k int) ([]float64, bool) {
	if k < 0 || k >= len(t.criteria) {
		return nil, false
	}
	col := make([]float64, len(t.alts))
	for i := range t.alts {
		col[i] = t.alts[i].Performances[k]
	}
	return col, true
}

// FlipDirection negates column k in place and toggles its recorded direction.
func (t *PerformanceTable) FlipDirection(k int) error {
	if k < 0 || k >= len(t.criteria) {
		return fmt.Errorf("%w: criterion %d", ErrIndexOutOfRange, k)
	}
	t.negateColumn(k)
	t.directions[k] = t.directions[k].Opposite()
	return nil
}

func (t *PerformanceTable) negateColumn(k int) {
	for i := range t.alts {
		t.alts[i].Performances[k] = -t.alts[i].Performances[k]
	}
}

// CriterionName returns the display name of criterion k, or "" when out of range.
func (t *PerformanceTable) CriterionName(k int) string {
	if k < 0 || k >= len(t.criteria) {
		return ""
	}
	return t.criteria[k]
}

// Direction returns the optimization direction of criterion k.
func (t *PerformanceTable) Direction(k int) schema.Direction {
	if k < 0 || k >= len(t.directions) {
		return ""
	}
	return t.directions[k]
}

// AlternativeName returns the name of alternative i, or "" when out of range.
func (t *PerformanceTable) AlternativeName(i int) string {
	if i < 0 || i >= len(t.alts) {
		return ""
	}
	return t.alts[i].Name
}

// AlternativeNames returns all alternative names in table order.
func (t *PerformanceTable) AlternativeNames() []string {
	names := make([]string, len(t.alts))
	for i, alt := range t.alts {
		names[i] = alt.Name
	}
	return names
}

// CriteriaNames returns a copy of the criterion names.
func (t *PerformanceTable) CriteriaNames() []string {
	return slices.Clone(t.criteria)
}

// CriterionIndex looks up a criterion by name.
func (t *PerformanceTable) CriterionIndex(name string) (int, bool) {
	k := slices.Index(t.criteria, name)
	return k, k >= 0
}

// AlternativeIndex looks up an alternative by name. The first match wins.
func (t *PerformanceTable) AlternativeIndex(name string) (int, bool) {
	i := slices.IndexFunc(t.alts, func(a Alternative) bool { return a.Name == name })
	return i, i >= 0
}

// Clone returns a deep copy.
func (t *PerformanceTable) Clone() *PerformanceTable {
	alts := make([]Alternative, len(t.alts))
	for i, alt := range t.alts {
		alts[i] = Alternative{Name: alt.Name, Performances: slices.Clone(alt.Performances)}
	}
	return &PerformanceTable{
		alts:       alts,
		criteria:   slices.Clone(t.criteria),
		directions: slices.Clone(t.directions),
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
