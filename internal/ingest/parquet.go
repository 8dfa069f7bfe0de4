package ingest

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/huangsam/outrank/schema"
	"github.com/parquet-go/parquet-go"
)

// NameColumn is the parquet column holding alternative names.
const NameColumn = "name"

// LoadCriteria reads the sidecar YAML with the criterion metadata of a parquet table.
func LoadCriteria(path string) (*schema.ProblemSpec, error) {
	if path == "" {
		return nil, errors.New("parquet problems need a criteria file")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read criteria %s: %w", path, err)
	}
	spec, err := decodeYAML(data, criteriaSchema())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return spec, nil
}

// ReadParquetTable reads the performance table at path. Each criterion in
// criteria must have a numeric column of the same name.
func ReadParquetTable(path string, criteria *schema.ProblemSpec) (*schema.ProblemSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open parquet %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	file, err := parquet.OpenFile(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("parquet %s: %w", path, err)
	}

	nameCol, ok := file.Schema().Lookup(NameColumn)
	if !ok {
		return nil, fmt.Errorf("parquet %s: missing %q column", path, NameColumn)
	}
	// columns maps a leaf column index to its criterion index.
	columns := make(map[int]int, len(criteria.Criteria))
	for k, c := range criteria.Criteria {
		leaf, ok := file.Schema().Lookup(c.Name)
		if !ok {
			return nil, fmt.Errorf("parquet %s: missing column for criterion %q", path, c.Name)
		}
		columns[leaf.ColumnIndex] = k
	}

	spec := &schema.ProblemSpec{
		Name:     criteria.Name,
		Criteria: append([]schema.CriterionSpec(nil), criteria.Criteria...),
	}
	for _, rg := range file.RowGroups() {
		if err := readRowGroup(rg, nameCol.ColumnIndex, columns, spec); err != nil {
			return nil, fmt.Errorf("parquet %s: %w", path, err)
		}
	}
	if err := Normalize(spec); err != nil {
		return nil, fmt.Errorf("parquet %s: %w", path, err)
	}
	return spec, nil
}

func readRowGroup(rg parquet.RowGroup, nameIndex int, columns map[int]int, spec *schema.ProblemSpec) error {
	rows := rg.Rows()
	defer func() { _ = rows.Close() }()

	buf := make([]parquet.Row, 64)
	for {
		n, err := rows.ReadRows(buf)
		for _, row := range buf[:n] {
			alt, convErr := rowToAlternative(row, nameIndex, columns, len(spec.Criteria))
			if convErr != nil {
				return fmt.Errorf("row %d: %w", len(spec.Alternatives), convErr)
			}
			spec.Alternatives = append(spec.Alternatives, alt)
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func rowToAlternative(row parquet.Row, nameIndex int, columns map[int]int, q int) (schema.AlternativeSpec, error) {
	alt := schema.AlternativeSpec{Performances: make([]float64, q)}
	filled := 0
	for _, v := range row {
		col := v.Column()
		if col == nameIndex {
			if !v.IsNull() {
				alt.Name = string(v.ByteArray())
			}
			continue
		}
		k, ok := columns[col]
		if !ok {
			continue
		}
		f, err := numericValue(v)
		if err != nil {
			return alt, err
		}
		alt.Performances[k] = f
		filled++
	}
	if filled != q {
		return alt, fmt.Errorf("alternative %q has %d of %d performances", alt.Name, filled, q)
	}
	return alt, nil
}

func numericValue(v parquet.Value) (float64, error) {
	if v.IsNull() {
		return 0, errors.New("null performance")
	}
	switch v.Kind() {
	case parquet.Double:
		return v.Double(), nil
	case parquet.Float:
		return float64(v.Float()), nil
	case parquet.Int32:
		return float64(v.Int32()), nil
	case parquet.Int64:
		return float64(v.Int64()), nil
	default:
		return 0, fmt.Errorf("unsupported performance type %s", v.Kind())
	}
}
