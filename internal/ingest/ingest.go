// Package ingest loads ranking problems from sheet CSV, YAML, JSON and Parquet files.
package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/huangsam/outrank/schema"
)

// ErrUnsupportedFormat is returned for formats that cannot be decoded from bytes alone.
var ErrUnsupportedFormat = errors.New("unsupported problem format")

// LoadProblem reads a problem file. criteriaPath names the sidecar YAML with the
// criterion metadata and is only used for parquet tables.
func LoadProblem(path string, format schema.InputFormat, criteriaPath string) (*schema.ProblemSpec, error) {
	if format == schema.ParquetFormat {
		criteria, err := LoadCriteria(criteriaPath)
		if err != nil {
			return nil, err
		}
		return ReadParquetTable(path, criteria)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read problem %s: %w", path, err)
	}
	spec, err := DecodeProblem(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return spec, nil
}

// DecodeProblem decodes an in-memory problem in csv, yaml or json form.
func DecodeProblem(data []byte, format schema.InputFormat) (*schema.ProblemSpec, error) {
	var (
		spec *schema.ProblemSpec
		err  error
	)
	switch format {
	case schema.CSVFormat:
		spec, err = ReadSheetCSV(bytes.NewReader(data))
	case schema.YAMLFormat:
		spec, err = decodeYAML(data, problemSchema())
	case schema.JSONFormat:
		spec, err = decodeJSON(data, problemSchema())
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}
	if err := Normalize(spec); err != nil {
		return nil, err
	}
	return spec, nil
}

// Normalize canonicalizes function kinds and directions and checks that every
// alternative has a unique name and one finite performance per criterion.
// Blank alternative names become A1, A2 and so on by position.
func Normalize(spec *schema.ProblemSpec) error {
	if len(spec.Criteria) == 0 {
		return errors.New("problem has no criteria")
	}
	seen := make(map[string]struct{}, len(spec.Criteria))
	for k := range spec.Criteria {
		c := &spec.Criteria[k]
		c.Name = strings.TrimSpace(c.Name)
		if c.Name == "" {
			return fmt.Errorf("criterion %d has no name", k)
		}
		if _, dup := seen[c.Name]; dup {
			return fmt.Errorf("duplicate criterion %q", c.Name)
		}
		seen[c.Name] = struct{}{}

		kind, err := ParseFunctionKind(string(c.Function))
		if err != nil {
			return fmt.Errorf("criterion %q: %w", c.Name, err)
		}
		c.Function = kind
		dir, err := ParseDirection(string(c.Direction))
		if err != nil {
			return fmt.Errorf("criterion %q: %w", c.Name, err)
		}
		c.Direction = dir
	}

	q := len(spec.Criteria)
	names := make(map[string]struct{}, len(spec.Alternatives))
	for i, alt := range spec.Alternatives {
		if len(alt.Performances) != q {
			return fmt.Errorf("alternative %q has %d performances, expected %d", alt.Name, len(alt.Performances), q)
		}
		for k, v := range alt.Performances {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("alternative %q: performance on %q is not finite", alt.Name, spec.Criteria[k].Name)
			}
		}
		name := strings.TrimSpace(alt.Name)
		if name == "" {
			name = fmt.Sprintf("A%d", i+1)
		}
		if _, dup := names[name]; dup {
			return fmt.Errorf("duplicate alternative %q", name)
		}
		names[name] = struct{}{}
		spec.Alternatives[i].Name = name
	}
	return nil
}
