package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/huangsam/outrank/schema"
)

// Sheet rows before the alternatives. The first cell of every row is a label
// (or the alternative name) and is not part of the criterion columns.
const (
	sheetHeaderRow = iota
	sheetDirectionRow
	sheetWeightRow
	sheetFunctionRow
	sheetQRow
	sheetPRow
	sheetFirstAlternativeRow
)

// ReadSheetCSV decodes a problem laid out as a spreadsheet:
//
//	name,      price, comfort
//	direction, min,   max
//	weight,    3,     2
//	function,  linear,usual
//	q,         1,
//	p,         5,
//	Car A,     20,    7
//
// Blank q and p cells mean 0.
func ReadSheetCSV(r io.Reader) (*schema.ProblemSpec, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.Comment = '#'
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	if len(records) < sheetFirstAlternativeRow {
		return nil, fmt.Errorf("csv: expected at least %d parameter rows, got %d", sheetFirstAlternativeRow, len(records))
	}

	header := records[sheetHeaderRow]
	if len(header) < 2 {
		return nil, errors.New("csv: header row has no criteria")
	}
	width := len(header)
	for i, record := range records {
		if len(record) != width {
			return nil, fmt.Errorf("csv: row %d has %d columns, expected %d", i+1, len(record), width)
		}
	}

	spec := &schema.ProblemSpec{Criteria: make([]schema.CriterionSpec, width-1)}
	for k := range spec.Criteria {
		col := k + 1
		c := &spec.Criteria[k]
		c.Name = strings.TrimSpace(header[col])
		c.Direction = schema.Direction(strings.TrimSpace(records[sheetDirectionRow][col]))
		c.Function = schema.FunctionKind(strings.TrimSpace(records[sheetFunctionRow][col]))

		if c.Weight, err = parseCell(records, sheetWeightRow, col, false); err != nil {
			return nil, err
		}
		if c.Q, err = parseCell(records, sheetQRow, col, true); err != nil {
			return nil, err
		}
		if c.P, err = parseCell(records, sheetPRow, col, true); err != nil {
			return nil, err
		}
	}

	for row := sheetFirstAlternativeRow; row < len(records); row++ {
		alt := schema.AlternativeSpec{
			Name:         strings.TrimSpace(records[row][0]),
			Performances: make([]float64, width-1),
		}
		for col := 1; col < width; col++ {
			if alt.Performances[col-1], err = parseCell(records, row, col, false); err != nil {
				return nil, err
			}
		}
		spec.Alternatives = append(spec.Alternatives, alt)
	}
	return spec, nil
}

// parseCell parses a numeric cell. Blank cells are 0 when allowBlank is set.
func parseCell(records [][]string, row, col int, allowBlank bool) (float64, error) {
	cell := strings.TrimSpace(records[row][col])
	if cell == "" && allowBlank {
		return 0, nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, fmt.Errorf("csv: row %d column %d: invalid number %q", row+1, col+1, cell)
	}
	return v, nil
}
