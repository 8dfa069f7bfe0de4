package outwriter

import (
	"encoding/csv"
	"io"

	"github.com/huangsam/outrank/internal/contract"
	"github.com/huangsam/outrank/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WritePairwiseMatrix outputs the weighted net pairwise preference matrix.
func WritePairwiseMatrix(result schema.PairwiseResult, cfg *contract.Config) error {
	fmtFloat := createFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writePairwiseCSV(w, result, fmtFloat)
		}, "Wrote CSV")
	case schema.TextOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writePairwiseTable(w, result, cfg, fmtFloat)
		}, "Wrote table")
	default:
		return unsupportedOutput(cfg.Output, "pairwise preferences")
	}
}

func pairwiseRows(result schema.PairwiseResult, nameOf func(string) string, fmtFloat func(float64) string) [][]string {
	rows := make([][]string, len(result.Matrix))
	for a, line := range result.Matrix {
		row := make([]string, 0, len(line)+1)
		row = append(row, nameOf(result.Alternatives[a]))
		for b, v := range line {
			if a == b {
				row = append(row, "-")
				continue
			}
			row = append(row, fmtFloat(v))
		}
		rows[a] = row
	}
	return rows
}

func writePairwiseTable(w io.Writer, result schema.PairwiseResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	nameWidth := GetMaxTableNameWidth(cfg)
	truncate := func(name string) string { return contract.TruncateName(name, nameWidth) }

	header := make([]string, 0, len(result.Alternatives)+1)
	header = append(header, "a \\ b")
	for _, name := range result.Alternatives {
		header = append(header, truncate(name))
	}

	table := tablewriter.NewWriter(w)
	table.Header(header)
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})
	if err := table.Bulk(pairwiseRows(result, truncate, fmtFloat)); err != nil {
		return err
	}
	return table.Render()
}

func writePairwiseCSV(w io.Writer, result schema.PairwiseResult, fmtFloat func(float64) string) error {
	header := append([]string{"alternative"}, result.Alternatives...)
	identity := func(name string) string { return name }
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		return cw.WriteAll(pairwiseRows(result, identity, fmtFloat))
	})
}
