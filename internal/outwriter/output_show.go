package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/huangsam/outrank/internal/contract"
	"github.com/huangsam/outrank/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteProblemSummary prints the criteria and the performance table of a problem.
func WriteProblemSummary(summary schema.ProblemSummary, cfg *contract.Config) error {
	fmtFloat := createFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, summary)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writePerformanceCSV(w, summary, fmtFloat)
		}, "Wrote CSV")
	case schema.TextOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeProblemTables(w, summary, cfg, fmtFloat)
		}, "Wrote table")
	default:
		return unsupportedOutput(cfg.Output, "problem summaries")
	}
}

func writeProblemTables(w io.Writer, summary schema.ProblemSummary, cfg *contract.Config, fmtFloat func(float64) string) error {
	if summary.Name != "" {
		if _, err := fmt.Fprintf(w, "Problem: %s (%d alternatives, %d criteria)\n", summary.Name, len(summary.Alternatives), len(summary.Criteria)); err != nil {
			return err
		}
	}

	criteria := tablewriter.NewWriter(w)
	criteria.Header([]string{"Criterion", "Direction", "Function", "Weight", "Smallest Gap"})
	criteria.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})
	rows := make([][]string, 0, len(summary.Criteria))
	for _, c := range summary.Criteria {
		gap := "-"
		if c.SmallestGap != nil {
			gap = fmtFloat(*c.SmallestGap)
		}
		rows = append(rows, []string{c.Name, string(c.Direction), c.Function, fmtFloat(c.Weight), gap})
	}
	if err := criteria.Bulk(rows); err != nil {
		return err
	}
	if err := criteria.Render(); err != nil {
		return err
	}

	nameWidth := GetMaxTableNameWidth(cfg)
	header := []string{"Alternative"}
	for _, c := range summary.Criteria {
		header = append(header, c.Name)
	}
	perf := tablewriter.NewWriter(w)
	perf.Header(header)
	perf.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})
	rows = make([][]string, 0, len(summary.Alternatives))
	for _, alt := range summary.Alternatives {
		row := []string{contract.TruncateName(alt.Name, nameWidth)}
		for _, v := range alt.Performances {
			row = append(row, fmtFloat(v))
		}
		rows = append(rows, row)
	}
	if err := perf.Bulk(rows); err != nil {
		return err
	}
	return perf.Render()
}

func writePerformanceCSV(w io.Writer, summary schema.ProblemSummary, fmtFloat func(float64) string) error {
	header := []string{"alternative"}
	for _, c := range summary.Criteria {
		header = append(header, c.Name)
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, alt := range summary.Alternatives {
			rec := []string{alt.Name}
			for _, v := range alt.Performances {
				rec = append(rec, fmtFloat(v))
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
