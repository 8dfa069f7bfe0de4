package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/huangsam/outrank/internal/contract"
	"github.com/huangsam/outrank/internal/parquet"
	"github.com/huangsam/outrank/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteCriterionFlows outputs the unicriterion flows, grouped by criterion.
func WriteCriterionFlows(results []schema.CriterionFlowResult, cfg *contract.Config) error {
	fmtFloat := createFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, results)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCriterionCSV(w, results, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.Write(w, criterionRows(results))
		}, "Wrote Parquet")
	case schema.TextOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCriterionTable(w, results, cfg, fmtFloat)
		}, "Wrote table")
	default:
		return unsupportedOutput(cfg.Output, "criterion flows")
	}
}

func writeCriterionTable(w io.Writer, results []schema.CriterionFlowResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Criterion", "Function", "Weight", "Alternative", "Phi+", "Phi-", "Net"})
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := GetMaxTableNameWidth(cfg)
	data := make([][]string, 0, len(results))
	for _, r := range results {
		data = append(data, []string{
			r.Criterion,
			r.Function,
			fmtFloat(r.Weight),
			contract.TruncateName(r.Alternative, nameWidth),
			fmtFloat(r.PositiveFlow),
			fmtFloat(r.NegativeFlow),
			fmtFloat(r.NetFlow),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func writeCriterionCSV(w io.Writer, results []schema.CriterionFlowResult, fmtFloat func(float64) string) error {
	header := []string{"criterion", "function", "weight", "alternative", "positive_flow", "negative_flow", "net_flow"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range results {
			if err := cw.Write([]string{
				r.Criterion,
				r.Function,
				fmtFloat(r.Weight),
				r.Alternative,
				fmtFloat(r.PositiveFlow),
				fmtFloat(r.NegativeFlow),
				fmtFloat(r.NetFlow),
			}); err != nil {
				return fmt.Errorf("write criterion %s: %w", r.Criterion, err)
			}
		}
		return nil
	})
}

func criterionRows(results []schema.CriterionFlowResult) []parquet.CriterionFlow {
	rows := make([]parquet.CriterionFlow, len(results))
	for i, r := range results {
		rows[i] = parquet.CriterionFlow{
			Criterion:    r.Criterion,
			Function:     r.Function,
			Weight:       r.Weight,
			Alternative:  r.Alternative,
			PositiveFlow: r.PositiveFlow,
			NegativeFlow: r.NegativeFlow,
			NetFlow:      r.NetFlow,
		}
	}
	return rows
}
