package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/outrank/internal/contract"
	"github.com/huangsam/outrank/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteShiftResults outputs a before/after ranking comparison.
func WriteShiftResults(result schema.ShiftResult, cfg *contract.Config) error {
	fmtFloat := createFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeShiftCSV(w, result, fmtFloat)
		}, "Wrote CSV")
	case schema.TextOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeShiftTable(w, result, cfg, fmtFloat)
		}, "Wrote table")
	default:
		return unsupportedOutput(cfg.Output, "shift comparisons")
	}
}

// formatRankDelta renders a rank movement, positive meaning the alternative moved up.
func formatRankDelta(delta int) string {
	switch {
	case delta > 0:
		return fmt.Sprintf("▲%d", delta)
	case delta < 0:
		return fmt.Sprintf("▼%d", -delta)
	default:
		return "="
	}
}

func writeShiftTable(w io.Writer, result schema.ShiftResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	if _, err := fmt.Fprintf(w, "Shift %s of %s by %s\n", result.Criterion, result.Alternative, fmtFloat(result.Delta)); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Alternative", "Before", "After", "Move", "Net Before", "Net After", "Delta"})
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := GetMaxTableNameWidth(cfg)
	data := make([][]string, 0, len(result.Details))
	for _, d := range result.Details {
		data = append(data, []string{
			contract.TruncateName(d.Name, nameWidth),
			strconv.Itoa(d.BeforeRank),
			strconv.Itoa(d.AfterRank),
			formatRankDelta(d.DeltaRank),
			fmtFloat(d.BeforeNet),
			fmtFloat(d.AfterNet),
			fmtFloat(d.DeltaNet),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func writeShiftCSV(w io.Writer, result schema.ShiftResult, fmtFloat func(float64) string) error {
	header := []string{"alternative", "before_rank", "after_rank", "delta_rank", "before_net", "after_net", "delta_net"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, d := range result.Details {
			if err := cw.Write([]string{
				d.Name,
				strconv.Itoa(d.BeforeRank),
				strconv.Itoa(d.AfterRank),
				strconv.Itoa(d.DeltaRank),
				fmtFloat(d.BeforeNet),
				fmtFloat(d.AfterNet),
				fmtFloat(d.DeltaNet),
			}); err != nil {
				return err
			}
		}
		return nil
	})
}
