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

// WriteVerifyResults outputs the fast versus reference deviation per criterion.
func WriteVerifyResults(results []schema.VerifyResult, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, results)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeVerifyCSV(w, results)
		}, "Wrote CSV")
	case schema.TextOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeVerifyTable(w, results, cfg)
		}, "Wrote table")
	default:
		return unsupportedOutput(cfg.Output, "verification")
	}
}

func verifyStatus(cfg *contract.Config, r schema.VerifyResult) string {
	switch {
	case !r.FastPath:
		return "reference only"
	case r.Passed && cfg.UseColors:
		return contract.StrongColor.Sprint("ok")
	case r.Passed:
		return "ok"
	case cfg.UseColors:
		return contract.WeakColor.Sprint("FAIL")
	default:
		return "FAIL"
	}
}

func writeVerifyTable(w io.Writer, results []schema.VerifyResult, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Criterion", "Function", "Max Deviation", "Status"})
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, len(results))
	for _, r := range results {
		data = append(data, []string{
			r.Criterion,
			r.Function,
			fmt.Sprintf("%.3e", r.MaxDeviation),
			verifyStatus(cfg, r),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Tolerance: %.3e\n", cfg.Tolerance)
	return err
}

func writeVerifyCSV(w io.Writer, results []schema.VerifyResult) error {
	header := []string{"criterion", "function", "fast_path", "max_deviation", "passed"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range results {
			if err := cw.Write([]string{
				r.Criterion,
				r.Function,
				strconv.FormatBool(r.FastPath),
				strconv.FormatFloat(r.MaxDeviation, 'g', -1, 64),
				strconv.FormatBool(r.Passed),
			}); err != nil {
				return err
			}
		}
		return nil
	})
}
