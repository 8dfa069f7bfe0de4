package outwriter

import (
	"cmp"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/outrank/internal/contract"
	"github.com/huangsam/outrank/internal/parquet"
	"github.com/huangsam/outrank/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// Contributions below this magnitude are left out of the explain column.
const contributionMinimum = 1e-6

// topNContributions is the number of criteria listed in the explain column.
const topNContributions = 3

// WriteRankingResults outputs a ranking, dispatching on the configured output format.
func WriteRankingResults(results []schema.AlternativeResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, results)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRankingCSV(w, results, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.Write(w, rankingRows(results))
		}, "Wrote Parquet")
	case schema.ChartOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeNetFlowChart(w, results)
		}, "Wrote chart")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRankingTable(w, results, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
}

func writeRankingTable(w io.Writer, results []schema.AlternativeResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)

	headers := []string{"Rank", "Alternative", "Net", "Label"}
	if cfg.Detail {
		headers = append(headers, "Phi+", "Phi-")
	}
	if cfg.Explain {
		headers = append(headers, "Explain")
	}
	table.Header(headers)
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := GetMaxTableNameWidth(cfg)
	data := make([][]string, 0, len(results))
	for _, r := range results {
		row := []string{
			strconv.Itoa(r.Rank),
			contract.TruncateName(r.Name, nameWidth),
			fmtFloat(r.NetFlow),
			flowLabel(cfg, r.NetFlow),
		}
		if cfg.Detail {
			row = append(row, fmtFloat(r.PositiveFlow), fmtFloat(r.NegativeFlow))
		}
		if cfg.Explain {
			row = append(row, formatTopContributions(r.Contributions, fmtFloat))
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Showing top %d alternatives\n", len(results)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Ranking completed in %v with %d workers. Cache backend: %s\n", duration, cfg.Workers, cfg.CacheBackend)
	return err
}

func writeRankingCSV(w io.Writer, results []schema.AlternativeResult, fmtFloat func(float64) string) error {
	header := []string{"rank", "alternative", "net_flow", "positive_flow", "negative_flow", "label"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range results {
			rec := []string{
				strconv.Itoa(r.Rank),
				r.Name,
				fmtFloat(r.NetFlow),
				fmtFloat(r.PositiveFlow),
				fmtFloat(r.NegativeFlow),
				r.Label,
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

func rankingRows(results []schema.AlternativeResult) []parquet.Ranking {
	rows := make([]parquet.Ranking, len(results))
	for i, r := range results {
		rows[i] = parquet.Ranking{
			Rank:         int32(r.Rank),
			Alternative:  r.Name,
			NetFlow:      r.NetFlow,
			PositiveFlow: r.PositiveFlow,
			NegativeFlow: r.NegativeFlow,
			Label:        r.Label,
		}
	}
	return rows
}

// formatTopContributions lists the criteria that move the net flow the most.
func formatTopContributions(contributions map[string]float64, fmtFloat func(float64) string) string {
	type contribution struct {
		name  string
		value float64
	}
	var parts []contribution
	for name, v := range contributions {
		if math.Abs(v) >= contributionMinimum {
			parts = append(parts, contribution{name, v})
		}
	}
	if len(parts) == 0 {
		return "No decisive criteria"
	}

	slices.SortFunc(parts, func(a, b contribution) int {
		if c := cmp.Compare(math.Abs(b.value), math.Abs(a.value)); c != 0 {
			return c
		}
		return strings.Compare(a.name, b.name)
	})

	labels := make([]string, 0, topNContributions)
	for _, p := range parts[:min(len(parts), topNContributions)] {
		sign := "+"
		if p.value < 0 {
			sign = ""
		}
		labels = append(labels, fmt.Sprintf("%s %s%s", p.name, sign, fmtFloat(p.value)))
	}
	return strings.Join(labels, ", ")
}
