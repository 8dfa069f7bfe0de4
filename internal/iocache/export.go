package iocache

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/outrank/internal/contract"
	"github.com/huangsam/outrank/internal/parquet"
)

// ExportAnalysis writes the run history of store to two Parquet files
// named after outputFile.
func ExportAnalysis(w io.Writer, store contract.AnalysisStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("analysis tracking is not enabled")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get analysis status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no analysis data found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total analysis runs: %d\n", status.TotalRuns)
	_, _ = fmt.Fprintf(w, "Total flow records: %d\n", status.TableSizes[alternativeFlowsTable])

	runs, err := store.GetAllAnalysisRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve analysis runs: %w", err)
	}
	flows, err := store.GetAllAlternativeFlows()
	if err != nil {
		return fmt.Errorf("failed to retrieve alternative flows: %w", err)
	}

	parquetRuns := parquet.ConvertAnalysisRunRecords(runs)
	parquetFlows := parquet.ConvertAlternativeFlowRecords(flows)

	runsFile := outputFile + ".analysis_runs.parquet"
	if err := parquet.WriteAnalysisRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write analysis runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d analysis runs to: %s\n", len(parquetRuns), runsFile)

	flowsFile := outputFile + ".alternative_flows.parquet"
	if err := parquet.WriteAlternativeFlowsParquet(parquetFlows, flowsFile); err != nil {
		return fmt.Errorf("failed to write alternative flows: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d flow records to: %s\n", len(parquetFlows), flowsFile)

	return nil
}

// ExecuteAnalysisExport exports the global analysis store, reporting progress to w.
func ExecuteAnalysisExport(w io.Writer, outputFile string) error {
	return ExportAnalysis(w, Manager.GetAnalysisStore(), outputFile)
}
