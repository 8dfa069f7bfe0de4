// Package parquet provides data structures and functions for exporting outrank
// rankings and analysis data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/outrank/schema"
	"github.com/parquet-go/parquet-go"
)

// AnalysisRun represents a single ranking run with metadata.
// This struct maps to the outrank_analysis_runs database table.
type AnalysisRun struct {
	// AnalysisID is the unique identifier for this analysis run
	AnalysisID int64 `parquet:"analysis_id,snappy"`

	// RunUUID identifies the run across databases
	RunUUID string `parquet:"run_uuid,snappy"`

	// ProblemName is the name of the ranked problem
	ProblemName string `parquet:"problem_name,snappy"`

	// StartTime is when the analysis began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the analysis completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the analysis run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// TotalAlternativesAnalyzed is the number of alternatives ranked in this run
	TotalAlternativesAnalyzed int32 `parquet:"total_alternatives_analyzed,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// AlternativeFlows holds the flows of one alternative in an analysis.
// This struct maps to the outrank_alternative_flows database table.
type AlternativeFlows struct {
	AnalysisID   int64     `parquet:"analysis_id,snappy"`
	Alternative  string    `parquet:"alternative,snappy"`
	AnalysisTime time.Time `parquet:"analysis_time,snappy"`
	RankPosition int32     `parquet:"rank_position,snappy"`
	PositiveFlow float64   `parquet:"positive_flow,snappy"`
	NegativeFlow float64   `parquet:"negative_flow,snappy"`
	NetFlow      float64   `parquet:"net_flow,snappy"`
	FlowLabel    string    `parquet:"flow_label,snappy"`
}

// Ranking is one row of a ranking written with --output parquet.
type Ranking struct {
	Rank         int32   `parquet:"rank,snappy"`
	Alternative  string  `parquet:"alternative,snappy"`
	NetFlow      float64 `parquet:"net_flow,snappy"`
	PositiveFlow float64 `parquet:"positive_flow,snappy"`
	NegativeFlow float64 `parquet:"negative_flow,snappy"`
	Label        string  `parquet:"label,snappy"`
}

// CriterionFlow is one unicriterion flow row written with --output parquet.
type CriterionFlow struct {
	Criterion    string  `parquet:"criterion,snappy"`
	Function     string  `parquet:"function,snappy"`
	Weight       float64 `parquet:"weight,snappy"`
	Alternative  string  `parquet:"alternative,snappy"`
	PositiveFlow float64 `parquet:"positive_flow,snappy"`
	NegativeFlow float64 `parquet:"negative_flow,snappy"`
	NetFlow      float64 `parquet:"net_flow,snappy"`
}

// Write encodes rows to w. The schema is derived from the struct tags of T.
func Write[T any](w io.Writer, rows []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return writer.Close()
}

// WriteFile writes rows to a new Parquet file at outputPath.
func WriteFile[T any](rows []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return Write(file, rows)
}

// WriteAnalysisRunsParquet writes a slice of AnalysisRun structs to a Parquet file.
func WriteAnalysisRunsParquet(data []AnalysisRun, outputPath string) error {
	return WriteFile(data, outputPath)
}

// WriteAlternativeFlowsParquet writes a slice of AlternativeFlows structs to a Parquet file.
func WriteAlternativeFlowsParquet(data []AlternativeFlows, outputPath string) error {
	return WriteFile(data, outputPath)
}

// ConvertAnalysisRunRecords converts stored run records to their Parquet form.
func ConvertAnalysisRunRecords(records []schema.AnalysisRunRecord) []AnalysisRun {
	out := make([]AnalysisRun, len(records))
	for i, r := range records {
		out[i] = AnalysisRun{
			AnalysisID:                r.AnalysisID,
			RunUUID:                   r.RunUUID,
			ProblemName:               r.ProblemName,
			StartTime:                 r.StartTime,
			EndTime:                   r.EndTime,
			RunDurationMs:             r.RunDurationMs,
			TotalAlternativesAnalyzed: r.TotalAlternativesAnalyzed,
			ConfigParams:              r.ConfigParams,
		}
	}
	return out
}

// ConvertAlternativeFlowRecords converts stored flow records to their Parquet form.
func ConvertAlternativeFlowRecords(records []schema.AlternativeFlowRecord) []AlternativeFlows {
	out := make([]AlternativeFlows, len(records))
	for i, r := range records {
		out[i] = AlternativeFlows{
			AnalysisID:   r.AnalysisID,
			Alternative:  r.Alternative,
			AnalysisTime: r.AnalysisTime,
			RankPosition: r.RankPosition,
			PositiveFlow: r.PositiveFlow,
			NegativeFlow: r.NegativeFlow,
			NetFlow:      r.NetFlow,
			FlowLabel:    r.FlowLabel,
		}
	}
	return out
}
