package schema

import "time"

// AlternativeFlows represents the final flows of one alternative in a run.
type AlternativeFlows struct {
	AnalysisTime time.Time
	Rank         int
	PositiveFlow float64
	NegativeFlow float64
	NetFlow      float64
	Label        string
}

// AnalysisRunRecord represents a row from the outrank_analysis_runs table.
type AnalysisRunRecord struct {
	AnalysisID                int64
	RunUUID                   string
	ProblemName               string
	StartTime                 time.Time
	EndTime                   *time.Time
	RunDurationMs             *int32
	TotalAlternativesAnalyzed int32
	ConfigParams              *string
}
