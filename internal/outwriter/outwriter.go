// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/huangsam/outrank/internal/contract"
	"github.com/huangsam/outrank/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

var _ contract.OutputWriter = &OutWriter{} // Compile-time check

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteRanking prints a ranking using the configured output format.
func (ow *OutWriter) WriteRanking(results []schema.AlternativeResult, cfg *contract.Config, duration time.Duration) error {
	return WriteRankingResults(results, cfg, duration)
}

// WriteCriterionFlows prints unicriterion flows using the configured output format.
func (ow *OutWriter) WriteCriterionFlows(results []schema.CriterionFlowResult, cfg *contract.Config) error {
	return WriteCriterionFlows(results, cfg)
}

// WritePairwise prints the pairwise preference matrix using the configured output format.
func (ow *OutWriter) WritePairwise(result schema.PairwiseResult, cfg *contract.Config) error {
	return WritePairwiseMatrix(result, cfg)
}

// WriteShift prints a shift comparison using the configured output format.
func (ow *OutWriter) WriteShift(result schema.ShiftResult, cfg *contract.Config) error {
	return WriteShiftResults(result, cfg)
}

// WriteVerify prints verification results using the configured output format.
func (ow *OutWriter) WriteVerify(results []schema.VerifyResult, cfg *contract.Config) error {
	return WriteVerifyResults(results, cfg)
}

// WriteProblem prints a problem summary using the configured output format.
func (ow *OutWriter) WriteProblem(summary schema.ProblemSummary, cfg *contract.Config) error {
	return WriteProblemSummary(summary, cfg)
}
