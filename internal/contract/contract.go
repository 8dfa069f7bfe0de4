// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/huangsam/outrank/schema"
)

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetResultStore() CacheStore
	GetAnalysisStore() AnalysisStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// AnalysisStore defines the interface for tracking ranking runs and their flows.
type AnalysisStore interface {
	// BeginAnalysis creates a new analysis run and returns its unique ID
	BeginAnalysis(runUUID, problemName string, startTime time.Time, configParams map[string]any) (int64, error)

	// EndAnalysis updates the analysis run with completion data
	EndAnalysis(analysisID int64, endTime time.Time, totalAlternatives int) error

	// RecordAlternativeFlows stores the final flows of one alternative
	RecordAlternativeFlows(analysisID int64, alternative string, flows schema.AlternativeFlows) error

	// GetStatus returns status information about the analysis store
	GetStatus() (schema.AnalysisStatus, error)

	// GetAllAnalysisRuns retrieves all analysis runs ordered by ID
	GetAllAnalysisRuns() ([]schema.AnalysisRunRecord, error)

	// GetAllAlternativeFlows retrieves all recorded alternative flows
	GetAllAlternativeFlows() ([]schema.AlternativeFlowRecord, error)

	// Close closes the underlying connection
	Close() error
}

// OutputWriter renders command results in the configured output format.
type OutputWriter interface {
	WriteRanking(results []schema.AlternativeResult, cfg *Config, duration time.Duration) error
	WriteCriterionFlows(results []schema.CriterionFlowResult, cfg *Config) error
	WritePairwise(result schema.PairwiseResult, cfg *Config) error
	WriteShift(result schema.ShiftResult, cfg *Config) error
	WriteVerify(results []schema.VerifyResult, cfg *Config) error
	WriteProblem(summary schema.ProblemSummary, cfg *Config) error
}
