package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/outrank/internal/contract"
	"github.com/huangsam/outrank/schema"
)

// Table names for analysis tracking.
const (
	analysisRunsTable     = "outrank_analysis_runs"
	alternativeFlowsTable = "outrank_alternative_flows"
)

// AnalysisStoreImpl implements the AnalysisStore interface.
type AnalysisStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.AnalysisStore = &AnalysisStoreImpl{} // Compile-time check

// NewAnalysisStore creates a new AnalysisStore with the specified backend and
// brings its schema to the latest migration.
func NewAnalysisStore(backend schema.DatabaseBackend, connStr string) (contract.AnalysisStore, error) {
	if backend == schema.NoneBackend {
		// Return a no-op store for disabled tracking
		return &AnalysisStoreImpl{backend: backend}, nil
	}

	db, err := openDB(backend, connStr, GetAnalysisDBFilePath())
	if err != nil {
		return nil, err
	}

	// The migrator shares db, so it is left open for the lifetime of the store.
	m, err := newMigrator(db, backend)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := migrateUp(m); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate analysis tables: %w", err)
	}

	return &AnalysisStoreImpl{db: db, backend: backend}, nil
}

func (as *AnalysisStoreImpl) disabled() bool {
	return as.backend == schema.NoneBackend || as.db == nil
}

func (as *AnalysisStoreImpl) table(name string) string {
	return quoteTableName(name, as.backend)
}

// BeginAnalysis creates a new analysis run and returns its unique ID.
func (as *AnalysisStoreImpl) BeginAnalysis(runUUID, problemName string, startTime time.Time, configParams map[string]any) (int64, error) {
	if as.disabled() {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	args := []any{runUUID, problemName, formatTime(startTime, as.backend), string(configJSON)}
	query := fmt.Sprintf(`INSERT INTO %s (run_uuid, problem_name, start_time, config_params) VALUES (%s)`,
		as.table(analysisRunsTable), placeholders(as.backend, len(args)))

	var analysisID int64
	switch as.backend {
	case schema.PostgreSQLBackend:
		err = as.db.QueryRow(query+" RETURNING analysis_id", args...).Scan(&analysisID)
	default: // SQLite and MySQL
		var result sql.Result
		result, err = as.db.Exec(query, args...)
		if err == nil {
			analysisID, err = result.LastInsertId()
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert analysis run: %w", err)
	}
	return analysisID, nil
}

// EndAnalysis updates the analysis run with completion data.
func (as *AnalysisStoreImpl) EndAnalysis(analysisID int64, endTime time.Time, totalAlternatives int) error {
	if as.disabled() {
		return nil
	}

	var start timeScanner
	query := fmt.Sprintf(`SELECT start_time FROM %s WHERE analysis_id = %s`, as.table(analysisRunsTable), placeholder(as.backend, 1))
	if err := as.db.QueryRow(query, analysisID).Scan(&start); err != nil {
		return fmt.Errorf("failed to get start_time for analysis %d: %w", analysisID, err)
	}

	durationMs := endTime.Sub(start.Time).Milliseconds()

	updateQuery := fmt.Sprintf(`UPDATE %s SET end_time = %s, run_duration_ms = %s, total_alternatives_analyzed = %s WHERE analysis_id = %s`,
		as.table(analysisRunsTable),
		placeholder(as.backend, 1), placeholder(as.backend, 2), placeholder(as.backend, 3), placeholder(as.backend, 4))
	if _, err := as.db.Exec(updateQuery, formatTime(endTime, as.backend), durationMs, totalAlternatives, analysisID); err != nil {
		return fmt.Errorf("failed to update analysis run: %w", err)
	}
	return nil
}

// RecordAlternativeFlows stores the final flows of one alternative.
func (as *AnalysisStoreImpl) RecordAlternativeFlows(analysisID int64, alternative string, flows schema.AlternativeFlows) error {
	if as.disabled() {
		return nil
	}

	args := []any{
		analysisID, alternative, formatTime(flows.AnalysisTime, as.backend), flows.Rank,
		flows.PositiveFlow, flows.NegativeFlow, flows.NetFlow, flows.Label,
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (analysis_id, alternative, analysis_time, rank_position,
		                positive_flow, negative_flow, net_flow, flow_label)
		VALUES (%s)
	`, as.table(alternativeFlowsTable), placeholders(as.backend, len(args)))

	if _, err := as.db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to insert flows of %q: %w", alternative, err)
	}
	return nil
}

// Close closes the underlying connection.
func (as *AnalysisStoreImpl) Close() error {
	if as.db != nil {
		return as.db.Close()
	}
	return nil
}

// GetStatus returns status information about the analysis store.
func (as *AnalysisStoreImpl) GetStatus() (schema.AnalysisStatus, error) {
	status := schema.AnalysisStatus{
		Backend:    string(as.backend),
		Connected:  as.db != nil,
		TableSizes: make(map[string]int64),
	}

	if as.disabled() {
		return status, nil
	}

	runs := as.table(analysisRunsTable)
	summaryQuery := fmt.Sprintf("SELECT COUNT(*), COALESCE(SUM(total_alternatives_analyzed), 0) FROM %s", runs)
	if err := as.db.QueryRow(summaryQuery).Scan(&status.TotalRuns, &status.TotalAlternativesAnalyzed); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		var last, oldest timeScanner
		lastRunQuery := fmt.Sprintf("SELECT analysis_id, start_time FROM %s ORDER BY analysis_id DESC LIMIT 1", runs)
		if err := as.db.QueryRow(lastRunQuery).Scan(&status.LastRunID, &last); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		oldestRunQuery := fmt.Sprintf("SELECT start_time FROM %s ORDER BY analysis_id ASC LIMIT 1", runs)
		if err := as.db.QueryRow(oldestRunQuery).Scan(&oldest); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		status.LastRunTime = last.Time
		status.OldestRunTime = oldest.Time
	}

	for _, table := range []string{analysisRunsTable, alternativeFlowsTable} {
		var count int64
		if err := as.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", as.table(table))).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}

// GetAllAnalysisRuns retrieves all analysis runs from the store.
func (as *AnalysisStoreImpl) GetAllAnalysisRuns() ([]schema.AnalysisRunRecord, error) {
	if as.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT analysis_id, run_uuid, problem_name, start_time, end_time,
		run_duration_ms, total_alternatives_analyzed, config_params
		FROM %s ORDER BY analysis_id`, as.table(analysisRunsTable))

	rows, err := as.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.AnalysisRunRecord
	for rows.Next() {
		var record schema.AnalysisRunRecord
		var start, end timeScanner
		if err := rows.Scan(&record.AnalysisID, &record.RunUUID, &record.ProblemName, &start, &end,
			&record.RunDurationMs, &record.TotalAlternativesAnalyzed, &record.ConfigParams); err != nil {
			return nil, fmt.Errorf("failed to scan analysis run: %w", err)
		}
		record.StartTime = start.Time
		record.EndTime = end.Ptr()
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating analysis runs: %w", err)
	}
	return results, nil
}

// GetAllAlternativeFlows retrieves all recorded flows ordered by run and rank.
func (as *AnalysisStoreImpl) GetAllAlternativeFlows() ([]schema.AlternativeFlowRecord, error) {
	if as.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT analysis_id, alternative, analysis_time, rank_position,
		positive_flow, negative_flow, net_flow, flow_label
		FROM %s ORDER BY analysis_id, rank_position`, as.table(alternativeFlowsTable))

	rows, err := as.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query alternative flows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.AlternativeFlowRecord
	for rows.Next() {
		var record schema.AlternativeFlowRecord
		var at timeScanner
		if err := rows.Scan(&record.AnalysisID, &record.Alternative, &at, &record.RankPosition,
			&record.PositiveFlow, &record.NegativeFlow, &record.NetFlow, &record.FlowLabel); err != nil {
			return nil, fmt.Errorf("failed to scan alternative flows: %w", err)
		}
		record.AnalysisTime = at.Time
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating alternative flows: %w", err)
	}
	return results, nil
}
