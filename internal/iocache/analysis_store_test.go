package iocache

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/outrank/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryAnalysisStore(t *testing.T) *AnalysisStoreImpl {
	t.Helper()
	store, err := NewAnalysisStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	impl, ok := store.(*AnalysisStoreImpl)
	require.True(t, ok)
	return impl
}

func TestAnalysisStore_NoneBackend(t *testing.T) {
	store, err := NewAnalysisStore(schema.NoneBackend, "")
	require.NoError(t, err)

	id, err := store.BeginAnalysis(uuid.NewString(), "cars", time.Now(), map[string]any{"workers": 1})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), id)

	assert.NoError(t, store.EndAnalysis(1, time.Now(), 3))
	assert.NoError(t, store.RecordAlternativeFlows(1, "Car A", schema.AlternativeFlows{}))

	runs, err := store.GetAllAnalysisRuns()
	assert.NoError(t, err)
	assert.Empty(t, runs)

	flows, err := store.GetAllAlternativeFlows()
	assert.NoError(t, err)
	assert.Empty(t, flows)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)
	assert.NoError(t, store.Close())
}

func TestAnalysisStore_RunLifecycle(t *testing.T) {
	store := newMemoryAnalysisStore(t)

	runUUID := uuid.NewString()
	start := time.Now().Add(-2 * time.Second)
	params := map[string]any{"workers": 4, "flip": []string{"price"}}

	id, err := store.BeginAnalysis(runUUID, "cars", start, params)
	require.NoError(t, err)
	assert.Positive(t, id)

	flows := []struct {
		name string
		f    schema.AlternativeFlows
	}{
		{"Car B", schema.AlternativeFlows{AnalysisTime: start, Rank: 1, PositiveFlow: 0.35, NegativeFlow: 0.05, NetFlow: 0.3, Label: schema.FavorableValue}},
		{"Car C", schema.AlternativeFlows{AnalysisTime: start, Rank: 2, PositiveFlow: 0.175, NegativeFlow: 0.05, NetFlow: 0.125, Label: schema.FavorableValue}},
		{"Car A", schema.AlternativeFlows{AnalysisTime: start, Rank: 3, PositiveFlow: 0.1, NegativeFlow: 0.525, NetFlow: -0.425, Label: schema.WeakValue}},
	}
	for _, fl := range flows {
		require.NoError(t, store.RecordAlternativeFlows(id, fl.name, fl.f))
	}

	// A second insert of the same alternative in the same run violates the key
	assert.Error(t, store.RecordAlternativeFlows(id, "Car A", flows[2].f))

	end := time.Now()
	require.NoError(t, store.EndAnalysis(id, end, len(flows)))

	runs, err := store.GetAllAnalysisRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	run := runs[0]
	assert.Equal(t, id, run.AnalysisID)
	assert.Equal(t, runUUID, run.RunUUID)
	assert.Equal(t, "cars", run.ProblemName)
	assert.WithinDuration(t, start, run.StartTime, time.Millisecond)
	require.NotNil(t, run.EndTime)
	assert.WithinDuration(t, end, *run.EndTime, time.Millisecond)
	require.NotNil(t, run.RunDurationMs)
	assert.GreaterOrEqual(t, *run.RunDurationMs, int32(1900))
	assert.Equal(t, int32(3), run.TotalAlternativesAnalyzed)
	require.NotNil(t, run.ConfigParams)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(*run.ConfigParams), &decoded))
	assert.Equal(t, float64(4), decoded["workers"])

	records, err := store.GetAllAlternativeFlows()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "Car B", records[0].Alternative)
	assert.Equal(t, int32(1), records[0].RankPosition)
	assert.InDelta(t, 0.3, records[0].NetFlow, 1e-12)
	assert.Equal(t, "Car A", records[2].Alternative)
	assert.Equal(t, schema.WeakValue, records[2].FlowLabel)
	assert.WithinDuration(t, start, records[2].AnalysisTime, time.Millisecond)
}

func TestAnalysisStore_UnfinishedRun(t *testing.T) {
	store := newMemoryAnalysisStore(t)

	_, err := store.BeginAnalysis(uuid.NewString(), "open", time.Now(), nil)
	require.NoError(t, err)

	runs, err := store.GetAllAnalysisRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Nil(t, runs[0].EndTime)
	assert.Nil(t, runs[0].RunDurationMs)
	assert.Zero(t, runs[0].TotalAlternativesAnalyzed)

	assert.Error(t, store.EndAnalysis(999, time.Now(), 1))
}

func TestAnalysisStore_DuplicateRunUUID(t *testing.T) {
	store := newMemoryAnalysisStore(t)
	runUUID := uuid.NewString()

	_, err := store.BeginAnalysis(runUUID, "a", time.Now(), nil)
	require.NoError(t, err)
	_, err = store.BeginAnalysis(runUUID, "b", time.Now(), nil)
	assert.Error(t, err)
}

func TestAnalysisStore_GetStatus(t *testing.T) {
	store := newMemoryAnalysisStore(t)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Zero(t, status.TotalRuns)
	assert.Equal(t, int64(0), status.TableSizes[analysisRunsTable])

	first := time.Now().Add(-time.Hour)
	for i, n := range []int{3, 5} {
		id, err := store.BeginAnalysis(uuid.NewString(), "p", first.Add(time.Duration(i)*time.Minute), nil)
		require.NoError(t, err)
		require.NoError(t, store.RecordAlternativeFlows(id, "x", schema.AlternativeFlows{AnalysisTime: first, Rank: 1, Label: schema.NeutralValue}))
		require.NoError(t, store.EndAnalysis(id, time.Now(), n))
	}

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 2, status.TotalRuns)
	assert.Equal(t, int64(2), status.LastRunID)
	assert.Equal(t, 8, status.TotalAlternativesAnalyzed)
	assert.WithinDuration(t, first, status.OldestRunTime, time.Millisecond)
	assert.WithinDuration(t, first.Add(time.Minute), status.LastRunTime, time.Millisecond)
	assert.Equal(t, int64(2), status.TableSizes[analysisRunsTable])
	assert.Equal(t, int64(2), status.TableSizes[alternativeFlowsTable])

	var buf bytes.Buffer
	PrintAnalysisStatus(&buf, status)
	out := buf.String()
	assert.Contains(t, out, "Total Runs: 2")
	assert.Contains(t, out, "Total Alternatives Analyzed: 8")
	assert.Contains(t, out, alternativeFlowsTable+": 2 rows")
}

func TestClearAnalysis(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "analysis.db")
	store, err := NewAnalysisStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	_, err = store.BeginAnalysis(uuid.NewString(), "p", time.Now(), nil)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	require.NoError(t, ClearAnalysis(schema.SQLiteBackend, dbPath, ""))
	_, err = os.Stat(dbPath)
	assert.True(t, os.IsNotExist(err))

	// A fresh store after clearing starts empty
	store, err = NewAnalysisStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	runs, err := store.GetAllAnalysisRuns()
	require.NoError(t, err)
	assert.Empty(t, runs)
}
