package iocache

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/outrank/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportAnalysis(t *testing.T) {
	store := newMemoryAnalysisStore(t)
	id, err := store.BeginAnalysis(uuid.NewString(), "cars", time.Now(), map[string]any{"limit": 10})
	require.NoError(t, err)
	require.NoError(t, store.RecordAlternativeFlows(id, "Car B", schema.AlternativeFlows{AnalysisTime: time.Now(), Rank: 1, NetFlow: 0.3, Label: schema.FavorableValue}))
	require.NoError(t, store.EndAnalysis(id, time.Now(), 1))

	out := filepath.Join(t.TempDir(), "history")
	var buf bytes.Buffer
	require.NoError(t, ExportAnalysis(&buf, store, out))

	for _, suffix := range []string{".analysis_runs.parquet", ".alternative_flows.parquet"} {
		info, err := os.Stat(out + suffix)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
	assert.Contains(t, buf.String(), "Exported 1 analysis runs")
	assert.Contains(t, buf.String(), "Exported 1 flow records")
}

func TestExportAnalysisErrors(t *testing.T) {
	var buf bytes.Buffer

	assert.ErrorContains(t, ExportAnalysis(&buf, &MockAnalysisStore{}, ""), "--output-file")
	assert.ErrorContains(t, ExportAnalysis(&buf, nil, "x"), "not enabled")

	empty := &MockAnalysisStore{}
	empty.On("GetStatus").Return(schema.AnalysisStatus{Backend: "sqlite"}, nil)
	assert.ErrorContains(t, ExportAnalysis(&buf, empty, "x"), "no analysis data")

	failing := &MockAnalysisStore{}
	failing.On("GetStatus").Return(schema.AnalysisStatus{Backend: "sqlite", TotalRuns: 1}, nil)
	failing.On("GetAllAnalysisRuns").Return(nil, errors.New("boom"))
	assert.ErrorContains(t, ExportAnalysis(&buf, failing, filepath.Join(t.TempDir(), "x")), "boom")
	failing.AssertExpectations(t)
}

func TestPrintCacheStatus(t *testing.T) {
	var buf bytes.Buffer
	PrintCacheStatus(&buf, schema.CacheStatus{Backend: "none"})
	assert.Contains(t, buf.String(), "Connected: false")
	assert.NotContains(t, buf.String(), "Total Entries")

	buf.Reset()
	PrintCacheStatus(&buf, schema.CacheStatus{
		Backend:         "sqlite",
		Connected:       true,
		TotalEntries:    2,
		LastEntryTime:   time.Unix(2000, 0),
		OldestEntryTime: time.Unix(1000, 0),
		TableSizeBytes:  4096,
	})
	assert.Contains(t, buf.String(), "Total Entries: 2")
	assert.Contains(t, buf.String(), "Table Size: 4096 bytes")
}
