package parquet

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/outrank/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll[T any](t *testing.T, path string) []T {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[T](file)
	defer func() { _ = reader.Close() }()

	rows := make([]T, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	return rows[:n]
}

func TestStructTags(t *testing.T) {
	tests := []struct {
		name    string
		model   any
		columns []string
	}{
		{"analysis run", new(AnalysisRun), []string{
			"analysis_id", "run_uuid", "problem_name", "start_time", "end_time",
			"run_duration_ms", "total_alternatives_analyzed", "config_params",
		}},
		{"alternative flows", new(AlternativeFlows), []string{
			"analysis_id", "alternative", "analysis_time", "rank_position",
			"positive_flow", "negative_flow", "net_flow", "flow_label",
		}},
		{"ranking", new(Ranking), []string{"rank", "alternative", "net_flow", "positive_flow", "negative_flow", "label"}},
		{"criterion flow", new(CriterionFlow), []string{"criterion", "function", "weight", "alternative", "net_flow"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema := parquet.SchemaOf(tt.model)
			for _, col := range tt.columns {
				_, ok := schema.Lookup(col)
				assert.True(t, ok, "column %s should exist", col)
			}
		})
	}
}

func TestWriteAnalysisRunsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "analysis_runs.parquet")

	now := time.Now()
	endTime := now.Add(time.Second)
	durationMs := int32(1000)
	config := `{"limit":25}`
	data := []AnalysisRun{
		{
			AnalysisID:                1,
			RunUUID:                   "5b6c2a1e-0000-4000-8000-000000000001",
			ProblemName:               "cars",
			StartTime:                 now,
			EndTime:                   &endTime,
			RunDurationMs:             &durationMs,
			TotalAlternativesAnalyzed: 3,
			ConfigParams:              &config,
		},
		{AnalysisID: 2, ProblemName: "laptops", StartTime: now},
	}

	require.NoError(t, WriteAnalysisRunsParquet(data, outputPath))
	read := readAll[AnalysisRun](t, outputPath)
	require.Len(t, read, 2)

	assert.Equal(t, "cars", read[0].ProblemName)
	assert.Equal(t, data[0].RunUUID, read[0].RunUUID)
	assert.Equal(t, int32(3), read[0].TotalAlternativesAnalyzed)
	require.NotNil(t, read[0].EndTime)
	assert.WithinDuration(t, endTime, *read[0].EndTime, time.Nanosecond)
	assert.WithinDuration(t, now, read[0].StartTime, time.Nanosecond)
	require.NotNil(t, read[0].ConfigParams)
	assert.Equal(t, config, *read[0].ConfigParams)

	assert.Nil(t, read[1].EndTime)
	assert.Nil(t, read[1].RunDurationMs)
	assert.Nil(t, read[1].ConfigParams)
}

func TestWriteAlternativeFlowsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "flows.parquet")
	now := time.Now()
	data := []AlternativeFlows{
		{AnalysisID: 1, Alternative: "Car B", AnalysisTime: now, RankPosition: 1, PositiveFlow: 0.35, NegativeFlow: 0.05, NetFlow: 0.3, FlowLabel: "Favorable"},
		{AnalysisID: 1, Alternative: "Car A", AnalysisTime: now, RankPosition: 3, PositiveFlow: 0.1, NegativeFlow: 0.525, NetFlow: -0.425, FlowLabel: "Weak"},
	}

	require.NoError(t, WriteAlternativeFlowsParquet(data, outputPath))
	read := readAll[AlternativeFlows](t, outputPath)
	require.Len(t, read, 2)
	assert.Equal(t, "Car A", read[1].Alternative)
	assert.Equal(t, int32(3), read[1].RankPosition)
	assert.InDelta(t, -0.425, read[1].NetFlow, 1e-12)
}

func TestWrite_ToBuffer(t *testing.T) {
	var buf bytes.Buffer
	rows := []Ranking{{Rank: 1, Alternative: "Car B", NetFlow: 0.3}}
	require.NoError(t, Write(&buf, rows))

	reader := parquet.NewGenericReader[Ranking](bytes.NewReader(buf.Bytes()))
	defer func() { _ = reader.Close() }()
	assert.Equal(t, int64(1), reader.NumRows())
}

func TestWriteFile_EmptyData(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "empty.parquet")
	require.NoError(t, WriteFile([]CriterionFlow{}, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0), "file should contain the schema")
}

func TestWriteFile_InvalidPath(t *testing.T) {
	err := WriteAnalysisRunsParquet([]AnalysisRun{{AnalysisID: 1}}, "/nonexistent/directory/output.parquet")
	assert.Error(t, err)
}

func TestConvertRecords(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	end := start.Add(1500 * time.Millisecond)
	duration := int32(1500)
	params := `{"workers":4}`

	runs := ConvertAnalysisRunRecords([]schema.AnalysisRunRecord{{
		AnalysisID:                7,
		RunUUID:                   "5f0c7f1e-8f6a-4c7e-9a55-0d6d2b1c3a10",
		ProblemName:               "cars",
		StartTime:                 start,
		EndTime:                   &end,
		RunDurationMs:             &duration,
		TotalAlternativesAnalyzed: 3,
		ConfigParams:              &params,
	}})
	require.Len(t, runs, 1)
	assert.Equal(t, int64(7), runs[0].AnalysisID)
	assert.Equal(t, "cars", runs[0].ProblemName)
	assert.Equal(t, &end, runs[0].EndTime)
	assert.Equal(t, int32(3), runs[0].TotalAlternativesAnalyzed)

	flows := ConvertAlternativeFlowRecords([]schema.AlternativeFlowRecord{{
		AnalysisID:   7,
		Alternative:  "Car B",
		AnalysisTime: start,
		RankPosition: 1,
		PositiveFlow: 0.35,
		NegativeFlow: 0.05,
		NetFlow:      0.3,
		FlowLabel:    schema.FavorableValue,
	}})
	require.Len(t, flows, 1)
	assert.Equal(t, "Car B", flows[0].Alternative)
	assert.Equal(t, int32(1), flows[0].RankPosition)
	assert.InDelta(t, 0.3, flows[0].NetFlow, 1e-12)

	assert.Empty(t, ConvertAnalysisRunRecords(nil))
	assert.Empty(t, ConvertAlternativeFlowRecords(nil))
}
