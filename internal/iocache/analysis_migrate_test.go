package iocache

import (
	"path/filepath"
	"testing"

	"github.com/huangsam/outrank/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateAnalysis_NoneBackend(t *testing.T) {
	err := MigrateAnalysis(schema.NoneBackend, "", -1)
	assert.ErrorContains(t, err, "not supported")

	version, dirty, err := AnalysisSchemaVersion(schema.NoneBackend, "")
	assert.NoError(t, err)
	assert.Zero(t, version)
	assert.False(t, dirty)
}

func TestMigrateAnalysis_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate.db")

	version, _, err := AnalysisSchemaVersion(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	assert.Zero(t, version)

	require.NoError(t, MigrateAnalysis(schema.SQLiteBackend, dbPath, -1))
	version, dirty, err := AnalysisSchemaVersion(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	assert.Equal(t, uint(3), version)
	assert.False(t, dirty)

	// Already at latest
	require.NoError(t, MigrateAnalysis(schema.SQLiteBackend, dbPath, -1))

	require.NoError(t, MigrateAnalysis(schema.SQLiteBackend, dbPath, 1))
	version, _, err = AnalysisSchemaVersion(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)

	require.NoError(t, MigrateAnalysis(schema.SQLiteBackend, dbPath, 0))
	version, _, err = AnalysisSchemaVersion(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	assert.Zero(t, version)

	// Opening a store migrates back up
	store, err := NewAnalysisStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Close())
	version, _, err = AnalysisSchemaVersion(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	assert.Equal(t, uint(3), version)
}

func TestMigrateAnalysis_UnknownVersion(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate.db")
	assert.Error(t, MigrateAnalysis(schema.SQLiteBackend, dbPath, 42))
}

func TestMigrationsEmbedded(t *testing.T) {
	for _, backend := range []schema.DatabaseBackend{schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend} {
		entries, err := migrationsFS.ReadDir("migrations/" + string(backend))
		require.NoError(t, err, backend)
		assert.Len(t, entries, 6, backend)
	}
}
