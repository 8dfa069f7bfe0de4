package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/outrank/internal/contract"
	"github.com/huangsam/outrank/internal/iocache"
	"github.com/huangsam/outrank/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// analysisBackendFromConfig reads the analysis backend settings and validates them.
// An empty backend means tracking is disabled.
func analysisBackendFromConfig() (schema.DatabaseBackend, string, error) {
	backend := schema.DatabaseBackend(viper.GetString("analysis-backend"))
	if backend == "" {
		backend = schema.NoneBackend
	}
	connStr := viper.GetString("analysis-db-connect")

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// analysisSetup loads minimal configuration needed for analysis operations.
// This is used by commands that need analysis access without full shared setup.
func analysisSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend, connStr, err := analysisBackendFromConfig()
	if err != nil {
		return err
	}

	// No result caching for analysis commands
	if err := iocache.InitCaching("", "", backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize analysis: %w", err)
	}

	cfg.AnalysisBackend = backend
	cfg.AnalysisDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")

	return nil
}

// analysisSetupWrapper wraps analysisSetup to provide PreRunE for analysis commands.
func analysisSetupWrapper(_ *cobra.Command, _ []string) error {
	return analysisSetup()
}

// analysisMigrateSetup loads the configuration for migrate. It does NOT open the
// analysis store, so migrations can run against a fresh database.
func analysisMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend, connStr, err := analysisBackendFromConfig()
	if err != nil {
		return err
	}

	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetAnalysisDBFilePath()
	}

	cfg.AnalysisBackend = backend
	cfg.AnalysisDBConnect = connStr

	return nil
}

// analysisMigrateSetupWrapper wraps analysisMigrateSetup to provide PreRunE for migrate command.
func analysisMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return analysisMigrateSetup()
}

// analysisCmd focused on analysis data management.
var analysisCmd = &cobra.Command{
	Use:   "analysis",
	Short: "Manage the history of ranking runs",
	Long: `Manage the stored history of ranking runs.

When --analysis-backend is set, every rank run stores:
- Run metadata (problem name, timestamps, configuration, alternative count)
- The rank, flows and label of every alternative

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled, default)

Subcommands:
  status  - Show analysis tracking statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all tracking data
  migrate - Run database schema migrations

Examples:
  # Track runs in the default SQLite file
  outrank rank examples/cars.yaml --analysis-backend sqlite

  # Check tracking status
  outrank analysis status --analysis-backend sqlite

  # Export for analysis in pandas/DuckDB
  outrank analysis export --analysis-backend sqlite --output-file runs.parquet`,
}

// analysisClearCmd clears the analysis data.
var analysisClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored ranking runs",
	Long: `Delete all stored runs and alternative flows.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  outrank analysis export --analysis-backend sqlite --output-file backup
  outrank analysis clear --analysis-backend sqlite`,
	PreRunE: analysisSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearAnalysis(cfg.AnalysisBackend, contract.GetAnalysisDBFilePath(), cfg.AnalysisDBConnect); err != nil {
			contract.LogFatal("Failed to clear analysis data", err)
		}
		fmt.Println("Analysis data cleared successfully.")
	},
}

// analysisStatusCmd shows analysis status.
var analysisStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display analysis tracking statistics and connection details",
	Long: `Show the backend, connection state, number of stored runs, the newest and
oldest run timestamps, the number of stored alternative rows and the table sizes.

Examples:
  outrank analysis status --analysis-backend sqlite`,
	PreRunE: analysisSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetAnalysisStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get analysis status", err)
		}
		iocache.PrintAnalysisStatus(os.Stdout, status)
	},
}

// analysisExportCmd exports analysis data to Parquet files.
var analysisExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored runs to Parquet for BI tools and analytics",
	Long: `Export all stored runs and alternative flows to Parquet.

Two files are written next to --output-file:
- <name>.analysis_runs.parquet      one row per ranking run
- <name>.alternative_flows.parquet  one row per ranked alternative

Requires: --output-file parameter

Examples:
  outrank analysis export --analysis-backend sqlite --output-file outrank
  duckdb -c "SELECT * FROM read_parquet('outrank.alternative_flows.parquet') LIMIT 10"`,
	PreRunE: analysisSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteAnalysisExport(os.Stdout, cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export analysis data", err)
		}
	},
}

// analysisMigrateCmd runs database migrations for the analysis store.
var analysisMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the analysis tracking store.

Opening the store already migrates to the latest version. Use this command to
prepare a database ahead of time or to step back to an older version.

Examples:
  # Migrate to latest version (default)
  outrank analysis migrate --analysis-backend postgresql --analysis-db-connect "..."

  # Migrate to specific version
  outrank analysis migrate --analysis-backend sqlite --target-version 1

  # Rollback to the empty schema
  outrank analysis migrate --analysis-backend sqlite --target-version 0`,
	PreRunE: analysisMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateAnalysis(cfg.AnalysisBackend, cfg.AnalysisDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
