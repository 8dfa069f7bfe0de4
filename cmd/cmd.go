// Package cmd defines the command-line interface for outrank.
package cmd

import (
	"github.com/huangsam/outrank/internal/contract"
	"github.com/huangsam/outrank/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(rankCmd)
	rootCmd.AddCommand(criteriaCmd)
	rootCmd.AddCommand(pairwiseCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(shiftCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(analysisCmd)
	rootCmd.AddCommand(mcpCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Add the analysis subcommands to the parent analysis command
	analysisCmd.AddCommand(analysisClearCmd)
	analysisCmd.AddCommand(analysisStatusCmd)
	analysisCmd.AddCommand(analysisExportCmd)
	analysisCmd.AddCommand(analysisMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("format", string(schema.AutoFormat), "Problem format: auto or csv or yaml or json or parquet")
	rootCmd.PersistentFlags().String("criteria", "", "Criteria YAML for parquet problem tables")
	rootCmd.PersistentFlags().Bool("detail", false, "Print positive and negative flows next to net flows")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet or chart")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("weights-override", "", "Replace criterion weights (format: 'price:3,quality:7')")
	rootCmd.PersistentFlags().String("flip", "", "Comma-separated criteria whose direction is reversed")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("analysis-backend", "", "Analysis tracking backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("analysis-db-connect", "", "Database connection string for analysis tracking (must differ from cache-db-connect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("emoji", "no", "Enable emojis in headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of rankCmd to Viper
	rankCmd.Flags().Bool("explain", false, "Print per-criterion contributions to each net flow")
	if err := viper.BindPFlags(rankCmd.Flags()); err != nil {
		contract.LogFatal("Error binding rank flags", err)
	}

	// Bind all flags of verifyCmd to Viper
	verifyCmd.Flags().Float64("tolerance", contract.DefaultTolerance, "Largest accepted deviation between fast and reference flows")
	if err := viper.BindPFlags(verifyCmd.Flags()); err != nil {
		contract.LogFatal("Error binding verify flags", err)
	}

	// Bind all flags of shiftCmd to Viper
	shiftCmd.Flags().String("criterion", "", "Criterion to shift")
	shiftCmd.Flags().String("alternative", "", "Alternative whose performance is shifted")
	shiftCmd.Flags().Float64("delta", 0, "Amount added to the performance, in the units of the problem file")
	if err := viper.BindPFlags(shiftCmd.Flags()); err != nil {
		contract.LogFatal("Error binding shift flags", err)
	}

	// Bind all flags of analysisMigrateCmd to Viper
	analysisMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(analysisMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding analysis migrate flags", err)
	}
}
