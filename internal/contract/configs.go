package contract

import (
	"fmt"
	"maps"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"

	"github.com/huangsam/outrank/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 25
	MaxResultLimit     = 1000
	DefaultPrecision   = 3
	MaxPrecision       = 6
	DefaultTolerance   = 1e-9
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for a ranking.
// This struct remains the "final, validated" config.
type Config struct {
	ProblemPath  string
	Format       schema.InputFormat
	CriteriaPath string // sidecar criteria for parquet tables

	ResultLimit int
	Workers     int
	Detail      bool
	Explain     bool
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)

	// WeightOverrides maps criterion name to a raw weight that replaces the file's weight
	WeightOverrides map[string]float64

	// Flips lists criteria whose direction is toggled before solving
	Flips []string

	Tolerance float64

	ShiftCriterion   string
	ShiftAlternative string
	ShiftDelta       float64

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	AnalysisBackend   schema.DatabaseBackend
	AnalysisDBConnect string // Please use env var as this is plaintext

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	ProblemPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Format            string `mapstructure:"format"`
	Criteria          string `mapstructure:"criteria"`
	OutputFile        string `mapstructure:"output-file"`
	Limit             int    `mapstructure:"limit"`
	Workers           int    `mapstructure:"workers"`
	Precision         int    `mapstructure:"precision"`
	Output            string `mapstructure:"output"`
	Detail            bool   `mapstructure:"detail"`
	Width             int    `mapstructure:"width"`
	CacheBackend      string `mapstructure:"cache-backend"`
	CacheDBConnect    string `mapstructure:"cache-db-connect"`
	AnalysisBackend   string `mapstructure:"analysis-backend"`
	AnalysisDBConnect string `mapstructure:"analysis-db-connect"`
	Emoji             string `mapstructure:"emoji"`
	Color             string `mapstructure:"color"`
	WeightsOverride   string `mapstructure:"weights-override"`
	Flip              string `mapstructure:"flip"`

	// --- Fields from rankCmd.Flags() ---
	Explain bool `mapstructure:"explain"`

	// --- Fields from verifyCmd.Flags() ---
	Tolerance float64 `mapstructure:"tolerance"`

	// --- Fields from shiftCmd.Flags() ---
	Criterion   string  `mapstructure:"criterion"`
	Alternative string  `mapstructure:"alternative"`
	Delta       float64 `mapstructure:"delta"`

	// --- Custom weights from config file ---
	Weights map[string]float64 `mapstructure:"weights"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.WeightOverrides != nil {
		clone.WeightOverrides = maps.Clone(c.WeightOverrides)
	}
	if c.Flips != nil {
		clone.Flips = slices.Clone(c.Flips)
	}
	return &clone
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processProblemInput(cfg, input); err != nil {
		return err
	}
	if err := processWeightOverrides(cfg, input); err != nil {
		return err
	}
	if err := processShift(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates cache and analysis backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	// --- Analysis Backend Validation ---
	cfg.AnalysisBackend = schema.DatabaseBackend(strings.ToLower(input.AnalysisBackend))
	if cfg.AnalysisBackend != "" {
		if _, ok := schema.ValidDatabaseBackends[cfg.AnalysisBackend]; !ok {
			return fmt.Errorf("invalid analysis backend '%s'. must be sqlite, mysql, postgresql, none", input.AnalysisBackend)
		}
		cfg.AnalysisDBConnect = input.AnalysisDBConnect
		if err := ValidateDatabaseConnectionString(cfg.AnalysisBackend, cfg.AnalysisDBConnect); err != nil {
			return err
		}

		// Cache and analysis must not share a SQLite file
		if cfg.CacheBackend == schema.SQLiteBackend && cfg.AnalysisBackend == schema.SQLiteBackend {
			cacheDBPath := cfg.CacheDBConnect
			if cacheDBPath == "" {
				cacheDBPath = GetCacheDBFilePath()
			}
			analysisDBPath := cfg.AnalysisDBConnect
			if analysisDBPath == "" {
				analysisDBPath = GetAnalysisDBFilePath()
			}
			if cacheDBPath == analysisDBPath {
				return fmt.Errorf("cache and analysis storage must use different SQLite database files. Both resolve to %q", cacheDBPath)
			}
		}
	}

	return nil
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Detail = input.Detail
	cfg.Explain = input.Explain
	cfg.Width = input.Width

	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 3. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 1 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet, chart", input.Output)
	}
	if cfg.Output == schema.ChartOut && cfg.OutputFile == "" {
		return fmt.Errorf("--output-file is required for chart output")
	}

	// --- 4. Tolerance Validation ---
	cfg.Tolerance = input.Tolerance
	if cfg.Tolerance == 0 {
		cfg.Tolerance = DefaultTolerance
	}
	if cfg.Tolerance < 0 || math.IsNaN(cfg.Tolerance) {
		return fmt.Errorf("tolerance must be positive (received %v)", input.Tolerance)
	}

	// --- 5. Backend Validation ---
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}

	// --- 6. Flips Processing ---
	cfg.Flips = SplitList(input.Flip)

	return nil
}

// processProblemInput resolves the problem file, its format and the optional criteria sidecar.
func processProblemInput(cfg *Config, input *ConfigRawInput) error {
	cfg.Format = schema.InputFormat(strings.ToLower(input.Format))
	if cfg.Format == "" {
		cfg.Format = schema.AutoFormat
	}
	if _, ok := schema.ValidInputFormats[cfg.Format]; !ok {
		return fmt.Errorf("invalid format '%s'. must be auto, csv, yaml, json, parquet", input.Format)
	}

	cfg.CriteriaPath = strings.TrimSpace(input.Criteria)
	if cfg.CriteriaPath != "" {
		if _, err := os.Stat(cfg.CriteriaPath); err != nil {
			return fmt.Errorf("cannot read criteria file %q: %w", cfg.CriteriaPath, err)
		}
	}

	// Commands without a problem file (mcp, cache, analysis) stop here
	if input.ProblemPathStr == "" {
		return nil
	}

	absPath, err := filepath.Abs(input.ProblemPathStr)
	if err != nil {
		return err
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return fmt.Errorf("cannot read problem file %q: %w", input.ProblemPathStr, err)
	}
	if info.IsDir() {
		return fmt.Errorf("problem path %q is a directory", input.ProblemPathStr)
	}
	cfg.ProblemPath = absPath

	if cfg.Format == schema.AutoFormat {
		cfg.Format = DetectFormat(absPath)
		if cfg.Format == schema.AutoFormat {
			return fmt.Errorf("cannot detect format of %q. use --format", input.ProblemPathStr)
		}
	}
	if cfg.Format == schema.ParquetFormat && cfg.CriteriaPath == "" {
		return fmt.Errorf("--criteria is required for parquet problem tables")
	}

	return nil
}

// DetectFormat maps a file extension to an input format, or AutoFormat when unknown.
func DetectFormat(path string) schema.InputFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return schema.CSVFormat
	case ".yaml", ".yml":
		return schema.YAMLFormat
	case ".json":
		return schema.JSONFormat
	case ".parquet":
		return schema.ParquetFormat
	default:
		return schema.AutoFormat
	}
}

// processWeightOverrides merges config file weights with the --weights-override flag.
// The flag takes precedence over the config file.
func processWeightOverrides(cfg *Config, input *ConfigRawInput) error {
	overrides := make(map[string]float64)
	maps.Copy(overrides, input.Weights)

	if input.WeightsOverride != "" {
		parsed, err := ParseWeightsString(input.WeightsOverride)
		if err != nil {
			return fmt.Errorf("invalid --weights-override format: %w", err)
		}
		maps.Copy(overrides, parsed)
	}

	for name, w := range overrides {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("weight for criterion %q must be finite and non-negative (received %v)", name, w)
		}
	}

	if len(overrides) > 0 {
		cfg.WeightOverrides = overrides
	}
	return nil
}

// processShift handles the what-if shift parameters.
func processShift(cfg *Config, input *ConfigRawInput) error {
	cfg.ShiftCriterion = strings.TrimSpace(input.Criterion)
	cfg.ShiftAlternative = strings.TrimSpace(input.Alternative)
	if math.IsNaN(input.Delta) || math.IsInf(input.Delta, 0) {
		return fmt.Errorf("--delta must be finite (received %v)", input.Delta)
	}
	cfg.ShiftDelta = input.Delta
	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// ParseWeightsString parses a string like "price:3,quality:7" into a map of
// criterion name to weight.
func ParseWeightsString(s string) (map[string]float64, error) {
	weights := make(map[string]float64)

	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		idx := strings.LastIndex(part, ":")
		if idx <= 0 {
			return nil, fmt.Errorf("invalid weight format '%s', expected 'criterion:value'", part)
		}

		name := strings.TrimSpace(part[:idx])
		valueStr := strings.TrimSpace(part[idx+1:])
		if name == "" {
			return nil, fmt.Errorf("invalid weight format '%s', criterion name is empty", part)
		}

		value, err := strconv.ParseFloat(valueStr, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight value '%s' for criterion %s: %w", valueStr, name, err)
		}
		weights[name] = value
	}

	return weights, nil
}
