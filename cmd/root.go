package cmd

import (
	"context"
	"fmt"
	"os"
	"runtime/pprof"
	"strings"

	"github.com/huangsam/outrank/internal/contract"
	"github.com/huangsam/outrank/internal/iocache"
	"github.com/huangsam/outrank/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Build metadata, overridden with -ldflags at release time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCtx = context.Background()

// cfg is the validated configuration shared by every command.
var cfg = &contract.Config{}

// input collects flags, env and config file values before validation.
var input = &contract.ConfigRawInput{}

var profile = &contract.ProfileConfig{}

var cacheManager contract.CacheManager

// startProfiling begins a CPU profile at <prefix>.cpu.prof.
func startProfiling() error {
	if !profile.Enabled {
		return nil
	}

	cpuFile, err := os.Create(profile.Prefix + ".cpu.prof")
	if err != nil {
		return fmt.Errorf("could not create CPU profile: %w", err)
	}
	if err := pprof.StartCPUProfile(cpuFile); err != nil {
		return fmt.Errorf("could not start CPU profiling: %w", err)
	}

	_, err = fmt.Fprintf(os.Stderr, "Profiling to %s.cpu.prof and %s.mem.prof\n", profile.Prefix, profile.Prefix)
	return err
}

// stopProfiling ends the CPU profile and writes a heap profile next to it.
func stopProfiling() error {
	if !profile.Enabled {
		return nil
	}

	pprof.StopCPUProfile()

	memFile, err := os.Create(profile.Prefix + ".mem.prof")
	if err != nil {
		return fmt.Errorf("could not create memory profile: %w", err)
	}
	defer func() { _ = memFile.Close() }()

	if err := pprof.WriteHeapProfile(memFile); err != nil {
		return fmt.Errorf("could not write memory profile: %w", err)
	}

	_, err = fmt.Fprintf(os.Stderr, "Profiles written. Inspect with 'go tool pprof %s.cpu.prof'.\n", profile.Prefix)
	return err
}

var rootCmd = &cobra.Command{
	Use:                "outrank",
	Short:              "Rank alternatives across weighted criteria with PROMETHEE II.",
	Long:               `Outrank reads a multi-criteria problem and ranks its alternatives by net outranking flow.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// useConfigFile points viper at --config, or at .outrank.yaml in the
// working directory and then $HOME.
func useConfigFile() {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		return
	}
	viper.SetConfigName(".outrank")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME")
}

// initConfig registers the config file, OUTRANK_* env variables and defaults.
func initConfig() {
	useConfigFile()

	viper.SetEnvPrefix("OUTRANK")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("limit", contract.DefaultResultLimit)
	viper.SetDefault("workers", contract.DefaultWorkers)
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("format", schema.AutoFormat)
	viper.SetDefault("tolerance", contract.DefaultTolerance)
	viper.SetDefault("cache-backend", schema.SQLiteBackend)
	viper.SetDefault("cache-db-connect", "")
	viper.SetDefault("analysis-backend", "")
	viper.SetDefault("analysis-db-connect", "")
	viper.SetDefault("color", "yes")
	viper.SetDefault("emoji", "no")
}

// sharedSetup resolves the configuration of a problem command into cfg and
// opens the stores it asks for.
func sharedSetup(_ context.Context, _ *cobra.Command, args []string) error {
	if err := contract.ProcessProfilingConfig(profile, viper.GetString("profile")); err != nil {
		return fmt.Errorf("failed to process profiling config: %w", err)
	}
	if err := startProfiling(); err != nil {
		return fmt.Errorf("failed to start profiling: %w", err)
	}

	if err := loadConfigFile(); err != nil {
		return err
	}
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// Viper knows nothing about positional arguments.
	input.ProblemPathStr = ""
	if len(args) == 1 {
		input.ProblemPathStr = args[0]
	}

	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	if err := iocache.InitCaching(cfg.CacheBackend, cfg.CacheDBConnect, cfg.AnalysisBackend, cfg.AnalysisDBConnect); err != nil {
		return fmt.Errorf("failed to initialize caching: %w", err)
	}
	return nil
}

func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// loadConfigFile reads the config file when there is one. A missing file is not an error.
func loadConfigFile() error {
	useConfigFile()
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetCacheManager sets the store manager used by every command.
func SetCacheManager(mgr contract.CacheManager) {
	cacheManager = mgr
}

// StopProfiling flushes the profiles started by a command, if any.
func StopProfiling() error {
	return stopProfiling()
}
