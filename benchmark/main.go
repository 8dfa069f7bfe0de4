// Package main provides a performance benchmarking tool for the Outrank CLI.
// It generates synthetic problems of increasing size, measures execution times
// of the ranking commands on each, running each test multiple times, treating
// the first successful run as cold and averaging the rest as warm, and
// writes CSV output for performance analysis and documentation.
//
// Prerequisites:
// - outrank binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory where the generated problems are written
package main

import (
	"encoding/csv"
	"fmt"
	"math/rand/v2"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-cache average, cold run and average of warm runs).
type BenchmarkResult struct {
	Problem     string
	Command     string
	NoCacheTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir     string
	Timeout     time.Duration
	Workers     int
	NoCacheRuns int
	CacheRuns   int
	Sizes       []int
	// VerifyLimit bounds the problem size for verify, which is quadratic.
	VerifyLimit int
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir:     os.Args[1],
		Timeout:     5 * time.Minute,
		Workers:     8,
		NoCacheRuns: 3,
		CacheRuns:   4,
		Sizes:       []int{100, 1000, 10000, 100000},
		VerifyLimit: 10000,
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	// Clear the cache using outrank cache clear
	fmt.Printf("Clearing cache...\n")
	clearCmd := exec.Command("outrank", "cache", "clear")
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear cache: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Cache cleared successfully\n")
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the outrank binary exists and the work dir is usable
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("outrank"); err != nil {
		return fmt.Errorf("outrank binary not found in PATH")
	}
	return os.MkdirAll(config.WorkDir, 0o755)
}

// generateProblem writes a sheet CSV with n alternatives over one criterion of
// every preference function and returns its path.
func generateProblem(dir string, n int) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("synthetic_%d.csv", n))
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = file.Close() }()

	w := csv.NewWriter(file)
	rows := [][]string{
		{"name", "price", "quality", "range", "weight", "rating", "warranty"},
		{"direction", "min", "max", "max", "min", "max", "max"},
		{"weight", "5", "4", "3", "2", "2", "1"},
		{"function", "linear", "vshape", "vshape", "linear", "usual", "u-shape"},
		{"q", "20", "", "", "0.1", "", ""},
		{"p", "200", "3", "150", "0.8", "", "1"},
	}
	rng := rand.New(rand.NewPCG(uint64(n), 42))
	for i := range n {
		rows = append(rows, []string{
			fmt.Sprintf("alt-%06d", i),
			strconv.FormatFloat(500+rng.Float64()*1500, 'f', 2, 64),
			strconv.FormatFloat(rng.Float64()*10, 'f', 2, 64),
			strconv.Itoa(200 + rng.IntN(600)),
			strconv.FormatFloat(0.8+rng.Float64()*2, 'f', 2, 64),
			strconv.Itoa(1 + rng.IntN(5)),
			strconv.Itoa(1 + rng.IntN(3)),
		})
	}
	if err := w.WriteAll(rows); err != nil {
		return "", err
	}
	return path, nil
}

// runBenchmarks executes all benchmark tests across configured problem sizes
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d sizes, %v timeout, %d workers, no-cache: %d runs, cache: %d runs\n",
		len(config.Sizes), config.Timeout, config.Workers, config.NoCacheRuns, config.CacheRuns)

	for _, n := range config.Sizes {
		path, err := generateProblem(config.WorkDir, n)
		if err != nil {
			fmt.Printf("Warning: cannot generate problem with %d alternatives: %v\n", n, err)
			continue
		}
		name := fmt.Sprintf("n=%d", n)
		fmt.Printf("Benchmarking %s\n", name)

		results = append(results, runBenchmarkSuite(config, name, path, "rank", "rank"))
		results = append(results, runBenchmarkSuite(config, name, path, "criteria", "criterion flows"))
		if n <= config.VerifyLimit {
			results = append(results, runBenchmarkSuite(config, name, path, "verify", "fast path verification"))
		}
	}

	return results
}

// runBenchmarkSuite runs both no-cache and cache benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, name, path, command, description string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", description, name)

	// Helper to run a benchmark phase
	runPhase := func(cacheBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, path, command, cacheBackend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avgTime = fmt.Sprintf("%.3fs", sum/float64(len(times)))
		}
		return cold, avgTime
	}

	_, noCacheAvg := runPhase("none", config.NoCacheRuns, "No-cache")
	coldTime, warmAvg := runPhase("sqlite", config.CacheRuns, "Cache")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-cache average: %s, Cold time: %s, Warm average: %s\n", noCacheAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Problem:     name,
		Command:     command,
		NoCacheTime: noCacheAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes an outrank command multiple times with specified cache backend and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, path, command, cacheBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{
		command, path,
		"--cache-backend", cacheBackend,
		"--workers", strconv.Itoa(config.Workers),
		"--limit", "10",
	}

	var times []float64
	for range numRuns {
		start := time.Now()

		cmd := exec.Command("outrank", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output, command) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte, command string) bool {
	outputStr := string(output)
	switch command {
	case "rank":
		return strings.Contains(outputStr, "Ranking completed in") && strings.Contains(outputStr, "workers")
	case "verify":
		return strings.Contains(outputStr, "Tolerance:")
	default:
		return strings.Contains(outputStr, "alt-")
	}
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("outrank_benchmark_%s.csv", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"problem", "cmd", "no_cache_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, result := range results {
		if err := writer.Write([]string{result.Problem, result.Command, result.NoCacheTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "rank", "Rank:")
	printCommandSummary(results, "criteria", "Criterion Flows:")
	printCommandSummary(results, "verify", "Verify:")

	fmt.Printf("Benchmark script completed successfully\n")
}

// printCommandSummary displays results for a specific command type
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-10s: No-cache: %s, Cold: %s, Warm: %s\n", result.Problem, result.NoCacheTime, result.ColdTime, result.WarmTime)
		}
	}
}
