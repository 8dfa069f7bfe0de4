package core

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/huangsam/outrank/internal/contract"
	"github.com/huangsam/outrank/schema"
)

// currentCacheVersion defines the version of the cached result layout
const currentCacheVersion = 1

// cacheTTL bounds how long a cached result is trusted.
const cacheTTL = 7 * 24 * time.Hour

// cachedResult is the serialized form of a Result.
type cachedResult struct {
	Positive []float64   `json:"positive"`
	Negative []float64   `json:"negative"`
	CritPos  [][]float64 `json:"crit_pos"`
	CritNeg  [][]float64 `json:"crit_neg"`
	Weights  []float64   `json:"weights"`
}

func (c *cachedResult) result() *Result {
	return &Result{
		positive: c.Positive,
		negative: c.Negative,
		critPos:  c.CritPos,
		critNeg:  c.CritNeg,
		weights:  c.Weights,
	}
}

// cachedSolve returns the flows of problem, served from the result store when
// an entry for the same problem and adjustments exists.
func cachedSolve(cfg *contract.Config, spec *schema.ProblemSpec, problem *Problem, mgr contract.CacheManager) *Result {
	var store contract.CacheStore
	if mgr != nil {
		store = mgr.GetResultStore()
	}
	if store == nil {
		return problem.SolveParallel(cfg.Workers)
	}

	key, err := generateCacheKey(cfg, spec)
	if err != nil {
		contract.LogWarn("Result cache key generation failed", err)
		return problem.SolveParallel(cfg.Workers)
	}

	if result := checkCacheHit(store, key, problem); result != nil {
		return result
	}
	return computeAndStore(cfg, problem, store, key)
}

// checkCacheHit attempts to retrieve and validate a cached result
func checkCacheHit(store contract.CacheStore, key string, problem *Problem) *Result {
	data, version, ts, err := store.Get(key)
	if err != nil {
		return nil // Cache miss
	}

	if version != currentCacheVersion || time.Since(time.Unix(ts, 0)) > cacheTTL {
		return nil // Cache miss (stale or version mismatch)
	}

	var cached cachedResult
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil
	}
	// Entries with the wrong shape are ignored and recomputed.
	if len(cached.Positive) != problem.N() || len(cached.Negative) != problem.N() ||
		len(cached.CritPos) != problem.Q() || len(cached.CritNeg) != problem.Q() || len(cached.Weights) != problem.Q() {
		return nil
	}
	return cached.result()
}

// computeAndStore solves the problem and stores the flows in cache
func computeAndStore(cfg *contract.Config, problem *Problem, store contract.CacheStore, key string) *Result {
	result := problem.SolveParallel(cfg.Workers)

	data, err := json.Marshal(cachedResult{
		Positive: result.positive,
		Negative: result.negative,
		CritPos:  result.critPos,
		CritNeg:  result.critNeg,
		Weights:  result.weights,
	})
	if err == nil {
		if err := store.Set(key, data, currentCacheVersion, time.Now().Unix()); err != nil {
			contract.LogWarn("Result cache write failed", err)
		}
	}
	return result
}

// generateCacheKey hashes the decoded problem with the weight overrides and flips applied on top of it.
func generateCacheKey(cfg *contract.Config, spec *schema.ProblemSpec) (string, error) {
	encoded, err := json.Marshal(spec)
	if err != nil {
		return "", err
	}

	var overrides []string
	for _, name := range slices.Sorted(maps.Keys(cfg.WeightOverrides)) {
		overrides = append(overrides, fmt.Sprintf("%s=%g", name, cfg.WeightOverrides[name]))
	}

	key := fmt.Sprintf("%s|%s|%s",
		encoded,
		strings.Join(overrides, ","),
		strings.Join(cfg.Flips, ","),
	)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key))), nil
}
