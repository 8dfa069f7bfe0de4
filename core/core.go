// Package core has the PROMETHEE II model and the logic behind every command.
package core

import (
	"context"
	"fmt"

	"github.com/huangsam/outrank/internal/contract"
)

// ExecutorFunc defines the function signature shared by all command executors.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, w contract.OutputWriter) error

// ExecuteRank solves the problem and writes the ranking.
// It serves as the main entry point for the 'rank' command.
func ExecuteRank(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, w contract.OutputWriter) error {
	results, duration, err := GetRankingResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return w.WriteRanking(results, cfg, duration)
}

// ExecuteCriteria writes the unicriterion flows of every criterion.
func ExecuteCriteria(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, w contract.OutputWriter) error {
	results, _, err := GetCriterionFlowResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return w.WriteCriterionFlows(results, cfg)
}

// ExecutePairwise writes the weighted net pairwise preference matrix.
func ExecutePairwise(ctx context.Context, cfg *contract.Config, _ contract.CacheManager, w contract.OutputWriter) error {
	result, _, err := GetPairwiseResults(ctx, cfg)
	if err != nil {
		return err
	}
	return w.WritePairwise(result, cfg)
}

// ExecuteShow writes the problem as loaded, after overrides and flips.
func ExecuteShow(ctx context.Context, cfg *contract.Config, _ contract.CacheManager, w contract.OutputWriter) error {
	summary, _, err := GetProblemSummary(ctx, cfg)
	if err != nil {
		return err
	}
	return w.WriteProblem(summary, cfg)
}

// ExecuteShift writes the ranking before and after a performance shift.
func ExecuteShift(ctx context.Context, cfg *contract.Config, _ contract.CacheManager, w contract.OutputWriter) error {
	result, _, err := GetShiftResults(ctx, cfg)
	if err != nil {
		return err
	}
	return w.WriteShift(result, cfg)
}

// ExecuteVerify writes the verification table and fails with ErrVerifyFailed
// when any criterion deviates beyond cfg.Tolerance.
func ExecuteVerify(ctx context.Context, cfg *contract.Config, _ contract.CacheManager, w contract.OutputWriter) error {
	results, _, err := GetVerifyResults(ctx, cfg)
	if err != nil {
		return err
	}
	if err := w.WriteVerify(results, cfg); err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if !r.Passed {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d criteria above tolerance %g", ErrVerifyFailed, failed, cfg.Tolerance)
	}
	return nil
}
