package core

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/outrank/core/algo"
	"github.com/huangsam/outrank/internal/contract"
	"github.com/huangsam/outrank/internal/ingest"
	"github.com/huangsam/outrank/schema"
)

// loadedProblem bundles a decoded problem file with its model.
type loadedProblem struct {
	name    string
	spec    *schema.ProblemSpec
	problem *Problem
}

// loadProblem reads cfg.ProblemPath, applies weight overrides and flips,
// and prints the problem header unless the context suppresses it.
func loadProblem(ctx context.Context, cfg *contract.Config) (*loadedProblem, error) {
	spec, err := ingest.LoadProblem(cfg.ProblemPath, cfg.Format, cfg.CriteriaPath)
	if err != nil {
		return nil, err
	}
	problem, err := BuildProblem(spec, cfg.WeightOverrides, cfg.Flips)
	if err != nil {
		return nil, err
	}

	name := spec.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(cfg.ProblemPath), filepath.Ext(cfg.ProblemPath))
	}

	if !shouldSuppressHeader(ctx) {
		contract.LogProblemHeader(headerWriter(cfg), cfg, name, problem.N(), problem.Q())
	}
	return &loadedProblem{name: name, spec: spec, problem: problem}, nil
}

// headerWriter keeps machine readable output on stdout free of headers.
func headerWriter(cfg *contract.Config) io.Writer {
	if cfg.OutputFile == "" && cfg.Output != "" && cfg.Output != schema.TextOut {
		return os.Stderr
	}
	return os.Stdout
}

// GetRankingResults solves the configured problem and returns the ranking,
// truncated to cfg.ResultLimit. The full ranking is recorded when analysis
// tracking is enabled.
func GetRankingResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) ([]schema.AlternativeResult, time.Duration, error) {
	start := time.Now()

	lp, err := loadProblem(ctx, cfg)
	if err != nil {
		return nil, 0, err
	}

	tracker := beginTracking(cfg, lp.name, mgr, start)

	result := cachedSolve(cfg, lp.spec, lp.problem, mgr)
	ranked := rankingResults(cfg, lp.problem, result)

	tracker.record(ranked)
	tracker.end(len(ranked))

	return algo.TopN(ranked, cfg.ResultLimit), time.Since(start), nil
}

// rankingResults converts a Result into ranked rows. Contributions are
// included when cfg.Explain is set.
func rankingResults(cfg *contract.Config, problem *Problem, result *Result) []schema.AlternativeResult {
	ranked := result.RankedAlternatives()
	positive, negative := result.Positive(), result.Negative()

	out := make([]schema.AlternativeResult, len(ranked))
	for pos, i := range ranked {
		net, _ := result.NetFlow(i)
		row := schema.AlternativeResult{
			Rank:         pos + 1,
			Index:        i,
			Name:         problem.AlternativeName(i),
			NetFlow:      net,
			PositiveFlow: positive[i],
			NegativeFlow: negative[i],
			Label:        schema.GetPlainLabel(net),
		}
		if cfg.Explain {
			parts, _ := result.Contributions(i)
			row.Contributions = make(map[string]float64, len(parts))
			for k, v := range parts {
				row.Contributions[problem.CriterionName(k)] = v
			}
		}
		out[pos] = row
	}
	return out
}

// GetCriterionFlowResults returns the unweighted flows of every alternative on
// every criterion, grouped by criterion.
func GetCriterionFlowResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) ([]schema.CriterionFlowResult, time.Duration, error) {
	start := time.Now()

	lp, err := loadProblem(ctx, cfg)
	if err != nil {
		return nil, 0, err
	}
	p := lp.problem
	result := cachedSolve(cfg, lp.spec, p, mgr)

	out := make([]schema.CriterionFlowResult, 0, p.N()*p.Q())
	for k := range p.Q() {
		fn, _ := p.Function(k)
		w, _ := p.Weight(k)
		pos, _ := result.CriterionPositive(k)
		neg, _ := result.CriterionNegative(k)
		for i := range p.N() {
			out = append(out, schema.CriterionFlowResult{
				Criterion:    p.CriterionName(k),
				Function:     fn.String(),
				Kind:         fn.Kind(),
				Weight:       w,
				Alternative:  p.AlternativeName(i),
				PositiveFlow: pos[i],
				NegativeFlow: neg[i],
				NetFlow:      pos[i] - neg[i],
			})
		}
	}
	return out, time.Since(start), nil
}

// GetPairwiseResults returns the weighted net pairwise preference matrix.
func GetPairwiseResults(ctx context.Context, cfg *contract.Config) (schema.PairwiseResult, time.Duration, error) {
	start := time.Now()

	lp, err := loadProblem(ctx, cfg)
	if err != nil {
		return schema.PairwiseResult{}, 0, err
	}
	return schema.PairwiseResult{
		Alternatives: lp.problem.Table().AlternativeNames(),
		Matrix:       lp.problem.NetPreferenceMatrix(),
	}, time.Since(start), nil
}

// GetProblemSummary returns the printable view of the configured problem.
func GetProblemSummary(ctx context.Context, cfg *contract.Config) (schema.ProblemSummary, time.Duration, error) {
	start := time.Now()

	lp, err := loadProblem(ctx, cfg)
	if err != nil {
		return schema.ProblemSummary{}, 0, err
	}
	return Summarize(lp.name, lp.problem), time.Since(start), nil
}

// GetShiftResults ranks the problem, shifts one performance by cfg.ShiftDelta
// in input units and ranks again.
func GetShiftResults(ctx context.Context, cfg *contract.Config) (schema.ShiftResult, time.Duration, error) {
	start := time.Now()

	lp, err := loadProblem(ctx, cfg)
	if err != nil {
		return schema.ShiftResult{}, 0, err
	}
	p := lp.problem

	k, ok := p.Table().CriterionIndex(cfg.ShiftCriterion)
	if !ok {
		return schema.ShiftResult{}, 0, fmt.Errorf("%w: %q", ErrUnknownCriterion, cfg.ShiftCriterion)
	}
	i, ok := p.Table().AlternativeIndex(cfg.ShiftAlternative)
	if !ok {
		return schema.ShiftResult{}, 0, fmt.Errorf("%w: %q", ErrUnknownAlt, cfg.ShiftAlternative)
	}

	before := p.SolveParallel(cfg.Workers)

	// Stored values of min criteria are negated.
	delta := cfg.ShiftDelta
	if p.Direction(k) == schema.MinDirection {
		delta = -delta
	}
	if err := p.ShiftPerformance(k, i, delta); err != nil {
		return schema.ShiftResult{}, 0, err
	}
	after := p.SolveParallel(cfg.Workers)

	return schema.ShiftResult{
		Criterion:   p.CriterionName(k),
		Alternative: p.AlternativeName(i),
		Delta:       cfg.ShiftDelta,
		Details:     shiftDetails(p, before, after),
	}, time.Since(start), nil
}

// shiftDetails lists every alternative in its new ranking order.
func shiftDetails(p *Problem, before, after *Result) []schema.ShiftDetails {
	beforeRank := rankPositions(before.RankedAlternatives())
	afterOrder := after.RankedAlternatives()

	details := make([]schema.ShiftDetails, len(afterOrder))
	for pos, i := range afterOrder {
		bNet, _ := before.NetFlow(i)
		aNet, _ := after.NetFlow(i)
		details[pos] = schema.ShiftDetails{
			Name:       p.AlternativeName(i),
			BeforeRank: beforeRank[i],
			AfterRank:  pos + 1,
			DeltaRank:  beforeRank[i] - (pos + 1),
			BeforeNet:  bNet,
			AfterNet:   aNet,
			DeltaNet:   aNet - bNet,
		}
	}
	return details
}

// rankPositions maps alternative index to its 1-based rank.
func rankPositions(ranked []int) []int {
	positions := make([]int, len(ranked))
	for pos, i := range ranked {
		positions[i] = pos + 1
	}
	return positions
}

// GetVerifyResults compares the sliding-window flows with the pairwise
// reference for every criterion. Criteria without a ramp always pass.
func GetVerifyResults(ctx context.Context, cfg *contract.Config) ([]schema.VerifyResult, time.Duration, error) {
	start := time.Now()

	lp, err := loadProblem(ctx, cfg)
	if err != nil {
		return nil, 0, err
	}
	p := lp.problem

	out := make([]schema.VerifyResult, p.Q())
	for k := range p.Q() {
		fn, _ := p.Function(k)
		r := schema.VerifyResult{
			Criterion: p.CriterionName(k),
			Function:  fn.String(),
			FastPath:  algo.UsesFastPath(fn),
			Passed:    true,
		}
		if r.FastPath {
			r.MaxDeviation, _ = p.VerifyCriterion(k)
			r.Passed = r.MaxDeviation <= cfg.Tolerance
		}
		out[k] = r
	}
	return out, time.Since(start), nil
}

// runTracker records one ranking run in the analysis store. A zero value is a no-op.
type runTracker struct {
	store contract.AnalysisStore
	id    int64
	at    time.Time
}

// beginTracking opens an analysis run. Failures are logged and disable tracking.
func beginTracking(cfg *contract.Config, problemName string, mgr contract.CacheManager, start time.Time) runTracker {
	if mgr == nil {
		return runTracker{}
	}
	store := mgr.GetAnalysisStore()
	if store == nil {
		return runTracker{}
	}

	configParams := map[string]any{
		"problem_path":     cfg.ProblemPath,
		"format":           string(cfg.Format),
		"workers":          cfg.Workers,
		"result_limit":     cfg.ResultLimit,
		"weight_overrides": cfg.WeightOverrides,
		"flips":            cfg.Flips,
	}
	id, err := store.BeginAnalysis(uuid.NewString(), problemName, start, configParams)
	if err != nil {
		contract.LogWarn("Analysis tracking initialization failed", err)
		return runTracker{}
	}
	return runTracker{store: store, id: id, at: start}
}

func (t runTracker) active() bool {
	return t.store != nil && t.id > 0
}

// record stores the flows of every ranked alternative.
func (t runTracker) record(ranked []schema.AlternativeResult) {
	if !t.active() {
		return
	}
	for _, r := range ranked {
		flows := schema.AlternativeFlows{
			AnalysisTime: t.at,
			Rank:         r.Rank,
			PositiveFlow: r.PositiveFlow,
			NegativeFlow: r.NegativeFlow,
			NetFlow:      r.NetFlow,
			Label:        r.Label,
		}
		if err := t.store.RecordAlternativeFlows(t.id, r.Name, flows); err != nil {
			contract.LogWarn(fmt.Sprintf("Analysis tracking failed for %s", r.Name), err)
		}
	}
}

func (t runTracker) end(total int) {
	if !t.active() {
		return
	}
	if err := t.store.EndAnalysis(t.id, time.Now(), total); err != nil {
		contract.LogWarn("Failed to finalize analysis tracking", err)
	}
}
