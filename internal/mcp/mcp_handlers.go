package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/huangsam/outrank/core"
	"github.com/huangsam/outrank/core/algo"
	"github.com/huangsam/outrank/internal/contract"
	"github.com/huangsam/outrank/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

// resolveProblem points cfg at the requested problem. Inline YAML is written
// to a temporary file; the returned cleanup removes it.
func resolveProblem(cfg *contract.Config, request mcp.CallToolRequest) (func(), error) {
	cleanup := func() {}
	inline := request.GetString("problem_yaml", "")
	path := request.GetString("problem_path", "")

	if c := request.GetString("criteria_path", ""); c != "" {
		cfg.CriteriaPath = c
	}

	switch {
	case inline != "":
		f, err := os.CreateTemp("", "outrank-*.yaml")
		if err != nil {
			return cleanup, err
		}
		cleanup = func() { _ = os.Remove(f.Name()) }
		if _, err := f.WriteString(inline); err != nil {
			_ = f.Close()
			return cleanup, err
		}
		if err := f.Close(); err != nil {
			return cleanup, err
		}
		cfg.ProblemPath = f.Name()
		cfg.Format = schema.YAMLFormat

	case path != "":
		abs, err := filepath.Abs(path)
		if err != nil {
			return cleanup, err
		}
		cfg.ProblemPath = abs
		cfg.Format = contract.DetectFormat(abs)
		if cfg.Format == schema.AutoFormat {
			return cleanup, fmt.Errorf("cannot detect format of %q", path)
		}
		if cfg.Format == schema.ParquetFormat && cfg.CriteriaPath == "" {
			return cleanup, errors.New("criteria_path is required for parquet problem tables")
		}

	default:
		return cleanup, errors.New("problem_path or problem_yaml is required")
	}
	return cleanup, nil
}

func (h *toolHandler) handleRankAlternatives(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cleanup, err := resolveProblem(cfg, request)
	defer cleanup()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid problem parameters: %v", err)), nil
	}
	if w := request.GetString("weights", ""); w != "" {
		overrides, err := contract.ParseWeightsString(w)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid weights: %v", err)), nil
		}
		cfg.WeightOverrides = overrides
	}
	cfg.Explain = request.GetBool("explain", cfg.Explain)
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	ranked, _, err := core.GetRankingResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ranking failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(ranked, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleCriterionFlows(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cleanup, err := resolveProblem(cfg, request)
	defer cleanup()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid problem parameters: %v", err)), nil
	}

	flows, _, err := core.GetCriterionFlowResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("criterion flows failed: %v", err)), nil
	}
	flows = algo.TopN(flows, request.GetInt("limit", 0))

	jsonData, _ := json.MarshalIndent(flows, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleVerifyFlows(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cleanup, err := resolveProblem(cfg, request)
	defer cleanup()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid problem parameters: %v", err)), nil
	}
	cfg.Tolerance = request.GetFloat("tolerance", cfg.Tolerance)
	if cfg.Tolerance < 0 {
		return mcp.NewToolResultError("tolerance must be non-negative"), nil
	}

	results, _, err := core.GetVerifyResults(core.WithSuppressHeader(ctx), cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("verification failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
