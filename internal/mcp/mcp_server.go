// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/outrank/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the outrank MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Outrank Ranking Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: rank_alternatives ---
	s.AddTool(mcp.NewTool("rank_alternatives",
		mcp.WithDescription("Rank the alternatives of a multi-criteria problem with PROMETHEE II net flows."),
		mcp.WithString("problem_path", mcp.Description("Path to a problem file (csv, yaml, json or parquet).")),
		mcp.WithString("problem_yaml", mcp.Description("Inline problem in YAML form. Used instead of problem_path when set.")),
		mcp.WithString("criteria_path", mcp.Description("Criteria sidecar YAML, required for parquet tables.")),
		mcp.WithString("weights", mcp.Description("Weight overrides as 'name:value,name:value'.")),
		mcp.WithBoolean("explain", mcp.Description("Include the per-criterion contributions to each net flow.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleRankAlternatives)

	// --- 2. Tool: criterion_flows ---
	s.AddTool(mcp.NewTool("criterion_flows",
		mcp.WithDescription("Compute the unweighted positive, negative and net flows of every alternative on every criterion."),
		mcp.WithString("problem_path", mcp.Description("Path to a problem file (csv, yaml, json or parquet).")),
		mcp.WithString("problem_yaml", mcp.Description("Inline problem in YAML form.")),
		mcp.WithString("criteria_path", mcp.Description("Criteria sidecar YAML, required for parquet tables.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of rows returned.")),
	), h.handleCriterionFlows)

	// --- 3. Tool: verify_flows ---
	s.AddTool(mcp.NewTool("verify_flows",
		mcp.WithDescription("Check the sliding-window flows of every ramp criterion against the pairwise reference."),
		mcp.WithString("problem_path", mcp.Description("Path to a problem file (csv, yaml, json or parquet).")),
		mcp.WithString("problem_yaml", mcp.Description("Inline problem in YAML form.")),
		mcp.WithString("criteria_path", mcp.Description("Criteria sidecar YAML, required for parquet tables.")),
		mcp.WithNumber("tolerance", mcp.Description("Largest accepted deviation. Defaults to 1e-9.")),
	), h.handleVerifyFlows)

	return s
}

// StartMCPServer starts the outrank MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
