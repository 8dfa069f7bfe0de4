package cmd

import (
	"github.com/huangsam/outrank/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Outrank MCP server",
	Long: `Launch an MCP server on stdio so AI agents can rank problems through
the rank_alternatives, criterion_flows and verify_flows tools.

Flags such as --workers, --cache-backend and --analysis-backend apply to every
tool call.`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, cacheManager)
	},
}
