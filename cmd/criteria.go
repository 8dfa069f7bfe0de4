package cmd

import (
	"github.com/huangsam/outrank/core"
	"github.com/huangsam/outrank/internal/contract"
	"github.com/huangsam/outrank/internal/outwriter"
	"github.com/spf13/cobra"
)

// criteriaCmd prints unicriterion flows.
var criteriaCmd = &cobra.Command{
	Use:   "criteria <problem-file>",
	Short: "Show the flows of every alternative on each criterion.",
	Long: `Print the unweighted positive, negative and net flow of every alternative
on every criterion, before weights are applied.

Use this to see which criteria drive the final ranking.

Examples:
  # Per-criterion flows of a CSV problem
  outrank criteria examples/laptops.csv

  # As JSON for further processing
  outrank criteria examples/laptops.csv --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCriteria(rootCtx, cfg, cacheManager, outwriter.NewOutWriter()); err != nil {
			contract.LogFatal("Cannot compute criterion flows", err)
		}
	},
}
