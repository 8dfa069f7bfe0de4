package cmd

import (
	"github.com/huangsam/outrank/core"
	"github.com/huangsam/outrank/internal/contract"
	"github.com/huangsam/outrank/internal/outwriter"
	"github.com/spf13/cobra"
)

// showCmd prints a problem as loaded.
var showCmd = &cobra.Command{
	Use:   "show <problem-file>",
	Short: "Print the criteria, weights and performances of a problem.",
	Long: `Print a problem the way it will be solved: normalized weights, preference
functions and thresholds, directions after --flip, and the performance table.

The smallest gap column is the smallest non-zero difference between two
performances on a criterion. It is a useful lower bound when choosing p.

Examples:
  outrank show examples/laptops.csv
  outrank show examples/laptops.csv --flip battery --weights-override price:1`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteShow(rootCtx, cfg, cacheManager, outwriter.NewOutWriter()); err != nil {
			contract.LogFatal("Cannot show problem", err)
		}
	},
}
