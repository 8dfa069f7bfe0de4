package cmd

import (
	"github.com/huangsam/outrank/core"
	"github.com/huangsam/outrank/internal/contract"
	"github.com/huangsam/outrank/internal/outwriter"
	"github.com/spf13/cobra"
)

// pairwiseCmd prints the net pairwise preference matrix.
var pairwiseCmd = &cobra.Command{
	Use:   "pairwise <problem-file>",
	Short: "Show the weighted net preference between every pair of alternatives.",
	Long: `Print the matrix of weighted net preferences. The cell in row a and column b
is how much a is preferred to b minus how much b is preferred to a.

The matrix is computed pair by pair, so it is meant for small problems.

Examples:
  outrank pairwise examples/cars.yaml
  outrank pairwise examples/cars.yaml --output csv --output-file pairs.csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecutePairwise(rootCtx, cfg, cacheManager, outwriter.NewOutWriter()); err != nil {
			contract.LogFatal("Cannot compute pairwise preferences", err)
		}
	},
}
