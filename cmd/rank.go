package cmd

import (
	"github.com/huangsam/outrank/core"
	"github.com/huangsam/outrank/internal/contract"
	"github.com/huangsam/outrank/internal/outwriter"
	"github.com/spf13/cobra"
)

// rankCmd ranks the alternatives of a problem.
var rankCmd = &cobra.Command{
	Use:   "rank <problem-file>",
	Short: "Rank alternatives by PROMETHEE II net flow.",
	Long: `Solve a multi-criteria problem and rank its alternatives from best to worst.

Each criterion compares every pair of alternatives through its preference
function. The weighted comparisons add up to a positive flow (how much an
alternative outranks the others) and a negative flow (how much it is outranked).
Alternatives are ranked by net flow, the difference of the two.

Examples:
  # Rank the alternatives of a YAML problem
  outrank rank examples/cars.yaml

  # Show flows and per-criterion contributions
  outrank rank examples/cars.yaml --detail --explain

  # What if safety mattered less?
  outrank rank examples/cars.yaml --weights-override safety:2

  # Rank a parquet table described by a criteria file
  outrank rank laptops.parquet --criteria examples/laptops_criteria.yaml

  # Export the ranking as a bar chart
  outrank rank examples/laptops.csv --output chart --output-file ranking.png`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRank(rootCtx, cfg, cacheManager, outwriter.NewOutWriter()); err != nil {
			contract.LogFatal("Cannot rank alternatives", err)
		}
	},
}
