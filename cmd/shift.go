package cmd

import (
	"errors"

	"github.com/huangsam/outrank/core"
	"github.com/huangsam/outrank/internal/contract"
	"github.com/huangsam/outrank/internal/outwriter"
	"github.com/spf13/cobra"
)

// shiftCmd compares rankings before and after a performance change.
var shiftCmd = &cobra.Command{
	Use:   "shift <problem-file>",
	Short: "Compare the ranking before and after changing one performance.",
	Long: `Add --delta to the performance of one alternative on one criterion and
show how every rank and net flow moves.

The delta is in the units of the problem file. For a min criterion a negative
delta is an improvement.

Examples:
  # What if Car A were two points safer?
  outrank shift examples/cars.yaml --criterion safety --alternative "Car A" --delta 2

  # What if the cheapest laptop cost 100 more?
  outrank shift examples/laptops.csv --criterion price --alternative budget --delta 100`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if err := sharedSetup(rootCtx, cmd, args); err != nil {
			return err
		}
		if cfg.ShiftCriterion == "" || cfg.ShiftAlternative == "" {
			return errors.New("--criterion and --alternative are required")
		}
		return nil
	},
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteShift(rootCtx, cfg, cacheManager, outwriter.NewOutWriter()); err != nil {
			contract.LogFatal("Cannot shift performance", err)
		}
	},
}
