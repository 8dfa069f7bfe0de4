package cmd

import (
	"github.com/huangsam/outrank/core"
	"github.com/huangsam/outrank/internal/contract"
	"github.com/huangsam/outrank/internal/outwriter"
	"github.com/spf13/cobra"
)

// verifyCmd checks the fast flow algorithm against the pairwise reference.
var verifyCmd = &cobra.Command{
	Use:   "verify <problem-file>",
	Short: "Check fast flows against the pairwise reference.",
	Long: `Compute the flows of every ramp criterion (VShape, Linear) twice: with the
sorted sliding-window algorithm and with the quadratic pairwise reference.
Print the largest deviation per criterion.

Usual and UShape criteria always use the reference and pass trivially.
The command exits with a non-zero status when any deviation exceeds --tolerance.

Examples:
  outrank verify examples/laptops.csv
  outrank verify examples/laptops.csv --tolerance 1e-12`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteVerify(rootCtx, cfg, cacheManager, outwriter.NewOutWriter()); err != nil {
			contract.LogFatal("Verification failed", err)
		}
	},
}
