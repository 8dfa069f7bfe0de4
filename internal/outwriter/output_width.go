package outwriter

import (
	"os"

	"github.com/huangsam/outrank/internal/contract"
	"golang.org/x/term"
)

// GetMaxTableNameWidth calculates the maximum width for alternative names in table
// output based on terminal width and table configuration.
func GetMaxTableNameWidth(cfg *contract.Config) int {
	termWidth := cfg.Width
	if termWidth <= 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // CI and pipes
		} else {
			termWidth = detectedWidth
		}
	}

	// Rank + Net + Label with borders and padding
	baseWidth := 30
	if cfg.Detail {
		baseWidth += 24 // Phi+ and Phi-
	}
	if cfg.Explain {
		baseWidth += 40
	}
	baseWidth += 20

	available := termWidth - baseWidth
	if available < 12 {
		return 12
	}
	if available > 60 {
		return 60
	}
	return available
}
