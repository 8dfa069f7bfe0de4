package contract

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// LogProblemHeader prints a concise, 2-line header describing the loaded problem.
func LogProblemHeader(w io.Writer, cfg *Config, problemName string, alternatives, criteria int) {
	if problemName == "" {
		problemName = strings.TrimSuffix(filepath.Base(cfg.ProblemPath), filepath.Ext(cfg.ProblemPath))
	}

	// Line 1: The problem and its source format
	line1 := fmt.Sprintf("Problem: %s (Format: %s)", problemName, cfg.Format)

	// Line 2: The shape of the performance table
	line2 := fmt.Sprintf("Table: %d alternatives × %d criteria", alternatives, criteria)
	if len(cfg.Flips) > 0 {
		line2 += fmt.Sprintf(" (flipped: %s)", strings.Join(cfg.Flips, ", "))
	}

	if cfg.UseEmojis {
		line1 = "🔎 " + line1
		line2 = "📐 " + line2
	}
	_, _ = fmt.Fprintln(w, line1)
	_, _ = fmt.Fprintln(w, line2)
}
