package interp

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/vic/lcc/pkg/lambda"
)

// WriteStats prints a statistics block with per-rule rates.
func WriteStats(w io.Writer, stats lambda.Stats, elapsed time.Duration) {
	seconds := elapsed.Seconds()
	rate := func(n uint64) string {
		if seconds > 0 {
			return fmt.Sprintf(" (%.2f ops/sec)", float64(n)/seconds)
		}
		return ""
	}
	heading := color.New(color.Bold)

	heading.Fprintf(w, "\nStats:\n")
	fmt.Fprintf(w, "Time: %v\n", elapsed)
	fmt.Fprintf(w, "Total Reductions: %d%s\n", stats.TotalReductions, rate(stats.TotalReductions))

	heading.Fprintf(w, "\nBreakdown:\n")
	fmt.Fprintf(w, "  Beta:          %6d%s\n", stats.Beta, rate(stats.Beta))
	fmt.Fprintf(w, "  Erasure:       %6d%s\n", stats.Erasures, rate(stats.Erasures))
	fmt.Fprintf(w, "  Duplication:   %6d%s\n", stats.Duplications, rate(stats.Duplications))

	if stats.Substitutions > 0 {
		fmt.Fprintf(w, "  Substitutions: %6d\n", stats.Substitutions)
	}
	if stats.NodesCopied > 0 {
		fmt.Fprintf(w, "  Nodes Copied:  %6d\n", stats.NodesCopied)
	}
}
