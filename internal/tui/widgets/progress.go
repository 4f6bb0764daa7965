package widgets

import (
	"fmt"

	"github.com/joe/file-finder/internal/tui/shared"
)

// TransferCounts is a running tally of a transfer batch.
type TransferCounts struct {
	Processed   int
	Total       int
	Transferred int
	Skipped     int
	Failed      int
	Bytes       int64
}

// NewProgressWidget creates a widget that displays transfer progress.
// Returns a closure that formats the current counts.
func NewProgressWidget(getCounts func() TransferCounts) func() string {
	return func() string {
		counts := getCounts()

		return fmt.Sprintf("Files: %s / %s (%.1f%%)\nDone: %s  Skipped: %s  Failed: %s\nBytes: %s",
			shared.FormatCount(counts.Processed),
			shared.FormatCount(counts.Total),
			shared.Fraction(counts.Processed, counts.Total)*shared.PercentageScale,
			shared.FormatCount(counts.Transferred),
			shared.FormatCount(counts.Skipped),
			shared.FormatCount(counts.Failed),
			shared.FormatBytes(counts.Bytes))
	}
}
