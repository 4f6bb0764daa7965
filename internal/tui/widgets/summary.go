package widgets

import (
	"fmt"
	"strings"
	"time"

	"github.com/joe/file-finder/internal/config"
	"github.com/joe/file-finder/internal/finder"
	"github.com/joe/file-finder/internal/tui/shared"
)

// NewSummaryWidget creates a widget that displays the outcome of a transfer.
// Returns a closure that formats the summary from the result and error.
func NewSummaryWidget(getResult func() *finder.TransferResult, err error, elapsed time.Duration) func() string {
	return func() string {
		result := getResult()
		if result == nil {
			if err != nil {
				return fmt.Sprintf("Error: %v", err)
			}

			return "No transfer has run"
		}

		verb := "Copied"
		if result.Mode == config.Move {
			verb = "Moved"
		}

		var builder strings.Builder

		switch {
		case err != nil:
			fmt.Fprintf(&builder, "Error: %v\n\n", err)
		case result.Stopped:
			fmt.Fprintf(&builder, "Stopped after %s of %s\n\n",
				shared.FormatCount(result.Processed), shared.Plural(result.Total, "file", "files"))
		case result.Failed() > 0:
			fmt.Fprintf(&builder, "Finished with %s\n\n", shared.Plural(result.Failed(), "error", "errors"))
		default:
			builder.WriteString("Transfer complete\n\n")
		}

		fmt.Fprintf(&builder, "%s: %s (%s)\n", verb, shared.FormatCount(result.Transferred), shared.FormatBytes(result.Bytes))
		fmt.Fprintf(&builder, "Skipped: %s\n", shared.FormatCount(result.Skipped))
		fmt.Fprintf(&builder, "Failed: %s\n", shared.FormatCount(result.Failed()))
		fmt.Fprintf(&builder, "Time elapsed: %s", shared.FormatDuration(elapsed))

		return builder.String()
	}
}
