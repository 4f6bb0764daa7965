package shared

import (
	"fmt"
	"strings"

	"github.com/joe/file-finder/internal/finder"
	pkgerrors "github.com/joe/file-finder/pkg/errors"
)

// Error display limits for different screen contexts
const (
	// ErrorLimitInProgress is for the transfer screen while a batch runs
	ErrorLimitInProgress = 3

	// ErrorLimitComplete is for the summary screen
	ErrorLimitComplete = 10
)

// ErrorDisplayContext defines the context in which errors are being displayed
type ErrorDisplayContext int

const (
	// ContextInProgress indicates errors shown during a transfer
	ContextInProgress ErrorDisplayContext = iota
	// ContextComplete indicates errors shown after a transfer
	ContextComplete
)

// ErrorListConfig holds configuration for rendering error lists
type ErrorListConfig struct {
	Failures []finder.Failure
	Context  ErrorDisplayContext
	MaxWidth int
}

// RenderErrorList renders failures with their suggestions, up to the limit
// of the display context.
func RenderErrorList(config ErrorListConfig) string {
	if len(config.Failures) == 0 {
		return ""
	}

	var builder strings.Builder

	enricher := pkgerrors.NewEnricher()
	limit := ErrorLimitComplete
	if config.Context == ContextInProgress {
		limit = ErrorLimitInProgress
	}

	for i, failure := range config.Failures {
		if i >= limit {
			remaining := len(config.Failures) - limit
			if config.Context == ContextInProgress {
				fmt.Fprintf(&builder, "  ... and %d more (see summary)\n", remaining)
			} else {
				fmt.Fprintf(&builder, "... and %d more error(s)\n", remaining)
			}

			break
		}

		displayPath := failure.Source
		if config.MaxWidth > 0 {
			displayPath = TruncatePath(displayPath, config.MaxWidth)
		}

		fmt.Fprintf(&builder, "  %s %s\n", ErrorSymbol(), ErrorStyle().Render(displayPath))

		msg := failure.Message()
		if config.MaxWidth > EllipsisLength && len(msg) > config.MaxWidth {
			msg = msg[:config.MaxWidth-EllipsisLength] + "..."
		}

		fmt.Fprintf(&builder, "    %s\n", msg)

		if config.Context == ContextInProgress {
			continue
		}

		suggestions := pkgerrors.FormatSuggestions(enricher.Enrich(failure.Err, failure.Source))
		if suggestions != "" {
			fmt.Fprintf(&builder, "    %s\n", strings.ReplaceAll(suggestions, "\n", "\n    "))
		}
	}

	return builder.String()
}
