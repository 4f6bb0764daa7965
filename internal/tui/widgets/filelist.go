package widgets

import (
	"fmt"
	"strings"

	"github.com/joe/file-finder/internal/finder"
	"github.com/joe/file-finder/internal/tui/shared"
)

// FileListView is what the file list widget draws.
type FileListView struct {
	Files    []finder.FoundFile
	Cursor   int
	Selected map[string]bool
	Window   int
	MaxWidth int
}

// NewFileListWidget creates a widget that displays a scrolling window of the
// found files around the cursor, with selection marks.
func NewFileListWidget(getView func() FileListView) func() string {
	return func() string {
		view := getView()
		if len(view.Files) == 0 {
			return shared.RenderDim("No files")
		}

		window := view.Window
		if window <= 0 {
			window = shared.ListWindowSize
		}

		start, end := visibleRange(len(view.Files), view.Cursor, window)

		var builder strings.Builder

		if start > 0 {
			fmt.Fprintf(&builder, "%s\n", shared.RenderDim(fmt.Sprintf("  ↑ %d more", start)))
		}

		for i := start; i < end; i++ {
			file := view.Files[i]

			mark := "[ ]"
			if view.Selected[file.Path] {
				mark = "[x]"
			}

			path := file.Path
			if view.MaxWidth > 0 {
				path = shared.TruncatePath(path, view.MaxWidth)
			}

			line := fmt.Sprintf("%s %s  %s", mark, path, shared.RenderDim(shared.FormatBytes(file.Size)))
			if i == view.Cursor {
				builder.WriteString(shared.CursorSymbol() + shared.RenderSelected(line))
			} else {
				builder.WriteString("  " + line)
			}

			builder.WriteString("\n")
		}

		if end < len(view.Files) {
			fmt.Fprintf(&builder, "%s\n", shared.RenderDim(fmt.Sprintf("  ↓ %d more", len(view.Files)-end)))
		}

		return strings.TrimSuffix(builder.String(), "\n")
	}
}

// visibleRange returns the [start, end) window of size window that keeps
// cursor in view.
func visibleRange(total, cursor, window int) (int, int) {
	if total <= window {
		return 0, total
	}

	cursor = min(max(cursor, 0), total-1)
	start := max(cursor-window/2, 0) //nolint:mnd // Centre the cursor
	end := start + window

	if end > total {
		end = total
		start = total - window
	}

	return start, end
}
