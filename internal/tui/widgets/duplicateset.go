package widgets

import (
	"fmt"
	"strings"

	"github.com/joe/file-finder/internal/finder"
	"github.com/joe/file-finder/internal/tui/shared"
)

// DuplicateView is what the duplicate set widget draws.
type DuplicateView struct {
	Set      finder.DuplicateSet
	Position int
	Total    int
	Cursor   int
	MaxWidth int
}

// NewDuplicateSetWidget creates a widget that shows one duplicate set: the
// shared name and modification time, then every location with the cursor.
func NewDuplicateSetWidget(getView func() (DuplicateView, bool)) func() string {
	return func() string {
		view, ok := getView()
		if !ok {
			return shared.RenderSuccess(shared.SuccessSymbol() + " No duplicates left")
		}

		var builder strings.Builder

		fmt.Fprintf(&builder, "%s %s\n",
			shared.RenderLabel(fmt.Sprintf("Set %d of %d:", view.Position, view.Total)),
			view.Set.Name)
		fmt.Fprintf(&builder, "%s\n\n", shared.RenderDim("Modified "+shared.FormatModTime(view.Set.ModTimeSeconds())))

		for i, path := range view.Set.Paths {
			if view.MaxWidth > 0 {
				path = shared.TruncatePath(path, view.MaxWidth)
			}

			if i == view.Cursor {
				builder.WriteString(shared.CursorSymbol() + shared.RenderSelected(path))
			} else {
				builder.WriteString("  " + path)
			}

			if i < len(view.Set.Paths)-1 {
				builder.WriteString("\n")
			}
		}

		return builder.String()
	}
}
