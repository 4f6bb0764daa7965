package screens

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joe/file-finder/internal/finder"
	"github.com/joe/file-finder/internal/tui/shared"
	"github.com/joe/file-finder/internal/tui/widgets"
)

// DuplicatesScreen walks the duplicate sets one at a time.
type DuplicatesScreen struct {
	engine   *finder.Engine
	cursor   int
	removed  int
	width    int
	errorMsg string
}

// NewDuplicatesScreen creates a duplicates screen over engine's pending sets
func NewDuplicatesScreen(engine *finder.Engine) *DuplicatesScreen {
	return &DuplicatesScreen{engine: engine}
}

// Init implements tea.Model
func (s DuplicatesScreen) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (s DuplicatesScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
	case tea.KeyMsg:
		return s.handleKeyMsg(msg)
	}

	return s, nil
}

// View implements tea.Model
func (s DuplicatesScreen) View() string {
	return shared.RenderBox(s.RenderContent(), s.width)
}

// RenderContent returns the screen body without the surrounding box
func (s DuplicatesScreen) RenderContent() string {
	var builder strings.Builder

	builder.WriteString(shared.RenderTitle("Duplicates") + "\n")
	builder.WriteString(shared.RenderDim("Same name and modification time in more than one place. Pick the copy to keep.") + "\n\n")

	widget := widgets.NewDuplicateSetWidget(s.view)
	builder.WriteString(widget() + "\n")

	if s.removed > 0 {
		builder.WriteString("\n" + shared.RenderDim("Removed from the list so far: "+shared.FormatCount(s.removed)) + "\n")
	}

	if s.errorMsg != "" {
		builder.WriteString("\n" + shared.RenderError(s.errorMsg) + "\n")
	}

	builder.WriteString("\n" + shared.RenderKeyHelp(
		"↑↓", "choose",
		"enter", "keep this one",
		"s", "skip all (keep first)",
		"a", "keep first of every set",
		"ctrl+c", "quit",
	))

	return builder.String()
}

// Cursor returns the highlighted member index (for testing)
func (s DuplicatesScreen) Cursor() int {
	return s.cursor
}

//nolint:exhaustive // Only handling specific key types
func (s DuplicatesScreen) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	set, ok := s.engine.CurrentDuplicate()
	if !ok {
		return s, toConfirm
	}

	switch msg.Type {
	case tea.KeyCtrlC:
		return s, tea.Quit
	case tea.KeyUp:
		s.cursor = max(s.cursor-1, 0)
		return s, nil
	case tea.KeyDown:
		s.cursor = min(s.cursor+1, len(set.Paths)-1)
		return s, nil
	case tea.KeyEnter:
		return s.keep(set.Paths[s.cursor])
	}

	switch msg.String() {
	case "s":
		s.removed += s.engine.SkipAllDuplicates()
		return s, toConfirm
	case "a":
		s.removed += s.engine.KeepAllDuplicates()
		return s, toConfirm
	}

	return s, nil
}

func (s DuplicatesScreen) keep(path string) (tea.Model, tea.Cmd) {
	removed, err := s.engine.ResolveCurrent(path)
	if err != nil {
		s.errorMsg = err.Error()
		return s, nil
	}

	s.removed += removed
	s.cursor = 0
	s.errorMsg = ""

	if s.engine.DuplicateState() == finder.Idle {
		return s, toConfirm
	}

	return s, nil
}

func (s DuplicatesScreen) view() (widgets.DuplicateView, bool) {
	set, ok := s.engine.CurrentDuplicate()
	if !ok {
		return widgets.DuplicateView{}, false
	}

	pos, total := s.engine.DuplicatePosition()

	return widgets.DuplicateView{
		Set:      set,
		Position: pos,
		Total:    total,
		Cursor:   s.cursor,
		MaxWidth: max(s.width-pathWidthOverhead, 0),
	}, true
}

func toConfirm() tea.Msg {
	return shared.TransitionToConfirmMsg{}
}

// unexported constants.
const (
	pathWidthOverhead = 12
)
