package screens

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joe/file-finder/internal/config"
	"github.com/joe/file-finder/internal/finder"
	"github.com/joe/file-finder/internal/tui/shared"
	"github.com/joe/file-finder/internal/tui/widgets"
)

// DefaultExportPath is where the list is exported when no --export was given.
const DefaultExportPath = "file-finder-list.txt"

// ConfirmScreen shows the found files and lets the user trim the list,
// pick a subset and start a transfer.
type ConfirmScreen struct {
	config        *config.Config
	engine        *finder.Engine
	cursor        int
	selected      map[string]bool
	confirmDelete bool
	width         int
	height        int
	status        string
	statusIsError bool
}

// NewConfirmScreen creates a confirm screen over the engine's current list
func NewConfirmScreen(cfg *config.Config, engine *finder.Engine) *ConfirmScreen {
	return &ConfirmScreen{
		config:   cfg,
		engine:   engine,
		selected: make(map[string]bool),
	}
}

// Init implements tea.Model
func (s ConfirmScreen) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (s ConfirmScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
	case tea.KeyMsg:
		return s.handleKeyMsg(msg)
	case shared.StatusMsg:
		s.status, s.statusIsError = msg.Text, msg.IsError
	}

	return s, nil
}

// View implements tea.Model
func (s ConfirmScreen) View() string {
	return shared.RenderBox(s.RenderContent(), s.width)
}

// RenderContent returns the screen body without the surrounding box
func (s ConfirmScreen) RenderContent() string {
	var builder strings.Builder

	files := s.engine.Files()

	fmt.Fprintf(&builder, "%s %s, %s\n",
		shared.RenderTitle("Found"),
		shared.Plural(len(files), "file", "files"),
		shared.FormatBytes(s.engine.TotalSize()))
	fmt.Fprintf(&builder, "%s %s %s\n\n",
		shared.RenderLabel("Destination:"), s.config.DestPath,
		shared.RenderDim(fmt.Sprintf("(%s selected)", s.selectionLabel())))

	widget := widgets.NewFileListWidget(func() widgets.FileListView {
		return widgets.FileListView{
			Files:    files,
			Cursor:   s.cursor,
			Selected: s.selected,
			Window:   s.window(),
			MaxWidth: max(s.width-pathWidthOverhead-fileSizeWidth, 0),
		}
	})
	builder.WriteString(widget() + "\n\n")

	builder.WriteString(renderOptions(s.config) + "\n")

	switch {
	case s.confirmDelete:
		fmt.Fprintf(&builder, "\n%s\n", shared.RenderWarning(fmt.Sprintf(
			"Delete %s from disk? This cannot be undone. y/n", shared.Plural(len(s.targets()), "file", "files"))))
	case s.status != "" && s.statusIsError:
		builder.WriteString("\n" + shared.RenderError(s.status) + "\n")
	case s.status != "":
		builder.WriteString("\n" + shared.RenderDim(s.status) + "\n")
	}

	builder.WriteString("\n" + shared.RenderKeyHelp(
		"enter", "start",
		"space", "select",
		"a", "select all/none",
		"d", "remove from list",
		"D", "delete from disk",
		"x", "export list",
		"esc", "back",
	))
	builder.WriteString("\n" + renderOptionHelp())

	return builder.String()
}

// Cursor returns the cursor row (for testing)
func (s ConfirmScreen) Cursor() int {
	return s.cursor
}

// Selected returns the selected paths in list order (for testing)
func (s ConfirmScreen) Selected() []string {
	return s.selectedPaths()
}

// ============================================================================
// Key Handling
// ============================================================================

//nolint:cyclop,exhaustive // One branch per shortcut
func (s ConfirmScreen) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if s.confirmDelete {
		return s.handleDeleteAnswer(msg)
	}

	total := len(s.engine.Files())

	switch msg.Type {
	case tea.KeyCtrlC:
		return s, tea.Quit
	case tea.KeyEsc:
		return s, func() tea.Msg { return shared.TransitionToInputMsg{} }
	case tea.KeyUp:
		s.cursor = max(s.cursor-1, 0)
		return s, nil
	case tea.KeyDown:
		s.cursor = max(min(s.cursor+1, total-1), 0)
		return s, nil
	case tea.KeyPgUp:
		s.cursor = max(s.cursor-s.window(), 0)
		return s, nil
	case tea.KeyPgDown:
		s.cursor = max(min(s.cursor+s.window(), total-1), 0)
		return s, nil
	case tea.KeyHome:
		s.cursor = 0
		return s, nil
	case tea.KeyEnd:
		s.cursor = max(total-1, 0)
		return s, nil
	case tea.KeySpace:
		s.toggleCursor()
		return s, nil
	case tea.KeyEnter:
		return s.start()
	}

	switch msg.String() {
	case "a":
		s.toggleAll()
	case "d":
		s.removeTargets()
	case "D":
		if len(s.targets()) > 0 {
			s.confirmDelete = true
		}
	case "x":
		s.export()
	default:
		handleOptionKey(s.config, msg.String())
	}

	return s, nil
}

func (s ConfirmScreen) handleDeleteAnswer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s.confirmDelete = false

	if msg.String() != "y" && msg.String() != "Y" {
		s.setStatus("Delete cancelled", false)
		return s, nil
	}

	targets := s.targets()
	failures := s.engine.DeleteFromDisk(targets...)
	s.forget(targets)

	if len(failures) > 0 {
		s.setStatus(fmt.Sprintf("Deleted %s, %s failed: %s",
			shared.FormatCount(len(targets)-len(failures)),
			shared.FormatCount(len(failures)),
			failures[0].String()), true)

		return s, nil
	}

	s.setStatus("Deleted "+shared.Plural(len(targets), "file", "files"), false)

	return s, nil
}

func (s ConfirmScreen) start() (tea.Model, tea.Cmd) {
	if len(s.engine.Files()) == 0 {
		s.setStatus(finder.ErrNoFiles.Error(), true)
		return s, nil
	}

	req := finder.TransferRequest{
		Dest:     s.config.DestPath,
		Preserve: s.config.PreserveStructure(),
		Policy:   s.config.Conflict,
		Mode:     s.config.Mode(),
		Files:    s.selectedPaths(),
		Control:  finder.NewController(),
	}

	return s, func() tea.Msg {
		return shared.TransitionToTransferMsg{Request: req}
	}
}

// ============================================================================
// List Editing
// ============================================================================

// targets returns the selected paths, or the row under the cursor when
// nothing is selected.
func (s ConfirmScreen) targets() []string {
	if selected := s.selectedPaths(); len(selected) > 0 {
		return selected
	}

	files := s.engine.Files()
	if s.cursor < len(files) {
		return []string{files[s.cursor].Path}
	}

	return nil
}

func (s ConfirmScreen) selectedPaths() []string {
	var paths []string

	for _, file := range s.engine.Files() {
		if s.selected[file.Path] {
			paths = append(paths, file.Path)
		}
	}

	return paths
}

func (s ConfirmScreen) selectionLabel() string {
	if n := len(s.selectedPaths()); n > 0 {
		return shared.FormatCount(n)
	}

	return "all"
}

func (s *ConfirmScreen) toggleCursor() {
	files := s.engine.Files()
	if s.cursor >= len(files) {
		return
	}

	path := files[s.cursor].Path
	if s.selected[path] {
		delete(s.selected, path)
	} else {
		s.selected[path] = true
	}
}

func (s *ConfirmScreen) toggleAll() {
	if len(s.selectedPaths()) > 0 {
		s.selected = make(map[string]bool)
		return
	}

	for _, file := range s.engine.Files() {
		s.selected[file.Path] = true
	}
}

func (s *ConfirmScreen) removeTargets() {
	targets := s.targets()
	if len(targets) == 0 {
		return
	}

	removed := s.engine.Remove(targets...)
	s.forget(targets)
	s.setStatus("Removed "+shared.Plural(removed, "file", "files")+" from the list", false)
}

func (s *ConfirmScreen) forget(paths []string) {
	for _, path := range paths {
		delete(s.selected, path)
	}

	s.cursor = max(min(s.cursor, len(s.engine.Files())-1), 0)
}

func (s *ConfirmScreen) export() {
	path := s.config.ExportList
	if path == "" {
		path = DefaultExportPath
	}

	if err := s.engine.ExportList(path); err != nil {
		s.setStatus("Export failed: "+err.Error(), true)
		return
	}

	s.setStatus("Exported "+shared.Plural(len(s.engine.Files()), "path", "paths")+" to "+path, false)
}

func (s *ConfirmScreen) setStatus(text string, isError bool) {
	s.status, s.statusIsError = text, isError
}

func (s ConfirmScreen) window() int {
	if s.height > confirmChromeHeight+shared.ListWindowSize {
		return s.height - confirmChromeHeight
	}

	return shared.ListWindowSize
}

// unexported constants.
const (
	confirmChromeHeight = 20
	fileSizeWidth       = 14
)
