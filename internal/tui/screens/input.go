package screens

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joe/file-finder/internal/config"
	"github.com/joe/file-finder/internal/finder"
	"github.com/joe/file-finder/internal/tui/shared"
)

// Input fields in focus order.
const (
	fieldRoots = iota
	fieldTypes
	fieldDest
	fieldCount
)

// InputScreen collects roots, the file type selection and the destination.
type InputScreen struct {
	config          *config.Config
	engine          *finder.Engine
	inputs          []textinput.Model
	focusIndex      int
	presetIndex     int
	completer       pathCompleter
	validationError string
	status          string
}

// NewInputScreen creates a new input screen
func NewInputScreen(cfg *config.Config, engine *finder.Engine) *InputScreen {
	roots := textinput.New()
	roots.Placeholder = "/path/to/folder, or " + strings.Join(finder.QuickFolders, " / ")

	types := textinput.New()
	types.Placeholder = "custom extensions, e.g. .pdf,.docx (empty uses the preset)"
	types.SetValue(cfg.Types)

	dest := textinput.New()
	dest.Placeholder = "/path/to/destination"
	dest.SetValue(cfg.DestPath)

	screen := &InputScreen{
		config: cfg,
		engine: engine,
		inputs: []textinput.Model{roots, types, dest},
	}

	screen.presetIndex = screen.findPreset(engine.Selection().Preset)
	if len(engine.Roots()) > 0 {
		screen.focusIndex = fieldTypes
	}

	screen.refocus()

	return screen
}

// Init implements tea.Model
func (s InputScreen) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (s InputScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return s.handleWindowSize(msg)
	case tea.KeyMsg:
		return s.handleKeyMsg(msg)
	}

	var cmd tea.Cmd
	s.inputs[s.focusIndex], cmd = s.inputs[s.focusIndex].Update(msg)

	return s, cmd
}

// View implements tea.Model
func (s InputScreen) View() string {
	return shared.RenderBox(s.RenderContent(), 0)
}

// RenderContent returns the screen body without the surrounding box
func (s InputScreen) RenderContent() string {
	var builder strings.Builder

	builder.WriteString(shared.RenderTitle("File Finder") + "\n\n")

	builder.WriteString(shared.RenderLabel("Folders to search:") + "\n")
	for _, root := range s.engine.Roots() {
		fmt.Fprintf(&builder, "  %s %s\n", shared.SuccessSymbol(), root)
	}
	builder.WriteString(s.inputs[fieldRoots].View() + "\n")
	s.renderCompletions(&builder, fieldRoots)

	fmt.Fprintf(&builder, "\n%s %s\n", shared.RenderLabel("File types:"), s.typeSummary())
	builder.WriteString(s.inputs[fieldTypes].View() + "\n")

	builder.WriteString("\n" + shared.RenderLabel("Destination:") + "\n")
	builder.WriteString(s.inputs[fieldDest].View() + "\n")
	s.renderCompletions(&builder, fieldDest)

	builder.WriteString("\n" + renderOptions(s.config) + "\n")

	if s.validationError != "" {
		builder.WriteString("\n" + shared.RenderError("Error: "+s.validationError) + "\n")
	} else if s.status != "" {
		builder.WriteString("\n" + shared.RenderDim(s.status) + "\n")
	}

	builder.WriteString("\n" + shared.RenderKeyHelp(
		"enter", "add / next / start",
		"↑↓", "switch fields",
		"tab", "complete path",
		"ctrl+p", "next preset",
		"ctrl+x", "remove last folder",
	))
	builder.WriteString("\n" + renderOptionHelp())

	return builder.String()
}

// Focus returns the index of the focused field (for testing)
func (s InputScreen) Focus() int {
	return s.focusIndex
}

// ValidationError returns the last validation error (for testing)
func (s InputScreen) ValidationError() string {
	return s.validationError
}

// ============================================================================
// Key Handling
// ============================================================================

//nolint:cyclop,exhaustive // One branch per shortcut
func (s InputScreen) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return s, tea.Quit
	case tea.KeyEsc:
		s.inputs[s.focusIndex].SetValue("")
		s.completer = s.completer.reset()
		s.validationError = ""

		return s, nil
	case tea.KeyDown:
		return s.moveFocus(1), nil
	case tea.KeyUp:
		return s.moveFocus(-1), nil
	case tea.KeyTab:
		return s.complete(true), nil
	case tea.KeyShiftTab:
		return s.complete(false), nil
	case tea.KeyEnter:
		return s.handleEnter()
	}

	switch msg.String() {
	case "ctrl+p":
		return s.cyclePreset(), nil
	case "ctrl+x":
		return s.removeLastRoot(), nil
	}

	if handleOptionKey(s.config, msg.String()) {
		return s, nil
	}

	s.completer = s.completer.reset()
	s.validationError = ""

	var cmd tea.Cmd
	s.inputs[s.focusIndex], cmd = s.inputs[s.focusIndex].Update(msg)

	return s, cmd
}

func (s InputScreen) handleEnter() (tea.Model, tea.Cmd) {
	s.completer = s.completer.reset()
	s.validationError = ""

	switch s.focusIndex {
	case fieldRoots:
		value := strings.TrimSpace(s.inputs[fieldRoots].Value())
		if value == "" {
			return s.moveFocus(1), nil
		}

		return s.addRoot(value), nil
	case fieldTypes:
		if err := s.applySelection(); err != nil {
			s.validationError = err.Error()
			return s, nil
		}

		return s.moveFocus(1), nil
	default:
		return s.submit()
	}
}

func (s InputScreen) addRoot(value string) InputScreen {
	var (
		stored string
		err    error
	)

	if slices.ContainsFunc(finder.QuickFolders, func(name string) bool { return strings.EqualFold(name, value) }) {
		stored, err = s.engine.QuickFolder(value)
	} else {
		stored, err = s.engine.AddRoot(expandHomePath(value))
	}

	if err != nil {
		s.validationError = err.Error()
		return s
	}

	s.inputs[fieldRoots].SetValue("")
	s.status = "Added " + stored

	return s
}

func (s InputScreen) removeLastRoot() InputScreen {
	roots := s.engine.Roots()
	if len(roots) == 0 {
		return s
	}

	last := roots[len(roots)-1]
	s.engine.RemoveRoot(last)
	s.status = "Removed " + last

	return s
}

func (s InputScreen) submit() (tea.Model, tea.Cmd) {
	if len(s.engine.Roots()) == 0 {
		s.validationError = finder.ErrNoRoots.Error()
		return s, nil
	}

	if err := s.applySelection(); err != nil {
		s.validationError = err.Error()
		return s, nil
	}

	dest, err := s.engine.ValidateDestination(expandDest(s.inputs[fieldDest].Value()))
	if err != nil {
		s.validationError = err.Error()
		return s, nil
	}

	s.config.DestPath = dest
	s.config.Roots = s.engine.Roots()

	return s, func() tea.Msg {
		return shared.TransitionToScanMsg{}
	}
}

// applySelection stores the typed custom extensions, or the current preset
// when the field is empty, and checks that it resolves.
func (s InputScreen) applySelection() error {
	sel := finder.TypeSelection{Custom: strings.TrimSpace(s.inputs[fieldTypes].Value())}
	if sel.Custom == "" && len(s.engine.Presets) > 0 {
		sel.Preset = s.engine.Presets[s.presetIndex].Name
	}

	s.engine.SetSelection(sel)
	s.config.Types = sel.Custom
	s.config.Preset = sel.Preset

	_, err := s.engine.Extensions()
	if errors.Is(err, finder.ErrNoExtensions) && sel.Preset == "" {
		return fmt.Errorf("%w: type some extensions or clear the field to use a preset", err)
	}

	return err
}

func (s InputScreen) cyclePreset() InputScreen {
	if len(s.engine.Presets) == 0 {
		return s
	}

	s.presetIndex = (s.presetIndex + 1) % len(s.engine.Presets)
	s.inputs[fieldTypes].SetValue("")
	s.validationError = ""

	return s
}

func (s InputScreen) complete(forward bool) InputScreen {
	if s.focusIndex == fieldTypes {
		return s
	}

	var (
		value string
		ok    bool
	)

	if forward {
		s.completer, value, ok = s.completer.next(s.inputs[s.focusIndex].Value())
	} else {
		s.completer, value, ok = s.completer.previous()
	}

	if ok {
		s.inputs[s.focusIndex].SetValue(value)
		s.inputs[s.focusIndex].CursorEnd()
	}

	return s
}

// ============================================================================
// Message Handlers
// ============================================================================

func (s InputScreen) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	width := max(msg.Width-inputWidthOverhead, minInputWidth)
	for i := range s.inputs {
		s.inputs[i].Width = width
	}

	return s, nil
}

// ============================================================================
// Field Navigation
// ============================================================================

func (s InputScreen) moveFocus(delta int) InputScreen {
	s.focusIndex = min(max(s.focusIndex+delta, 0), fieldCount-1)
	s.completer = s.completer.reset()
	s.refocus()

	return s
}

func (s *InputScreen) refocus() {
	for i := range s.inputs {
		if i == s.focusIndex {
			s.inputs[i].Focus()
			s.inputs[i].Prompt = promptArrow
		} else {
			s.inputs[i].Blur()
			s.inputs[i].Prompt = "  "
		}
	}
}

// ============================================================================
// Rendering
// ============================================================================

func (s InputScreen) renderCompletions(builder *strings.Builder, field int) {
	if s.focusIndex != field {
		return
	}

	for _, line := range s.completer.view(maxCompletionsShown) {
		builder.WriteString(shared.RenderDim(line) + "\n")
	}
}

func (s InputScreen) typeSummary() string {
	if custom := finder.ParseCustomTypes(s.inputs[fieldTypes].Value()); len(custom) > 0 {
		return "custom " + strings.Join(custom, " ")
	}

	if len(s.engine.Presets) == 0 {
		return "none"
	}

	preset := s.engine.Presets[s.presetIndex]

	return fmt.Sprintf("%s (%s)", preset.Name, strings.Join(preset.Extensions, " "))
}

func (s InputScreen) findPreset(name string) int {
	for i, preset := range s.engine.Presets {
		if strings.EqualFold(preset.Name, name) {
			return i
		}
	}

	return 0
}

func expandDest(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	return expandHomePath(value)
}

// unexported constants.
const (
	inputWidthOverhead  = 10
	maxCompletionsShown = 8
	minInputWidth       = 20
	promptArrow         = "> "
)
