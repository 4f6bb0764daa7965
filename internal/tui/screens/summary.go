package screens

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joe/file-finder/internal/config"
	"github.com/joe/file-finder/internal/finder"
	"github.com/joe/file-finder/internal/tui/shared"
	"github.com/joe/file-finder/internal/tui/widgets"
)

// DefaultErrorLogPath is where failures are written when no --error-log was given.
const DefaultErrorLogPath = "file-finder-errors.txt"

// SummaryScreen shows the outcome of a transfer, writes the error log and
// refreshes the list after a move.
type SummaryScreen struct {
	config     *config.Config
	engine     *finder.Engine
	result     *finder.TransferResult
	err        error
	elapsed    time.Duration
	width      int
	rescanning bool
	notes      []note
}

type note struct {
	text    string
	isError bool
}

// NewSummaryScreen creates a summary screen for a finished batch
func NewSummaryScreen(
	cfg *config.Config,
	engine *finder.Engine,
	result *finder.TransferResult,
	err error,
	elapsed time.Duration,
) *SummaryScreen {
	return &SummaryScreen{
		config:     cfg,
		engine:     engine,
		result:     result,
		err:        err,
		elapsed:    elapsed,
		rescanning: result != nil && result.NeedsRescan(),
	}
}

// Init implements tea.Model. It writes the configured error log and starts
// the rescan a clean move calls for.
func (s SummaryScreen) Init() tea.Cmd {
	var cmds []tea.Cmd

	if s.config.ErrorLog != "" && s.result != nil && s.result.Failed() > 0 {
		cmds = append(cmds, s.writeErrorLog(s.config.ErrorLog))
	}

	if s.rescanning {
		cmds = append(cmds, s.rescan())
	}

	return tea.Batch(cmds...)
}

// Update implements tea.Model
func (s SummaryScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
	case tea.KeyMsg:
		return s.handleKeyMsg(msg)
	case shared.StatusMsg:
		s = s.addNote(msg.Text, msg.IsError)
	case shared.ScanCompleteMsg:
		s.rescanning = false
		if msg.Err != nil {
			s = s.addNote("Rescan failed: "+msg.Err.Error(), true)
		} else {
			s = s.addNote("List refreshed: "+shared.Plural(len(msg.Result.Files), "file", "files")+" left in the roots", false)
		}
	}

	return s, nil
}

// View implements tea.Model
func (s SummaryScreen) View() string {
	return shared.RenderBox(s.RenderContent(), s.width)
}

// RenderContent returns the screen body without the surrounding box
func (s SummaryScreen) RenderContent() string {
	var builder strings.Builder

	builder.WriteString(s.renderHeadline() + "\n\n")

	widget := widgets.NewSummaryWidget(func() *finder.TransferResult { return s.result }, s.err, s.elapsed)
	builder.WriteString(widget() + "\n")

	if s.result != nil && len(s.result.Failures) > 0 {
		builder.WriteString("\n" + shared.RenderLabel("Errors:") + "\n")
		builder.WriteString(shared.RenderErrorList(shared.ErrorListConfig{
			Failures: s.result.Failures,
			Context:  shared.ContextComplete,
			MaxWidth: max(s.width-pathWidthOverhead, 0),
		}))
	}

	if s.rescanning {
		builder.WriteString("\n" + shared.RenderDim("Refreshing the file list...") + "\n")
	}

	for _, n := range s.notes {
		if n.isError {
			builder.WriteString("\n" + shared.RenderError(n.text))
		} else {
			builder.WriteString("\n" + shared.RenderDim(n.text))
		}
	}

	if len(s.notes) > 0 {
		builder.WriteString("\n")
	}

	pairs := []string{"c", "back to the list", "n", "new search", "enter/q", "quit"}
	if s.result != nil && s.result.Failed() > 0 {
		pairs = append([]string{"e", "write error log"}, pairs...)
	}

	builder.WriteString("\n" + shared.RenderKeyHelp(pairs...))

	return builder.String()
}

// Rescanning reports whether the post-move rescan is still running (for testing)
func (s SummaryScreen) Rescanning() bool {
	return s.rescanning
}

// Notes returns the status lines shown under the summary (for testing)
func (s SummaryScreen) Notes() []string {
	texts := make([]string, len(s.notes))
	for i, n := range s.notes {
		texts[i] = n.text
	}

	return texts
}

// ============================================================================
// Message Handlers
// ============================================================================

//nolint:exhaustive // Only handling specific key types
func (s SummaryScreen) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEnter:
		return s, tea.Quit
	}

	if s.rescanning {
		return s, nil
	}

	switch msg.String() {
	case "q":
		return s, tea.Quit
	case "c":
		return s, func() tea.Msg { return shared.TransitionToConfirmMsg{} }
	case "n":
		return s, func() tea.Msg { return shared.TransitionToInputMsg{} }
	case "e":
		if s.result == nil || s.result.Failed() == 0 {
			return s, nil
		}

		path := s.config.ErrorLog
		if path == "" {
			path = DefaultErrorLogPath
		}

		return s, s.writeErrorLog(path)
	}

	return s, nil
}

func (s SummaryScreen) addNote(text string, isError bool) SummaryScreen {
	s.notes = append(append([]note(nil), s.notes...), note{text: text, isError: isError})

	return s
}

func (s SummaryScreen) renderHeadline() string {
	switch {
	case s.err != nil:
		return shared.RenderError(shared.ErrorSymbol() + " Transfer could not start")
	case s.result == nil:
		return shared.RenderDim("Nothing was transferred")
	case s.result.Stopped:
		return shared.RenderWarning(shared.CancelledSymbol() + " Transfer stopped")
	case s.result.Failed() > 0:
		return shared.RenderWarning(shared.ErrorSymbol() + " Transfer finished with errors")
	default:
		return shared.RenderSuccess(shared.SuccessSymbol() + " Transfer complete")
	}
}

// ============================================================================
// Commands
// ============================================================================

func (s SummaryScreen) writeErrorLog(path string) tea.Cmd {
	engine := s.engine
	result := s.result

	return func() tea.Msg {
		if err := engine.WriteErrorLog(path, result); err != nil {
			return shared.StatusMsg{Text: "Could not write error log: " + err.Error(), IsError: true}
		}

		return shared.StatusMsg{Text: fmt.Sprintf("Wrote %s to %s", shared.Plural(result.Failed(), "error", "errors"), path)}
	}
}

func (s SummaryScreen) rescan() tea.Cmd {
	engine := s.engine

	return func() tea.Msg {
		result, err := engine.Scan(context.Background())

		return shared.ScanCompleteMsg{Result: result, Err: err}
	}
}
