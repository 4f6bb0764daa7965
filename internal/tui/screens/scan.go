package screens

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/joe/file-finder/internal/config"
	"github.com/joe/file-finder/internal/finder"
	"github.com/joe/file-finder/internal/tui/shared"
)

// ScanScreen runs a scan (or loads a list file) in the background and then
// hands over to duplicate resolution or the confirm screen.
type ScanScreen struct {
	config   *config.Config
	engine   *finder.Engine
	fromList string
	spinner  spinner.Model
	ctx      context.Context //nolint:containedctx // Owned by the running scan
	cancel   context.CancelFunc
	found    int
	root     string
	started  time.Time
	err      error
	status   string
	done     bool
}

// NewScanScreen creates a scan screen. A non-empty fromList loads that list
// file instead of searching the roots.
func NewScanScreen(cfg *config.Config, engine *finder.Engine, fromList string) *ScanScreen {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(shared.PrimaryColor())

	ctx, cancel := context.WithCancel(context.Background())

	return &ScanScreen{
		config:   cfg,
		engine:   engine,
		fromList: fromList,
		spinner:  spin,
		ctx:      ctx,
		cancel:   cancel,
		started:  time.Now(),
	}
}

// Init implements tea.Model
func (s ScanScreen) Init() tea.Cmd {
	return tea.Batch(s.spinner.Tick, s.startScan())
}

// Update implements tea.Model
func (s ScanScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return s.handleKeyMsg(msg)
	case spinner.TickMsg:
		if s.done {
			return s, nil
		}

		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)

		return s, cmd
	case shared.EngineEventMsg:
		return s.handleEngineEvent(msg.Event), nil
	case shared.ScanCompleteMsg:
		return s.handleScanComplete(msg)
	}

	return s, nil
}

// View implements tea.Model
func (s ScanScreen) View() string {
	return shared.RenderBox(s.RenderContent(), 0)
}

// RenderContent returns the screen body without the surrounding box
func (s ScanScreen) RenderContent() string {
	var builder strings.Builder

	if s.err != nil {
		builder.WriteString(shared.RenderError(shared.ErrorSymbol()+" Scan failed: "+s.err.Error()) + "\n\n")
		builder.WriteString(shared.RenderKeyHelp("esc", "back to input", "ctrl+c", "quit"))

		return builder.String()
	}

	if s.fromList != "" {
		fmt.Fprintf(&builder, "%s Loading %s\n", s.spinner.View(), s.fromList)
	} else {
		fmt.Fprintf(&builder, "%s Searching %s\n", s.spinner.View(), shared.Plural(len(s.engine.Roots()), "folder", "folders"))
	}

	fmt.Fprintf(&builder, "\n%s %s\n", shared.RenderLabel("Found:"), shared.FormatCount(s.found))

	if s.root != "" {
		fmt.Fprintf(&builder, "%s %s\n", shared.RenderLabel("In:"), shared.RenderDim(s.root))
	}

	fmt.Fprintf(&builder, "%s %s\n", shared.RenderLabel("Elapsed:"), shared.FormatDuration(time.Since(s.started)))

	if s.status != "" {
		builder.WriteString("\n" + shared.RenderDim(s.status) + "\n")
	}

	builder.WriteString("\n" + shared.RenderKeyHelp("esc", "cancel", "ctrl+c", "quit"))

	return builder.String()
}

// Found returns the number of files reported so far (for testing)
func (s ScanScreen) Found() int {
	return s.found
}

// Err returns the scan error, if any (for testing)
func (s ScanScreen) Err() error {
	return s.err
}

// ============================================================================
// Message Handlers
// ============================================================================

//nolint:exhaustive // Only handling specific key types
func (s ScanScreen) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		s.cancel()
		return s, tea.Quit
	case tea.KeyEsc:
		if s.err != nil {
			return s, func() tea.Msg { return shared.TransitionToInputMsg{} }
		}

		s.cancel()
		s.status = "Cancelling..."
	}

	return s, nil
}

func (s ScanScreen) handleEngineEvent(event finder.Event) ScanScreen {
	switch e := event.(type) {
	case finder.ScanProgress:
		s.found = e.Found
		s.root = e.Root
	case finder.ScanComplete:
		s.found = e.Found
	}

	return s
}

func (s ScanScreen) handleScanComplete(msg shared.ScanCompleteMsg) (tea.Model, tea.Cmd) {
	s.done = true
	s.cancel()

	if errors.Is(msg.Err, context.Canceled) {
		return s, func() tea.Msg { return shared.TransitionToInputMsg{} }
	}

	if msg.Err != nil {
		s.err = msg.Err
		return s, nil
	}

	s.found = len(msg.Result.Files)

	if s.config.Duplicates == config.KeepFirstDuplicate {
		s.engine.KeepAllDuplicates()
	}

	if s.config.ExportList != "" {
		if err := s.engine.ExportList(s.config.ExportList); err != nil {
			s.engine.Logger.Warn().Err(err).Str("path", s.config.ExportList).Msg("Export failed")
		}
	}

	if s.engine.DuplicateState() == finder.Presenting {
		return s, func() tea.Msg { return shared.TransitionToDuplicatesMsg{} }
	}

	return s, func() tea.Msg { return shared.TransitionToConfirmMsg{} }
}

// ============================================================================
// Commands
// ============================================================================

func (s ScanScreen) startScan() tea.Cmd {
	engine := s.engine
	ctx := s.ctx
	fromList := s.fromList

	return func() tea.Msg {
		if fromList != "" {
			if _, err := engine.LoadList(fromList); err != nil {
				return shared.ScanCompleteMsg{Err: err}
			}

			return shared.ScanCompleteMsg{Result: finder.ScanResult{Files: engine.Files()}}
		}

		result, err := engine.Scan(ctx)

		return shared.ScanCompleteMsg{Result: result, Err: err}
	}
}
