package screens

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/joe/file-finder/internal/config"
	"github.com/joe/file-finder/internal/finder"
	"github.com/joe/file-finder/internal/tui/shared"
	"github.com/joe/file-finder/internal/tui/widgets"
)

// TransferScreen runs one transfer batch and shows its progress.
type TransferScreen struct {
	engine   *finder.Engine
	request  finder.TransferRequest
	control  *finder.Controller
	spinner  spinner.Model
	progress progress.Model
	counts   widgets.TransferCounts
	activity shared.ActivityLog
	failures []finder.Failure
	started  time.Time
	width    int
	stopping bool
}

// NewTransferScreen creates a transfer screen for req. A Controller is
// created when req has none.
func NewTransferScreen(engine *finder.Engine, req finder.TransferRequest) *TransferScreen {
	if req.Control == nil {
		req.Control = finder.NewController()
	}

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(shared.PrimaryColor())

	total := len(req.Files)
	if total == 0 {
		total = len(engine.Files())
	}

	return &TransferScreen{
		engine:   engine,
		request:  req,
		control:  req.Control,
		spinner:  spin,
		progress: shared.NewProgressModel(shared.ProgressBarWidth),
		counts:   widgets.TransferCounts{Total: total},
		activity: shared.NewActivityLog(activityLogSize),
		started:  time.Now(),
	}
}

// Init implements tea.Model
func (s TransferScreen) Init() tea.Cmd {
	return tea.Batch(s.spinner.Tick, s.startTransfer(), shared.TickCmd())
}

// Update implements tea.Model
func (s TransferScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return s.handleWindowSize(msg), nil
	case tea.KeyMsg:
		return s.handleKeyMsg(msg)
	case spinner.TickMsg:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)

		return s, cmd
	case shared.TickMsg:
		// Keeps the elapsed time moving while no events arrive.
		return s, shared.TickCmd()
	case shared.EngineEventMsg:
		return s.handleEngineEvent(msg.Event), nil
	case shared.TransferCompleteMsg:
		return s, func() tea.Msg {
			return shared.TransitionToSummaryMsg{Result: msg.Result, Err: msg.Err}
		}
	}

	return s, nil
}

// View implements tea.Model
func (s TransferScreen) View() string {
	return shared.RenderBox(s.RenderContent(), s.width)
}

// RenderContent returns the screen body without the surrounding box
func (s TransferScreen) RenderContent() string {
	var builder strings.Builder

	verb := "Copying"
	if s.request.Mode == config.Move {
		verb = "Moving"
	}

	fmt.Fprintf(&builder, "%s %s %s %s\n\n",
		shared.RenderTitle(verb), shared.Plural(s.counts.Total, "file", "files"),
		shared.RightArrow(), s.request.Dest)

	builder.WriteString(s.spinner.View() + " " + widgets.NewPhaseWidget(s.phase())() + "\n\n")

	builder.WriteString(shared.RenderProgress(s.progress, shared.Fraction(s.counts.Processed, s.counts.Total)) + "\n")
	builder.WriteString(widgets.NewProgressWidget(func() widgets.TransferCounts { return s.counts })() + "\n")
	fmt.Fprintf(&builder, "Elapsed: %s\n", shared.FormatDuration(time.Since(s.started)))

	if entries := s.activity.Entries(); len(entries) > 0 {
		builder.WriteString("\n" + shared.RenderActivityLog("Recent", entries, 0) + "\n")
	}

	if len(s.failures) > 0 {
		builder.WriteString("\n" + shared.RenderErrorList(shared.ErrorListConfig{
			Failures: s.failures,
			Context:  shared.ContextInProgress,
			MaxWidth: max(s.width-pathWidthOverhead, 0),
		}))
	}

	pauseLabel := "pause"
	if s.control.Paused() {
		pauseLabel = "resume"
	}

	builder.WriteString("\n" + shared.RenderKeyHelp("p", pauseLabel, "s/esc", "stop", "ctrl+c", "stop and quit"))

	return builder.String()
}

// Counts returns the running tally (for testing)
func (s TransferScreen) Counts() widgets.TransferCounts {
	return s.counts
}

// Control returns the controller driving this batch (for testing)
func (s TransferScreen) Control() *finder.Controller {
	return s.control
}

// ============================================================================
// Message Handlers
// ============================================================================

//nolint:exhaustive // Only handling specific key types
func (s TransferScreen) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		s.control.Stop()
		return s, tea.Quit
	case tea.KeyEsc:
		return s.stop(), nil
	}

	switch msg.String() {
	case "p", " ":
		if s.control.Paused() {
			s.control.Resume()
		} else if !s.stopping {
			s.control.Pause()
		}
	case "s", "q":
		return s.stop(), nil
	}

	return s, nil
}

func (s TransferScreen) stop() TransferScreen {
	s.stopping = true
	s.control.Stop()

	return s
}

func (s TransferScreen) handleEngineEvent(event finder.Event) TransferScreen {
	switch e := event.(type) {
	case finder.TransferStarted:
		s.counts.Total = e.Total
	case finder.TransferProgress:
		s.counts.Processed = e.Processed
		s.counts.Total = e.Total
	case finder.FileTransferred:
		s.counts.Transferred++
		s.counts.Bytes += e.Bytes
		s.activity = s.activity.Add(shared.SuccessSymbol() + " " + filepath.Base(e.Source) + " " + shared.RightArrow() + " " + e.Dest)
	case finder.FileSkipped:
		s.counts.Skipped++
		s.activity = s.activity.Add(shared.RenderDim(shared.CancelledSymbol() + " skipped " + filepath.Base(e.Source) + ": " + e.Dest + " exists"))
	case finder.FileFailed:
		s.counts.Failed++
		s.failures = append(s.failures, finder.Failure{Source: e.Source, Err: e.Err})
	case finder.BaseFolderFallback:
		s.activity = s.activity.Add(shared.RenderWarning("! " + e.File + " is under no root, using " + e.BaseFolder))
	}

	return s
}

func (s TransferScreen) handleWindowSize(msg tea.WindowSizeMsg) TransferScreen {
	s.width = msg.Width
	s.progress.Width = min(max(msg.Width-pathWidthOverhead, shared.ProgressBarWidth), shared.MaxProgressBarWidth)

	return s
}

func (s TransferScreen) phase() string {
	switch {
	case s.stopping:
		return "stopping"
	case s.control.Paused():
		return "paused"
	default:
		return "transferring"
	}
}

// ============================================================================
// Commands
// ============================================================================

func (s TransferScreen) startTransfer() tea.Cmd {
	engine := s.engine
	req := s.request

	return func() tea.Msg {
		result, err := engine.Transfer(context.Background(), req)

		return shared.TransferCompleteMsg{Result: result, Err: err}
	}
}

// unexported constants.
const (
	activityLogSize = 5
)
