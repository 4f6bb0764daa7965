package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joe/file-finder/internal/config"
	"github.com/joe/file-finder/internal/finder"
	"github.com/joe/file-finder/internal/tui/screens"
	"github.com/joe/file-finder/internal/tui/shared"
)

// Phase represents the current workflow phase
type Phase int

const (
	PhaseInput Phase = iota
	PhaseScan
	PhaseDuplicates
	PhaseConfirm
	PhaseTransfer
	PhaseSummary
)

// String returns the phase name
func (p Phase) String() string {
	switch p {
	case PhaseInput:
		return "input"
	case PhaseScan:
		return "scan"
	case PhaseDuplicates:
		return "duplicates"
	case PhaseConfirm:
		return "confirm"
	case PhaseTransfer:
		return "transfer"
	case PhaseSummary:
		return "summary"
	default:
		return "input"
	}
}

// UnifiedScreen owns one screen per phase and routes messages to the one
// that is active. Engine events arrive through the bridge.
type UnifiedScreen struct {
	config *config.Config
	engine *finder.Engine
	bridge *shared.EventBridge
	phase  Phase

	// All screens (value types - use has* flags for presence)
	input      screens.InputScreen
	scan       screens.ScanScreen
	duplicates screens.DuplicatesScreen
	confirm    screens.ConfirmScreen
	transfer   screens.TransferScreen
	summary    screens.SummaryScreen

	// Presence flags
	hasInput      bool
	hasScan       bool
	hasDuplicates bool
	hasConfirm    bool
	hasTransfer   bool
	hasSummary    bool

	fromList        string
	transferStarted time.Time
	width           int
	height          int
}

// NewUnifiedScreen creates a unified screen starting at the input phase
func NewUnifiedScreen(cfg *config.Config, engine *finder.Engine, bridge *shared.EventBridge) *UnifiedScreen {
	return &UnifiedScreen{
		config:   cfg,
		engine:   engine,
		bridge:   bridge,
		phase:    PhaseInput,
		input:    *screens.NewInputScreen(cfg, engine),
		hasInput: true,
		fromList: cfg.FromList,
	}
}

// Phase returns the current phase (for testing)
func (u *UnifiedScreen) Phase() Phase {
	return u.phase
}

// Init implements tea.Model
func (u *UnifiedScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{u.listen()}

	switch u.phase {
	case PhaseInput:
		cmds = append(cmds, u.input.Init())
	case PhaseScan:
		cmds = append(cmds, u.scan.Init())
	}

	return tea.Batch(cmds...)
}

// Update implements tea.Model
func (u *UnifiedScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		u.width = msg.Width
		u.height = msg.Height

		return u, u.propagateWindowSize(msg)
	case shared.TransitionToInputMsg:
		return u.transitionToInput()
	case shared.TransitionToScanMsg:
		return u.transitionToScan()
	case shared.TransitionToDuplicatesMsg:
		return u.transitionToDuplicates()
	case shared.TransitionToConfirmMsg:
		return u.transitionToConfirm()
	case shared.TransitionToTransferMsg:
		return u.transitionToTransfer(msg)
	case shared.TransitionToSummaryMsg:
		return u.transitionToSummary(msg)
	case shared.EngineEventMsg:
		_, cmd := u.delegateToActiveScreen(msg)
		return u, tea.Batch(cmd, u.listen())
	}

	return u.delegateToActiveScreen(msg)
}

// View implements tea.Model
func (u *UnifiedScreen) View() string {
	sections := []string{shared.RenderTimeline(u.timelinePhase())}

	if header := u.renderContextHeader(); header != "" {
		sections = append(sections, header)
	}

	sections = append(sections, u.renderActiveSection())

	return shared.RenderBox(strings.Join(sections, "\n\n"), u.width)
}

// StartAtScan skips the input phase when roots and destination came from
// the command line.
func (u *UnifiedScreen) StartAtScan() {
	u.phase = PhaseScan
	u.scan = *screens.NewScanScreen(u.config, u.engine, u.takeFromList())
	u.hasScan = true
}

// ============================================================================
// Phase Transitions
// ============================================================================

func (u *UnifiedScreen) transitionToInput() (tea.Model, tea.Cmd) {
	u.phase = PhaseInput
	u.input = *screens.NewInputScreen(u.config, u.engine)
	u.hasInput = true

	return u, tea.Batch(u.input.Init(), u.windowSizeCmd())
}

func (u *UnifiedScreen) transitionToScan() (tea.Model, tea.Cmd) {
	u.StartAtScan()

	return u, tea.Batch(u.scan.Init(), u.windowSizeCmd())
}

func (u *UnifiedScreen) transitionToDuplicates() (tea.Model, tea.Cmd) {
	u.phase = PhaseDuplicates
	u.duplicates = *screens.NewDuplicatesScreen(u.engine)
	u.hasDuplicates = true

	return u, tea.Batch(u.duplicates.Init(), u.windowSizeCmd())
}

func (u *UnifiedScreen) transitionToConfirm() (tea.Model, tea.Cmd) {
	u.phase = PhaseConfirm
	u.confirm = *screens.NewConfirmScreen(u.config, u.engine)
	u.hasConfirm = true

	return u, tea.Batch(u.confirm.Init(), u.windowSizeCmd())
}

func (u *UnifiedScreen) transitionToTransfer(msg shared.TransitionToTransferMsg) (tea.Model, tea.Cmd) {
	u.phase = PhaseTransfer
	u.transfer = *screens.NewTransferScreen(u.engine, msg.Request)
	u.hasTransfer = true
	u.transferStarted = time.Now()

	return u, tea.Batch(u.transfer.Init(), u.windowSizeCmd())
}

func (u *UnifiedScreen) transitionToSummary(msg shared.TransitionToSummaryMsg) (tea.Model, tea.Cmd) {
	var elapsed time.Duration
	if !u.transferStarted.IsZero() {
		elapsed = time.Since(u.transferStarted)
	}

	u.phase = PhaseSummary
	u.summary = *screens.NewSummaryScreen(u.config, u.engine, msg.Result, msg.Err, elapsed)
	u.hasSummary = true

	return u, tea.Batch(u.summary.Init(), u.windowSizeCmd())
}

// takeFromList returns the --from-list path once; later scans search the roots.
func (u *UnifiedScreen) takeFromList() string {
	path := u.fromList
	u.fromList = ""

	return path
}

// ============================================================================
// Delegation
// ============================================================================

//nolint:forcetypeassert // Each screen returns its own value type
func (u *UnifiedScreen) delegateToActiveScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		model tea.Model
		cmd   tea.Cmd
	)

	switch u.phase {
	case PhaseInput:
		model, cmd = u.input.Update(msg)
		u.input = model.(screens.InputScreen)
	case PhaseScan:
		model, cmd = u.scan.Update(msg)
		u.scan = model.(screens.ScanScreen)
	case PhaseDuplicates:
		model, cmd = u.duplicates.Update(msg)
		u.duplicates = model.(screens.DuplicatesScreen)
	case PhaseConfirm:
		model, cmd = u.confirm.Update(msg)
		u.confirm = model.(screens.ConfirmScreen)
	case PhaseTransfer:
		model, cmd = u.transfer.Update(msg)
		u.transfer = model.(screens.TransferScreen)
	case PhaseSummary:
		model, cmd = u.summary.Update(msg)
		u.summary = model.(screens.SummaryScreen)
	}

	return u, cmd
}

//nolint:forcetypeassert // Each screen returns its own value type
func (u *UnifiedScreen) propagateWindowSize(msg tea.WindowSizeMsg) tea.Cmd {
	var cmds []tea.Cmd

	if u.hasInput {
		model, cmd := u.input.Update(msg)
		u.input = model.(screens.InputScreen)
		cmds = append(cmds, cmd)
	}
	if u.hasDuplicates {
		model, cmd := u.duplicates.Update(msg)
		u.duplicates = model.(screens.DuplicatesScreen)
		cmds = append(cmds, cmd)
	}
	if u.hasConfirm {
		model, cmd := u.confirm.Update(msg)
		u.confirm = model.(screens.ConfirmScreen)
		cmds = append(cmds, cmd)
	}
	if u.hasTransfer {
		model, cmd := u.transfer.Update(msg)
		u.transfer = model.(screens.TransferScreen)
		cmds = append(cmds, cmd)
	}
	if u.hasSummary {
		model, cmd := u.summary.Update(msg)
		u.summary = model.(screens.SummaryScreen)
		cmds = append(cmds, cmd)
	}

	return tea.Batch(cmds...)
}

func (u *UnifiedScreen) windowSizeCmd() tea.Cmd {
	if u.width == 0 {
		return nil
	}

	width, height := u.width, u.height

	return func() tea.Msg {
		return tea.WindowSizeMsg{Width: width, Height: height}
	}
}

func (u *UnifiedScreen) listen() tea.Cmd {
	if u.bridge == nil {
		return nil
	}

	return u.bridge.ListenCmd()
}

// ============================================================================
// Rendering
// ============================================================================

func (u *UnifiedScreen) timelinePhase() string {
	switch u.phase {
	case PhaseInput:
		return shared.PhaseInput
	case PhaseScan:
		if u.scan.Err() != nil {
			return shared.PhaseScan + "_error"
		}

		return shared.PhaseScan
	case PhaseDuplicates:
		return shared.PhaseDuplicates
	case PhaseConfirm, PhaseTransfer:
		return shared.PhaseTransfer
	default:
		return shared.PhaseDone
	}
}

func (u *UnifiedScreen) renderContextHeader() string {
	if u.phase == PhaseInput {
		return ""
	}

	roots := strings.Join(u.engine.Roots(), ", ")
	if roots == "" {
		roots = "(list file)"
	}

	types := "?"
	if exts, err := u.engine.Extensions(); err == nil {
		types = exts.String()
	}

	return shared.RenderDim(fmt.Sprintf("%s %s %s   [%s]", roots, shared.RightArrow(), u.config.DestPath, types))
}

func (u *UnifiedScreen) renderActiveSection() string {
	switch u.phase {
	case PhaseScan:
		return u.scan.RenderContent()
	case PhaseDuplicates:
		return u.duplicates.RenderContent()
	case PhaseConfirm:
		return u.confirm.RenderContent()
	case PhaseTransfer:
		return u.transfer.RenderContent()
	case PhaseSummary:
		return u.summary.RenderContent()
	default:
		return u.input.RenderContent()
	}
}
