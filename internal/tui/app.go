// Package tui is the interactive terminal front end: it walks the user from
// choosing folders through duplicate resolution to a transfer and its summary.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joe/file-finder/internal/config"
	"github.com/joe/file-finder/internal/finder"
	"github.com/joe/file-finder/internal/tui/shared"
)

// AppModel is the top-level model that uses UnifiedScreen for single-screen flow
type AppModel struct {
	config        *config.Config
	currentScreen tea.Model
	width         int
	height        int
}

// NewAppModel creates a new app model with UnifiedScreen. Unless the user
// asked for interactive mode, a session with roots (or a list file) and a
// destination starts scanning straight away.
func NewAppModel(cfg *config.Config, engine *finder.Engine, bridge *shared.EventBridge) *AppModel {
	unifiedScreen := NewUnifiedScreen(cfg, engine, bridge)

	hasSource := len(engine.Roots()) > 0 || cfg.FromList != ""
	if !cfg.InteractiveMode && hasSource && cfg.DestPath != "" {
		unifiedScreen.StartAtScan()
	}

	return &AppModel{
		config:        cfg,
		currentScreen: unifiedScreen,
	}
}

// CurrentScreen returns the current screen (for testing)
func (a AppModel) CurrentScreen() tea.Model {
	return a.currentScreen
}

// Init implements tea.Model
func (a AppModel) Init() tea.Cmd {
	return a.currentScreen.Init()
}

// Update implements tea.Model
func (a AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if windowMsg, ok := msg.(tea.WindowSizeMsg); ok {
		a.width = windowMsg.Width
		a.height = windowMsg.Height
	}

	var cmd tea.Cmd
	a.currentScreen, cmd = a.currentScreen.Update(msg)

	return a, cmd
}

// View implements tea.Model
func (a AppModel) View() string {
	return a.currentScreen.View()
}

// Run wires engine events into a bridge and runs the UI until the user quits.
func Run(cfg *config.Config, engine *finder.Engine, opts ...tea.ProgramOption) error {
	bridge := shared.NewEventBridge()
	previous := engine.GetEventEmitter()
	engine.SetEventEmitter(bridge)

	defer func() {
		engine.SetEventEmitter(previous)
		bridge.Close()
	}()

	program := tea.NewProgram(NewAppModel(cfg, engine, bridge), opts...)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}

	return nil
}
