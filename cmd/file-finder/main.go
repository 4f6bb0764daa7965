// Package main is the entry point for the file-finder application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"golang.org/x/term" //nolint:depguard // Required for TTY detection

	"github.com/joe/file-finder/internal/config"
	"github.com/joe/file-finder/internal/finder"
	"github.com/joe/file-finder/internal/logging"
	"github.com/joe/file-finder/internal/tui"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.ParseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	tty := term.IsTerminal(int(os.Stdout.Fd()))
	headless := cfg.Yes || !tty

	logger, closer, err := logging.Setup(logging.Options{
		Verbose:    cfg.Verbose,
		Console:    headless,
		ConsoleOut: os.Stderr,
		File:       cfg.LogFile,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	defer func() { _ = closer.Close() }()

	engine, err := newEngine(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if headless {
		if cfg.InteractiveMode {
			fmt.Fprintln(os.Stderr, "Error: no terminal for the interactive UI; give root folders and --dest")
			return 1
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return runHeadless(ctx, cfg, engine, os.Stdout)
	}

	if err := tui.Run(cfg, engine, tea.WithAltScreen()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

// newEngine builds an engine over the real filesystem from cfg.
func newEngine(cfg *config.Config, logger zerolog.Logger) (*finder.Engine, error) {
	presets, err := config.LoadPresets(cfg.PresetsFile)
	if err != nil {
		return nil, err
	}

	engine := finder.NewRealEngine()
	engine.Presets = presets
	engine.Exclude = cfg.Exclude
	engine.Logger = logger
	engine.SetSelection(finder.TypeSelection{Preset: cfg.Preset, Custom: cfg.Types})

	for _, root := range cfg.Roots {
		if _, err := engine.AddRoot(root); err != nil {
			return nil, err
		}
	}

	if _, err := engine.Extensions(); err != nil {
		return nil, err
	}

	return engine, nil
}
