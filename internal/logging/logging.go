// Package logging sets up the zerolog logger shared by the engine, the TUI and the CLI.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Options selects where log output goes.
type Options struct {
	// Verbose lowers the level from info to debug
	Verbose bool

	// Console writes human-readable lines to Console (stderr when nil).
	// The TUI turns this off so log lines do not tear the screen.
	Console    bool
	ConsoleOut io.Writer

	// File appends JSON lines to this path when set
	File string
}

// Setup builds a logger from opts. The returned closer releases the log file
// and is never nil.
func Setup(opts Options) (zerolog.Logger, io.Closer, error) {
	level := zerolog.InfoLevel
	if opts.Verbose {
		level = zerolog.DebugLevel
	}

	var writers []io.Writer

	if opts.Console {
		out := opts.ConsoleOut
		if out == nil {
			out = os.Stderr
		}

		writers = append(writers, zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.Kitchen,
		})
	}

	var closer io.Closer = nopCloser{}

	if opts.File != "" {
		file, err := openLogFile(opts.File)
		if err != nil {
			return zerolog.Nop(), closer, err
		}

		writers = append(writers, file)
		closer = file
	}

	if len(writers) == 0 {
		return zerolog.Nop(), closer, nil
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().Timestamp().
		Logger()

	if opts.Verbose {
		logger = logger.With().Caller().Logger()
	}

	logger.Debug().Str("logFile", opts.File).Msg("Logger initialized")

	return logger, closer, nil
}

// Component returns a child logger tagged with a component name.
func Component(logger zerolog.Logger, name string) zerolog.Logger {
	return logger.With().Str("component", name).Logger()
}

// openLogFile creates the log file and its parent directories
func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600) // #nosec G304 - path comes from --log-file
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return file, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
