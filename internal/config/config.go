// Package config handles application configuration and command-line argument parsing.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/bmatcuk/doublestar/v4"
)

// ConflictPolicy decides what happens when a transfer destination already exists.
type ConflictPolicy int

const (
	// Skip leaves the existing file alone and does not transfer
	Skip ConflictPolicy = iota
	// Overwrite replaces the existing file in place
	Overwrite
	// AutoRename writes to "name (1).ext", "name (2).ext", ... instead
	AutoRename
)

// String returns the string representation of ConflictPolicy
func (p ConflictPolicy) String() string {
	switch p {
	case Skip:
		return "skip"
	case Overwrite:
		return "overwrite"
	case AutoRename:
		return "auto-rename"
	default:
		return "unknown"
	}
}

// ParseConflictPolicy parses a string into a ConflictPolicy
func ParseConflictPolicy(s string) (ConflictPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "skip":
		return Skip, nil
	case "overwrite":
		return Overwrite, nil
	case "auto-rename", "autorename", "rename":
		return AutoRename, nil
	default:
		return Skip, fmt.Errorf("invalid conflict policy: %s (valid: skip, overwrite, auto-rename)", s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for go-arg
func (p *ConflictPolicy) UnmarshalText(text []byte) error {
	parsed, err := ParseConflictPolicy(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// TransferMode selects copying or moving.
type TransferMode int

const (
	// Copy leaves the source in place
	Copy TransferMode = iota
	// Move removes the source once it reached the destination
	Move
)

// String returns the string representation of TransferMode
func (m TransferMode) String() string {
	if m == Move {
		return "move"
	}
	return "copy"
}

// DuplicateMode selects how duplicate sets are handled when nobody is asked.
type DuplicateMode int

const (
	// AskDuplicates presents each duplicate set in the interactive UI
	AskDuplicates DuplicateMode = iota
	// KeepFirstDuplicate keeps the first file of every set without asking
	KeepFirstDuplicate
)

// String returns the string representation of DuplicateMode
func (d DuplicateMode) String() string {
	if d == KeepFirstDuplicate {
		return "keep-first"
	}
	return "ask"
}

// UnmarshalText implements encoding.TextUnmarshaler for go-arg
func (d *DuplicateMode) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "ask":
		*d = AskDuplicates
	case "keep-first", "first", "skip":
		*d = KeepFirstDuplicate
	default:
		return fmt.Errorf("invalid duplicates mode: %s (valid: ask, keep-first)", text)
	}
	return nil
}

// Config holds the application configuration
type Config struct {
	Roots           []string       `arg:"positional" help:"Root folders to search"`
	DestPath        string         `arg:"-d,--dest" help:"Destination folder for the transfer"`
	Preset          string         `arg:"-p,--preset" default:"Images" help:"File type preset (Images, Videos, \"Images & Videos\" or one from --presets-file)"`
	Types           string         `arg:"-t,--types" help:"Custom comma-separated extensions, e.g. \".pdf,.docx\" (overrides --preset)"`
	Exclude         []string       `arg:"-x,--exclude,separate" help:"Glob of paths (relative to a root) to leave out; repeatable"`
	PresetsFile     string         `arg:"--presets-file" help:"YAML file with extra presets"`
	Flatten         bool           `arg:"--flatten" help:"Put every file directly in the destination instead of keeping folders"`
	Conflict        ConflictPolicy `arg:"-c,--conflict" default:"skip" help:"When the destination exists: skip|overwrite|auto-rename"`
	Move            bool           `arg:"-m,--move" help:"Move files instead of copying them"`
	Duplicates      DuplicateMode  `arg:"--duplicates" default:"ask" help:"Duplicate handling: ask|keep-first"`
	ExportList      string         `arg:"--export" help:"Write the found file list to this text file"`
	FromList        string         `arg:"--from-list" help:"Use the paths in this text file instead of searching"`
	ErrorLog        string         `arg:"--error-log" help:"Write failed transfers to this text file"`
	LogFile         string         `arg:"--log-file" help:"Write a debug log to this file"`
	Verbose         bool           `arg:"-v,--verbose" help:"Verbose logging"`
	InteractiveMode bool           `arg:"-i,--interactive" help:"Start the terminal UI at the input screen"`
	Yes             bool           `arg:"-y,--yes" help:"Run without the terminal UI and without questions"`
}

// Description returns the program description for go-arg
func (Config) Description() string {
	return "Find files by type under one or more folders, sort out duplicates, and copy or move them somewhere else"
}

// Version returns the version string for go-arg
func (Config) Version() string {
	return "file-finder 1.0.0"
}

// Mode returns the transfer mode selected by the flags
func (cfg *Config) Mode() TransferMode {
	if cfg.Move {
		return Move
	}
	return Copy
}

// PreserveStructure reports whether folder structure is kept at the destination
func (cfg *Config) PreserveStructure() bool {
	return !cfg.Flatten
}

// ParseFlags parses command-line flags and returns configuration
func ParseFlags() (*Config, error) {
	cfg := &Config{
		Preset:     DefaultPreset,
		Conflict:   Skip,
		Duplicates: AskDuplicates,
	}

	arg.MustParse(cfg)

	return PostProcessConfig(cfg)
}

// PostProcessConfig applies post-processing logic to a parsed config
func PostProcessConfig(cfg *Config) (*Config, error) {
	// If no flags provided, default to interactive mode
	if len(cfg.Roots) == 0 && cfg.FromList == "" && cfg.DestPath == "" {
		cfg.InteractiveMode = true
	}

	for _, pattern := range cfg.Exclude {
		if err := ValidateFilePattern(pattern); err != nil {
			return nil, err
		}
	}

	// Validate paths if not in interactive mode
	if !cfg.InteractiveMode {
		if err := cfg.ValidatePaths(); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// ValidatePaths validates that roots and destination are usable directories
func (cfg *Config) ValidatePaths() error {
	if len(cfg.Roots) == 0 && cfg.FromList == "" {
		return fmt.Errorf("at least one root folder is required")
	}

	for _, root := range cfg.Roots {
		if err := validateDir("root", root); err != nil {
			return err
		}
	}

	if cfg.DestPath == "" {
		return fmt.Errorf("destination path is required")
	}

	return validateDir("destination", cfg.DestPath)
}

// ValidateFilePattern validates an exclude glob pattern
func ValidateFilePattern(pattern string) error {
	if pattern == "" {
		return nil
	}

	if !doublestar.ValidatePattern(pattern) {
		return fmt.Errorf("invalid exclude pattern: %s", pattern)
	}

	return nil
}

func validateDir(label, path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("%s path does not exist: %s", label, path)
	}
	if err != nil {
		return fmt.Errorf("cannot access %s path: %w", label, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s path is not a directory: %s", label, path)
	}

	return nil
}
