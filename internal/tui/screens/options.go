package screens

import (
	"fmt"

	"github.com/joe/file-finder/internal/config"
	"github.com/joe/file-finder/internal/tui/shared"
)

// handleOptionKey applies the transfer option shortcuts shared by the input
// and confirm screens. It reports whether key was one of them.
func handleOptionKey(cfg *config.Config, key string) bool {
	switch key {
	case "ctrl+f":
		cfg.Flatten = !cfg.Flatten
	case "ctrl+o":
		cfg.Conflict = nextConflictPolicy(cfg.Conflict)
	case "ctrl+t":
		cfg.Move = !cfg.Move
	default:
		return false
	}

	return true
}

func nextConflictPolicy(p config.ConflictPolicy) config.ConflictPolicy {
	switch p {
	case config.Skip:
		return config.Overwrite
	case config.Overwrite:
		return config.AutoRename
	default:
		return config.Skip
	}
}

func renderOptions(cfg *config.Config) string {
	structure := "keep folders"
	if cfg.Flatten {
		structure = "flatten"
	}

	return fmt.Sprintf("%s %s   %s %s   %s %s",
		shared.RenderLabel("Mode:"), cfg.Mode(),
		shared.RenderLabel("Structure:"), structure,
		shared.RenderLabel("On conflict:"), cfg.Conflict)
}

func renderOptionHelp() string {
	return shared.RenderKeyHelp("ctrl+t", "copy/move", "ctrl+f", "flatten", "ctrl+o", "conflict policy")
}
