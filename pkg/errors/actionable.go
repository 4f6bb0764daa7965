// Package errors turns raw transfer and filesystem errors into actionable errors.
//
// Each error is given a category (permission, disk space, missing path, ...) by
// matching its message, and a short list of suggestions the user can act on.
// The original error stays reachable through errors.Is / errors.As.
//
// Basic Usage:
//
//	enricher := errors.NewEnricher()
//	if err := copyFile(src, dst); err != nil {
//	    enriched := enricher.Enrich(err, dst)
//	    fmt.Println(enriched)
//	    fmt.Println(errors.FormatSuggestions(enriched))
//	}
package errors

import (
	"errors"
	"strings"
)

// Exported constants.
const (
	CategoryConflict    ErrorCategory = "conflict"
	CategoryCrossDevice ErrorCategory = "cross_device"
	CategoryDiskSpace   ErrorCategory = "disk_space"
	CategoryIO          ErrorCategory = "io"
	CategoryPath        ErrorCategory = "path"
	CategoryPermission  ErrorCategory = "permission"
	CategoryUnknown     ErrorCategory = "unknown"
)

// ErrorCategory represents the type of error that occurred.
type ErrorCategory string

// ActionableError represents an error with actionable suggestions for the user.
type ActionableError interface {
	error
	Category() ErrorCategory
	Suggestions() []string
	AffectedPath() string
	Unwrap() error
}

// NewActionableError creates a new ActionableError wrapping cause.
func NewActionableError(
	cause error,
	category ErrorCategory,
	suggestions []string,
	affectedPath string,
) ActionableError {
	return &actionableError{
		cause:        cause,
		category:     category,
		suggestions:  suggestions,
		affectedPath: affectedPath,
	}
}

// FormatSuggestions formats the suggestions carried by err as a bulleted list
// for display. Returns empty string if err is nil or has no suggestions.
func FormatSuggestions(err error) string {
	var actionable ActionableError
	if !errors.As(err, &actionable) {
		return ""
	}

	var builder strings.Builder
	for i, suggestion := range actionable.Suggestions() {
		if i > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString("  • ")
		builder.WriteString(suggestion)
	}

	return builder.String()
}

// actionableError is the concrete implementation of ActionableError.
type actionableError struct {
	cause        error
	category     ErrorCategory
	suggestions  []string
	affectedPath string
}

func (e *actionableError) AffectedPath() string    { return e.affectedPath }
func (e *actionableError) Category() ErrorCategory { return e.category }
func (e *actionableError) Error() string           { return e.cause.Error() }
func (e *actionableError) Suggestions() []string   { return e.suggestions }
func (e *actionableError) Unwrap() error           { return e.cause }
