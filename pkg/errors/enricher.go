package errors

import (
	"errors"
	"io/fs"
	"os"
)

// Enricher enriches standard errors with actionable suggestions.
type Enricher interface {
	Enrich(err error, affectedPath string) error
}

// NewEnricher creates a new Enricher with default pattern matcher and suggestion generator.
func NewEnricher() Enricher {
	return &enricher{
		matcher:   NewPatternMatcher(),
		generator: NewSuggestionGenerator(),
	}
}

// enricher is the concrete implementation of Enricher.
type enricher struct {
	matcher   PatternMatcher
	generator SuggestionGenerator
}

// Enrich takes a standard error and enriches it with category and actionable suggestions.
// Nil stays nil and an error that is already actionable is returned unchanged.
// If affectedPath is empty, the path carried by an *fs.PathError or *os.LinkError is used.
func (e *enricher) Enrich(err error, affectedPath string) error {
	if err == nil {
		return nil
	}

	var actionableErr ActionableError
	if errors.As(err, &actionableErr) {
		return actionableErr
	}

	if affectedPath == "" {
		affectedPath = pathOf(err)
	}

	category := e.matcher.Match(err.Error())

	return NewActionableError(err, category, e.generator.Generate(category, affectedPath), affectedPath)
}

// pathOf returns the path recorded in the error chain, if any.
func pathOf(err error) string {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Path
	}

	var linkErr *os.LinkError
	if errors.As(err, &linkErr) {
		return linkErr.New
	}

	return ""
}
