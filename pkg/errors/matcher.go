package errors

import "strings"

// PatternMatcher matches error messages to categories using string patterns.
type PatternMatcher interface {
	Match(errorMsg string) ErrorCategory
}

// NewPatternMatcher creates a new PatternMatcher with predefined patterns.
// Categories are tried in order; the first hit wins.
func NewPatternMatcher() PatternMatcher {
	return &patternMatcher{
		rules: []categoryRule{
			{CategoryPermission, []string{"permission denied", "access is denied", "operation not permitted", "read-only file system"}},
			{CategoryDiskSpace, []string{"no space left on device", "disk full", "quota exceeded", "not enough space"}},
			{CategoryCrossDevice, []string{"cross-device link", "not the same device", "different disk drive"}},
			{CategoryConflict, []string{"file exists", "is a directory", "not a directory", "same file"}},
			{CategoryPath, []string{"no such file or directory", "cannot find the path", "cannot find the file", "file name too long"}},
			{CategoryIO, []string{"input/output error", "i/o error", "short write", "unexpected eof"}},
		},
	}
}

type categoryRule struct {
	category ErrorCategory
	patterns []string
}

// patternMatcher is the concrete implementation of PatternMatcher.
type patternMatcher struct {
	rules []categoryRule
}

// Match returns the error category based on pattern matching.
func (m *patternMatcher) Match(errorMsg string) ErrorCategory {
	lowerMsg := strings.ToLower(errorMsg)

	for _, rule := range m.rules {
		for _, pattern := range rule.patterns {
			if strings.Contains(lowerMsg, pattern) {
				return rule.category
			}
		}
	}

	return CategoryUnknown
}
