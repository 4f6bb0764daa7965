package errors

// SuggestionGenerator generates actionable suggestions based on error category.
type SuggestionGenerator interface {
	Generate(category ErrorCategory, affectedPath string) []string
}

// NewSuggestionGenerator creates a new SuggestionGenerator.
func NewSuggestionGenerator() SuggestionGenerator {
	return &suggestionGenerator{}
}

// suggestionGenerator is the concrete implementation of SuggestionGenerator.
type suggestionGenerator struct{}

// Generate returns actionable suggestions based on the error category and affected path.
func (g *suggestionGenerator) Generate(category ErrorCategory, affectedPath string) []string {
	var suggestions []string

	switch category {
	case CategoryPermission:
		suggestions = []string{
			"Ensure you can read the source file and write to the destination folder",
			"Check that the destination is not mounted read-only",
		}
	case CategoryDiskSpace:
		suggestions = []string{
			"Free up space on the destination device",
			"Choose a destination on a different drive",
		}
	case CategoryCrossDevice:
		suggestions = []string{
			"Copy the files instead of moving them, then delete the originals",
		}
	case CategoryConflict:
		suggestions = []string{
			"A file or folder with a clashing name is in the way at the destination",
			"Pick the auto-rename conflict policy or remove the clashing entry",
		}
	case CategoryPath:
		suggestions = []string{
			"The file may have been moved or deleted since the search; search again",
		}
	case CategoryIO:
		suggestions = []string{
			"Check that the source and destination drives are still connected",
			"Run the transfer again - this may be a transient I/O error",
		}
	case CategoryUnknown:
		suggestions = []string{
			"Check the error message for more details",
			"Run the transfer again to retry the failed files",
		}
	}

	if affectedPath != "" {
		suggestions = append(suggestions, "Affected path: "+affectedPath)
	}

	return suggestions
}
