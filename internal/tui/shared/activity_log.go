package shared

import (
	"strings"
)

// ActivityLog keeps the most recent lines of transfer activity.
type ActivityLog struct {
	entries []string
	limit   int
}

// NewActivityLog creates a log that keeps at most limit entries.
func NewActivityLog(limit int) ActivityLog {
	return ActivityLog{limit: limit}
}

// Add appends an entry, dropping the oldest beyond the limit.
func (l ActivityLog) Add(entry string) ActivityLog {
	entries := append(append([]string(nil), l.entries...), entry)
	if l.limit > 0 && len(entries) > l.limit {
		entries = entries[len(entries)-l.limit:]
	}

	l.entries = entries

	return l
}

// Entries returns the kept entries, oldest first.
func (l ActivityLog) Entries() []string {
	return l.entries
}

// RenderActivityLog renders entries oldest first under an optional title.
// If maxEntries > 0, only the most recent maxEntries are shown.
func RenderActivityLog(title string, entries []string, maxEntries int) string {
	var builder strings.Builder

	if trimmed := strings.TrimSpace(title); trimmed != "" {
		builder.WriteString(RenderLabel(trimmed))
		builder.WriteString("\n")

		if len(entries) > 0 {
			builder.WriteString("\n")
		}
	}

	startIdx := 0
	if maxEntries > 0 && maxEntries < len(entries) {
		startIdx = len(entries) - maxEntries
	}

	for i := startIdx; i < len(entries); i++ {
		builder.WriteString("  ")
		builder.WriteString(entries[i])

		if i < len(entries)-1 {
			builder.WriteString("\n")
		}
	}

	return builder.String()
}
