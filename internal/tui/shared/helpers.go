package shared

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// ============================================================================
// Formatting Functions
// These are used by multiple screens for consistent display
// ============================================================================

// FormatBytes formats bytes into human-readable format (e.g., "1.5 MB")
func FormatBytes(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}

	return humanize.Bytes(uint64(bytes))
}

// FormatCount formats a count with thousands separators (e.g., "12,345")
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}

// FormatDuration formats duration into human-readable format (e.g., "2m 30s")
func FormatDuration(duration time.Duration) string {
	duration = duration.Round(time.Second)
	hours := duration / time.Hour
	duration %= time.Hour
	minutes := duration / time.Minute
	duration %= time.Minute
	seconds := duration / time.Second

	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	} else if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}

	return fmt.Sprintf("%ds", seconds)
}

// FormatModTime formats a unix modification time, or "unknown" for 0
func FormatModTime(unix int64) string {
	if unix == 0 {
		return "unknown"
	}

	return time.Unix(unix, 0).Format("2006-01-02 15:04:05")
}

// Plural returns "1 file" / "2 files" style phrases
func Plural(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%s %s", FormatCount(n), singular)
	}

	return fmt.Sprintf("%s %s", FormatCount(n), plural)
}

// TruncatePath shortens path to maxWidth by cutting from the middle
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if maxWidth <= EllipsisLength || len(runes) <= maxWidth {
		return path
	}

	keep := maxWidth - EllipsisLength
	head := keep / 2 //nolint:mnd // Half before, half after the ellipsis
	tail := keep - head

	return string(runes[:head]) + "..." + string(runes[len(runes)-tail:])
}
