//nolint:varnamelen // Test files use idiomatic short variable names
package shared_test

import (
	"regexp"
	"testing"
	"time"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/file-finder/internal/tui/shared"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bytes    int64
		expected string
	}{
		{0, "0 B"},
		{-5, "0 B"},
		{999, "999 B"},
		{1500, "1.5 kB"},
		{2_000_000, "2.0 MB"},
	}

	for _, tt := range tests {
		if got := shared.FormatBytes(tt.bytes); got != tt.expected {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.bytes, got, tt.expected)
		}
	}
}

func TestFormatCountAndPlural(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(shared.FormatCount(12345)).To(Equal("12,345"))
	g.Expect(shared.Plural(1, "file", "files")).To(Equal("1 file"))
	g.Expect(shared.Plural(0, "file", "files")).To(Equal("0 files"))
	g.Expect(shared.Plural(2500, "file", "files")).To(Equal("2,500 files"))
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		d        time.Duration
		expected string
	}{
		{0, "0s"},
		{1400 * time.Millisecond, "1s"},
		{90 * time.Second, "1m 30s"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1h 2m 3s"},
	}

	for _, tt := range tests {
		if got := shared.FormatDuration(tt.d); got != tt.expected {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.expected)
		}
	}
}

func TestFormatModTime(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(shared.FormatModTime(0)).To(Equal("unknown"))

	ts := time.Date(2024, 3, 5, 10, 20, 30, 0, time.Local).Unix()
	g.Expect(shared.FormatModTime(ts)).To(Equal("2024-03-05 10:20:30"))
}

func TestTruncatePath(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(shared.TruncatePath("/a/b.jpg", 20)).To(Equal("/a/b.jpg"))
	g.Expect(shared.TruncatePath("/abcdefghij/klmnop.jpg", 3)).To(Equal("/abcdefghij/klmnop.jpg"))

	got := shared.TruncatePath("/photos/2024/holiday/beach/sunset.jpg", 15)
	g.Expect([]rune(got)).To(HaveLen(15))
	g.Expect(got).To(HavePrefix("/photo"))
	g.Expect(got).To(ContainSubstring("..."))
	g.Expect(got).To(HaveSuffix("set.jpg"))
}

func TestFraction(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(shared.Fraction(0, 0)).To(BeZero())
	g.Expect(shared.Fraction(1, 4)).To(BeNumerically("==", 0.25))
	g.Expect(shared.Fraction(9, 4)).To(BeNumerically("==", 1))
}
