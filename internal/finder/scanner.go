package finder

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"

	"github.com/joe/file-finder/pkg/filesystem"
)

// ScanProgressInterval is how many matching files pass between ScanProgress events.
const ScanProgressInterval = 100

// FoundFile is one file produced by a scan. Size and ModTime are 0 when the
// file could not be stat'ed.
type FoundFile struct {
	Path    string
	Size    int64
	ModTime int64 // unix nanoseconds
}

// ScanResult is the outcome of one scan.
type ScanResult struct {
	Files   []FoundFile
	Skipped int
}

// ExcludeFilter leaves out paths matching any of a set of doublestar globs.
// Patterns are matched case-insensitively against the slash-separated path
// relative to the scan root.
type ExcludeFilter struct {
	patterns []string
}

// NewExcludeFilter creates a filter from patterns; empty patterns are ignored.
func NewExcludeFilter(patterns ...string) *ExcludeFilter {
	filter := &ExcludeFilter{}

	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}

		filter.patterns = append(filter.patterns, strings.ToLower(pattern))
	}

	return filter
}

// Excludes reports whether relativePath matches one of the patterns.
func (f *ExcludeFilter) Excludes(relativePath string) bool {
	if f == nil || len(f.patterns) == 0 {
		return false
	}

	normalizedPath := strings.ToLower(filepath.ToSlash(relativePath))

	for _, pattern := range f.patterns {
		matched, err := doublestar.Match(pattern, normalizedPath)
		if err != nil {
			// Invalid patterns never match
			continue
		}

		if matched {
			return true
		}
	}

	return false
}

// Scanner walks root folders looking for files with chosen extensions.
// It never modifies the filesystem.
type Scanner struct {
	FS      filesystem.FileSystem
	Exclude *ExcludeFilter
	Logger  zerolog.Logger
	emitter EventEmitter
}

// NewScanner creates a scanner over fs.
func NewScanner(fs filesystem.FileSystem) *Scanner {
	return &Scanner{
		FS:     fs,
		Logger: zerolog.Nop(),
	}
}

// SetEventEmitter sets the emitter for ScanProgress events (nil disables them).
func (s *Scanner) SetEventEmitter(emitter EventEmitter) {
	s.emitter = emitter
}

// Scan walks roots in order and returns every file whose extension is in exts.
// Entries that cannot be read are logged and counted, never fatal. The only
// error is ctx.Err() when ctx is cancelled mid-scan.
func (s *Scanner) Scan(ctx context.Context, roots []string, exts ExtensionSet) (ScanResult, error) {
	var result ScanResult

	for _, root := range roots {
		scanner := s.FS.Scan(root)

		for {
			if err := ctx.Err(); err != nil {
				return ScanResult{}, err
			}

			info, ok := scanner.Next()
			if !ok {
				break
			}

			if info.Err != nil {
				result.Skipped++
				s.Logger.Warn().Err(info.Err).Str("path", info.Path).Msg("Could not read entry")
			}

			if info.IsDir || !exts.Matches(info.Path) || s.Exclude.Excludes(info.RelativePath) {
				continue
			}

			result.Files = append(result.Files, FoundFile{
				Path:    info.Path,
				Size:    info.Size,
				ModTime: unixNano(info.ModTime),
			})

			if len(result.Files)%ScanProgressInterval == 0 && s.emitter != nil {
				s.emitter.Emit(ScanProgress{Root: root, Found: len(result.Files)})
			}
		}

		if err := scanner.Err(); err != nil {
			result.Skipped++
			s.Logger.Warn().Err(err).Str("root", root).Msg("Could not scan root folder")
		}
	}

	s.Logger.Debug().
		Int("found", len(result.Files)).
		Int("skipped", result.Skipped).
		Msg("Scan finished")

	return result, nil
}

func unixNano(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}

	return t.UnixNano()
}

// nanoToSeconds converts a unix nanosecond stamp to whole seconds, keeping 0 as 0.
func nanoToSeconds(nano int64) int64 {
	return time.Unix(0, nano).Unix()
}
