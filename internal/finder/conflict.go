package finder

import (
	"fmt"
	"path/filepath"

	"github.com/joe/file-finder/internal/config"
	"github.com/joe/file-finder/pkg/filesystem"
)

// OutcomeKind is what a conflict resolution decided.
type OutcomeKind int

const (
	// WriteTo means the file should be written to Outcome.Path
	WriteTo OutcomeKind = iota
	// SkipFile means the file must not be transferred
	SkipFile
)

// String returns the string representation of OutcomeKind
func (k OutcomeKind) String() string {
	if k == SkipFile {
		return "skip"
	}

	return "write"
}

// Outcome is the final decision for one intended destination.
type Outcome struct {
	Kind OutcomeKind
	Path string

	// Overwrite is set when Path already exists and will be replaced
	Overwrite bool
}

// ConflictResolver decides what to do when a destination already exists.
type ConflictResolver struct {
	FS filesystem.FileSystem
}

// NewConflictResolver creates a resolver that checks existence on fs.
func NewConflictResolver(fs filesystem.FileSystem) *ConflictResolver {
	return &ConflictResolver{FS: fs}
}

// Resolve returns the outcome for intended under policy. Every (exists,
// policy) pair has exactly one outcome; an unknown policy behaves like Skip.
func (r *ConflictResolver) Resolve(intended string, policy config.ConflictPolicy) Outcome {
	if !r.exists(intended) {
		return Outcome{Kind: WriteTo, Path: intended}
	}

	switch policy {
	case config.Overwrite:
		return Outcome{Kind: WriteTo, Path: intended, Overwrite: true}
	case config.AutoRename:
		for n := 1; ; n++ {
			candidate := RenameCandidate(intended, n)
			if !r.exists(candidate) {
				return Outcome{Kind: WriteTo, Path: candidate}
			}
		}
	case config.Skip:
		return Outcome{Kind: SkipFile, Path: intended}
	default:
		return Outcome{Kind: SkipFile, Path: intended}
	}
}

func (r *ConflictResolver) exists(path string) bool {
	_, err := r.FS.Stat(path)

	return err == nil
}

// RenameCandidate returns path with " (n)" inserted before its extension:
// "/out/p.jpg" becomes "/out/p (1).jpg" for n=1.
func RenameCandidate(path string, n int) string {
	ext := splitExt(filepath.Base(path))
	stem := path[:len(path)-len(ext)]

	return fmt.Sprintf("%s (%d)%s", stem, n, ext)
}
