package filesystem

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kr/fs"
)

// realFileScanner implements FileScanner on top of a kr/fs walker.
// Entries are produced lazily, one walker step per Next call.
type realFileScanner struct {
	root   string
	walker *fs.Walker
	err    error
	done   bool
}

// newRealFileScanner creates a new scanner for the given directory.
func newRealFileScanner(root string) *realFileScanner {
	return &realFileScanner{
		root:   root,
		walker: fs.Walk(root),
	}
}

// Err returns the error that prevented the root from being read.
func (s *realFileScanner) Err() error {
	return s.err
}

// Next advances to the next entry and returns its info.
func (s *realFileScanner) Next() (FileInfo, bool) {
	for !s.done && s.walker.Step() {
		fullPath := s.walker.Path()

		if err := s.walker.Err(); err != nil { //nolint:noinlineerr // Inline error check is idiomatic for walker error handling
			if fullPath == s.root {
				s.err = fmt.Errorf("error scanning directory %s: %w", s.root, err)
				s.done = true

				return FileInfo{}, false
			}

			return FileInfo{Path: fullPath, RelativePath: s.relative(fullPath), Err: err}, true
		}

		// Skip the root directory itself
		if fullPath == s.root {
			continue
		}

		return s.describe(fullPath, s.walker.Stat()), true
	}

	s.done = true

	return FileInfo{}, false
}

// describe builds the FileInfo for one entry. Symlinks are resolved so that a
// link to a regular file is reported like the file itself; links to
// directories are reported as directories but never descended into.
func (s *realFileScanner) describe(fullPath string, stat os.FileInfo) FileInfo {
	info := FileInfo{
		Path:         fullPath,
		RelativePath: s.relative(fullPath),
		IsDir:        stat.IsDir(),
	}

	if stat.Mode()&os.ModeSymlink != 0 {
		target, err := os.Stat(fullPath)
		if err != nil {
			// Dangling link: keep it, with unknown size and time
			return info
		}

		stat = target
		info.IsDir = target.IsDir()
	}

	if !info.IsDir {
		info.Size = stat.Size()
		info.ModTime = stat.ModTime()
	}

	return info
}

func (s *realFileScanner) relative(fullPath string) string {
	rel, err := filepath.Rel(s.root, fullPath)
	if err != nil {
		return fullPath
	}

	return rel
}
