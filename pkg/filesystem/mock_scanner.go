package filesystem

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// mockFileScanner implements FileScanner for MockFileSystem.
type mockFileScanner struct {
	fs      *MockFileSystem
	root    string
	files   []FileInfo
	index   int
	err     error
	scanned bool
}

// newMockFileScanner creates a new scanner for the given directory.
func newMockFileScanner(fs *MockFileSystem, root string) *mockFileScanner {
	return &mockFileScanner{
		fs:    fs,
		root:  root,
		files: make([]FileInfo, 0),
		index: -1,
	}
}

// Err returns the error that prevented the root from being read.
func (s *mockFileScanner) Err() error {
	return s.err
}

// Next advances to the next entry and returns its info.
func (s *mockFileScanner) Next() (FileInfo, bool) {
	if !s.scanned {
		s.scan()
		s.scanned = true
	}

	if s.err != nil {
		return FileInfo{}, false
	}

	s.index++
	if s.index >= len(s.files) {
		return FileInfo{}, false
	}

	return s.files[s.index], true
}

// scan collects all entries under the root, sorted by path like a real walk.
func (s *mockFileScanner) scan() {
	s.fs.mu.RLock()
	defer s.fs.mu.RUnlock()

	if root, ok := s.fs.files[s.root]; !ok || !root.isDir {
		s.err = &os.PathError{Op: OpScan, Path: s.root, Err: os.ErrNotExist}
		return
	}

	if err := s.fs.injected(OpScan, s.root); err != nil {
		s.err = err
		return
	}

	prefix := strings.TrimSuffix(s.root, "/") + "/"

	for path, file := range s.fs.files {
		if !strings.HasPrefix(path, prefix) {
			continue
		}

		relPath, err := filepath.Rel(s.root, path)
		if err != nil {
			continue
		}

		info := FileInfo{
			Path:         path,
			RelativePath: relPath,
			IsDir:        file.isDir,
		}
		if !file.isDir {
			info.Size = int64(len(file.data))
			info.ModTime = file.modTime
		}

		s.files = append(s.files, info)
	}

	sort.Slice(s.files, func(i, j int) bool {
		return s.files[i].RelativePath < s.files[j].RelativePath
	})

	s.files = s.applyFailures(s.files)
}

// applyFailures marks entries with an injected OpScan error as unreadable and
// drops the contents of unreadable directories.
func (s *mockFileScanner) applyFailures(entries []FileInfo) []FileInfo {
	kept := entries[:0]

	var unreadable []string

	for _, info := range entries {
		if underAny(info.Path, unreadable) {
			continue
		}

		if err := s.fs.injected(OpScan, info.Path); err != nil {
			info = FileInfo{Path: info.Path, RelativePath: info.RelativePath, IsDir: info.IsDir, Err: err}
			if info.IsDir {
				unreadable = append(unreadable, info.Path+"/")
			}
		}

		kept = append(kept, info)
	}

	return kept
}

func underAny(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}

	return false
}
