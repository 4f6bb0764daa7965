package filesystem

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// Exported constants.
const (
	OpChmod    = "chmod"
	OpChtimes  = "chtimes"
	OpCreate   = "create"
	OpMkdirAll = "mkdirall"
	OpOpen     = "open"
	OpRemove   = "remove"
	OpRename   = "rename"
	OpScan     = "scan"
)

// MockFileSystem is an in-memory filesystem implementation for testing.
// Paths are used as given; callers should pass cleaned, slash-separated paths.
type MockFileSystem struct {
	mu       sync.RWMutex
	files    map[string]*mockFile
	failures map[string]error
}

// NewMockFileSystem creates a new in-memory filesystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files:    make(map[string]*mockFile),
		failures: make(map[string]error),
	}
}

// mockFile represents a file in the mock filesystem.
type mockFile struct {
	data    []byte
	modTime time.Time
	isDir   bool
	perm    os.FileMode
}

func (f *mockFile) info(path string) *mockFileInfo {
	return &mockFileInfo{
		name:    filepath.Base(path),
		size:    int64(len(f.data)),
		modTime: f.modTime,
		isDir:   f.isDir,
		perm:    f.perm,
	}
}

// mockFileInfo implements os.FileInfo for mock files.
type mockFileInfo struct {
	name    string
	size    int64
	modTime time.Time
	isDir   bool
	perm    os.FileMode
}

func (fi *mockFileInfo) Name() string       { return fi.name }
func (fi *mockFileInfo) Size() int64        { return fi.size }
func (fi *mockFileInfo) ModTime() time.Time { return fi.modTime }
func (fi *mockFileInfo) IsDir() bool        { return fi.isDir }
func (fi *mockFileInfo) Sys() interface{}   { return nil }

func (fi *mockFileInfo) Mode() os.FileMode {
	if fi.isDir {
		return fi.perm | os.ModeDir
	}

	return fi.perm
}

// mockFileHandle implements the File interface for reading/writing.
type mockFileHandle struct {
	fs     *MockFileSystem
	path   string
	reader *bytes.Reader
	writer *bytes.Buffer
	closed bool
}

func (f *mockFileHandle) Read(p []byte) (int, error) {
	if f.closed {
		return 0, os.ErrClosed
	}
	if f.reader == nil {
		return 0, io.EOF
	}

	return f.reader.Read(p)
}

func (f *mockFileHandle) Write(p []byte) (int, error) {
	if f.closed {
		return 0, os.ErrClosed
	}
	if f.writer == nil {
		return 0, fmt.Errorf("write %s: bad file descriptor", f.path)
	}

	return f.writer.Write(p)
}

func (f *mockFileHandle) Close() error {
	if f.closed {
		return os.ErrClosed
	}
	f.closed = true

	if f.writer != nil {
		f.fs.mu.Lock()
		defer f.fs.mu.Unlock()

		if file, exists := f.fs.files[f.path]; exists {
			file.data = f.writer.Bytes()
		}
	}

	return nil
}

func (f *mockFileHandle) Stat() (os.FileInfo, error) {
	if f.closed {
		return nil, os.ErrClosed
	}

	f.fs.mu.RLock()
	defer f.fs.mu.RUnlock()

	file, exists := f.fs.files[f.path]
	if !exists {
		return nil, os.ErrNotExist
	}

	return file.info(f.path), nil
}

// FailOn makes every subsequent op (one of the Op* constants) on path return err.
// OpScan on an entry below a scan root reports that entry with Err set and,
// for a directory, leaves out everything under it; on the root it fails the scan.
func (fs *MockFileSystem) FailOn(op, path string, err error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.failures[op+"\x00"+path] = err
}

func (fs *MockFileSystem) injected(op, path string) error {
	if err, ok := fs.failures[op+"\x00"+path]; ok {
		return &os.PathError{Op: op, Path: path, Err: err}
	}

	return nil
}

// Chmod changes the permission bits of a file.
func (fs *MockFileSystem) Chmod(path string, mode os.FileMode) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := fs.injected(OpChmod, path); err != nil {
		return err
	}

	file, exists := fs.files[path]
	if !exists {
		return &os.PathError{Op: OpChmod, Path: path, Err: os.ErrNotExist}
	}

	file.perm = mode.Perm()

	return nil
}

// Chtimes changes the modification time of a file.
func (fs *MockFileSystem) Chtimes(path string, _, mtime time.Time) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := fs.injected(OpChtimes, path); err != nil {
		return err
	}

	file, exists := fs.files[path]
	if !exists {
		return &os.PathError{Op: OpChtimes, Path: path, Err: os.ErrNotExist}
	}

	file.modTime = mtime

	return nil
}

// Create creates or truncates a file for writing. The parent must exist.
func (fs *MockFileSystem) Create(path string) (File, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := fs.injected(OpCreate, path); err != nil {
		return nil, err
	}

	if parent, ok := fs.files[filepath.Dir(path)]; !ok || !parent.isDir {
		if filepath.Dir(path) != "/" {
			return nil, &os.PathError{Op: OpCreate, Path: path, Err: os.ErrNotExist}
		}
	}

	if existing, ok := fs.files[path]; ok && existing.isDir {
		return nil, &os.PathError{Op: OpCreate, Path: path, Err: fmt.Errorf("is a directory")}
	}

	fs.files[path] = &mockFile{
		data:    []byte{},
		modTime: time.Now(),
		perm:    0o644,
	}

	return &mockFileHandle{
		fs:     fs,
		path:   path,
		writer: &bytes.Buffer{},
	}, nil
}

// MkdirAll creates a directory and all necessary parents.
func (fs *MockFileSystem) MkdirAll(path string, perm os.FileMode) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := fs.injected(OpMkdirAll, path); err != nil {
		return err
	}

	return fs.mkdirAllLocked(path, perm)
}

// mkdirAllLocked is the internal implementation that assumes the lock is held.
func (fs *MockFileSystem) mkdirAllLocked(path string, perm os.FileMode) error {
	if path == "." || path == "/" {
		return nil
	}

	if existing, exists := fs.files[path]; exists {
		if !existing.isDir {
			return &os.PathError{Op: "mkdir", Path: path, Err: fmt.Errorf("not a directory")}
		}

		return nil
	}

	if err := fs.mkdirAllLocked(filepath.Dir(path), perm); err != nil {
		return err
	}

	fs.files[path] = &mockFile{
		modTime: time.Now(),
		isDir:   true,
		perm:    perm,
	}

	return nil
}

// Open opens a file for reading.
func (fs *MockFileSystem) Open(path string) (File, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	if err := fs.injected(OpOpen, path); err != nil {
		return nil, err
	}

	file, exists := fs.files[path]
	if !exists {
		return nil, &os.PathError{Op: OpOpen, Path: path, Err: os.ErrNotExist}
	}

	if file.isDir {
		return nil, &os.PathError{Op: OpOpen, Path: path, Err: fmt.Errorf("is a directory")}
	}

	return &mockFileHandle{
		fs:     fs,
		path:   path,
		reader: bytes.NewReader(file.data),
	}, nil
}

// Remove removes a file or empty directory.
func (fs *MockFileSystem) Remove(path string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := fs.injected(OpRemove, path); err != nil {
		return err
	}

	file, exists := fs.files[path]
	if !exists {
		return &os.PathError{Op: OpRemove, Path: path, Err: os.ErrNotExist}
	}

	if file.isDir {
		for p := range fs.files {
			if strings.HasPrefix(p, path+"/") {
				return &os.PathError{Op: OpRemove, Path: path, Err: fmt.Errorf("directory not empty")}
			}
		}
	}

	delete(fs.files, path)

	return nil
}

// Rename moves a file, replacing the target if it is a file.
func (fs *MockFileSystem) Rename(oldPath, newPath string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := fs.injected(OpRename, oldPath); err != nil {
		return &os.LinkError{Op: OpRename, Old: oldPath, New: newPath, Err: err}
	}

	file, exists := fs.files[oldPath]
	if !exists {
		return &os.LinkError{Op: OpRename, Old: oldPath, New: newPath, Err: os.ErrNotExist}
	}

	if parent, ok := fs.files[filepath.Dir(newPath)]; (!ok || !parent.isDir) && filepath.Dir(newPath) != "/" {
		return &os.LinkError{Op: OpRename, Old: oldPath, New: newPath, Err: os.ErrNotExist}
	}

	delete(fs.files, oldPath)
	fs.files[newPath] = file

	return nil
}

// Scan returns an iterator over all entries in a directory tree.
func (fs *MockFileSystem) Scan(path string) FileScanner {
	return newMockFileScanner(fs, path)
}

// Stat returns file information.
func (fs *MockFileSystem) Stat(path string) (os.FileInfo, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	file, exists := fs.files[path]
	if !exists {
		return nil, &os.PathError{Op: "stat", Path: path, Err: os.ErrNotExist}
	}

	return file.info(path), nil
}

// Helper methods for testing

// AddFile adds a file to the mock filesystem with the given content and modtime.
func (fs *MockFileSystem) AddFile(path string, content []byte, modTime time.Time) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	_ = fs.mkdirAllLocked(filepath.Dir(path), 0o755)

	fs.files[path] = &mockFile{
		data:    append([]byte(nil), content...),
		modTime: modTime,
		perm:    0o644,
	}
}

// AddDir adds a directory (and its parents) to the mock filesystem.
func (fs *MockFileSystem) AddDir(path string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	_ = fs.mkdirAllLocked(path, 0o755)
}

// GetFile retrieves a file's content and modtime from the mock filesystem.
func (fs *MockFileSystem) GetFile(path string) ([]byte, time.Time, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	file, exists := fs.files[path]
	if !exists {
		return nil, time.Time{}, os.ErrNotExist
	}

	if file.isDir {
		return nil, time.Time{}, fmt.Errorf("is a directory")
	}

	return append([]byte(nil), file.data...), file.modTime, nil
}

// Exists checks if a path exists in the mock filesystem.
func (fs *MockFileSystem) Exists(path string) bool {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	_, exists := fs.files[path]

	return exists
}

// ListFiles returns all non-directory paths in the mock filesystem, sorted.
func (fs *MockFileSystem) ListFiles() []string {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	paths := make([]string, 0, len(fs.files))
	for p, f := range fs.files {
		if !f.isDir {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)

	return paths
}
