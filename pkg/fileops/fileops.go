// Package fileops provides the file-level copy and move primitives used by transfers.
package fileops

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/joe/file-finder/pkg/filesystem"
)

// Exported constants.
const (
	// BufferSize is the size of the buffer used for file copy operations (64KB)
	BufferSize = 64 * 1024
	// DefaultDirPermissions is the default permission mode for created directories
	DefaultDirPermissions = 0o750
)

// ErrSameFile is returned when a copy's source and destination are one file.
var ErrSameFile = errors.New("source and destination are the same file")

// FileOps provides file operations with dependency injection for filesystem access.
// This allows for testing without actual filesystem I/O.
type FileOps struct {
	FS filesystem.FileSystem
}

// NewFileOps creates a new FileOps instance with the given filesystem.
func NewFileOps(fs filesystem.FileSystem) *FileOps {
	return &FileOps{FS: fs}
}

// NewRealFileOps creates a new FileOps instance using the real filesystem.
func NewRealFileOps() *FileOps {
	return &FileOps{FS: filesystem.NewRealFileSystem()}
}

// CopyFile copies src to dst, replacing dst if it exists, and carries the
// permission bits and modification time over. The destination directory must
// already exist. A failed copy leaves no partial file at dst. Copying a file
// onto itself fails with ErrSameFile and leaves it untouched.
func (fo *FileOps) CopyFile(src, dst string) (int64, error) {
	sourceFile, err := fo.FS.Open(src)
	if err != nil {
		return 0, fmt.Errorf("failed to open source file %s: %w", src, err)
	}

	defer func() {
		_ = sourceFile.Close()
	}()

	sourceInfo, err := sourceFile.Stat()
	if err != nil {
		return 0, fmt.Errorf("failed to stat source file %s: %w", src, err)
	}

	if fo.sameFile(src, sourceInfo, dst) {
		return 0, fmt.Errorf("cannot copy %s to %s: %w", src, dst, ErrSameFile)
	}

	destFile, err := fo.FS.Create(dst)
	if err != nil {
		return 0, fmt.Errorf("failed to create destination file %s: %w", dst, err)
	}

	copyCompleted := false

	defer func() {
		if !copyCompleted {
			_ = destFile.Close()
			_ = fo.FS.Remove(dst)
		}
	}()

	buf := make([]byte, BufferSize)

	written, err := io.CopyBuffer(onlyWriter{destFile}, onlyReader{sourceFile}, buf)
	if err != nil {
		return written, fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}

	// Close before touching metadata; some network filesystems reset times on close
	err = destFile.Close()
	if err != nil {
		return written, fmt.Errorf("failed to close destination file %s: %w", dst, err)
	}

	copyCompleted = true

	err = fo.preserveMetadata(dst, sourceInfo)
	if err != nil {
		return written, err
	}

	return written, nil
}

// MoveFile moves src to dst, replacing dst if it exists. A rename is tried
// first; when that fails and the source is still in place (for example across
// devices) the file is copied with its metadata and the source removed.
func (fo *FileOps) MoveFile(src, dst string) error {
	renameErr := fo.FS.Rename(src, dst)
	if renameErr == nil {
		return nil
	}

	if _, err := fo.FS.Stat(src); err != nil {
		return fmt.Errorf("failed to move %s to %s: %w", src, dst, renameErr)
	}

	_, err := fo.CopyFile(src, dst)
	if err != nil {
		return fmt.Errorf("failed to move %s to %s: %w", src, dst, errors.Join(renameErr, err))
	}

	err = fo.FS.Remove(src)
	if err != nil {
		return fmt.Errorf("moved %s to %s but could not remove the source: %w", src, dst, err)
	}

	return nil
}

// EnsureDir creates dir and any missing parents.
func (fo *FileOps) EnsureDir(dir string) error {
	return fo.FS.MkdirAll(dir, DefaultDirPermissions) //nolint:wrapcheck // FileSystem errors already name the directory
}

// Exists reports whether path can be stat'ed.
func (fo *FileOps) Exists(path string) bool {
	_, err := fo.FS.Stat(path)

	return err == nil
}

// Remove deletes a single file.
func (fo *FileOps) Remove(path string) error {
	err := fo.FS.Remove(path)
	if err != nil {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}

	return nil
}

// sameFile reports whether dst already names the file src, by path or by
// device and inode.
func (fo *FileOps) sameFile(src string, srcInfo os.FileInfo, dst string) bool {
	if filepath.Clean(src) == filepath.Clean(dst) {
		return true
	}

	dstInfo, err := fo.FS.Stat(dst)
	if err != nil {
		return false
	}

	return os.SameFile(srcInfo, dstInfo)
}

func (fo *FileOps) preserveMetadata(dst string, sourceInfo os.FileInfo) error {
	err := fo.FS.Chmod(dst, sourceInfo.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to preserve permissions for %s: %w", dst, err)
	}

	err = fo.FS.Chtimes(dst, sourceInfo.ModTime(), sourceInfo.ModTime())
	if err != nil {
		return fmt.Errorf("failed to preserve modification time for %s: %w", dst, err)
	}

	return nil
}

// onlyReader and onlyWriter hide ReadFrom/WriteTo so the shared buffer is always used.
type onlyReader struct{ io.Reader }

type onlyWriter struct{ io.Writer }
