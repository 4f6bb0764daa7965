package filesystem

import (
	"time"
)

// FileScanner is an iterator over the entries of a directory tree.
// It provides a simple Next pattern for traversing directory contents.
type FileScanner interface {
	// Next advances to the next entry and returns its info.
	// Returns (FileInfo{}, false) when done or when the root itself cannot be read.
	// Entries that could not be read are still returned, with FileInfo.Err set;
	// they do not end the iteration.
	Next() (FileInfo, bool)

	// Err returns the error that prevented the scan root from being read.
	// Should be checked after Next() returns false.
	Err() error
}

// FileInfo contains metadata about a scanned entry.
// This is our own type (not os.FileInfo) to make it easier to work with.
type FileInfo struct {
	// Path is the root joined with RelativePath
	Path string

	// RelativePath is the path relative to the scan root
	RelativePath string

	// Size is the file size in bytes (0 when unknown)
	Size int64

	// ModTime is the modification time (zero when unknown)
	ModTime time.Time

	// IsDir indicates if this is a directory
	IsDir bool

	// Err is set when the entry (or, for a directory, its listing) could not be read
	Err error
}
