package finder

import (
	"github.com/joe/file-finder/internal/config"
)

// Event is the interface implemented by all finder events.
type Event interface {
	isEvent()
}

// EventEmitter is the interface for emitting events.
type EventEmitter interface {
	Emit(event Event)
}

// EmitterFunc adapts a plain function to EventEmitter.
type EmitterFunc func(Event)

// Emit calls f(event).
func (f EmitterFunc) Emit(event Event) { f(event) }

// Scan phase events

// ScanStarted is emitted when a scan begins.
type ScanStarted struct {
	Roots      []string
	Extensions []string
}

func (ScanStarted) isEvent() {}

// ScanProgress is emitted every ScanProgressInterval matching files.
type ScanProgress struct {
	Root  string
	Found int
}

func (ScanProgress) isEvent() {}

// ScanComplete is emitted when a scan finishes.
// Skipped counts entries that could not be read.
type ScanComplete struct {
	Found   int
	Skipped int
}

func (ScanComplete) isEvent() {}

// ListChanged is emitted whenever the working file list is replaced or shrinks.
type ListChanged struct {
	Files      int
	Duplicates int
}

func (ListChanged) isEvent() {}

// Transfer phase events

// TransferStarted is emitted before the first file of a batch.
type TransferStarted struct {
	Total int
	Mode  config.TransferMode
}

func (TransferStarted) isEvent() {}

// TransferProgress is emitted after every file, whatever its outcome.
type TransferProgress struct {
	Processed int
	Total     int
}

func (TransferProgress) isEvent() {}

// FileTransferred is emitted when a file reached its destination.
type FileTransferred struct {
	Source string
	Dest   string
	Bytes  int64
}

func (FileTransferred) isEvent() {}

// FileSkipped is emitted when the conflict policy left an existing file alone.
type FileSkipped struct {
	Source string
	Dest   string
}

func (FileSkipped) isEvent() {}

// FileFailed is emitted when a file could not be transferred.
type FileFailed struct {
	Source string
	Err    error
}

func (FileFailed) isEvent() {}

// BaseFolderFallback is emitted when a file lies under none of the roots and
// the first root was used as its base folder instead.
type BaseFolderFallback struct {
	File       string
	BaseFolder string
}

func (BaseFolderFallback) isEvent() {}

// TransferPaused is emitted when a paused transfer starts waiting.
type TransferPaused struct {
	Processed int
}

func (TransferPaused) isEvent() {}

// TransferComplete is emitted when a batch ends, including after a stop.
type TransferComplete struct {
	Result *TransferResult
}

func (TransferComplete) isEvent() {}
