// Package finder finds files by type under a set of root folders, sorts out
// duplicates and copies or moves the survivors to a destination.
package finder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/joe/file-finder/internal/config"
	"github.com/joe/file-finder/internal/logging"
	"github.com/joe/file-finder/pkg/fileops"
	"github.com/joe/file-finder/pkg/filesystem"
)

// Exported variables.
var (
	ErrInvalidDestination = errors.New("destination is not a directory")
	ErrInvalidRoot        = errors.New("root folder is not a directory")
	ErrNoDestination      = errors.New("no destination folder given")
	ErrNoDuplicates       = errors.New("no duplicate set is waiting for a decision")
	ErrNoExtensions       = errors.New("no file extensions selected")
	ErrNoFiles            = errors.New("no files selected for transfer")
	ErrNoRoots            = errors.New("no root folders given")
	ErrNotInCurrentSet    = errors.New("path is not in the current duplicate set")
	ErrNotInList          = errors.New("path is not in the file list")
	ErrUnknownPreset      = errors.New("unknown preset")
)

// QuickFolders are the names QuickFolder resolves under the home directory.
//
//nolint:gochecknoglobals // Fixed lookup table
var QuickFolders = []string{"Desktop", "Documents"}

// TransferRequest describes one transfer batch.
type TransferRequest struct {
	Dest     string
	Preserve bool
	Policy   config.ConflictPolicy
	Mode     config.TransferMode

	// Files limits the batch to these listed paths; empty means the whole list
	Files []string

	// Control, when set, lets another goroutine pause or stop the batch
	Control *Controller
}

// Engine owns the roots, type selection, found files and duplicate cursor of
// one session. It is not safe for concurrent use: scan, resolve and
// transfer calls must not overlap. Use a Controller to pause or stop a
// transfer from elsewhere.
type Engine struct {
	FS      filesystem.FileSystem
	Presets []config.PresetDef
	Exclude []string
	Logger  zerolog.Logger

	roots     []string
	selection TypeSelection
	list      *FileList
	resolver  *DuplicateResolver
	emitter   EventEmitter
	homeDir   func() (string, error)
}

// NewEngine creates an engine over fs with the built-in presets.
func NewEngine(fs filesystem.FileSystem) *Engine {
	list := NewFileList(nil)

	return &Engine{
		FS:        fs,
		Presets:   config.DefaultPresets(),
		Logger:    zerolog.Nop(),
		selection: TypeSelection{Preset: config.DefaultPreset},
		list:      list,
		resolver:  NewDuplicateResolver(list),
		homeDir:   os.UserHomeDir,
	}
}

// NewRealEngine creates an engine over the real filesystem.
func NewRealEngine() *Engine {
	return NewEngine(filesystem.NewRealFileSystem())
}

// SetEventEmitter sets the event emitter for UI communication.
// The emitter is optional - if nil, no events will be emitted.
func (e *Engine) SetEventEmitter(emitter EventEmitter) {
	e.emitter = emitter
}

// GetEventEmitter returns the current event emitter.
func (e *Engine) GetEventEmitter() EventEmitter {
	return e.emitter
}

// Roots

// AddRoot validates path as an existing directory and appends its absolute,
// cleaned form. Adding a root twice is a no-op. It returns the stored path.
func (e *Engine) AddRoot(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidRoot)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrInvalidRoot, path, err)
	}

	if err := e.checkDir(abs, ErrInvalidRoot); err != nil {
		return "", err
	}

	if !slices.Contains(e.roots, abs) {
		e.roots = append(e.roots, abs)
		e.Logger.Debug().Str("root", abs).Msg("Root folder added")
	}

	return abs, nil
}

// RemoveRoot removes a root; it reports whether the root was present.
func (e *Engine) RemoveRoot(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	i := slices.Index(e.roots, abs)
	if i < 0 {
		return false
	}

	e.roots = slices.Delete(e.roots, i, i+1)

	return true
}

// Roots returns the roots in the order they were added.
func (e *Engine) Roots() []string {
	return slices.Clone(e.roots)
}

// QuickFolder adds a well-known folder ("Desktop", "Documents") from the
// home directory as a root. Any other name is added as a path.
func (e *Engine) QuickFolder(name string) (string, error) {
	for _, quick := range QuickFolders {
		if !strings.EqualFold(name, quick) {
			continue
		}

		home, err := e.homeDir()
		if err != nil {
			return "", fmt.Errorf("failed to find home directory: %w", err)
		}

		return e.AddRoot(filepath.Join(home, quick))
	}

	return e.AddRoot(name)
}

// Selection

// SetSelection sets the file types the next scan looks for.
func (e *Engine) SetSelection(sel TypeSelection) {
	e.selection = sel
}

// Selection returns the current type selection.
func (e *Engine) Selection() TypeSelection {
	return e.selection
}

// Extensions resolves the current selection.
func (e *Engine) Extensions() (ExtensionSet, error) {
	return ResolveExtensions(e.selection, e.Presets)
}

// Scan

// Scan replaces the file list with a fresh scan of the roots. Validation
// errors are returned before anything is read; a cancelled scan returns
// ctx.Err() and keeps the previous list.
func (e *Engine) Scan(ctx context.Context) (ScanResult, error) {
	roots := e.Roots()
	if len(roots) == 0 {
		return ScanResult{}, ErrNoRoots
	}

	for _, root := range roots {
		if err := e.checkDir(root, ErrInvalidRoot); err != nil {
			return ScanResult{}, err
		}
	}

	exts, err := e.Extensions()
	if err != nil {
		return ScanResult{}, err
	}

	start := time.Now()

	e.emit(ScanStarted{Roots: roots, Extensions: exts.List()})
	e.Logger.Info().Strs("roots", roots).Str("extensions", exts.String()).Msg("Scan started")

	scanner := NewScanner(e.FS)
	scanner.Exclude = NewExcludeFilter(e.Exclude...)
	scanner.Logger = logging.Component(e.Logger, "scanner")
	scanner.SetEventEmitter(e.emitter)

	result, err := scanner.Scan(ctx, roots, exts)
	if err != nil {
		return ScanResult{}, fmt.Errorf("scan cancelled: %w", err)
	}

	e.replaceList(result.Files)
	e.emit(ScanComplete{Found: len(result.Files), Skipped: result.Skipped})
	e.Logger.Info().
		Int("found", len(result.Files)).
		Int("skipped", result.Skipped).
		Int("duplicateSets", e.resolver.Remaining()).
		Dur("duration", time.Since(start)).
		Msg("Scan complete")

	return result, nil
}

// File list

// Files returns a copy of the found files in list order.
func (e *Engine) Files() []FoundFile {
	return e.list.Files()
}

// Paths returns the found paths in list order.
func (e *Engine) Paths() []string {
	return e.list.Paths()
}

// TotalSize returns the summed size of the found files.
func (e *Engine) TotalSize() int64 {
	return e.list.TotalSize()
}

// Remove drops paths from the list without touching the filesystem.
func (e *Engine) Remove(paths ...string) int {
	removed := e.list.Remove(paths...)
	if removed > 0 {
		e.regroup()
	}

	return removed
}

// DeleteFromDisk deletes listed files from the filesystem and drops each
// deleted one from the list. Paths that are not listed or could not be
// deleted are returned as failures and stay untouched.
func (e *Engine) DeleteFromDisk(paths ...string) []Failure {
	var failures []Failure
	var deleted []string

	ops := fileops.NewFileOps(e.FS)

	for _, path := range paths {
		if !e.list.Contains(path) {
			failures = append(failures, Failure{Source: path, Err: ErrNotInList})
			continue
		}

		if err := ops.Remove(path); err != nil {
			e.Logger.Warn().Err(err).Str("path", path).Msg("Delete failed")
			failures = append(failures, Failure{Source: path, Err: err})

			continue
		}

		deleted = append(deleted, path)
	}

	e.Logger.Info().Int("deleted", len(deleted)).Int("failed", len(failures)).Msg("Deleted files from disk")
	e.Remove(deleted...)

	return failures
}

// Duplicates

// Duplicates returns the duplicate sets still waiting for a decision.
func (e *Engine) Duplicates() []DuplicateSet {
	return e.resolver.Pending()
}

// DuplicateState returns the state of the duplicate cursor.
func (e *Engine) DuplicateState() ResolverState {
	return e.resolver.State()
}

// CurrentDuplicate returns the set awaiting a decision.
func (e *Engine) CurrentDuplicate() (DuplicateSet, bool) {
	return e.resolver.Current()
}

// DuplicatePosition returns the 1-based number of the current set and the total.
func (e *Engine) DuplicatePosition() (int, int) {
	return e.resolver.Position()
}

// ResolveCurrent keeps keep from the current duplicate set and drops the rest.
func (e *Engine) ResolveCurrent(keep string) (int, error) {
	removed, err := e.resolver.ResolveCurrent(keep)
	if err != nil {
		return 0, err
	}

	e.listChanged()

	return removed, nil
}

// SkipAllDuplicates keeps the first file of every remaining set.
func (e *Engine) SkipAllDuplicates() int {
	removed := e.resolver.SkipAllRemaining()
	e.listChanged()

	return removed
}

// KeepAllDuplicates keeps the first file of every remaining set.
func (e *Engine) KeepAllDuplicates() int {
	removed := e.resolver.KeepAllRemaining()
	e.listChanged()

	return removed
}

// Transfer

// Transfer copies or moves the requested files. Validation errors come back
// before any file is touched; otherwise the result is always non-nil and
// per-file problems are in its Failures. After a clean move the list is
// stale and NeedsRescan reports true.
func (e *Engine) Transfer(ctx context.Context, req TransferRequest) (*TransferResult, error) {
	dest, err := e.ValidateDestination(req.Dest)
	if err != nil {
		return nil, err
	}

	files := req.Files
	if len(files) == 0 {
		files = e.list.Paths()
	}

	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	for _, file := range files {
		if !e.list.Contains(file) {
			return nil, fmt.Errorf("%w: %s", ErrNotInList, file)
		}
	}

	planner := NewPlanner(e.Roots(), dest, req.Preserve)
	planner.Logger = logging.Component(e.Logger, "planner")
	planner.SetEventEmitter(e.emitter)

	executor := NewExecutor(fileops.NewFileOps(e.FS))
	executor.Control = req.Control
	executor.Logger = logging.Component(e.Logger, "executor")
	executor.SetEventEmitter(e.emitter)

	return executor.Execute(ctx, planner.PlanAll(files), req.Policy, req.Mode), nil
}

// ValidateDestination checks that path names an existing directory and
// returns its absolute form.
func (e *Engine) ValidateDestination(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", ErrNoDestination
	}

	dest, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrInvalidDestination, path, err)
	}

	if err := e.checkDir(dest, ErrInvalidDestination); err != nil {
		return "", err
	}

	return dest, nil
}

// Artifacts

// ExportList writes the found paths to path, one per line.
func (e *Engine) ExportList(path string) error {
	return ExportList(e.FS, path, e.list.Paths())
}

// LoadList replaces the file list with the paths in a list file. Each path
// is stat'ed for size and modification time, 0 when that fails.
func (e *Engine) LoadList(path string) (int, error) {
	paths, err := ReadList(e.FS, path)
	if err != nil {
		return 0, err
	}

	files := make([]FoundFile, 0, len(paths))
	for _, p := range paths {
		file := FoundFile{Path: p}

		if info, statErr := e.FS.Stat(p); statErr == nil {
			file.Size = info.Size()
			file.ModTime = unixNano(info.ModTime())
		} else {
			e.Logger.Warn().Err(statErr).Str("path", p).Msg("Listed file cannot be read")
		}

		files = append(files, file)
	}

	e.replaceList(files)

	return e.list.Len(), nil
}

// WriteErrorLog writes the failures of result to path.
func (e *Engine) WriteErrorLog(path string, result *TransferResult) error {
	return WriteErrorLog(e.FS, path, result.Failures)
}

func (e *Engine) replaceList(files []FoundFile) {
	e.list.Replace(files)
	e.regroup()
}

// regroup rebuilds the duplicate cursor from the current list.
func (e *Engine) regroup() {
	e.resolver = NewDuplicateResolver(e.list)
	e.listChanged()
}

func (e *Engine) listChanged() {
	e.emit(ListChanged{Files: e.list.Len(), Duplicates: e.resolver.Remaining()})
}

func (e *Engine) checkDir(path string, sentinel error) error {
	info, err := e.FS.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", sentinel, path, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("%w: %s", sentinel, path)
	}

	return nil
}

func (e *Engine) emit(event Event) {
	if e.emitter != nil {
		e.emitter.Emit(event)
	}
}
