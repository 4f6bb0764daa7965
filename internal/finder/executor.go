package finder

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/joe/file-finder/internal/config"
	pkgerrors "github.com/joe/file-finder/pkg/errors"
	"github.com/joe/file-finder/pkg/fileops"
)

// Failure records why one file was not transferred.
type Failure struct {
	Source string
	Err    error
}

// Message returns the error text.
func (f Failure) Message() string {
	if f.Err == nil {
		return ""
	}

	return f.Err.Error()
}

// String formats the failure as "source: message".
func (f Failure) String() string {
	return f.Source + ": " + f.Message()
}

// TransferResult summarises a batch. It is returned even when the batch was
// stopped early.
type TransferResult struct {
	Mode        config.TransferMode
	Total       int
	Processed   int
	Transferred int
	Skipped     int
	Bytes       int64
	Failures    []Failure
	Stopped     bool
}

// Failed returns the number of failed files.
func (r *TransferResult) Failed() int {
	return len(r.Failures)
}

// NeedsRescan reports whether the found list is stale: a move that moved
// something and failed nothing.
func (r *TransferResult) NeedsRescan() bool {
	return r.Mode == config.Move && len(r.Failures) == 0 && r.Transferred > 0
}

// Executor carries out planned transfers one file at a time.
type Executor struct {
	Ops       *fileops.FileOps
	Conflicts *ConflictResolver
	Control   *Controller
	Logger    zerolog.Logger
	emitter   EventEmitter
	enricher  pkgerrors.Enricher
}

// NewExecutor creates an executor that works through ops.
func NewExecutor(ops *fileops.FileOps) *Executor {
	return &Executor{
		Ops:       ops,
		Conflicts: NewConflictResolver(ops.FS),
		Logger:    zerolog.Nop(),
		enricher:  pkgerrors.NewEnricher(),
	}
}

// SetEventEmitter sets the emitter for transfer events.
func (x *Executor) SetEventEmitter(emitter EventEmitter) {
	x.emitter = emitter
}

// Execute transfers plans in order. Pause and stop are honoured between
// files only. A failing file is recorded and the batch moves on.
func (x *Executor) Execute(
	ctx context.Context,
	plans []TransferPlan,
	policy config.ConflictPolicy,
	mode config.TransferMode,
) *TransferResult {
	result := &TransferResult{Mode: mode, Total: len(plans)}

	x.emit(TransferStarted{Total: len(plans), Mode: mode})
	x.Logger.Info().
		Int("files", len(plans)).
		Str("mode", mode.String()).
		Str("conflict", policy.String()).
		Msg("Transfer started")

	for _, plan := range plans {
		if !x.checkpoint(ctx, result) {
			result.Stopped = true
			x.Logger.Info().Int("processed", result.Processed).Msg("Transfer stopped")

			break
		}

		x.transfer(plan, policy, mode, result)

		result.Processed++
		x.emit(TransferProgress{Processed: result.Processed, Total: result.Total})
	}

	x.Logger.Info().
		Int("transferred", result.Transferred).
		Int("skipped", result.Skipped).
		Int("failed", result.Failed()).
		Msg("Transfer finished")
	x.emit(TransferComplete{Result: result})

	return result
}

func (x *Executor) checkpoint(ctx context.Context, result *TransferResult) bool {
	if x.Control == nil {
		return ctx.Err() == nil
	}

	if x.Control.Paused() {
		x.emit(TransferPaused{Processed: result.Processed})
	}

	return x.Control.Checkpoint(ctx)
}

func (x *Executor) transfer(plan TransferPlan, policy config.ConflictPolicy, mode config.TransferMode, result *TransferResult) {
	err := x.Ops.EnsureDir(filepath.Dir(plan.Intended))
	if err != nil {
		x.fail(result, plan.Source, err)
		return
	}

	outcome := x.Conflicts.Resolve(plan.Intended, policy)
	if outcome.Kind == SkipFile {
		result.Skipped++
		x.Logger.Debug().Str("source", plan.Source).Str("dest", outcome.Path).Msg("Destination exists, skipped")
		x.emit(FileSkipped{Source: plan.Source, Dest: outcome.Path})

		return
	}

	var written int64

	if mode == config.Move {
		if info, statErr := x.Ops.FS.Stat(plan.Source); statErr == nil {
			written = info.Size()
		}

		err = x.Ops.MoveFile(plan.Source, outcome.Path)
	} else {
		written, err = x.Ops.CopyFile(plan.Source, outcome.Path)
	}

	if err != nil {
		x.fail(result, plan.Source, err)
		return
	}

	result.Transferred++
	result.Bytes += written

	x.Logger.Debug().
		Str("source", plan.Source).
		Str("dest", outcome.Path).
		Bool("overwrite", outcome.Overwrite).
		Msg("Transferred")
	x.emit(FileTransferred{Source: plan.Source, Dest: outcome.Path, Bytes: written})
}

func (x *Executor) fail(result *TransferResult, source string, err error) {
	err = x.enricher.Enrich(err, "")
	result.Failures = append(result.Failures, Failure{Source: source, Err: err})

	x.Logger.Error().Err(err).Str("source", source).Msg("Transfer failed")
	x.emit(FileFailed{Source: source, Err: err})
}

func (x *Executor) emit(event Event) {
	if x.emitter != nil {
		x.emitter.Emit(event)
	}
}
