package finder

import (
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// TransferPlan is where one file is meant to go before conflict resolution.
type TransferPlan struct {
	Source      string
	BaseFolder  string
	BaseMatched bool
	Intended    string
}

// BaseFolder returns the longest root containing file. Roots are compared by
// whole path elements, so "/data/a" does not contain "/data/ab/x". When no
// root contains file the first root is returned with matched=false, and ""
// when there are no roots.
func BaseFolder(file string, roots []string) (string, bool) {
	best := ""
	matched := false

	for _, root := range roots {
		if !containsPath(root, file) {
			continue
		}

		if !matched || len(filepath.Clean(root)) > len(filepath.Clean(best)) {
			best = root
			matched = true
		}
	}

	if matched {
		return best, true
	}

	if len(roots) > 0 {
		return roots[0], false
	}

	return "", false
}

func containsPath(root, file string) bool {
	root = filepath.Clean(root)
	file = filepath.Clean(file)

	if file == root {
		return true
	}

	if !strings.HasSuffix(root, string(filepath.Separator)) {
		root += string(filepath.Separator)
	}

	return strings.HasPrefix(file, root)
}

// Planner computes intended destinations for a batch.
type Planner struct {
	Roots    []string
	Dest     string
	Preserve bool
	Logger   zerolog.Logger
	emitter  EventEmitter
}

// NewPlanner creates a planner writing under dest.
func NewPlanner(roots []string, dest string, preserve bool) *Planner {
	return &Planner{
		Roots:    roots,
		Dest:     dest,
		Preserve: preserve,
		Logger:   zerolog.Nop(),
	}
}

// SetEventEmitter sets the emitter for BaseFolderFallback events.
func (p *Planner) SetEventEmitter(emitter EventEmitter) {
	p.emitter = emitter
}

// Plan returns the intended destination of file.
//
// With Preserve the file keeps its path below its base folder, nested under
// the base folder's own name: dest/<name of base>/<relative path>. Without
// it the file lands directly in dest.
func (p *Planner) Plan(file string) TransferPlan {
	base, matched := BaseFolder(file, p.Roots)

	plan := TransferPlan{
		Source:      file,
		BaseFolder:  base,
		BaseMatched: matched,
	}

	if !matched {
		p.Logger.Warn().
			Str("file", file).
			Str("baseFolder", base).
			Msg("File is not under any root folder, using fallback base folder")

		if p.emitter != nil {
			p.emitter.Emit(BaseFolderFallback{File: file, BaseFolder: base})
		}
	}

	if !p.Preserve {
		plan.Intended = filepath.Join(p.Dest, filepath.Base(file))
		return plan
	}

	plan.Intended = filepath.Join(p.Dest, baseName(base), relativeTo(base, file))

	return plan
}

// PlanAll plans every file in order.
func (p *Planner) PlanAll(files []string) []TransferPlan {
	plans := make([]TransferPlan, len(files))
	for i, file := range files {
		plans[i] = p.Plan(file)
	}

	return plans
}

// baseName is the name a base folder is nested under; the filesystem root has none.
func baseName(base string) string {
	if base == "" {
		return ""
	}

	name := filepath.Base(base)
	if name == string(filepath.Separator) || name == "." {
		return ""
	}

	return name
}

// relativeTo returns file relative to base, or just its name when that would
// leave base.
func relativeTo(base, file string) string {
	if base == "" {
		return filepath.Base(file)
	}

	rel, err := filepath.Rel(base, file)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.Base(file)
	}

	return rel
}
