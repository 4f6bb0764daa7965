package finder

import (
	"fmt"
	"path/filepath"
	"slices"
)

// DuplicateSet is a group of files that share a base name and exact
// modification time. Paths are in discovery order and there are always at
// least two.
type DuplicateSet struct {
	Name    string
	ModTime int64 // unix nanoseconds
	Paths   []string
}

// ModTimeSeconds returns the shared modification time in whole unix seconds.
func (d DuplicateSet) ModTimeSeconds() int64 {
	return nanoToSeconds(d.ModTime)
}

// Keep returns the conventional member to keep: the first one found.
func (d DuplicateSet) Keep() string {
	return d.Paths[0]
}

type duplicateKey struct {
	name    string
	modTime int64
}

// GroupDuplicates partitions files by (base name, modification time) and
// returns the groups with more than one member, ordered by first occurrence.
func GroupDuplicates(files []FoundFile) []DuplicateSet {
	groups := make(map[duplicateKey]int)
	var sets []DuplicateSet

	for _, file := range files {
		key := duplicateKey{name: filepath.Base(file.Path), modTime: file.ModTime}

		i, ok := groups[key]
		if !ok {
			groups[key] = len(sets)
			sets = append(sets, DuplicateSet{Name: key.name, ModTime: key.modTime, Paths: []string{file.Path}})

			continue
		}

		sets[i].Paths = append(sets[i].Paths, file.Path)
	}

	duplicates := sets[:0]
	for _, set := range sets {
		if len(set.Paths) > 1 {
			duplicates = append(duplicates, set)
		}
	}

	return duplicates
}

// ResolverState is the state of a DuplicateResolver.
type ResolverState int

const (
	// Idle means there is nothing left to decide
	Idle ResolverState = iota
	// Presenting means Current holds a set awaiting a decision
	Presenting
)

// String returns the string representation of ResolverState
func (s ResolverState) String() string {
	if s == Presenting {
		return "presenting"
	}

	return "idle"
}

// DuplicateResolver walks the duplicate sets of a file list one at a time and
// removes the members that are not kept. Resolved sets are never revisited.
type DuplicateResolver struct {
	list     *FileList
	pending  []DuplicateSet
	resolved int
}

// NewDuplicateResolver groups the files currently in list.
func NewDuplicateResolver(list *FileList) *DuplicateResolver {
	return &DuplicateResolver{
		list:    list,
		pending: GroupDuplicates(list.Files()),
	}
}

// State returns Presenting while sets remain, Idle otherwise.
func (r *DuplicateResolver) State() ResolverState {
	if len(r.pending) > 0 {
		return Presenting
	}

	return Idle
}

// Current returns the set awaiting a decision.
func (r *DuplicateResolver) Current() (DuplicateSet, bool) {
	if len(r.pending) == 0 {
		return DuplicateSet{}, false
	}

	return r.pending[0], true
}

// Remaining returns the number of sets not yet resolved, the current one included.
func (r *DuplicateResolver) Remaining() int {
	return len(r.pending)
}

// Position returns the 1-based number of the current set and the total number
// of sets seen by this resolver.
func (r *DuplicateResolver) Position() (int, int) {
	return r.resolved + 1, r.resolved + len(r.pending)
}

// Pending returns the unresolved sets, the current one first.
func (r *DuplicateResolver) Pending() []DuplicateSet {
	return slices.Clone(r.pending)
}

// ResolveCurrent keeps keep and removes the other members of the current set
// from the list, then advances. It returns the number of files removed.
func (r *DuplicateResolver) ResolveCurrent(keep string) (int, error) {
	current, ok := r.Current()
	if !ok {
		return 0, ErrNoDuplicates
	}

	if !slices.Contains(current.Paths, keep) {
		return 0, fmt.Errorf("%w: %s", ErrNotInCurrentSet, keep)
	}

	drop := make([]string, 0, len(current.Paths)-1)
	for _, path := range current.Paths {
		if path != keep {
			drop = append(drop, path)
		}
	}

	r.advance()

	return r.list.Remove(drop...), nil
}

// SkipAllRemaining keeps the first member of every remaining set and removes
// the rest. It returns the number of files removed.
func (r *DuplicateResolver) SkipAllRemaining() int {
	var drop []string
	for _, set := range r.pending {
		drop = append(drop, set.Paths[1:]...)
	}

	r.resolved += len(r.pending)
	r.pending = nil

	return r.list.Remove(drop...)
}

// KeepAllRemaining resolves the remaining sets the same way SkipAllRemaining
// does; only the wording offered to the user differs.
func (r *DuplicateResolver) KeepAllRemaining() int {
	return r.SkipAllRemaining()
}

func (r *DuplicateResolver) advance() {
	r.pending = r.pending[1:]
	r.resolved++
}
