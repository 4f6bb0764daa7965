//nolint:varnamelen // Test files use idiomatic short variable names (t, tt, etc.)
package finder_test

import (
	"testing"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/file-finder/internal/config"
	"github.com/joe/file-finder/internal/finder"
	"github.com/joe/file-finder/pkg/filesystem"
)

func TestConflictResolver_NoConflict(t *testing.T) {
	t.Parallel()

	resolver := finder.NewConflictResolver(filesystem.NewMockFileSystem())

	for _, policy := range []config.ConflictPolicy{config.Skip, config.Overwrite, config.AutoRename} {
		g := NewWithT(t)
		g.Expect(resolver.Resolve("/out/p.jpg", policy)).To(Equal(finder.Outcome{Kind: finder.WriteTo, Path: "/out/p.jpg"}))
	}
}

func TestConflictResolver_ExistingDestination(t *testing.T) {
	t.Parallel()

	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/out/p.jpg", []byte("old"), baseTime)
	resolver := finder.NewConflictResolver(fs)

	tests := []struct {
		policy config.ConflictPolicy
		want   finder.Outcome
	}{
		{config.Skip, finder.Outcome{Kind: finder.SkipFile, Path: "/out/p.jpg"}},
		{config.Overwrite, finder.Outcome{Kind: finder.WriteTo, Path: "/out/p.jpg", Overwrite: true}},
		{config.AutoRename, finder.Outcome{Kind: finder.WriteTo, Path: "/out/p (1).jpg"}},
		{config.ConflictPolicy(42), finder.Outcome{Kind: finder.SkipFile, Path: "/out/p.jpg"}},
	}

	for _, tt := range tests {
		if got := resolver.Resolve("/out/p.jpg", tt.policy); got != tt.want {
			t.Errorf("Resolve(%s) = %+v, want %+v", tt.policy, got, tt.want)
		}
	}
}

func TestConflictResolver_AutoRenameSequence(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/out/p.jpg", nil, baseTime)
	resolver := finder.NewConflictResolver(fs)

	first := resolver.Resolve("/out/p.jpg", config.AutoRename)
	g.Expect(first.Path).To(Equal("/out/p (1).jpg"))

	again := resolver.Resolve("/out/p.jpg", config.AutoRename)
	g.Expect(again).To(Equal(first), "same snapshot, same answer")

	fs.AddFile(first.Path, nil, baseTime)
	g.Expect(resolver.Resolve("/out/p.jpg", config.AutoRename).Path).To(Equal("/out/p (2).jpg"))

	fs.AddFile("/out/p (3).jpg", nil, baseTime)
	fs.AddFile("/out/p (2).jpg", nil, baseTime)
	g.Expect(resolver.Resolve("/out/p.jpg", config.AutoRename).Path).To(Equal("/out/p (4).jpg"))
}

func TestRenameCandidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		n    int
		want string
	}{
		{"/out/p.jpg", 1, "/out/p (1).jpg"},
		{"/out/archive.tar.gz", 2, "/out/archive.tar (2).gz"},
		{"/out/noext", 1, "/out/noext (1)"},
		{"/out/.hidden", 3, "/out/.hidden (3)"},
		{"/out.d/p", 1, "/out.d/p (1)"},
	}

	for _, tt := range tests {
		if got := finder.RenameCandidate(tt.path, tt.n); got != tt.want {
			t.Errorf("RenameCandidate(%q, %d) = %q, want %q", tt.path, tt.n, got, tt.want)
		}
	}
}
