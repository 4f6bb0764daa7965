//nolint:varnamelen // Test files use idiomatic short variable names (t, tt, etc.)
package finder_test

import (
	"testing"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/file-finder/internal/finder"
)

func TestBaseFolder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		file        string
		roots       []string
		wantBase    string
		wantMatched bool
	}{
		{"single root", "/data/a/x.jpg", []string{"/data/a"}, "/data/a", true},
		{"longest wins", "/data/a/b/x.jpg", []string{"/data", "/data/a/b", "/data/a"}, "/data/a/b", true},
		{"tie keeps first", "/data/a/x.jpg", []string{"/data/a", "/data/a/"}, "/data/a", true},
		{"element boundary", "/data/ab/x.jpg", []string{"/data/a", "/data"}, "/data", true},
		{"filesystem root", "/x.jpg", []string{"/"}, "/", true},
		{"fallback to first root", "/elsewhere/x.jpg", []string{"/data/a", "/data/b"}, "/data/a", false},
		{"no roots", "/elsewhere/x.jpg", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			base, matched := finder.BaseFolder(tt.file, tt.roots)
			if base != tt.wantBase || matched != tt.wantMatched {
				t.Errorf("BaseFolder(%q, %v) = (%q, %v), want (%q, %v)",
					tt.file, tt.roots, base, matched, tt.wantBase, tt.wantMatched)
			}
		})
	}
}

func TestPlanner_Plan(t *testing.T) {
	t.Parallel()

	roots := []string{"/data/photos", "/data/more"}

	tests := []struct {
		name     string
		file     string
		preserve bool
		want     string
	}{
		{"structure nests under base name", "/data/photos/2020/x.jpg", true, "/out/photos/2020/x.jpg"},
		{"second root keeps its own name", "/data/more/x.jpg", true, "/out/more/x.jpg"},
		{"flat uses the file name", "/data/photos/2020/x.jpg", false, "/out/x.jpg"},
		{"fallback does not climb out of dest", "/tmp/stray/y.jpg", true, "/out/photos/y.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g := NewWithT(t)

			plan := finder.NewPlanner(roots, "/out", tt.preserve).Plan(tt.file)
			g.Expect(plan.Source).To(Equal(tt.file))
			g.Expect(plan.Intended).To(Equal(tt.want))
		})
	}
}

func TestPlanner_NoRoots(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	plan := finder.NewPlanner(nil, "/out", true).Plan("/somewhere/z.png")
	g.Expect(plan.BaseFolder).To(BeEmpty())
	g.Expect(plan.Intended).To(Equal("/out/z.png"))
}

func TestPlanner_FallbackIsObservable(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	emitter := &testEventEmitter{}
	planner := finder.NewPlanner([]string{"/data/a"}, "/out", true)
	planner.SetEventEmitter(emitter)

	plans := planner.PlanAll([]string{"/data/a/in.jpg", "/other/out.jpg"})
	g.Expect(plans).To(HaveLen(2))
	g.Expect(plans[0].BaseMatched).To(BeTrue())
	g.Expect(plans[1].BaseMatched).To(BeFalse())

	g.Expect(eventsOf[finder.BaseFolderFallback](emitter)).To(Equal([]finder.BaseFolderFallback{
		{File: "/other/out.jpg", BaseFolder: "/data/a"},
	}))
}
