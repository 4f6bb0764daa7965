//nolint:varnamelen // Test files use idiomatic short variable names
package screens_test

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/file-finder/internal/config"
	"github.com/joe/file-finder/internal/finder"
	"github.com/joe/file-finder/internal/tui/screens"
	"github.com/joe/file-finder/internal/tui/shared"
	"github.com/joe/file-finder/pkg/filesystem"
)

func duplicateFS() *filesystem.MockFileSystem {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/r1/p.jpg", []byte("one"), baseTime)
	fs.AddFile("/r2/p.jpg", []byte("two"), baseTime)
	fs.AddFile("/r2/q.png", []byte("q"), baseTime)
	fs.AddDir("/out")

	return fs
}

func TestScanScreen_GoesToDuplicates(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	engine := newEngine(t, duplicateFS(), "/r1", "/r2")
	s := *screens.NewScanScreen(newConfig(), engine, "")

	done := first[shared.ScanCompleteMsg](t, s.Init())
	g.Expect(done.Err).ShouldNot(HaveOccurred())
	g.Expect(done.Result.Files).To(HaveLen(3))

	s, cmd := update(t, s, done)
	first[shared.TransitionToDuplicatesMsg](t, cmd)
	g.Expect(s.Found()).To(Equal(3))
}

func TestScanScreen_KeepFirstSkipsDuplicates(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	cfg := newConfig()
	cfg.Duplicates = config.KeepFirstDuplicate
	cfg.ExportList = "/out/list.txt"
	fs := duplicateFS()
	engine := newEngine(t, fs, "/r1", "/r2")
	s := *screens.NewScanScreen(cfg, engine, "")

	_, cmd := update(t, s, first[shared.ScanCompleteMsg](t, s.Init()))
	first[shared.TransitionToConfirmMsg](t, cmd)

	g.Expect(engine.Paths()).To(Equal([]string{"/r1/p.jpg", "/r2/q.png"}))

	exported, err := finder.ReadList(fs, "/out/list.txt")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(exported).To(Equal([]string{"/r1/p.jpg", "/r2/q.png"}), "the export matches the resolved list")
}

func TestScanScreen_LoadsListFile(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := duplicateFS()
	fs.AddFile("/lists/in.txt", []byte("/r2/q.png\n\n/r1/p.jpg\n"), baseTime)
	engine := newEngine(t, fs, "/r1")
	s := *screens.NewScanScreen(newConfig(), engine, "/lists/in.txt")
	g.Expect(s.RenderContent()).To(ContainSubstring("Loading /lists/in.txt"))

	done := first[shared.ScanCompleteMsg](t, s.Init())
	g.Expect(done.Err).ShouldNot(HaveOccurred())
	g.Expect(engine.Paths()).To(Equal([]string{"/r2/q.png", "/r1/p.jpg"}))
}

func TestScanScreen_ProgressEvents(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	s := *screens.NewScanScreen(newConfig(), newEngine(t, duplicateFS(), "/r1"), "")
	s, _ = update(t, s, shared.EngineEventMsg{Event: finder.ScanProgress{Root: "/r1", Found: 200}})

	g.Expect(s.Found()).To(Equal(200))
	g.Expect(s.RenderContent()).To(ContainSubstring("200"))
}

func TestScanScreen_ErrorThenBack(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	s := *screens.NewScanScreen(newConfig(), newEngine(t, duplicateFS(), "/r1"), "")
	s, cmd := update(t, s, shared.ScanCompleteMsg{Err: errors.New("disk on fire")})
	g.Expect(cmd).To(BeNil())
	g.Expect(s.Err()).To(MatchError("disk on fire"))
	g.Expect(s.RenderContent()).To(ContainSubstring("Scan failed"))

	_, cmd = update(t, s, key(tea.KeyEsc))
	first[shared.TransitionToInputMsg](t, cmd)
}

func TestScanScreen_CancelReturnsToInput(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	s := *screens.NewScanScreen(newConfig(), newEngine(t, duplicateFS(), "/r1"), "")
	s, _ = update(t, s, key(tea.KeyEsc))
	g.Expect(s.RenderContent()).To(ContainSubstring("Cancelling"))

	done := first[shared.ScanCompleteMsg](t, s.Init())
	g.Expect(done.Err).To(MatchError(context.Canceled))

	_, cmd := update(t, s, done)
	first[shared.TransitionToInputMsg](t, cmd)
}
