//nolint:varnamelen // Test files use idiomatic short variable names (t, tt, etc.)
package finder_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/file-finder/internal/config"
	"github.com/joe/file-finder/internal/finder"
	pkgerrors "github.com/joe/file-finder/pkg/errors"
	"github.com/joe/file-finder/pkg/fileops"
	"github.com/joe/file-finder/pkg/filesystem"
)

func newMockExecutor(fs *filesystem.MockFileSystem) (*finder.Executor, *testEventEmitter) {
	emitter := &testEventEmitter{}
	executor := finder.NewExecutor(fileops.NewFileOps(fs))
	executor.SetEventEmitter(emitter)

	return executor, emitter
}

func TestExecutor_DirectoryFailureDoesNotAbortBatch(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/r1/a.jpg", []byte("a"), baseTime)
	fs.AddFile("/r2/b.jpg", []byte("b"), baseTime)
	fs.AddFile("/r3/c.jpg", []byte("c"), baseTime)
	// A file where the directory for r2 should go
	fs.AddFile("/out/r2", []byte("blocker"), baseTime)

	plans := finder.NewPlanner([]string{"/r1", "/r2", "/r3"}, "/out", true).
		PlanAll([]string{"/r1/a.jpg", "/r2/b.jpg", "/r3/c.jpg"})

	executor, emitter := newMockExecutor(fs)
	result := executor.Execute(context.Background(), plans, config.Skip, config.Copy)

	g.Expect(result.Total).To(Equal(3))
	g.Expect(result.Processed).To(Equal(3))
	g.Expect(result.Transferred).To(Equal(2))
	g.Expect(result.Failures).To(HaveLen(1))
	g.Expect(result.Failures[0].Source).To(Equal("/r2/b.jpg"))
	g.Expect(result.Failures[0].Message()).To(ContainSubstring("not a directory"))
	g.Expect(result.Stopped).To(BeFalse())
	g.Expect(fs.Exists("/out/r1/a.jpg")).To(BeTrue())
	g.Expect(fs.Exists("/out/r3/c.jpg")).To(BeTrue())

	var actionable pkgerrors.ActionableError
	g.Expect(errors.As(result.Failures[0].Err, &actionable)).To(BeTrue())
	g.Expect(actionable.Category()).To(Equal(pkgerrors.CategoryConflict))

	progress := eventsOf[finder.TransferProgress](emitter)
	g.Expect(progress).To(Equal([]finder.TransferProgress{
		{Processed: 1, Total: 3}, {Processed: 2, Total: 3}, {Processed: 3, Total: 3},
	}))
	g.Expect(eventsOf[finder.FileFailed](emitter)).To(HaveLen(1))
	g.Expect(eventsOf[finder.TransferComplete](emitter)).To(HaveLen(1))
}

func TestExecutor_ConflictPolicies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		policy          config.ConflictPolicy
		wantTransferred int
		wantSkipped     int
		wantContent     string
		wantRenamed     bool
	}{
		{config.Skip, 0, 1, "old", false},
		{config.Overwrite, 1, 0, "new", false},
		{config.AutoRename, 1, 0, "old", true},
	}

	for _, tt := range tests {
		t.Run(tt.policy.String(), func(t *testing.T) {
			t.Parallel()
			g := NewWithT(t)

			fs := filesystem.NewMockFileSystem()
			fs.AddFile("/src/p.jpg", []byte("new"), baseTime)
			fs.AddFile("/out/p.jpg", []byte("old"), baseTime)

			plans := finder.NewPlanner([]string{"/src"}, "/out", false).PlanAll([]string{"/src/p.jpg"})
			executor, _ := newMockExecutor(fs)
			result := executor.Execute(context.Background(), plans, tt.policy, config.Copy)

			g.Expect(result.Transferred).To(Equal(tt.wantTransferred))
			g.Expect(result.Skipped).To(Equal(tt.wantSkipped))
			g.Expect(result.Failures).To(BeEmpty())

			content, _, err := fs.GetFile("/out/p.jpg")
			g.Expect(err).ShouldNot(HaveOccurred())
			g.Expect(string(content)).To(Equal(tt.wantContent))
			g.Expect(fs.Exists("/out/p (1).jpg")).To(Equal(tt.wantRenamed))
		})
	}
}

func TestExecutor_FlatBatchWithSameNamesAutoRenames(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/a/p.jpg", []byte("a"), baseTime)
	fs.AddFile("/b/p.jpg", []byte("b"), baseTime)
	fs.AddDir("/out")

	plans := finder.NewPlanner([]string{"/a", "/b"}, "/out", false).PlanAll([]string{"/a/p.jpg", "/b/p.jpg"})
	executor, _ := newMockExecutor(fs)
	result := executor.Execute(context.Background(), plans, config.AutoRename, config.Copy)

	g.Expect(result.Transferred).To(Equal(2))
	g.Expect(fs.ListFiles()).To(ContainElements("/out/p.jpg", "/out/p (1).jpg"))
}

func TestExecutor_Move(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/src/a.jpg", []byte("aaaa"), baseTime)
	fs.AddFile("/src/b.jpg", []byte("bb"), baseTime)
	fs.FailOn(filesystem.OpRename, "/src/b.jpg", syscall.EXDEV)

	plans := finder.NewPlanner([]string{"/src"}, "/out", true).PlanAll([]string{"/src/a.jpg", "/src/b.jpg"})
	executor, _ := newMockExecutor(fs)
	result := executor.Execute(context.Background(), plans, config.Skip, config.Move)

	g.Expect(result.Failures).To(BeEmpty())
	g.Expect(result.Transferred).To(Equal(2))
	g.Expect(result.Bytes).To(Equal(int64(6)))
	g.Expect(result.NeedsRescan()).To(BeTrue())
	g.Expect(fs.ListFiles()).To(Equal([]string{"/out/src/a.jpg", "/out/src/b.jpg"}))

	_, modTime, err := fs.GetFile("/out/src/b.jpg")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(modTime).To(BeTemporally("==", baseTime))
}

func TestExecutor_CopyFailureIsRecorded(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/src/a.jpg", []byte("a"), baseTime)
	fs.AddFile("/src/b.jpg", []byte("b"), baseTime)
	fs.FailOn(filesystem.OpRename, "/src/a.jpg", syscall.EXDEV)
	fs.FailOn(filesystem.OpOpen, "/src/a.jpg", os.ErrPermission)

	plans := finder.NewPlanner([]string{"/src"}, "/out", false).PlanAll([]string{"/src/a.jpg", "/src/b.jpg"})
	executor, _ := newMockExecutor(fs)
	result := executor.Execute(context.Background(), plans, config.Skip, config.Move)

	g.Expect(result.Transferred).To(Equal(1))
	g.Expect(result.Failures).To(HaveLen(1))
	g.Expect(result.Failures[0].String()).To(HavePrefix("/src/a.jpg: "))
	g.Expect(result.NeedsRescan()).To(BeFalse())
}

func TestExecutor_StopBeforeNextFile(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/src/1.jpg", nil, baseTime)
	fs.AddFile("/src/2.jpg", nil, baseTime)
	fs.AddFile("/src/3.jpg", nil, baseTime)

	ctrl := finder.NewController()
	executor, _ := newMockExecutor(fs)
	executor.Control = ctrl
	executor.SetEventEmitter(finder.EmitterFunc(func(event finder.Event) {
		if progress, ok := event.(finder.TransferProgress); ok && progress.Processed == 1 {
			ctrl.Stop()
		}
	}))

	plans := finder.NewPlanner([]string{"/src"}, "/out", false).PlanAll([]string{"/src/1.jpg", "/src/2.jpg", "/src/3.jpg"})
	result := executor.Execute(context.Background(), plans, config.Skip, config.Copy)

	g.Expect(result.Stopped).To(BeTrue())
	g.Expect(result.Processed).To(Equal(1))
	g.Expect(result.Transferred).To(Equal(1))
	g.Expect(fs.Exists("/out/1.jpg")).To(BeTrue(), "finished files stay")
	g.Expect(fs.Exists("/out/2.jpg")).To(BeFalse())
}

func TestExecutor_PauseWaitsBetweenFiles(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/src/1.jpg", nil, baseTime)
	fs.AddFile("/src/2.jpg", nil, baseTime)

	ctrl := finder.NewController()
	emitter := &testEventEmitter{}
	executor := finder.NewExecutor(fileops.NewFileOps(fs))
	executor.Control = ctrl
	executor.SetEventEmitter(finder.EmitterFunc(func(event finder.Event) {
		emitter.Emit(event)
		if progress, ok := event.(finder.TransferProgress); ok && progress.Processed == 1 {
			ctrl.Pause()
		}
	}))

	plans := finder.NewPlanner([]string{"/src"}, "/out", false).PlanAll([]string{"/src/1.jpg", "/src/2.jpg"})

	done := make(chan *finder.TransferResult, 1)
	go func() {
		done <- executor.Execute(context.Background(), plans, config.Skip, config.Copy)
	}()

	g.Eventually(func() []finder.TransferPaused { return eventsOf[finder.TransferPaused](emitter) }).Should(HaveLen(1))
	g.Consistently(done, 50*time.Millisecond).ShouldNot(Receive())
	g.Expect(fs.Exists("/out/2.jpg")).To(BeFalse())

	ctrl.Resume()

	var result *finder.TransferResult
	g.Eventually(done).Should(Receive(&result))
	g.Expect(result.Transferred).To(Equal(2))
	g.Expect(result.Stopped).To(BeFalse())
}

func TestExecutor_CancelledContextStops(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/src/1.jpg", nil, baseTime)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	executor, _ := newMockExecutor(fs)
	plans := finder.NewPlanner([]string{"/src"}, "/out", false).PlanAll([]string{"/src/1.jpg"})
	result := executor.Execute(ctx, plans, config.Skip, config.Copy)

	g.Expect(result).NotTo(BeNil())
	g.Expect(result.Stopped).To(BeTrue())
	g.Expect(result.Processed).To(BeZero())
}

func TestExecutor_RealFilesystemPreservesMetadata(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	root := t.TempDir()
	dest := t.TempDir()
	src := createTestFile(t, root, "album/p.jpg", "pixels")
	g.Expect(os.Chmod(src, 0o640)).To(Succeed())

	plans := finder.NewPlanner([]string{root}, dest, true).PlanAll([]string{src})
	executor := finder.NewExecutor(fileops.NewRealFileOps())
	result := executor.Execute(context.Background(), plans, config.Skip, config.Copy)
	g.Expect(result.Failures).To(BeEmpty())

	copied := filepath.Join(dest, filepath.Base(root), "album", "p.jpg")
	info, err := os.Stat(copied)
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(info.Mode().Perm()).To(Equal(os.FileMode(0o640)))
	g.Expect(info.ModTime()).To(BeTemporally("==", baseTime))
	g.Expect(result.Bytes).To(Equal(int64(len("pixels"))))
}

func TestExecutor_OverwriteOntoSourceIsAFailure(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	root := t.TempDir()
	src := createTestFile(t, root, "p.jpg", "precious data")
	other := createTestFile(t, root, "sub/q.jpg", "q")

	engine := finder.NewRealEngine()
	emitter := &testEventEmitter{}
	engine.SetEventEmitter(emitter)
	_, err := engine.AddRoot(root)
	g.Expect(err).ShouldNot(HaveOccurred())

	_, err = engine.Scan(context.Background())
	g.Expect(err).ShouldNot(HaveOccurred())

	result, err := engine.Transfer(context.Background(), finder.TransferRequest{
		Dest:     root,
		Preserve: false,
		Policy:   config.Overwrite,
		Mode:     config.Copy,
	})
	g.Expect(err).ShouldNot(HaveOccurred())

	g.Expect(result.Processed).To(Equal(2))
	g.Expect(result.Transferred).To(Equal(1), "sub/q.jpg lands at the root")
	g.Expect(result.Failures).To(HaveLen(1))
	g.Expect(result.Failures[0].Source).To(Equal(src))
	g.Expect(result.Failures[0].Err).To(MatchError(fileops.ErrSameFile))
	g.Expect(eventsOf[finder.FileFailed](emitter)).To(HaveLen(1))

	data, err := os.ReadFile(src)
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(string(data)).To(Equal("precious data"))
	g.Expect(filepath.Join(root, "q.jpg")).To(BeAnExistingFile())
	g.Expect(other).To(BeAnExistingFile())
}
