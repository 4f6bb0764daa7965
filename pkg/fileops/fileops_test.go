//nolint:varnamelen // Test files use idiomatic short variable names (t, g, etc.)
package fileops_test

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"syscall"
	"testing"
	"time"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/file-finder/pkg/fileops"
	"github.com/joe/file-finder/pkg/filesystem"
)

func TestCopyFile_PreservesContentModeAndModTime(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "src.jpg")
	dst := filepath.Join(tmpDir, "dst.jpg")

	g.Expect(os.WriteFile(src, []byte("picture bytes"), 0o640)).To(Succeed())
	mtime := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	g.Expect(os.Chtimes(src, mtime, mtime)).To(Succeed())

	written, err := fileops.NewRealFileOps().CopyFile(src, dst)
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(written).To(Equal(int64(len("picture bytes"))))

	data, err := os.ReadFile(dst)
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(string(data)).To(Equal("picture bytes"))

	info, err := os.Stat(dst)
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(info.ModTime().Unix()).To(Equal(mtime.Unix()))
	if runtime.GOOS != "windows" {
		g.Expect(info.Mode().Perm()).To(Equal(os.FileMode(0o640)))
	}
}

func TestCopyFile_OverwritesExistingDestination(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "src.txt")
	dst := filepath.Join(tmpDir, "dst.txt")
	g.Expect(os.WriteFile(src, []byte("new"), 0o644)).To(Succeed())
	g.Expect(os.WriteFile(dst, []byte("old and longer"), 0o644)).To(Succeed())

	_, err := fileops.NewRealFileOps().CopyFile(src, dst)
	g.Expect(err).ShouldNot(HaveOccurred())

	data, err := os.ReadFile(dst)
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(string(data)).To(Equal("new"))
}

func TestCopyFile_MissingSource(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	tmpDir := t.TempDir()
	dst := filepath.Join(tmpDir, "dst.txt")

	_, err := fileops.NewRealFileOps().CopyFile(filepath.Join(tmpDir, "none.txt"), dst)
	g.Expect(err).To(HaveOccurred())
	g.Expect(errors.Is(err, os.ErrNotExist)).To(BeTrue())

	_, statErr := os.Stat(dst)
	g.Expect(os.IsNotExist(statErr)).To(BeTrue())
}

func TestCopyFile_CreateFailureLeavesNoFile(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/src/a.jpg", []byte("abc"), time.Unix(50, 0))
	fs.AddDir("/dst")
	fs.FailOn(filesystem.OpCreate, "/dst/a.jpg", errors.New("no space left on device"))

	_, err := fileops.NewFileOps(fs).CopyFile("/src/a.jpg", "/dst/a.jpg")
	g.Expect(err).To(MatchError(ContainSubstring("no space left on device")))
	g.Expect(fs.Exists("/dst/a.jpg")).To(BeFalse())
}

func TestMoveFile_Renames(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "a.jpg")
	dst := filepath.Join(tmpDir, "b.jpg")
	g.Expect(os.WriteFile(src, []byte("x"), 0o644)).To(Succeed())

	g.Expect(fileops.NewRealFileOps().MoveFile(src, dst)).To(Succeed())

	_, err := os.Stat(src)
	g.Expect(os.IsNotExist(err)).To(BeTrue())
	g.Expect(dst).To(BeAnExistingFile())
}

func TestMoveFile_FallsBackToCopyWhenRenameFails(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/src/a.jpg", []byte("abc"), time.Unix(77, 0))
	fs.AddDir("/dst")
	fs.FailOn(filesystem.OpRename, "/src/a.jpg", syscall.EXDEV)

	g.Expect(fileops.NewFileOps(fs).MoveFile("/src/a.jpg", "/dst/a.jpg")).To(Succeed())

	g.Expect(fs.Exists("/src/a.jpg")).To(BeFalse())
	data, modTime, err := fs.GetFile("/dst/a.jpg")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(string(data)).To(Equal("abc"))
	g.Expect(modTime.Unix()).To(Equal(int64(77)))
}

func TestMoveFile_MissingSourceFails(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := filesystem.NewMockFileSystem()
	fs.AddDir("/dst")

	err := fileops.NewFileOps(fs).MoveFile("/src/none.jpg", "/dst/none.jpg")
	g.Expect(err).To(HaveOccurred())
	g.Expect(errors.Is(err, os.ErrNotExist)).To(BeTrue())
}

func TestEnsureDirAndExists(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	ops := fileops.NewFileOps(filesystem.NewMockFileSystem())

	g.Expect(ops.Exists("/out/a/b")).To(BeFalse())
	g.Expect(ops.EnsureDir("/out/a/b")).To(Succeed())
	g.Expect(ops.Exists("/out/a/b")).To(BeTrue())
}

func TestCopyFile_OntoItselfFailsAndKeepsContent(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "p.jpg")
	g.Expect(os.WriteFile(src, []byte("precious data"), 0o644)).To(Succeed())

	ops := fileops.NewRealFileOps()

	written, err := ops.CopyFile(src, src)
	g.Expect(err).To(MatchError(fileops.ErrSameFile))
	g.Expect(written).To(BeZero())

	_, err = ops.CopyFile(src, filepath.Join(tmpDir, ".", "p.jpg"))
	g.Expect(err).To(MatchError(fileops.ErrSameFile), "an uncleaned path to the same file")

	data, err := os.ReadFile(src)
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(string(data)).To(Equal("precious data"))
}

func TestCopyFile_OntoHardLinkFails(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "p.jpg")
	link := filepath.Join(tmpDir, "link.jpg")
	g.Expect(os.WriteFile(src, []byte("precious data"), 0o644)).To(Succeed())

	if err := os.Link(src, link); err != nil {
		t.Skipf("hard links not supported: %v", err)
	}

	_, err := fileops.NewRealFileOps().CopyFile(src, link)
	g.Expect(err).To(MatchError(fileops.ErrSameFile))

	data, err := os.ReadFile(src)
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(string(data)).To(Equal("precious data"))
}

func TestCopyFile_OntoItselfInMockFilesystem(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/r/p.jpg", []byte("precious data"), time.Now())

	_, err := fileops.NewFileOps(fs).CopyFile("/r/p.jpg", "/r/p.jpg")
	g.Expect(err).To(MatchError(fileops.ErrSameFile))

	data, _, err := fs.GetFile("/r/p.jpg")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(string(data)).To(Equal("precious data"))
}
