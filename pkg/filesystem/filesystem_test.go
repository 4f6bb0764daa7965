//nolint:varnamelen // Test files use idiomatic short variable names
package filesystem_test

import (
	"errors"
	"io"
	"os"
	"testing"
	"time"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/file-finder/pkg/filesystem"
)

func TestMockFileSystem_CreateAndOpen(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := filesystem.NewMockFileSystem()
	fs.AddDir("/data")

	file, err := fs.Create("/data/test.txt")
	g.Expect(err).ShouldNot(HaveOccurred())
	_, err = file.Write([]byte("test content"))
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(file.Close()).To(Succeed())

	file, err = fs.Open("/data/test.txt")
	g.Expect(err).ShouldNot(HaveOccurred())
	defer func() {
		_ = file.Close()
	}()

	data, err := io.ReadAll(file)
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(string(data)).To(Equal("test content"))
}

func TestMockFileSystem_CreateRequiresParent(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := filesystem.NewMockFileSystem()

	_, err := fs.Create("/missing/test.txt")
	g.Expect(errors.Is(err, os.ErrNotExist)).To(BeTrue())
}

func TestMockFileSystem_Stat(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := filesystem.NewMockFileSystem()
	modTime := time.Now().Add(-1 * time.Hour)
	fs.AddFile("/data/test.txt", []byte("test"), modTime)

	info, err := fs.Stat("/data/test.txt")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(info.Name()).To(Equal("test.txt"))
	g.Expect(info.Size()).To(Equal(int64(4)))
	g.Expect(info.ModTime()).To(BeTemporally("==", modTime))

	_, err = fs.Stat("/data/none.txt")
	g.Expect(errors.Is(err, os.ErrNotExist)).To(BeTrue())
}

func TestMockFileSystem_MkdirAllOverFileFails(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/out/a", []byte("x"), time.Now())

	g.Expect(fs.MkdirAll("/out/a/b", 0o755)).ShouldNot(Succeed())
	g.Expect(fs.MkdirAll("/out/c/d", 0o755)).To(Succeed())
	g.Expect(fs.Exists("/out/c")).To(BeTrue())
}

func TestMockFileSystem_FailOn(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := filesystem.NewMockFileSystem()
	boom := errors.New("permission denied")
	fs.FailOn(filesystem.OpMkdirAll, "/out/x", boom)

	err := fs.MkdirAll("/out/x", 0o755)
	g.Expect(err).To(MatchError(ContainSubstring("permission denied")))
	g.Expect(errors.Is(err, boom)).To(BeTrue())
	g.Expect(fs.MkdirAll("/out/y", 0o755)).To(Succeed())
}

func TestMockFileSystem_RenameAndRemove(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/a/p.jpg", []byte("img"), time.Unix(100, 0))
	fs.AddDir("/b")

	g.Expect(fs.Rename("/a/p.jpg", "/b/p.jpg")).To(Succeed())
	g.Expect(fs.Exists("/a/p.jpg")).To(BeFalse())

	data, modTime, err := fs.GetFile("/b/p.jpg")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(string(data)).To(Equal("img"))
	g.Expect(modTime.Unix()).To(Equal(int64(100)))

	g.Expect(fs.Remove("/b")).ShouldNot(Succeed(), "non-empty directory")
	g.Expect(fs.Remove("/b/p.jpg")).To(Succeed())
	g.Expect(fs.ListFiles()).To(BeEmpty())
}

func TestMockFileSystem_ScanIsSortedAndScoped(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/r/b.jpg", []byte("b"), time.Unix(2, 0))
	fs.AddFile("/r/a/c.jpg", []byte("cc"), time.Unix(3, 0))
	fs.AddFile("/rr/other.jpg", []byte("o"), time.Unix(4, 0))

	scanner := fs.Scan("/r")

	var rel []string
	for {
		info, ok := scanner.Next()
		if !ok {
			break
		}
		rel = append(rel, info.RelativePath)
	}

	g.Expect(scanner.Err()).ShouldNot(HaveOccurred())
	g.Expect(rel).To(Equal([]string{"a", "a/c.jpg", "b.jpg"}))
}

func TestMockFileSystem_ScanMissingRoot(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	scanner := filesystem.NewMockFileSystem().Scan("/nope")

	_, ok := scanner.Next()
	g.Expect(ok).To(BeFalse())
	g.Expect(scanner.Err()).To(HaveOccurred())
}

func TestMockFileSystem_ScanFailOnEntries(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/r/a.jpg", []byte("a"), time.Unix(100, 0))
	fs.AddFile("/r/locked/x.jpg", []byte("x"), time.Unix(100, 0))
	fs.AddFile("/r/z.jpg", []byte("zz"), time.Unix(100, 0))
	fs.FailOn(filesystem.OpScan, "/r/a.jpg", os.ErrPermission)
	fs.FailOn(filesystem.OpScan, "/r/locked", os.ErrPermission)

	scanner := fs.Scan("/r")

	var infos []filesystem.FileInfo
	for info, ok := scanner.Next(); ok; info, ok = scanner.Next() {
		infos = append(infos, info)
	}

	g.Expect(scanner.Err()).ShouldNot(HaveOccurred())
	g.Expect(infos).To(HaveLen(3), "the locked directory is listed but not entered")
	g.Expect(infos[0].Path).To(Equal("/r/a.jpg"))
	g.Expect(infos[0].Err).To(MatchError(os.ErrPermission))
	g.Expect(infos[0].Size).To(BeZero())
	g.Expect(infos[0].ModTime.IsZero()).To(BeTrue())
	g.Expect(infos[1].Path).To(Equal("/r/locked"))
	g.Expect(infos[1].IsDir).To(BeTrue())
	g.Expect(infos[1].Err).To(HaveOccurred())
	g.Expect(infos[2]).To(Equal(filesystem.FileInfo{Path: "/r/z.jpg", RelativePath: "z.jpg", Size: 2, ModTime: time.Unix(100, 0)}))

	fs.FailOn(filesystem.OpScan, "/r", os.ErrPermission)
	rootScanner := fs.Scan("/r")
	_, ok := rootScanner.Next()
	g.Expect(ok).To(BeFalse())
	g.Expect(rootScanner.Err()).To(MatchError(os.ErrPermission))
}
