package finder

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/joe/file-finder/pkg/filesystem"
)

// ExportList writes paths to path, one per line, UTF-8.
func ExportList(fs filesystem.FileSystem, path string, paths []string) error {
	return writeLines(fs, path, paths)
}

// ReadList reads a file written by ExportList. Blank lines are ignored and
// order is kept.
func ReadList(fs filesystem.FileSystem, path string) ([]string, error) {
	file, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open list %s: %w", path, err)
	}

	defer func() {
		_ = file.Close()
	}()

	var paths []string

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxListLine)

	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		paths = append(paths, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read list %s: %w", path, err)
	}

	return paths, nil
}

// WriteErrorLog writes one "source: message" line per failure.
func WriteErrorLog(fs filesystem.FileSystem, path string, failures []Failure) error {
	lines := make([]string, len(failures))
	for i, failure := range failures {
		lines[i] = failure.String()
	}

	return writeLines(fs, path, lines)
}

const maxListLine = 1 << 20

func writeLines(fs filesystem.FileSystem, path string, lines []string) (err error) {
	file, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	defer func() {
		err = errors.Join(err, closeErr(file, path))
	}()

	writer := bufio.NewWriter(file)
	for _, line := range lines {
		if _, err := io.WriteString(writer, line+"\n"); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

func closeErr(file io.Closer, path string) error {
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	return nil
}
