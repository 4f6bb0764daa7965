package finder_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/joe/file-finder/internal/finder"
)

//nolint:gochecknoglobals // Shared fixture time
var baseTime = time.Unix(1_700_000_000, 0)

// testEventEmitter is a simple test double for capturing events.
type testEventEmitter struct {
	mu     sync.Mutex
	events []finder.Event
}

func (e *testEventEmitter) Emit(event finder.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.events = append(e.events, event)
}

func (e *testEventEmitter) Events() []finder.Event {
	e.mu.Lock()
	defer e.mu.Unlock()

	return append([]finder.Event(nil), e.events...)
}

// eventsOf returns the captured events of type T.
func eventsOf[T finder.Event](e *testEventEmitter) []T {
	var matched []T
	for _, event := range e.Events() {
		if typed, ok := event.(T); ok {
			matched = append(matched, typed)
		}
	}

	return matched
}

// createTestFile writes content under dir/rel and sets its mtime to baseTime.
func createTestFile(t *testing.T, dir, rel, content string) string {
	t.Helper()

	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	if err := os.Chtimes(path, baseTime, baseTime); err != nil {
		t.Fatalf("Failed to set file time: %v", err)
	}

	return path
}

func found(path string, modTime int64) finder.FoundFile {
	return finder.FoundFile{Path: path, ModTime: modTime}
}
