//nolint:varnamelen // Test files use idiomatic short variable names
package screens_test

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joe/file-finder/internal/config"
	"github.com/joe/file-finder/internal/finder"
	"github.com/joe/file-finder/pkg/filesystem"
)

var baseTime = time.Unix(1_700_000_000, 0)

func newEngine(t *testing.T, fs *filesystem.MockFileSystem, roots ...string) *finder.Engine {
	t.Helper()

	engine := finder.NewEngine(fs)
	for _, root := range roots {
		if _, err := engine.AddRoot(root); err != nil {
			t.Fatalf("AddRoot(%q) failed: %v", root, err)
		}
	}

	return engine
}

func newConfig() *config.Config {
	return &config.Config{
		Preset:     config.DefaultPreset,
		DestPath:   "/out",
		Conflict:   config.Skip,
		Duplicates: config.AskDuplicates,
	}
}

func key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// collect runs cmd and any batched commands it returns, in order.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, collect(c)...)
		}

		return msgs
	}

	return []tea.Msg{msg}
}

// first returns the first message of type T produced by cmd.
func first[T any](t *testing.T, cmd tea.Cmd) T {
	t.Helper()

	for _, msg := range collect(cmd) {
		if typed, ok := msg.(T); ok {
			return typed
		}
	}

	var zero T
	t.Fatalf("no %T produced", zero)

	return zero
}

// update sends msg to model and returns the typed result.
func update[M tea.Model](t *testing.T, model M, msg tea.Msg) (M, tea.Cmd) {
	t.Helper()

	next, cmd := model.Update(msg)

	typed, ok := next.(M)
	if !ok {
		t.Fatalf("Update returned %T, want %T", next, model)
	}

	return typed, cmd
}
