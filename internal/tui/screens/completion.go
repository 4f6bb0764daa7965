package screens

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// pathCompleter cycles through directory completions for a text field.
type pathCompleter struct {
	items  []string
	index  int
	active bool
}

// next returns the next completion for value, starting a new cycle when
// none is active. ok is false when nothing matches.
func (c pathCompleter) next(value string) (pathCompleter, string, bool) {
	if !c.active {
		c.items = getPathCompletions(value)
		c.index = 0
		c.active = len(c.items) > 1

		if len(c.items) == 0 {
			return c, "", false
		}

		return c, c.items[0], true
	}

	c.index = (c.index + 1) % len(c.items)

	return c, c.items[c.index], true
}

// previous steps the active cycle backwards.
func (c pathCompleter) previous() (pathCompleter, string, bool) {
	if !c.active || len(c.items) == 0 {
		return c, "", false
	}

	c.index = (c.index - 1 + len(c.items)) % len(c.items)

	return c, c.items[c.index], true
}

func (c pathCompleter) reset() pathCompleter {
	return pathCompleter{}
}

// view lists the cycle around the current item by base name.
func (c pathCompleter) view(maxShow int) []string {
	if !c.active {
		return nil
	}

	start := max(c.index-maxShow/2, 0) //nolint:mnd // Centre the current item
	end := min(start+maxShow, len(c.items))
	start = max(end-maxShow, 0)

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		prefix := "    "
		if i == c.index {
			prefix = "  ▶ "
		}

		lines = append(lines, prefix+getBaseName(c.items[i]))
	}

	return lines
}

func expandHomePath(input string) string {
	if input == "" {
		return "."
	}

	if strings.HasPrefix(input, "~") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, input[1:])
		}
	}

	return input
}

func getBaseName(path string) string {
	trimmed := strings.TrimSuffix(path, string(filepath.Separator))
	base := filepath.Base(trimmed)

	if strings.HasSuffix(path, string(filepath.Separator)) {
		return base + string(filepath.Separator)
	}

	return base
}

// getPathCompletions lists directories matching the last path segment of
// input. Hidden directories only match a prefix that starts with a dot.
func getPathCompletions(input string) []string {
	input = expandHomePath(input)
	dir, prefix := parseCompletionPath(input)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	completions := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || !shouldIncludeEntry(name, prefix) {
			continue
		}

		completions = append(completions, filepath.Join(dir, name)+string(filepath.Separator))
	}

	sort.Strings(completions)

	return completions
}

func parseCompletionPath(input string) (dir, prefix string) {
	if strings.HasSuffix(input, string(filepath.Separator)) {
		return input, ""
	}

	return filepath.Dir(input), filepath.Base(input)
}

func shouldIncludeEntry(name, prefix string) bool {
	if strings.HasPrefix(name, ".") && !strings.HasPrefix(prefix, ".") {
		return false
	}

	return prefix == "" || strings.HasPrefix(name, prefix)
}
