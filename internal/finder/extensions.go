package finder

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/joe/file-finder/internal/config"
)

// TypeSelection picks the file types to look for. A non-empty Custom list
// wins over Preset.
type TypeSelection struct {
	Preset string
	Custom string
}

// ExtensionSet is an ordered set of file extensions, matched case-insensitively.
type ExtensionSet struct {
	list  []string
	lower map[string]struct{}
}

// NewExtensionSet builds a set from extensions, keeping the first spelling of each.
func NewExtensionSet(extensions ...string) ExtensionSet {
	set := ExtensionSet{lower: make(map[string]struct{}, len(extensions))}

	for _, ext := range extensions {
		key := strings.ToLower(ext)
		if _, seen := set.lower[key]; seen {
			continue
		}

		set.lower[key] = struct{}{}
		set.list = append(set.list, ext)
	}

	return set
}

// List returns the extensions as given, in order.
func (s ExtensionSet) List() []string {
	return append([]string(nil), s.list...)
}

// Len returns the number of distinct extensions.
func (s ExtensionSet) Len() int {
	return len(s.list)
}

// String joins the extensions with ", ".
func (s ExtensionSet) String() string {
	return strings.Join(s.list, ", ")
}

// Matches reports whether the extension of path is in the set.
func (s ExtensionSet) Matches(path string) bool {
	ext := splitExt(path)
	if ext == "" {
		return false
	}

	_, ok := s.lower[strings.ToLower(ext)]

	return ok
}

// ResolveExtensions turns a selection into the extension set to scan for.
func ResolveExtensions(sel TypeSelection, presets []config.PresetDef) (ExtensionSet, error) {
	if strings.TrimSpace(sel.Custom) != "" {
		set := NewExtensionSet(ParseCustomTypes(sel.Custom)...)
		if set.Len() == 0 {
			return ExtensionSet{}, fmt.Errorf("%w: %q", ErrNoExtensions, sel.Custom)
		}

		return set, nil
	}

	preset, ok := findPreset(presets, sel.Preset)
	if !ok {
		return ExtensionSet{}, fmt.Errorf("%w: %q", ErrUnknownPreset, sel.Preset)
	}

	set := NewExtensionSet(preset.Extensions...)
	if set.Len() == 0 {
		return ExtensionSet{}, fmt.Errorf("%w: preset %q is empty", ErrNoExtensions, preset.Name)
	}

	return set, nil
}

// ParseCustomTypes splits a comma-separated extension list. Whitespace is
// trimmed, empty tokens dropped and a leading dot added where missing.
func ParseCustomTypes(custom string) []string {
	var extensions []string

	for _, token := range strings.Split(custom, ",") {
		token = strings.TrimSpace(token)
		if token == "" || token == "." {
			continue
		}

		if !strings.HasPrefix(token, ".") {
			token = "." + token
		}

		extensions = append(extensions, token)
	}

	return extensions
}

func findPreset(presets []config.PresetDef, name string) (config.PresetDef, bool) {
	for _, preset := range presets {
		if preset.Name == name {
			return preset, true
		}
	}

	for _, preset := range presets {
		if strings.EqualFold(preset.Name, strings.TrimSpace(name)) {
			return preset, true
		}
	}

	return config.PresetDef{}, false
}

// splitExt returns the extension of the last path element including its dot.
// Leading dots do not start an extension, so ".profile" has none.
func splitExt(path string) string {
	name := strings.TrimLeft(filepath.Base(path), ".")

	i := strings.LastIndex(name, ".")
	if i < 0 {
		return ""
	}

	return name[i:]
}
