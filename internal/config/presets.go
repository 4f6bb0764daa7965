package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPreset is the preset used when none is given.
const DefaultPreset = "Images"

// PresetDef is a named list of extensions.
type PresetDef struct {
	Name       string   `yaml:"name"`
	Extensions []string `yaml:"extensions"`
}

// presetFile is the on-disk layout of a presets file:
//
//	presets:
//	  - name: Documents
//	    extensions: [".pdf", ".docx", ".txt"]
type presetFile struct {
	Presets []PresetDef `yaml:"presets"`
}

// DefaultPresets returns the built-in presets in display order.
func DefaultPresets() []PresetDef {
	images := []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tiff"}
	videos := []string{".mp4", ".avi", ".mov", ".mkv", ".wmv"}

	return []PresetDef{
		{Name: "Images", Extensions: images},
		{Name: "Videos", Extensions: videos},
		{Name: "Images & Videos", Extensions: append(append([]string{}, images...), videos...)},
	}
}

// LoadPresetFile reads extra presets from a YAML file.
func LoadPresetFile(path string) ([]PresetDef, error) {
	data, err := os.ReadFile(path) // #nosec G304 - file path is controlled by caller
	if err != nil {
		return nil, fmt.Errorf("failed to read presets file %s: %w", path, err)
	}

	var file presetFile

	err = yaml.Unmarshal(data, &file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse presets file %s: %w", path, err)
	}

	for i, preset := range file.Presets {
		if strings.TrimSpace(preset.Name) == "" {
			return nil, fmt.Errorf("preset %d in %s has no name", i+1, path)
		}
		if len(preset.Extensions) == 0 {
			return nil, fmt.Errorf("preset %q in %s has no extensions", preset.Name, path)
		}
	}

	return file.Presets, nil
}

// LoadPresets returns the built-in presets followed by those in path.
// A preset in the file replaces a built-in one of the same name.
func LoadPresets(path string) ([]PresetDef, error) {
	presets := DefaultPresets()
	if path == "" {
		return presets, nil
	}

	extra, err := LoadPresetFile(path)
	if err != nil {
		return nil, err
	}

	for _, preset := range extra {
		replaced := false
		for i := range presets {
			if strings.EqualFold(presets[i].Name, preset.Name) {
				presets[i] = preset
				replaced = true
			}
		}
		if !replaced {
			presets = append(presets, preset)
		}
	}

	return presets, nil
}
