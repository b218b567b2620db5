package examples

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/meshsense/meshsense-go/pkg/composition"
	"github.com/meshsense/meshsense-go/pkg/sensor"
)

//go:embed presets/*.yaml
var presetFS embed.FS

// DefaultPreset is the preset used when none is selected.
const DefaultPreset = "occupancy"

// Presets returns the names of the embedded presets, sorted.
func Presets() []string {
	entries, err := presetFS.ReadDir("presets")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(names)
	return names
}

// PresetYAML returns the raw YAML of a preset.
func PresetYAML(name string) ([]byte, error) {
	data, err := presetFS.ReadFile("presets/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("preset %q not found (have %s)", name, strings.Join(Presets(), ", "))
	}
	return data, nil
}

// LoadPreset parses a preset.
func LoadPreset(name string) (*composition.FileConfig, error) {
	data, err := PresetYAML(name)
	if err != nil {
		return nil, err
	}
	return composition.ParseFileConfig(data)
}

// Node resolves a preset into a composition config using factory.
func Node(name string, factory *sensor.Factory) (composition.Config, error) {
	fc, err := LoadPreset(name)
	if err != nil {
		return composition.Config{}, err
	}
	return fc.Resolve(factory)
}
