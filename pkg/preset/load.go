package preset

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads a shape library from a YAML file.
func Load(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading presets from %s: %w", path, err)
	}
	var lib Library
	if err := yaml.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("parsing presets from %s: %w", path, err)
	}
	return &lib, nil
}

// SaveTo writes the library to a specific path, creating parent
// directories as needed.
func (l *Library) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(l)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
