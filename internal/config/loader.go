package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// validator is implemented by every game config.
type validator interface {
	Validate() error
}

// load resolves a game config. Files are decoded over the hardcoded
// defaults, so a partial file only overrides the keys it names.
// Search order: customPath -> ~/.arcade/configs/<game>.yaml -> ./configs/<game>.yaml -> embedded default
func load[T validator](game, customPath string, embedded []byte, defaults func() T) (T, error) {
	cfg := defaults()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	filename := game + ".yaml"

	// Try user config directory, then the local configs directory
	for _, path := range []string{userConfigPath(filename), filepath.Join("configs", filename)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		candidate := defaults()
		if err := yaml.Unmarshal(data, &candidate); err != nil {
			continue
		}
		return candidate, candidate.Validate()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(embedded, &cfg); err != nil {
		return defaults(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, cfg.Validate()
}

// LoadSlicer loads fruit slicer configuration.
func LoadSlicer(customPath string) (SlicerConfig, error) {
	return load("slicer", customPath, defaultSlicerYAML, DefaultSlicerConfig)
}

// LoadMaze loads maze chase configuration.
func LoadMaze(customPath string) (MazeConfig, error) {
	return load("maze", customPath, defaultMazeYAML, DefaultMazeConfig)
}

// LoadShooter loads shooter configuration.
func LoadShooter(customPath string) (ShooterConfig, error) {
	return load("shooter", customPath, defaultShooterYAML, DefaultShooterConfig)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
