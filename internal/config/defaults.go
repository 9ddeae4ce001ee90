package config

import (
	_ "embed"
)

//go:embed defaults/slicer.yaml
var defaultSlicerYAML []byte

//go:embed defaults/maze.yaml
var defaultMazeYAML []byte

//go:embed defaults/shooter.yaml
var defaultShooterYAML []byte

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "slicer":
		return defaultSlicerYAML
	case "maze":
		return defaultMazeYAML
	case "shooter":
		return defaultShooterYAML
	default:
		return nil
	}
}
