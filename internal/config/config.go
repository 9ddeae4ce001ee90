// Package config provides YAML-based game configuration loading,
// validation and difficulty management for the arcade games.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// invalid builds a validation error for a game config field.
func invalid(game, field, format string, args ...any) error {
	return fmt.Errorf("config: %s: %s: %w: %s", game, field, ErrInvalid, fmt.Sprintf(format, args...))
}

// Range is a closed interval of float values.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Visual defines how an entity is drawn in the terminal.
type Visual struct {
	Glyph string `yaml:"glyph"` // First rune is used
	Color string `yaml:"color"` // Color name, see core.ParseColor
}

// Rune returns the glyph rune, or fallback when the glyph is empty.
func (v Visual) Rune(fallback rune) rune {
	for _, r := range v.Glyph {
		return r
	}
	return fallback
}

// WorldConfig defines the world size in world units (pixels).
type WorldConfig struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	MaxStep float64 `yaml:"max_step"` // Largest accepted tick, seconds
}

// SpawnerConfig defines spawn cadence and population cap.
type SpawnerConfig struct {
	Interval         float64 `yaml:"interval"`     // Seconds between spawns
	Decrement        float64 `yaml:"decrement"`    // Interval reduction per spawn
	MinInterval      float64 `yaml:"min_interval"` // Interval floor
	MaxAlive         int     `yaml:"max_alive"`    // 0 = unlimited
	MaxAlivePerLevel int     `yaml:"max_alive_per_level"`
}

// ResourceConfig defines a counted resource such as ammo.
type ResourceConfig struct {
	Initial       int     `yaml:"initial"`
	Max           int     `yaml:"max"`
	OnClear       int     `yaml:"on_clear"`
	TrickleBelow  int     `yaml:"trickle_below"`
	TrickleAmount int     `yaml:"trickle_amount"`
	TrickleRate   float64 `yaml:"trickle_rate"`
}

// ComboConfig defines the combo multiplier.
type ComboConfig struct {
	Step       float64 `yaml:"step"`
	IdleWindow float64 `yaml:"idle_window"`
}

// LevelConfig defines level progression.
type LevelConfig struct {
	KillsPerLevel    int     `yaml:"kills_per_level"`
	PlayerSpeedBump  float64 `yaml:"player_speed_bump"`
	HostileSpeedBump float64 `yaml:"hostile_speed_bump"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to hostile pace at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset resolves a preset name. An empty name yields an empty preset,
// meaning the config file decides.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(name))); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (use easy, normal, hard or fixed)", name)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyPreset modifies a difficulty config based on a preset.
// An empty preset leaves it unchanged.
func ApplyPreset(cfg *DifficultyConfig, preset DifficultyPreset) {
	switch {
	case preset == "":
	case IsFixedPreset(preset):
		cfg.Enabled = false
	default:
		cfg.Enabled = true
		cfg.InitialLevel = InitialLevelForPreset(preset)
	}
}

func validateWorld(game string, w WorldConfig) error {
	if w.Width <= 0 || w.Height <= 0 {
		return invalid(game, "world", "size %vx%v must be positive", w.Width, w.Height)
	}
	if w.MaxStep < 0 {
		return invalid(game, "world.max_step", "must not be negative")
	}
	return nil
}

func validateSpawner(game string, s SpawnerConfig) error {
	if s.Interval <= 0 {
		return invalid(game, "spawner.interval", "must be positive")
	}
	if s.MinInterval < 0 || s.MinInterval > s.Interval {
		return invalid(game, "spawner.min_interval", "must be within [0, interval]")
	}
	if s.MaxAlive < 0 || s.MaxAlivePerLevel < 0 {
		return invalid(game, "spawner.max_alive", "must not be negative")
	}
	return nil
}

func validateDifficulty(game string, d DifficultyConfig) error {
	switch d.Progression.Type {
	case "", "score", "time", "none":
	default:
		return invalid(game, "difficulty.progression.type", "unknown type %q", d.Progression.Type)
	}
	if d.InitialLevel < 0 || d.InitialLevel > 1 {
		return invalid(game, "difficulty.initial_level", "must be within [0, 1]")
	}
	return nil
}
