package config

// SlicerConfig contains all configuration for the fruit slicer.
type SlicerConfig struct {
	World      WorldConfig      `yaml:"world"`
	Cursor     SlicerCursor     `yaml:"cursor"`
	Fruit      SlicerFruit      `yaml:"fruit"`
	Varieties  []FruitVariety   `yaml:"varieties"`
	Spawner    SpawnerConfig    `yaml:"spawner"`
	Juice      SlicerJuice      `yaml:"juice"`
	Combo      ComboConfig      `yaml:"combo"`
	Lives      int              `yaml:"lives"`
	Level      LevelConfig      `yaml:"level"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// SlicerCursor defines the blade cursor.
type SlicerCursor struct {
	Speed  float64 `yaml:"speed"` // Keyboard nudge speed, px/s
	Slack  float64 `yaml:"slack"` // Extra hit distance around a fruit
	Visual Visual  `yaml:"visual"`
}

// SlicerFruit defines the motion shared by every fruit.
type SlicerFruit struct {
	Radius      float64 `yaml:"radius"`
	Gravity     float64 `yaml:"gravity"`
	SpawnHeight float64 `yaml:"spawn_height"` // Distance above the top edge
	EdgeInset   float64 `yaml:"edge_inset"`   // Horizontal spawn inset from both sides
	VelX        Range   `yaml:"vel_x"`
	VelY        Range   `yaml:"vel_y"`
	Spin        Range   `yaml:"spin"`
	Margin      float64 `yaml:"margin"` // Escape distance beyond the bounds
}

// FruitVariety is one kind of fruit.
type FruitVariety struct {
	Name   string `yaml:"name"`
	Points int    `yaml:"points"`
	Weight int    `yaml:"weight"`
	Visual Visual `yaml:"visual"`
}

// SlicerJuice defines the particles left by a sliced fruit.
type SlicerJuice struct {
	Count   int     `yaml:"count"`
	TTL     float64 `yaml:"ttl"`
	Gravity float64 `yaml:"gravity"`
	VelX    Range   `yaml:"vel_x"`
	VelY    Range   `yaml:"vel_y"`
}

// DefaultSlicerConfig returns the default slicer configuration.
func DefaultSlicerConfig() SlicerConfig {
	variety := func(name string, points int, glyph, color string) FruitVariety {
		return FruitVariety{Name: name, Points: points, Weight: 1, Visual: Visual{Glyph: glyph, Color: color}}
	}
	return SlicerConfig{
		World:  WorldConfig{Width: 800, Height: 600, MaxStep: 0.1},
		Cursor: SlicerCursor{Speed: 600, Slack: 10, Visual: Visual{Glyph: "+", Color: "bright_white"}},
		Fruit: SlicerFruit{
			Radius:      25,
			Gravity:     540,
			SpawnHeight: 50,
			EdgeInset:   25,
			VelX:        Range{Min: -120, Max: 120},
			VelY:        Range{Min: 180, Max: 360},
			Spin:        Range{Min: -6, Max: 6},
			Margin:      100,
		},
		Varieties: []FruitVariety{
			variety("apple", 10, "@", "red"),
			variety("banana", 15, ")", "yellow"),
			variety("carrot", 20, "V", "orange"),
			variety("tomato", 25, "O", "bright_red"),
			variety("lettuce", 10, "&", "green"),
			variety("cucumber", 15, "=", "bright_green"),
			variety("onion", 20, "o", "bright_white"),
			variety("corn", 25, "#", "bright_yellow"),
		},
		Spawner: SpawnerConfig{Interval: 1.5, Decrement: 0.01, MinInterval: 0.5},
		Juice: SlicerJuice{
			Count:   3,
			TTL:     0.83,
			Gravity: 720,
			VelX:    Range{Min: -240, Max: 240},
			VelY:    Range{Min: -420, Max: 60},
		},
		Combo: ComboConfig{Step: 0.1, IdleWindow: 3},
		Lives: 3,
		Level: LevelConfig{KillsPerLevel: 20, HostileSpeedBump: 0.05},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression:  ProgressionConfig{Type: "score", MaxAt: 2000},
			Scaling:      ScalingConfig{SpeedMultiplier: 0.5},
		},
	}
}

// Validate checks the slicer configuration for unusable values.
func (c SlicerConfig) Validate() error {
	const game = "slicer"
	if err := validateWorld(game, c.World); err != nil {
		return err
	}
	if c.Fruit.Radius <= 0 {
		return invalid(game, "fruit.radius", "must be positive")
	}
	if len(c.Varieties) == 0 {
		return invalid(game, "varieties", "spawn table is empty")
	}
	total := 0
	seen := make(map[string]bool, len(c.Varieties))
	for _, v := range c.Varieties {
		if v.Name == "" {
			return invalid(game, "varieties", "variety without a name")
		}
		if seen[v.Name] {
			return invalid(game, "varieties", "duplicate variety %q", v.Name)
		}
		seen[v.Name] = true
		if v.Weight < 0 {
			return invalid(game, "varieties."+v.Name, "negative weight")
		}
		total += v.Weight
	}
	if total == 0 {
		return invalid(game, "varieties", "all weights are zero")
	}
	if err := validateSpawner(game, c.Spawner); err != nil {
		return err
	}
	if c.Lives <= 0 {
		return invalid(game, "lives", "must be positive")
	}
	if c.Juice.Count < 0 {
		return invalid(game, "juice.count", "must not be negative")
	}
	return validateDifficulty(game, c.Difficulty)
}
