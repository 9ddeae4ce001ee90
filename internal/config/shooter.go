package config

// ShooterConfig contains all configuration for the side-scrolling shooter.
type ShooterConfig struct {
	World         WorldConfig      `yaml:"world"`
	Player        ShooterPlayer    `yaml:"player"`
	Bullet        ShooterShot      `yaml:"bullet"`
	Missile       ShooterShot      `yaml:"missile"`
	Bomb          ShooterBomb      `yaml:"bomb"`
	Explosion     ShooterBlast     `yaml:"explosion"`
	Enemies       []EnemyConfig    `yaml:"enemies"`
	Spawner       SpawnerConfig    `yaml:"spawner"`
	SpawnSite     ShooterSite      `yaml:"spawn_site"`
	Ammo          ResourceConfig   `yaml:"ammo"`
	Bombs         ResourceConfig   `yaml:"bombs"`
	Missiles      ResourceConfig   `yaml:"missiles"`
	ContactDamage int              `yaml:"contact_damage"`
	Wave          LevelConfig      `yaml:"wave"`
	Difficulty    DifficultyConfig `yaml:"difficulty"`
}

// ShooterPlayer defines the ship.
type ShooterPlayer struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Speed        float64 `yaml:"speed"`
	Health       int     `yaml:"health"`
	BottomOffset float64 `yaml:"bottom_offset"` // Start distance of the center above the bottom edge
	Visual       Visual  `yaml:"visual"`
}

// ShooterShot defines an aimed projectile.
type ShooterShot struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	Speed       float64 `yaml:"speed"`
	Damage      int     `yaml:"damage"`
	Cooldown    float64 `yaml:"cooldown"`
	RewardScale int     `yaml:"reward_scale"` // > 0 makes the shot a one-shot kill
	Radius      float64 `yaml:"radius"`       // Explosion on hit; 0 = spark
	Visual      Visual  `yaml:"visual"`
}

// ShooterBomb defines the lobbed bomb.
type ShooterBomb struct {
	Size     float64 `yaml:"size"`
	VelX     Range   `yaml:"vel_x"`
	VelY     float64 `yaml:"vel_y"`
	Gravity  float64 `yaml:"gravity"`
	Fuse     float64 `yaml:"fuse"`
	Radius   float64 `yaml:"radius"`
	Lift     float64 `yaml:"lift"` // Drop point above the ship center
	Cooldown float64 `yaml:"cooldown"`
	Visual   Visual  `yaml:"visual"`
}

// ShooterBlast defines explosion lifetimes and harmless effect sizes.
type ShooterBlast struct {
	TTL         float64 `yaml:"ttl"`
	SparkRadius float64 `yaml:"spark_radius"` // Left by bullet hits
	FlashRadius float64 `yaml:"flash_radius"` // Left by ship collisions
	Visual      Visual  `yaml:"visual"`
	Harmless    Visual  `yaml:"harmless"`
}

// EnemyConfig is one enemy type.
type EnemyConfig struct {
	Name   string  `yaml:"name"`
	Size   float64 `yaml:"size"`
	Health int     `yaml:"health"`
	Speed  float64 `yaml:"speed"`
	Reward int     `yaml:"reward"`
	Weight int     `yaml:"weight"`
	Visual Visual  `yaml:"visual"`
}

// ShooterSite defines where enemies enter.
type ShooterSite struct {
	Inset   float64 `yaml:"inset"` // Distance of the spawn point inside the right edge
	LaneMin float64 `yaml:"lane_min"`
	LaneMax float64 `yaml:"lane_max"`
}

// DefaultShooterConfig returns the default shooter configuration.
func DefaultShooterConfig() ShooterConfig {
	return ShooterConfig{
		World: WorldConfig{Width: 1200, Height: 600, MaxStep: 0.1},
		Player: ShooterPlayer{
			Width: 40, Height: 40, Speed: 300, Health: 100, BottomOffset: 40,
			Visual: Visual{Glyph: "A", Color: "bright_cyan"},
		},
		Bullet: ShooterShot{
			Width: 8, Height: 8, Speed: 480, Damage: 1,
			Visual: Visual{Glyph: "•", Color: "bright_yellow"},
		},
		Missile: ShooterShot{
			Width: 15, Height: 40, Speed: 720, RewardScale: 10, Radius: 250,
			Visual: Visual{Glyph: "!", Color: "bright_magenta"},
		},
		Bomb: ShooterBomb{
			Size: 25, VelX: Range{Min: -180, Max: 180}, VelY: -300, Gravity: 720,
			Fuse: 1, Radius: 150, Lift: 37.5,
			Visual: Visual{Glyph: "Q", Color: "bright_red"},
		},
		Explosion: ShooterBlast{
			TTL: 0.67, SparkRadius: 30, FlashRadius: 40,
			Visual:   Visual{Glyph: "*", Color: "orange"},
			Harmless: Visual{Glyph: "+", Color: "yellow"},
		},
		Enemies: []EnemyConfig{
			{Name: "grunt", Size: 35, Health: 1, Speed: 120, Reward: 50, Weight: 1, Visual: Visual{Glyph: "W", Color: "red"}},
			{Name: "brute", Size: 35, Health: 2, Speed: 180, Reward: 100, Weight: 1, Visual: Visual{Glyph: "X", Color: "magenta"}},
		},
		Spawner:       SpawnerConfig{Interval: 0.583, MaxAlive: 3, MaxAlivePerLevel: 1},
		SpawnSite:     ShooterSite{Inset: 17.5, LaneMin: 17.5, LaneMax: 517.5},
		Ammo:          ResourceConfig{Initial: 999, OnClear: 100, TrickleBelow: 50, TrickleAmount: 10, TrickleRate: 0.3},
		Bombs:         ResourceConfig{Initial: 9, OnClear: 2},
		Missiles:      ResourceConfig{Initial: 8},
		ContactDamage: 5,
		Wave:          LevelConfig{KillsPerLevel: 5, HostileSpeedBump: 0.05},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression:  ProgressionConfig{Type: "score", MaxAt: 10000},
			Scaling:      ScalingConfig{SpeedMultiplier: 0.5},
		},
	}
}

// Validate checks the shooter configuration for unusable values.
func (c ShooterConfig) Validate() error {
	const game = "shooter"
	if err := validateWorld(game, c.World); err != nil {
		return err
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 || c.Player.Speed <= 0 {
		return invalid(game, "player", "size and speed must be positive")
	}
	if c.Player.Health <= 0 {
		return invalid(game, "player.health", "must be positive")
	}
	if len(c.Enemies) == 0 {
		return invalid(game, "enemies", "spawn table is empty")
	}
	total := 0
	seen := make(map[string]bool, len(c.Enemies))
	for _, e := range c.Enemies {
		switch {
		case e.Name == "":
			return invalid(game, "enemies", "enemy without a name")
		case seen[e.Name]:
			return invalid(game, "enemies", "duplicate enemy %q", e.Name)
		case e.Health <= 0:
			return invalid(game, "enemies."+e.Name, "health must be positive")
		case e.Weight < 0:
			return invalid(game, "enemies."+e.Name, "negative weight")
		}
		seen[e.Name] = true
		total += e.Weight
	}
	if total == 0 {
		return invalid(game, "enemies", "all weights are zero")
	}
	if err := validateSpawner(game, c.Spawner); err != nil {
		return err
	}
	if c.SpawnSite.LaneMax < c.SpawnSite.LaneMin {
		return invalid(game, "spawn_site", "lane_max below lane_min")
	}
	if c.Wave.KillsPerLevel <= 0 {
		return invalid(game, "wave.kills_per_level", "must be positive")
	}
	return validateDifficulty(game, c.Difficulty)
}
