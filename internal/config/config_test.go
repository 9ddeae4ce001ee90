package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vovakirdan/arcade-sim/internal/sim"
	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var slicer SlicerConfig
	if err := yaml.Unmarshal(GetDefaultYAML("slicer"), &slicer); err != nil {
		t.Fatalf("slicer.yaml: %v", err)
	}
	if !reflect.DeepEqual(slicer, DefaultSlicerConfig()) {
		t.Errorf("slicer.yaml = %+v, expected %+v", slicer, DefaultSlicerConfig())
	}

	var shooter ShooterConfig
	if err := yaml.Unmarshal(GetDefaultYAML("shooter"), &shooter); err != nil {
		t.Fatalf("shooter.yaml: %v", err)
	}
	if !reflect.DeepEqual(shooter, DefaultShooterConfig()) {
		t.Errorf("shooter.yaml = %+v, expected %+v", shooter, DefaultShooterConfig())
	}

	var maze MazeConfig
	if err := yaml.Unmarshal(GetDefaultYAML("maze"), &maze); err != nil {
		t.Fatalf("maze.yaml: %v", err)
	}
	got, err := ParseLayout(maze.Layout)
	if err != nil {
		t.Fatalf("maze.yaml layout: %v", err)
	}
	expected, err := ParseLayout(DefaultMazeLayout)
	if err != nil {
		t.Fatalf("DefaultMazeLayout: %v", err)
	}
	if !reflect.DeepEqual(got, expected) {
		t.Error("maze.yaml layout differs from DefaultMazeLayout")
	}
	def := DefaultMazeConfig()
	maze.Layout, def.Layout = "", ""
	if !reflect.DeepEqual(maze, def) {
		t.Errorf("maze.yaml = %+v, expected %+v", maze, def)
	}
}

func TestDefaultsAreValid(t *testing.T) {
	tests := []struct {
		name string
		cfg  validator
	}{
		{"slicer", DefaultSlicerConfig()},
		{"maze", DefaultMazeConfig()},
		{"shooter", DefaultShooterConfig()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); err != nil {
				t.Errorf("Validate() = %v, expected nil", err)
			}
		})
	}
}

func TestParseDefaultLayout(t *testing.T) {
	layout, err := ParseLayout(DefaultMazeLayout)
	if err != nil {
		t.Fatalf("ParseLayout() error = %v", err)
	}
	if layout.Cols != 28 || layout.Rows != 31 {
		t.Fatalf("size = %dx%d, expected 28x31", layout.Cols, layout.Rows)
	}
	if layout.Player != (Cell{Col: 14, Row: 23}) {
		t.Errorf("Player = %v, expected {14 23}", layout.Player)
	}
	expectedGhosts := []Cell{{13, 12}, {14, 12}, {15, 12}}
	if !reflect.DeepEqual(layout.Ghosts, expectedGhosts) {
		t.Errorf("Ghosts = %v, expected %v", layout.Ghosts, expectedGhosts)
	}

	tile := func(col, row int) sim.Tile { return layout.Tiles[row*layout.Cols+col] }
	tests := []struct {
		col, row int
		expected sim.Tile
	}{
		{0, 0, sim.TileWall},
		{27, 30, sim.TileWall},
		{2, 2, sim.TilePower},
		{25, 28, sim.TilePower},
		{13, 15, sim.TileEmpty},
		{14, 15, sim.TileEmpty},
		{12, 15, sim.TileWall},
		{11, 13, sim.TileWall},
		{14, 23, sim.TilePellet},
		{13, 12, sim.TilePellet},
		{1, 1, sim.TilePellet},
	}
	for _, tt := range tests {
		if got := tile(tt.col, tt.row); got != tt.expected {
			t.Errorf("tile(%d, %d) = %v, expected %v", tt.col, tt.row, got, tt.expected)
		}
	}
}

func TestParseLayoutErrors(t *testing.T) {
	tests := []struct {
		name string
		art  string
	}{
		{"empty", "\n\n"},
		{"ragged", "####\n#P.\n####"},
		{"missing player", "####\n#..#\n####"},
		{"two players", "####\n#PP#\n####"},
		{"unknown tile", "####\n#P?#\n####"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseLayout(tt.art); !errors.Is(err, ErrInvalid) {
				t.Errorf("ParseLayout() error = %v, expected ErrInvalid", err)
			}
		})
	}
}

func TestValidateRejects(t *testing.T) {
	noFruit := DefaultSlicerConfig()
	noFruit.Varieties = nil

	zeroWeights := DefaultSlicerConfig()
	for i := range zeroWeights.Varieties {
		zeroWeights.Varieties[i].Weight = 0
	}

	tooManyGhosts := DefaultMazeConfig()
	tooManyGhosts.Ghosts = tooManyGhosts.Ghosts[:2]

	badProgression := DefaultMazeConfig()
	badProgression.Difficulty.Progression.Type = "lunar"

	noEnemies := DefaultShooterConfig()
	noEnemies.Enemies = nil

	badSpawner := DefaultShooterConfig()
	badSpawner.Spawner.Interval = 0

	tests := []struct {
		name string
		cfg  validator
	}{
		{"slicer without varieties", noFruit},
		{"slicer with zero weights", zeroWeights},
		{"maze with unassigned ghost starts", tooManyGhosts},
		{"maze with unknown progression", badProgression},
		{"shooter without enemies", noEnemies},
		{"shooter with zero interval", badSpawner},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, expected ErrInvalid", err)
			}
		})
	}
}

func TestLoadCustomPathOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slicer.yaml")
	if err := os.WriteFile(path, []byte("lives: 5\ncombo:\n  step: 0.2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSlicer(path)
	if err != nil {
		t.Fatalf("LoadSlicer() error = %v", err)
	}
	if cfg.Lives != 5 {
		t.Errorf("Lives = %d, expected 5", cfg.Lives)
	}
	if cfg.Combo.Step != 0.2 || cfg.Combo.IdleWindow != 3 {
		t.Errorf("Combo = %+v, expected step 0.2 and the default idle window", cfg.Combo)
	}
	if len(cfg.Varieties) != 8 {
		t.Errorf("len(Varieties) = %d, expected 8", len(cfg.Varieties))
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadMaze(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadMaze() with a missing file returned nil error")
	}

	broken := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(broken, []byte("lives: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadMaze(broken); err == nil {
		t.Error("LoadMaze() with malformed YAML returned nil error")
	}

	invalidFile := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalidFile, []byte("enemies: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadShooter(invalidFile); !errors.Is(err, ErrInvalid) {
		t.Errorf("LoadShooter() error = %v, expected ErrInvalid", err)
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := LoadShooter("")
	if err != nil {
		t.Fatalf("LoadShooter() error = %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultShooterConfig()) {
		t.Error("LoadShooter() without files did not return the embedded default")
	}

	userDir := filepath.Join(home, ".arcade", "configs")
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(userDir, "shooter.yaml"), []byte("contact_damage: 9\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadShooter("")
	if err != nil {
		t.Fatalf("LoadShooter() error = %v", err)
	}
	if cfg.ContactDamage != 9 {
		t.Errorf("ContactDamage = %d, expected 9 from the user config", cfg.ContactDamage)
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		input    string
		expected DifficultyPreset
		wantErr  bool
	}{
		{"", "", false},
		{"easy", DifficultyEasy, false},
		{" Hard ", DifficultyHard, false},
		{"fixed", DifficultyFixed, false},
		{"nightmare", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePreset(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePreset(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.expected {
			t.Errorf("ParsePreset(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestApplyPreset(t *testing.T) {
	d := DefaultSlicerConfig().Difficulty
	ApplyPreset(&d, DifficultyHard)
	if !d.Enabled || d.InitialLevel != 0.7 {
		t.Errorf("hard = %+v, expected enabled at 0.7", d)
	}
	ApplyPreset(&d, DifficultyFixed)
	if d.Enabled {
		t.Error("fixed preset left progression enabled")
	}
	before := d
	ApplyPreset(&d, "")
	if d != before {
		t.Error("empty preset changed the config")
	}
}

func TestDifficultyManager(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.5,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 100},
		Scaling:      ScalingConfig{SpeedMultiplier: 1},
	}
	dm := NewDifficultyManager(cfg)

	tests := []struct {
		score    int
		expected float64
	}{
		{0, 0.5},
		{50, 0.75},
		{100, 1},
		{500, 1},
	}
	for _, tt := range tests {
		if got := dm.Level(tt.score, 0); got != tt.expected {
			t.Errorf("Level(%d) = %v, expected %v", tt.score, got, tt.expected)
		}
	}
	if got := dm.Pace(100, 0); got != 2 {
		t.Errorf("Pace() = %v, expected 2", got)
	}

	cfg.Enabled = false
	fixed := NewDifficultyManager(cfg)
	if got := fixed.Level(100, 0); got != 0.5 {
		t.Errorf("Level() disabled = %v, expected 0.5", got)
	}
}
