package config

import (
	"strings"

	"github.com/vovakirdan/arcade-sim/internal/sim"
)

// MazeConfig contains all configuration for the maze chase.
type MazeConfig struct {
	TileSize         float64          `yaml:"tile_size"`
	Layout           string           `yaml:"layout"`
	Player           MazePlayer       `yaml:"player"`
	Ghost            MazeGhostRules   `yaml:"ghost"`
	Ghosts           []MazeGhost      `yaml:"ghosts"`
	Scoring          MazeScoring      `yaml:"scoring"`
	FrightenDuration float64          `yaml:"frighten_duration"`
	ContactRange     float64          `yaml:"contact_range"` // 0 = tile_size / 1.5
	Lives            int              `yaml:"lives"`
	Level            LevelConfig      `yaml:"level"`
	Wall             Visual           `yaml:"wall"`
	Pellet           Visual           `yaml:"pellet"`
	Power            Visual           `yaml:"power"`
	Difficulty       DifficultyConfig `yaml:"difficulty"`
}

// MazePlayer defines the player.
type MazePlayer struct {
	Speed     float64 `yaml:"speed"`
	Tolerance float64 `yaml:"tolerance"`
	Radius    float64 `yaml:"radius"`
	Visual    Visual  `yaml:"visual"`
}

// MazeGhostRules defines what all ghosts share.
type MazeGhostRules struct {
	Tolerance  float64 `yaml:"tolerance"`
	Radius     float64 `yaml:"radius"`
	Wait       bool    `yaml:"wait"` // Stay put until the player first moves
	Frightened Visual  `yaml:"frightened"`
}

// MazeGhost is one ghost, assigned to the G markers in reading order.
type MazeGhost struct {
	Name   string  `yaml:"name"`
	Speed  float64 `yaml:"speed"`
	Dir    string  `yaml:"dir"` // Initial heading: right, left, down, up
	Visual Visual  `yaml:"visual"`
}

// MazeScoring defines maze rewards.
type MazeScoring struct {
	Pellet int `yaml:"pellet"`
	Power  int `yaml:"power"`
	Eat    int `yaml:"eat"`
}

// Cell is a tile coordinate.
type Cell struct {
	Col, Row int
}

// MazeLayout is a parsed maze.
type MazeLayout struct {
	Cols, Rows int
	Tiles      []sim.Tile // Row-major
	Player     Cell
	Ghosts     []Cell // Reading order
}

// DefaultMazeLayout is the built-in 28x31 maze.
const DefaultMazeLayout = `
############################
#..........................#
#.o......................o.#
#..........................#
#..........................#
#..........................#
#..........................#
#..........................#
#..........................#
#..........................#
#..........................#
#..........................#
#............GGG...........#
#..........######..........#
#..........######..........#
#..........##  ##..........#
#..........######..........#
#..........######..........#
#..........................#
#..........................#
#..........................#
#..........................#
#..........................#
#.............P............#
#..........................#
#..........................#
#..........................#
#..........................#
#.o......................o.#
#..........................#
############################
`

// DefaultMazeConfig returns the default maze configuration.
func DefaultMazeConfig() MazeConfig {
	return MazeConfig{
		TileSize: 20,
		Layout:   DefaultMazeLayout,
		Player:   MazePlayer{Speed: 180, Tolerance: 6, Radius: 8, Visual: Visual{Glyph: "C", Color: "bright_yellow"}},
		Ghost: MazeGhostRules{
			Tolerance:  3,
			Radius:     8,
			Wait:       true,
			Frightened: Visual{Glyph: "m", Color: "bright_blue"},
		},
		Ghosts: []MazeGhost{
			{Name: "blaze", Speed: 60, Dir: "right", Visual: Visual{Glyph: "M", Color: "bright_red"}},
			{Name: "frost", Speed: 66, Dir: "left", Visual: Visual{Glyph: "M", Color: "bright_cyan"}},
			{Name: "amber", Speed: 72, Dir: "down", Visual: Visual{Glyph: "M", Color: "orange"}},
		},
		Scoring:          MazeScoring{Pellet: 10, Power: 50, Eat: 200},
		FrightenDuration: 8,
		Lives:            3,
		Level:            LevelConfig{PlayerSpeedBump: 0.05, HostileSpeedBump: 0.08},
		Wall:             Visual{Glyph: "█", Color: "blue"},
		Pellet:           Visual{Glyph: "·", Color: "white"},
		Power:            Visual{Glyph: "●", Color: "bright_white"},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression:  ProgressionConfig{Type: "time", MaxAt: 36000}, // 10 minutes at 60fps
			Scaling:      ScalingConfig{SpeedMultiplier: 0.5},
		},
	}
}

// ContactDistance returns the player-ghost contact threshold.
func (c MazeConfig) ContactDistance() float64 {
	if c.ContactRange > 0 {
		return c.ContactRange
	}
	return c.TileSize / 1.5
}

// ParseLayout parses ASCII maze art: '#' wall, '.' pellet, 'o' power
// pellet, ' ' empty, 'P' player start and 'G' ghost start. Start markers
// sit on pellet tiles. Leading and trailing blank lines are ignored.
func ParseLayout(art string) (MazeLayout, error) {
	var layout MazeLayout
	lines := strings.Split(strings.ReplaceAll(art, "\r\n", "\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return layout, invalid("maze", "layout", "empty")
	}

	layout.Rows = len(lines)
	layout.Player = Cell{Col: -1, Row: -1}
	for row, line := range lines {
		runes := []rune(line)
		if row == 0 {
			layout.Cols = len(runes)
		} else if len(runes) != layout.Cols {
			return MazeLayout{}, invalid("maze", "layout", "row %d has %d columns, expected %d", row, len(runes), layout.Cols)
		}
		for col, r := range runes {
			var t sim.Tile
			switch r {
			case '#':
				t = sim.TileWall
			case '.':
				t = sim.TilePellet
			case 'o':
				t = sim.TilePower
			case ' ':
				t = sim.TileEmpty
			case 'P':
				if layout.Player.Col >= 0 {
					return MazeLayout{}, invalid("maze", "layout", "more than one player start")
				}
				layout.Player = Cell{Col: col, Row: row}
				t = sim.TilePellet
			case 'G':
				layout.Ghosts = append(layout.Ghosts, Cell{Col: col, Row: row})
				t = sim.TilePellet
			default:
				return MazeLayout{}, invalid("maze", "layout", "unknown tile %q at %d,%d", r, col, row)
			}
			layout.Tiles = append(layout.Tiles, t)
		}
	}
	if layout.Player.Col < 0 {
		return MazeLayout{}, invalid("maze", "layout", "missing player start")
	}
	return layout, nil
}

// ParseDirection resolves a heading name. Unknown names yield sim.DirNone.
func ParseDirection(name string) sim.Direction {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "right":
		return sim.DirRight
	case "left":
		return sim.DirLeft
	case "down":
		return sim.DirDown
	case "up":
		return sim.DirUp
	default:
		return sim.DirNone
	}
}

// Validate checks the maze configuration for unusable values.
func (c MazeConfig) Validate() error {
	const game = "maze"
	if c.TileSize <= 0 {
		return invalid(game, "tile_size", "must be positive")
	}
	layout, err := ParseLayout(c.Layout)
	if err != nil {
		return err
	}
	if len(layout.Ghosts) > len(c.Ghosts) {
		return invalid(game, "ghosts", "layout has %d ghost starts but only %d ghosts are defined", len(layout.Ghosts), len(c.Ghosts))
	}
	if c.Player.Speed <= 0 {
		return invalid(game, "player.speed", "must be positive")
	}
	for _, g := range c.Ghosts {
		if g.Speed < 0 {
			return invalid(game, "ghosts."+g.Name, "negative speed")
		}
	}
	if c.Lives <= 0 {
		return invalid(game, "lives", "must be positive")
	}
	return validateDifficulty(game, c.Difficulty)
}
