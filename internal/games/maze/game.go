// Package maze implements a maze chase game.
// The player eats pellets on a tile grid while ghosts chase it. A power
// pellet turns the ghosts vulnerable for a while, and clearing the board
// refills it at a higher speed.
package maze

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/arcade-sim/internal/config"
	"github.com/vovakirdan/arcade-sim/internal/core"
	"github.com/vovakirdan/arcade-sim/internal/games/stage"
	"github.com/vovakirdan/arcade-sim/internal/registry"
	"github.com/vovakirdan/arcade-sim/internal/sim"
)

// Game implements the maze chase on top of the simulation core.
type Game struct {
	cfg        config.MazeConfig
	stage      *stage.Stage
	sprites    map[string]stage.Sprite
	frightened stage.Sprite
	wall       stage.Sprite
	pellet     stage.Sprite
	power      stage.Sprite

	cols, rows   int
	cellsPerTile int
	minW, minH   int
	tooSmall     bool
}

// New creates a new maze game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "maze"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Maze Chase"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	cfg, err := config.LoadMaze(runtime.ConfigPath)
	if err != nil {
		stage.ConfigFallback(g.ID(), err)
		cfg = config.DefaultMazeConfig()
	}
	rules, err := Rules(cfg)
	if err != nil {
		stage.ConfigFallback(g.ID(), err)
		cfg = config.DefaultMazeConfig()
		rules, _ = Rules(cfg) //nolint:errcheck // the built-in layout always parses
	}
	g.cfg = cfg
	g.stage = stage.New(rules, runtime, stage.Difficulty(g.ID(), cfg.Difficulty, runtime))
	g.cols, g.rows = rules.Grid.Cols, rules.Grid.Rows

	// Two cells per tile keep the maze roughly square when there is room.
	g.cellsPerTile = 1
	if runtime.ScreenW >= 2*g.cols {
		g.cellsPerTile = 2
	}
	g.minW, g.minH = g.cols, g.rows+1
	g.tooSmall = runtime.ScreenW < g.minW || runtime.ScreenH < g.minH

	w := g.cols * g.cellsPerTile
	area := core.NewRect(core.Max(0, (runtime.ScreenW-w)/2), 1, w, g.rows)
	g.stage.SetViewport(stage.Fit(rules.Bounds, area))

	g.sprites = map[string]stage.Sprite{
		PlayerArchetype: sprite(cfg.Player.Visual, 'C'),
	}
	for _, gh := range cfg.Ghosts {
		g.sprites[gh.Name] = sprite(gh.Visual, 'M')
	}
	g.frightened = sprite(cfg.Ghost.Frightened, 'm')
	g.wall = sprite(cfg.Wall, '#')
	g.pellet = sprite(cfg.Pellet, '.')
	g.power = sprite(cfg.Power, 'o')
}

func sprite(v config.Visual, fallback rune) stage.Sprite {
	return stage.Sprite{Rune: v.Rune(fallback), Color: core.ParseColor(v.Color)}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	cmds := g.stage.Lifecycle(in)
	if dx, dy := stage.Steer(in); dx != 0 || dy != 0 {
		cmds = append(cmds, sim.SetDirectionXY(dx, dy))
	}
	return g.stage.Step(cmds)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.tooSmall {
		stage.DrawTooSmall(dst, g.minW, g.minH)
		return
	}

	g.drawTiles(dst)
	g.stage.DrawEntities(dst, g.skin)

	sess := g.stage.World().Session()
	left := fmt.Sprintf("Score: %d  Lives: %s  Level: %d  Pellets: %d",
		sess.Score, stage.Bar(sess.Health, sess.MaxHealth, sess.MaxHealth), sess.Level, sess.PelletsLeft)
	right := "arrows steer"
	if sess.Frightened > 0 {
		right = fmt.Sprintf("FRIGHTENED %.1fs", sess.Frightened)
	}
	stage.DrawHUD(dst, left, right)

	g.stage.DrawOverlay(dst, strings.ToUpper(g.Title()))
}

// drawTiles draws walls and pellets. Pellets sit in the cell under the
// tile center.
func (g *Game) drawTiles(dst *core.Screen) {
	area := g.stage.Viewport().Area
	w := g.stage.World()
	k := g.cellsPerTile
	for row := range g.rows {
		for col := range g.cols {
			x, y := area.X+col*k, area.Y+row
			switch w.Tile(col, row) {
			case sim.TileWall:
				for i := range k {
					dst.SetColored(x+i, y, g.wall.Rune, g.wall.Color)
				}
			case sim.TilePellet:
				dst.SetColored(x+k/2, y, g.pellet.Rune, g.pellet.Color)
			case sim.TilePower:
				dst.SetColored(x+k/2, y, g.power.Rune, g.power.Color)
			}
		}
	}
}

func (g *Game) skin(e sim.Entity) (stage.Sprite, bool) {
	if e.Kind == sim.KindHostile && e.Vulnerable {
		return g.frightened, true
	}
	s, ok := g.sprites[e.Archetype]
	return s, ok
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return g.stage.State()
}

// Hash returns a fingerprint of the full world state.
func (g *Game) Hash() uint64 {
	return g.stage.Hash()
}

// Events returns the simulation events of the last step.
func (g *Game) Events() []sim.Event {
	return g.stage.Events()
}

// World exposes the simulated world for tests and headless drivers.
func (g *Game) World() *sim.World {
	return g.stage.World()
}

func init() {
	registry.Register("maze", func() registry.Game {
		return New()
	})
}
