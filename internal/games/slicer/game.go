// Package slicer implements a fruit slicing game.
// Fruit is tossed in from above the screen; the player slices it with a
// blade that follows the mouse or the arrow keys. Consecutive slices build
// a combo multiplier, and every fruit that falls away costs a life.
package slicer

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/arcade-sim/internal/config"
	"github.com/vovakirdan/arcade-sim/internal/core"
	"github.com/vovakirdan/arcade-sim/internal/games/stage"
	"github.com/vovakirdan/arcade-sim/internal/registry"
	"github.com/vovakirdan/arcade-sim/internal/sim"
)

// Minimum terminal size.
const (
	MinScreenW = 40
	MinScreenH = 12
)

// Game implements the fruit slicer on top of the simulation core.
type Game struct {
	cfg      config.SlicerConfig
	stage    *stage.Stage
	sprites  map[string]stage.Sprite
	tooSmall bool
}

// New creates a new slicer game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "slicer"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Fruit Slicer"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	cfg, err := config.LoadSlicer(runtime.ConfigPath)
	if err != nil {
		stage.ConfigFallback(g.ID(), err)
		cfg = config.DefaultSlicerConfig()
	}
	g.cfg = cfg
	g.stage = stage.New(Rules(cfg), runtime, stage.Difficulty(g.ID(), cfg.Difficulty, runtime))
	g.tooSmall = runtime.ScreenW < MinScreenW || runtime.ScreenH < MinScreenH

	g.sprites = map[string]stage.Sprite{
		BladeArchetype: sprite(cfg.Cursor.Visual, '+'),
	}
	for _, v := range cfg.Varieties {
		s := sprite(v.Visual, 'o')
		g.sprites[v.Name] = s
		g.sprites[juicePrefix+v.Name] = stage.Sprite{Rune: '.', Color: s.Color}
	}
}

func sprite(v config.Visual, fallback rune) stage.Sprite {
	return stage.Sprite{Rune: v.Rune(fallback), Color: core.ParseColor(v.Color)}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	cmds := g.stage.Lifecycle(in)
	if p, ok := g.stage.PointerMoved(in); ok {
		cmds = append(cmds, sim.AimAt(p))
	}
	cmds = append(cmds, sim.Move(stage.Steer(in)))
	if in.Has(core.ActionFire) {
		cmds = append(cmds, sim.Fire())
	}
	return g.stage.Step(cmds)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.tooSmall {
		stage.DrawTooSmall(dst, MinScreenW, MinScreenH)
		return
	}

	g.stage.DrawEntities(dst, g.skin)

	sess := g.stage.World().Session()
	left := fmt.Sprintf("Score: %d  Combo: x%d  Lives: %s  Level: %d",
		sess.Score, sess.Combo, stage.Bar(sess.Health, sess.MaxHealth, sess.MaxHealth), sess.Level)
	stage.DrawHUD(dst, left, "mouse/arrows move  space slice")

	g.stage.DrawOverlay(dst, strings.ToUpper(g.Title()))
}

func (g *Game) skin(e sim.Entity) (stage.Sprite, bool) {
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
	registry.Register("slicer", func() registry.Game {
		return New()
	})
}
