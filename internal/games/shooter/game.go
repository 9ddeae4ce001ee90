// Package shooter implements a side-scrolling shooter.
// Enemies enter from the right and home in on the ship. The ship fires
// aimed bullets, lobs bombs and launches missiles that clear a wide area,
// and every cleared wave restocks ammunition.
package shooter

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

// Game implements the shooter on top of the simulation core.
type Game struct {
	cfg      config.ShooterConfig
	stage    *stage.Stage
	sprites  map[string]stage.Sprite
	tooSmall bool
}

// New creates a new shooter game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "shooter"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Sky Shooter"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	cfg, err := config.LoadShooter(runtime.ConfigPath)
	if err != nil {
		stage.ConfigFallback(g.ID(), err)
		cfg = config.DefaultShooterConfig()
	}
	g.cfg = cfg
	g.stage = stage.New(Rules(cfg), runtime, stage.Difficulty(g.ID(), cfg.Difficulty, runtime))
	g.tooSmall = runtime.ScreenW < MinScreenW || runtime.ScreenH < MinScreenH

	blast := sprite(cfg.Explosion.Visual, '*')
	blast.Outline = true
	harmless := sprite(cfg.Explosion.Harmless, '+')
	harmless.Outline = true
	g.sprites = map[string]stage.Sprite{
		ShipArchetype:    sprite(cfg.Player.Visual, 'A'),
		BulletArchetype:  sprite(cfg.Bullet.Visual, '.'),
		MissileArchetype: sprite(cfg.Missile.Visual, '!'),
		BombArchetype:    sprite(cfg.Bomb.Visual, 'Q'),
		BlastArchetype:   blast,
		BoomArchetype:    blast,
		SparkArchetype:   harmless,
		FlashArchetype:   harmless,
	}
	for _, e := range cfg.Enemies {
		g.sprites[e.Name] = sprite(e.Visual, 'W')
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
	if in.Has(core.ActionSpecial) {
		cmds = append(cmds, sim.Special())
	}
	if in.Has(core.ActionSecondary) {
		cmds = append(cmds, sim.Secondary())
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

	w := g.stage.World()
	sess := w.Session()
	left := fmt.Sprintf("Score: %d  Wave: %d  Hull: %s  Ammo: %d  Bombs: %d  Missiles: %d",
		sess.Score, sess.Level, stage.Bar(sess.Health, sess.MaxHealth, 10),
		w.Resource(Ammo), w.Resource(Bombs), w.Resource(Missiles))
	stage.DrawHUD(dst, left, "space fire  b bomb  m missile")

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
	registry.Register("shooter", func() registry.Game {
		return New()
	})
}
