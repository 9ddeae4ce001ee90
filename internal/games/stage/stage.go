// Package stage connects a sim.World to the arcade platform. It turns
// input frames into simulation commands, paces hostiles by difficulty and
// draws the world into a cell screen. The slicer, maze and shooter games
// are thin layers on top of it.
package stage

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-sim/internal/config"
	"github.com/vovakirdan/arcade-sim/internal/core"
	"github.com/vovakirdan/arcade-sim/internal/sim"
)

// Stage owns one world and the platform state around it.
type Stage struct {
	world      *sim.World
	runtime    core.RuntimeConfig
	difficulty *config.DifficultyManager
	viewport   Viewport
	events     []sim.Event
	pointer    core.Pointer
}

// New builds a stage for rules, seeded from the runtime config.
func New(rules sim.Rules, runtime core.RuntimeConfig, difficulty *config.DifficultyManager) *Stage {
	return &Stage{
		world:      sim.NewWorld(rules, runtime.Seed),
		runtime:    runtime,
		difficulty: difficulty,
		viewport:   Fit(rules.Bounds, core.NewRect(0, 1, runtime.ScreenW, runtime.ScreenH-1)),
	}
}

// World returns the simulated world.
func (s *Stage) World() *sim.World {
	return s.world
}

// Viewport returns the current world-to-screen mapping.
func (s *Stage) Viewport() Viewport {
	return s.viewport
}

// SetViewport replaces the world-to-screen mapping.
func (s *Stage) SetViewport(v Viewport) {
	s.viewport = v
}

// Events returns the events of the last step.
func (s *Stage) Events() []sim.Event {
	return s.events
}

// Lifecycle maps the session keys of a frame to lifecycle commands.
// Confirm or Fire starts an idle session, Pause toggles pause and
// Restart rebuilds a paused or finished session and starts it again.
func (s *Stage) Lifecycle(in core.InputFrame) []sim.Command {
	var cmds []sim.Command
	switch s.world.State() {
	case sim.StateIdle:
		if in.Has(core.ActionConfirm) || in.Has(core.ActionFire) {
			cmds = append(cmds, sim.Start())
		}
	case sim.StateRunning:
		if in.Has(core.ActionPause) {
			cmds = append(cmds, sim.Pause())
		}
	case sim.StatePaused:
		if in.Has(core.ActionRestart) {
			return append(cmds, sim.Reset(), sim.Start())
		}
		if in.Has(core.ActionPause) || in.Has(core.ActionConfirm) {
			cmds = append(cmds, sim.Resume())
		}
	case sim.StateEnded:
		if in.Has(core.ActionRestart) {
			cmds = append(cmds, sim.Reset(), sim.Start())
		}
	}
	return cmds
}

// Steer returns the direction held in a frame as a unit-less axis pair.
func Steer(in core.InputFrame) (float64, float64) {
	var dx, dy float64
	if in.Has(core.ActionLeft) {
		dx--
	}
	if in.Has(core.ActionRight) {
		dx++
	}
	if in.Has(core.ActionUp) {
		dy--
	}
	if in.Has(core.ActionDown) {
		dy++
	}
	return dx, dy
}

// PointerMoved returns the world position of the pointer when it changed
// since the previous call.
func (s *Stage) PointerMoved(in core.InputFrame) (core.Vec, bool) {
	p := in.Pointer
	if !p.Valid || p == s.pointer {
		return core.Vec{}, false
	}
	s.pointer = p
	return s.viewport.ToWorld(p.X, p.Y), true
}

// Step paces the world by difficulty and advances it by one tick.
func (s *Stage) Step(cmds []sim.Command) core.StepResult {
	if s.difficulty != nil {
		sess := s.world.Session()
		s.world.SetPace(s.difficulty.Pace(sess.Score, int(sess.Tick))) //#nosec G115 -- tick counts stay far below MaxInt
	}
	s.events = s.world.Tick(s.runtime.TickSeconds(), cmds...)
	return core.StepResult{State: s.State()}
}

// State converts the session into the platform game state.
func (s *Stage) State() core.GameState {
	sess := s.world.Session()
	return core.GameState{
		Score:    sess.Score,
		Level:    sess.Level,
		Health:   sess.Health,
		Ticks:    int(sess.Tick), //#nosec G115 -- tick counts stay far below MaxInt
		Started:  sess.State != sim.StateIdle,
		GameOver: sess.State == sim.StateEnded,
		Paused:   sess.State == sim.StatePaused,
	}
}

// Snapshot returns the full world state.
func (s *Stage) Snapshot() sim.Snapshot {
	return s.world.Snapshot()
}

// Hash returns the hash of the full world state.
func (s *Stage) Hash() uint64 {
	return s.world.Snapshot().Hash()
}

// Difficulty applies the runtime difficulty preset to d and returns the
// manager that paces the world. Unknown presets are logged and ignored.
func Difficulty(game string, d config.DifficultyConfig, runtime core.RuntimeConfig) *config.DifficultyManager {
	preset, err := config.ParsePreset(runtime.Difficulty)
	if err != nil {
		log.Warn("ignoring difficulty preset", "game", game, "err", err)
	}
	config.ApplyPreset(&d, preset)
	return config.NewDifficultyManager(d)
}

// ConfigFallback logs a config load failure; callers continue with the
// hardcoded defaults.
func ConfigFallback(game string, err error) {
	log.Warn("using default config", "game", game, "err", err)
}
