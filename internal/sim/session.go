package sim

import (
	"math"

	"github.com/vovakirdan/arcade-sim/internal/core"
)

// State is the session state machine.
type State uint8

const (
	StateIdle State = iota
	StateRunning
	StatePaused
	StateEnded
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Session is the published scalar state of a world.
type Session struct {
	State       State
	Tick        uint64
	Elapsed     float64
	Score       int
	Combo       int
	Health      int
	MaxHealth   int
	Level       int
	Kills       int
	Frightened  float64 // Seconds of frightened mode left
	PelletsLeft int
}

func (w *World) setState(s State) {
	if w.state == s {
		return
	}
	w.state = s
	w.emit(Event{Type: EventStateChanged, State: s})
}

func (w *World) end() {
	if w.state == StateEnded {
		return
	}
	w.setState(StateEnded)
	w.emit(Event{Type: EventSessionEnded, Amount: w.score})
}

// award adds points to the score. Combo-eligible awards are multiplied by the
// current combo and then extend it. The fractional part of a multiplied award
// is carried into the next one, so the score is the floor of the exact sum.
func (w *World) award(e *Entity, points int, combo bool) {
	if points <= 0 {
		return
	}
	if combo && w.rules.Combo.Enabled {
		exact := float64(points)*(1+float64(w.combo)*w.rules.Combo.Step) + w.scoreFrac
		whole := math.Floor(exact + 1e-9)
		w.scoreFrac = math.Max(0, exact-whole)
		points = int(whole)
		w.combo++
		w.comboIdle = 0
	}
	w.score += points
	ev := Event{Type: EventScored, Amount: points}
	if e != nil {
		ev.Entity, ev.Kind, ev.Archetype, ev.Pos = e.ID, e.Kind, e.Archetype, e.Pos
	}
	w.emit(ev)
}

func (w *World) resetCombo() {
	w.comboIdle = 0
	if w.combo == 0 {
		return
	}
	w.combo = 0
	w.emit(Event{Type: EventComboReset})
}

// hurt lowers health, clamped at zero.
func (w *World) hurt(amount int, lifeLost bool) {
	if amount <= 0 || w.health == 0 {
		return
	}
	if amount > w.health {
		amount = w.health
	}
	w.health -= amount
	ev := Event{Type: EventDamaged, Amount: amount}
	if p := w.player(); p != nil {
		ev.Entity, ev.Kind, ev.Archetype, ev.Pos = p.ID, p.Kind, p.Archetype, p.Pos
	}
	w.emit(ev)
	if lifeLost {
		w.emit(Event{Type: EventLifeLost, Amount: w.health})
	}
}

func (w *World) addResource(i, delta int) {
	r := w.rules.Resources[i]
	v := w.resources[i] + delta
	if r.Max > 0 && v > r.Max {
		v = r.Max
	}
	if v < 0 {
		v = 0
	}
	if v == w.resources[i] {
		return
	}
	w.emit(Event{Type: EventResourceChanged, Resource: r.Name, Amount: v - w.resources[i]})
	w.resources[i] = v
}

// advance runs the end-of-tick bookkeeping: combo decay, frightened mode,
// cooldowns, resource trickle, respawns, level clear and the terminal check.
func (w *World) advance(dt float64) {
	if w.rules.Combo.Enabled && w.combo > 0 {
		w.comboIdle += dt
		if w.rules.Combo.IdleWindow > 0 && w.comboIdle >= w.rules.Combo.IdleWindow {
			w.resetCombo()
		}
	}

	if w.frightened > 0 {
		w.frightened -= dt
		if w.frightened <= 0 {
			w.frightened = 0
			for _, e := range w.entities {
				if e.Kind == KindHostile {
					e.Vulnerable = false
				}
			}
			w.emit(Event{Type: EventFrightenedEnded})
		}
	}

	for i := range w.cooldowns {
		w.cooldowns[i] = math.Max(0, w.cooldowns[i]-dt)
	}

	for i, r := range w.rules.Resources {
		if r.TrickleBelow <= 0 || r.TrickleRate <= 0 || w.resources[i] >= r.TrickleBelow {
			continue
		}
		if w.rng.Float64() < r.TrickleRate*dt {
			w.addResource(i, r.TrickleAmount)
		}
	}

	for _, r := range w.respawns {
		if e := w.spawn(r.archetype, r.home); e != nil {
			e.Home = r.home
		}
	}
	w.respawns = w.respawns[:0]

	w.checkClear()

	if w.health <= 0 {
		w.end()
	}
}

func (w *World) checkClear() {
	c := w.rules.Clear
	switch c.Mode {
	case ClearKills:
		// A clear needs kills made after the previous one.
		if c.KillsPerLevel <= 0 || w.kills <= w.clearKills || w.kills < c.KillsPerLevel*w.level {
			return
		}
		if c.RequireNoHostiles && w.count(KindHostile) > 0 {
			return
		}
		w.clearKills = w.kills
		w.levelUp()
	case ClearTiles:
		if w.grid == nil {
			return
		}
		if w.pelletsLeft > 0 {
			w.clearLatch = false
			return
		}
		if w.clearLatch {
			return
		}
		w.clearLatch = true
		w.levelUp()
		if c.RefillTiles {
			copy(w.grid.tiles, w.rules.Grid.Layout)
			w.pelletsLeft = w.grid.consumables()
			w.clearLatch = false
		}
	}
}

func (w *World) levelUp() {
	c := w.rules.Clear
	w.level++
	w.emit(Event{Type: EventLevelCleared, Amount: w.level})
	for i, r := range w.rules.Resources {
		if r.OnClear != 0 {
			w.addResource(i, r.OnClear)
		}
	}
	w.playerScale += c.PlayerSpeedBump
	w.hostileScale += c.HostileSpeedBump
	if c.ResetPositions {
		w.resetPositions()
	}
}

// resetPositions returns grid-bound entities to their homes and calls off
// frightened mode.
func (w *World) resetPositions() {
	for _, e := range w.entities {
		if !e.Alive() || (e.Kind != KindPlayer && e.arch.Behavior != BehaviorGrid) {
			continue
		}
		e.Pos = e.Home
		e.Dir, e.NextDir = DirNone, DirNone
		e.lastCol, e.lastRow = -1, -1
		e.Vulnerable = false
	}
	if w.frightened > 0 {
		w.frightened = 0
		w.emit(Event{Type: EventFrightenedEnded})
	}
	w.intent = core.Vec{}
	w.playerMoved = false
}
