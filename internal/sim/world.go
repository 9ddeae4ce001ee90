package sim

import (
	"math"

	"github.com/vovakirdan/arcade-sim/internal/core"
)

type spawnerState struct {
	timer    float64
	interval float64
}

type respawn struct {
	archetype string
	home      core.Vec
}

// World owns every entity and the session state of one game instance.
// It is not safe for concurrent use; run one World per session.
type World struct {
	rules Rules
	archs map[string]*Archetype
	seed  int64

	rng      *core.SimpleRNG
	state    State
	tick     uint64
	elapsed  float64
	entities []*Entity // Ascending ID
	nextID   EntityID
	playerID EntityID

	score     int
	scoreFrac float64 // Fraction of a point carried by combo awards
	combo     int
	comboIdle float64
	health    int
	level     int
	kills     int

	resources []int
	spawners  []spawnerState
	cooldowns [3]float64

	grid        *grid
	pelletsLeft int
	clearLatch  bool
	clearKills  int // Kills at the last kills-mode clear
	frightened  float64
	respawns    []respawn

	playerScale  float64
	hostileScale float64
	pace         float64

	intent      core.Vec
	aim         core.Vec
	aimSet      bool
	aimDir      core.Vec
	playerMoved bool

	events []Event
}

// NewWorld builds a world in the Idle state. The same rules and seed always
// produce the same world.
func NewWorld(rules Rules, seed int64) *World {
	w := &World{
		rules: rules,
		archs: make(map[string]*Archetype, len(rules.Archetypes)),
		seed:  seed,
	}
	for name, a := range rules.Archetypes {
		a.Name = name
		w.archs[name] = &a
	}
	w.init()
	w.events = nil
	return w
}

// init rebuilds the initial world: entities, counters, RNG and ID sequence.
func (w *World) init() {
	r := &w.rules
	w.rng = core.NewSimpleRNG(w.seed)
	w.state = StateIdle
	w.tick = 0
	w.elapsed = 0
	w.entities = nil
	w.nextID = 0
	w.playerID = 0

	w.score, w.scoreFrac = 0, 0
	w.combo, w.comboIdle = 0, 0
	w.health = r.MaxHealth
	w.level = 1
	w.kills = 0

	w.resources = make([]int, len(r.Resources))
	for i, res := range r.Resources {
		w.resources[i] = res.Initial
	}
	w.spawners = make([]spawnerState, len(r.Spawners))
	for i, s := range r.Spawners {
		w.spawners[i] = spawnerState{interval: s.Interval}
	}
	w.cooldowns = [3]float64{}

	w.grid = nil
	w.pelletsLeft = 0
	if r.Grid != nil {
		w.grid = newGrid(r.Grid)
		w.pelletsLeft = w.grid.consumables()
	}
	w.clearLatch = false
	w.clearKills = 0
	w.frightened = 0
	w.respawns = nil

	w.playerScale, w.hostileScale, w.pace = 1, 1, 1
	w.intent = core.Vec{}
	w.aim = core.Vec{}
	w.aimSet = false
	w.aimDir = r.DefaultAim.Norm()
	if w.aimDir.IsZero() {
		w.aimDir = core.V(1, 0)
	}
	w.playerMoved = false

	if p := w.spawn(r.Player, r.PlayerStart); p != nil {
		w.playerID = p.ID
	}
	for _, pl := range r.Placements {
		if e := w.spawn(pl.Archetype, pl.Pos); e != nil {
			e.Dir = pl.Dir
		}
	}
}

// Tick applies cmds and, while running, advances the world by dt seconds.
// It returns everything that happened, in order.
func (w *World) Tick(dt float64, cmds ...Command) []Event {
	w.events = nil
	for _, c := range cmds {
		w.apply(c)
	}
	if w.state != StateRunning {
		return w.flush()
	}

	if math.IsNaN(dt) || dt < 0 {
		dt = 0
	}
	if w.rules.MaxStep > 0 && dt > w.rules.MaxStep {
		dt = w.rules.MaxStep
	}
	w.tick++
	w.elapsed += dt

	w.integrate(dt)
	w.runSpawners(dt)
	w.resolve()
	w.expire(dt)
	w.advance(dt)
	w.compact()
	return w.flush()
}

func (w *World) flush() []Event {
	ev := w.events
	w.events = nil
	return ev
}

func (w *World) emit(e Event) {
	w.events = append(w.events, e)
}

func (w *World) apply(c Command) {
	switch c.Type {
	case CmdStart:
		if w.state == StateIdle {
			w.setState(StateRunning)
		}
		return
	case CmdPause:
		if w.state == StateRunning {
			w.setState(StatePaused)
		}
		return
	case CmdResume:
		if w.state == StatePaused {
			w.setState(StateRunning)
		}
		return
	case CmdReset:
		was := w.state
		mark := len(w.events)
		w.init()
		// Spawns of the rebuilt world are not reported.
		w.events = w.events[:mark]
		if was != StateIdle {
			w.emit(Event{Type: EventStateChanged, State: StateIdle})
		}
		return
	case CmdEnd:
		if w.state == StateRunning || w.state == StatePaused {
			w.end()
		}
		return
	}

	if w.state != StateRunning {
		return
	}
	p := w.player()
	switch c.Type {
	case CmdMove:
		w.intent = core.V(core.ClampF(c.X, -1, 1), core.ClampF(c.Y, -1, 1))
		if w.intent.IsZero() {
			return
		}
		w.playerMoved = true
		if p != nil && w.rules.PlayerMode == PlayerGrid {
			p.NextDir = DirectionFromXY(c.X, c.Y)
		}
	case CmdAimAt:
		w.aim = core.V(c.X, c.Y)
		w.aimSet = true
		if p != nil && w.rules.PlayerMode == PlayerTrack {
			p.Pos = w.aim
			w.clamp(p)
		}
	case CmdAimDirection:
		d := core.V(c.X, c.Y).Norm()
		if !d.IsZero() {
			w.aimDir = d
			w.aimSet = false
		}
	case CmdSetDirection:
		if p != nil && c.Dir != DirNone {
			p.NextDir = c.Dir
			w.playerMoved = true
		}
	case CmdFire:
		w.fire(SlotPrimary)
	case CmdSpecial:
		w.fire(SlotSpecial)
	case CmdSecondary:
		w.fire(SlotSecondary)
	}
}

// fire launches the weapon bound to slot. Missing weapons, cooldowns and
// exhausted resources are silent no-ops.
func (w *World) fire(slot Slot) {
	var wp *Weapon
	for i := range w.rules.Weapons {
		if w.rules.Weapons[i].Slot == slot {
			wp = &w.rules.Weapons[i]
			break
		}
	}
	if wp == nil || w.cooldowns[slot] > 0 {
		return
	}
	a := w.archs[wp.Archetype]
	p := w.player()
	if a == nil || p == nil {
		return
	}
	if wp.Resource != "" {
		i := w.resourceIndex(wp.Resource)
		if i < 0 || w.resources[i] <= 0 {
			return
		}
		w.addResource(i, -1)
	}

	origin := p.Pos.Add(wp.Muzzle)
	e := w.spawn(wp.Archetype, origin)
	switch wp.Mode {
	case FireAimed:
		dir := w.aimDir
		if w.aimSet {
			if d := w.aim.Sub(origin).Norm(); !d.IsZero() {
				dir = d
			}
		}
		e.Vel = dir.Scale(a.Speed)
		e.Angle = math.Atan2(dir.Y, dir.X)
	case FireInPlace:
		e.Vel = core.Vec{}
	case FireLob:
		// Spawn jitter already set the velocity.
	}
	w.cooldowns[slot] = wp.Cooldown
}

// spawn instantiates archetype name at pos, drawing jitter from the world RNG
// in a fixed order: vx, vy, spin, variant.
func (w *World) spawn(name string, pos core.Vec) *Entity {
	a := w.archs[name]
	if a == nil {
		return nil
	}
	w.nextID++
	e := &Entity{
		ID:        w.nextID,
		Kind:      a.Kind,
		Archetype: a.Name,
		Pos:       pos,
		Shape:     a.Shape,
		Health:    a.Health,
		Potency:   a.Potency,
		Reward:    a.Reward,
		TTL:       a.TTL,
		Mortal:    a.TTL > 0,
		Home:      pos,
		lastCol:   -1,
		lastRow:   -1,
		arch:      a,
	}
	e.Vel = core.V(w.sample(a.VelX), w.sample(a.VelY))
	e.Spin = w.sample(a.Spin)
	if a.Variants > 1 {
		e.Variant = w.rng.Intn(a.Variants)
	}
	w.entities = append(w.entities, e)
	w.emit(Event{Type: EventSpawned, Entity: e.ID, Kind: e.Kind, Archetype: e.Archetype, Pos: e.Pos})
	return e
}

// sample draws from r; degenerate ranges do not consume randomness.
func (w *World) sample(r Range) float64 {
	if r.Max <= r.Min {
		return r.Min
	}
	return w.rng.Range(r.Min, r.Max)
}

// remove marks e consumed and reports whether this call did it. Every reward
// and penalty tied to a removal is gated on this result.
func (w *World) remove(e *Entity, cause Cause) bool {
	if e.consumed {
		return false
	}
	e.consumed = true
	w.emit(Event{Type: EventRemoved, Entity: e.ID, Kind: e.Kind, Archetype: e.Archetype, Pos: e.Pos, Cause: cause})
	return true
}

func (w *World) compact() {
	live := w.entities[:0]
	for _, e := range w.entities {
		if e.Alive() {
			live = append(live, e)
		}
	}
	for i := len(live); i < len(w.entities); i++ {
		w.entities[i] = nil
	}
	w.entities = live
}

func (w *World) player() *Entity {
	if w.playerID == 0 {
		return nil
	}
	for _, e := range w.entities {
		if e.ID == w.playerID {
			if e.Alive() {
				return e
			}
			return nil
		}
	}
	return nil
}

func (w *World) count(k Kind) int {
	n := 0
	for _, e := range w.entities {
		if e.Kind == k && e.Alive() {
			n++
		}
	}
	return n
}

func (w *World) resourceIndex(name string) int {
	for i, r := range w.rules.Resources {
		if r.Name == name {
			return i
		}
	}
	return -1
}

// SetPace scales hostile speed on top of the level bumps. Non-positive values
// reset it to 1.
func (w *World) SetPace(f float64) {
	if f <= 0 || math.IsNaN(f) {
		f = 1
	}
	w.pace = f
}

// State returns the session state.
func (w *World) State() State {
	return w.state
}

// Entities returns copies of all live entities in ascending ID order.
func (w *World) Entities() []Entity {
	out := make([]Entity, 0, len(w.entities))
	for _, e := range w.entities {
		if e.Alive() {
			out = append(out, *e)
		}
	}
	return out
}

// Player returns a copy of the player entity.
func (w *World) Player() (Entity, bool) {
	p := w.player()
	if p == nil {
		return Entity{}, false
	}
	return *p, true
}

// Session returns the session scalars.
func (w *World) Session() Session {
	return Session{
		State:       w.state,
		Tick:        w.tick,
		Elapsed:     w.elapsed,
		Score:       w.score,
		Combo:       w.combo,
		Health:      w.health,
		MaxHealth:   w.rules.MaxHealth,
		Level:       w.level,
		Kills:       w.kills,
		Frightened:  w.frightened,
		PelletsLeft: w.pelletsLeft,
	}
}

// Resource returns the value of the named resource, or 0 when unknown.
func (w *World) Resource(name string) int {
	if i := w.resourceIndex(name); i >= 0 {
		return w.resources[i]
	}
	return 0
}

// Tile returns the tile at (col, row). Worlds without a grid, and cells
// outside it, report walls.
func (w *World) Tile(col, row int) Tile {
	if w.grid == nil {
		return TileWall
	}
	return w.grid.at(col, row)
}
