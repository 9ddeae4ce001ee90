package sim

import "math"

// EntityState is the flattened form of an entity inside a Snapshot.
type EntityState struct {
	ID         EntityID
	Kind       Kind
	Archetype  string
	Variant    int
	X, Y       float64
	VX, VY     float64
	Angle      float64
	Spin       float64
	Health     int
	TTL        float64
	Dir        Direction
	NextDir    Direction
	HomeX      float64
	HomeY      float64
	LastCol    int
	LastRow    int
	Vulnerable bool
	Struck     bool
}

// ResourceState is one named resource counter.
type ResourceState struct {
	Name  string
	Value int
}

// RespawnState is a hostile waiting to come back at its home tile.
type RespawnState struct {
	Archetype string
	X, Y      float64
}

// SpawnerState is the cadence state of one spawner.
type SpawnerState struct {
	Timer    float64
	Interval float64
}

// Snapshot contains the complete world state for replays and tests.
// Uses primitive types only for stable serialization.
type Snapshot struct {
	Tick       uint64
	Elapsed    float64
	State      State
	Score      int
	ScoreFrac  float64
	Combo      int
	ComboIdle  float64
	Health     int
	Level      int
	Kills      int
	Frightened float64

	Resources []ResourceState
	Spawners  []SpawnerState
	Cooldowns [3]float64
	Entities  []EntityState

	Tiles       []Tile
	PelletsLeft int
	ClearLatch  bool
	ClearKills  int
	Respawns    []RespawnState

	PlayerScale  float64
	HostileScale float64
	Pace         float64

	// Player input carried between ticks
	IntentX, IntentY float64
	AimX, AimY       float64
	AimSet           bool
	AimDirX, AimDirY float64
	PlayerMoved      bool

	NextID   EntityID
	RNGState uint64
}

// Snapshot returns the current world state.
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		Tick:         w.tick,
		Elapsed:      w.elapsed,
		State:        w.state,
		Score:        w.score,
		ScoreFrac:    w.scoreFrac,
		Combo:        w.combo,
		ComboIdle:    w.comboIdle,
		Health:       w.health,
		Level:        w.level,
		Kills:        w.kills,
		Frightened:   w.frightened,
		Cooldowns:    w.cooldowns,
		PelletsLeft:  w.pelletsLeft,
		ClearLatch:   w.clearLatch,
		ClearKills:   w.clearKills,
		PlayerScale:  w.playerScale,
		HostileScale: w.hostileScale,
		Pace:         w.pace,
		IntentX:      w.intent.X,
		IntentY:      w.intent.Y,
		AimX:         w.aim.X,
		AimY:         w.aim.Y,
		AimSet:       w.aimSet,
		AimDirX:      w.aimDir.X,
		AimDirY:      w.aimDir.Y,
		PlayerMoved:  w.playerMoved,
		NextID:       w.nextID,
		RNGState:     w.rng.State(),
	}
	for i, r := range w.rules.Resources {
		s.Resources = append(s.Resources, ResourceState{Name: r.Name, Value: w.resources[i]})
	}
	for _, sp := range w.spawners {
		s.Spawners = append(s.Spawners, SpawnerState{Timer: sp.timer, Interval: sp.interval})
	}
	for _, e := range w.entities {
		if !e.Alive() {
			continue
		}
		s.Entities = append(s.Entities, EntityState{
			ID:         e.ID,
			Kind:       e.Kind,
			Archetype:  e.Archetype,
			Variant:    e.Variant,
			X:          e.Pos.X,
			Y:          e.Pos.Y,
			VX:         e.Vel.X,
			VY:         e.Vel.Y,
			Angle:      e.Angle,
			Spin:       e.Spin,
			Health:     e.Health,
			TTL:        e.TTL,
			Dir:        e.Dir,
			NextDir:    e.NextDir,
			HomeX:      e.Home.X,
			HomeY:      e.Home.Y,
			LastCol:    e.lastCol,
			LastRow:    e.lastRow,
			Vulnerable: e.Vulnerable,
			Struck:     e.hit,
		})
	}
	for _, r := range w.respawns {
		s.Respawns = append(s.Respawns, RespawnState{Archetype: r.archetype, X: r.home.X, Y: r.home.Y})
	}
	if w.grid != nil {
		s.Tiles = append([]Tile(nil), w.grid.tiles...)
	}
	return s
}

// Hash returns a deterministic hash of the snapshot for replay verification.
func (s Snapshot) Hash() uint64 {
	var h uint64 = 17
	mix := func(v uint64) { h = h*31 + v }
	mixf := func(f float64) { mix(math.Float64bits(f)) }
	mixi := func(i int) { mix(uint64(i)) } //#nosec G115 -- hash computation
	mixb := func(b bool) {
		if b {
			mix(1)
		} else {
			mix(0)
		}
	}
	mixs := func(str string) {
		for _, c := range str {
			mix(uint64(c)) //#nosec G115 -- hash computation
		}
	}

	mix(s.Tick)
	mixf(s.Elapsed)
	mix(uint64(s.State))
	mixi(s.Score)
	mixf(s.ScoreFrac)
	mixi(s.Combo)
	mixf(s.ComboIdle)
	mixi(s.Health)
	mixi(s.Level)
	mixi(s.Kills)
	mixf(s.Frightened)

	for _, r := range s.Resources {
		mixs(r.Name)
		mixi(r.Value)
	}
	for _, sp := range s.Spawners {
		mixf(sp.Timer)
		mixf(sp.Interval)
	}
	for _, c := range s.Cooldowns {
		mixf(c)
	}
	for _, e := range s.Entities {
		mix(uint64(e.ID))
		mix(uint64(e.Kind))
		mixs(e.Archetype)
		mixi(e.Variant)
		mixf(e.X)
		mixf(e.Y)
		mixf(e.VX)
		mixf(e.VY)
		mixf(e.Angle)
		mixf(e.Spin)
		mixi(e.Health)
		mixf(e.TTL)
		mix(uint64(e.Dir))
		mix(uint64(e.NextDir))
		mixf(e.HomeX)
		mixf(e.HomeY)
		mixi(e.LastCol)
		mixi(e.LastRow)
		mixb(e.Vulnerable)
		mixb(e.Struck)
	}
	for _, t := range s.Tiles {
		mix(uint64(t))
	}
	mixi(s.PelletsLeft)
	mixb(s.ClearLatch)
	mixi(s.ClearKills)
	for _, r := range s.Respawns {
		mixs(r.Archetype)
		mixf(r.X)
		mixf(r.Y)
	}
	mixf(s.PlayerScale)
	mixf(s.HostileScale)
	mixf(s.Pace)
	mixf(s.IntentX)
	mixf(s.IntentY)
	mixf(s.AimX)
	mixf(s.AimY)
	mixb(s.AimSet)
	mixf(s.AimDirX)
	mixf(s.AimDirY)
	mixb(s.PlayerMoved)
	mix(uint64(s.NextID))
	mix(s.RNGState)
	return h
}
