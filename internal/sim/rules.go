package sim

import "github.com/vovakirdan/arcade-sim/internal/core"

// Range is a closed interval sampled uniformly by spawners.
type Range struct {
	Min, Max float64
}

// Archetype is the template entities are instantiated from.
type Archetype struct {
	Name     string
	Kind     Kind
	Shape    Shape
	Behavior Behavior
	Bounds   BoundsPolicy
	Margin   float64 // Distance beyond the world bounds before despawning

	Health  int
	Potency int
	Reward  int
	TTL     float64 // Seconds; 0 = unbounded
	Gravity float64 // Added to vy every second
	Speed   float64 // Seek, grid and aimed-projectile speed

	VelX, VelY Range // Spawn velocity jitter
	Spin       Range // Spawn angular velocity jitter
	Variants   int   // Number of visual variants picked at random

	// Area effects (explosions) remove every hostile within AreaRadius of
	// their center while alive, when Lethal.
	AreaRadius float64
	Lethal     bool

	// OneShot projectiles kill regardless of health, with the victim's
	// reward multiplied by RewardScale.
	OneShot     bool
	RewardScale int

	Detonate         string // Archetype spawned on hit or expiry
	DetonateOnHit    bool
	DetonateOnExpire bool

	Burst      string // Archetype spawned when this entity is killed
	BurstCount int

	Strike        bool // A strike that expires without hitting resets the combo
	EscapePenalty int  // Health lost when this entity despawns offscreen
	ReturnsHome   bool // Respawns at its home after being eaten
}

// Edge names a side of the world bounds.
type Edge uint8

const (
	EdgeTop Edge = iota
	EdgeBottom
	EdgeLeft
	EdgeRight
)

// SiteKind selects a spawn-site policy.
type SiteKind uint8

const (
	SiteFixed      SiteKind = iota // Always Pos
	SiteRandomLane                 // One of Lanes along Edge
	SiteEdge                       // Uniform in [LaneMin, LaneMax] along Edge
)

// Site describes where a spawner places new entities. Offset moves the
// spawn point perpendicular to the edge; negative values are outside the bounds.
type Site struct {
	Kind    SiteKind
	Pos     core.Vec
	Edge    Edge
	Offset  float64
	Lanes   []float64
	LaneMin float64
	LaneMax float64
}

// WeightedArchetype is one entry of a spawn table.
type WeightedArchetype struct {
	Archetype string
	Weight    int
}

// SpawnerRule configures one spawner.
type SpawnerRule struct {
	Name             string
	Table            []WeightedArchetype
	Interval         float64 // Seconds between spawns
	Decrement        float64 // Interval reduction after each spawn
	MinInterval      float64 // Interval floor
	MaxAlive         int     // 0 = unlimited
	MaxAlivePerLevel int     // Added to MaxAlive per level
	Site             Site
}

// Slot identifies a weapon trigger.
type Slot uint8

const (
	SlotPrimary Slot = iota
	SlotSpecial
	SlotSecondary
)

// String returns the slot name.
func (s Slot) String() string {
	switch s {
	case SlotPrimary:
		return "primary"
	case SlotSpecial:
		return "special"
	case SlotSecondary:
		return "secondary"
	default:
		return "unknown"
	}
}

// FireMode decides the initial velocity of a fired entity.
type FireMode uint8

const (
	FireAimed   FireMode = iota // Toward the aim point at the archetype speed
	FireInPlace                 // At the player position, no velocity
	FireLob                     // Archetype velocity jitter, ignores aim
)

// Weapon binds a trigger slot to an archetype and an ammunition resource.
type Weapon struct {
	Slot      Slot
	Archetype string
	Resource  string // "" = unlimited
	Mode      FireMode
	Muzzle    core.Vec // Offset from the player center
	Cooldown  float64
}

// ResourceRule configures a named counter such as ammo or bombs.
type ResourceRule struct {
	Name          string
	Initial       int
	Max           int // 0 = unbounded
	OnClear       int // Added on level clear
	TrickleBelow  int // Trickle only while below this value (0 = never)
	TrickleAmount int
	TrickleRate   float64 // Expected trickles per second
}

// ContactPolicy decides what a hostile touching the player does.
type ContactPolicy uint8

const (
	ContactIgnore         ContactPolicy = iota // Hostiles pass through the player
	ContactRemoveHostile                       // Hostile is removed, effect spawned
	ContactResetPositions                      // Player and hostiles return home
)

// ContactRule configures hostile × player interactions.
type ContactRule struct {
	Damage int
	Effect string
	Policy ContactPolicy
	// Range, when positive, replaces the shape test with a center
	// distance threshold.
	Range float64
	// EatReward is granted for touching a vulnerable hostile.
	EatReward int
}

// ComboRule configures the streak multiplier.
type ComboRule struct {
	Enabled    bool
	Step       float64 // Multiplier gained per combo step
	IdleWindow float64 // Seconds without a hit before the combo resets
}

// ClearMode selects the level-clear condition.
type ClearMode uint8

const (
	ClearNone ClearMode = iota
	ClearKills
	ClearTiles
)

// ClearRule configures level progression.
type ClearRule struct {
	Mode              ClearMode
	KillsPerLevel     int
	RequireNoHostiles bool
	PlayerSpeedBump   float64 // Added to the player speed scale
	HostileSpeedBump  float64 // Added to the hostile speed scale
	RefillTiles       bool
	ResetPositions    bool
}

// GridRules configures tile-bound movement and consumable tiles.
type GridRules struct {
	Cols, Rows       int
	TileSize         float64
	Layout           []Tile // Row-major, len = Cols*Rows
	PlayerTolerance  float64
	HostileTolerance float64
	PelletReward     int
	PowerReward      int
	FrightenDuration float64
	HostilesWait     bool // Hostiles stay put until the player first moves
}

// Placement puts an entity into the world at construction and reset.
type Placement struct {
	Archetype string
	Pos       core.Vec
	Dir       Direction
}

// PlayerMode selects how the player entity moves.
type PlayerMode uint8

const (
	PlayerFree  PlayerMode = iota // Move intent × speed
	PlayerTrack                   // Jumps to the aim point, keys nudge it
	PlayerGrid                    // Tile-bound heading
)

// Rules is the complete, immutable description of a game for a World.
type Rules struct {
	Bounds  core.RectF
	MaxStep float64 // Largest dt accepted by Tick

	Archetypes  map[string]Archetype
	Player      string
	PlayerStart core.Vec
	PlayerMode  PlayerMode
	DefaultAim  core.Vec // Aim direction used until the first aim command
	Placements  []Placement

	Spawners  []SpawnerRule
	Weapons   []Weapon
	Resources []ResourceRule

	MaxHealth int
	Contact   ContactRule
	Combo     ComboRule
	Clear     ClearRule
	Grid      *GridRules
}
