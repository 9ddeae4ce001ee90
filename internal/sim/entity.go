// Package sim implements a deterministic 2D entity simulation loop: movement,
// spawning, collision detection and resolution, entity expiry, and session
// bookkeeping (score, combo, health, levels).
//
// A World is advanced one step at a time with Tick. Callers translate raw input
// into Commands and render from Entities, Session and the returned Events; the
// package itself never performs I/O. All randomness comes from a seeded
// core.SimpleRNG, so identical seeds and command streams give identical worlds.
package sim

import (
	"github.com/vovakirdan/arcade-sim/internal/core"
)

// EntityID identifies an entity within one World. IDs are assigned in
// increasing order and never reused until the world is reset.
type EntityID uint64

// Kind is the gameplay role of an entity.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindHostile
	KindProjectile
	KindPickup
	KindEffect
)

// String returns the kind name used in configs and logs.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindHostile:
		return "hostile"
	case KindProjectile:
		return "projectile"
	case KindPickup:
		return "pickup"
	case KindEffect:
		return "effect"
	default:
		return "unknown"
	}
}

// ShapeKind selects the collision shape.
type ShapeKind uint8

const (
	ShapePoint ShapeKind = iota
	ShapeCircle
	ShapeRect
)

// Shape is a collision shape centered on the entity position.
type Shape struct {
	Kind   ShapeKind
	Radius float64 // ShapeCircle
	W, H   float64 // ShapeRect
}

// Point returns a point shape.
func Point() Shape { return Shape{Kind: ShapePoint} }

// Circle returns a circle shape of radius r.
func Circle(r float64) Shape { return Shape{Kind: ShapeCircle, Radius: r} }

// Box returns an axis-aligned rectangle shape of size w×h.
func Box(w, h float64) Shape { return Shape{Kind: ShapeRect, W: w, H: h} }

// HalfExtents returns half the width and height of the shape's bounding box.
func (s Shape) HalfExtents() (float64, float64) {
	switch s.Kind {
	case ShapeCircle:
		return s.Radius, s.Radius
	case ShapeRect:
		return s.W / 2, s.H / 2
	default:
		return 0, 0
	}
}

// Behavior selects how an entity moves during integration.
type Behavior uint8

const (
	BehaviorBallistic Behavior = iota // velocity plus gravity and spin
	BehaviorSeek                      // steers straight at the player
	BehaviorGrid                      // tile-bound, chases on the grid
	BehaviorStatic                    // never moves
)

// BoundsPolicy decides what happens when an entity leaves the world bounds.
type BoundsPolicy uint8

const (
	BoundsDespawn BoundsPolicy = iota
	BoundsClamp
)

// Entity is a live object in the world. Callers receive copies.
type Entity struct {
	ID        EntityID
	Kind      Kind
	Archetype string
	Variant   int // Index into the archetype's visual variants

	Pos   core.Vec
	Vel   core.Vec
	Shape Shape
	Angle float64 // Orientation in radians
	Spin  float64 // Angular velocity in radians per second

	Health  int
	Potency int
	Reward  int

	TTL    float64 // Seconds left; only counts down when Mortal
	Mortal bool

	// Grid movement state
	Dir     Direction
	NextDir Direction
	Home    core.Vec
	lastCol int
	lastRow int

	// Vulnerable hostiles are eaten on player contact instead of hurting.
	Vulnerable bool

	arch     *Archetype
	source   int  // 1-based spawner index, 0 when not spawned by a spawner
	hit      bool // Strike connected with something
	consumed bool // Removed this tick; ignored by all further interactions
}

// Alive reports whether the entity still takes part in the simulation.
func (e *Entity) Alive() bool {
	return !e.consumed
}

// Bounds returns the entity's axis-aligned bounding box.
func (e *Entity) Bounds() core.RectF {
	hw, hh := e.Shape.HalfExtents()
	return core.RectF{X: e.Pos.X - hw, Y: e.Pos.Y - hh, W: hw * 2, H: hh * 2}
}
