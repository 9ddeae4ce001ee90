package sim

import "github.com/vovakirdan/arcade-sim/internal/core"

// EventType enumerates what can happen during a tick.
type EventType uint8

const (
	EventSpawned EventType = iota
	EventRemoved
	EventDamaged
	EventScored
	EventComboReset
	EventTileConsumed
	EventFrightened
	EventFrightenedEnded
	EventLifeLost
	EventResourceChanged
	EventLevelCleared
	EventStateChanged
	EventSessionEnded
)

// String returns the event name used in logs.
func (t EventType) String() string {
	switch t {
	case EventSpawned:
		return "spawned"
	case EventRemoved:
		return "removed"
	case EventDamaged:
		return "damaged"
	case EventScored:
		return "scored"
	case EventComboReset:
		return "combo_reset"
	case EventTileConsumed:
		return "tile_consumed"
	case EventFrightened:
		return "frightened"
	case EventFrightenedEnded:
		return "frightened_ended"
	case EventLifeLost:
		return "life_lost"
	case EventResourceChanged:
		return "resource_changed"
	case EventLevelCleared:
		return "level_cleared"
	case EventStateChanged:
		return "state_changed"
	case EventSessionEnded:
		return "session_ended"
	default:
		return "unknown"
	}
}

// Cause explains why an entity was removed.
type Cause uint8

const (
	CauseNone Cause = iota
	CauseKilled
	CauseConsumed
	CauseContact
	CauseExpired
	CauseOffscreen
	CauseAreaEffect
	CauseEaten
	CauseCollected
)

// String returns the cause name used in logs.
func (c Cause) String() string {
	switch c {
	case CauseKilled:
		return "killed"
	case CauseConsumed:
		return "consumed"
	case CauseContact:
		return "contact"
	case CauseExpired:
		return "expired"
	case CauseOffscreen:
		return "offscreen"
	case CauseAreaEffect:
		return "area_effect"
	case CauseEaten:
		return "eaten"
	case CauseCollected:
		return "collected"
	default:
		return "none"
	}
}

// Event is one thing that happened during a tick. Fields that do not apply to
// the event type are left zero.
type Event struct {
	Type      EventType
	Entity    EntityID
	Kind      Kind
	Archetype string
	Pos       core.Vec
	Cause     Cause
	Amount    int    // Score delta, damage, resource delta, level
	Resource  string // EventResourceChanged
	State     State  // EventStateChanged
	Col, Row  int    // EventTileConsumed
	Tile      Tile   // EventTileConsumed
}

// Count returns how many events of type t are in events.
func Count(events []Event, t EventType) int {
	n := 0
	for _, e := range events {
		if e.Type == t {
			n++
		}
	}
	return n
}
