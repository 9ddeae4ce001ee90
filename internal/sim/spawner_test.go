package sim

import (
	"slices"
	"testing"

	"github.com/vovakirdan/arcade-sim/internal/core"
)

func quarryRules(spawner SpawnerRule) Rules {
	return Rules{
		Bounds:  core.NewRectF(0, 0, 100, 100),
		MaxStep: 1,
		Archetypes: map[string]Archetype{
			"hero":   {Kind: KindPlayer, Shape: Point(), Bounds: BoundsClamp},
			"rock":   {Kind: KindHostile, Shape: Circle(1), Behavior: BehaviorStatic, Health: 1, Margin: 100},
			"pebble": {Kind: KindHostile, Shape: Circle(1), Behavior: BehaviorStatic, Health: 1, Margin: 100},
		},
		Player:    "hero",
		MaxHealth: 1,
		Spawners:  []SpawnerRule{spawner},
	}
}

func spawnTicks(w *World, ticks int, dt float64) []int {
	var at []int
	for i := 1; i <= ticks; i++ {
		if Count(w.Tick(dt), EventSpawned) > 0 {
			at = append(at, i)
		}
	}
	return at
}

func TestSpawnerCadenceTightens(t *testing.T) {
	w := NewWorld(quarryRules(SpawnerRule{
		Table:       []WeightedArchetype{{Archetype: "rock", Weight: 1}},
		Interval:    1,
		Decrement:   0.25,
		MinInterval: 0.5,
		Site:        Site{Kind: SiteFixed, Pos: core.V(50, 50)},
	}), 1)
	w.Tick(0, Start())

	got := spawnTicks(w, 13, 0.25)
	expected := []int{4, 7, 9, 11, 13}
	if !slices.Equal(got, expected) {
		t.Errorf("spawn ticks = %v, expected %v", got, expected)
	}
	if got := w.Snapshot().Spawners[0].Interval; got != 0.5 {
		t.Errorf("Interval = %v, expected 0.5", got)
	}
}

func TestSpawnerCapHoldsTimer(t *testing.T) {
	w := NewWorld(quarryRules(SpawnerRule{
		Table:    []WeightedArchetype{{Archetype: "rock", Weight: 1}},
		Interval: 1,
		MaxAlive: 2,
		Site:     Site{Kind: SiteFixed, Pos: core.V(50, 50)},
	}), 1)
	w.Tick(0, Start())

	got := spawnTicks(w, 16, 0.25)
	if expected := []int{4, 8}; !slices.Equal(got, expected) {
		t.Errorf("spawn ticks = %v, expected %v", got, expected)
	}
	if got := w.Snapshot().Spawners[0].Timer; got != 2 {
		t.Errorf("Timer = %v, expected 2", got)
	}
}

func TestSpawnerCapGrowsWithLevel(t *testing.T) {
	rules := quarryRules(SpawnerRule{
		Table:            []WeightedArchetype{{Archetype: "rock", Weight: 1}},
		Interval:         0.25,
		MaxAlive:         1,
		MaxAlivePerLevel: 2,
		Site:             Site{Kind: SiteFixed, Pos: core.V(50, 50)},
	})
	w := NewWorld(rules, 1)
	w.Tick(0, Start())
	spawnTicks(w, 20, 0.25)

	// Level 1: 1 + 2*1.
	if got := len(w.Entities()) - 1; got != 3 {
		t.Errorf("alive rocks = %d, expected 3", got)
	}
}

func TestSpawnerRandomLane(t *testing.T) {
	lanes := []float64{10, 20, 30}
	w := NewWorld(quarryRules(SpawnerRule{
		Table:    []WeightedArchetype{{Archetype: "rock", Weight: 1}, {Archetype: "pebble", Weight: 0}},
		Interval: 0.25,
		Site:     Site{Kind: SiteRandomLane, Edge: EdgeTop, Offset: -50, Lanes: lanes},
	}), 3)
	w.Tick(0, Start())
	spawnTicks(w, 40, 0.25)

	rocks := 0
	for _, e := range w.Entities() {
		if e.Kind != KindHostile {
			continue
		}
		if e.Archetype != "rock" {
			t.Errorf("spawned %q from a zero-weight entry", e.Archetype)
		}
		if e.Pos.Y != -50 || !slices.Contains(lanes, e.Pos.X) {
			t.Errorf("spawned at %v, expected y=-50 on a lane", e.Pos)
		}
		rocks++
	}
	if rocks != 40 {
		t.Errorf("rocks = %d, expected 40", rocks)
	}
}

func TestSpawnerEdgeRange(t *testing.T) {
	w := NewWorld(quarryRules(SpawnerRule{
		Table:    []WeightedArchetype{{Archetype: "rock", Weight: 1}},
		Interval: 0.25,
		Site:     Site{Kind: SiteEdge, Edge: EdgeRight, Offset: 5, LaneMin: 20, LaneMax: 80},
	}), 11)
	w.Tick(0, Start())
	spawnTicks(w, 30, 0.25)

	for _, e := range w.Entities() {
		if e.Kind != KindHostile {
			continue
		}
		if e.Pos.X != 95 || e.Pos.Y < 20 || e.Pos.Y >= 80 {
			t.Errorf("spawned at %v, expected x=95 and 20 <= y < 80", e.Pos)
		}
	}
}

func TestSpawnerSameSeedSameWorld(t *testing.T) {
	rule := SpawnerRule{
		Table:    []WeightedArchetype{{Archetype: "rock", Weight: 3}, {Archetype: "pebble", Weight: 1}},
		Interval: 0.25,
		Site:     Site{Kind: SiteEdge, Edge: EdgeTop, LaneMin: 0, LaneMax: 100},
	}
	a := NewWorld(quarryRules(rule), 5)
	b := NewWorld(quarryRules(rule), 5)
	a.Tick(0, Start())
	b.Tick(0, Start())
	spawnTicks(a, 50, 0.25)
	spawnTicks(b, 50, 0.25)

	if a.Snapshot().Hash() != b.Snapshot().Hash() {
		t.Error("identical seeds produced different worlds")
	}
}
