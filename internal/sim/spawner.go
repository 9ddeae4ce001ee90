package sim

import (
	"math"

	"github.com/vovakirdan/arcade-sim/internal/core"
)

// runSpawners advances every spawner timer and spawns at most one entity per
// spawner per tick. A spawner at its cap keeps its timer so it fires as soon
// as room frees up.
func (w *World) runSpawners(dt float64) {
	for i := range w.rules.Spawners {
		rule := &w.rules.Spawners[i]
		st := &w.spawners[i]
		st.timer += dt
		if st.timer < st.interval {
			continue
		}
		if rule.MaxAlive > 0 && w.aliveFrom(i+1) >= rule.MaxAlive+rule.MaxAlivePerLevel*w.level {
			continue
		}
		name := w.pick(rule.Table)
		a := w.archs[name]
		if a == nil {
			continue
		}
		pos := w.site(rule.Site)
		if e := w.spawn(name, pos); e != nil {
			e.source = i + 1
		}
		st.timer = 0
		st.interval = math.Max(rule.MinInterval, st.interval-rule.Decrement)
	}
}

func (w *World) aliveFrom(source int) int {
	n := 0
	for _, e := range w.entities {
		if e.source == source && e.Alive() {
			n++
		}
	}
	return n
}

// pick draws an archetype from a weighted table.
func (w *World) pick(table []WeightedArchetype) string {
	total := 0
	for _, t := range table {
		if t.Weight > 0 {
			total += t.Weight
		}
	}
	if total == 0 {
		return ""
	}
	r := w.rng.Intn(total)
	for _, t := range table {
		if t.Weight <= 0 {
			continue
		}
		if r < t.Weight {
			return t.Archetype
		}
		r -= t.Weight
	}
	return ""
}

// site picks a spawn point for s.
func (w *World) site(s Site) core.Vec {
	if s.Kind == SiteFixed {
		return s.Pos
	}
	var along float64
	if s.Kind == SiteRandomLane && len(s.Lanes) > 0 {
		along = s.Lanes[w.rng.Intn(len(s.Lanes))]
	} else {
		along = w.sample(Range{Min: s.LaneMin, Max: s.LaneMax})
	}

	b := w.rules.Bounds
	switch s.Edge {
	case EdgeBottom:
		return core.V(along, b.Bottom()-s.Offset)
	case EdgeLeft:
		return core.V(b.X+s.Offset, along)
	case EdgeRight:
		return core.V(b.Right()-s.Offset, along)
	default:
		return core.V(along, b.Y+s.Offset)
	}
}
