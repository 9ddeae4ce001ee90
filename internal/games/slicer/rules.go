package slicer

import (
	"github.com/vovakirdan/arcade-sim/internal/config"
	"github.com/vovakirdan/arcade-sim/internal/core"
	"github.com/vovakirdan/arcade-sim/internal/sim"
)

// Archetype names besides the fruit varieties.
const (
	BladeArchetype  = "blade"
	StrikeArchetype = "strike"
	juicePrefix     = "juice:"
)

// strikeTTL keeps a strike alive for exactly the tick it was made in.
const strikeTTL = 1e-3

// Rules builds the simulation rules for a slicer config.
func Rules(cfg config.SlicerConfig) sim.Rules {
	w := cfg.World
	bounds := core.NewRectF(0, 0, w.Width, w.Height)
	f := cfg.Fruit

	archetypes := map[string]sim.Archetype{
		BladeArchetype: {
			Kind:   sim.KindPlayer,
			Shape:  sim.Point(),
			Speed:  cfg.Cursor.Speed,
			Bounds: sim.BoundsClamp,
		},
		StrikeArchetype: {
			Kind:     sim.KindProjectile,
			Shape:    sim.Circle(cfg.Cursor.Slack),
			Behavior: sim.BehaviorStatic,
			Bounds:   sim.BoundsClamp,
			Potency:  1,
			TTL:      strikeTTL,
			Strike:   true,
		},
	}

	table := make([]sim.WeightedArchetype, 0, len(cfg.Varieties))
	for _, v := range cfg.Varieties {
		juice := juicePrefix + v.Name
		archetypes[v.Name] = sim.Archetype{
			Kind:          sim.KindHostile,
			Shape:         sim.Circle(f.Radius),
			Behavior:      sim.BehaviorBallistic,
			Bounds:        sim.BoundsDespawn,
			Margin:        f.Margin,
			Health:        1,
			Reward:        v.Points,
			Gravity:       f.Gravity,
			VelX:          sim.Range{Min: f.VelX.Min, Max: f.VelX.Max},
			VelY:          sim.Range{Min: f.VelY.Min, Max: f.VelY.Max},
			Spin:          sim.Range{Min: f.Spin.Min, Max: f.Spin.Max},
			Burst:         juice,
			BurstCount:    cfg.Juice.Count,
			EscapePenalty: 1,
		}
		archetypes[juice] = sim.Archetype{
			Kind:     sim.KindEffect,
			Shape:    sim.Point(),
			Behavior: sim.BehaviorBallistic,
			Bounds:   sim.BoundsDespawn,
			Margin:   f.Margin,
			TTL:      cfg.Juice.TTL,
			Gravity:  cfg.Juice.Gravity,
			VelX:     sim.Range{Min: cfg.Juice.VelX.Min, Max: cfg.Juice.VelX.Max},
			VelY:     sim.Range{Min: cfg.Juice.VelY.Min, Max: cfg.Juice.VelY.Max},
		}
		table = append(table, sim.WeightedArchetype{Archetype: v.Name, Weight: v.Weight})
	}

	return sim.Rules{
		Bounds:      bounds,
		MaxStep:     w.MaxStep,
		Archetypes:  archetypes,
		Player:      BladeArchetype,
		PlayerStart: bounds.Center(),
		PlayerMode:  sim.PlayerTrack,
		Spawners: []sim.SpawnerRule{{
			Name:        "fruit",
			Table:       table,
			Interval:    cfg.Spawner.Interval,
			Decrement:   cfg.Spawner.Decrement,
			MinInterval: cfg.Spawner.MinInterval,
			MaxAlive:    cfg.Spawner.MaxAlive,
			Site: sim.Site{
				Kind:    sim.SiteEdge,
				Edge:    sim.EdgeTop,
				Offset:  -f.SpawnHeight,
				LaneMin: f.EdgeInset,
				LaneMax: w.Width - f.EdgeInset,
			},
		}},
		Weapons: []sim.Weapon{{
			Slot:      sim.SlotPrimary,
			Archetype: StrikeArchetype,
			Mode:      sim.FireInPlace,
		}},
		MaxHealth: cfg.Lives,
		Combo:     sim.ComboRule{Enabled: true, Step: cfg.Combo.Step, IdleWindow: cfg.Combo.IdleWindow},
		Clear: sim.ClearRule{
			Mode:             sim.ClearKills,
			KillsPerLevel:    cfg.Level.KillsPerLevel,
			PlayerSpeedBump:  cfg.Level.PlayerSpeedBump,
			HostileSpeedBump: cfg.Level.HostileSpeedBump,
		},
	}
}
