package shooter

import (
	"github.com/vovakirdan/arcade-sim/internal/config"
	"github.com/vovakirdan/arcade-sim/internal/core"
	"github.com/vovakirdan/arcade-sim/internal/sim"
)

// Archetype names besides the enemy types.
const (
	ShipArchetype    = "ship"
	BulletArchetype  = "bullet"
	MissileArchetype = "missile"
	BombArchetype    = "bomb"
	BlastArchetype   = "blast"
	BoomArchetype    = "boom" // Missile explosion
	SparkArchetype   = "spark"
	FlashArchetype   = "flash"
)

// Resource names.
const (
	Ammo     = "ammo"
	Bombs    = "bombs"
	Missiles = "missiles"
)

// Rules builds the simulation rules for a shooter config.
func Rules(cfg config.ShooterConfig) sim.Rules {
	w := cfg.World
	bounds := core.NewRectF(0, 0, w.Width, w.Height)
	pl := cfg.Player
	muzzle := core.V(0, -pl.Height/2)

	explosion := func(radius float64, lethal bool) sim.Archetype {
		return sim.Archetype{
			Kind:       sim.KindEffect,
			Shape:      sim.Circle(radius),
			Behavior:   sim.BehaviorStatic,
			Bounds:     sim.BoundsClamp,
			TTL:        cfg.Explosion.TTL,
			AreaRadius: radius,
			Lethal:     lethal,
		}
	}
	shot := func(s config.ShooterShot) sim.Archetype {
		return sim.Archetype{
			Kind:     sim.KindProjectile,
			Shape:    sim.Box(s.Width, s.Height),
			Behavior: sim.BehaviorBallistic,
			Bounds:   sim.BoundsDespawn,
			Potency:  s.Damage,
			Speed:    s.Speed,
		}
	}

	bullet := shot(cfg.Bullet)
	bullet.Detonate = SparkArchetype
	bullet.DetonateOnHit = cfg.Explosion.SparkRadius > 0

	missile := shot(cfg.Missile)
	missile.OneShot = cfg.Missile.RewardScale > 0
	missile.RewardScale = cfg.Missile.RewardScale
	missile.Detonate = BoomArchetype
	missile.DetonateOnHit = cfg.Missile.Radius > 0

	b := cfg.Bomb
	archetypes := map[string]sim.Archetype{
		ShipArchetype: {
			Kind:   sim.KindPlayer,
			Shape:  sim.Box(pl.Width, pl.Height),
			Bounds: sim.BoundsClamp,
			Speed:  pl.Speed,
		},
		BulletArchetype:  bullet,
		MissileArchetype: missile,
		// Bombs fly through enemies and go off when the fuse runs out.
		BombArchetype: {
			Kind:             sim.KindEffect,
			Shape:            sim.Box(b.Size, b.Size),
			Behavior:         sim.BehaviorBallistic,
			Bounds:           sim.BoundsDespawn,
			TTL:              b.Fuse,
			Gravity:          b.Gravity,
			VelX:             sim.Range{Min: b.VelX.Min, Max: b.VelX.Max},
			VelY:             sim.Range{Min: b.VelY, Max: b.VelY},
			Detonate:         BlastArchetype,
			DetonateOnExpire: true,
		},
		BlastArchetype: explosion(b.Radius, true),
		BoomArchetype:  explosion(cfg.Missile.Radius, true),
		SparkArchetype: explosion(cfg.Explosion.SparkRadius, false),
		FlashArchetype: explosion(cfg.Explosion.FlashRadius, false),
	}

	table := make([]sim.WeightedArchetype, 0, len(cfg.Enemies))
	for _, e := range cfg.Enemies {
		archetypes[e.Name] = sim.Archetype{
			Kind:     sim.KindHostile,
			Shape:    sim.Box(e.Size, e.Size),
			Behavior: sim.BehaviorSeek,
			Bounds:   sim.BoundsClamp,
			Health:   e.Health,
			Reward:   e.Reward,
			Speed:    e.Speed,
		}
		table = append(table, sim.WeightedArchetype{Archetype: e.Name, Weight: e.Weight})
	}

	resource := func(name string, r config.ResourceConfig) sim.ResourceRule {
		return sim.ResourceRule{
			Name:          name,
			Initial:       r.Initial,
			Max:           r.Max,
			OnClear:       r.OnClear,
			TrickleBelow:  r.TrickleBelow,
			TrickleAmount: r.TrickleAmount,
			TrickleRate:   r.TrickleRate,
		}
	}

	site := cfg.SpawnSite
	return sim.Rules{
		Bounds:      bounds,
		MaxStep:     w.MaxStep,
		Archetypes:  archetypes,
		Player:      ShipArchetype,
		PlayerStart: core.V(w.Width/2, w.Height-pl.BottomOffset),
		PlayerMode:  sim.PlayerFree,
		DefaultAim:  core.V(1, 0),
		Spawners: []sim.SpawnerRule{{
			Name:             "enemies",
			Table:            table,
			Interval:         cfg.Spawner.Interval,
			Decrement:        cfg.Spawner.Decrement,
			MinInterval:      cfg.Spawner.MinInterval,
			MaxAlive:         cfg.Spawner.MaxAlive,
			MaxAlivePerLevel: cfg.Spawner.MaxAlivePerLevel,
			Site: sim.Site{
				Kind:    sim.SiteEdge,
				Edge:    sim.EdgeRight,
				Offset:  site.Inset,
				LaneMin: site.LaneMin,
				LaneMax: site.LaneMax,
			},
		}},
		Weapons: []sim.Weapon{
			{Slot: sim.SlotPrimary, Archetype: BulletArchetype, Resource: Ammo, Mode: sim.FireAimed, Muzzle: muzzle, Cooldown: cfg.Bullet.Cooldown},
			{Slot: sim.SlotSpecial, Archetype: BombArchetype, Resource: Bombs, Mode: sim.FireLob, Muzzle: core.V(0, -b.Lift), Cooldown: b.Cooldown},
			{Slot: sim.SlotSecondary, Archetype: MissileArchetype, Resource: Missiles, Mode: sim.FireAimed, Muzzle: muzzle, Cooldown: cfg.Missile.Cooldown},
		},
		Resources: []sim.ResourceRule{
			resource(Ammo, cfg.Ammo),
			resource(Bombs, cfg.Bombs),
			resource(Missiles, cfg.Missiles),
		},
		MaxHealth: pl.Health,
		Contact: sim.ContactRule{
			Damage: cfg.ContactDamage,
			Effect: FlashArchetype,
			Policy: sim.ContactRemoveHostile,
		},
		Clear: sim.ClearRule{
			Mode:              sim.ClearKills,
			KillsPerLevel:     cfg.Wave.KillsPerLevel,
			RequireNoHostiles: true,
			PlayerSpeedBump:   cfg.Wave.PlayerSpeedBump,
			HostileSpeedBump:  cfg.Wave.HostileSpeedBump,
		},
	}
}
