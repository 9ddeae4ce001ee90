package maze

import (
	"github.com/vovakirdan/arcade-sim/internal/config"
	"github.com/vovakirdan/arcade-sim/internal/core"
	"github.com/vovakirdan/arcade-sim/internal/sim"
)

// PlayerArchetype names the player; ghosts use their configured names.
const PlayerArchetype = "player"

const maxStep = 0.1

// Rules builds the simulation rules for a maze config. It fails only when
// the layout cannot be parsed.
func Rules(cfg config.MazeConfig) (sim.Rules, error) {
	layout, err := config.ParseLayout(cfg.Layout)
	if err != nil {
		return sim.Rules{}, err
	}
	size := cfg.TileSize
	center := func(c config.Cell) core.Vec {
		return core.V((float64(c.Col)+0.5)*size, (float64(c.Row)+0.5)*size)
	}

	archetypes := map[string]sim.Archetype{
		PlayerArchetype: {
			Kind:     sim.KindPlayer,
			Shape:    sim.Circle(cfg.Player.Radius),
			Behavior: sim.BehaviorGrid,
			Bounds:   sim.BoundsClamp,
			Speed:    cfg.Player.Speed,
		},
	}
	var placements []sim.Placement
	for i, cell := range layout.Ghosts {
		if i >= len(cfg.Ghosts) {
			break
		}
		gh := cfg.Ghosts[i]
		archetypes[gh.Name] = sim.Archetype{
			Kind:        sim.KindHostile,
			Shape:       sim.Circle(cfg.Ghost.Radius),
			Behavior:    sim.BehaviorGrid,
			Bounds:      sim.BoundsClamp,
			Speed:       gh.Speed,
			ReturnsHome: true,
		}
		placements = append(placements, sim.Placement{
			Archetype: gh.Name,
			Pos:       center(cell),
			Dir:       config.ParseDirection(gh.Dir),
		})
	}

	return sim.Rules{
		Bounds:      core.NewRectF(0, 0, float64(layout.Cols)*size, float64(layout.Rows)*size),
		MaxStep:     maxStep,
		Archetypes:  archetypes,
		Player:      PlayerArchetype,
		PlayerStart: center(layout.Player),
		PlayerMode:  sim.PlayerGrid,
		Placements:  placements,
		MaxHealth:   cfg.Lives,
		Contact: sim.ContactRule{
			Damage:    1,
			Policy:    sim.ContactResetPositions,
			Range:     cfg.ContactDistance(),
			EatReward: cfg.Scoring.Eat,
		},
		Clear: sim.ClearRule{
			Mode:             sim.ClearTiles,
			PlayerSpeedBump:  cfg.Level.PlayerSpeedBump,
			HostileSpeedBump: cfg.Level.HostileSpeedBump,
			RefillTiles:      true,
		},
		Grid: &sim.GridRules{
			Cols:             layout.Cols,
			Rows:             layout.Rows,
			TileSize:         size,
			Layout:           layout.Tiles,
			PlayerTolerance:  cfg.Player.Tolerance,
			HostileTolerance: cfg.Ghost.Tolerance,
			PelletReward:     cfg.Scoring.Pellet,
			PowerReward:      cfg.Scoring.Power,
			FrightenDuration: cfg.FrightenDuration,
			HostilesWait:     cfg.Ghost.Wait,
		},
	}, nil
}
