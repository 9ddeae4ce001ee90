package sim

import "github.com/vovakirdan/arcade-sim/internal/core"

// integrate moves every live entity by one step.
func (w *World) integrate(dt float64) {
	p := w.player()
	hostilePace := w.hostileScale * w.pace

	for _, e := range w.entities {
		if !e.Alive() {
			continue
		}
		if e == p {
			w.movePlayer(e, dt)
			continue
		}

		k := 1.0
		if e.Kind == KindHostile {
			k = hostilePace
		}
		a := e.arch
		switch a.Behavior {
		case BehaviorBallistic:
			e.Vel.Y += a.Gravity * dt * k
			e.Pos = e.Pos.Add(e.Vel.Scale(dt * k))
			e.Angle += e.Spin * dt * k
		case BehaviorSeek:
			if p != nil {
				e.Vel = p.Pos.Sub(e.Pos).Norm().Scale(a.Speed * k)
			}
			e.Pos = e.Pos.Add(e.Vel.Scale(dt))
		case BehaviorGrid:
			if w.grid == nil || (w.rules.Grid.HostilesWait && !w.playerMoved) {
				continue
			}
			w.grid.step(e, a.Speed*k*dt, w.rules.Grid.HostileTolerance, w.chaseDecider(p))
		case BehaviorStatic:
		}
		if a.Bounds == BoundsClamp {
			w.clamp(e)
		}
	}
}

func (w *World) movePlayer(e *Entity, dt float64) {
	speed := e.arch.Speed * w.playerScale
	switch w.rules.PlayerMode {
	case PlayerFree:
		e.Vel = w.intent.Scale(speed)
		e.Pos = e.Pos.Add(e.Vel.Scale(dt))
	case PlayerTrack:
		e.Pos = e.Pos.Add(w.intent.Scale(speed * dt))
	case PlayerGrid:
		if w.grid == nil {
			return
		}
		tol := w.rules.Grid.PlayerTolerance
		w.grid.turn(e, tol)
		w.grid.step(e, speed*dt, tol, w.grid.steer)
		return
	}
	w.clamp(e)
}

// clamp confines e to the world bounds, shrunk by its half extents.
func (w *World) clamp(e *Entity) {
	b := w.rules.Bounds
	hw, hh := e.Shape.HalfExtents()
	if b.W > 2*hw {
		e.Pos.X = core.ClampF(e.Pos.X, b.X+hw, b.Right()-hw)
	} else {
		e.Pos.X = b.Center().X
	}
	if b.H > 2*hh {
		e.Pos.Y = core.ClampF(e.Pos.Y, b.Y+hh, b.Bottom()-hh)
	} else {
		e.Pos.Y = b.Center().Y
	}
}

// steer takes the queued heading at a tile center when it is open, and keeps
// the current heading otherwise.
func (g *grid) steer(e *Entity, col, row int) Direction {
	if e.NextDir != DirNone {
		dx, dy := e.NextDir.Delta()
		if g.open(col+dx, row+dy) {
			d := e.NextDir
			e.NextDir = DirNone
			return d
		}
	}
	return e.Dir
}

func (w *World) chaseDecider(p *Entity) decider {
	return func(e *Entity, col, row int) Direction {
		if p == nil {
			return DirNone
		}
		pc, pr := w.grid.cell(p.Pos)
		return w.grid.chase(col, row, pc, pr)
	}
}
