package sim

// resolve detects and resolves collisions in a fixed order. Entities are
// visited in ascending ID order and consumed entities are skipped, so no
// removal is rewarded or penalized twice.
func (w *World) resolve() {
	w.resolveProjectiles()
	w.resolveAreas()
	w.resolveContacts()
	w.resolvePickups()
	w.resolveTiles()
}

func (w *World) resolveProjectiles() {
	for i := 0; i < len(w.entities); i++ {
		p := w.entities[i]
		if p.Kind != KindProjectile || !p.Alive() {
			continue
		}
		for j := 0; j < len(w.entities); j++ {
			h := w.entities[j]
			if h.Kind != KindHostile || !h.Alive() || !Overlaps(p, h) {
				continue
			}
			w.hit(p, h)
			break
		}
	}
}

// hit consumes projectile p against hostile h.
func (w *World) hit(p, h *Entity) {
	if !w.remove(p, CauseConsumed) {
		return
	}
	p.hit = true
	a := p.arch
	if a.DetonateOnHit && a.Detonate != "" {
		w.spawn(a.Detonate, p.Pos)
	}
	if a.OneShot {
		scale := a.RewardScale
		if scale < 1 {
			scale = 1
		}
		w.kill(h, scale, CauseKilled)
		return
	}
	if p.Potency <= 0 {
		return
	}
	h.Health -= p.Potency
	if h.Health < 0 {
		h.Health = 0
	}
	w.emit(Event{Type: EventDamaged, Entity: h.ID, Kind: h.Kind, Archetype: h.Archetype, Pos: h.Pos, Amount: p.Potency})
	if h.Health == 0 {
		w.kill(h, 1, CauseKilled)
	}
}

// kill removes hostile h and grants its reward multiplied by scale.
func (w *World) kill(h *Entity, scale int, cause Cause) {
	if !w.remove(h, cause) {
		return
	}
	w.kills++
	w.award(h, h.Reward*scale, true)
	a := h.arch
	if a.Burst != "" {
		for n := 0; n < a.BurstCount; n++ {
			w.spawn(a.Burst, h.Pos)
		}
	}
}

func (w *World) resolveAreas() {
	for i := 0; i < len(w.entities); i++ {
		fx := w.entities[i]
		if fx.Kind != KindEffect || !fx.Alive() || !fx.arch.Lethal || fx.arch.AreaRadius <= 0 {
			continue
		}
		for j := 0; j < len(w.entities); j++ {
			h := w.entities[j]
			if h.Kind != KindHostile || !h.Alive() {
				continue
			}
			if WithinRadius(fx.Pos, fx.arch.AreaRadius, h.Pos) {
				w.kill(h, 1, CauseAreaEffect)
			}
		}
	}
}

func (w *World) resolveContacts() {
	p := w.player()
	c := w.rules.Contact
	if p == nil || c.Policy == ContactIgnore {
		return
	}
	for i := 0; i < len(w.entities); i++ {
		h := w.entities[i]
		if h.Kind != KindHostile || !h.Alive() {
			continue
		}
		touching := Overlaps(p, h)
		if c.Range > 0 {
			touching = p.Pos.Dist(h.Pos) < c.Range
		}
		if !touching {
			continue
		}

		if h.Vulnerable {
			if w.remove(h, CauseEaten) {
				w.award(h, c.EatReward, false)
				if h.arch.ReturnsHome {
					w.respawns = append(w.respawns, respawn{archetype: h.Archetype, home: h.Home})
				}
			}
			continue
		}

		switch c.Policy {
		case ContactRemoveHostile:
			if !w.remove(h, CauseContact) {
				continue
			}
			w.hurt(c.Damage, false)
			if c.Effect != "" {
				w.spawn(c.Effect, h.Pos)
			}
		case ContactResetPositions:
			w.hurt(c.Damage, true)
			w.resetPositions()
			return
		}
	}
}

func (w *World) resolvePickups() {
	p := w.player()
	if p == nil {
		return
	}
	for i := 0; i < len(w.entities); i++ {
		pk := w.entities[i]
		if pk.Kind != KindPickup || !pk.Alive() || !Overlaps(p, pk) {
			continue
		}
		if w.remove(pk, CauseCollected) {
			w.award(pk, pk.Reward, false)
		}
	}
}

func (w *World) resolveTiles() {
	p := w.player()
	if p == nil || w.grid == nil {
		return
	}
	g := w.rules.Grid
	col, row := w.grid.cell(p.Pos)
	t := w.grid.at(col, row)
	if t != TilePellet && t != TilePower {
		return
	}
	w.grid.set(col, row, TileEmpty)
	w.pelletsLeft--
	w.emit(Event{Type: EventTileConsumed, Col: col, Row: row, Tile: t, Pos: w.grid.center(col, row)})

	if t == TilePellet {
		w.award(nil, g.PelletReward, false)
		return
	}
	w.award(nil, g.PowerReward, false)
	if g.FrightenDuration <= 0 {
		return
	}
	w.frightened = g.FrightenDuration
	for _, e := range w.entities {
		if e.Kind == KindHostile && e.Alive() {
			e.Vulnerable = true
		}
	}
	w.emit(Event{Type: EventFrightened})
}

// expire removes entities that left the bounds or ran out of time.
func (w *World) expire(dt float64) {
	b := w.rules.Bounds
	n := len(w.entities)
	for i := 0; i < n; i++ {
		e := w.entities[i]
		if !e.Alive() || e.Kind == KindPlayer {
			continue
		}
		a := e.arch
		if a.Bounds == BoundsDespawn && !b.Expand(a.Margin).ContainsPoint(e.Pos) {
			if w.remove(e, CauseOffscreen) && a.EscapePenalty > 0 {
				w.hurt(a.EscapePenalty, true)
				w.resetCombo()
			}
			continue
		}
		if !e.Mortal {
			continue
		}
		e.TTL -= dt
		if e.TTL > 0 {
			continue
		}
		e.TTL = 0
		if !w.remove(e, CauseExpired) {
			continue
		}
		if a.DetonateOnExpire && a.Detonate != "" && b.ContainsPoint(e.Pos) {
			w.spawn(a.Detonate, e.Pos)
		}
		if a.Strike && !e.hit {
			w.resetCombo()
		}
	}
}
