package sim

import (
	"math"

	"github.com/vovakirdan/arcade-sim/internal/core"
)

// Tile is the content of one maze cell.
type Tile uint8

const (
	TileEmpty Tile = iota
	TileWall
	TilePellet
	TilePower
)

// Direction is a grid heading.
type Direction uint8

const (
	DirNone Direction = iota
	DirRight
	DirLeft
	DirDown
	DirUp
)

// chaseOrder is the fixed candidate order of the chase heuristic. Ties
// between equally close candidates go to the earlier entry.
var chaseOrder = [4]Direction{DirRight, DirLeft, DirDown, DirUp}

// Delta returns the tile offset of one step in direction d.
func (d Direction) Delta() (int, int) {
	switch d {
	case DirRight:
		return 1, 0
	case DirLeft:
		return -1, 0
	case DirDown:
		return 0, 1
	case DirUp:
		return 0, -1
	default:
		return 0, 0
	}
}

// Vec returns the unit vector of direction d (y grows downward).
func (d Direction) Vec() core.Vec {
	dx, dy := d.Delta()
	return core.V(float64(dx), float64(dy))
}

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirRight:
		return "right"
	case DirLeft:
		return "left"
	case DirDown:
		return "down"
	case DirUp:
		return "up"
	default:
		return "none"
	}
}

// DirectionFromXY returns the heading closest to (dx, dy). Horizontal wins
// ties; (0, 0) is DirNone.
func DirectionFromXY(dx, dy float64) Direction {
	switch {
	case dx == 0 && dy == 0:
		return DirNone
	case math.Abs(dx) >= math.Abs(dy):
		if dx > 0 {
			return DirRight
		}
		return DirLeft
	default:
		if dy > 0 {
			return DirDown
		}
		return DirUp
	}
}

// centerEpsilon is how close to a tile center counts as being on it.
const centerEpsilon = 1e-6

// grid holds the tile layout of a world.
type grid struct {
	cols, rows int
	size       float64
	tiles      []Tile
}

func newGrid(g *GridRules) *grid {
	tiles := make([]Tile, g.Cols*g.Rows)
	copy(tiles, g.Layout)
	return &grid{cols: g.Cols, rows: g.Rows, size: g.TileSize, tiles: tiles}
}

// at returns the tile at (col, row); anything outside the grid is a wall.
func (g *grid) at(col, row int) Tile {
	if col < 0 || row < 0 || col >= g.cols || row >= g.rows {
		return TileWall
	}
	return g.tiles[row*g.cols+col]
}

func (g *grid) set(col, row int, t Tile) {
	if col < 0 || row < 0 || col >= g.cols || row >= g.rows {
		return
	}
	g.tiles[row*g.cols+col] = t
}

func (g *grid) open(col, row int) bool {
	return g.at(col, row) != TileWall
}

func (g *grid) cell(p core.Vec) (int, int) {
	return int(math.Floor(p.X / g.size)), int(math.Floor(p.Y / g.size))
}

func (g *grid) center(col, row int) core.Vec {
	return core.V((float64(col)+0.5)*g.size, (float64(row)+0.5)*g.size)
}

// consumables counts pellets and power pellets.
func (g *grid) consumables() int {
	n := 0
	for _, t := range g.tiles {
		if t == TilePellet || t == TilePower {
			n++
		}
	}
	return n
}

// chase picks the open neighbour of (col, row) closest to target.
func (g *grid) chase(col, row, tcol, trow int) Direction {
	best := DirNone
	bestDist := math.Inf(1)
	for _, d := range chaseOrder {
		dx, dy := d.Delta()
		nc, nr := col+dx, row+dy
		if !g.open(nc, nr) {
			continue
		}
		dist := math.Hypot(float64(nc-tcol), float64(nr-trow))
		if dist < bestDist {
			best, bestDist = d, dist
		}
	}
	return best
}

// decider chooses a heading for an entity standing on a tile center.
type decider func(e *Entity, col, row int) Direction

// step moves e along the grid by distance units. The entity stops exactly on
// every tile center it crosses so that decide can change its heading there;
// it never enters a wall tile.
func (g *grid) step(e *Entity, distance, tolerance float64, decide decider) {
	// Each pass either reaches a tile center or spends the remaining distance,
	// so a handful of passes covers any sane speed.
	for pass := 0; pass < 2*g.cols+2*g.rows && distance > 0; pass++ {
		col, row := g.cell(e.Pos)
		c := g.center(col, row)
		off := e.Pos.Dist(c)

		visiting := col != e.lastCol || row != e.lastRow
		if off <= centerEpsilon || (visiting && off <= tolerance) {
			e.Pos = c
			e.lastCol, e.lastRow = col, row
			e.Dir = decide(e, col, row)
			dx, dy := e.Dir.Delta()
			if e.Dir == DirNone || !g.open(col+dx, row+dy) {
				return
			}
			move := math.Min(distance, g.size)
			e.Pos = e.Pos.Add(e.Dir.Vec().Scale(move))
			distance -= move
			continue
		}

		if e.Dir == DirNone {
			e.Pos = c
			continue
		}

		v := e.Dir.Vec()
		toCenter := c.Sub(e.Pos)
		ahead := toCenter.X*v.X+toCenter.Y*v.Y > 0
		target := c
		gap := off
		if !ahead {
			target = c.Add(v.Scale(g.size))
			gap = g.size - off
		}
		if distance >= gap {
			e.Pos = target
			distance -= gap
			continue
		}
		e.Pos = e.Pos.Add(v.Scale(distance))
		distance = 0
	}
}

// turn applies a queued heading change when e is within tolerance of a tile
// center, snapping it onto the center. Reversals follow the same rule.
func (g *grid) turn(e *Entity, tolerance float64) {
	if e.NextDir == DirNone || e.NextDir == e.Dir {
		return
	}
	col, row := g.cell(e.Pos)
	c := g.center(col, row)
	if e.Pos.Dist(c) > tolerance {
		return
	}
	dx, dy := e.NextDir.Delta()
	if !g.open(col+dx, row+dy) {
		return
	}
	e.Pos = c
	e.Dir = e.NextDir
	e.NextDir = DirNone
	e.lastCol, e.lastRow = col, row
}
