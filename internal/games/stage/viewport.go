package stage

import (
	"math"

	"github.com/vovakirdan/arcade-sim/internal/core"
)

// Viewport maps a world rectangle onto a rectangle of screen cells.
// Each axis is scaled independently.
type Viewport struct {
	World core.RectF
	Area  core.Rect
}

// Fit returns a viewport showing world inside area.
func Fit(world core.RectF, area core.Rect) Viewport {
	return Viewport{World: world, Area: area}
}

// CellSize returns the world size covered by one cell.
func (v Viewport) CellSize() (float64, float64) {
	if v.Area.W <= 0 || v.Area.H <= 0 {
		return 0, 0
	}
	return v.World.W / float64(v.Area.W), v.World.H / float64(v.Area.H)
}

// ToCell returns the cell containing world point p and whether that cell
// lies inside the area.
func (v Viewport) ToCell(p core.Vec) (int, int, bool) {
	cw, ch := v.CellSize()
	if cw == 0 || ch == 0 {
		return 0, 0, false
	}
	x := v.Area.X + int(math.Floor((p.X-v.World.X)/cw))
	y := v.Area.Y + int(math.Floor((p.Y-v.World.Y)/ch))
	return x, y, v.Area.Contains(x, y)
}

// ToWorld returns the world point at the center of cell (x, y). Cells
// outside the area are clamped onto its border first.
func (v Viewport) ToWorld(x, y int) core.Vec {
	cw, ch := v.CellSize()
	if cw == 0 || ch == 0 {
		return v.World.Center()
	}
	x = core.Clamp(x, v.Area.X, v.Area.Right()-1)
	y = core.Clamp(y, v.Area.Y, v.Area.Bottom()-1)
	return core.V(
		v.World.X+(float64(x-v.Area.X)+0.5)*cw,
		v.World.Y+(float64(y-v.Area.Y)+0.5)*ch,
	)
}
