package stage

import (
	"fmt"
	"math"
	"slices"

	"github.com/vovakirdan/arcade-sim/internal/core"
	"github.com/vovakirdan/arcade-sim/internal/sim"
)

// Sprite is the look of one entity.
type Sprite struct {
	Rune    rune
	Color   core.Color
	Outline bool // Draw only the edge of the shape
}

// Skin picks the sprite for an entity. Returning false hides it.
type Skin func(e sim.Entity) (Sprite, bool)

// drawOrder puts effects underneath and the player on top.
var drawOrder = map[sim.Kind]int{
	sim.KindEffect:     0,
	sim.KindPickup:     1,
	sim.KindHostile:    2,
	sim.KindProjectile: 3,
	sim.KindPlayer:     4,
}

// DrawEntities rasterizes every live entity through skin.
func (s *Stage) DrawEntities(dst *core.Screen, skin Skin) {
	entities := s.world.Entities()
	slices.SortStableFunc(entities, func(a, b sim.Entity) int {
		return drawOrder[a.Kind] - drawOrder[b.Kind]
	})
	for _, e := range entities {
		sp, ok := skin(e)
		if !ok {
			continue
		}
		s.drawShape(dst, e.Pos, e.Shape, sp)
	}
}

// drawShape fills the cells whose centers fall inside the shape. The cell
// under the center is always drawn so small shapes stay visible.
func (s *Stage) drawShape(dst *core.Screen, pos core.Vec, shape sim.Shape, sp Sprite) {
	v := s.viewport
	cx, cy, ok := v.ToCell(pos)
	if ok && !sp.Outline {
		dst.SetColored(cx, cy, sp.Rune, sp.Color)
	}
	if shape.Kind == sim.ShapePoint {
		if ok && sp.Outline {
			dst.SetColored(cx, cy, sp.Rune, sp.Color)
		}
		return
	}

	hw, hh := shape.HalfExtents()
	x0, y0, _ := v.ToCell(core.V(pos.X-hw, pos.Y-hh))
	x1, y1, _ := v.ToCell(core.V(pos.X+hw, pos.Y+hh))
	cw, ch := v.CellSize()
	edge := math.Max(cw, ch)
	for y := core.Max(y0, v.Area.Y); y <= core.Min(y1, v.Area.Bottom()-1); y++ {
		for x := core.Max(x0, v.Area.X); x <= core.Min(x1, v.Area.Right()-1); x++ {
			p := v.ToWorld(x, y)
			if !inside(pos, shape, p) {
				continue
			}
			if sp.Outline && !nearEdge(pos, shape, p, edge) {
				continue
			}
			dst.SetColored(x, y, sp.Rune, sp.Color)
		}
	}
}

func inside(c core.Vec, shape sim.Shape, p core.Vec) bool {
	switch shape.Kind {
	case sim.ShapeCircle:
		return c.Dist(p) < shape.Radius
	case sim.ShapeRect:
		return core.RectAround(c, shape.W, shape.H).ContainsPoint(p)
	default:
		return false
	}
}

func nearEdge(c core.Vec, shape sim.Shape, p core.Vec, edge float64) bool {
	switch shape.Kind {
	case sim.ShapeCircle:
		return shape.Radius-c.Dist(p) < edge
	case sim.ShapeRect:
		d := p.Sub(c)
		return shape.W/2-math.Abs(d.X) < edge || shape.H/2-math.Abs(d.Y) < edge
	default:
		return true
	}
}

// DrawHUD writes the status line on row 0: left aligned text and, when
// it fits, right aligned text.
func DrawHUD(dst *core.Screen, left, right string) {
	dst.DrawHLine(0, 0, dst.Width(), ' ')
	dst.DrawTextColored(1, 0, left, core.ColorBrightWhite)
	if x := dst.Width() - len([]rune(right)) - 1; x > len([]rune(left))+2 {
		dst.DrawTextColored(x, 0, right, core.ColorGray)
	}
}

// DrawOverlay draws the idle, pause or game over message for the session.
func (s *Stage) DrawOverlay(dst *core.Screen, title string) {
	sess := s.world.Session()
	switch sess.State {
	case sim.StateIdle:
		DrawMessage(dst, title, "Press ENTER to start")
	case sim.StatePaused:
		DrawMessage(dst, "PAUSED", "P to resume  |  R to restart")
	case sim.StateEnded:
		DrawMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Level: %d  |  Press R to restart", sess.Score, sess.Level))
	}
}

// DrawMessage draws a boxed two-line message in the middle of the screen.
func DrawMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	// Calculate box dimensions
	boxW := core.Max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	// Draw box
	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	// Draw text
	titleX := boxX + (boxW-len([]rune(title)))/2
	dst.DrawTextColored(titleX, boxY+1, title, core.ColorBrightYellow)

	subtitleX := boxX + (boxW-len([]rune(subtitle)))/2
	dst.DrawText(subtitleX, boxY+3, subtitle)
}

// DrawTooSmall tells the player the terminal cannot fit the game.
func DrawTooSmall(dst *core.Screen, minW, minH int) {
	dst.Clear()
	dst.DrawTextCentered(dst.Height()/2-1, "Terminal too small")
	dst.DrawTextCentered(dst.Height()/2, fmt.Sprintf("Need %dx%d, have %dx%d", minW, minH, dst.Width(), dst.Height()))
}

// Bar renders a value as a fixed-width gauge such as [####----].
func Bar(value, maxValue, width int) string {
	if maxValue <= 0 || width <= 0 {
		return ""
	}
	filled := core.Clamp(value*width/maxValue, 0, width)
	bar := make([]rune, 0, width+2)
	bar = append(bar, '[')
	for i := range width {
		if i < filled {
			bar = append(bar, '#')
		} else {
			bar = append(bar, '-')
		}
	}
	return string(append(bar, ']'))
}
