package sim

import "github.com/vovakirdan/arcade-sim/internal/core"

// Overlaps reports whether two entities touch.
//
// Circles and points use center distance against the sum of radii, rectangles
// use a strict AABB test, and mixed circle/rectangle pairs test the circle
// center against the nearest point of the rectangle.
func Overlaps(a, b *Entity) bool {
	return ShapesOverlap(a.Pos, a.Shape, b.Pos, b.Shape)
}

// ShapesOverlap is Overlaps for bare positions and shapes.
func ShapesOverlap(pa core.Vec, sa Shape, pb core.Vec, sb Shape) bool {
	if sa.Kind == ShapeRect && sb.Kind == ShapeRect {
		return core.RectAround(pa, sa.W, sa.H).Overlaps(core.RectAround(pb, sb.W, sb.H))
	}
	if sa.Kind == ShapeRect {
		return rectCircle(pa, sa, pb, radius(sb))
	}
	if sb.Kind == ShapeRect {
		return rectCircle(pb, sb, pa, radius(sa))
	}
	return pa.Dist(pb) < radius(sa)+radius(sb)
}

// WithinRadius reports whether p lies strictly inside the circle (c, r).
// Area effects use this regardless of the target's own shape.
func WithinRadius(c core.Vec, r float64, p core.Vec) bool {
	return c.Dist(p) < r
}

func radius(s Shape) float64 {
	if s.Kind == ShapeCircle {
		return s.Radius
	}
	return 0
}

// rectCircle tests a centered rectangle against a circle. A zero radius
// degrades to a strict point-in-rectangle test.
func rectCircle(rc core.Vec, rs Shape, cc core.Vec, r float64) bool {
	box := core.RectAround(rc, rs.W, rs.H)
	if r == 0 {
		return cc.X > box.X && cc.X < box.Right() && cc.Y > box.Y && cc.Y < box.Bottom()
	}
	nearest := box.ClampPoint(cc)
	return nearest.Dist(cc) < r
}
