package shape

import "gonum.org/v1/gonum/spatial/r2"

// kappa places cubic control points for a quarter-circle approximation.
const kappa = 0.5522847498

// Rect returns a closed axis-aligned rectangle outline.
func Rect(x, y, w, h float64) Outline {
	return Outline{Commands: AppendRect(nil, x, y, w, h)}
}

// AppendRect appends the commands of Rect to dst.
func AppendRect(dst []Command, x, y, w, h float64) []Command {
	return append(dst,
		Command{Op: OpMoveTo, Pts: [3]r2.Vec{{X: x, Y: y}}},
		Command{Op: OpLineTo, Pts: [3]r2.Vec{{X: x + w, Y: y}}},
		Command{Op: OpLineTo, Pts: [3]r2.Vec{{X: x + w, Y: y + h}}},
		Command{Op: OpLineTo, Pts: [3]r2.Vec{{X: x, Y: y + h}}},
		Command{Op: OpClose},
	)
}

// RoundedRect returns a closed rectangle outline with circular corners of
// radius r, clamped to half the shorter side.
func RoundedRect(x, y, w, h, r float64) Outline {
	return Outline{Commands: AppendRoundedRect(nil, x, y, w, h, r)}
}

// AppendRoundedRect appends the commands of RoundedRect to dst.
func AppendRoundedRect(dst []Command, x, y, w, h, r float64) []Command {
	r = min(r, w/2, h/2)
	if r <= 0 {
		return AppendRect(dst, x, y, w, h)
	}
	k := r * kappa
	x1, y1 := x+w, y+h
	v := func(x, y float64) r2.Vec { return r2.Vec{X: x, Y: y} }
	return append(dst,
		Command{Op: OpMoveTo, Pts: [3]r2.Vec{v(x+r, y)}},
		Command{Op: OpLineTo, Pts: [3]r2.Vec{v(x1-r, y)}},
		Command{Op: OpCubicTo, Pts: [3]r2.Vec{v(x1-r+k, y), v(x1, y+r-k), v(x1, y+r)}},
		Command{Op: OpLineTo, Pts: [3]r2.Vec{v(x1, y1-r)}},
		Command{Op: OpCubicTo, Pts: [3]r2.Vec{v(x1, y1-r+k), v(x1-r+k, y1), v(x1-r, y1)}},
		Command{Op: OpLineTo, Pts: [3]r2.Vec{v(x+r, y1)}},
		Command{Op: OpCubicTo, Pts: [3]r2.Vec{v(x+r-k, y1), v(x, y1-r+k), v(x, y1-r)}},
		Command{Op: OpLineTo, Pts: [3]r2.Vec{v(x, y+r)}},
		Command{Op: OpCubicTo, Pts: [3]r2.Vec{v(x, y+r-k), v(x+r-k, y), v(x+r, y)}},
		Command{Op: OpClose},
	)
}
