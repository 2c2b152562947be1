package shape

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// maxSegments bounds the subdivision of a single curve.
const maxSegments = 64

// Polyline is a flattened subpath. Closed subpaths repeat their first point.
type Polyline []r2.Vec

// Flatten converts the outline into polylines after mapping every point
// through xf. Curves are subdivided in the mapped space so tol is a device
// tolerance. The returned slice reuses dst's backing arrays where possible.
func (o Outline) Flatten(xf func(r2.Vec) r2.Vec, tol float64, dst []Polyline) []Polyline {
	if tol <= 0 {
		tol = 0.25
	}
	dst = dst[:0]
	var (
		cur   Polyline
		pen   r2.Vec
		start r2.Vec
		open  bool
	)
	flush := func() {
		if open && len(cur) > 1 {
			dst = append(dst, cur)
		}
		open = false
	}
	begin := func(pt r2.Vec) {
		flush()
		// Reuse a previously allocated polyline from dst's spare capacity.
		if n := len(dst); n < cap(dst) {
			cur = dst[:n+1][n][:0]
		} else {
			cur = nil
		}
		cur = append(cur, pt)
		start = pt
		pen = pt
		open = true
	}

	for _, c := range o.Commands {
		switch c.Op {
		case OpMoveTo:
			begin(xf(c.Pts[0]))
		case OpLineTo:
			if !open {
				begin(pen)
			}
			pen = xf(c.Pts[0])
			cur = append(cur, pen)
		case OpQuadTo:
			if !open {
				begin(pen)
			}
			c1, end := xf(c.Pts[0]), xf(c.Pts[1])
			n := quadSegments(pen, c1, end, tol)
			for i := 1; i <= n; i++ {
				cur = append(cur, evalQuad(pen, c1, end, float64(i)/float64(n)))
			}
			pen = end
		case OpCubicTo:
			if !open {
				begin(pen)
			}
			c1, c2, end := xf(c.Pts[0]), xf(c.Pts[1]), xf(c.Pts[2])
			n := cubicSegments(pen, c1, c2, end, tol)
			for i := 1; i <= n; i++ {
				cur = append(cur, evalCubic(pen, c1, c2, end, float64(i)/float64(n)))
			}
			pen = end
		case OpClose:
			if open {
				if cur[len(cur)-1] != start {
					cur = append(cur, start)
				}
				pen = start
				flush()
			}
		}
	}
	flush()
	return dst
}

func quadSegments(p0, p1, p2 r2.Vec, tol float64) int {
	dd := r2.Norm(r2.Add(r2.Sub(p0, r2.Scale(2, p1)), p2))
	return segmentCount(math.Sqrt(dd / (4 * tol)))
}

func cubicSegments(p0, p1, p2, p3 r2.Vec, tol float64) int {
	d1 := r2.Norm(r2.Add(r2.Sub(p0, r2.Scale(2, p1)), p2))
	d2 := r2.Norm(r2.Add(r2.Sub(p1, r2.Scale(2, p2)), p3))
	return segmentCount(math.Sqrt(0.75 * math.Max(d1, d2) / tol))
}

func segmentCount(f float64) int {
	n := int(math.Ceil(f))
	if n < 1 {
		return 1
	}
	if n > maxSegments {
		return maxSegments
	}
	return n
}

func evalQuad(p0, p1, p2 r2.Vec, t float64) r2.Vec {
	mt := 1 - t
	return r2.Add(r2.Add(r2.Scale(mt*mt, p0), r2.Scale(2*mt*t, p1)), r2.Scale(t*t, p2))
}

func evalCubic(p0, p1, p2, p3 r2.Vec, t float64) r2.Vec {
	mt := 1 - t
	a := r2.Scale(mt*mt*mt, p0)
	b := r2.Scale(3*mt*mt*t, p1)
	c := r2.Scale(3*mt*t*t, p2)
	d := r2.Scale(t*t*t, p3)
	return r2.Add(r2.Add(a, b), r2.Add(c, d))
}
