package shape

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// arcToCubics converts an SVG elliptical arc from p0 to p1 into cubic
// segments of at most a quarter turn each. It returns nil when the arc
// degenerates to a line (a zero radius) and an empty slice when the end
// points coincide.
func arcToCubics(p0, p1 r2.Vec, rx, ry, rotDeg float64, large, sweep bool) [][3]r2.Vec {
	if p0 == p1 {
		return [][3]r2.Vec{}
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 {
		return nil
	}

	phi := rotDeg * math.Pi / 180
	sinPhi, cosPhi := math.Sincos(phi)

	// Endpoint to center parameterization, SVG 1.1 appendix F.6.5.
	dx, dy := (p0.X-p1.X)/2, (p0.Y-p1.Y)/2
	x1 := cosPhi*dx + sinPhi*dy
	y1 := -sinPhi*dx + cosPhi*dy

	// Scale radii up when they cannot span the end points.
	if lambda := (x1*x1)/(rx*rx) + (y1*y1)/(ry*ry); lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	num := rx*rx*ry*ry - rx*rx*y1*y1 - ry*ry*x1*x1
	den := rx*rx*y1*y1 + ry*ry*x1*x1
	coef := 0.0
	if den > 0 && num > 0 {
		coef = math.Sqrt(num / den)
	}
	if large == sweep {
		coef = -coef
	}
	cx1 := coef * rx * y1 / ry
	cy1 := -coef * ry * x1 / rx

	cx := cosPhi*cx1 - sinPhi*cy1 + (p0.X+p1.X)/2
	cy := sinPhi*cx1 + cosPhi*cy1 + (p0.Y+p1.Y)/2

	theta1 := vecAngle(1, 0, (x1-cx1)/rx, (y1-cy1)/ry)
	delta := vecAngle((x1-cx1)/rx, (y1-cy1)/ry, (-x1-cx1)/rx, (-y1-cy1)/ry)
	if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	} else if sweep && delta < 0 {
		delta += 2 * math.Pi
	}

	n := int(math.Ceil(math.Abs(delta) / (math.Pi / 2)))
	if n < 1 {
		n = 1
	}
	step := delta / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4)

	// point maps a unit-circle position onto the rotated ellipse.
	point := func(ux, uy float64) r2.Vec {
		x, y := rx*ux, ry*uy
		return r2.Vec{X: cosPhi*x - sinPhi*y + cx, Y: sinPhi*x + cosPhi*y + cy}
	}

	segs := make([][3]r2.Vec, 0, n)
	t := theta1
	for i := 0; i < n; i++ {
		sinA, cosA := math.Sincos(t)
		sinB, cosB := math.Sincos(t + step)
		c1 := point(cosA-k*sinA, sinA+k*cosA)
		c2 := point(cosB+k*sinB, sinB-k*cosB)
		end := point(cosB, sinB)
		if i == n-1 {
			end = p1
		}
		segs = append(segs, [3]r2.Vec{c1, c2, end})
		t += step
	}
	return segs
}

// vecAngle returns the signed angle from u to v.
func vecAngle(ux, uy, vx, vy float64) float64 {
	return math.Atan2(ux*vy-uy*vx, ux*vx+uy*vy)
}
