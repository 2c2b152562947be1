package renderer

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestRaylibSurfaceTransform(t *testing.T) {
	s := NewRaylibSurface(100, 100)

	s.Translate(10, 0)
	s.Rotate(math.Pi / 2)
	got := s.xf(r2.Vec{X: 1, Y: 0})
	if math.Abs(got.X-10) > 1e-12 || math.Abs(got.Y-1) > 1e-12 {
		t.Errorf("transformed point = %v, want (10, 1)", got)
	}

	s.Save()
	s.Scale(3)
	s.Rotate(0.7)
	if sc := uniformScale(s.m); math.Abs(sc-3) > 1e-12 {
		t.Errorf("uniformScale = %v, want 3", sc)
	}
	got = s.xf(r2.Vec{X: 0, Y: 0})
	if math.Abs(got.X-10) > 1e-12 || math.Abs(got.Y) > 1e-12 {
		t.Errorf("origin = %v, want (10, 0)", got)
	}

	s.Restore()
	if sc := uniformScale(s.m); math.Abs(sc-1) > 1e-12 {
		t.Errorf("uniformScale after Restore = %v, want 1", sc)
	}

	// Unbalanced Restore is ignored.
	s.Restore()
	s.Restore()
	if got := s.xf(r2.Vec{X: 1, Y: 0}); math.Abs(got.X-10) > 1e-12 || math.Abs(got.Y-1) > 1e-12 {
		t.Errorf("after extra Restore = %v, want (10, 1)", got)
	}
}
