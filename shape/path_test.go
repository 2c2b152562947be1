package shape

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func ops(o Outline) string {
	s := ""
	for _, c := range o.Commands {
		s += c.Op.String()
	}
	return s
}

func TestParsePath(t *testing.T) {
	tests := []struct {
		name    string
		d       string
		wantOps string
		wantEnd r2.Vec // end point of the last command that has one
	}{
		{
			name:    "absolute square",
			d:       "M0,0 L10,0 L10,10 Z",
			wantOps: "MLLZ",
			wantEnd: r2.Vec{X: 10, Y: 10},
		},
		{
			name:    "relative commands",
			d:       "m1 1 l2 0 h3 v4",
			wantOps: "MLLL",
			wantEnd: r2.Vec{X: 6, Y: 5},
		},
		{
			name:    "implicit lineto after moveto",
			d:       "M0 0 10 0 10 10",
			wantOps: "MLL",
			wantEnd: r2.Vec{X: 10, Y: 10},
		},
		{
			name:    "packed numbers",
			d:       "M1.5.5L-2-3",
			wantOps: "ML",
			wantEnd: r2.Vec{X: -2, Y: -3},
		},
		{
			name:    "exponents",
			d:       "M1e1,2E-1",
			wantOps: "M",
			wantEnd: r2.Vec{X: 10, Y: 0.2},
		},
		{
			name:    "repeated cubic",
			d:       "M0 0c1 1 2 2 3 3 1 1 2 2 3 3",
			wantOps: "MCC",
			wantEnd: r2.Vec{X: 6, Y: 6},
		},
		{
			name:    "zero radius arc becomes a line",
			d:       "M0 0 A0 5 0 0 1 10 10",
			wantOps: "ML",
			wantEnd: r2.Vec{X: 10, Y: 10},
		},
		{
			name:    "coincident arc end points are skipped",
			d:       "M5 5 A3 3 0 0 1 5 5",
			wantOps: "M",
			wantEnd: r2.Vec{X: 5, Y: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := ParsePath(tt.d)
			if err != nil {
				t.Fatalf("ParsePath(%q): %v", tt.d, err)
			}
			if got := ops(o); got != tt.wantOps {
				t.Errorf("ops = %s, want %s", got, tt.wantOps)
			}
			var end r2.Vec
			for _, c := range o.Commands {
				if c.Op != OpClose {
					end = c.End()
				}
			}
			if end != tt.wantEnd {
				t.Errorf("end = %v, want %v", end, tt.wantEnd)
			}
		})
	}
}

func TestParsePathErrors(t *testing.T) {
	tests := []struct {
		name   string
		d      string
		syntax bool
	}{
		{"empty", "", false},
		{"whitespace", "  \n ", false},
		{"no moveto", "L0 0", true},
		{"missing coordinate", "M0", true},
		{"unknown command", "M0 0 X1 1", true},
		{"bad flag", "M0 0 A5 5 0 2 1 10 0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePath(tt.d)
			if err == nil {
				t.Fatalf("ParsePath(%q) succeeded, want error", tt.d)
			}
			var se *SyntaxError
			if tt.syntax && !errors.As(err, &se) {
				t.Errorf("error = %v, want *SyntaxError", err)
			}
			if !tt.syntax && !errors.Is(err, ErrEmptyPath) {
				t.Errorf("error = %v, want ErrEmptyPath", err)
			}
		})
	}
}

func TestParsePathSmoothReflection(t *testing.T) {
	o, err := ParsePath("M0 0 C0 10 10 10 10 0 S20 -10 20 0")
	if err != nil {
		t.Fatal(err)
	}
	got := o.Commands[2].Pts[0]
	if want := (r2.Vec{X: 10, Y: -10}); got != want {
		t.Errorf("reflected cubic control = %v, want %v", got, want)
	}

	o, err = ParsePath("M0 0 Q5 10 10 0 T20 0")
	if err != nil {
		t.Fatal(err)
	}
	got = o.Commands[2].Pts[0]
	if want := (r2.Vec{X: 15, Y: -10}); got != want {
		t.Errorf("reflected quad control = %v, want %v", got, want)
	}

	// Without a preceding curve the control point is the current point.
	o, err = ParsePath("M3 4 S10 10 20 0")
	if err != nil {
		t.Fatal(err)
	}
	got = o.Commands[1].Pts[0]
	if want := (r2.Vec{X: 3, Y: 4}); got != want {
		t.Errorf("unreflected control = %v, want %v", got, want)
	}
}

func TestParsePathArc(t *testing.T) {
	o, err := ParsePath("M0 0 A10 10 0 0 1 20 0")
	if err != nil {
		t.Fatal(err)
	}
	if got := ops(o); got != "MCC" {
		t.Fatalf("ops = %s, want MCC (half turn in two quarters)", got)
	}

	center := r2.Vec{X: 10, Y: 0}
	for i, c := range o.Commands[1:] {
		if d := r2.Norm(r2.Sub(c.End(), center)); math.Abs(d-10) > 1e-9 {
			t.Errorf("segment %d ends %v from center, want 10", i, d)
		}
	}
	if end := o.Commands[2].End(); end != (r2.Vec{X: 20, Y: 0}) {
		t.Errorf("arc end = %v, want exact end point", end)
	}
}

func TestParsePathPackedArcFlags(t *testing.T) {
	o, err := ParsePath("M0 0 a5 5 0 1110 0")
	if err != nil {
		t.Fatal(err)
	}
	last := o.Commands[len(o.Commands)-1]
	if last.Op != OpCubicTo {
		t.Fatalf("last op = %s, want C", last.Op)
	}
	if end := last.End(); end != (r2.Vec{X: 10, Y: 0}) {
		t.Errorf("end = %v, want (10, 0)", end)
	}
}

func TestRoundedRect(t *testing.T) {
	if got := ops(RoundedRect(0, 0, 10, 10, 0)); got != "MLLLZ" {
		t.Errorf("zero radius ops = %s, want MLLLZ", got)
	}

	o := RoundedRect(0, 0, 10, 20, 50)
	if got := ops(o); got != "MLCLCLCLCZ" {
		t.Errorf("ops = %s, want MLCLCLCLCZ", got)
	}
	// Radius clamps to half the shorter side.
	if start := o.Commands[0].Pts[0]; start != (r2.Vec{X: 5, Y: 0}) {
		t.Errorf("start = %v, want (5, 0)", start)
	}
}
