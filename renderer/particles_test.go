package renderer

import (
	"image/color"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/pulse/config"
	"github.com/pthm-cable/pulse/shape"
	"github.com/pthm-cable/pulse/systems"
)

// strokeRecord is one stroke seen by recordingSurface.
type strokeRecord struct {
	kind        string
	deviceWidth float64 // line width times the current scale
	scale       float64
	offset      r2.Vec // the last translation before the stroke
	rect        [4]float64
	radius      float64
	color       color.NRGBA
}

// recordingSurface captures strokes with the state they were made in.
type recordingSurface struct {
	w, h    int
	clears  int
	scale   float64
	width   float64
	offset  r2.Vec
	color   color.NRGBA
	stack   []recordingState
	strokes []strokeRecord
}

type recordingState struct {
	scale, width float64
	offset       r2.Vec
	color        color.NRGBA
}

func newRecordingSurface() *recordingSurface {
	return &recordingSurface{w: 640, h: 480, scale: 1, width: 1}
}

func (r *recordingSurface) Size() (int, int)             { return r.w, r.h }
func (r *recordingSurface) Resize(w, h int)              { r.w, r.h = w, h }
func (r *recordingSurface) Clear(color.RGBA)             { r.clears++ }
func (r *recordingSurface) Rotate(float64)               {}
func (r *recordingSurface) Scale(s float64)              { r.scale *= s }
func (r *recordingSurface) SetLineWidth(w float64)       { r.width = w }
func (r *recordingSurface) SetStrokeColor(c color.NRGBA) { r.color = c }
func (r *recordingSurface) Translate(x, y float64) {
	r.offset = r2.Vec{X: x, Y: y}
}

func (r *recordingSurface) Save() {
	r.stack = append(r.stack, recordingState{r.scale, r.width, r.offset, r.color})
}

func (r *recordingSurface) Restore() {
	st := r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	r.scale, r.width, r.offset, r.color = st.scale, st.width, st.offset, st.color
}

func (r *recordingSurface) record(kind string) strokeRecord {
	return strokeRecord{
		kind:        kind,
		deviceWidth: r.width * r.scale,
		scale:       r.scale,
		offset:      r.offset,
		color:       r.color,
	}
}

func (r *recordingSurface) StrokeRect(x, y, w, h float64) {
	s := r.record("rect")
	s.rect = [4]float64{x, y, w, h}
	r.strokes = append(r.strokes, s)
}

func (r *recordingSurface) StrokeRoundedRect(x, y, w, h, radius float64) {
	s := r.record("rounded")
	s.rect = [4]float64{x, y, w, h}
	s.radius = radius
	r.strokes = append(r.strokes, s)
}

func (r *recordingSurface) StrokeOutline(shape.Outline) {
	r.strokes = append(r.strokes, r.record("outline"))
}

func TestOpacity(t *testing.T) {
	tests := []struct {
		age, lifespan int
		linear, disp  float64
	}{
		{0, 150, 1, 1},
		{75, 150, 0.5, 0.25},
		{150, 150, 0, 0},
		{10, 0, 0, 0},
	}
	for _, tt := range tests {
		linear, disp := Opacity(tt.age, tt.lifespan)
		if math.Abs(linear-tt.linear) > 1e-12 || math.Abs(disp-tt.disp) > 1e-12 {
			t.Errorf("Opacity(%d, %d) = %v, %v; want %v, %v",
				tt.age, tt.lifespan, linear, disp, tt.linear, tt.disp)
		}
	}
}

func TestDrawCustomShapeKeepsStrokeWidth(t *testing.T) {
	heart, _ := shape.Preset(shape.PresetHeart)
	cfg := config.DefaultSim().WithShape(heart)
	cfg.StrokeWidth = 1.5

	r := NewParticleRenderer(DefaultBackground)
	for _, size := range []float64{6, 48, 300} {
		surf := newRecordingSurface()
		stats := r.Draw(surf, []systems.Particle{{Size: size, Hue: 90}}, cfg)
		if stats.Drawn != 1 || len(surf.strokes) != 1 {
			t.Fatalf("size %v: drawn %d, strokes %d; want 1, 1", size, stats.Drawn, len(surf.strokes))
		}

		s := surf.strokes[0]
		if math.Abs(s.deviceWidth-1.5) > 1e-9 {
			t.Errorf("size %v: device stroke width = %v, want 1.5", size, s.deviceWidth)
		}
		if want := size / shape.DefaultFrameSize; math.Abs(s.scale-want) > 1e-12 {
			t.Errorf("size %v: scale = %v, want %v", size, s.scale, want)
		}
		if s.offset != (r2.Vec{X: -12, Y: -12}) {
			t.Errorf("size %v: recenter = %v, want (-12, -12)", size, s.offset)
		}
	}
}

func TestDrawSquare(t *testing.T) {
	tests := []struct {
		name      string
		roundness float64
		wantKind  string
		wantR     float64
	}{
		{"sharp", 0, "rect", 0},
		{"rounded", 3, "rounded", 3},
		{"radius clamped to half size", 50, "rounded", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultSim()
			cfg.ShapeRoundness = tt.roundness
			cfg.StrokeWidth = 2

			surf := newRecordingSurface()
			NewParticleRenderer(DefaultBackground).Draw(surf, []systems.Particle{{Size: 10}}, cfg)
			if len(surf.strokes) != 1 {
				t.Fatalf("got %d strokes, want 1", len(surf.strokes))
			}
			s := surf.strokes[0]
			if s.kind != tt.wantKind || s.radius != tt.wantR {
				t.Errorf("stroke = %s r=%v, want %s r=%v", s.kind, s.radius, tt.wantKind, tt.wantR)
			}
			if s.rect != [4]float64{-5, -5, 10, 10} {
				t.Errorf("rect = %v, want centered 10x10", s.rect)
			}
			if s.deviceWidth != 2 {
				t.Errorf("stroke width = %v, want 2", s.deviceWidth)
			}
		})
	}
}

func TestDrawSkips(t *testing.T) {
	heart, _ := shape.Preset(shape.PresetHeart)
	cfg := config.DefaultSim().WithShape(heart)
	cfg.Lifespan = 150

	particles := []systems.Particle{
		{Size: 24, Age: 10},  // drawn
		{Size: 24, Age: 149}, // faded out
		{Size: 0, Age: 10},   // too small to scale
		{Size: 24, Age: 75},  // drawn at quarter opacity
	}

	surf := newRecordingSurface()
	stats := NewParticleRenderer(DefaultBackground).Draw(surf, particles, cfg)
	if stats.Drawn != 2 || stats.Skipped != 2 {
		t.Errorf("drawn/skipped = %d/%d, want 2/2", stats.Drawn, stats.Skipped)
	}
	if surf.clears != 1 {
		t.Errorf("clears = %d, want 1", surf.clears)
	}
	if len(surf.stack) != 0 {
		t.Errorf("unbalanced save/restore, depth %d", len(surf.stack))
	}
	if a := surf.strokes[1].color.A; a != 64 {
		t.Errorf("alpha at half life = %d, want 64", a)
	}
}

func TestDrawEmptyClears(t *testing.T) {
	surf := newRecordingSurface()
	stats := NewParticleRenderer(DefaultBackground).Draw(surf, nil, config.DefaultSim())
	if stats.Drawn != 0 || surf.clears != 1 {
		t.Errorf("drawn %d clears %d, want 0 and 1", stats.Drawn, surf.clears)
	}
}

func TestStrokeColor(t *testing.T) {
	c := StrokeColor(0, 1)
	if c.A != 255 {
		t.Errorf("alpha = %d, want 255", c.A)
	}
	if c.R <= c.G || c.G != c.B {
		t.Errorf("hue 0 = %+v, want a red", c)
	}

	if a := StrokeColor(120, 0.25).A; a != 64 {
		t.Errorf("alpha(0.25) = %d, want 64", a)
	}
	if a := StrokeColor(120, 2).A; a != 255 {
		t.Errorf("alpha(2) = %d, want clamped 255", a)
	}
	if a := StrokeColor(120, -1).A; a != 0 {
		t.Errorf("alpha(-1) = %d, want clamped 0", a)
	}
}

func TestParseBackground(t *testing.T) {
	c, err := ParseBackground("#09090b")
	if err != nil || c != DefaultBackground {
		t.Errorf("ParseBackground(#09090b) = %v, %v", c, err)
	}
	c, err = ParseBackground("")
	if err != nil || c != DefaultBackground {
		t.Errorf("ParseBackground(\"\") = %v, %v", c, err)
	}
	if _, err := ParseBackground("not-a-color"); err == nil {
		t.Error("expected error for bad color")
	}
}
