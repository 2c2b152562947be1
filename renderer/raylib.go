package renderer

import (
	"image/color"
	"math"

	"github.com/fogleman/gg"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/pulse/shape"
)

// flattenTolerance is the maximum chord deviation in screen pixels.
const flattenTolerance = 0.3

// RaylibSurface draws into the current raylib frame. Calls must happen
// between rl.BeginDrawing and rl.EndDrawing on the window thread.
//
// Transforms are applied on the CPU and outlines are flattened to screen
// space, so the stroke thickness handed to raylib is already in pixels.
type RaylibSurface struct {
	width, height int

	m         gg.Matrix
	lineWidth float64
	col       color.RGBA
	stack     []raylibState

	// Scratch buffers reused across strokes.
	lines []shape.Polyline
	rect  []shape.Command
	xf    func(r2.Vec) r2.Vec
}

type raylibState struct {
	m         gg.Matrix
	lineWidth float64
	col       color.RGBA
}

// NewRaylibSurface creates a surface for a w x h window.
func NewRaylibSurface(w, h int) *RaylibSurface {
	s := &RaylibSurface{
		width:     w,
		height:    h,
		m:         gg.Identity(),
		lineWidth: 1,
		stack:     make([]raylibState, 0, 8),
	}
	s.xf = func(p r2.Vec) r2.Vec {
		x, y := s.m.TransformPoint(p.X, p.Y)
		return r2.Vec{X: x, Y: y}
	}
	return s
}

func (s *RaylibSurface) Size() (int, int) { return s.width, s.height }

func (s *RaylibSurface) Resize(w, h int) {
	s.width, s.height = w, h
}

func (s *RaylibSurface) Clear(c color.RGBA) {
	s.m = gg.Identity()
	s.stack = s.stack[:0]
	rl.ClearBackground(c)
}

func (s *RaylibSurface) Save() {
	s.stack = append(s.stack, raylibState{m: s.m, lineWidth: s.lineWidth, col: s.col})
}

func (s *RaylibSurface) Restore() {
	if len(s.stack) == 0 {
		return
	}
	st := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	s.m, s.lineWidth, s.col = st.m, st.lineWidth, st.col
}

func (s *RaylibSurface) Translate(x, y float64) { s.m = s.m.Translate(x, y) }

func (s *RaylibSurface) Rotate(radians float64) { s.m = s.m.Rotate(radians) }

func (s *RaylibSurface) Scale(f float64) { s.m = s.m.Scale(f, f) }

func (s *RaylibSurface) SetLineWidth(w float64) { s.lineWidth = w }

// raylib colors are straight alpha, so NRGBA maps across field by field.
func (s *RaylibSurface) SetStrokeColor(c color.NRGBA) {
	s.col = color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func (s *RaylibSurface) StrokeRect(x, y, w, h float64) {
	s.rect = shape.AppendRect(s.rect[:0], x, y, w, h)
	s.StrokeOutline(shape.Outline{Commands: s.rect})
}

func (s *RaylibSurface) StrokeRoundedRect(x, y, w, h, r float64) {
	s.rect = shape.AppendRoundedRect(s.rect[:0], x, y, w, h, r)
	s.StrokeOutline(shape.Outline{Commands: s.rect})
}

func (s *RaylibSurface) StrokeOutline(o shape.Outline) {
	thick := float32(s.lineWidth * uniformScale(s.m))
	s.lines = o.Flatten(s.xf, flattenTolerance, s.lines)
	for _, line := range s.lines {
		for i := 1; i < len(line); i++ {
			a, b := line[i-1], line[i]
			rl.DrawLineEx(
				rl.Vector2{X: float32(a.X), Y: float32(a.Y)},
				rl.Vector2{X: float32(b.X), Y: float32(b.Y)},
				thick, s.col,
			)
		}
	}
}

// uniformScale returns the length scale of m, assuming no shear.
func uniformScale(m gg.Matrix) float64 {
	return math.Sqrt(math.Abs(m.XX*m.YY - m.YX*m.XY))
}
