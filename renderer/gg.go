package renderer

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/pthm-cable/pulse/shape"
)

// GGSurface is a software Surface backed by a gg context. It is used for
// headless runs, frame dumps and tests.
//
// gg strokes with a device-space width, so the surface tracks the uniform
// scale of the current transform and applies it at stroke time.
type GGSurface struct {
	dc        *gg.Context
	lineWidth float64
	scale     float64
	stack     []ggState
}

type ggState struct {
	lineWidth float64
	scale     float64
}

// NewGGSurface creates a w x h software surface.
func NewGGSurface(w, h int) *GGSurface {
	return &GGSurface{
		dc:        gg.NewContext(w, h),
		lineWidth: 1,
		scale:     1,
		stack:     make([]ggState, 0, 8),
	}
}

func (s *GGSurface) Size() (int, int) {
	return s.dc.Width(), s.dc.Height()
}

// Resize replaces the backing image. The old contents are discarded.
func (s *GGSurface) Resize(w, h int) {
	if w == s.dc.Width() && h == s.dc.Height() {
		return
	}
	s.dc = gg.NewContext(w, h)
	s.lineWidth, s.scale = 1, 1
	s.stack = s.stack[:0]
}

func (s *GGSurface) Clear(c color.RGBA) {
	s.dc.Identity()
	s.dc.SetColor(c)
	s.dc.Clear()
}

func (s *GGSurface) Save() {
	s.stack = append(s.stack, ggState{lineWidth: s.lineWidth, scale: s.scale})
	s.dc.Push()
}

func (s *GGSurface) Restore() {
	if len(s.stack) == 0 {
		return
	}
	st := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	s.lineWidth, s.scale = st.lineWidth, st.scale
	s.dc.Pop()
}

func (s *GGSurface) Translate(x, y float64) { s.dc.Translate(x, y) }

func (s *GGSurface) Rotate(radians float64) { s.dc.Rotate(radians) }

func (s *GGSurface) Scale(f float64) {
	s.scale *= f
	s.dc.Scale(f, f)
}

func (s *GGSurface) SetLineWidth(w float64) { s.lineWidth = w }

func (s *GGSurface) SetStrokeColor(c color.NRGBA) { s.dc.SetColor(c) }

// DeviceLineWidth returns the on-screen stroke width the next stroke uses.
func (s *GGSurface) DeviceLineWidth() float64 {
	return s.lineWidth * s.scale
}

func (s *GGSurface) StrokeRect(x, y, w, h float64) {
	s.dc.DrawRectangle(x, y, w, h)
	s.stroke()
}

func (s *GGSurface) StrokeRoundedRect(x, y, w, h, r float64) {
	s.dc.DrawRoundedRectangle(x, y, w, h, r)
	s.stroke()
}

func (s *GGSurface) StrokeOutline(o shape.Outline) {
	dc := s.dc
	dc.NewSubPath()
	for _, c := range o.Commands {
		switch c.Op {
		case shape.OpMoveTo:
			dc.MoveTo(c.Pts[0].X, c.Pts[0].Y)
		case shape.OpLineTo:
			dc.LineTo(c.Pts[0].X, c.Pts[0].Y)
		case shape.OpQuadTo:
			dc.QuadraticTo(c.Pts[0].X, c.Pts[0].Y, c.Pts[1].X, c.Pts[1].Y)
		case shape.OpCubicTo:
			dc.CubicTo(c.Pts[0].X, c.Pts[0].Y, c.Pts[1].X, c.Pts[1].Y, c.Pts[2].X, c.Pts[2].Y)
		case shape.OpClose:
			dc.ClosePath()
		}
	}
	s.stroke()
}

func (s *GGSurface) stroke() {
	s.dc.SetLineWidth(s.DeviceLineWidth())
	s.dc.Stroke()
}

// Image returns the current raster.
func (s *GGSurface) Image() image.Image {
	return s.dc.Image()
}

// SavePNG writes the current raster to path.
func (s *GGSurface) SavePNG(path string) error {
	if err := s.dc.SavePNG(path); err != nil {
		return fmt.Errorf("saving frame: %w", err)
	}
	return nil
}
