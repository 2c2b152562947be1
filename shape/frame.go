package shape

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// DefaultFrameSize is the side of the authoring frame used when outline data
// arrives without usable bounds.
const DefaultFrameSize = 24.0

// Frame is the authoring-space rectangle an outline was drawn against.
type Frame struct {
	X      float64 `yaml:"x" json:"x"`
	Y      float64 `yaml:"y" json:"y"`
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

// DefaultFrame returns the 24x24 fallback frame at the origin.
func DefaultFrame() Frame {
	return Frame{Width: DefaultFrameSize, Height: DefaultFrameSize}
}

// Valid reports whether the frame has a positive, finite area.
func (f Frame) Valid() bool {
	for _, v := range [...]float64{f.X, f.Y, f.Width, f.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return f.Width > 0 && f.Height > 0
}

// Normalize returns f, or the default frame if f is degenerate.
func (f Frame) Normalize() Frame {
	if !f.Valid() {
		return DefaultFrame()
	}
	return f
}

// Center returns the midpoint of the frame.
func (f Frame) Center() r2.Vec {
	return r2.Vec{X: f.X + f.Width/2, Y: f.Y + f.Height/2}
}

// Recenter returns the translation that moves the frame center to the origin.
// It does not depend on the drawn size.
func (f Frame) Recenter() r2.Vec {
	return r2.Scale(-1, f.Center())
}

// MaxDim returns the larger of width and height, or DefaultFrameSize when
// both are zero.
func (f Frame) MaxDim() float64 {
	d := math.Max(f.Width, f.Height)
	if d <= 0 || math.IsNaN(d) {
		return DefaultFrameSize
	}
	return d
}

// ScaleFor returns the uniform scale that maps the frame's larger dimension
// onto size.
func (f Frame) ScaleFor(size float64) float64 {
	return size / f.MaxDim()
}
