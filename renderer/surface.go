// Package renderer draws live particles onto an immediate-mode 2D surface.
package renderer

import (
	"image/color"

	"github.com/pthm-cable/pulse/shape"
)

// Surface is an immediate-mode 2D raster target with canvas semantics:
// transforms compose onto a current matrix saved and restored as a stack,
// and the line width is expressed in user units, so it scales with the
// current transform.
type Surface interface {
	Size() (w, h int)
	Resize(w, h int)
	Clear(c color.RGBA)

	Save()
	Restore()
	Translate(x, y float64)
	Rotate(radians float64)
	Scale(s float64)

	SetLineWidth(w float64)
	SetStrokeColor(c color.NRGBA)

	StrokeRect(x, y, w, h float64)
	StrokeRoundedRect(x, y, w, h, r float64)
	StrokeOutline(o shape.Outline)
}
