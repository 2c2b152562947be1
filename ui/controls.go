package ui

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pulse/config"
	"github.com/pthm-cable/pulse/renderer"
	"github.com/pthm-cable/pulse/shape"
)

// ControlsPanel renders sliders for every Sim parameter plus the shape
// picker. Draw returns a new Sim when anything changed; the caller
// publishes it and the engine picks it up on the next frame.
type ControlsPanel struct {
	renderer *Renderer
	sections []SectionDescriptor
	uploader *ShapeUploader
	x, y     int32
	width    int32
	height   int32
	visible  bool

	status string
}

// NewControlsPanel creates a controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		sections: DefaultSections(),
		uploader: NewShapeUploader(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Toggle toggles panel visibility and returns new state.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// OpenUpload starts the SVG file dialog.
func (c *ControlsPanel) OpenUpload() {
	if c.uploader.Open() {
		c.status = "choosing file..."
	}
}

// Draw renders the panel for sim and returns the edited copy and whether
// it differs from sim.
func (c *ControlsPanel) Draw(sim config.Sim) (config.Sim, bool) {
	changed := false

	// Uploads finish asynchronously; apply them even while hidden.
	if res, ok := c.uploader.Poll(); ok {
		if res.Err != nil {
			c.status = "upload failed: " + shortError(res.Err)
		} else {
			sim = sim.WithShape(res.Shape)
			c.status = "loaded " + res.Shape.Name
			changed = true
		}
	}

	if !c.visible {
		return sim, changed
	}

	r := c.renderer
	th := r.Theme
	pad := th.Padding
	inner := c.width - 2*pad

	r.DrawPanel(c.x, c.y, c.width, c.height)

	x := c.x + pad
	y := c.y + pad

	for _, sec := range c.sections {
		y = r.DrawSectionHeader(x, y, sec.Title)
		for _, d := range sec.Sliders {
			var raw float64
			raw, y = r.DrawSlider(x, y, d, d.Get(sim), inner)
			if next, ok := Apply(sim, d, raw); ok {
				sim = next
				changed = true
			}
		}
		y = r.DrawSpacer(y, 4)
	}
	y = r.DrawColorSwatch(x, y, "Base Color", hueSwatch(sim.BaseHue))
	y = r.DrawSpacer(y, 4)

	y = r.DrawSectionHeader(x, y, "SHAPE")
	active := activeShapeName(sim)
	btnW := (inner - 3*4) / 4
	for i, name := range shape.PresetNames {
		label := strings.ToUpper(name[:1]) + name[1:]
		if name == active {
			label = "[" + label + "]"
		}
		bx := x + int32(i)*(btnW+4)
		if r.DrawButton(bx, y, btnW, 22, label) && name != active {
			d, _ := shape.Preset(name) // nil for the square
			sim = sim.WithShape(d)
			changed = true
			c.status = ""
		}
	}
	y += 26

	uploadLabel := "Upload SVG"
	if c.uploader.Pending() {
		uploadLabel = "Waiting..."
	}
	if r.DrawButton(x, y, inner, 22, uploadLabel) {
		c.OpenUpload()
	}
	y += 26

	if sim.CustomShape != nil && !isPreset(sim.CustomShape.Name) {
		y = r.DrawLabelValue(x, y, "Custom", sim.CustomShape.Name)
	}
	if c.status != "" {
		rl.DrawText(c.status, x, y, th.FontSize, th.Accent)
		y += th.LineHeight
	}

	if r.DrawButton(x, y, inner, 22, "Reset") {
		sim = config.DefaultSim()
		changed = true
		c.status = ""
	}
	y += 26

	c.height = y - c.y + pad/2
	return sim, changed
}

// hueSwatch is the full-opacity stroke color for hue.
func hueSwatch(hue float64) rl.Color {
	c := renderer.StrokeColor(hue, 1)
	return rl.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

func activeShapeName(sim config.Sim) string {
	if sim.CustomShape == nil {
		return shape.PresetSquare
	}
	return sim.CustomShape.Name
}

func isPreset(name string) bool {
	_, ok := shape.Preset(name)
	return ok
}

// shortError keeps status lines to one row.
func shortError(err error) string {
	s := err.Error()
	if len(s) > 40 {
		s = fmt.Sprintf("%.37s...", s)
	}
	return s
}
