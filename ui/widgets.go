package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a section header and returns the new Y position.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight
}

// DrawLabelValue draws a label and value on the same line.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawColorSwatch draws a small color swatch with label.
func (r *Renderer) DrawColorSwatch(x, y int32, label string, color rl.Color) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	swatchX := x + r.Theme.LabelWidth
	rl.DrawRectangle(swatchX, y, 40, 12, color)
	rl.DrawRectangleLines(swatchX, y, 40, 12, r.Theme.PanelBorder)
	return y + r.Theme.LineHeight
}

// DrawSpacer returns Y position after adding vertical space.
func (r *Renderer) DrawSpacer(y int32, amount int32) int32 {
	return y + amount
}

// DrawSlider draws a labelled raygui slider for d and returns the raw
// slider value along with the new Y position.
func (r *Renderer) DrawSlider(x, y int32, d SliderDescriptor, value float64, width int32) (float64, int32) {
	label := fmt.Sprintf("%s  "+d.Format, d.Label, value)
	rl.DrawText(label, x, y, r.Theme.FontSize, r.Theme.LabelColor)
	y += r.Theme.LineHeight

	bounds := rl.Rectangle{
		X:      float32(x),
		Y:      float32(y),
		Width:  float32(width),
		Height: float32(r.Theme.SliderHeight),
	}
	raw := gui.SliderBar(bounds, "", "", float32(value), float32(d.Min), float32(d.Max))
	return float64(raw), y + r.Theme.SliderHeight + 6
}

// DrawButton draws a raygui button and reports whether it was clicked.
func (r *Renderer) DrawButton(x, y, width, height int32, text string) bool {
	return gui.Button(rl.Rectangle{
		X:      float32(x),
		Y:      float32(y),
		Width:  float32(width),
		Height: float32(height),
	}, text)
}
