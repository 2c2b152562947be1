// Package ui provides a descriptor-driven control surface for the engine.
// Sliders are defined through metadata (range, step, accessor) rather than
// hard-coded per field, so adding a parameter means adding a descriptor.
package ui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pulse/config"
)

// SliderDescriptor defines one numeric control bound to a Sim field.
type SliderDescriptor struct {
	ID     string  // Unique identifier for the control
	Label  string  // Display label
	Format string  // Printf format for the value readout
	Min    float64 // Lower bound
	Max    float64 // Upper bound
	Step   float64 // Quantization step (0 = continuous)
	Get    func(config.Sim) float64
	Set    func(*config.Sim, float64)
}

// Quantize clamps v to the descriptor range and snaps it to Step.
func (d SliderDescriptor) Quantize(v float64) float64 {
	if v < d.Min {
		v = d.Min
	}
	if v > d.Max {
		v = d.Max
	}
	if d.Step > 0 {
		v = d.Min + math.Round((v-d.Min)/d.Step)*d.Step
		// Rounding can overshoot the top by a fraction of a step.
		v = math.Min(v, d.Max)
	}
	return v
}

// SectionDescriptor groups sliders under a header.
type SectionDescriptor struct {
	ID      string
	Title   string
	Sliders []SliderDescriptor
}

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	Accent         rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	SliderHeight   int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 24, G: 24, B: 27, A: 210},
		PanelBorder:    rl.Color{R: 39, G: 39, B: 42, A: 255},
		SectionHeader:  rl.Color{R: 113, G: 113, B: 122, A: 255},
		LabelColor:     rl.Color{R: 161, G: 161, B: 170, A: 255},
		ValueColor:     rl.Color{R: 228, G: 228, B: 231, A: 255},
		Accent:         rl.Color{R: 6, G: 182, B: 212, A: 255},
		Padding:        12,
		LineHeight:     16,
		LabelWidth:     110,
		SliderHeight:   12,
		FontSize:       12,
		HeaderFontSize: 12,
	}
}
