package renderer

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Stroke saturation and lightness are fixed; only hue and alpha vary.
const (
	StrokeSaturation = 0.8
	StrokeLightness  = 0.6
)

// DefaultBackground is the near-black clear color.
var DefaultBackground = color.RGBA{R: 0x09, G: 0x09, B: 0x0b, A: 0xff}

// StrokeColor returns the HSL stroke color for hue (degrees) at alpha in [0,1].
func StrokeColor(hue, alpha float64) color.NRGBA {
	r, g, b := colorful.Hsl(hue, StrokeSaturation, StrokeLightness).Clamped().RGB255()
	alpha = math.Max(0, math.Min(1, alpha))
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(alpha * 255))}
}

// ParseBackground parses a hex color such as "#09090b". The empty string
// yields DefaultBackground.
func ParseBackground(hex string) (color.RGBA, error) {
	if hex == "" {
		return DefaultBackground, nil
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("parsing background color: %w", err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}
