package renderer

import (
	"image/color"

	"github.com/pthm-cable/pulse/config"
	"github.com/pthm-cable/pulse/systems"
)

const (
	// MinOpacity is the linear opacity at or below which a particle is not drawn.
	MinOpacity = 0.01
	// MinScale is the smallest custom-shape scale still drawn.
	MinScale = 0.0001
)

// ParticleRenderer draws particles as stroked outlines.
type ParticleRenderer struct {
	Background color.RGBA
}

// NewParticleRenderer creates a particle renderer clearing to bg.
func NewParticleRenderer(bg color.RGBA) *ParticleRenderer {
	return &ParticleRenderer{Background: bg}
}

// DrawStats counts what one Draw call did.
type DrawStats struct {
	Drawn   int
	Skipped int
}

// Opacity returns the linear remaining-life fraction and the eased display
// opacity (its square).
func Opacity(age, lifespan int) (linear, display float64) {
	if lifespan <= 0 {
		return 0, 0
	}
	linear = 1 - float64(age)/float64(lifespan)
	return linear, linear * linear
}

// Draw clears the surface and strokes every visible particle. Nothing from
// earlier frames survives the clear.
func (r *ParticleRenderer) Draw(s Surface, particles []systems.Particle, cfg config.Sim) DrawStats {
	var stats DrawStats
	s.Clear(r.Background)

	custom := cfg.CustomShape
	for i := range particles {
		p := &particles[i]

		linear, alpha := Opacity(p.Age, cfg.Lifespan)
		if linear <= MinOpacity {
			stats.Skipped++
			continue
		}

		s.Save()
		s.SetStrokeColor(StrokeColor(p.Hue, alpha))
		s.Translate(p.Pos.X, p.Pos.Y)
		s.Rotate(p.Rotation)

		if custom != nil {
			scale := custom.Scale(p.Size)
			if scale <= MinScale {
				s.Restore()
				stats.Skipped++
				continue
			}
			s.Scale(scale)
			// Divide out the scale so strokes stay cfg.StrokeWidth on screen.
			s.SetLineWidth(cfg.StrokeWidth / scale)
			c := custom.Frame.Recenter()
			s.Translate(c.X, c.Y)
			s.StrokeOutline(custom.Outline)
		} else {
			size := p.Size
			s.SetLineWidth(cfg.StrokeWidth)
			radius := min(size/2, cfg.ShapeRoundness)
			if radius > 0 {
				s.StrokeRoundedRect(-size/2, -size/2, size, size, radius)
			} else {
				s.StrokeRect(-size/2, -size/2, size, size)
			}
		}

		s.Restore()
		stats.Drawn++
	}
	return stats
}
