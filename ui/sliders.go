package ui

import "github.com/pthm-cable/pulse/config"

// DefaultSections returns the control layout: emission, appearance, then
// color and motion.
func DefaultSections() []SectionDescriptor {
	return []SectionDescriptor{
		{
			ID:    "emission",
			Title: "EMISSION",
			Sliders: []SliderDescriptor{
				{
					ID: "speed", Label: "Speed", Format: "%.1f", Min: 0.5, Max: 10, Step: 0.1,
					Get: func(s config.Sim) float64 { return s.Speed },
					Set: func(s *config.Sim, v float64) { s.Speed = v },
				},
				{
					ID: "frequency", Label: "Frequency", Format: "%.1f", Min: 0.1, Max: 20, Step: 0.1,
					Get: func(s config.Sim) float64 { return s.Frequency },
					Set: func(s *config.Sim, v float64) { s.Frequency = v },
				},
				{
					ID: "lifespan", Label: "Lifespan", Format: "%.0f", Min: 50, Max: 500, Step: 10,
					Get: func(s config.Sim) float64 { return float64(s.Lifespan) },
					Set: func(s *config.Sim, v float64) { s.Lifespan = int(v + 0.5) },
				},
			},
		},
		{
			ID:    "appearance",
			Title: "APPEARANCE",
			Sliders: []SliderDescriptor{
				{
					ID: "stroke_width", Label: "Stroke Width", Format: "%.1f", Min: 0.5, Max: 10, Step: 0.5,
					Get: func(s config.Sim) float64 { return s.StrokeWidth },
					Set: func(s *config.Sim, v float64) { s.StrokeWidth = v },
				},
				{
					ID: "initial_size", Label: "Initial Size", Format: "%.0f", Min: 0, Max: 100, Step: 5,
					Get: func(s config.Sim) float64 { return s.InitialSize },
					Set: func(s *config.Sim, v float64) { s.InitialSize = v },
				},
				{
					ID: "shape_roundness", Label: "Corner Roundness", Format: "%.0f", Min: 0, Max: 50, Step: 1,
					Get: func(s config.Sim) float64 { return s.ShapeRoundness },
					Set: func(s *config.Sim, v float64) { s.ShapeRoundness = v },
				},
			},
		},
		{
			ID:    "color_motion",
			Title: "COLOR & MOTION",
			Sliders: []SliderDescriptor{
				{
					ID: "base_hue", Label: "Base Hue", Format: "%.0f", Min: 0, Max: 360, Step: 1,
					Get: func(s config.Sim) float64 { return s.BaseHue },
					Set: func(s *config.Sim, v float64) { s.BaseHue = v },
				},
				{
					ID: "hue_range", Label: "Hue Range", Format: "%.0f", Min: 0, Max: 360, Step: 5,
					Get: func(s config.Sim) float64 { return s.HueRange },
					Set: func(s *config.Sim, v float64) { s.HueRange = v },
				},
				{
					ID: "color_cycle_speed", Label: "Cycle Speed", Format: "%.1f", Min: 0, Max: 5, Step: 0.1,
					Get: func(s config.Sim) float64 { return s.ColorCycleSpeed },
					Set: func(s *config.Sim, v float64) { s.ColorCycleSpeed = v },
				},
				{
					ID: "initial_rotation", Label: "Initial Rotation", Format: "%.0f", Min: 0, Max: 360, Step: 5,
					Get: func(s config.Sim) float64 { return s.InitialRotation },
					Set: func(s *config.Sim, v float64) { s.InitialRotation = v },
				},
				{
					ID: "rotation_speed", Label: "Rotation Speed", Format: "%.1f", Min: -5, Max: 5, Step: 0.1,
					Get: func(s config.Sim) float64 { return s.RotationSpeed },
					Set: func(s *config.Sim, v float64) { s.RotationSpeed = v },
				},
			},
		},
	}
}

// Apply sets slider d on a copy of s and reports whether the value changed.
func Apply(s config.Sim, d SliderDescriptor, raw float64) (config.Sim, bool) {
	v := d.Quantize(raw)
	// Compare on the slider grid so float32 widget round trips are not edits.
	if v == d.Quantize(d.Get(s)) {
		return s, false
	}
	d.Set(&s, v)
	return s, true
}
