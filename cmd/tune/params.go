package main

import "github.com/pthm-cable/pulse/config"

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
	Apply   func(*config.Sim, float64)
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of tunable parameters, with
// bounds matching the controls panel.
func NewParamVector(base config.Sim) *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{
				Name: "frequency", Path: "simulation.frequency", Min: 0.1, Max: 20, Default: base.Frequency,
				Apply: func(s *config.Sim, v float64) { s.Frequency = v },
			},
			{
				Name: "lifespan", Path: "simulation.lifespan", Min: 50, Max: 500, Default: float64(base.Lifespan),
				Apply: func(s *config.Sim, v float64) { s.Lifespan = int(v + 0.5) },
			},
			{
				Name: "speed", Path: "simulation.speed", Min: 0.5, Max: 10, Default: base.Speed,
				Apply: func(s *config.Sim, v float64) { s.Speed = v },
			},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig applies clamped parameter values to cfg.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)
	for i, spec := range pv.Specs {
		spec.Apply(&cfg.Simulation, clamped[i])
	}
}
