package systems

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/pulse/config"
)

// Particle is one emitted shape. Particles never translate: they grow, spin
// and fade in place.
type Particle struct {
	Pos      r2.Vec
	Size     float64
	Age      int
	Hue      float64 // degrees, fixed at spawn
	Rotation float64 // radians
	// Speed is the config speed captured at spawn. Growth reads the live
	// config instead, so this is kept only as a record of spawn conditions.
	Speed float64
	ID    uint64
}

// Store is a dense, spawn-ordered particle collection with a hard cap.
// Removal happens by stable in-place compaction; the backing array is
// allocated once.
type Store struct {
	Particles    []Particle
	maxParticles int
}

// NewStore creates a store holding at most maxParticles. A non-positive
// limit selects config.MaxParticles.
func NewStore(maxParticles int) *Store {
	if maxParticles <= 0 {
		maxParticles = config.MaxParticles
	}
	return &Store{
		Particles:    make([]Particle, 0, maxParticles),
		maxParticles: maxParticles,
	}
}

// Push appends p unless the store is full. It reports whether p was stored.
func (s *Store) Push(p Particle) bool {
	if len(s.Particles) >= s.maxParticles {
		return false
	}
	s.Particles = append(s.Particles, p)
	return true
}

// Count returns the current number of live particles.
func (s *Store) Count() int {
	return len(s.Particles)
}

// Cap returns the population limit.
func (s *Store) Cap() int {
	return s.maxParticles
}

// Full reports whether the population limit has been reached.
func (s *Store) Full() bool {
	return len(s.Particles) >= s.maxParticles
}

// Clear drops all particles, keeping the backing array.
func (s *Store) Clear() {
	s.Particles = s.Particles[:0]
}

// Retain keeps the particles for which keep returns true, preserving their
// relative order, and returns how many were removed.
func (s *Store) Retain(keep func(*Particle) bool) int {
	alive := 0
	for i := range s.Particles {
		if !keep(&s.Particles[i]) {
			continue
		}
		if i != alive {
			s.Particles[alive] = s.Particles[i]
		}
		alive++
	}
	removed := len(s.Particles) - alive
	s.Particles = s.Particles[:alive]
	return removed
}
