package systems

import (
	"math"

	"github.com/pthm-cable/pulse/config"
)

// Step ages, grows and spins every particle, then removes the ones that
// reached their lifespan. Survivors keep their spawn order. It returns the
// number of particles removed.
//
// Growth uses the speed in cfg, not the speed each particle was spawned with.
func Step(store *Store, cfg config.Sim) int {
	spin := cfg.RotationSpeed * math.Pi / 180
	lifespan := cfg.Lifespan

	ps := store.Particles
	alive := 0
	for i := range ps {
		p := &ps[i]

		p.Age++
		p.Size += cfg.Speed
		p.Rotation += spin

		if p.Age >= lifespan {
			continue
		}

		if i != alive {
			ps[alive] = ps[i]
		}
		alive++
	}

	removed := len(ps) - alive
	store.Particles = ps[:alive]
	return removed
}
