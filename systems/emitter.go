package systems

import (
	"math"

	"github.com/pthm-cable/pulse/config"
	"github.com/pthm-cable/pulse/input"
)

// Emitter decides how many particles to create each frame from the pointer
// state and the configured spawn period.
type Emitter struct {
	// ImmediateFirstSpawn raises the debt to a full period on a press so the
	// first particle appears on the press frame instead of one period later.
	ImmediateFirstSpawn bool
}

// NewEmitter returns an emitter with immediate first spawn enabled.
func NewEmitter() *Emitter {
	return &Emitter{ImmediateFirstSpawn: true}
}

// EmitResult counts the outcome of one Emit call.
type EmitResult struct {
	Spawned int
	Dropped int // spawns suppressed by the population cap
}

// Emit banks one frame unit of debt while engaged and spawns a particle at
// the pointer for every full period. Released pointers forfeit their debt.
// At the cap, debt is still consumed so nothing is owed once room returns.
func (e *Emitter) Emit(fs *FrameState, in input.State, pressEdge bool, cfg config.Sim, store *Store) EmitResult {
	var res EmitResult
	if !in.Engaged {
		fs.SpawnDebt = 0
		return res
	}

	period := cfg.Period()
	if pressEdge && e.ImmediateFirstSpawn && fs.SpawnDebt < period {
		fs.SpawnDebt = period
	}
	fs.SpawnDebt++

	if fs.SpawnDebt < period {
		return res
	}

	// Every particle spawned this frame shares the same drifted hue.
	hue := SpawnHue(cfg, fs.Frame)
	rotation := cfg.InitialRotation * math.Pi / 180

	for fs.SpawnDebt >= period {
		fs.SpawnDebt -= period
		if store.Full() {
			res.Dropped++
			continue
		}
		store.Push(Particle{
			Pos:      in.Pos,
			Size:     cfg.InitialSize,
			Hue:      hue,
			Rotation: rotation,
			Speed:    cfg.Speed,
			ID:       fs.NextID,
		})
		fs.NextID++
		res.Spawned++
	}
	return res
}

// SpawnHue returns the global drifting hue for particles spawned on frame.
// HueRange does not take part.
func SpawnHue(cfg config.Sim, frame uint64) float64 {
	offset := math.Mod(float64(frame)*cfg.ColorCycleSpeed, 360)
	return wrapDegrees(cfg.BaseHue + offset)
}

func wrapDegrees(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}
