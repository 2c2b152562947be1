package game

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/pulse/config"
	"github.com/pthm-cable/pulse/input"
)

// Lissajous frequency ratio of the sweep.
const (
	sweepFreqX = 3.0
	sweepFreqY = 2.0
)

// sweepExtent is the fraction of the viewport half-size the sweep covers.
const sweepExtent = 0.7

// Autopilot scripts pointer input for headless runs: a Lissajous sweep
// across the viewport, pressed for PressFrames then released for
// ReleaseFrames, repeating.
type Autopilot struct {
	width, height float64
	press         int
	release       int
	sweep         float64
	phase         float64
	t             int
}

// NewAutopilot creates an autopilot for a w x h viewport. The sweep phase
// is drawn from rng so seeded runs are reproducible.
func NewAutopilot(cfg config.HeadlessConfig, w, h float64, rng *rand.Rand) *Autopilot {
	return &Autopilot{
		width:   w,
		height:  h,
		press:   max(cfg.PressFrames, 0),
		release: max(cfg.ReleaseFrames, 0),
		sweep:   cfg.SweepSpeed,
		phase:   rng.Float64() * 2 * math.Pi,
	}
}

// Resize updates the sweep area.
func (a *Autopilot) Resize(w, h float64) {
	a.width, a.height = w, h
}

// Position returns the sweep point for step t.
func (a *Autopilot) Position(t int) (x, y float64) {
	theta := float64(t) * a.sweep
	x = a.width / 2 * (1 + sweepExtent*math.Sin(sweepFreqX*theta+a.phase))
	y = a.height / 2 * (1 + sweepExtent*math.Sin(sweepFreqY*theta))
	return x, y
}

// Next returns the input event for the coming frame.
func (a *Autopilot) Next() input.Event {
	t := a.t
	a.t++

	x, y := a.Position(t)
	move := input.Event{Kind: input.EventPointerMove, X: x, Y: y}
	if a.press == 0 {
		return move
	}

	cycle := a.press + a.release
	switch t % cycle {
	case 0:
		return input.Event{Kind: input.EventPointerDown, X: x, Y: y}
	case a.press:
		return input.Event{Kind: input.EventPointerUp, X: x, Y: y}
	}
	return move
}
