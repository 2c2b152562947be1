package telemetry

import "github.com/pthm-cable/pulse/systems"

// Collector accumulates per-frame events and produces WindowStats.
type Collector struct {
	windowFrames     uint64
	windowStartFrame uint64

	// Event counters for current window
	spawned        int
	dropped        int
	expired        int
	engagedFrames  int
	peakPopulation int

	// Scratch buffers for distributions, reused across flushes.
	ages  []float64
	sizes []float64
}

// NewCollector creates a collector flushing every windowFrames frames.
func NewCollector(windowFrames int) *Collector {
	if windowFrames < 1 {
		windowFrames = 1
	}
	return &Collector{windowFrames: uint64(windowFrames)}
}

// FrameRecord is what one frame contributes to the window.
type FrameRecord struct {
	Spawned    int
	Dropped    int
	Expired    int
	Engaged    bool
	Population int
}

// Record adds one frame's events.
func (c *Collector) Record(r FrameRecord) {
	c.spawned += r.Spawned
	c.dropped += r.Dropped
	c.expired += r.Expired
	if r.Engaged {
		c.engagedFrames++
	}
	if r.Population > c.peakPopulation {
		c.peakPopulation = r.Population
	}
}

// ShouldFlush returns true if enough frames have passed to flush the window.
func (c *Collector) ShouldFlush(frame uint64) bool {
	return frame-c.windowStartFrame >= c.windowFrames
}

// Flush produces a WindowStats from the live particles and resets counters
// for the next window.
func (c *Collector) Flush(frame uint64, particles []systems.Particle) WindowStats {
	c.ages = c.ages[:0]
	c.sizes = c.sizes[:0]
	for i := range particles {
		c.ages = append(c.ages, float64(particles[i].Age))
		c.sizes = append(c.sizes, particles[i].Size)
	}
	age := Describe(c.ages)
	size := Describe(c.sizes)

	stats := WindowStats{
		WindowStartFrame: c.windowStartFrame,
		WindowEndFrame:   frame,
		Population:       len(particles),
		PeakPopulation:   c.peakPopulation,
		Spawned:          c.spawned,
		Dropped:          c.dropped,
		Expired:          c.expired,
		EngagedFrames:    c.engagedFrames,
		AgeMean:          age.Mean,
		AgeP10:           age.P10,
		AgeP50:           age.P50,
		AgeP90:           age.P90,
		SizeMean:         size.Mean,
		SizeStd:          size.Std,
		SizeP50:          size.P50,
		SizeP90:          size.P90,
	}

	// Reset for next window
	c.windowStartFrame = frame
	c.spawned = 0
	c.dropped = 0
	c.expired = 0
	c.engagedFrames = 0
	c.peakPopulation = len(particles)

	return stats
}

// WindowFrames returns the number of frames per window.
func (c *Collector) WindowFrames() uint64 {
	return c.windowFrames
}
