// Package game owns the per-frame pipeline: drain input, snapshot the
// config, emit, step, render and record telemetry.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sync/atomic"

	"github.com/pthm-cable/pulse/config"
	"github.com/pthm-cable/pulse/input"
	"github.com/pthm-cable/pulse/renderer"
	"github.com/pthm-cable/pulse/shape"
	"github.com/pthm-cable/pulse/systems"
	"github.com/pthm-cable/pulse/telemetry"
	"github.com/pthm-cable/pulse/ui"
)

// eventBuffer is the capacity of the input queue. Events beyond it are
// dropped, never blocked on.
const eventBuffer = 256

// Options configures a Game beyond what the config file holds.
type Options struct {
	Headless    bool
	LogStats    bool
	OutputDir   string // CSV and config snapshot output (empty = disabled)
	FramesDir   string // PNG frame dumps in headless mode (empty = config value)
	SnapshotDir string // JSON state snapshots on bookmarks (empty = disabled)
	RestorePath string // resume from a saved snapshot
	Seed        int64

	// Config overrides the global config when set.
	Config *config.Config

	// StatsCallback receives every flushed stats window.
	StatsCallback func(telemetry.WindowStats)
}

// Game holds the complete engine state.
type Game struct {
	cfg *config.Config
	rng *rand.Rand

	// Published parameters, read once at the top of every frame.
	sim atomic.Pointer[config.Sim]
	// Parameters in effect for the current frame.
	current config.Sim

	events chan input.Event

	store   *systems.Store
	state   systems.FrameState
	emitter *systems.Emitter
	tracker *input.Tracker

	particles *renderer.ParticleRenderer
	surface   renderer.Surface
	canvas    *renderer.GGSurface // headless only
	lastDraw  renderer.DrawStats

	// Telemetry
	perf          *telemetry.PerfCollector
	collector     *telemetry.Collector
	bookmarks     *telemetry.BookmarkDetector
	output        *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)
	snapshotDir   string

	// Headless
	headless   bool
	autopilot  *Autopilot
	framesDir  string
	frameEvery uint64

	// Window UI
	win       windowInput
	hud       *ui.HUD
	controls  *ui.ControlsPanel
	perfPanel *ui.PerfPanel
	showPerf  bool

	screenWidth, screenHeight float32

	panics atomic.Uint64
}

// NewGameWithOptions creates a game from opts.Config, or the global config
// when that is nil.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	bg, err := renderer.ParseBackground(cfg.Screen.Background)
	if err != nil {
		slog.Warn("bad background color, using default", "value", cfg.Screen.Background, "error", err)
		bg = renderer.DefaultBackground
	}

	w, h := cfg.Screen.Width, cfg.Screen.Height
	g := &Game{
		cfg:           cfg,
		rng:           rand.New(rand.NewSource(opts.Seed)),
		events:        make(chan input.Event, eventBuffer),
		store:         systems.NewStore(config.MaxParticles),
		emitter:       systems.NewEmitter(),
		tracker:       input.NewTracker(float64(w), float64(h)),
		particles:     renderer.NewParticleRenderer(bg),
		perf:          telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		collector:     telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		bookmarks:     telemetry.NewBookmarkDetector(cfg.Telemetry.BookmarkHistory),
		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,
		snapshotDir:   opts.SnapshotDir,
		headless:      opts.Headless,
		framesDir:     cfg.Headless.FramesDir,
		frameEvery:    uint64(max(cfg.Headless.FrameEvery, 1)),
		screenWidth:   float32(w),
		screenHeight:  float32(h),
	}
	if opts.FramesDir != "" {
		g.framesDir = opts.FramesDir
	}

	sim := cfg.Simulation
	g.sim.Store(&sim)
	g.current = sim

	if opts.Headless {
		g.canvas = renderer.NewGGSurface(w, h)
		g.surface = g.canvas
		if cfg.Headless.Autopilot {
			g.autopilot = NewAutopilot(cfg.Headless, float64(w), float64(h), g.rng)
		}
	} else {
		g.surface = renderer.NewRaylibSurface(w, h)
		g.hud = ui.NewHUD()
		g.controls = ui.NewControlsPanel(int32(w)-250, 10, 240)
		g.perfPanel = ui.NewPerfPanel(10, 110)
	}

	if opts.RestorePath != "" {
		if err := g.restore(opts.RestorePath); err != nil {
			return nil, err
		}
	}

	g.output, err = telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}
	if g.output != nil {
		slog.Info("writing run output", "dir", g.output.Dir())
	}
	if err := g.output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	return g, nil
}

// SetConfig publishes new parameters. It is safe to call from any
// goroutine; the running frame keeps its snapshot and the change takes
// effect at the start of the next frame.
func (g *Game) SetConfig(sim config.Sim) {
	g.sim.Store(&sim)
}

// Config returns the most recently published parameters.
func (g *Game) Config() config.Sim {
	return *g.sim.Load()
}

// SetShape publishes d as the particle outline (nil = square), keeping
// every other parameter. Safe to call from any goroutine.
func (g *Game) SetShape(d *shape.Descriptor) {
	for {
		old := g.sim.Load()
		next := old.WithShape(d)
		if g.sim.CompareAndSwap(old, &next) {
			return
		}
	}
}

// Send queues an input event for the next frame. It never blocks and
// reports false if the queue is full.
func (g *Game) Send(e input.Event) bool {
	select {
	case g.events <- e:
		return true
	default:
		return false
	}
}

// Frame runs one complete simulation frame. render controls whether the
// particles are drawn to the surface this frame.
func (g *Game) Frame(render bool) {
	g.perf.StartFrame()

	g.perf.StartPhase(telemetry.PhaseInput)
	g.state.Begin()
	g.drainEvents()
	g.current = *g.sim.Load()
	in := g.tracker.State()
	edge := g.tracker.TakePressEdge()

	g.perf.StartPhase(telemetry.PhaseEmit)
	emitted := g.emitter.Emit(&g.state, in, edge, g.current, g.store)

	g.perf.StartPhase(telemetry.PhaseStep)
	expired := systems.Step(g.store, g.current)

	if render {
		g.perf.StartPhase(telemetry.PhaseRender)
		g.lastDraw = g.particles.Draw(g.surface, g.store.Particles, g.current)
	}

	g.perf.StartPhase(telemetry.PhaseTelemetry)
	g.collector.Record(telemetry.FrameRecord{
		Spawned:    emitted.Spawned,
		Dropped:    emitted.Dropped,
		Expired:    expired,
		Engaged:    in.Engaged,
		Population: g.store.Count(),
	})
	g.flushTelemetry()

	g.perf.EndFrame()
}

// drainEvents applies every queued input event without blocking.
func (g *Game) drainEvents() {
	for {
		select {
		case e := <-g.events:
			if e.Kind == input.EventResize {
				g.resize(int(e.X), int(e.Y))
			}
			g.tracker.Apply(e, g.state.Frame)
		default:
			return
		}
	}
}

// resize updates the surface. Particles keep their coordinates.
func (g *Game) resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	g.screenWidth = float32(w)
	g.screenHeight = float32(h)
	g.surface.Resize(w, h)
	if g.autopilot != nil {
		g.autopilot.Resize(float64(w), float64(h))
	}
	if g.controls != nil {
		g.controls.SetPosition(int32(w)-250, 10)
	}
}

// restore loads a saved snapshot into the engine.
func (g *Game) restore(path string) error {
	snap, err := telemetry.LoadSnapshot(path)
	if err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	state, sim, particles, err := snap.Restore()
	if err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	g.state = state
	g.SetConfig(sim)
	g.current = sim
	g.store.Clear()
	for _, p := range particles {
		if !g.store.Push(p) {
			slog.Warn("snapshot exceeds population cap", "path", path, "particles", len(particles))
			break
		}
	}
	slog.Info("restored snapshot", "path", path, "frame", state.Frame, "particles", g.store.Count())
	return nil
}

// FrameCount returns the number of frames run.
func (g *Game) FrameCount() uint64 {
	return g.state.Frame
}

// Population returns the number of live particles.
func (g *Game) Population() int {
	return g.store.Count()
}

// Particles returns the live particles in spawn order. The slice is only
// valid until the next frame.
func (g *Game) Particles() []systems.Particle {
	return g.store.Particles
}

// Unload releases resources and flushes output files.
func (g *Game) Unload() {
	if err := g.output.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
