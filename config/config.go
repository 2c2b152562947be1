// Package config provides configuration loading and access for the pulse engine.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/pulse/shape"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// MaxParticles is the hard population cap.
const MaxParticles = 2000

// MinPeriod floors the spawn period so a zero frequency cannot spin the
// emission loop.
const MinPeriod = 0.1

// Config holds all engine configuration parameters.
type Config struct {
	Screen     ScreenConfig    `yaml:"screen"`
	Simulation Sim             `yaml:"simulation"`
	Headless   HeadlessConfig  `yaml:"headless"`
	Telemetry  TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	TargetFPS  int    `yaml:"target_fps"`
	Title      string `yaml:"title"`
	Resizable  bool   `yaml:"resizable"`
	Background string `yaml:"background"` // hex, e.g. "#09090b"
}

// Sim is the tunable parameter set read at the top of every frame. Treat a
// Sim as an immutable snapshot: replace it wholesale, never edit one that
// has been published to a running engine.
type Sim struct {
	Speed           float64 `yaml:"speed"`            // growth in size units per frame
	Frequency       float64 `yaml:"frequency"`        // frames between spawns while pressed
	Lifespan        int     `yaml:"lifespan"`         // frames
	StrokeWidth     float64 `yaml:"stroke_width"`     // screen pixels
	BaseHue         float64 `yaml:"base_hue"`         // degrees [0,360)
	HueRange        float64 `yaml:"hue_range"`        // exposed to the controls, not applied at spawn
	ColorCycleSpeed float64 `yaml:"color_cycle_speed"` // degrees per frame
	RotationSpeed   float64 `yaml:"rotation_speed"`   // degrees per frame, signed
	InitialRotation float64 `yaml:"initial_rotation"` // degrees
	InitialSize     float64 `yaml:"initial_size"`
	ShapeRoundness  float64 `yaml:"shape_roundness"` // corner radius in pixels for the square
	Shape           string  `yaml:"shape"`           // preset name or svg file; empty = square

	// CustomShape is resolved from Shape at load time, or set directly by
	// the controls panel. Nil draws the square.
	CustomShape *shape.Descriptor `yaml:"-" json:"-"`
}

// Period returns the spawn period with the degenerate-frequency floor applied.
func (s Sim) Period() float64 {
	if !(s.Frequency > MinPeriod) {
		return MinPeriod
	}
	return s.Frequency
}

// WithShape returns a copy of s drawing d (nil = square).
func (s Sim) WithShape(d *shape.Descriptor) Sim {
	s.CustomShape = d
	if d == nil {
		s.Shape = shape.PresetSquare
	} else {
		s.Shape = d.Name
	}
	return s
}

// HeadlessConfig holds settings for windowless runs.
type HeadlessConfig struct {
	FrameIntervalMS int     `yaml:"frame_interval_ms"` // 0 = run as fast as possible
	FramesDir       string  `yaml:"frames_dir"`        // PNG dump directory (empty = no dumps)
	FrameEvery      int     `yaml:"frame_every"`       // dump every Nth frame
	Autopilot       bool    `yaml:"autopilot"`         // drive the pointer with a scripted sweep
	PressFrames     int     `yaml:"press_frames"`      // autopilot: frames held down per cycle
	ReleaseFrames   int     `yaml:"release_frames"`    // autopilot: frames released per cycle
	SweepSpeed      float64 `yaml:"sweep_speed"`       // autopilot: radians per frame
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         int `yaml:"stats_window"`          // frames per stats window
	PerfCollectorWindow int `yaml:"perf_collector_window"` // frames averaged for perf
	BookmarkHistory     int `yaml:"bookmark_history"`      // windows kept for bookmark detection
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32 float32 // Screen.Width as float32
	ScreenH32 float32 // Screen.Height as float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Defaults returns the embedded default configuration.
func Defaults() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// DefaultSim returns the default simulation parameters.
func DefaultSim() Sim {
	return Defaults().Simulation
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := Merge(cfg, data); err != nil {
			return nil, err
		}
	}

	if err := cfg.resolveShape(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Merge overlays YAML data onto cfg. Only fields present in data change.
func Merge(cfg *Config, data []byte) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

func (c *Config) resolveShape() error {
	d, err := shape.Resolve(c.Simulation.Shape)
	if err != nil {
		return fmt.Errorf("resolving shape: %w", err)
	}
	c.Simulation.CustomShape = d
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	if c.Telemetry.StatsWindow < 1 {
		c.Telemetry.StatsWindow = 60
	}
	if c.Headless.FrameEvery < 1 {
		c.Headless.FrameEvery = 1
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
