package systems

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/pulse/config"
	"github.com/pthm-cable/pulse/input"
)

// spawnFrames holds the pointer down for frames frames and returns the
// frames on which particles were spawned.
func spawnFrames(e *Emitter, freq float64, frames int, edge bool) []uint64 {
	cfg := testSim()
	cfg.Frequency = freq
	s := NewStore(100)
	var fs FrameState
	in := input.State{Pos: r2.Vec{X: 1, Y: 2}, Engaged: true}

	var out []uint64
	for i := 0; i < frames; i++ {
		fs.Begin()
		res := e.Emit(&fs, in, edge && i == 0, cfg, s)
		for j := 0; j < res.Spawned; j++ {
			out = append(out, fs.Frame)
		}
	}
	return out
}

func equalFrames(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestEmitTiming(t *testing.T) {
	tests := []struct {
		name      string
		immediate bool
		edge      bool
		freq      float64
		want      []uint64
	}{
		{"steady period", false, false, 5, []uint64{5, 10}},
		{"immediate first spawn", true, true, 5, []uint64{1, 5, 10}},
		{"immediate disabled", false, true, 5, []uint64{5, 10}},
		{"no edge", true, false, 5, []uint64{5, 10}},
		{"fractional period", false, false, 2.5, []uint64{3, 5, 8, 10}},
		{"period one", false, false, 1, []uint64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}},
		{"sub-frame period", false, false, 0.5, []uint64{1, 1, 2, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frames := 11
			if tt.freq < 1 {
				frames = 2
			}
			got := spawnFrames(&Emitter{ImmediateFirstSpawn: tt.immediate}, tt.freq, frames, tt.edge)
			if !equalFrames(got, tt.want) {
				t.Errorf("spawn frames = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEmitReleaseForfeitsDebt(t *testing.T) {
	cfg := testSim()
	e := &Emitter{}
	s := NewStore(10)
	var fs FrameState

	held := input.State{Engaged: true}
	for i := 0; i < 4; i++ {
		fs.Begin()
		e.Emit(&fs, held, false, cfg, s)
	}
	if fs.SpawnDebt != 4 {
		t.Fatalf("debt = %v, want 4", fs.SpawnDebt)
	}

	fs.Begin()
	e.Emit(&fs, input.State{}, false, cfg, s)
	if fs.SpawnDebt != 0 {
		t.Errorf("debt after release = %v, want 0", fs.SpawnDebt)
	}
	if s.Count() != 0 {
		t.Errorf("population = %d, want 0", s.Count())
	}
}

func TestEmitTapWithinFrame(t *testing.T) {
	tr := input.NewTracker(800, 600)
	e := NewEmitter()
	s := NewStore(10)
	var fs FrameState

	tr.PointerDown(5, 5)
	tr.PointerUp()

	fs.Begin()
	res := e.Emit(&fs, tr.State(), tr.TakePressEdge(), testSim(), s)
	if res.Spawned != 0 || s.Count() != 0 {
		t.Errorf("spawned %d, population %d; want 0, 0", res.Spawned, s.Count())
	}
	if fs.SpawnDebt != 0 {
		t.Errorf("debt = %v, want 0", fs.SpawnDebt)
	}
	if tr.TakePressEdge() {
		t.Error("press edge should be consumed")
	}
}

func TestEmitAtCap(t *testing.T) {
	cfg := testSim()
	cfg.Frequency = 0.5
	e := NewEmitter()
	s := NewStore(3)
	var fs FrameState
	in := input.State{Engaged: true}

	var spawned, dropped int
	for i := 0; i < 3; i++ {
		fs.Begin()
		res := e.Emit(&fs, in, i == 0, cfg, s)
		spawned += res.Spawned
		dropped += res.Dropped
	}

	if spawned != 3 || s.Count() != 3 {
		t.Errorf("spawned %d, population %d; want 3, 3", spawned, s.Count())
	}
	if dropped == 0 {
		t.Error("expected drops at the cap")
	}
	if fs.SpawnDebt >= cfg.Period() {
		t.Errorf("debt = %v, should be consumed at the cap", fs.SpawnDebt)
	}

	// Room frees up: nothing owed beyond the normal period.
	s.Clear()
	fs.Begin()
	if res := e.Emit(&fs, in, false, cfg, s); res.Spawned != 2 {
		t.Errorf("spawned %d after clearing, want 2", res.Spawned)
	}
}

func TestEmitParticleFields(t *testing.T) {
	cfg := testSim()
	cfg.InitialRotation = 90
	cfg.InitialSize = 7
	cfg.Speed = 3
	e := NewEmitter()
	s := NewStore(10)
	fs := FrameState{NextID: 41}

	fs.Begin()
	e.Emit(&fs, input.State{Pos: r2.Vec{X: 5, Y: 6}, Engaged: true}, true, cfg, s)

	if s.Count() != 1 {
		t.Fatalf("population = %d, want 1", s.Count())
	}
	p := s.Particles[0]
	if p.Pos != (r2.Vec{X: 5, Y: 6}) || p.Size != 7 || p.Age != 0 || p.Speed != 3 || p.ID != 41 {
		t.Errorf("particle = %+v", p)
	}
	if math.Abs(p.Rotation-math.Pi/2) > 1e-12 {
		t.Errorf("rotation = %v, want pi/2", p.Rotation)
	}
	if fs.NextID != 42 {
		t.Errorf("NextID = %d, want 42", fs.NextID)
	}
}

func TestSpawnHue(t *testing.T) {
	tests := []struct {
		base, cycle float64
		frame       uint64
		want        float64
	}{
		{180, 0.5, 0, 180},
		{180, 0.5, 100, 230},
		{350, 1, 20, 10},
		{0, 2, 720, 0},
		{-30, 0, 5, 330},
		{10, -1, 20, 350},
	}
	for _, tt := range tests {
		cfg := testSim()
		cfg.BaseHue = tt.base
		cfg.ColorCycleSpeed = tt.cycle
		got := SpawnHue(cfg, tt.frame)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("SpawnHue(base %v, cycle %v, frame %d) = %v, want %v",
				tt.base, tt.cycle, tt.frame, got, tt.want)
		}
		if got < 0 || got >= 360 {
			t.Errorf("hue %v outside [0, 360)", got)
		}
	}
}

func TestSpawnHueIgnoresRange(t *testing.T) {
	a, b := testSim(), testSim()
	b.HueRange = 300
	if SpawnHue(a, 77) != SpawnHue(b, 77) {
		t.Error("hue range should not change the spawn hue")
	}
}


func TestEmitSustainedAtMaxParticles(t *testing.T) {
	cfg := testSim()
	cfg.Frequency = 0.5
	cfg.Lifespan = 2500
	e := NewEmitter()
	s := NewStore(config.MaxParticles)
	var fs FrameState
	in := input.State{Pos: r2.Vec{X: 400, Y: 300}, Engaged: true}

	var spawned, dropped int
	for i := 0; i < 2000; i++ {
		fs.Begin()
		res := e.Emit(&fs, in, i == 0, cfg, s)
		spawned += res.Spawned
		dropped += res.Dropped
		Step(s, cfg)

		if s.Count() > config.MaxParticles {
			t.Fatalf("frame %d: population %d over the cap", fs.Frame, s.Count())
		}
	}

	if s.Count() != config.MaxParticles {
		t.Errorf("population = %d, want %d", s.Count(), config.MaxParticles)
	}
	if spawned != config.MaxParticles {
		t.Errorf("spawned %d, want %d", spawned, config.MaxParticles)
	}
	// Two per frame, plus the immediate first spawn.
	if want := 2*2000 + 1 - config.MaxParticles; dropped != want {
		t.Errorf("dropped %d, want %d", dropped, want)
	}
	if fs.SpawnDebt >= cfg.Period() {
		t.Errorf("debt = %v, should not build up at the cap", fs.SpawnDebt)
	}
	for i := 1; i < s.Count(); i++ {
		if s.Particles[i].ID <= s.Particles[i-1].ID {
			t.Fatalf("spawn order broken at %d", i)
		}
	}
}
