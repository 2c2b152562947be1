package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/pulse/config"
	"github.com/pthm-cable/pulse/shape"
	"github.com/pthm-cable/pulse/systems"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the complete engine state for resuming a run.
type Snapshot struct {
	Version int `json:"version"`

	Width  int `json:"width"`
	Height int `json:"height"`

	Frame     uint64  `json:"frame"`
	SpawnDebt float64 `json:"spawn_debt"`
	NextID    uint64  `json:"next_id"`

	Sim   config.Sim  `json:"sim"`
	Shape *ShapeState `json:"shape,omitempty"`

	Particles []ParticleState `json:"particles"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// ShapeState is the serializable form of a custom outline.
type ShapeState struct {
	Name  string      `json:"name"`
	Path  string      `json:"path"`
	Frame shape.Frame `json:"frame"`
}

// ParticleState holds one particle's complete state.
type ParticleState struct {
	ID       uint64  `json:"id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Size     float64 `json:"size"`
	Age      int     `json:"age"`
	Hue      float64 `json:"hue"`
	Rotation float64 `json:"rotation"`
	Speed    float64 `json:"speed"`
}

// NewSnapshot captures frame state, config and particles. The particles
// are copied.
func NewSnapshot(fs systems.FrameState, sim config.Sim, particles []systems.Particle, width, height int) *Snapshot {
	snap := &Snapshot{
		Version:   SnapshotVersion,
		Width:     width,
		Height:    height,
		Frame:     fs.Frame,
		SpawnDebt: fs.SpawnDebt,
		NextID:    fs.NextID,
		Sim:       sim,
		Particles: make([]ParticleState, len(particles)),
	}
	if d := sim.CustomShape; d != nil {
		snap.Shape = &ShapeState{Name: d.Name, Path: d.Path, Frame: d.Frame}
	}
	for i, p := range particles {
		snap.Particles[i] = ParticleState{
			ID:       p.ID,
			X:        p.Pos.X,
			Y:        p.Pos.Y,
			Size:     p.Size,
			Age:      p.Age,
			Hue:      p.Hue,
			Rotation: p.Rotation,
			Speed:    p.Speed,
		}
	}
	return snap
}

// Restore rebuilds the engine state held in the snapshot.
func (s *Snapshot) Restore() (systems.FrameState, config.Sim, []systems.Particle, error) {
	fs := systems.FrameState{Frame: s.Frame, SpawnDebt: s.SpawnDebt, NextID: s.NextID}

	sim := s.Sim
	sim.CustomShape = nil
	if s.Shape != nil {
		d, err := shape.New(s.Shape.Name, s.Shape.Path, s.Shape.Frame)
		if err != nil {
			return fs, sim, nil, fmt.Errorf("restore shape: %w", err)
		}
		sim = sim.WithShape(d)
	}

	particles := make([]systems.Particle, len(s.Particles))
	for i, p := range s.Particles {
		particles[i] = systems.Particle{
			Pos:      r2.Vec{X: p.X, Y: p.Y},
			Size:     p.Size,
			Age:      p.Age,
			Hue:      p.Hue,
			Rotation: p.Rotation,
			Speed:    p.Speed,
			ID:       p.ID,
		}
	}
	return fs, sim, particles, nil
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%d", snapshot.Frame)
	if snapshot.Bookmark != nil {
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Frame, snapshot.Bookmark.Type)
	}
	path := filepath.Join(dir, name+".json")

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", snapshot.Version, SnapshotVersion)
	}

	return &snapshot, nil
}
