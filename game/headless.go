package game

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// UpdateHeadless runs one frame without a window. The autopilot, when
// enabled, queues its pointer event ahead of the frame, and the particles
// are rasterized only on frames that get dumped to disk.
func (g *Game) UpdateHeadless() {
	if g.autopilot != nil {
		g.Send(g.autopilot.Next())
	}

	next := g.state.Frame + 1
	dump := g.framesDir != "" && next%g.frameEvery == 0
	g.Frame(dump)

	if dump {
		if err := g.dumpFrame(); err != nil {
			slog.Error("failed to dump frame", "frame", g.state.Frame, "error", err)
			// Stop trying once the directory is unusable.
			g.framesDir = ""
		}
	}
}

// dumpFrame writes the current canvas as a numbered PNG.
func (g *Game) dumpFrame() error {
	if err := os.MkdirAll(g.framesDir, 0755); err != nil {
		return fmt.Errorf("creating frames directory: %w", err)
	}
	path := filepath.Join(g.framesDir, fmt.Sprintf("frame_%06d.png", g.state.Frame))
	return g.canvas.SavePNG(path)
}
