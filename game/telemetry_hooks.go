package game

import (
	"log/slog"

	"github.com/pthm-cable/pulse/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	frame := g.state.Frame
	if !g.collector.ShouldFlush(frame) {
		return
	}

	stats := g.collector.Flush(frame, g.store.Particles)
	perfStats := g.perf.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.output != nil {
		if err := g.output.WriteStats(stats); err != nil {
			slog.Error("failed to write stats", "error", err)
		}
		if err := g.output.WritePerf(perfStats, stats.WindowEndFrame); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	for _, bm := range g.bookmarks.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if g.snapshotDir != "" {
			g.saveSnapshot(&bm)
		}
	}
}

// saveSnapshot writes the current engine state, tagged with bm.
func (g *Game) saveSnapshot(bm *telemetry.Bookmark) {
	w, h := g.surface.Size()
	snap := telemetry.NewSnapshot(g.state, g.current, g.store.Particles, w, h)
	snap.Bookmark = bm
	path, err := telemetry.SaveSnapshot(snap, g.snapshotDir)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}
	slog.Info("snapshot saved", "path", path, "frame", snap.Frame)
}
