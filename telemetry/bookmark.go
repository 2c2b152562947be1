package telemetry

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkSaturated BookmarkType = "saturated"
	BookmarkBurst     BookmarkType = "burst"
	BookmarkDrained   BookmarkType = "drained"
	BookmarkSteady    BookmarkType = "steady"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `json:"type"`
	Frame       uint64       `json:"frame"`
	Description string       `json:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"frame", b.Frame,
		"description", b.Description,
	)
}

// BookmarkDetector flags notable windows: the population hitting the cap,
// spawn bursts, the screen emptying out, and long stretches of steady
// population.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	saturated          bool // inside a run of windows with dropped spawns
	recentPeak         int  // peak population since the screen was last empty
	steadyWindowsCount int  // consecutive windows with stable population

	scratch []float64
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5 // minimum for steady detection
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
		scratch:     make([]float64, 0, historySize),
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if b := bd.checkSaturated(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if bd.historyFull || bd.historyIdx > 0 {
		if b := bd.checkBurst(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
		if b := bd.checkSteady(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}
	if stats.PeakPopulation > bd.recentPeak {
		bd.recentPeak = stats.PeakPopulation
	}
	if b := bd.checkDrained(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

// getHistory returns the stored windows, oldest first.
func (bd *BookmarkDetector) getHistory() []WindowStats {
	if !bd.historyFull {
		return bd.history[:bd.historyIdx]
	}
	ordered := make([]WindowStats, 0, bd.historySize)
	ordered = append(ordered, bd.history[bd.historyIdx:]...)
	return append(ordered, bd.history[:bd.historyIdx]...)
}

// checkSaturated fires once per run of windows in which the cap refused
// spawns.
func (bd *BookmarkDetector) checkSaturated(stats WindowStats) *Bookmark {
	if stats.Dropped == 0 {
		bd.saturated = false
		return nil
	}
	if bd.saturated {
		return nil
	}
	bd.saturated = true
	return &Bookmark{
		Type:        BookmarkSaturated,
		Frame:       stats.WindowEndFrame,
		Description: fmt.Sprintf("Population cap reached at %d, %d spawns dropped", stats.PeakPopulation, stats.Dropped),
	}
}

func (bd *BookmarkDetector) checkBurst(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.Spawned
	}
	avg := float64(total) / float64(len(history))
	if avg == 0 {
		return nil
	}

	if float64(stats.Spawned) > avg*2.0 && stats.Spawned >= 10 {
		return &Bookmark{
			Type:        BookmarkBurst,
			Frame:       stats.WindowEndFrame,
			Description: fmt.Sprintf("Spawned %d is %.1fx average (%.1f)", stats.Spawned, float64(stats.Spawned)/avg, avg),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkDrained(stats WindowStats) *Bookmark {
	if stats.Population > 0 || bd.recentPeak == 0 {
		return nil
	}
	oldPeak := bd.recentPeak
	bd.recentPeak = 0
	return &Bookmark{
		Type:        BookmarkDrained,
		Frame:       stats.WindowEndFrame,
		Description: fmt.Sprintf("All particles expired after peak of %d", oldPeak),
	}
}

func (bd *BookmarkDetector) checkSteady(stats WindowStats) *Bookmark {
	if stats.Population < 10 || stats.EngagedFrames == 0 {
		bd.steadyWindowsCount = 0
		return nil
	}

	history := bd.getHistory()
	if len(history) < 4 {
		return nil
	}

	bd.scratch = bd.scratch[:0]
	for _, h := range history[len(history)-4:] {
		bd.scratch = append(bd.scratch, float64(h.Population))
	}
	mean, variance := stat.MeanVariance(bd.scratch, nil)

	// CV^2 < 0.04 means CV < 0.2
	if mean > 0 && variance/(mean*mean) < 0.04 {
		bd.steadyWindowsCount++
	} else {
		bd.steadyWindowsCount = 0
	}

	if bd.steadyWindowsCount == 5 { // trigger exactly once at 5 windows
		return &Bookmark{
			Type:        BookmarkSteady,
			Frame:       stats.WindowEndFrame,
			Description: fmt.Sprintf("Steady population around %.0f over 5+ windows", mean),
		}
	}
	return nil
}
