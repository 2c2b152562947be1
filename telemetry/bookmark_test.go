package telemetry

import "testing"

func countBookmarks(bms []Bookmark, typ BookmarkType) int {
	n := 0
	for _, bm := range bms {
		if bm.Type == typ {
			n++
		}
	}
	return n
}

func TestBookmarkDetector_Saturated(t *testing.T) {
	bd := NewBookmarkDetector(10)

	windows := []struct {
		dropped int
		want    int
	}{
		{0, 0},
		{5, 1}, // cap reached
		{8, 0}, // still saturated
		{0, 0},
		{2, 1}, // saturated again
	}
	for i, w := range windows {
		bms := bd.Check(WindowStats{
			WindowEndFrame: uint64((i + 1) * 60),
			Population:     2000,
			PeakPopulation: 2000,
			Dropped:        w.dropped,
		})
		if got := countBookmarks(bms, BookmarkSaturated); got != w.want {
			t.Errorf("window %d: saturated bookmarks = %d, want %d", i, got, w.want)
		}
	}
}

func TestBookmarkDetector_Burst(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bms := bd.Check(WindowStats{
			WindowEndFrame: uint64(i * 60),
			Spawned:        10,
			Population:     50,
			PeakPopulation: 50,
		})
		if countBookmarks(bms, BookmarkBurst) != 0 {
			t.Fatalf("window %d: unexpected burst at the average rate", i)
		}
	}

	// 3x the rolling average
	bms := bd.Check(WindowStats{WindowEndFrame: 300, Spawned: 30, Population: 60, PeakPopulation: 60})
	if countBookmarks(bms, BookmarkBurst) != 1 {
		t.Error("expected burst bookmark")
	}
}

func TestBookmarkDetector_Drained(t *testing.T) {
	bd := NewBookmarkDetector(10)

	if bms := bd.Check(WindowStats{WindowEndFrame: 60}); len(bms) != 0 {
		t.Errorf("empty start should not bookmark, got %v", bms)
	}

	bd.Check(WindowStats{WindowEndFrame: 120, Population: 40, PeakPopulation: 45})

	bms := bd.Check(WindowStats{WindowEndFrame: 180, Population: 0, PeakPopulation: 12})
	if countBookmarks(bms, BookmarkDrained) != 1 {
		t.Fatal("expected drained bookmark")
	}

	bms = bd.Check(WindowStats{WindowEndFrame: 240})
	if countBookmarks(bms, BookmarkDrained) != 0 {
		t.Error("drained should fire once per emptying")
	}
}

func TestBookmarkDetector_Steady(t *testing.T) {
	bd := NewBookmarkDetector(10)

	total := 0
	for i := 0; i < 12; i++ {
		bms := bd.Check(WindowStats{
			WindowEndFrame: uint64((i + 1) * 60),
			Population:     100,
			PeakPopulation: 100,
			EngagedFrames:  60,
		})
		total += countBookmarks(bms, BookmarkSteady)
	}
	if total != 1 {
		t.Errorf("steady bookmarks = %d, want exactly 1", total)
	}
}

func TestBookmarkDetector_SteadyNeedsEngagement(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 12; i++ {
		bms := bd.Check(WindowStats{
			WindowEndFrame: uint64((i + 1) * 60),
			Population:     100,
			PeakPopulation: 100,
		})
		if countBookmarks(bms, BookmarkSteady) != 0 {
			t.Fatalf("window %d: steady bookmark without engagement", i)
		}
	}
}
