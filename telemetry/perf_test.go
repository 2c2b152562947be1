package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseEmit)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseStep)
		time.Sleep(200 * time.Microsecond)
		pc.EndFrame()
	}

	stats := pc.Stats()

	if stats.AvgFrameDuration <= 0 {
		t.Error("expected positive average frame duration")
	}
	if stats.PhaseAvg[PhaseEmit] <= 0 {
		t.Error("expected emit phase to be tracked")
	}
	if stats.PhaseAvg[PhaseStep] < stats.PhaseAvg[PhaseEmit] {
		t.Errorf("step avg %v < emit avg %v, expected the longer phase to dominate",
			stats.PhaseAvg[PhaseStep], stats.PhaseAvg[PhaseEmit])
	}
	if stats.PhaseAvg[PhaseRender] != 0 {
		t.Errorf("render avg = %v, want 0 for a phase never started", stats.PhaseAvg[PhaseRender])
	}
	if stats.MinFrameDuration > stats.AvgFrameDuration || stats.AvgFrameDuration > stats.MaxFrameDuration {
		t.Errorf("expected min <= avg <= max, got %v <= %v <= %v",
			stats.MinFrameDuration, stats.AvgFrameDuration, stats.MaxFrameDuration)
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 10; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseStep)
		time.Sleep(50 * time.Microsecond)
		pc.EndFrame()
	}

	stats := pc.Stats()

	if stats.AvgFrameDuration <= 0 {
		t.Error("expected positive average frame duration after window filled")
	}
	if stats.FPS <= 0 {
		t.Error("expected positive frames per second")
	}
	if pc.sampleCount != 5 {
		t.Errorf("sample count = %d, want 5", pc.sampleCount)
	}
}

func TestPerfCollector_Empty(t *testing.T) {
	pc := NewPerfCollector(0)
	stats := pc.Stats()
	if stats.AvgFrameDuration != 0 || stats.FPS != 0 {
		t.Errorf("expected zero stats before any frame, got %+v", stats)
	}
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{PhaseInput, "input"},
		{PhaseEmit, "emit"},
		{PhaseStep, "step"},
		{PhaseRender, "render"},
		{PhaseTelemetry, "telemetry"},
		{Phase(-1), "unknown"},
		{numPhases, "unknown"},
	}
	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", int(tt.phase), got, tt.want)
		}
	}
}

func TestPerfStatsToCSV(t *testing.T) {
	var s PerfStats
	s.AvgFrameDuration = 1500 * time.Microsecond
	s.PhasePct[PhaseEmit] = 10
	s.PhasePct[PhaseRender] = 70
	s.FPS = 60

	row := s.ToCSV(120)
	if row.WindowEnd != 120 {
		t.Errorf("window end = %d, want 120", row.WindowEnd)
	}
	if row.AvgFrameUS != 1500 {
		t.Errorf("avg frame us = %d, want 1500", row.AvgFrameUS)
	}
	if row.EmitPct != 10 || row.RenderPct != 70 || row.StepPct != 0 {
		t.Errorf("phase pct = emit %v render %v step %v, want 10/70/0", row.EmitPct, row.RenderPct, row.StepPct)
	}
}
