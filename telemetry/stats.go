package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of frames.
type WindowStats struct {
	WindowStartFrame uint64 `csv:"-"`
	WindowEndFrame   uint64 `csv:"window_end"`

	// Population at window end, and the highest seen during the window
	Population     int `csv:"population"`
	PeakPopulation int `csv:"peak_population"`

	// Events during window
	Spawned       int `csv:"spawned"`
	Dropped       int `csv:"dropped"` // spawns refused at the cap
	Expired       int `csv:"expired"`
	EngagedFrames int `csv:"engaged_frames"`

	// Age distribution (frames, sampled at window end)
	AgeMean float64 `csv:"age_mean"`
	AgeP10  float64 `csv:"age_p10"`
	AgeP50  float64 `csv:"age_p50"`
	AgeP90  float64 `csv:"age_p90"`

	// Size distribution (sampled at window end)
	SizeMean float64 `csv:"size_mean"`
	SizeStd  float64 `csv:"size_std"`
	SizeP50  float64 `csv:"size_p50"`
	SizeP90  float64 `csv:"size_p90"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// Distribution summarizes a sample.
type Distribution struct {
	Mean, Std     float64
	P10, P50, P90 float64
}

// Describe sorts values in place and summarizes them. Std is the sample
// standard deviation; it is 0 for fewer than two values.
func Describe(values []float64) Distribution {
	n := len(values)
	if n == 0 {
		return Distribution{}
	}
	sort.Float64s(values)

	var d Distribution
	if n == 1 {
		d.Mean = values[0]
	} else {
		d.Mean, d.Std = stat.MeanStdDev(values, nil)
	}
	d.P10 = Percentile(values, 0.10)
	d.P50 = Percentile(values, 0.50)
	d.P90 = Percentile(values, 0.90)
	return d
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("window_start", s.WindowStartFrame),
		slog.Uint64("window_end", s.WindowEndFrame),
		slog.Int("population", s.Population),
		slog.Int("peak_population", s.PeakPopulation),
		slog.Int("spawned", s.Spawned),
		slog.Int("dropped", s.Dropped),
		slog.Int("expired", s.Expired),
		slog.Int("engaged_frames", s.EngagedFrames),
		slog.Float64("age_mean", s.AgeMean),
		slog.Float64("age_p50", s.AgeP50),
		slog.Float64("size_mean", s.SizeMean),
		slog.Float64("size_p90", s.SizeP90),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
