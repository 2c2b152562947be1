package main

import (
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/pulse/config"
	"github.com/pthm-cable/pulse/game"
	"github.com/pthm-cable/pulse/telemetry"
)

// warmupWindows are discarded before scoring so the population can build up.
const warmupWindows = 2

// dropPenalty weighs spawns lost to the population cap, per frame.
const dropPenalty = 10.0

// Target describes the look the tuner aims for.
type Target struct {
	Population float64 // mean live particles
	Size       float64 // 90th percentile particle size
}

// Evaluator runs headless simulations and scores them against a target.
type Evaluator struct {
	params     *ParamVector
	frames     uint64
	seeds      []int64
	baseConfig *config.Config
	target     Target

	mu   sync.Mutex
	last Score
}

// Score is the measured outcome of one evaluation, averaged over seeds.
type Score struct {
	Fitness    float64
	Population float64
	Size       float64
	Dropped    int
}

// NewEvaluator creates a new evaluator.
func NewEvaluator(params *ParamVector, frames uint64, seeds []int64, baseCfg *config.Config, target Target) *Evaluator {
	return &Evaluator{
		params:     params,
		frames:     frames,
		seeds:      seeds,
		baseConfig: baseCfg,
		target:     target,
	}
}

// Last returns the score of the most recent evaluation.
func (ev *Evaluator) Last() Score {
	ev.mu.Lock()
	defer ev.mu.Unlock()
	return ev.last
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
func (ev *Evaluator) Evaluate(x []float64) float64 {
	results := make([]Score, len(ev.seeds))
	var wg sync.WaitGroup

	for i, seed := range ev.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			windows, err := ev.run(x, s)
			if err != nil {
				results[idx] = Score{Fitness: math.Inf(1)}
				return
			}
			results[idx] = ev.score(windows)
		}(i, seed)
	}
	wg.Wait()

	var avg Score
	for _, r := range results {
		avg.Fitness += r.Fitness
		avg.Population += r.Population
		avg.Size += r.Size
		avg.Dropped += r.Dropped
	}
	n := float64(len(results))
	avg.Fitness /= n
	avg.Population /= n
	avg.Size /= n

	ev.mu.Lock()
	ev.last = avg
	ev.mu.Unlock()

	return avg.Fitness
}

// run executes a single headless run and returns its stats windows.
func (ev *Evaluator) run(x []float64, seed int64) ([]telemetry.WindowStats, error) {
	cfg := ev.copyConfig()
	ev.params.ApplyToConfig(cfg, x)

	var windows []telemetry.WindowStats
	g, err := game.NewGameWithOptions(game.Options{
		Seed:     seed,
		Headless: true,
		Config:   cfg,
		StatsCallback: func(stats telemetry.WindowStats) {
			windows = append(windows, stats)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("creating game: %w", err)
	}
	defer g.Unload()

	for g.FrameCount() < ev.frames {
		g.UpdateHeadless()
	}
	return windows, nil
}

// score compares the post-warmup windows with the target.
func (ev *Evaluator) score(windows []telemetry.WindowStats) Score {
	if len(windows) <= warmupWindows {
		return Score{Fitness: math.Inf(1)}
	}
	windows = windows[warmupWindows:]

	pops := make([]float64, len(windows))
	sizes := make([]float64, len(windows))
	var dropped int
	for i, w := range windows {
		pops[i] = float64(w.Population)
		sizes[i] = w.SizeP90
		dropped += w.Dropped
	}

	s := Score{
		Population: stat.Mean(pops, nil),
		Size:       stat.Mean(sizes, nil),
		Dropped:    dropped,
	}
	popErr := (s.Population - ev.target.Population) / ev.target.Population
	sizeErr := (s.Size - ev.target.Size) / ev.target.Size
	s.Fitness = popErr*popErr + sizeErr*sizeErr + dropPenalty*float64(dropped)/float64(ev.frames)
	return s
}

// copyConfig returns a run-local config: autopilot on, no frame dumps.
func (ev *Evaluator) copyConfig() *config.Config {
	cfg := *ev.baseConfig
	cfg.Headless.Autopilot = true
	cfg.Headless.FramesDir = ""
	return &cfg
}
