package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pulse/config"
	"github.com/pthm-cable/pulse/game"
	"github.com/pthm-cable/pulse/shape"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without a window, driven by the autopilot")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	framesDir := flag.String("frames-dir", "", "Directory for headless PNG frame dumps")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for state snapshots on bookmarks")
	restore := flag.String("restore", "", "Resume from a snapshot file")
	shapeRef := flag.String("shape", "", "Particle shape: square, lemon, heart, circle or an .svg file")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxFrames := flag.Uint64("max-frames", 0, "Stop after N frames (0 = unlimited)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *shapeRef != "" {
		d, err := shape.Resolve(*shapeRef)
		if err != nil {
			slog.Error("failed to load shape", "shape", *shapeRef, "error", err)
			os.Exit(1)
		}
		cfg.Simulation = cfg.Simulation.WithShape(d)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:        rngSeed,
		LogStats:    *logStats,
		OutputDir:   *outputDir,
		FramesDir:   *framesDir,
		SnapshotDir: *snapshotDir,
		RestorePath: *restore,
		Headless:    *headless,
	}

	if *headless {
		runHeadless(opts, *configPath, *maxFrames)
		return
	}

	// Graphical mode
	if cfg.Screen.Resizable {
		rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	}
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		return
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *maxFrames > 0 && g.FrameCount() >= *maxFrames {
			break
		}
	}
	slog.Info("window closed", "frames", g.FrameCount(), "panics", g.Panics())
}

// runHeadless drives the game from a Loop until max frames or an interrupt.
// SIGHUP reloads the simulation section of the config file into the running
// engine.
func runHeadless(opts game.Options, configPath string, maxFrames uint64) {
	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	cfg := config.Cfg()
	interval := time.Duration(cfg.Headless.FrameIntervalMS) * time.Millisecond

	slog.Info("starting headless run",
		"seed", opts.Seed,
		"max_frames", maxFrames,
		"interval", interval,
		"autopilot", cfg.Headless.Autopilot,
	)

	loop := game.NewLoop(interval, func() bool {
		g.UpdateHeadless()
		return maxFrames == 0 || g.FrameCount() < maxFrames
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	if err := loop.Start(ctx); err != nil {
		slog.Error("failed to start loop", "error", err)
		return
	}

	for {
		select {
		case <-loop.Done():
			slog.Info("headless run finished", "frames", loop.Frames(), "panics", loop.Panics())
			return
		case <-hup:
			reloadSim(g, configPath)
		}
	}
}

// reloadSim publishes the simulation section of the config file.
func reloadSim(g *game.Game, path string) {
	if path == "" {
		slog.Warn("reload requested but no config file given")
		return
	}
	cfg, err := config.Load(path)
	if err != nil {
		slog.Error("config reload failed", "error", err)
		return
	}
	g.SetConfig(cfg.Simulation)
	slog.Info("config reloaded", "path", path)
}
