// Shape preview tool - shows a particle outline as a frozen trail of
// growing, fading copies, with sliders for the parameters that affect how
// it strokes.
//
// Usage: go run ./cmd/shapepreview [-shape heart|file.svg] [-png out.png]
package main

import (
	"flag"
	"fmt"
	"log"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/pulse/config"
	"github.com/pthm-cable/pulse/renderer"
	"github.com/pthm-cable/pulse/shape"
	"github.com/pthm-cable/pulse/systems"
	"github.com/pthm-cable/pulse/ui"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 680
	panelWidth   = windowWidth - previewSize - 30
)

// trailCopies is the number of particles in the frozen trail.
const trailCopies = 12

// trail builds particles as the emitter would have left them: one spawned
// every lifespan/trailCopies frames at the center, aged and grown since.
func trail(sim config.Sim, cx, cy float64) []systems.Particle {
	ps := make([]systems.Particle, 0, trailCopies)
	gap := max(sim.Lifespan/trailCopies, 1)
	for i := trailCopies - 1; i >= 0; i-- {
		age := i * gap
		if age >= sim.Lifespan {
			continue
		}
		ps = append(ps, systems.Particle{
			Pos:      r2.Vec{X: cx, Y: cy},
			Size:     sim.InitialSize + sim.Speed*float64(age),
			Age:      age,
			Hue:      systems.SpawnHue(sim, uint64(age)),
			Rotation: (sim.InitialRotation + sim.RotationSpeed*float64(age)) * math.Pi / 180,
		})
	}
	return ps
}

func main() {
	shapeRef := flag.String("shape", "heart", "Preset name or SVG file")
	pngPath := flag.String("png", "", "Render a still to this PNG and exit")
	flag.Parse()

	d, err := shape.Resolve(*shapeRef)
	if err != nil {
		log.Fatalf("failed to load shape: %v", err)
	}
	sim := config.DefaultSim().WithShape(d)

	if *pngPath != "" {
		s := renderer.NewGGSurface(previewSize, previewSize)
		renderer.NewParticleRenderer(renderer.DefaultBackground).
			Draw(s, trail(sim, previewSize/2, previewSize/2), sim)
		if err := s.SavePNG(*pngPath); err != nil {
			log.Fatalf("failed to write png: %v", err)
		}
		fmt.Printf("wrote %s\n", *pngPath)
		return
	}

	rl.InitWindow(windowWidth, windowHeight, "Shape Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	surface := renderer.NewRaylibSurface(windowWidth, windowHeight)
	particles := renderer.NewParticleRenderer(renderer.DefaultBackground)
	uploader := ui.NewShapeUploader()
	status := ""

	for !rl.WindowShouldClose() {
		if res, ok := uploader.Poll(); ok {
			if res.Err != nil {
				status = res.Err.Error()
			} else {
				sim = sim.WithShape(res.Shape)
				status = "loaded " + res.Shape.Name
			}
		}

		rl.BeginDrawing()

		drawn := particles.Draw(surface, trail(sim, previewSize/2+10, previewSize/2+10), sim)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Shape Parameters", int32(panelX), int32(panelY), 20, rl.LightGray)
		panelY += 35

		slider := func(label, lo, hi string, v, minV, maxV float32) float32 {
			rl.DrawText(label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			nv := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				lo, hi, v, minV, maxV,
			)
			rl.DrawText(fmt.Sprintf("%.1f", nv), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.LightGray)
			panelY += 35
			return nv
		}

		sim.InitialSize = float64(slider("Initial size", "0", "100", float32(sim.InitialSize), 0, 100))
		sim.Speed = float64(slider("Speed (growth per frame)", "0.5", "10", float32(sim.Speed), 0.5, 10))
		sim.StrokeWidth = float64(slider("Stroke width", "0.5", "10", float32(sim.StrokeWidth), 0.5, 10))
		sim.InitialRotation = float64(slider("Initial rotation", "0", "360", float32(sim.InitialRotation), 0, 360))
		sim.RotationSpeed = float64(slider("Rotation speed", "-5", "5", float32(sim.RotationSpeed), -5, 5))
		sim.ShapeRoundness = float64(slider("Corner roundness (square)", "0", "50", float32(sim.ShapeRoundness), 0, 50))

		for i, name := range shape.PresetNames {
			bx := panelX + float32(i)*float32(panelWidth/4)
			if gui.Button(rl.Rectangle{X: bx, Y: panelY, Width: float32(panelWidth/4 - 6), Height: 24}, name) {
				p, _ := shape.Preset(name)
				sim = sim.WithShape(p)
				status = ""
			}
		}
		panelY += 32
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 20), Height: 24}, "Open SVG...") {
			uploader.Open()
		}
		panelY += 36

		name := shape.PresetSquare
		if sim.CustomShape != nil {
			name = sim.CustomShape.Name
			f := sim.CustomShape.Frame
			rl.DrawText(fmt.Sprintf("Frame: %.1f %.1f %.1f x %.1f", f.X, f.Y, f.Width, f.Height),
				int32(panelX), int32(panelY+20), 14, rl.Gray)
			rl.DrawText(fmt.Sprintf("Commands: %d", sim.CustomShape.Outline.Len()),
				int32(panelX), int32(panelY+40), 14, rl.Gray)
		}
		rl.DrawText("Shape: "+name, int32(panelX), int32(panelY), 16, rl.LightGray)
		rl.DrawText(fmt.Sprintf("Drawn: %d  Skipped: %d", drawn.Drawn, drawn.Skipped),
			int32(panelX), int32(panelY+60), 14, rl.Gray)
		if status != "" {
			rl.DrawText(status, int32(panelX), int32(panelY+80), 14, rl.Orange)
		}

		rl.EndDrawing()
	}
}
