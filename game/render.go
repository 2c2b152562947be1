package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pulse/shape"
	"github.com/pthm-cable/pulse/ui"
)

const controlsLegend = "[H] Controls  [1-4] Shape  [U] Upload SVG  [C] Clear  [P] Perf  [F11] Fullscreen"

// Update polls window input. Events are applied at the start of the next
// frame.
func (g *Game) Update() {
	recoverFrame(&g.panics, g.handleInput)
}

// Draw runs one frame inside the raylib drawing pass and renders the UI on
// top. Control changes are published for the following frame. A panic in
// the frame is logged and the drawing pass is still closed.
func (g *Game) Draw() {
	rl.BeginDrawing()
	defer rl.EndDrawing()

	recoverFrame(&g.panics, func() {
		g.Frame(true)
		g.drawUI()
	})
}

// Panics returns the number of window frames that panicked.
func (g *Game) Panics() uint64 {
	return g.panics.Load()
}

func (g *Game) drawUI() {
	sim := g.current

	g.hud.Draw(ui.HUDData{
		Title:        g.cfg.Screen.Title,
		Population:   g.store.Count(),
		Capacity:     g.store.Cap(),
		Frame:        g.state.Frame,
		FPS:          rl.GetFPS(),
		Shape:        shapeLabel(sim.CustomShape),
		Engaged:      g.tracker.State().Engaged,
		ScreenWidth:  int32(g.screenWidth),
		ScreenHeight: int32(g.screenHeight),
	})

	if g.showPerf {
		g.perfPanel.Draw(g.perf.Stats())
	}

	if next, changed := g.controls.Draw(sim); changed {
		g.SetConfig(next)
	}

	g.hud.DrawControls(int32(g.screenWidth), int32(g.screenHeight), controlsLegend)
}

func shapeLabel(d *shape.Descriptor) string {
	if d == nil {
		return shape.PresetSquare
	}
	return d.Name
}
