package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/pulse/input"
	"github.com/pthm-cable/pulse/shape"
)

// windowInput tracks raylib state between polls so edges can be turned
// into events.
type windowInput struct {
	focused    bool
	touchCount int32
}

// handleInput polls raylib and queues the resulting events. Keyboard
// shortcuts act immediately.
func (g *Game) handleInput() {
	g.handleResize()
	g.handleFocus()
	if !g.handleTouch() {
		g.handleMouse()
	}

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeyH) {
		g.controls.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.showPerf = !g.showPerf
	}
	if rl.IsKeyPressed(rl.KeyU) {
		g.controls.OpenUpload()
	}
	if rl.IsKeyPressed(rl.KeyC) {
		g.store.Clear()
	}
	if rl.IsKeyPressed(rl.KeyS) && g.snapshotDir != "" {
		g.saveSnapshot(nil)
	}

	presetKeys := [...]int32{rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour}
	for i, key := range presetKeys {
		if rl.IsKeyPressed(key) {
			d, _ := shape.Preset(shape.PresetNames[i])
			g.SetShape(d)
		}
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.Send(input.Event{Kind: input.EventResize, X: float64(w), Y: float64(h)})
}

// handleFocus releases the pointer when the window loses focus.
func (g *Game) handleFocus() {
	focused := rl.IsWindowFocused()
	if g.win.focused && !focused {
		g.Send(input.Event{Kind: input.EventBlur})
	}
	g.win.focused = focused
}

// handleTouch queues touch events and reports whether touch is active, in
// which case the emulated mouse is ignored.
func (g *Game) handleTouch() bool {
	n := rl.GetTouchPointCount()
	prev := g.win.touchCount
	g.win.touchCount = n

	switch {
	case n > 0 && prev == 0:
		g.Send(input.Event{Kind: input.EventTouchStart, Points: touchPoints(n)})
	case n > 0:
		g.Send(input.Event{Kind: input.EventTouchMove, Points: touchPoints(n)})
	case prev > 0:
		g.Send(input.Event{Kind: input.EventTouchEnd})
	}
	return n > 0 || prev > 0
}

func touchPoints(n int32) []r2.Vec {
	pts := make([]r2.Vec, n)
	for i := range pts {
		p := rl.GetTouchPosition(int32(i))
		pts[i] = r2.Vec{X: float64(p.X), Y: float64(p.Y)}
	}
	return pts
}

// handleMouse queues mouse events. Presses engage the emitter anywhere in
// the window, including over the controls, which read the same press.
func (g *Game) handleMouse() {
	pos := rl.GetMousePosition()
	d := rl.GetMouseDelta()
	g.queueMouse(float64(pos.X), float64(pos.Y),
		rl.IsMouseButtonPressed(rl.MouseButtonLeft),
		d.X != 0 || d.Y != 0,
		rl.IsMouseButtonReleased(rl.MouseButtonLeft))
}

func (g *Game) queueMouse(x, y float64, pressed, moved, released bool) {
	if pressed {
		g.Send(input.Event{Kind: input.EventPointerDown, X: x, Y: y})
	}
	if moved {
		g.Send(input.Event{Kind: input.EventPointerMove, X: x, Y: y})
	}
	if released {
		g.Send(input.Event{Kind: input.EventPointerUp})
	}
}
