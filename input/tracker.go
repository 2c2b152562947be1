// Package input folds pointer and touch activity into the single logical
// pointer the emitter reads each frame.
package input

import "gonum.org/v1/gonum/spatial/r2"

// RecenterFrames is how many frames after start a resize still recenters
// the pointer.
const RecenterFrames = 10

// State is the pointer snapshot consumed by the emitter.
type State struct {
	Pos     r2.Vec
	Engaged bool
}

// Tracker holds pointer position and engagement. It is not safe for
// concurrent use; the frame loop owns it.
type Tracker struct {
	pos       r2.Vec
	engaged   bool
	pressEdge bool
}

// NewTracker creates a tracker centered in a w x h viewport.
func NewTracker(w, h float64) *Tracker {
	return &Tracker{pos: r2.Vec{X: w / 2, Y: h / 2}}
}

// State returns the current pointer state.
func (t *Tracker) State() State {
	return State{Pos: t.pos, Engaged: t.engaged}
}

// TakePressEdge reports whether a press began since the last call and
// clears the latch.
func (t *Tracker) TakePressEdge() bool {
	e := t.pressEdge
	t.pressEdge = false
	return e
}

// PointerDown engages at (x, y).
func (t *Tracker) PointerDown(x, y float64) {
	t.pos = r2.Vec{X: x, Y: y}
	t.engaged = true
	t.pressEdge = true
}

// PointerMove updates the position without changing engagement.
func (t *Tracker) PointerMove(x, y float64) {
	t.pos = r2.Vec{X: x, Y: y}
}

// PointerUp releases engagement.
func (t *Tracker) PointerUp() {
	t.engaged = false
}

// TouchStart engages at the first contact point, if any.
func (t *Tracker) TouchStart(points []r2.Vec) {
	t.engaged = true
	t.pressEdge = true
	if len(points) > 0 {
		t.pos = points[0]
	}
}

// TouchMove follows the first contact point.
func (t *Tracker) TouchMove(points []r2.Vec) {
	if len(points) > 0 {
		t.pos = points[0]
	}
}

// TouchEnd releases engagement.
func (t *Tracker) TouchEnd() {
	t.engaged = false
}

// Blur drops engagement when the window loses focus so a release that
// happens elsewhere cannot leave emission running.
func (t *Tracker) Blur() {
	t.engaged = false
}

// Resize recenters the pointer on the new viewport during the first frames
// of life. Later resizes leave it alone.
func (t *Tracker) Resize(w, h float64, frame uint64) {
	if frame < RecenterFrames {
		t.pos = r2.Vec{X: w / 2, Y: h / 2}
	}
}

// Event is a queued input occurrence for loops that receive input from
// another goroutine.
type Event struct {
	Kind   EventKind
	X, Y   float64
	Points []r2.Vec
}

// EventKind identifies an input event.
type EventKind uint8

const (
	EventPointerDown EventKind = iota
	EventPointerMove
	EventPointerUp
	EventTouchStart
	EventTouchMove
	EventTouchEnd
	EventBlur
	EventResize
)

// Apply dispatches e onto the tracker. frame is the current frame count,
// used by resize.
func (t *Tracker) Apply(e Event, frame uint64) {
	switch e.Kind {
	case EventPointerDown:
		t.PointerDown(e.X, e.Y)
	case EventPointerMove:
		t.PointerMove(e.X, e.Y)
	case EventPointerUp:
		t.PointerUp()
	case EventTouchStart:
		t.TouchStart(e.Points)
	case EventTouchMove:
		t.TouchMove(e.Points)
	case EventTouchEnd:
		t.TouchEnd()
	case EventBlur:
		t.Blur()
	case EventResize:
		t.Resize(e.X, e.Y, frame)
	}
}
