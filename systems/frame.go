package systems

// FrameState carries the mutable simulation fields that live outside the
// particle list. It is threaded through the emit and step phases.
type FrameState struct {
	Frame     uint64  // frames begun so far; the first frame is 1
	SpawnDebt float64 // banked frame units toward the next spawn
	NextID    uint64
}

// Begin advances to the next frame.
func (f *FrameState) Begin() {
	f.Frame++
}
