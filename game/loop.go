package game

import (
	"context"
	"errors"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"
)

// ErrLoopStarted is returned when Start is called twice.
var ErrLoopStarted = errors.New("loop already started")

// Loop runs a frame function on its own goroutine at a fixed interval, or
// back to back when the interval is zero. The frame function returns false
// to end the loop.
type Loop struct {
	interval time.Duration
	frame    func() bool

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
	done    chan struct{}

	frames atomic.Uint64
	panics atomic.Uint64
}

// NewLoop creates a stopped loop.
func NewLoop(interval time.Duration, frame func() bool) *Loop {
	return &Loop{
		interval: interval,
		frame:    frame,
		done:     make(chan struct{}),
	}
}

// Start launches the loop. It ends when ctx is cancelled, Stop is called
// or the frame function returns false.
func (l *Loop) Start(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.started {
		return ErrLoopStarted
	}
	l.started = true

	ctx, l.cancel = context.WithCancel(ctx)
	go l.run(ctx)
	return nil
}

// Stop cancels the loop and blocks until an in-flight frame has returned.
// No frame runs after Stop returns. Stop is idempotent and safe on a loop
// that was never started.
func (l *Loop) Stop() {
	l.mu.Lock()
	started, cancel := l.started, l.cancel
	l.mu.Unlock()
	if !started {
		return
	}
	cancel()
	<-l.done
}

// Done is closed once the loop goroutine has exited.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Frames returns the number of frames run.
func (l *Loop) Frames() uint64 {
	return l.frames.Load()
}

// Panics returns the number of frames that panicked.
func (l *Loop) Panics() uint64 {
	return l.panics.Load()
}

func (l *Loop) run(ctx context.Context) {
	defer close(l.done)

	var tick <-chan time.Time
	if l.interval > 0 {
		t := time.NewTicker(l.interval)
		defer t.Stop()
		tick = t.C
	}

	for {
		if tick != nil {
			select {
			case <-ctx.Done():
				return
			case <-tick:
			}
		}
		// A tick and a cancel can be ready together.
		if ctx.Err() != nil {
			return
		}
		if !l.runFrame() {
			return
		}
	}
}

// runFrame calls the frame function. A panicking frame does not end the
// loop.
func (l *Loop) runFrame() bool {
	l.frames.Add(1)
	cont := true
	if recoverFrame(&l.panics, func() { cont = l.frame() }) {
		return true
	}
	return cont
}

// recoverFrame runs fn and reports whether it panicked. The panic is
// logged and counted in panics.
func recoverFrame(panics *atomic.Uint64, fn func()) (panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			panics.Add(1)
			slog.Error("frame panicked", "panic", r, "stack", string(debug.Stack()))
			panicked = true
		}
	}()
	fn()
	return false
}
