package session

import (
	"sync"

	"webpong/internal/pong"
)

// Latch holds the most recent input delivered by a host. Transport goroutines
// write to it at any time; the driver samples it once at the start of every
// tick, so the match itself only ever has one writer.
type Latch struct {
	mu sync.Mutex
	in pong.Input
}

func NewLatch() *Latch {
	return &Latch{}
}

// Pointer records a pointer position in arena units. Later positions replace
// earlier ones.
func (l *Latch) Pointer(y float64) {
	l.mu.Lock()
	l.in.PointerY = y
	l.in.HasPointer = true
	l.mu.Unlock()
}

// Restart records a click or touch-start. It is delivered to exactly one
// tick.
func (l *Latch) Restart() {
	l.mu.Lock()
	l.in.Restart = true
	l.mu.Unlock()
}

func (l *Latch) Sample() pong.Input {
	l.mu.Lock()
	defer l.mu.Unlock()
	in := l.in
	l.in.Restart = false
	return in
}
