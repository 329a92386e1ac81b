package pong

import "math"

// Input is the latest host input sampled at the start of a tick.
type Input struct {
	// PointerY is the pointer's vertical position in arena units. It is only
	// read when HasPointer is set.
	PointerY   float64
	HasPointer bool

	// Restart is a click or touch-start. It only has an effect during
	// GameOver.
	Restart bool
}

// PaddleTarget converts a pointer's vertical position into the top edge of a
// paddle centered on it. Out-of-range positions are clamped into the arena.
func PaddleTarget(cfg Config, pointerY float64) float64 {
	return ClampPaddle(pointerY-cfg.PaddleHeight/2, cfg.PaddleHeight, cfg.Height)
}

// ArenaY maps an on-screen client coordinate into arena units. boxTop and
// boxHeight describe the arena's on-screen bounding box; a box drawn at a
// different size than the arena is rescaled. A non-positive boxHeight is
// treated as an unscaled box.
func ArenaY(cfg Config, clientY, boxTop, boxHeight float64) float64 {
	y := clientY - boxTop
	if boxHeight > 0 && boxHeight != cfg.Height {
		y *= cfg.Height / boxHeight
	}
	return y
}

func validCoord(v float64) bool {
	return !math.IsNaN(v)
}
