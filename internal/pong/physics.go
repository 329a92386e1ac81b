package pong

import "math"

// ResolveWalls bounces the ball off the top and bottom walls. When the ball's
// edge has crossed a wall, the vertical velocity is inverted and the ball is
// put back flush with that wall, so it can never tunnel out of the arena no
// matter how fast it travels.
func ResolveWalls(b *Ball, radius, height float64) bool {
	switch {
	case b.Pos.Y-radius < 0:
		b.Pos.Y = radius
	case b.Pos.Y+radius > height:
		b.Pos.Y = height - radius
	default:
		return false
	}
	b.Vel.Y = -b.Vel.Y
	return true
}

// CircleHitsPaddle reports whether a ball whose leading edge sits at edgeX
// is inside the horizontal band of a paddle at x, and whether the ball's
// vertical extent overlaps the paddle's span.
func CircleHitsPaddle(edgeX, ballY, radius, paddleX, paddleY, paddleW, paddleH float64) bool {
	return edgeX > paddleX &&
		edgeX < paddleX+paddleW &&
		ballY+radius > paddleY &&
		ballY-radius < paddleY+paddleH
}

// SweptHitsPaddle is CircleHitsPaddle for a leading edge that moved from
// prevEdgeX to edgeX during the tick. A ball faster than the paddle is wide
// would otherwise jump over the band.
func SweptHitsPaddle(prevEdgeX, edgeX, ballY, radius, paddleX, paddleY, paddleW, paddleH float64) bool {
	lo, hi := math.Min(prevEdgeX, edgeX), math.Max(prevEdgeX, edgeX)
	if lo == hi {
		return CircleHitsPaddle(edgeX, ballY, radius, paddleX, paddleY, paddleW, paddleH)
	}
	return lo < paddleX+paddleW &&
		hi > paddleX &&
		ballY+radius > paddleY &&
		ballY-radius < paddleY+paddleH
}

// ReflectOffPaddle sends the ball back in direction dir (+1 right, -1 left)
// one increment faster than it arrived. The vertical velocity is set from
// where the ball struck: the paddle center gives a flat return, the ends give
// ±factor.
func ReflectOffPaddle(b *Ball, paddleY, paddleH, increment, factor, dir float64) {
	b.Vel.X = dir * (math.Abs(b.Vel.X) + increment)
	b.Vel.Y = StrikeOffset(b.Pos.Y, paddleY, paddleH) * factor
}

// StrikeOffset normalizes a contact point to [-1, 1] relative to the paddle
// center.
func StrikeOffset(ballY, paddleY, paddleH float64) float64 {
	half := paddleH / 2
	return clamp((ballY-(paddleY+half))/half, -1, 1)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// ClampPaddle keeps a paddle's top edge inside [0, height-paddleH].
func ClampPaddle(y, paddleH, height float64) float64 {
	return clamp(y, 0, height-paddleH)
}
