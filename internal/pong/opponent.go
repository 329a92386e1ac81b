package pong

// OpponentStep returns the opponent paddle's next top edge.
//
// While the ball approaches, the paddle chases the ball's y at TrackSpeed,
// holding still once its center is within TrackDeadZone. While the ball moves
// away, the paddle drifts back toward the arena center at the slower
// DriftSpeed with its own DriftDeadZone. The result is clamped to the arena.
func OpponentStep(cfg Config, paddleY, ballY, ballVX float64) float64 {
	if ballVX > 0 {
		center := paddleY + cfg.PaddleHeight/2
		switch {
		case center < ballY-cfg.TrackDeadZone:
			paddleY += cfg.TrackSpeed
		case center > ballY+cfg.TrackDeadZone:
			paddleY -= cfg.TrackSpeed
		}
	} else {
		home := cfg.CenterPaddleY()
		switch {
		case paddleY < home-cfg.DriftDeadZone:
			paddleY += cfg.DriftSpeed
		case paddleY > home+cfg.DriftDeadZone:
			paddleY -= cfg.DriftSpeed
		}
	}
	return ClampPaddle(paddleY, cfg.PaddleHeight, cfg.Height)
}
