package pong

import (
	"errors"
	"fmt"
	"time"
)

// Config holds the arena and gameplay constants for a match. It is fixed for
// the lifetime of a match; a renderer reads the values it needs back out of
// each Snapshot.
type Config struct {
	Width  float64
	Height float64

	PaddleWidth  float64
	PaddleHeight float64
	BallRadius   float64

	PlayerX   float64
	OpponentX float64

	WinningScore int

	// Serve delay after a point, and the shorter one used on match start.
	ServeDelay time.Duration
	StartDelay time.Duration

	ServeSpeed     float64
	ServeSpreadY   float64
	SpeedIncrement float64
	AngleFactor    float64

	TrackSpeed    float64
	TrackDeadZone float64
	DriftSpeed    float64
	DriftDeadZone float64
}

var ErrInvalidConfig = errors.New("invalid pong config")

func DefaultConfig() Config {
	const (
		width       = 800
		height      = 500
		paddleWidth = 12
	)
	return Config{
		Width:          width,
		Height:         height,
		PaddleWidth:    paddleWidth,
		PaddleHeight:   80,
		BallRadius:     10,
		PlayerX:        20,
		OpponentX:      width - 20 - paddleWidth,
		WinningScore:   11,
		ServeDelay:     2000 * time.Millisecond,
		StartDelay:     1000 * time.Millisecond,
		ServeSpeed:     5,
		ServeSpreadY:   6,
		SpeedIncrement: 0.5,
		AngleFactor:    5,
		TrackSpeed:     4,
		TrackDeadZone:  10,
		DriftSpeed:     2,
		DriftDeadZone:  5,
	}
}

// Validate reports the first constant that would let the simulation reach a
// state it cannot recover from, such as a ball too large to fit between the
// walls.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: arena %vx%v must be positive", ErrInvalidConfig, c.Width, c.Height)
	case c.PaddleWidth <= 0 || c.PaddleHeight <= 0:
		return fmt.Errorf("%w: paddle %vx%v must be positive", ErrInvalidConfig, c.PaddleWidth, c.PaddleHeight)
	case c.PaddleHeight > c.Height:
		return fmt.Errorf("%w: paddle height %v exceeds arena height %v", ErrInvalidConfig, c.PaddleHeight, c.Height)
	case c.BallRadius <= 0 || 2*c.BallRadius >= c.Height:
		return fmt.Errorf("%w: ball radius %v does not fit arena height %v", ErrInvalidConfig, c.BallRadius, c.Height)
	case c.PlayerX < 0 || c.PlayerX+c.PaddleWidth > c.Width:
		return fmt.Errorf("%w: player paddle x %v outside arena", ErrInvalidConfig, c.PlayerX)
	case c.OpponentX < 0 || c.OpponentX+c.PaddleWidth > c.Width:
		return fmt.Errorf("%w: opponent paddle x %v outside arena", ErrInvalidConfig, c.OpponentX)
	case c.PlayerX+c.PaddleWidth >= c.OpponentX:
		return fmt.Errorf("%w: player paddle must sit left of opponent paddle", ErrInvalidConfig)
	case c.WinningScore <= 0:
		return fmt.Errorf("%w: winning score %d must be positive", ErrInvalidConfig, c.WinningScore)
	case c.ServeDelay < 0 || c.StartDelay < 0:
		return fmt.Errorf("%w: serve delays must not be negative", ErrInvalidConfig)
	case c.ServeSpeed <= 0:
		return fmt.Errorf("%w: serve speed %v must be positive", ErrInvalidConfig, c.ServeSpeed)
	}
	return nil
}

// MaxPaddleY is the largest legal top edge for either paddle.
func (c Config) MaxPaddleY() float64 {
	return c.Height - c.PaddleHeight
}

// CenterPaddleY is the top edge that centers a paddle vertically.
func (c Config) CenterPaddleY() float64 {
	return c.Height/2 - c.PaddleHeight/2
}
