package pong

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpponentStep(t *testing.T) {
	cfg := DefaultConfig()
	home := cfg.CenterPaddleY() // 210

	tests := []struct {
		name    string
		paddleY float64
		ballY   float64
		ballVX  float64
		want    float64
	}{
		{"tracks down toward ball", 100, 300, 5, 104},
		{"tracks up toward ball", 300, 100, 5, 296},
		{"holds inside track dead zone", 100, 149, 5, 100},
		{"drifts down to center", 100, 0, -5, 102},
		{"drifts up to center", 300, 0, -5, 298},
		{"holds inside drift dead zone", home + 4, 0, -5, home + 4},
		{"stationary ball counts as moving away", 100, 0, 0, 102},
		{"clamped at bottom", cfg.MaxPaddleY() - 1, 499, 5, cfg.MaxPaddleY()},
		{"clamped at top", 1, 0, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OpponentStep(cfg, tt.paddleY, tt.ballY, tt.ballVX))
		})
	}
}
