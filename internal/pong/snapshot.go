package pong

import (
	"fmt"
	"time"
)

// StatusHint tells a renderer how to color the status line.
type StatusHint int

const (
	HintNeutral StatusHint = iota
	HintWin
	HintLose
	HintPending
)

func (h StatusHint) String() string {
	switch h {
	case HintWin:
		return "win"
	case HintLose:
		return "lose"
	case HintPending:
		return "pending"
	default:
		return "neutral"
	}
}

// ParseStatusHint is the inverse of StatusHint.String. Unknown names map to
// HintNeutral.
func ParseStatusHint(s string) StatusHint {
	switch s {
	case "win":
		return HintWin
	case "lose":
		return HintLose
	case "pending":
		return HintPending
	default:
		return HintNeutral
	}
}

// Snapshot is the read-only view of a match handed to a presentation sink
// after every tick.
type Snapshot struct {
	Frame uint64 `json:"frame"`

	ArenaW        float64 `json:"arenaW"`
	ArenaH        float64 `json:"arenaH"`
	PaddleW       float64 `json:"paddleW"`
	PaddleH       float64 `json:"paddleH"`
	BallRadius    float64 `json:"ballRadius"`
	PlayerX       float64 `json:"playerX"`
	OpponentX     float64 `json:"opponentX"`
	PlayerY       float64 `json:"playerY"`
	OpponentY     float64 `json:"opponentY"`
	BallX         float64 `json:"ballX"`
	BallY         float64 `json:"ballY"`
	BallVisible   bool    `json:"ballVisible"`
	BallAlpha     float64 `json:"ballAlpha"`
	Status        string  `json:"statusText"`
	Hint          string  `json:"statusHint"`
	Phase         string  `json:"phase"`
	Winner        string  `json:"winner,omitempty"`
	PlayerScore   int     `json:"playerScore"`
	OpponentScore int     `json:"opponentScore"`
}

// Snapshot describes the match as of the most recent Tick or Restart.
func (m *Match) Snapshot() Snapshot {
	cfg := m.cfg
	s := m.state

	snap := Snapshot{
		Frame:         m.frames,
		ArenaW:        cfg.Width,
		ArenaH:        cfg.Height,
		PaddleW:       cfg.PaddleWidth,
		PaddleH:       cfg.PaddleHeight,
		BallRadius:    cfg.BallRadius,
		PlayerX:       s.Player.X,
		OpponentX:     s.Opponent.X,
		PlayerY:       s.Player.Y,
		OpponentY:     s.Opponent.Y,
		BallX:         s.Ball.Pos.X,
		BallY:         s.Ball.Pos.Y,
		Phase:         s.Phase.String(),
		Winner:        s.Winner.String(),
		PlayerScore:   s.Score.Player,
		OpponentScore: s.Score.Opponent,
	}

	var hint StatusHint
	switch s.Phase {
	case Playing:
		snap.BallVisible = true
		snap.BallAlpha = 1
	case Serving:
		snap.BallVisible = true
		snap.BallAlpha = 0.5
		snap.Status, hint = serveStatus(s, m.now, m.opening)
	case GameOver:
		snap.Status = fmt.Sprintf("%s Wins! Click to restart", s.Winner)
		hint = HintLose
		if s.Winner == Player {
			hint = HintWin
		}
	}
	snap.Hint = hint.String()
	return snap
}

// serveStatus shows "Get ready!" on the frame a match (re)starts and the
// countdown after that.
func serveStatus(s MatchState, now time.Time, opening bool) (string, StatusHint) {
	if opening {
		return "Get ready!", HintNeutral
	}
	return fmt.Sprintf("%s serves in %d...", s.Server, secondsLeft(s.Deadline.Sub(now))), HintPending
}

// secondsLeft rounds a remaining duration up to whole seconds.
func secondsLeft(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}
