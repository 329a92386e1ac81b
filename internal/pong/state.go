package pong

import "time"

type Vector struct {
	X float64
	Y float64
}

type Side int

const (
	NoSide Side = iota
	Player
	Opponent
)

func (s Side) String() string {
	switch s {
	case Player:
		return "Player"
	case Opponent:
		return "AI"
	default:
		return ""
	}
}

// Other returns the side facing s.
func (s Side) Other() Side {
	switch s {
	case Player:
		return Opponent
	case Opponent:
		return Player
	default:
		return NoSide
	}
}

type Phase int

const (
	Serving Phase = iota
	Playing
	GameOver
)

func (p Phase) String() string {
	switch p {
	case Serving:
		return "serving"
	case Playing:
		return "playing"
	case GameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

type Paddle struct {
	X float64
	Y float64
}

type Ball struct {
	Pos Vector
	Vel Vector
}

type Score struct {
	Player   int
	Opponent int
}

// Get returns the points held by side.
func (s Score) Get(side Side) int {
	switch side {
	case Player:
		return s.Player
	case Opponent:
		return s.Opponent
	default:
		return 0
	}
}

// MatchState is everything a tick reads and writes.
//
// Deadline and Server are meaningful only while Phase is Serving, Winner only
// while Phase is GameOver.
type MatchState struct {
	Player   Paddle
	Opponent Paddle
	Ball     Ball
	Score    Score

	Phase    Phase
	Deadline time.Time
	Server   Side
	Winner   Side

	LastScorer Side
}
