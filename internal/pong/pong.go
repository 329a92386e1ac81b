package pong

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/exp/rand"
)

// Match owns a single MatchState and is the only thing that mutates it. It is
// not safe for concurrent use: one driver calls Tick and then reads a
// Snapshot, strictly in that order.
type Match struct {
	cfg   Config
	rng   *rand.Rand
	state MatchState

	now    time.Time
	frames uint64
	// opening is set by Restart and cleared by the first tick after it.
	opening bool
}

// NewMatch validates cfg and returns a match in its initial Serving phase. A
// nil src seeds the serve randomness from now.
func NewMatch(cfg Config, src rand.Source, now time.Time) (*Match, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		src = rand.NewSource(uint64(now.UnixNano()))
	}

	m := &Match{
		cfg: cfg,
		rng: rand.New(src),
	}
	m.state.Player.X = cfg.PlayerX
	m.state.Opponent.X = cfg.OpponentX
	m.Restart(now)
	return m, nil
}

func MustNewMatch(cfg Config, src rand.Source, now time.Time) *Match {
	m, err := NewMatch(cfg, src, now)
	if err != nil {
		panic(fmt.Sprintf("pong: %v", err))
	}
	return m
}

func (m *Match) Config() Config { return m.cfg }

// State returns a copy of the match state.
func (m *Match) State() MatchState { return m.state }

// Restart zeroes the score and re-enters Serving with the short start delay.
// The first server is picked at random.
func (m *Match) Restart(now time.Time) {
	s := &m.state
	s.Score = Score{}
	s.LastScorer = NoSide
	s.Winner = NoSide
	s.Player.Y = m.cfg.CenterPaddleY()
	s.Opponent.Y = m.cfg.CenterPaddleY()
	s.Ball = Ball{Pos: m.center()}

	s.Server = Player
	if m.rng.Intn(2) == 0 {
		s.Server = Opponent
	}
	s.Phase = Serving
	s.Deadline = now.Add(m.cfg.StartDelay)
	m.now = now
	m.opening = true
}

// Tick advances the match by one frame.
func (m *Match) Tick(now time.Time, in Input) {
	m.now = now
	m.frames++

	if m.state.Phase == GameOver {
		if in.Restart {
			m.Restart(now)
		}
		return
	}
	m.opening = false

	if in.HasPointer && validCoord(in.PointerY) {
		m.state.Player.Y = PaddleTarget(m.cfg, in.PointerY)
	}

	switch m.state.Phase {
	case Serving:
		if now.Before(m.state.Deadline) {
			return
		}
		m.serve()
	case Playing:
		m.play()
	}

	m.state.Player.Y = ClampPaddle(m.state.Player.Y, m.cfg.PaddleHeight, m.cfg.Height)
	m.state.Opponent.Y = ClampPaddle(m.state.Opponent.Y, m.cfg.PaddleHeight, m.cfg.Height)
}

func (m *Match) serve() {
	s := &m.state
	dir := 1.0
	if s.Server == Opponent {
		dir = -1
	}
	// After a point the rally speed carries over; only the direction changes.
	speed := m.cfg.ServeSpeed
	if s.LastScorer != NoSide && s.Ball.Vel.X != 0 {
		speed = math.Abs(s.Ball.Vel.X)
	}
	s.Ball.Pos = m.center()
	s.Ball.Vel = Vector{
		X: dir * speed,
		Y: (m.rng.Float64() - 0.5) * m.cfg.ServeSpreadY,
	}
	s.Phase = Playing
}

func (m *Match) play() {
	cfg := m.cfg
	s := &m.state
	b := &s.Ball

	prevX := b.Pos.X
	b.Pos.X += b.Vel.X
	b.Pos.Y += b.Vel.Y

	ResolveWalls(b, cfg.BallRadius, cfg.Height)

	if b.Vel.X < 0 && SweptHitsPaddle(prevX-cfg.BallRadius, b.Pos.X-cfg.BallRadius, b.Pos.Y, cfg.BallRadius,
		s.Player.X, s.Player.Y, cfg.PaddleWidth, cfg.PaddleHeight) {
		ReflectOffPaddle(b, s.Player.Y, cfg.PaddleHeight, cfg.SpeedIncrement, cfg.AngleFactor, 1)
		b.Pos.X = s.Player.X + cfg.PaddleWidth + cfg.BallRadius
	}

	if b.Vel.X > 0 && SweptHitsPaddle(prevX+cfg.BallRadius, b.Pos.X+cfg.BallRadius, b.Pos.Y, cfg.BallRadius,
		s.Opponent.X, s.Opponent.Y, cfg.PaddleWidth, cfg.PaddleHeight) {
		ReflectOffPaddle(b, s.Opponent.Y, cfg.PaddleHeight, cfg.SpeedIncrement, cfg.AngleFactor, -1)
		b.Pos.X = s.Opponent.X - cfg.BallRadius
	}

	switch {
	case b.Pos.X < -cfg.BallRadius:
		m.scorePoint(Opponent)
	case b.Pos.X > cfg.Width+cfg.BallRadius:
		m.scorePoint(Player)
	}

	s.Opponent.Y = OpponentStep(cfg, s.Opponent.Y, b.Pos.Y, b.Vel.X)
}

func (m *Match) scorePoint(side Side) {
	s := &m.state
	switch side {
	case Player:
		s.Score.Player++
	case Opponent:
		s.Score.Opponent++
	}
	s.LastScorer = side

	if s.Score.Get(side) >= m.cfg.WinningScore {
		s.Phase = GameOver
		s.Winner = side
		return
	}

	// The side that conceded serves next.
	s.Phase = Serving
	s.Server = side.Other()
	s.Deadline = m.now.Add(m.cfg.ServeDelay)
	s.Ball.Pos = m.center()
}

func (m *Match) center() Vector {
	return Vector{X: m.cfg.Width / 2, Y: m.cfg.Height / 2}
}
