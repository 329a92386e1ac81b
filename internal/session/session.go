package session

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"webpong/internal/pong"
)

const DefaultTickRate = 60

// Sink consumes the snapshot produced by every tick.
type Sink interface {
	Present(snap pong.Snapshot) error
}

type SinkFunc func(snap pong.Snapshot) error

func (f SinkFunc) Present(snap pong.Snapshot) error { return f(snap) }

// Session drives one match: on every frame it samples the input latch,
// ticks the match and hands the snapshot to the sink.
type Session struct {
	ID string

	match *pong.Match
	latch *Latch
	sink  Sink
	last  atomic.Pointer[pong.Snapshot]

	interval time.Duration
	clock    func() time.Time
	log      *zap.Logger
}

type Option func(*Session)

// WithTickRate sets the number of frames per second. Non-positive rates are
// ignored.
func WithTickRate(fps int) Option {
	return func(s *Session) {
		if fps > 0 {
			s.interval = time.Second / time.Duration(fps)
		}
	}
}

func WithClock(clock func() time.Time) Option {
	return func(s *Session) { s.clock = clock }
}

func WithLogger(log *zap.Logger) Option {
	return func(s *Session) { s.log = log }
}

func New(id string, match *pong.Match, sink Sink, opts ...Option) *Session {
	s := &Session{
		ID:       id,
		match:    match,
		latch:    NewLatch(),
		sink:     sink,
		interval: time.Second / DefaultTickRate,
		clock:    time.Now,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(zap.String("game_id", id))
	snap := match.Snapshot()
	s.last.Store(&snap)
	return s
}

// Input returns the latch hosts write pointer and restart events to.
func (s *Session) Input() *Latch { return s.latch }

// Latest returns the most recently presented snapshot. Unlike Match, it is
// safe to call while Run is ticking.
func (s *Session) Latest() pong.Snapshot { return *s.last.Load() }

// Step runs a single tick at now and presents the result.
func (s *Session) Step(now time.Time) error {
	before := s.match.State()
	s.match.Tick(now, s.latch.Sample())
	after := s.match.State()

	if after.Score != before.Score {
		s.log.Debug("point scored",
			zap.Stringer("scorer", after.LastScorer),
			zap.Int("player", after.Score.Player),
			zap.Int("opponent", after.Score.Opponent))
	}
	if after.Phase != before.Phase {
		switch after.Phase {
		case pong.GameOver:
			s.log.Info("game over", zap.Stringer("winner", after.Winner))
		case pong.Serving:
			if before.Phase == pong.GameOver {
				s.log.Info("match restarted")
			}
		}
	}

	snap := s.match.Snapshot()
	s.last.Store(&snap)
	if err := s.sink.Present(snap); err != nil {
		return fmt.Errorf("present frame %d: %w", snap.Frame, err)
	}
	return nil
}

// Run ticks at the configured rate until ctx is done or the sink fails. The
// initial state is presented before the first tick.
func (s *Session) Run(ctx context.Context) error {
	if err := s.sink.Present(s.match.Snapshot()); err != nil {
		return fmt.Errorf("present initial frame: %w", err)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.Step(s.clock()); err != nil {
				return err
			}
		}
	}
}
