package lobby

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"webpong/internal/session"
)

var ErrNotFound = errors.New("game not found")

// Lobby tracks every live match by game id.
type Lobby struct {
	games  sync.Map
	live   atomic.Int64
	opened atomic.Uint64
	log    *zap.Logger
}

// Game is the lobby's public view of a live match.
type Game struct {
	ID            string `json:"id"`
	Phase         string `json:"phase"`
	PlayerScore   int    `json:"playerScore"`
	OpponentScore int    `json:"opponentScore"`
}

func CreateLobby(log *zap.Logger) *Lobby {
	if log == nil {
		log = zap.NewNop()
	}
	return &Lobby{log: log}
}

// Create assigns a fresh game id, builds the session for it and registers it.
func (l *Lobby) Create(build func(id string) (*session.Session, error)) (*session.Session, error) {
	id := uuid.NewString()
	s, err := build(id)
	if err != nil {
		return nil, fmt.Errorf("build game %s: %w", id, err)
	}

	l.games.Store(id, s)
	l.live.Add(1)
	l.opened.Add(1)
	l.log.Debug("game registered", zap.String("game_id", id), zap.Int64("live", l.live.Load()))
	return s, nil
}

func (l *Lobby) Get(id string) (*session.Session, error) {
	v, ok := l.games.Load(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s, ok := v.(*session.Session)
	if !ok {
		l.log.Warn("item that was not a session found in the lobby", zap.String("game_id", id))
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s, nil
}

func (l *Lobby) Remove(id string) {
	if _, loaded := l.games.LoadAndDelete(id); loaded {
		l.live.Add(-1)
		l.log.Debug("game removed", zap.String("game_id", id), zap.Int64("live", l.live.Load()))
	}
}

// Len is the number of live games.
func (l *Lobby) Len() int { return int(l.live.Load()) }

// Opened is the number of games created over the lobby's lifetime.
func (l *Lobby) Opened() uint64 { return l.opened.Load() }

// Games lists the live games ordered by id.
func (l *Lobby) Games() []Game {
	games := []Game{}
	l.games.Range(func(key, value any) bool {
		s, ok := value.(*session.Session)
		if !ok {
			return true
		}
		snap := s.Latest()
		games = append(games, Game{
			ID:            s.ID,
			Phase:         snap.Phase,
			PlayerScore:   snap.PlayerScore,
			OpponentScore: snap.OpponentScore,
		})
		return true
	})
	sort.Slice(games, func(i, j int) bool { return games[i].ID < games[j].ID })
	return games
}
