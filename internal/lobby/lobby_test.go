package lobby

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"webpong/internal/pong"
	"webpong/internal/session"
)

func build(id string) (*session.Session, error) {
	m, err := pong.NewMatch(pong.DefaultConfig(), rand.NewSource(9), time.Unix(0, 0))
	if err != nil {
		return nil, err
	}
	sink := session.SinkFunc(func(pong.Snapshot) error { return nil })
	return session.New(id, m, sink), nil
}

func TestCreateGetRemove(t *testing.T) {
	l := CreateLobby(nil)

	s, err := l.Create(build)
	require.NoError(t, err)
	_, err = uuid.Parse(s.ID)
	require.NoError(t, err, "game ids are uuids")

	got, err := l.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)
	assert.Equal(t, 1, l.Len())

	l.Remove(s.ID)
	l.Remove(s.ID)
	assert.Equal(t, 0, l.Len())
	assert.Equal(t, uint64(1), l.Opened())

	_, err = l.Get(s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreatePropagatesBuildError(t *testing.T) {
	l := CreateLobby(nil)
	boom := errors.New("bad config")

	_, err := l.Create(func(string) (*session.Session, error) { return nil, boom })
	require.ErrorIs(t, err, boom)
	assert.Zero(t, l.Len())
}

func TestGamesListsScores(t *testing.T) {
	l := CreateLobby(nil)
	a, err := l.Create(build)
	require.NoError(t, err)
	b, err := l.Create(build)
	require.NoError(t, err)

	games := l.Games()
	require.Len(t, games, 2)
	ids := []string{games[0].ID, games[1].ID}
	assert.ElementsMatch(t, []string{a.ID, b.ID}, ids)
	assert.Less(t, games[0].ID, games[1].ID)
	for _, g := range games {
		assert.Equal(t, "serving", g.Phase)
		assert.Zero(t, g.PlayerScore)
	}
}

func TestConcurrentCreateAndRemove(t *testing.T) {
	l := CreateLobby(nil)
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := l.Create(build)
			if err != nil {
				t.Error(err)
				return
			}
			l.Remove(s.ID)
		}()
	}
	wg.Wait()
	assert.Zero(t, l.Len())
	assert.Equal(t, uint64(32), l.Opened())
}

func TestGamesIsEmptyNotNil(t *testing.T) {
	l := CreateLobby(nil)
	games := l.Games()
	require.NotNil(t, games)
	assert.Empty(t, games)
}
