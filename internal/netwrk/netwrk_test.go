package netwrk

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webpong/internal/lobby"
	"webpong/internal/pong"
	"webpong/internal/session"
	"webpong/internal/wire"
)

func startServer(t *testing.T) (*httptest.Server, *lobby.Lobby) {
	t.Helper()
	l := lobby.CreateLobby(nil)
	srv := NewServer(Options{TickRate: 200, Seed: 5}, l, nil)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, l
}

func dial(t *testing.T, ts *httptest.Server, codec string) *websocket.Conn {
	t.Helper()
	u := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?codec=" + codec
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readSnapshot(t *testing.T, conn *websocket.Conn, codec wire.Codec) pong.Snapshot {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	typ, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	if codec.Binary() {
		require.Equal(t, websocket.BinaryMessage, typ)
	} else {
		require.Equal(t, websocket.TextMessage, typ)
	}
	snap, err := codec.DecodeSnapshot(msg)
	require.NoError(t, err)
	return snap
}

func TestServesBrowserPage(t *testing.T) {
	ts, _ := startServer(t)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `<canvas id="pong"`)
}

func TestRejectsUnknownCodec(t *testing.T) {
	ts, _ := startServer(t)

	u := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?codec=xml"
	_, resp, err := websocket.DefaultDialer.Dial(u, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestJSONSessionFollowsPointer(t *testing.T) {
	ts, l := startServer(t)
	conn := dial(t, ts, "json")

	first := readSnapshot(t, conn, wire.JSON{})
	assert.Equal(t, "serving", first.Phase)
	assert.Equal(t, "Get ready!", first.Status)
	assert.Equal(t, 800.0, first.ArenaW)

	// Pointer in the middle of a half-size on-screen box.
	ev, err := wire.JSON{}.EncodeInput(wire.InputEvent{Kind: wire.KindPointer, Y: 125 + 40, BoxTop: 40, BoxHeight: 250})
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, ev))

	var snap pong.Snapshot
	for deadline := time.Now().Add(2 * time.Second); time.Now().Before(deadline); {
		if snap = readSnapshot(t, conn, wire.JSON{}); snap.PlayerY == 210 {
			break
		}
	}
	assert.Equal(t, 210.0, snap.PlayerY)

	assert.Equal(t, 1, l.Len())
}

func TestProtoSessionSendsBinaryFrames(t *testing.T) {
	ts, _ := startServer(t)
	conn := dial(t, ts, "proto")

	snap := readSnapshot(t, conn, wire.Proto{})
	assert.Equal(t, 500.0, snap.ArenaH)
	assert.Equal(t, "serving", snap.Phase)
}

func TestUnchangedFramesAreNotResent(t *testing.T) {
	ts, _ := startServer(t)
	conn := dial(t, ts, "json")
	readSnapshot(t, conn, wire.JSON{})

	// The start countdown shows a static frame for a full second.
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(300*time.Millisecond)))
	extra := 0
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
		extra++
	}
	assert.LessOrEqual(t, extra, 1)
}

func TestEmptyGamesListIsArray(t *testing.T) {
	ts, _ := startServer(t)

	resp, err := http.Get(ts.URL + "/games")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(string(body)))
}

func TestGamesListAndCleanup(t *testing.T) {
	ts, l := startServer(t)
	conn := dial(t, ts, "json")
	readSnapshot(t, conn, wire.JSON{})

	resp, err := http.Get(ts.URL + "/games")
	require.NoError(t, err)
	var games []lobby.Game
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&games))
	resp.Body.Close()
	require.Len(t, games, 1)
	assert.Equal(t, "serving", games[0].Phase)

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	require.Eventually(t, func() bool { return l.Len() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestApplyInput(t *testing.T) {
	cfg := pong.DefaultConfig()
	latch := session.NewLatch()

	ApplyInput(cfg, latch, wire.InputEvent{Kind: wire.KindPointer, Y: 300})
	ApplyInput(cfg, latch, wire.InputEvent{Kind: wire.KindRestart})

	in := latch.Sample()
	assert.Equal(t, pong.Input{PointerY: 300, HasPointer: true, Restart: true}, in)
}

func TestContentHashIgnoresFrame(t *testing.T) {
	a := pong.Snapshot{Frame: 1, BallX: 10, Status: "Get ready!"}
	b := a
	b.Frame = 99
	c := a
	c.BallX = 11

	ha, err := contentHash(wire.Proto{}, a)
	require.NoError(t, err)
	hb, err := contentHash(wire.Proto{}, b)
	require.NoError(t, err)
	hc, err := contentHash(wire.Proto{}, c)
	require.NoError(t, err)

	assert.Equal(t, ha, hb)
	assert.NotEqual(t, ha, hc)
}

func TestConcurrentMatchesGetDistinctSeeds(t *testing.T) {
	srv := NewServer(Options{Seed: 5}, lobby.CreateLobby(nil), nil)

	var wg sync.WaitGroup
	firsts := make([]uint64, 16)
	for i := range firsts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			firsts[i] = srv.source().Uint64()
		}()
	}
	wg.Wait()

	seen := map[uint64]bool{}
	for _, v := range firsts {
		assert.False(t, seen[v], "two matches share a serve sequence")
		seen[v] = true
	}

	assert.Nil(t, NewServer(Options{}, lobby.CreateLobby(nil), nil).source())
}
