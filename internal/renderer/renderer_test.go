package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"webpong/internal/pong"
	"webpong/internal/wire"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 27)
	t.Cleanup(screen.Fini)
	return screen
}

func servingSnapshot(t *testing.T) pong.Snapshot {
	t.Helper()
	m, err := pong.NewMatch(pong.DefaultConfig(), rand.NewSource(2), time.Unix(0, 0))
	require.NoError(t, err)
	return m.Snapshot()
}

func rowText(screen tcell.Screen, row int) string {
	w, _ := screen.Size()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		ch, _, _, _ := screen.GetContent(x, row)
		if ch == 0 {
			ch = ' '
		}
		sb.WriteRune(ch)
	}
	return strings.TrimSpace(sb.String())
}

func TestPresentDrawsArena(t *testing.T) {
	screen := newScreen(t)
	r := New(screen)

	require.NoError(t, r.Present(servingSnapshot(t)))

	assert.Equal(t, "Player 0 : 0 AI", rowText(screen, 0))
	assert.Equal(t, "Get ready!", rowText(screen, 26))

	for row := 11; row <= 14; row++ {
		ch, _, _, _ := screen.GetContent(2, row)
		assert.Equal(t, blockRune, ch, "player paddle row %d", row)
		ch, _, _, _ = screen.GetContent(76, row)
		assert.Equal(t, blockRune, ch, "opponent paddle row %d", row)
	}
	ch, _, _, _ := screen.GetContent(2, 15)
	assert.NotEqual(t, blockRune, ch)

	ch, _, style, _ := screen.GetContent(40, 13)
	assert.Equal(t, ballRune, ch)
	assert.Equal(t, ghostStyle, style, "serving ball is drawn as a placeholder")
}

func TestPresentGameOverBanner(t *testing.T) {
	screen := newScreen(t)
	r := New(screen)

	snap := servingSnapshot(t)
	snap.Phase = pong.GameOver.String()
	snap.Winner = pong.Player.String()
	snap.BallVisible = false
	snap.PlayerScore = 11
	snap.Status = "Player Wins! Click to restart"
	snap.Hint = "win"
	require.NoError(t, r.Present(snap))

	assert.Equal(t, "Player 11 : 0 AI", rowText(screen, 0))
	assert.Contains(t, rowText(screen, 12), "PLAYER WINS!")
	assert.Contains(t, rowText(screen, 14), "Click anywhere to restart")
	_, _, style, _ := screen.GetContent(40, 26)
	assert.Equal(t, hintStyles[pong.HintWin], style)
}

func TestUnknownHintFallsBackToNeutral(t *testing.T) {
	screen := newScreen(t)
	snap := servingSnapshot(t)
	snap.Hint = "sparkly"
	require.NoError(t, New(screen).Present(snap))

	_, _, style, _ := screen.GetContent(40, 26)
	assert.Equal(t, hintStyles[pong.HintNeutral], style)
}

func TestPresentIgnoresEmptySnapshot(t *testing.T) {
	screen := newScreen(t)
	require.NoError(t, New(screen).Present(pong.Snapshot{}))
	assert.Empty(t, rowText(screen, 0))
}

func TestMouseMovesAndClickRestarts(t *testing.T) {
	screen := newScreen(t)
	r := New(screen)
	require.NoError(t, r.Present(servingSnapshot(t)))

	quit, events := r.HandleEvent(tcell.NewEventMouse(10, 13, tcell.Button1, tcell.ModNone))
	assert.False(t, quit)
	require.Len(t, events, 2)
	assert.Equal(t, wire.InputEvent{Kind: wire.KindPointer, Y: 13.5, BoxTop: 1, BoxHeight: 25}, events[0])
	assert.Equal(t, wire.KindRestart, events[1].Kind)
	assert.Equal(t, 250.0, r.PointerY())

	cfg := pong.DefaultConfig()
	assert.Equal(t, 250.0, pong.ArenaY(cfg, events[0].Y, events[0].BoxTop, events[0].BoxHeight))

	_, events = r.HandleEvent(tcell.NewEventMouse(10, 0, tcell.ButtonNone, tcell.ModNone))
	assert.Empty(t, events, "score row is outside the arena")
}

func TestKeysNudgePointer(t *testing.T) {
	screen := newScreen(t)
	r := New(screen)

	_, events := r.HandleEvent(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone))
	assert.Empty(t, events, "no arena known yet")

	require.NoError(t, r.Present(servingSnapshot(t)))

	_, events = r.HandleEvent(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone))
	require.Len(t, events, 1)
	assert.Equal(t, wire.InputEvent{Kind: wire.KindPointer, Y: 225}, events[0])

	for i := 0; i < 30; i++ {
		_, events = r.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModNone))
	}
	assert.Equal(t, 500.0, events[0].Y)
}

func TestProcessInput(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want UiAction
	}{
		{tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), Quit},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), Quit},
		{tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), Quit},
		{tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone), Up},
		{tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), Down},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), Restart},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), Restart},
		{tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), Unknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ProcessInput(tt.ev), tt.ev.Name())
	}

	quit, _ := New(newScreen(t)).HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone))
	assert.True(t, quit)
}
