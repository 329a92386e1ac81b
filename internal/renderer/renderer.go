package renderer

import (
	"math"
	"strconv"

	"github.com/gdamore/tcell/v2"

	"webpong/internal/pong"
)

const (
	blockRune = '█'
	ballRune  = '●'
	netRune   = '┊'
)

var (
	paddleStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	ballStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	ghostStyle  = tcell.StyleDefault.Foreground(tcell.ColorGray).Dim(true)
	netStyle    = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	scoreStyle  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)

	hintStyles = map[pong.StatusHint]tcell.Style{
		pong.HintNeutral: tcell.StyleDefault.Foreground(tcell.ColorGreen),
		pong.HintWin:     tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true),
		pong.HintLose:    tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
		pong.HintPending: tcell.StyleDefault.Foreground(tcell.ColorOrange),
	}
)

// Renderer draws snapshots onto a terminal screen. The score sits on the
// first row, the status on the last, and the arena is scaled into the rows
// in between.
type Renderer struct {
	screen tcell.Screen
	last   pong.Snapshot
	// pointerY is the paddle target in arena units, used by keyboard input.
	pointerY float64
}

func New(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// box is the arena's on-screen bounding box.
type box struct {
	top, rows, cols int
}

func (r *Renderer) box() box {
	w, h := r.screen.Size()
	return box{top: 1, rows: max(h-2, 1), cols: max(w, 1)}
}

func (b box) col(x, arenaW float64) int {
	return int(math.Floor(x * float64(b.cols) / arenaW))
}

func (b box) row(y, arenaH float64) int {
	return b.top + int(math.Floor(y*float64(b.rows)/arenaH))
}

func (r *Renderer) Present(snap pong.Snapshot) error {
	if r.last.ArenaH == 0 && snap.ArenaH > 0 {
		r.pointerY = snap.ArenaH / 2
	}
	r.last = snap
	r.draw(snap)
	r.screen.Show()
	return nil
}

func (r *Renderer) draw(s pong.Snapshot) {
	r.screen.Clear()
	if s.ArenaW <= 0 || s.ArenaH <= 0 {
		return
	}
	b := r.box()

	for row := b.top; row < b.top+b.rows; row += 2 {
		r.screen.SetContent(b.cols/2, row, netRune, nil, netStyle)
	}

	r.drawPaddle(b, s, s.PlayerX, s.PlayerY)
	r.drawPaddle(b, s, s.OpponentX, s.OpponentY)

	if s.BallVisible {
		style := ballStyle
		if s.BallAlpha < 1 {
			style = ghostStyle
		}
		x, y := b.col(s.BallX, s.ArenaW), b.row(s.BallY, s.ArenaH)
		if x >= 0 && x < b.cols && y >= b.top && y < b.top+b.rows {
			r.screen.SetContent(x, y, ballRune, nil, style)
		}
	}

	drawCentered(r.screen, b.cols, 0, scoreLine(s), scoreStyle)

	if s.Phase == pong.GameOver.String() {
		banner := "AI WINS!"
		if s.Winner == pong.Player.String() {
			banner = "PLAYER WINS!"
		}
		mid := b.top + b.rows/2
		drawCentered(r.screen, b.cols, mid-1, banner, scoreStyle)
		drawCentered(r.screen, b.cols, mid+1, "Click anywhere to restart", netStyle)
	}

	drawCentered(r.screen, b.cols, b.top+b.rows, s.Status, hintStyles[pong.ParseStatusHint(s.Hint)])
}

func (r *Renderer) drawPaddle(b box, s pong.Snapshot, x, y float64) {
	left := b.col(x, s.ArenaW)
	width := max(b.col(x+s.PaddleW, s.ArenaW)-left, 1)
	top := b.row(y, s.ArenaH)
	bottom := max(b.row(y+s.PaddleH, s.ArenaH), top+1)

	for row := top; row < bottom && row < b.top+b.rows; row++ {
		for col := left; col < left+width && col < b.cols; col++ {
			r.screen.SetContent(col, row, blockRune, nil, paddleStyle)
		}
	}
}

func scoreLine(s pong.Snapshot) string {
	return "Player " + strconv.Itoa(s.PlayerScore) + " : " + strconv.Itoa(s.OpponentScore) + " AI"
}

func drawCentered(screen tcell.Screen, width, row int, text string, style tcell.Style) {
	runes := []rune(text)
	x := max((width-len(runes))/2, 0)
	for i, ch := range runes {
		if x+i >= width {
			break
		}
		screen.SetContent(x+i, row, ch, nil, style)
	}
}
