package renderer

import (
	"github.com/gdamore/tcell/v2"

	"webpong/internal/wire"
)

type UiAction int

const (
	Unknown UiAction = iota
	Quit
	Up
	Down
	Restart
)

// KeyStep is how far, in arena units, an arrow key moves the paddle target.
const KeyStep = 25.0

// ProcessInput maps a key press to an action.
func ProcessInput(ev *tcell.EventKey) UiAction {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return Quit
	case tcell.KeyUp:
		return Up
	case tcell.KeyDown:
		return Down
	case tcell.KeyEnter:
		return Restart
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return Quit
		case 'w', 'W', 'k':
			return Up
		case 's', 'S', 'j':
			return Down
		case ' ', 'r', 'R':
			return Restart
		}
	}
	return Unknown
}

// HandleEvent turns a terminal event into the input events to send to the
// server. quit is set when the user asked to leave.
func (r *Renderer) HandleEvent(ev tcell.Event) (quit bool, events []wire.InputEvent) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ProcessInput(ev) {
		case Quit:
			return true, nil
		case Up:
			return false, r.nudge(-KeyStep)
		case Down:
			return false, r.nudge(KeyStep)
		case Restart:
			return false, []wire.InputEvent{{Kind: wire.KindRestart}}
		}

	case *tcell.EventMouse:
		_, y := ev.Position()
		b := r.box()
		if y < b.top || y >= b.top+b.rows {
			return false, nil
		}
		// Aim at the middle of the cell.
		pointer := wire.InputEvent{
			Kind:      wire.KindPointer,
			Y:         float64(y) + 0.5,
			BoxTop:    float64(b.top),
			BoxHeight: float64(b.rows),
		}
		if r.last.ArenaH > 0 {
			r.pointerY = (pointer.Y - pointer.BoxTop) * r.last.ArenaH / pointer.BoxHeight
		}
		events = append(events, pointer)
		if ev.Buttons()&tcell.Button1 != 0 {
			events = append(events, wire.InputEvent{Kind: wire.KindRestart})
		}
		return false, events

	case *tcell.EventResize:
		r.screen.Sync()
	}
	return false, nil
}

func (r *Renderer) nudge(dy float64) []wire.InputEvent {
	if r.last.ArenaH <= 0 {
		return nil
	}
	r.pointerY = min(max(r.pointerY+dy, 0), r.last.ArenaH)
	return []wire.InputEvent{{Kind: wire.KindPointer, Y: r.pointerY}}
}

// PointerY is the current keyboard/mouse paddle target in arena units.
func (r *Renderer) PointerY() float64 { return r.pointerY }
