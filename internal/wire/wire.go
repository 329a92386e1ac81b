// Package wire encodes the frames exchanged between a match and its hosts:
// snapshots flowing out to presentation sinks and input events flowing in.
package wire

import (
	"errors"
	"fmt"
	"strings"

	"webpong/internal/pong"
)

var (
	ErrUnknownCodec = errors.New("unknown codec")
	ErrMalformed    = errors.New("malformed frame")
)

const (
	KindPointer = "pointer"
	KindRestart = "restart"
)

// InputEvent is a host input. Pointer events carry the pointer's vertical
// position; when BoxHeight is set, Y is an on-screen coordinate and BoxTop
// and BoxHeight describe the arena's bounding box on screen.
type InputEvent struct {
	Kind      string  `json:"type"`
	Y         float64 `json:"y,omitempty"`
	BoxTop    float64 `json:"boxTop,omitempty"`
	BoxHeight float64 `json:"boxHeight,omitempty"`
}

func (e InputEvent) validate() error {
	switch e.Kind {
	case KindPointer, KindRestart:
		return nil
	default:
		return fmt.Errorf("%w: unknown input type %q", ErrMalformed, e.Kind)
	}
}

type Codec interface {
	Name() string
	// Binary reports whether frames must be sent as binary websocket
	// messages.
	Binary() bool
	EncodeSnapshot(snap pong.Snapshot) ([]byte, error)
	DecodeSnapshot(b []byte) (pong.Snapshot, error)
	EncodeInput(ev InputEvent) ([]byte, error)
	DecodeInput(b []byte) (InputEvent, error)
}

var codecs = map[string]Codec{
	"json":  JSON{},
	"proto": Proto{},
}

// Lookup returns the codec registered under name. An empty name selects
// JSON, which is what the browser page speaks.
func Lookup(name string) (Codec, error) {
	if name == "" {
		name = "json"
	}
	c, ok := codecs[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}
	return c, nil
}
