package wire

import (
	"encoding/json"
	"fmt"

	"webpong/internal/pong"
)

// JSON sends frames as websocket text messages.
type JSON struct{}

func (JSON) Name() string { return "json" }
func (JSON) Binary() bool { return false }

func (JSON) EncodeSnapshot(snap pong.Snapshot) ([]byte, error) {
	return json.Marshal(snap)
}

func (JSON) DecodeSnapshot(b []byte) (pong.Snapshot, error) {
	var snap pong.Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return snap, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return snap, nil
}

func (JSON) EncodeInput(ev InputEvent) ([]byte, error) {
	if err := ev.validate(); err != nil {
		return nil, err
	}
	return json.Marshal(ev)
}

func (JSON) DecodeInput(b []byte) (InputEvent, error) {
	var ev InputEvent
	if err := json.Unmarshal(b, &ev); err != nil {
		return ev, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return ev, ev.validate()
}
