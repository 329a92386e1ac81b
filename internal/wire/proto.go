package wire

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	"webpong/internal/pong"
)

// Proto encodes frames in the protobuf wire format. Field numbers are fixed;
// unknown fields are skipped so either side may add fields later.
type Proto struct{}

func (Proto) Name() string { return "proto" }
func (Proto) Binary() bool { return true }

// Snapshot field numbers.
const (
	snapFrame protowire.Number = iota + 1
	snapArenaW
	snapArenaH
	snapPaddleW
	snapPaddleH
	snapBallRadius
	snapPlayerX
	snapOpponentX
	snapPlayerY
	snapOpponentY
	snapBallX
	snapBallY
	snapBallVisible
	snapBallAlpha
	snapStatus
	snapHint
	snapPhase
	snapWinner
	snapPlayerScore
	snapOpponentScore
)

// InputEvent field numbers.
const (
	inputKind protowire.Number = iota + 1
	inputY
	inputBoxTop
	inputBoxHeight
)

func (Proto) EncodeSnapshot(snap pong.Snapshot) ([]byte, error) {
	b := make([]byte, 0, 192)
	b = appendVarint(b, snapFrame, snap.Frame)
	b = appendDouble(b, snapArenaW, snap.ArenaW)
	b = appendDouble(b, snapArenaH, snap.ArenaH)
	b = appendDouble(b, snapPaddleW, snap.PaddleW)
	b = appendDouble(b, snapPaddleH, snap.PaddleH)
	b = appendDouble(b, snapBallRadius, snap.BallRadius)
	b = appendDouble(b, snapPlayerX, snap.PlayerX)
	b = appendDouble(b, snapOpponentX, snap.OpponentX)
	b = appendDouble(b, snapPlayerY, snap.PlayerY)
	b = appendDouble(b, snapOpponentY, snap.OpponentY)
	b = appendDouble(b, snapBallX, snap.BallX)
	b = appendDouble(b, snapBallY, snap.BallY)
	b = appendVarint(b, snapBallVisible, protowire.EncodeBool(snap.BallVisible))
	b = appendDouble(b, snapBallAlpha, snap.BallAlpha)
	b = appendString(b, snapStatus, snap.Status)
	b = appendString(b, snapHint, snap.Hint)
	b = appendString(b, snapPhase, snap.Phase)
	b = appendString(b, snapWinner, snap.Winner)
	b = appendVarint(b, snapPlayerScore, uint64(snap.PlayerScore))
	b = appendVarint(b, snapOpponentScore, uint64(snap.OpponentScore))
	return b, nil
}

func (Proto) DecodeSnapshot(b []byte) (pong.Snapshot, error) {
	var snap pong.Snapshot
	err := readFields(b, func(f field) error {
		switch f.num {
		case snapFrame:
			return f.varint(&snap.Frame)
		case snapArenaW:
			return f.double(&snap.ArenaW)
		case snapArenaH:
			return f.double(&snap.ArenaH)
		case snapPaddleW:
			return f.double(&snap.PaddleW)
		case snapPaddleH:
			return f.double(&snap.PaddleH)
		case snapBallRadius:
			return f.double(&snap.BallRadius)
		case snapPlayerX:
			return f.double(&snap.PlayerX)
		case snapOpponentX:
			return f.double(&snap.OpponentX)
		case snapPlayerY:
			return f.double(&snap.PlayerY)
		case snapOpponentY:
			return f.double(&snap.OpponentY)
		case snapBallX:
			return f.double(&snap.BallX)
		case snapBallY:
			return f.double(&snap.BallY)
		case snapBallVisible:
			var v uint64
			err := f.varint(&v)
			snap.BallVisible = protowire.DecodeBool(v)
			return err
		case snapBallAlpha:
			return f.double(&snap.BallAlpha)
		case snapStatus:
			return f.str(&snap.Status)
		case snapHint:
			return f.str(&snap.Hint)
		case snapPhase:
			return f.str(&snap.Phase)
		case snapWinner:
			return f.str(&snap.Winner)
		case snapPlayerScore:
			return f.count(&snap.PlayerScore)
		case snapOpponentScore:
			return f.count(&snap.OpponentScore)
		}
		return nil
	})
	return snap, err
}

func (Proto) EncodeInput(ev InputEvent) ([]byte, error) {
	if err := ev.validate(); err != nil {
		return nil, err
	}
	b := make([]byte, 0, 40)
	b = appendString(b, inputKind, ev.Kind)
	b = appendDouble(b, inputY, ev.Y)
	b = appendDouble(b, inputBoxTop, ev.BoxTop)
	b = appendDouble(b, inputBoxHeight, ev.BoxHeight)
	return b, nil
}

func (Proto) DecodeInput(b []byte) (InputEvent, error) {
	var ev InputEvent
	err := readFields(b, func(f field) error {
		switch f.num {
		case inputKind:
			return f.str(&ev.Kind)
		case inputY:
			return f.double(&ev.Y)
		case inputBoxTop:
			return f.double(&ev.BoxTop)
		case inputBoxHeight:
			return f.double(&ev.BoxHeight)
		}
		return nil
	})
	if err != nil {
		return ev, err
	}
	return ev, ev.validate()
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendDouble(b []byte, num protowire.Number, v float64) []byte {
	b = protowire.AppendTag(b, num, protowire.Fixed64Type)
	return protowire.AppendFixed64(b, math.Float64bits(v))
}

func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

type field struct {
	num protowire.Number
	typ protowire.Type
	u   uint64
	s   string
}

func (f field) expect(typ protowire.Type) error {
	if f.typ != typ {
		return fmt.Errorf("%w: field %d has wire type %d, want %d", ErrMalformed, f.num, f.typ, typ)
	}
	return nil
}

func (f field) varint(dst *uint64) error {
	if err := f.expect(protowire.VarintType); err != nil {
		return err
	}
	*dst = f.u
	return nil
}

func (f field) count(dst *int) error {
	if err := f.expect(protowire.VarintType); err != nil {
		return err
	}
	if f.u > math.MaxInt32 {
		return fmt.Errorf("%w: field %d out of range", ErrMalformed, f.num)
	}
	*dst = int(f.u)
	return nil
}

func (f field) double(dst *float64) error {
	if err := f.expect(protowire.Fixed64Type); err != nil {
		return err
	}
	*dst = math.Float64frombits(f.u)
	return nil
}

func (f field) str(dst *string) error {
	if err := f.expect(protowire.BytesType); err != nil {
		return err
	}
	*dst = f.s
	return nil
}

// readFields walks every field in b, handing known wire types to visit and
// skipping the rest.
func readFields(b []byte, visit func(field) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%w: %w", ErrMalformed, protowire.ParseError(n))
		}
		b = b[n:]

		f := field{num: num, typ: typ}
		switch typ {
		case protowire.VarintType:
			f.u, n = protowire.ConsumeVarint(b)
		case protowire.Fixed64Type:
			f.u, n = protowire.ConsumeFixed64(b)
		case protowire.BytesType:
			f.s, n = protowire.ConsumeString(b)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n >= 0 {
				b = b[n:]
				continue
			}
		}
		if n < 0 {
			return fmt.Errorf("%w: field %d: %w", ErrMalformed, num, protowire.ParseError(n))
		}
		b = b[n:]

		if err := visit(f); err != nil {
			return err
		}
	}
	return nil
}
