package netwrk

import (
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/gorilla/websocket"

	"webpong/internal/pong"
	"webpong/internal/wire"
)

const (
	writeWait = 2 * time.Second
	// Unchanged frames are still resent this often so idle clients can tell
	// the server is alive.
	keepAlive = time.Second
)

// connSink presents snapshots by writing them to a websocket. Frames whose
// content matches the previous one (ignoring the frame counter) are skipped,
// which keeps a finished match or a countdown from flooding the connection.
type connSink struct {
	conn  *websocket.Conn
	codec wire.Codec
	now   func() time.Time

	lastHash uint64
	lastSent time.Time
	sent     uint64
	skipped  uint64
}

func newConnSink(conn *websocket.Conn, codec wire.Codec) *connSink {
	return &connSink{conn: conn, codec: codec, now: time.Now}
}

func (c *connSink) Present(snap pong.Snapshot) error {
	now := c.now()
	h, err := contentHash(c.codec, snap)
	if err != nil {
		return err
	}
	if c.sent > 0 && h == c.lastHash && now.Sub(c.lastSent) < keepAlive {
		c.skipped++
		return nil
	}

	b, err := c.codec.EncodeSnapshot(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	typ := websocket.TextMessage
	if c.codec.Binary() {
		typ = websocket.BinaryMessage
	}
	if err := c.conn.SetWriteDeadline(now.Add(writeWait)); err != nil {
		return err
	}
	if err := c.conn.WriteMessage(typ, b); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	c.lastHash = h
	c.lastSent = now
	c.sent++
	return nil
}

func contentHash(codec wire.Codec, snap pong.Snapshot) (uint64, error) {
	snap.Frame = 0
	b, err := codec.EncodeSnapshot(snap)
	if err != nil {
		return 0, fmt.Errorf("encode snapshot: %w", err)
	}
	return xxhash.Sum64(b), nil
}
