package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"webpong/internal/config"
	"webpong/internal/logging"
	"webpong/internal/pong"
	"webpong/internal/renderer"
	"webpong/internal/wire"
)

var errQuit = errors.New("quit")

func main() {
	path := ""
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	cfg, cfgErr := config.LoadConfig(path)

	log, err := logging.New(cfg.LogLevel, cfg.Dev)
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid logging config:", err)
		os.Exit(1)
	}
	defer log.Sync()
	if cfgErr != nil && !errors.Is(cfgErr, config.ErrNoConfigFile) {
		log.Warn("failed to read configuration, using defaults", zap.Error(cfgErr))
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "webpong client needs an interactive terminal")
		os.Exit(1)
	}

	codec, err := wire.Lookup(cfg.Codec)
	if err != nil {
		log.Fatal("bad codec", zap.Error(err))
	}

	conn, err := ConnectToGame(cfg.Server, codec)
	if err != nil {
		log.Fatal("failed to connect to game server", zap.String("server", cfg.Server), zap.Error(err))
	}
	defer conn.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal("failed to open terminal", zap.Error(err))
	}
	if err := screen.Init(); err != nil {
		log.Fatal("failed to open terminal", zap.Error(err))
	}
	screen.EnableMouse()
	screen.HideCursor()

	err = Game(context.Background(), conn, codec, screen)
	screen.Fini()

	if err != nil && !errors.Is(err, errQuit) {
		log.Error("game ended", zap.Error(err))
		os.Exit(1)
	}
	fmt.Println("Thanks for playing!")
}

func ConnectToGame(server string, codec wire.Codec) (*websocket.Conn, error) {
	u, err := url.Parse(server)
	if err != nil {
		return nil, fmt.Errorf("server url %q: %w", server, err)
	}
	q := u.Query()
	q.Set("codec", codec.Name())
	u.RawQuery = q.Encode()

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// Game renders snapshots from conn and sends terminal input back until the
// user quits or the connection drops. The main loop is the only writer on
// conn and the only user of the renderer.
func Game(ctx context.Context, conn *websocket.Conn, codec wire.Codec, screen tcell.Screen) error {
	r := renderer.New(screen)
	snaps := make(chan pong.Snapshot, 8)
	events := make(chan tcell.Event, 32)

	g, ctx := errgroup.WithContext(ctx)

	// Network reader
	g.Go(func() error {
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return fmt.Errorf("read from game connection: %w", err)
			}
			snap, err := codec.DecodeSnapshot(msg)
			if err != nil {
				continue
			}
			select {
			case snaps <- snap:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})

	// Input handler
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	g.Go(func() error {
		defer conn.Close()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case snap := <-snaps:
				if err := r.Present(snap); err != nil {
					return err
				}
			case ev := <-events:
				quit, inputs := r.HandleEvent(ev)
				if quit {
					_ = conn.WriteMessage(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
					return errQuit
				}
				for _, in := range inputs {
					if err := send(conn, codec, in); err != nil {
						return err
					}
				}
			}
		}
	})

	return g.Wait()
}

func send(conn *websocket.Conn, codec wire.Codec, in wire.InputEvent) error {
	b, err := codec.EncodeInput(in)
	if err != nil {
		return err
	}
	typ := websocket.TextMessage
	if codec.Binary() {
		typ = websocket.BinaryMessage
	}
	if err := conn.WriteMessage(typ, b); err != nil {
		return fmt.Errorf("write to game connection: %w", err)
	}
	return nil
}
