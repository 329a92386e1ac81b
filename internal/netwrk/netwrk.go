package netwrk

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"

	"webpong/internal/lobby"
	"webpong/internal/pong"
	"webpong/internal/session"
	"webpong/internal/wire"
)

//go:embed static
var static embed.FS

const (
	maxMessageSize  = 512
	shutdownTimeout = 5 * time.Second
)

type Options struct {
	Addr     string
	TickRate int
	// Seed fixes the serve randomness of every match when non-zero.
	Seed uint64
}

// Server serves the browser page, the match websocket and the game list.
type Server struct {
	opts     Options
	cfg      pong.Config
	lobby    *lobby.Lobby
	log      *zap.Logger
	upgrader websocket.Upgrader
	mux      *http.ServeMux
	seeds    atomic.Uint64
}

func NewServer(opts Options, l *lobby.Lobby, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		opts:  opts,
		cfg:   pong.DefaultConfig(),
		lobby: l,
		log:   log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		mux: http.NewServeMux(),
	}

	page, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	s.mux.Handle("GET /", http.FileServerFS(page))
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
	s.mux.HandleFunc("GET /games", s.handleGames)
	return s
}

func (s *Server) Handler() http.Handler { return s.mux }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:        s.opts.Addr,
		Handler:     s.mux,
		BaseContext: func(_ net.Listener) context.Context { return ctx },
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info("listening", zap.String("addr", s.opts.Addr))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen on %s: %w", s.opts.Addr, err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.log.Info("shutting down", zap.Int("live_games", s.lobby.Len()))
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.lobby.Games()); err != nil {
		s.log.Warn("failed to write game list", zap.Error(err))
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	codec, err := wire.Lookup(r.URL.Query().Get("codec"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageSize)

	sink := newConnSink(conn, codec)
	sess, err := s.lobby.Create(func(id string) (*session.Session, error) {
		m, err := pong.NewMatch(s.cfg, s.source(), time.Now())
		if err != nil {
			return nil, err
		}
		return session.New(id, m, sink,
			session.WithTickRate(s.opts.TickRate),
			session.WithLogger(s.log)), nil
	})
	if err != nil {
		s.log.Error("could not create game", zap.Error(err))
		return
	}
	defer s.lobby.Remove(sess.ID)

	log := s.log.With(zap.String("game_id", sess.ID), zap.String("codec", codec.Name()))
	log.Info("player connected", zap.String("remote", conn.RemoteAddr().String()))

	err = s.serve(r.Context(), conn, codec, sess, log)
	log.Info("player disconnected", zap.Error(err))
}

// serve runs the session loop and the connection reader until either stops.
// The loop is the connection's only writer.
func (s *Server) serve(ctx context.Context, conn *websocket.Conn, codec wire.Codec, sess *session.Session, log *zap.Logger) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := sess.Run(ctx)
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(writeWait))
		return err
	})
	g.Go(func() error {
		// Unblock the reader once the loop has stopped.
		go func() {
			<-ctx.Done()
			_ = conn.SetReadDeadline(time.Now())
		}()
		return s.readInputs(conn, codec, sess.Input(), log)
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		return nil
	}
	return err
}

func (s *Server) readInputs(conn *websocket.Conn, codec wire.Codec, latch *session.Latch, log *zap.Logger) error {
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		ev, err := codec.DecodeInput(msg)
		if err != nil {
			log.Warn("dropping input", zap.Error(err))
			continue
		}
		ApplyInput(s.cfg, latch, ev)
	}
}

// ApplyInput hands a decoded host event to the session's input latch,
// converting on-screen coordinates into arena units.
func ApplyInput(cfg pong.Config, latch *session.Latch, ev wire.InputEvent) {
	switch ev.Kind {
	case wire.KindPointer:
		latch.Pointer(pong.ArenaY(cfg, ev.Y, ev.BoxTop, ev.BoxHeight))
	case wire.KindRestart:
		latch.Restart()
	}
}

// source gives every match its own serve sequence derived from the
// configured seed, or nil for a time based one.
func (s *Server) source() rand.Source {
	if s.opts.Seed == 0 {
		return nil
	}
	return rand.NewSource(s.opts.Seed + s.seeds.Add(1))
}
