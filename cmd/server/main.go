package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"webpong/internal/config"
	"webpong/internal/lobby"
	"webpong/internal/logging"
	"webpong/internal/netwrk"
)

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

	switch {
	case errors.Is(cfgErr, config.ErrNoConfigFile):
		log.Info("no config file, using defaults", zap.Error(cfgErr))
	case cfgErr != nil:
		log.Warn("failed to read configuration, using defaults", zap.Error(cfgErr))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	l := lobby.CreateLobby(log.Named("lobby"))
	srv := netwrk.NewServer(netwrk.Options{
		Addr:     cfg.Addr,
		TickRate: cfg.TickRate,
		Seed:     cfg.Seed,
	}, l, log)

	fmt.Printf("Starting webpong on http://%s\n", cfg.Addr)
	if err := srv.ListenAndServe(ctx); err != nil {
		log.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
	log.Info("server stopped", zap.Uint64("games_played", l.Opened()))
}
