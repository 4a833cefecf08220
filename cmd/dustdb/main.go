package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustlabs/dustdb"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := dustdb.ConfigFromEnv()
	if err != nil {
		logger.Error("loading configuration", "error", err)
		os.Exit(1)
	}

	store := dustdb.NewStore(cfg)
	server := dustdb.NewServer(cfg, store, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	l, err := net.Listen("tcp", cfg.ListenAddr())
	if err != nil {
		logger.Error("listening", "addr", cfg.ListenAddr(), "error", err)
		os.Exit(1)
	}

	fmt.Printf("dustdb successfully started, listening on: %s\n", l.Addr())

	if err := server.Serve(ctx, l); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}

	logger.Info("dustdb stopped")
}
