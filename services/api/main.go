package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/seoul-urban-lab/transit-vitality/services/api/analytics"
	"github.com/seoul-urban-lab/transit-vitality/services/api/config"
	"github.com/seoul-urban-lab/transit-vitality/services/api/db"
	httpserver "github.com/seoul-urban-lab/transit-vitality/services/api/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config error", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("db connection error", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	svc := analytics.New(store, logger, cfg.HorizonYears)
	srv := httpserver.New(cfg, svc)
	logger.Info("REST API listening", "addr", cfg.ListenAddr())

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
