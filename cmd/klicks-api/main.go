package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"klicks/internal/api"
	"klicks/internal/config"
	"klicks/internal/game"
	"klicks/internal/sessions"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadAPI()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	engine, err := game.NewEngine(
		cfg.Rules(),
		cfg.TierTable(),
		cfg.BusinessCatalog(),
		cfg.VehicleCatalog(),
		logger,
		game.WithNotifier(game.LogNotifier{Log: logger}),
	)
	if err != nil {
		logger.Error("engine init failed", "err", err)
		os.Exit(1)
	}

	store := sessions.NewStore()
	server := api.New(cfg, logger, engine, store)
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("klicks api listening", "addr", cfg.Addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed", "err", err)
		os.Exit(1)
	}
}
