package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-kit/log/level"
	_ "github.com/joho/godotenv/autoload"

	"convertapi/internal/app"
	"convertapi/internal/config"
	"convertapi/internal/logging"
	"convertapi/internal/otel"
)

const shutdownTimeout = 10 * time.Second

// @title PDF to Word API
// @version 1.0
// @description Converts uploaded PDF documents to DOCX.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	logger := logging.WithLevel(logging.New(os.Stdout, cfg.Location()), cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, logging.Component(logger, "otel"))
	if err != nil {
		level.Error(logger).Log("msg", "failed to initialize tracing", "err", err)
		os.Exit(1)
	}

	srv, err := app.Build(cfg, logger)
	if err != nil {
		level.Error(logger).Log("msg", "failed to build app", "err", err)
		os.Exit(1)
	}

	errc := make(chan error, 1)
	go func() {
		level.Info(logger).Log("msg", "listening", "addr", ":"+cfg.Port)
		errc <- srv.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errc:
		if err != nil {
			level.Error(logger).Log("msg", "failed to start server", "err", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		level.Info(logger).Log("msg", "shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.ShutdownWithContext(shutdownCtx); err != nil {
		level.Error(logger).Log("msg", "server shutdown", "err", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		level.Error(logger).Log("msg", "tracing shutdown", "err", err)
	}
}
