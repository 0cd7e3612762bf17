// Command fcgi serves the conversion app over FastCGI for hosts that front
// applications with a web server instead of a listening process.
package main

import (
	"context"
	"net"
	"net/http/fcgi"
	"os"

	"github.com/go-kit/log/level"
	_ "github.com/joho/godotenv/autoload"

	"convertapi/internal/app"
	"convertapi/internal/config"
	"convertapi/internal/logging"
	"convertapi/internal/otel"
)

func main() {
	cfg := config.Load()
	// stdout belongs to the web server when spawned by it.
	logger := logging.WithLevel(logging.New(os.Stderr, cfg.Location()), cfg.LogLevel)

	shutdownTracing, err := otel.Init(context.Background(), logging.Component(logger, "otel"))
	if err != nil {
		level.Error(logger).Log("msg", "failed to initialize tracing", "err", err)
		os.Exit(1)
	}
	defer shutdownTracing(context.Background())

	srv, err := app.Build(cfg, logger)
	if err != nil {
		level.Error(logger).Log("msg", "failed to build app", "err", err)
		os.Exit(1)
	}

	// A nil listener makes fcgi accept on stdin, as spawned FastCGI apps do.
	var ln net.Listener
	if cfg.FCGIAddr != "" {
		ln, err = net.Listen("tcp", cfg.FCGIAddr)
		if err != nil {
			level.Error(logger).Log("msg", "failed to listen", "addr", cfg.FCGIAddr, "err", err)
			os.Exit(1)
		}
		level.Info(logger).Log("msg", "fastcgi listening", "addr", cfg.FCGIAddr)
	}

	if err := fcgi.Serve(ln, app.Gateway(srv)); err != nil {
		level.Error(logger).Log("msg", "fastcgi serve", "err", err)
		os.Exit(1)
	}
}
