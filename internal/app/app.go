// Package app assembles the Fiber application shared by the HTTP server and
// the FastCGI gateway.
package app

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"convertapi/docs"
	"convertapi/internal/config"
	"convertapi/internal/converter"
	handlers "convertapi/internal/http/handler"
	"convertapi/internal/http/middleware"
	"convertapi/internal/logging"
	"convertapi/internal/metrics"
	"convertapi/internal/service"
	"convertapi/internal/storage"
)

// Options carries the dependencies of New.
type Options struct {
	Config   *config.AppConfig
	Service  service.ConversionService
	Logger   log.Logger
	Registry *prometheus.Registry
}

// NewRegistry returns a registry with the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// Build wires the workspace, converter, metrics and service described by cfg
// and returns the ready to serve app.
func Build(cfg *config.AppConfig, logger log.Logger) (*fiber.App, error) {
	store, err := storage.NewLocal(cfg.Storage.TempDir)
	if err != nil {
		return nil, fmt.Errorf("init workspace: %w", err)
	}

	conv, err := converter.New(cfg.Converter)
	if err != nil {
		return nil, fmt.Errorf("init converter: %w", err)
	}

	reg := NewRegistry()
	rec, err := metrics.NewConversion(reg)
	if err != nil {
		return nil, fmt.Errorf("init metrics: %w", err)
	}

	svc := service.NewConversionService(store, conv, rec, logging.Component(logger, "service"))
	level.Info(logger).Log("msg", "conversion service ready", "backend", conv.Name(), "temp_dir", cfg.Storage.TempDir)

	return New(Options{
		Config:   cfg,
		Service:  svc,
		Logger:   logger,
		Registry: reg,
	})
}

// New builds the Fiber app: error handler, middleware, routes, metrics and
// Swagger UI.
func New(opts Options) (*fiber.App, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if opts.Service == nil {
		return nil, errors.New("conversion service is required")
	}
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	promMW, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return nil, fmt.Errorf("register http metrics: %w", err)
	}

	app := fiber.New(fiber.Config{
		AppName:      "convertapi",
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    cfg.BodyLimitBytes(),
	})

	// otelfiber reads the response body after the handler, which would drain
	// and close the DOCX stream before it is written. Streamed routes get
	// their server span from StreamTracing instead.
	streamed := []string{handlers.ConvertPath}
	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
		return c.Path() == middleware.MetricsPath || slices.Contains(streamed, c.Path())
	})))
	app.Use(middleware.StreamTracing(streamed...))
	// RequestID adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(middleware.LoggerWithLogger(logging.Component(logger, "http")))
	app.Use(promMW.Handler())
	app.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	handlers.RegisterRoutes(app, opts.Service, logging.Component(logger, "handler"))

	app.Get(middleware.MetricsPath, adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	if cfg.SwaggerEnabled {
		// Swagger UI with dynamic host and scheme
		app.Get("/swagger/*", func(c *fiber.Ctx) error {
			scheme := c.Protocol()
			if proto := c.Get("X-Forwarded-Proto"); proto != "" {
				scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
			}

			host := c.Get(fiber.HeaderHost)
			if host == "" {
				host = cfg.AppHost
			}
			docs.SwaggerInfo.Host = host
			docs.SwaggerInfo.Schemes = []string{scheme}

			return swagger.HandlerDefault(c)
		})
	}

	return app, nil
}

// corsConfig allows credentials for explicit origins. Fiber refuses
// credentials together with the "*" wildcard.
func corsConfig(origins []string) cors.Config {
	return cors.Config{
		AllowOrigins:     strings.Join(origins, ","),
		AllowCredentials: !slices.Contains(origins, "*"),
	}
}
