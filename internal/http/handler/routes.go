package handler

import (
	"github.com/go-kit/log"
	"github.com/gofiber/fiber/v2"

	"convertapi/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, svc service.ConversionService, logger log.Logger) {
	app.Get("/health", HealthCheck(svc, logger))
	app.Get("/healthz", LivenessProbe())

	app.Post(ConvertPath, ConvertToWord(svc, logger))
}
