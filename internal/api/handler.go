package api

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/terraincognita07/babyfeed/internal/i18n"
	"github.com/terraincognita07/babyfeed/internal/services"
)

type Handler struct {
	services *services.Container
	i18n     *i18n.Manager
	location *time.Location
	now      func() time.Time
	logger   *slog.Logger
}

func NewHandler(container *services.Container, i18nManager *i18n.Manager, location *time.Location) *Handler {
	if location == nil {
		location = time.Local
	}
	return &Handler{
		services: container,
		i18n:     i18nManager,
		location: location,
		now:      time.Now,
		logger:   slog.Default().With(slog.String("component", "api")),
	}
}

// NewApp builds the Fiber app with the standard middleware stack and every
// route registered.
func NewApp(handler *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "babyfeed",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(handler.LanguageMiddleware)

	RegisterRoutes(app, handler)
	return app
}
