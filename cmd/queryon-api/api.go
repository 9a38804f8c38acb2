// Package main provides the Queryon API server implementation.
package main

import (
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"

	"github.com/queryon/queryon/pkg/dispatch"
	"github.com/queryon/queryon/pkg/web"
)

type API struct {
	logger  *slog.Logger
	service *dispatch.Service
}

func NewAPI(logger *slog.Logger, service *dispatch.Service) *API {
	return &API{
		logger:  logger,
		service: service,
	}
}

func (a *API) App() *fiber.App {
	handlers := web.NewHandlers(a.service)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("Queryon API")
	})

	app.Post("/query", handlers.Query)
	app.Post("/workflow", handlers.Workflow)
	app.Post("/explore", handlers.Explore)
	app.Post("/schema", handlers.Schema)
	app.Get("/dialects", handlers.Dialects)

	return app
}

func (a *API) Start(port int) error {
	app := a.App()

	err := app.Listen(":" + strconv.Itoa(port))

	return err
}
