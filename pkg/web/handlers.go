// Package web exposes the dispatch boundary over HTTP for collaborators that
// are not in-process.
package web

import (
	"github.com/gofiber/fiber/v3"

	"github.com/queryon/queryon/pkg/dispatch"
)

// Handlers adapts the dispatch service to fiber routes.
type Handlers struct {
	service *dispatch.Service
}

func NewHandlers(service *dispatch.Service) *Handlers {
	return &Handlers{service: service}
}

// Query handles POST /query.
func (h *Handlers) Query(c fiber.Ctx) error {
	var req dispatch.QueryRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "request body is not valid JSON")
	}

	return c.JSON(h.service.Query(c.Context(), req))
}

// Workflow handles POST /workflow.
func (h *Handlers) Workflow(c fiber.Ctx) error {
	var req dispatch.WorkflowRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "request body is not valid JSON")
	}

	return c.JSON(h.service.RunWorkflow(c.Context(), req))
}

// Explore handles POST /explore.
func (h *Handlers) Explore(c fiber.Ctx) error {
	var req dispatch.ExploreRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "request body is not valid JSON")
	}

	return c.JSON(h.service.Explore(c.Context(), req))
}

// Schema handles POST /schema.
func (h *Handlers) Schema(c fiber.Ctx) error {
	var req dispatch.SchemaRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "request body is not valid JSON")
	}

	return c.JSON(h.service.ValidateSchema(c.Context(), req))
}

// Dialects handles GET /dialects.
func (h *Handlers) Dialects(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"dialects": h.service.Dialects()})
}
