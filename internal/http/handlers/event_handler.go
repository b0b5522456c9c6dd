package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "farmgate/internal/log"
	"farmgate/internal/repos"
	"farmgate/internal/services"
	"farmgate/internal/validate"
)

type EventHandler struct {
	Events *services.EventService
}

// GET /api/events (optional ?from=&to= date range)
func (h *EventHandler) List(c *fiber.Ctx) error {
	out, err := h.Events.List(c.Query("from"), c.Query("to"))
	if err != nil {
		return failErr(c, "events.list.fail", err)
	}
	return c.JSON(out)
}

// GET /api/events/:id
func (h *EventHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, fiber.StatusNotFound, CodeNotFound, "event not found")
	}
	e, err := h.Events.Get(id)
	if err != nil {
		return failErr(c, "events.get.fail", err)
	}
	return c.JSON(e)
}

// POST /api/events (admin)
func (h *EventHandler) Create(c *fiber.Ctx) error {
	var in repos.InsertEvent
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, CodeValidation, "malformed request body")
	}
	e, err := h.Events.Create(in)
	if err != nil {
		return failErr(c, "events.create.fail", err)
	}
	applog.Audit(c, "events.create", map[string]any{"event_id": e.ID})
	return c.Status(fiber.StatusCreated).JSON(e)
}

// PUT /api/events/:id (admin)
func (h *EventHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, fiber.StatusNotFound, CodeNotFound, "event not found")
	}
	var in repos.InsertEvent
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, CodeValidation, "malformed request body")
	}
	e, err := h.Events.Update(id, in)
	if err != nil {
		return failErr(c, "events.update.fail", err)
	}
	applog.Audit(c, "events.update", map[string]any{"event_id": e.ID})
	return c.JSON(e)
}

// DELETE /api/events/:id (admin)
func (h *EventHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, fiber.StatusNotFound, CodeNotFound, "event not found")
	}
	if err := h.Events.Delete(id); err != nil {
		return failErr(c, "events.delete.fail", err)
	}
	applog.Audit(c, "events.delete", map[string]any{"event_id": id})
	return c.JSON(fiber.Map{"ok": true})
}
