package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "farmgate/internal/log"
	"farmgate/internal/services"
)

type SubscriptionHandler struct {
	Subs *services.SubscriptionService
}

// POST /api/subscribe
func (h *SubscriptionHandler) Subscribe(c *fiber.Ctx) error {
	var in services.SubscribeInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, CodeValidation, "malformed request body")
	}
	sub, err := h.Subs.Subscribe(in)
	if err != nil {
		return failErr(c, "subscribe.fail", err)
	}
	applog.Info(c, "subscribe", map[string]any{"email": sub.Email})
	return c.JSON(fiber.Map{"message": "subscription successful", "email": sub.Email})
}

// POST /api/unsubscribe: soft delete, the row is kept inactive.
func (h *SubscriptionHandler) Unsubscribe(c *fiber.Ctx) error {
	var in struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&in); err != nil || in.Email == "" {
		return fail(c, fiber.StatusBadRequest, CodeValidation, "missing email")
	}
	if err := h.Subs.Unsubscribe(in.Email); err != nil {
		return failErr(c, "unsubscribe.fail", err)
	}
	applog.Info(c, "unsubscribe", map[string]any{"email": in.Email})
	return c.JSON(fiber.Map{"message": "unsubscribed"})
}
