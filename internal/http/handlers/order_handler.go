package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"farmgate/internal/domain"
	applog "farmgate/internal/log"
	"farmgate/internal/repos"
	"farmgate/internal/services"
	"farmgate/internal/validate"
)

type OrderHandler struct {
	Orders *services.OrderService
}

// POST /api/orders: checkout for the authenticated user.
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	u := currentUser(c)
	var in services.CheckoutInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, CodeValidation, "malformed request body")
	}
	o, items, err := h.Orders.Checkout(u.ID, in)
	if err != nil {
		var verr *services.ValidationError
		var stkerr *repos.StockError
		if errors.As(err, &verr) || errors.As(err, &stkerr) {
			applog.Security(c, "order.place.fail", map[string]any{"user_id": u.ID, "error": err.Error()})
			return failErr(c, "order.place.fail", err)
		}
		// A mid-transaction store failure has already been rolled back; the
		// caller sees one opaque failure, never a half-written order.
		applog.Error(c, "order.place.fail", err, map[string]any{"user_id": u.ID})
		return fail(c, fiber.StatusInternalServerError, CodeOrderCreationFailed, "could not create order")
	}
	applog.Audit(c, "order.place", map[string]any{
		"order_id": o.ID,
		"user_id":  u.ID,
		"total":    o.TotalAmount,
		"items":    len(items),
	})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"order": o, "items": items})
}

// GET /api/orders: history for the authenticated user.
func (h *OrderHandler) History(c *fiber.Ctx) error {
	u := currentUser(c)
	out, err := h.Orders.ListByUser(u.ID)
	if err != nil {
		return failErr(c, "orders.history.fail", err)
	}
	return c.JSON(out)
}

// GET /api/orders/:id, owner or admin only.
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, fiber.StatusNotFound, CodeNotFound, "order not found")
	}
	o, items, err := h.Orders.Get(id)
	if err != nil {
		return failErr(c, "orders.get.fail", err)
	}
	u := currentUser(c)
	owner := o.UserID != nil && *o.UserID == u.ID
	if !owner && u.Role != domain.RoleAdmin {
		applog.Security(c, "access.denied.order", map[string]any{"order_id": id, "user_id": u.ID})
		return fail(c, fiber.StatusForbidden, CodeForbidden, "not your order")
	}
	return c.JSON(fiber.Map{"order": o, "items": items})
}
