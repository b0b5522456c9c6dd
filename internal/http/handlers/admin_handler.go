package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"farmgate/internal/domain"
	applog "farmgate/internal/log"
	"farmgate/internal/services"
	"farmgate/internal/validate"
)

type AdminHandler struct {
	DB     *sqlx.DB
	Orders *services.OrderService
	Subs   *services.SubscriptionService
}

// GET /api/admin/orders (optional ?status= filter)
func (h *AdminHandler) ListOrders(c *fiber.Ctx) error {
	if status := c.Query("status"); status != "" {
		out, err := h.Orders.ListByStatus(domain.OrderStatus(status))
		if err != nil {
			return failErr(c, "admin.orders.list.fail", err)
		}
		return c.JSON(out)
	}
	out, err := h.Orders.ListAll()
	if err != nil {
		return failErr(c, "admin.orders.list.fail", err)
	}
	return c.JSON(out)
}

// PUT /api/admin/orders/:id {status}
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, fiber.StatusNotFound, CodeNotFound, "order not found")
	}
	var in struct {
		Status domain.OrderStatus `json:"status"`
	}
	if err := c.BodyParser(&in); err != nil || in.Status == "" {
		return fail(c, fiber.StatusBadRequest, CodeValidation, "missing status")
	}
	o, err := h.Orders.UpdateStatus(id, in.Status)
	if err != nil {
		return failErr(c, "admin.orders.update.fail", err)
	}
	applog.Audit(c, "admin.orders.update", map[string]any{"order_id": id, "status": in.Status})
	return c.JSON(fiber.Map{"order": o})
}

// GET /api/admin/subscriptions
func (h *AdminHandler) Subscriptions(c *fiber.Ctx) error {
	out, err := h.Subs.ListActive()
	if err != nil {
		return failErr(c, "admin.subscriptions.list.fail", err)
	}
	return c.JSON(out)
}

// GET /admin: server-rendered dashboard with aggregate counts.
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	var stats struct {
		Orders      int `db:"orders"`
		Pending     int `db:"pending"`
		Products    int `db:"products"`
		Categories  int `db:"categories"`
		Subscribers int `db:"subscribers"`
	}
	err := h.DB.Get(&stats, `
		SELECT
		  (SELECT COUNT(*) FROM orders) AS orders,
		  (SELECT COUNT(*) FROM orders WHERE status='pending') AS pending,
		  (SELECT COUNT(*) FROM products) AS products,
		  (SELECT COUNT(*) FROM product_categories) AS categories,
		  (SELECT COUNT(*) FROM subscriptions WHERE active=1) AS subscribers
	`)
	if err != nil {
		applog.Error(c, "admin.dashboard.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load dashboard"})
	}
	latest, err := h.Orders.ListAll()
	if err != nil {
		applog.Error(c, "admin.dashboard.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load dashboard"})
	}
	if len(latest) > 10 {
		latest = latest[:10]
	}
	return c.Render("admin_dashboard", fiber.Map{"Stats": stats, "Orders": latest})
}
