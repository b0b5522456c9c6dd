package handlers

import (
	"github.com/gofiber/fiber/v2"

	"farmgate/internal/domain"
	applog "farmgate/internal/log"
	"farmgate/internal/services"
)

// RequireUser resolves the session user and stores it request-scoped in
// Locals. No identity is ever cached across requests.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return fail(c, fiber.StatusUnauthorized, CodeUnauthorized, "authentication required")
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil {
			return fail(c, fiber.StatusUnauthorized, CodeUnauthorized, "authentication required")
		}
		c.Locals("user", u)
		return c.Next()
	}
}

// RequireAdmin re-reads the persisted role on every request; the session is
// only trusted for identity, never for privilege.
func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return fail(c, fiber.StatusUnauthorized, CodeUnauthorized, "authentication required")
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil {
			return fail(c, fiber.StatusUnauthorized, CodeUnauthorized, "authentication required")
		}
		persisted, err := auth.Users.ByID(u.ID)
		if err != nil || persisted.Role != domain.RoleAdmin {
			applog.Security(c, "access.denied.admin", map[string]any{"user_id": u.ID})
			return fail(c, fiber.StatusForbidden, CodeForbidden, "admin access required")
		}
		c.Locals("user", persisted)
		return c.Next()
	}
}

func currentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}
