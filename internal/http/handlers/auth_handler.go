package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	applog "farmgate/internal/log"
	"farmgate/internal/services"
)

type AuthHandler struct {
	Auth *services.AuthService
}

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false, // set true behind HTTPS
		})
	}
	return sid
}

// POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in services.RegisterInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, CodeValidation, "malformed request body")
	}
	u, err := h.Auth.Register(in)
	if err != nil {
		return failErr(c, "auth.register.fail", err)
	}
	applog.Audit(c, "auth.register", map[string]any{"user_id": u.ID, "username": u.Username})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": u})
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, CodeValidation, "malformed request body")
	}
	sid := ensureSID(c)
	u, err := h.Auth.Login(sid, in.Username, in.Password)
	if err != nil {
		if errors.Is(err, services.ErrBadCreds) {
			applog.Security(c, "auth.login.fail", map[string]any{"username": in.Username})
			return fail(c, fiber.StatusUnauthorized, CodeUnauthorized, "invalid username or password")
		}
		return failErr(c, "auth.login.fail", err)
	}
	applog.Audit(c, "auth.login.success", map[string]any{"user_id": u.ID})
	return c.JSON(fiber.Map{"user": u})
}

// POST /api/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := c.Cookies("sid")
	if sid != "" {
		if err := h.Auth.Logout(sid); err != nil {
			return failErr(c, "auth.logout.fail", err)
		}
	}
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	applog.Audit(c, "auth.logout", nil)
	return c.JSON(fiber.Map{"ok": true})
}

// GET /api/auth/check
func (h *AuthHandler) Check(c *fiber.Ctx) error {
	sid := c.Cookies("sid")
	if sid != "" {
		if u, err := h.Auth.CurrentUser(sid); err == nil && u != nil {
			return c.JSON(fiber.Map{"authenticated": true, "userId": u.ID})
		}
	}
	return c.JSON(fiber.Map{"authenticated": false})
}
