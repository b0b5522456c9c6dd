package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"farmgate/internal/config"
	"farmgate/internal/http/handlers"
	applog "farmgate/internal/log"
	"farmgate/internal/repos"
	"farmgate/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	if err := repos.SeedAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatal(err)
	}

	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}

	engine := html.New("./web/templates", ".html")

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Log and surface a friendly message; never leak internals.
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": fiber.Map{"code": "SERVER_ERROR", "message": "something went wrong, please try again"},
			})
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))

	deps := handlers.NewDeps(db, authSvc)

	// ---------- Auth ----------
	api := app.Group("/api")
	auth := api.Group("/auth")
	auth.Post("/register", deps.AuthHandler.Register)
	auth.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": fiber.Map{"code": "RATE_LIMITED", "message": "too many attempts, try again later"},
			})
		},
	}), deps.AuthHandler.Login)
	auth.Post("/logout", deps.AuthHandler.Logout)
	auth.Get("/check", deps.AuthHandler.Check)

	// ---------- Catalog ----------
	api.Get("/products", deps.ProductHandler.List)
	api.Get("/products/search", deps.ProductHandler.Search)
	api.Get("/products/:id", deps.ProductHandler.Get)
	api.Post("/products", handlers.RequireAdmin(authSvc), deps.ProductHandler.Create)
	api.Put("/products/:id", handlers.RequireAdmin(authSvc), deps.ProductHandler.Update)
	api.Delete("/products/:id", handlers.RequireAdmin(authSvc), deps.ProductHandler.Delete)

	api.Get("/categories", deps.CategoryHandler.List)
	api.Get("/categories/:id", deps.CategoryHandler.Get)
	api.Post("/categories", handlers.RequireAdmin(authSvc), deps.CategoryHandler.Create)
	api.Put("/categories/:id", handlers.RequireAdmin(authSvc), deps.CategoryHandler.Update)
	api.Delete("/categories/:id", handlers.RequireAdmin(authSvc), deps.CategoryHandler.Delete)

	// ---------- Orders ----------
	api.Post("/orders", handlers.RequireUser(authSvc), deps.OrderHandler.Create)
	api.Get("/orders", handlers.RequireUser(authSvc), deps.OrderHandler.History)
	api.Get("/orders/:id", handlers.RequireUser(authSvc), deps.OrderHandler.Get)

	// ---------- Events ----------
	api.Get("/events", deps.EventHandler.List)
	api.Get("/events/:id", deps.EventHandler.Get)
	api.Post("/events", handlers.RequireAdmin(authSvc), deps.EventHandler.Create)
	api.Put("/events/:id", handlers.RequireAdmin(authSvc), deps.EventHandler.Update)
	api.Delete("/events/:id", handlers.RequireAdmin(authSvc), deps.EventHandler.Delete)

	// ---------- Newsletter ----------
	api.Post("/subscribe", limiter.New(limiter.Config{Max: 10, Expiration: time.Minute}), deps.SubscriptionHandler.Subscribe)
	api.Post("/unsubscribe", deps.SubscriptionHandler.Unsubscribe)

	// ---------- Admin ----------
	adminAPI := api.Group("/admin", handlers.RequireAdmin(authSvc))
	adminAPI.Get("/orders", deps.AdminHandler.ListOrders)
	adminAPI.Put("/orders/:id", deps.AdminHandler.UpdateOrderStatus)
	adminAPI.Get("/subscriptions", deps.AdminHandler.Subscriptions)

	app.Get("/admin", handlers.RequireAdmin(authSvc), deps.AdminHandler.Dashboard)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": fiber.Map{"code": "NOT_FOUND", "message": "route not found"},
		})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
