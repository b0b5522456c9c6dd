package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/jmoiron/sqlx"

	"farmgate/internal/http/handlers"
	"farmgate/internal/repos"
	"farmgate/internal/services"
)

const adminPassword = "Adm1nPass!"

// newTestApp builds the full route surface against an in-memory database.
func newTestApp(t *testing.T) (*fiber.App, *sqlx.DB) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := repos.SeedAdmin(db, "admin@farmgate.test", adminPassword); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}
	deps := handlers.NewDeps(db, authSvc)

	engine := html.New("../../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(requestid.New())

	api := app.Group("/api")
	auth := api.Group("/auth")
	auth.Post("/register", deps.AuthHandler.Register)
	auth.Post("/login", deps.AuthHandler.Login)
	auth.Post("/logout", deps.AuthHandler.Logout)
	auth.Get("/check", deps.AuthHandler.Check)

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

	api.Post("/orders", handlers.RequireUser(authSvc), deps.OrderHandler.Create)
	api.Get("/orders", handlers.RequireUser(authSvc), deps.OrderHandler.History)
	api.Get("/orders/:id", handlers.RequireUser(authSvc), deps.OrderHandler.Get)

	api.Get("/events", deps.EventHandler.List)
	api.Get("/events/:id", deps.EventHandler.Get)
	api.Post("/events", handlers.RequireAdmin(authSvc), deps.EventHandler.Create)
	api.Put("/events/:id", handlers.RequireAdmin(authSvc), deps.EventHandler.Update)
	api.Delete("/events/:id", handlers.RequireAdmin(authSvc), deps.EventHandler.Delete)

	api.Post("/subscribe", deps.SubscriptionHandler.Subscribe)
	api.Post("/unsubscribe", deps.SubscriptionHandler.Unsubscribe)

	adminAPI := api.Group("/admin", handlers.RequireAdmin(authSvc))
	adminAPI.Get("/orders", deps.AdminHandler.ListOrders)
	adminAPI.Put("/orders/:id", deps.AdminHandler.UpdateOrderStatus)
	adminAPI.Get("/subscriptions", deps.AdminHandler.Subscriptions)

	app.Get("/admin", handlers.RequireAdmin(authSvc), deps.AdminHandler.Dashboard)

	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, sid string) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func sidCookie(resp *http.Response) string {
	for _, c := range resp.Cookies() {
		if c.Name == "sid" {
			return c.Value
		}
	}
	return ""
}

func registerUser(t *testing.T, app *fiber.App, username, email, password string) {
	t.Helper()
	resp := doJSON(t, app, "POST", "/api/auth/register", map[string]string{
		"username":        username,
		"email":           email,
		"password":        password,
		"confirmPassword": password,
	}, "")
	if resp.StatusCode != http.StatusCreated {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("register %s: status %d body %s", username, resp.StatusCode, b)
	}
}

func login(t *testing.T, app *fiber.App, username, password string) string {
	t.Helper()
	resp := doJSON(t, app, "POST", "/api/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, "")
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("login %s: status %d body %s", username, resp.StatusCode, b)
	}
	sid := sidCookie(resp)
	if sid == "" {
		t.Fatal("login did not set sid cookie")
	}
	return sid
}
