package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"

	"farmgate/internal/domain"
)

// placeOrder seeds a product and checks out one unit as the given customer.
func placeOrder(t *testing.T, app *fiber.App, adminSID, customerSID string) int64 {
	t.Helper()
	p := createProduct(t, app, adminSID, "Goat cheese", "800", 4)
	resp := doJSON(t, app, "POST", "/api/orders", map[string]any{
		"totalAmount":     "800",
		"deliveryAddress": "123 Farm Rd",
		"contactPhone":    "0712345678",
		"items":           []map[string]any{{"productId": p.ID, "quantity": 1, "unitPrice": "800"}},
	}, customerSID)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("place order: want 201, got %d", resp.StatusCode)
	}
	var created struct {
		Order domain.Order `json:"order"`
	}
	decodeJSON(t, resp, &created)
	return created.Order.ID
}

func orderStatus(t *testing.T, app *fiber.App, sid string, id int64) domain.OrderStatus {
	t.Helper()
	var out struct {
		Order domain.Order `json:"order"`
	}
	decodeJSON(t, doJSON(t, app, "GET", "/api/orders/"+itoa(id), nil, sid), &out)
	return out.Order.Status
}

func TestAdminRoutesRejectAnonymous(t *testing.T) {
	app, _ := newTestApp(t)

	for _, path := range []string{"/api/admin/orders", "/api/admin/subscriptions"} {
		resp := doJSON(t, app, "GET", path, nil, "")
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("GET %s anonymous: want 401, got %d", path, resp.StatusCode)
		}
	}
	resp := doJSON(t, app, "GET", "/admin", nil, "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("GET /admin anonymous: want 401, got %d", resp.StatusCode)
	}
}

func TestCustomerCannotTransitionOrders(t *testing.T) {
	app, _ := newTestApp(t)
	adminSID := login(t, app, "admin", adminPassword)
	registerUser(t, app, "alice", "alice@x.com", "pw123456")
	aliceSID := login(t, app, "alice", "pw123456")

	id := placeOrder(t, app, adminSID, aliceSID)

	resp := doJSON(t, app, "PUT", "/api/admin/orders/"+itoa(id), map[string]any{
		"status": domain.StatusConfirmed,
	}, aliceSID)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("customer transition: want 403, got %d", resp.StatusCode)
	}
	if got := orderStatus(t, app, aliceSID, id); got != domain.StatusPending {
		t.Fatalf("status changed despite 403: %s", got)
	}
}

func TestAdminTransitionValidation(t *testing.T) {
	app, _ := newTestApp(t)
	adminSID := login(t, app, "admin", adminPassword)
	registerUser(t, app, "alice", "alice@x.com", "pw123456")
	aliceSID := login(t, app, "alice", "pw123456")

	id := placeOrder(t, app, adminSID, aliceSID)
	path := "/api/admin/orders/" + itoa(id)

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}

	// not part of the status enum
	resp := doJSON(t, app, "PUT", path, map[string]any{"status": "shipped"}, adminSID)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unknown status: want 400, got %d", resp.StatusCode)
	}
	decodeJSON(t, resp, &body)
	if body.Error.Code != "VALIDATION_ERROR" {
		t.Fatalf("unknown status: want VALIDATION_ERROR, got %s", body.Error.Code)
	}

	// valid status but illegal edge from pending
	resp = doJSON(t, app, "PUT", path, map[string]any{"status": domain.StatusDelivered}, adminSID)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("pending->delivered: want 400, got %d", resp.StatusCode)
	}
	decodeJSON(t, resp, &body)
	if body.Error.Code != "INVALID_TRANSITION" {
		t.Fatalf("pending->delivered: want INVALID_TRANSITION, got %s", body.Error.Code)
	}
	if got := orderStatus(t, app, aliceSID, id); got != domain.StatusPending {
		t.Fatalf("status changed despite rejection: %s", got)
	}

	// cancellation is terminal
	if resp := doJSON(t, app, "PUT", path, map[string]any{"status": domain.StatusCancelled}, adminSID); resp.StatusCode != http.StatusOK {
		t.Fatalf("pending->cancelled: want 200, got %d", resp.StatusCode)
	}
	resp = doJSON(t, app, "PUT", path, map[string]any{"status": domain.StatusConfirmed}, adminSID)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("cancelled->confirmed: want 400, got %d", resp.StatusCode)
	}
}

func TestAdminOrderListFiltersByStatus(t *testing.T) {
	app, _ := newTestApp(t)
	adminSID := login(t, app, "admin", adminPassword)
	registerUser(t, app, "alice", "alice@x.com", "pw123456")
	aliceSID := login(t, app, "alice", "pw123456")

	first := placeOrder(t, app, adminSID, aliceSID)
	placeOrder(t, app, adminSID, aliceSID)
	if resp := doJSON(t, app, "PUT", "/api/admin/orders/"+itoa(first), map[string]any{"status": domain.StatusConfirmed}, adminSID); resp.StatusCode != http.StatusOK {
		t.Fatalf("confirm: got %d", resp.StatusCode)
	}

	var orders []domain.Order
	decodeJSON(t, doJSON(t, app, "GET", "/api/admin/orders?status=confirmed", nil, adminSID), &orders)
	if len(orders) != 1 || orders[0].ID != first {
		t.Fatalf("confirmed filter: got %+v", orders)
	}
	decodeJSON(t, doJSON(t, app, "GET", "/api/admin/orders", nil, adminSID), &orders)
	if len(orders) != 2 {
		t.Fatalf("unfiltered: want 2 orders, got %d", len(orders))
	}

	resp := doJSON(t, app, "GET", "/api/admin/orders?status=bogus", nil, adminSID)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bogus filter: want 400, got %d", resp.StatusCode)
	}
}
