package handlers_test

import (
	"net/http"
	"testing"
)

func TestRegisterLoginCheckLogout(t *testing.T) {
	app, _ := newTestApp(t)

	registerUser(t, app, "alice", "alice@x.com", "pw123456")

	// duplicate username is a conflict, not a bare 400
	resp := doJSON(t, app, "POST", "/api/auth/register", map[string]string{
		"username": "alice", "email": "other@x.com",
		"password": "pw123456", "confirmPassword": "pw123456",
	}, "")
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate register: want 409, got %d", resp.StatusCode)
	}

	// wrong password
	resp = doJSON(t, app, "POST", "/api/auth/login", map[string]string{
		"username": "alice", "password": "wrongpass",
	}, "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad creds: want 401, got %d", resp.StatusCode)
	}

	sid := login(t, app, "alice", "pw123456")

	// check is idempotent: same answer on repeat calls
	var first, second struct {
		Authenticated bool  `json:"authenticated"`
		UserID        int64 `json:"userId"`
	}
	decodeJSON(t, doJSON(t, app, "GET", "/api/auth/check", nil, sid), &first)
	decodeJSON(t, doJSON(t, app, "GET", "/api/auth/check", nil, sid), &second)
	if !first.Authenticated || first != second {
		t.Fatalf("check not idempotent: %+v vs %+v", first, second)
	}

	resp = doJSON(t, app, "POST", "/api/auth/logout", nil, sid)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("logout: want 200, got %d", resp.StatusCode)
	}

	var after struct {
		Authenticated bool `json:"authenticated"`
	}
	decodeJSON(t, doJSON(t, app, "GET", "/api/auth/check", nil, sid), &after)
	if after.Authenticated {
		t.Fatal("session should be gone after logout")
	}
}

func TestRegisterValidationFields(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, "POST", "/api/auth/register", map[string]string{
		"username": "al", "email": "bad", "password": "short", "confirmPassword": "short",
	}, "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", resp.StatusCode)
	}
	var body struct {
		Error struct {
			Code   string `json:"code"`
			Fields []struct {
				Field string `json:"field"`
			} `json:"fields"`
		} `json:"error"`
	}
	decodeJSON(t, resp, &body)
	if body.Error.Code != "VALIDATION_ERROR" {
		t.Fatalf("want VALIDATION_ERROR, got %s", body.Error.Code)
	}
	if len(body.Error.Fields) == 0 {
		t.Fatal("expected field-level detail")
	}
}

func TestRegisterNeverEchoesPassword(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, "POST", "/api/auth/register", map[string]string{
		"username": "bob", "email": "bob@x.com",
		"password": "pw123456", "confirmPassword": "pw123456",
	}, "")
	var body struct {
		User map[string]any `json:"user"`
	}
	decodeJSON(t, resp, &body)
	for _, k := range []string{"password", "passwordHash", "hash"} {
		if _, ok := body.User[k]; ok {
			t.Fatalf("response leaks %q", k)
		}
	}
	if body.User["role"] != "customer" {
		t.Fatalf("register must always create a customer, got %v", body.User["role"])
	}
}
