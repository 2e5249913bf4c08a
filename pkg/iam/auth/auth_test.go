package auth_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Abraxas-365/applymint/pkg/errx"
	"github.com/Abraxas-365/applymint/pkg/iam/auth"
	"github.com/Abraxas-365/applymint/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

func newApp(t *testing.T, m *auth.Middleware) *fiber.App {
	t.Helper()
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*errx.Error); ok {
				return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse())
			}
			return c.SendStatus(http.StatusInternalServerError)
		},
	})
	app.Use(m.Identify())
	app.Get("/whoami", func(c *fiber.Ctx) error {
		return c.SendString(auth.CurrentUser(c).String())
	})
	app.Get("/me", m.RequireUser(), func(c *fiber.Ctx) error {
		return c.SendString(auth.CurrentUser(c).String())
	})
	app.Get("/admin", m.RequireScope(auth.ScopeJobsWrite), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusNoContent)
	})
	return app
}

func do(t *testing.T, app *fiber.App, path string, headers map[string]string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test(%s): %v", path, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

// ── ScopeMatches ───────────────────────────────────────────────────────────

func TestScopeMatches(t *testing.T) {
	cases := []struct {
		granted, required string
		want              bool
	}{
		{"*", "jobs:write", true},
		{"jobs:*", "jobs:write", true},
		{"jobs:*", "companies:write", false},
		{"jobs:read", "jobs:read", true},
		{"jobs:read", "jobs:write", false},
		{"jobs:*", "jobs:", false},
	}
	for _, c := range cases {
		if got := auth.ScopeMatches(c.granted, c.required); got != c.want {
			t.Errorf("ScopeMatches(%q, %q) = %v, want %v", c.granted, c.required, got, c.want)
		}
	}
}

// ── JWT ────────────────────────────────────────────────────────────────────

func TestJWTService_RoundTrip(t *testing.T) {
	svc := auth.NewJWTService("secret", time.Hour, "applymint")
	token, err := svc.GenerateAccessToken(kernel.NewUserID("user_1"), "user")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	claims, err := svc.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken: %v", err)
	}
	if claims.UserID != "user_1" || claims.Role != "user" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestJWTService_RejectsOtherSecret(t *testing.T) {
	token, _ := auth.NewJWTService("a", time.Hour, "applymint").GenerateAccessToken("u", "user")
	if _, err := auth.NewJWTService("b", time.Hour, "applymint").ValidateAccessToken(token); err == nil {
		t.Error("token signed with another secret should be rejected")
	}
}

func TestJWTService_RejectsExpired(t *testing.T) {
	svc := auth.NewJWTService("s", -time.Minute, "applymint")
	token, _ := svc.GenerateAccessToken("u", "user")
	if _, err := svc.ValidateAccessToken(token); err == nil {
		t.Error("expired token should be rejected")
	}
}

// ── Middleware ─────────────────────────────────────────────────────────────

func TestIdentify_AnonymousPassesThrough(t *testing.T) {
	app := newApp(t, auth.NewMiddleware(auth.NewJWTService("s", time.Hour, "i"), nil))
	status, body := do(t, app, "/whoami", nil)
	if status != http.StatusOK || body != "" {
		t.Errorf("got (%d, %q), want (200, \"\")", status, body)
	}
}

func TestRequireUser(t *testing.T) {
	tokens := auth.NewJWTService("s", time.Hour, "i")
	app := newApp(t, auth.NewMiddleware(tokens, nil))

	if status, _ := do(t, app, "/me", nil); status != http.StatusUnauthorized {
		t.Errorf("anonymous /me status = %d, want 401", status)
	}

	token, _ := tokens.GenerateAccessToken("user_9", "user")
	status, body := do(t, app, "/me", map[string]string{"Authorization": "Bearer " + token})
	if status != http.StatusOK || body != "user_9" {
		t.Errorf("got (%d, %q), want (200, user_9)", status, body)
	}
}

func TestIdentify_MalformedToken(t *testing.T) {
	app := newApp(t, auth.NewMiddleware(auth.NewJWTService("s", time.Hour, "i"), nil))
	if status, _ := do(t, app, "/whoami", map[string]string{"Authorization": "Bearer nope"}); status != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", status)
	}
}

func TestRequireScope(t *testing.T) {
	tokens := auth.NewJWTService("s", time.Hour, "i")
	hash, err := auth.HashAPIKey("admin-key")
	if err != nil {
		t.Fatalf("HashAPIKey: %v", err)
	}
	app := newApp(t, auth.NewMiddleware(tokens, auth.NewAPIKeyVerifier(hash)))

	userToken, _ := tokens.GenerateAccessToken("u", "user")
	editorToken, _ := tokens.GenerateAccessToken("e", "editor")

	cases := []struct {
		name    string
		headers map[string]string
		want    int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"user", map[string]string{"Authorization": "Bearer " + userToken}, http.StatusForbidden},
		{"editor", map[string]string{"Authorization": "Bearer " + editorToken}, http.StatusNoContent},
		{"api key", map[string]string{"X-API-Key": "admin-key"}, http.StatusNoContent},
		{"bad api key", map[string]string{"X-API-Key": "wrong"}, http.StatusUnauthorized},
	}
	for _, c := range cases {
		if status, _ := do(t, app, "/admin", c.headers); status != c.want {
			t.Errorf("%s: status = %d, want %d", c.name, status, c.want)
		}
	}
}
