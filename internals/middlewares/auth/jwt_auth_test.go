package auth

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

const testSecret = "unit-test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func newApp() *fiber.App {
	app := fiber.New()
	app.Get("/p",
		AuthJWT(AuthJWTOpts{Secret: testSecret}),
		func(c *fiber.Ctx) error {
			id, _ := c.Locals(LocUserID).(string)
			role, _ := c.Locals(LocUserRole).(string)
			return c.SendString(id + "|" + role)
		},
	)
	app.Get("/admin",
		AuthJWT(AuthJWTOpts{Secret: testSecret}),
		RequireRoles("owner", "admin"),
		func(c *fiber.Ctx) error { return c.SendString("ok") },
	)
	return app
}

func TestAuthJWT(t *testing.T) {
	app := newApp()
	token := signToken(t, testSecret, jwt.MapClaims{
		"id":   "user-123",
		"role": "staff",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest("GET", "/p", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "user-123|staff" {
		t.Fatalf("locals = %s", body)
	}
}

func TestAuthJWTRejects(t *testing.T) {
	app := newApp()

	// tanpa header
	resp, _ := app.Test(httptest.NewRequest("GET", "/p", nil))
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("tanpa token: status = %d", resp.StatusCode)
	}

	// secret salah
	bad := signToken(t, "secret-lain", jwt.MapClaims{
		"id":  "user-123",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	req := httptest.NewRequest("GET", "/p", nil)
	req.Header.Set("Authorization", "Bearer "+bad)
	resp, _ = app.Test(req)
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("secret salah: status = %d", resp.StatusCode)
	}

	// token kedaluwarsa
	expired := signToken(t, testSecret, jwt.MapClaims{
		"id":  "user-123",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	req = httptest.NewRequest("GET", "/p", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	resp, _ = app.Test(req)
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expired: status = %d", resp.StatusCode)
	}
}

func TestRequireRoles(t *testing.T) {
	app := newApp()

	admin := signToken(t, testSecret, jwt.MapClaims{
		"id":   "u1",
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+admin)
	resp, _ := app.Test(req)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("admin harus lolos, status = %d", resp.StatusCode)
	}

	staff := signToken(t, testSecret, jwt.MapClaims{
		"id":   "u2",
		"role": "staff",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	req = httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+staff)
	resp, _ = app.Test(req)
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("staff harus ditolak, status = %d", resp.StatusCode)
	}
}
