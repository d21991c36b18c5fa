package http_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apihttp "github.com/jhoicas/ventas-api/internal/interfaces/http"
	"github.com/jhoicas/ventas-api/pkg/jwt"
)

const testSecret = "secret-de-prueba"

// newTestApp arma una app mínima con el guard: /ping protegida, /salud y
// /docs/* públicas. El handler protegido expone los locals para inspección.
func newTestApp() *fiber.App {
	app := fiber.New()
	guard := apihttp.NewAuthGuard(testSecret).
		Public("GET", "/salud").
		PublicPrefix("/docs")
	app.Use(guard.Middleware())

	app.Get("/salud", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/docs/index.html", func(c *fiber.Ctx) error {
		return c.SendString("docs")
	})
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":    apihttp.GetUserID(c),
			"user_email": apihttp.GetUserEmail(c),
		})
	})
	return app
}

func TestAuthGuard_RutaPublicaSinToken(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/salud", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthGuard_PrefijoPublicoSinToken(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/docs/index.html", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthGuard_SinHeader(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestAuthGuard_FormatoIncorrecto(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("Authorization", "Basic abc123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

func TestAuthGuard_TokenInvalido(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("Authorization", "Bearer no.es.jwt")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthGuard_TokenConOtroSecret(t *testing.T) {
	app := newTestApp()
	token, err := jwt.Generate("otro-secret", "u1", "ana@test.local", "test", 60)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthGuard_TokenValidoDejaLocals(t *testing.T) {
	app := newTestApp()
	token, err := jwt.Generate(testSecret, "u1", "ana@test.local", "test", 60)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "u1", out["user_id"])
	assert.Equal(t, "ana@test.local", out["user_email"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tokens de sesión y de reset
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateParse(t *testing.T) {
	token, err := jwt.Generate(testSecret, "u1", "ana@test.local", "test", 60)
	require.NoError(t, err)

	userID, email, err := jwt.Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
	assert.Equal(t, "ana@test.local", email)
}

func TestJWT_SecretVacio(t *testing.T) {
	_, err := jwt.Generate("", "u1", "ana@test.local", "test", 60)
	assert.Error(t, err)
}

func TestJWT_TokenExpirado(t *testing.T) {
	token, err := jwt.Generate(testSecret, "u1", "ana@test.local", "test", -1)
	require.NoError(t, err)

	_, _, err = jwt.Parse(testSecret, token)
	assert.Error(t, err)
}

func TestJWT_ResetRoundTrip(t *testing.T) {
	token, err := jwt.GenerateReset(testSecret, "ana@test.local", "test")
	require.NoError(t, err)

	email, err := jwt.ParseReset(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "ana@test.local", email)
}

func TestJWT_ResetConOtroSecret(t *testing.T) {
	token, err := jwt.GenerateReset("otro-secret", "ana@test.local", "test")
	require.NoError(t, err)

	_, err = jwt.ParseReset(testSecret, token)
	assert.Error(t, err)
}
