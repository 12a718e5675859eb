package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadvine/leadvine/internal/pkg/usercontext"
)

func newGuardApp(guards []fiber.Handler, uc *usercontext.UserContext) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if uc != nil {
			c.Locals("USER_CONTEXT", *uc)
		}
		return c.Next()
	})
	handlers := append(guards, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	app.Get("/guarded", handlers...)
	return app
}

func TestRequireAuthRedirectsAnonymous(t *testing.T) {
	app := newGuardApp([]fiber.Handler{RequireAuth}, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestRequireAPISessionAuth(t *testing.T) {
	app := newGuardApp([]fiber.Handler{RequireAPISessionAuth}, nil)
	resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	app = newGuardApp([]fiber.Handler{RequireAPISessionAuth}, &usercontext.UserContext{
		UserID: 7, IsLoggedIn: true,
	})
	resp, err = app.Test(httptest.NewRequest("GET", "/guarded", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireAPIAdmin(t *testing.T) {
	// Anonymous gets 401, not 403.
	app := newGuardApp([]fiber.Handler{RequireAPISessionAuth, RequireAPIAdmin}, nil)
	resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// Logged-in non-admin gets 403.
	app = newGuardApp([]fiber.Handler{RequireAPISessionAuth, RequireAPIAdmin}, &usercontext.UserContext{
		UserID: 7, IsLoggedIn: true,
	})
	resp, err = app.Test(httptest.NewRequest("GET", "/guarded", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// Admin passes both guards.
	app = newGuardApp([]fiber.Handler{RequireAPISessionAuth, RequireAPIAdmin}, &usercontext.UserContext{
		UserID: 7, IsLoggedIn: true, IsAdmin: true,
	})
	resp, err = app.Test(httptest.NewRequest("GET", "/guarded", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
