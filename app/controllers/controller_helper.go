package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/leadvine/leadvine/app/models"
	"github.com/leadvine/leadvine/internal/pkg/database"
	"github.com/leadvine/leadvine/internal/pkg/usercontext"
)

// Session keys shared by the auth controllers and the user context middleware.
const (
	AUTH_KEY      string = "authenticated"
	USER_ID       string = usercontext.KeyUserID
	USER_NAME     string = usercontext.KeyUserName
	USER_EMAIL    string = usercontext.KeyUserEmail
	USER_IS_ADMIN string = usercontext.KeyIsAdmin
)

// currentUser loads the session user's full record. The bool is false when
// nobody is logged in or the row is gone.
func currentUser(c *fiber.Ctx) (*models.User, bool) {
	uc := usercontext.GetUserContext(c)
	if !uc.IsLoggedIn {
		return nil, false
	}

	var user models.User
	if err := database.GetDB().First(&user, uc.UserID).Error; err != nil {
		return nil, false
	}
	return &user, true
}

// apiError renders the uniform JSON error envelope used by /api routes.
func apiError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error":   code,
		"message": message,
	})
}

// apiInternal hides internals behind a generic 500 envelope.
func apiInternal(c *fiber.Ctx) error {
	return apiError(c, fiber.StatusInternalServerError, "internal", "something went wrong")
}

// baseViewData assembles the render context every page shares.
func baseViewData(c *fiber.Ctx, title string) fiber.Map {
	uc := usercontext.GetUserContext(c)
	return fiber.Map{
		"Title":      title,
		"IsLoggedIn": uc.IsLoggedIn,
		"IsAdmin":    uc.IsAdmin,
		"Username":   uc.Username,
	}
}
