package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/nzzzzzw/COMP4537-AI-Project/models"
	"github.com/nzzzzzw/COMP4537-AI-Project/store"
	"github.com/nzzzzzw/COMP4537-AI-Project/utils"
)

const userLocalKey = "user"

// Protect ensures the request carries a valid session token, either in the
// jwt cookie or an Authorization bearer header (cookie wins when both are
// present). The resolved user record is attached to the request context.
func Protect(users *store.UserStore, jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies("jwt")
		if tokenString == "" {
			authHeader := c.Get("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				tokenString = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		if tokenString == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "Not authorized, no token"})
		}

		userID, err := utils.ValidateSessionToken(tokenString, jwtSecret)
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "Not authorized, token failed"})
		}

		user, err := users.FindByID(userID)
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "Not authorized, token failed"})
		}

		c.Locals(userLocalKey, user)
		return c.Next()
	}
}

// AdminRequired rejects authenticated users without the admin flag, must be
// placed after Protect.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil || !user.IsAdmin {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "Not authorized as admin"})
		}
		return c.Next()
	}
}

// CurrentUser returns the user resolved by Protect, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userLocalKey).(*models.User)
	return user
}
