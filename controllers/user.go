package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/nzzzzzw/COMP4537-AI-Project/middleware"
	"github.com/nzzzzzw/COMP4537-AI-Project/store"
)

// UserController exposes the admin-only user management endpoints.
type UserController struct {
	Users *store.UserStore
}

func NewUserController(users *store.UserStore) *UserController {
	return &UserController{Users: users}
}

// ListUsers returns every registered user, newest first, password excluded.
func (uc *UserController) ListUsers(c *fiber.Ctx) error {
	users, err := uc.Users.List()
	if err != nil {
		log.Printf("Query error on list users: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": "Database error"})
	}

	out := make([]fiber.Map, 0, len(users))
	for _, user := range users {
		out = append(out, publicUser(user))
	}
	return c.Status(http.StatusOK).JSON(out)
}

// DeleteUser removes a user record. Admins cannot delete their own account.
func (uc *UserController) DeleteUser(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": "Invalid user id"})
	}

	admin := middleware.CurrentUser(c)
	if admin != nil && admin.ID == uint(id) {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": "You cannot delete your own account"})
	}

	switch err := uc.Users.Delete(uint(id)); err {
	case nil:
		return c.Status(http.StatusOK).JSON(fiber.Map{"message": "User deleted"})
	case store.ErrNotFound:
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
	default:
		log.Printf("Delete user error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": "Database error"})
	}
}
