package controllers

import (
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nzzzzzw/COMP4537-AI-Project/config"
	"github.com/nzzzzzw/COMP4537-AI-Project/models"
	"github.com/nzzzzzw/COMP4537-AI-Project/services"
	"github.com/nzzzzzw/COMP4537-AI-Project/store"
	"github.com/nzzzzzw/COMP4537-AI-Project/utils"
)

var validate = validator.New()

// Reset tokens are short-lived on purpose: 10 minutes from issuance.
const resetTokenTTL = 10 * time.Minute

// Length in bytes of the raw reset token (hex-encoded before sending).
const resetTokenBytes = 32

// AuthController handles registration, login and the password-reset flow.
type AuthController struct {
	Cfg    *config.Config
	Users  *store.UserStore
	Mailer services.Mailer
}

func NewAuthController(cfg *config.Config, users *store.UserStore, mailer services.Mailer) *AuthController {
	return &AuthController{Cfg: cfg, Users: users, Mailer: mailer}
}

// setSessionCookie issues the 30-day jwt cookie the frontend relies on.
func (ac *AuthController) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     "jwt",
		Value:    token,
		MaxAge:   int(utils.SessionTokenTTL.Seconds()),
		HTTPOnly: true,
		Secure:   ac.Cfg.IsProduction(),
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

type RegisterInput struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (ac *AuthController) Register(c *fiber.Ctx) error {
	var input RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	user, err := ac.Users.Create(input.Username, input.Email, input.Password)
	if err == store.ErrDuplicate {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": "User already exists"})
	}
	if err != nil {
		log.Printf("Insert user error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to create user"})
	}

	token, err := utils.GenerateSessionToken(user.ID, ac.Cfg.JWTSecret)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to generate token"})
	}
	ac.setSessionCookie(c, token)

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"isAdmin":  user.IsAdmin,
	})
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	user, err := ac.Users.FindByEmail(input.Email)
	if err == store.ErrNotFound {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid email or password"})
	}
	if err != nil {
		log.Printf("Query error on login: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": "Database error"})
	}

	if !utils.CheckPasswordHash(input.Password, user.PasswordHash) {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid email or password"})
	}

	token, err := utils.GenerateSessionToken(user.ID, ac.Cfg.JWTSecret)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to generate token"})
	}
	ac.setSessionCookie(c, token)

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"isAdmin":  user.IsAdmin,
		"apiCalls": user.APICalls,
		"token":    token,
	})
}

type ForgotPasswordInput struct {
	Email string `json:"email" validate:"required,email"`
}

// ForgotPassword issues a one-time reset token and mails its raw value. The
// response never reveals whether the account exists. If the email cannot be
// delivered the stored token is cleared again, so an undeliverable token
// cannot sit in the database waiting to be guessed.
func (ac *AuthController) ForgotPassword(c *fiber.Ctx) error {
	var input ForgotPasswordInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	user, err := ac.Users.FindByEmail(input.Email)
	if err != nil {
		// Execute silently to prevent account enumeration
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"message": "If an account exists with this email, you will receive a password reset link",
		})
	}

	rawToken, err := utils.GenerateRandomToken(resetTokenBytes)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": "Error processing request"})
	}

	expiry := time.Now().Add(resetTokenTTL)
	if err := ac.Users.SetResetToken(user.ID, utils.HashToken(rawToken), expiry); err != nil {
		log.Printf("Set reset token error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": "Error processing request"})
	}

	resetURL := ac.Cfg.FrontendURL + "/reset-password/" + rawToken
	if err := ac.Mailer.SendResetPasswordEmail(user.Email, resetURL); err != nil {
		if clearErr := ac.Users.ClearResetToken(user.ID); clearErr != nil {
			log.Printf("Clear reset token error: %v", clearErr)
		}
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": "Error sending reset password email"})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "Password reset link has been sent to your email"})
}

type ResetPasswordInput struct {
	Password string `json:"password" validate:"required"`
}

// ResetPassword consumes a reset token from the URL. A wrong token and an
// expired one produce the same response.
func (ac *AuthController) ResetPassword(c *fiber.Ctx) error {
	var input ResetPasswordInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	tokenHash := utils.HashToken(c.Params("token"))
	user, err := ac.Users.FindByResetTokenHash(tokenHash, time.Now())
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": "Invalid or expired reset token"})
	}

	if err := ac.Users.ResetPassword(user.ID, input.Password); err != nil {
		log.Printf("Reset password error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": "Error resetting password"})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "Password updated successfully"})
}

// publicUser strips the sensitive columns from a user row for API responses.
func publicUser(user models.User) fiber.Map {
	return fiber.Map{
		"id":        user.ID,
		"username":  user.Username,
		"email":     user.Email,
		"isAdmin":   user.IsAdmin,
		"apiCalls":  user.APICalls,
		"createdAt": user.CreatedAt,
	}
}
