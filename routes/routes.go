package routes

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/nzzzzzw/COMP4537-AI-Project/config"
	"github.com/nzzzzzw/COMP4537-AI-Project/controllers"
	"github.com/nzzzzzw/COMP4537-AI-Project/middleware"
	"github.com/nzzzzzw/COMP4537-AI-Project/services"
	"github.com/nzzzzzw/COMP4537-AI-Project/store"
	"golang.org/x/time/rate"
)

// SetupRouter wires stores, controllers and middleware into the Fiber app.
func SetupRouter(cfg *config.Config, db *sql.DB, mailer services.Mailer) *fiber.App {
	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL + ", http://localhost:8080, http://localhost:5001",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	users := store.NewUserStore(db)
	stats := store.NewStatsStore(db)

	authController := controllers.NewAuthController(cfg, users, mailer)
	userController := controllers.NewUserController(users)
	statsController := controllers.NewStatsController(stats)
	chatbotController := controllers.NewChatbotController(cfg, users)

	protect := middleware.Protect(users, cfg.JWTSecret)
	adminRequired := middleware.AdminRequired()

	// Credential endpoints share one per-IP limiter.
	authLimiter := middleware.NewIPRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst).Handler()

	api := app.Group("/api", middleware.TrackAPIRequests(stats))

	auth := api.Group("/auth")

	auth.Post("/register", authLimiter, authController.Register)
	auth.Post("/login", authLimiter, authController.Login)
	auth.Post("/forgot-password", authLimiter, authController.ForgotPassword)
	auth.Put("/reset-password/:token", authLimiter, authController.ResetPassword)

	// Admin routes
	auth.Get("/users", protect, adminRequired, userController.ListUsers)
	auth.Delete("/users/:id", protect, adminRequired, userController.DeleteUser)
	auth.Get("/api-stats", protect, adminRequired, statsController.GetAPIStats)

	// Authenticated chatbot routes
	chatbot := api.Group("/chatbot", protect)
	chatbot.Post("/generate-response", chatbotController.GenerateResponse)

	return app
}
