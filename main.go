package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/nzzzzzw/COMP4537-AI-Project/config"
	"github.com/nzzzzzw/COMP4537-AI-Project/routes"
	"github.com/nzzzzzw/COMP4537-AI-Project/services"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	db, err := config.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	app := routes.SetupRouter(cfg, db, services.NewSMTPMailer(cfg))

	log.Printf("Server running on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
