package config

import (
	"os"
	"strconv"
)

// Config holds all process-wide settings. It is built once at startup and
// treated as immutable afterwards; nothing else in the codebase reads the
// environment directly.
type Config struct {
	Port        string
	Environment string
	DatabaseDSN string

	JWTSecret string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string

	FrontendURL  string
	APICallLimit int

	// Auth endpoint rate limiting (requests per second per IP, burst size).
	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads the configuration from environment variables, applying the
// defaults the app ships with for local development.
func Load() *Config {
	cfg := &Config{
		Port:         getEnv("PORT", "5001"),
		Environment:  getEnv("APP_ENV", "development"),
		DatabaseDSN:  getEnv("DB_DSN", "mental_health.db"),
		JWTSecret:    getEnv("JWT_SECRET", ""),
		SMTPHost:     getEnv("SMTP_HOST", "smtp.mailersend.net"),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPass:     getEnv("SMTP_PASS", ""),
		MailFrom:     getEnv("MAIL_FROM", "noreply@mentalhealthapp.com"),
		FrontendURL:  getEnv("FRONTEND_URL", "http://localhost:3000"),
		APICallLimit: getEnvInt("API_CALL_LIMIT", 20),

		RateLimitRPS:   float64(getEnvInt("RATE_LIMIT_RPS", 1)),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 5),
	}
	return cfg
}

// IsProduction reports whether the app should use production cookie settings.
func (c *Config) IsProduction() bool {
	return c.Environment != "development"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
