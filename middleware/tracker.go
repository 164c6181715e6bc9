package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/nzzzzzw/COMP4537-AI-Project/store"
)

// TrackAPIRequests counts requests per (method, endpoint) for the admin stats
// view. Only /api/ paths are tracked, and a tracking failure never blocks the
// request.
func TrackAPIRequests(stats *store.StatsStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		if strings.HasPrefix(path, "/api/") {
			if err := stats.Track(c.Method(), path); err != nil {
				log.Printf("API tracking error: %v", err)
			}
		}
		return c.Next()
	}
}
