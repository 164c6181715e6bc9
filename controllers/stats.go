package controllers

import (
	"log"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/nzzzzzw/COMP4537-AI-Project/store"
)

// StatsController serves the admin view of per-endpoint request counters.
type StatsController struct {
	Stats *store.StatsStore
}

func NewStatsController(stats *store.StatsStore) *StatsController {
	return &StatsController{Stats: stats}
}

func (sc *StatsController) GetAPIStats(c *fiber.Ctx) error {
	stats, err := sc.Stats.List()
	if err != nil {
		log.Printf("Query error on api stats: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": "Database error"})
	}
	return c.Status(http.StatusOK).JSON(stats)
}
