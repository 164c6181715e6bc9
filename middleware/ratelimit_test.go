package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/nzzzzzw/COMP4537-AI-Project/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimitBurst(t *testing.T) {
	app := fiber.New()
	limiter := middleware.NewIPRateLimiter(1, 2)
	app.Get("/", limiter.Handler(), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	do := func() int {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	// Burst of 2 passes, the third is throttled.
	assert.Equal(t, http.StatusOK, do())
	assert.Equal(t, http.StatusOK, do())
	assert.Equal(t, http.StatusTooManyRequests, do())
}
