package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jagjar/jagjar/internal/pkg/statistics"
)

// HandleAdminStats returns the cached platform counters for the admin
// dashboard. Passing refresh=true recounts instead of serving the cache.
func HandleAdminStats(c *fiber.Ctx) error {
	if c.QueryBool("refresh") {
		statistics.ResetCacheUpdateTimer()
	}
	return c.JSON(statistics.GetStatisticsData())
}
