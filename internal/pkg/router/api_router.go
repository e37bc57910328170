package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/jagjar/jagjar/app/controllers"
	"github.com/jagjar/jagjar/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	v1 := api.Group("/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.Post("/register", controllers.HandleRegister)
	auth.Post("/login", controllers.HandleLogin)
	auth.Post("/logout", controllers.HandleLogout)
	auth.Get("/me", controllers.HandleMe)

	// Developer routes behind a logged-in session
	developer := v1.Group("/developer", middleware.RequireAuth)
	developer.Get("/api-keys", controllers.HandleListAPIKeys)
	developer.Post("/api-keys", controllers.HandleCreateAPIKey)
	developer.Delete("/api-keys/:id", controllers.HandleDeleteAPIKey)
	developer.Get("/websites", controllers.HandleListWebsites)
	developer.Get("/analytics/overview", controllers.HandleAnalyticsOverview)
	developer.Get("/analytics/time-distribution", controllers.HandleTimeDistribution)
	developer.Get("/earnings", controllers.HandleGetEarnings)
	developer.Get("/earnings/:month", controllers.HandleGetEarningsDetails)
	developer.Get("/payouts", controllers.HandleGetPayouts)

	// Tracking ingestion authenticated by website API key plus user session
	v1.Post("/track", middleware.APIKeyAuthMiddleware(), controllers.HandleTrackTime)

	// Admin routes share a single role check
	admin := v1.Group("/admin", middleware.RequireAdmin)
	admin.Get("/stats", controllers.HandleAdminStats)
	admin.Post("/revenue/calculate", controllers.HandleCalculateRevenue)
	admin.Get("/revenue/settings", controllers.HandleGetRevenueSettings)
	admin.Put("/revenue/settings", controllers.HandleUpdateRevenueSettings)
	admin.Get("/revenue/distributions", controllers.HandleGetDistributionLogs)
	admin.Get("/revenue/top-developers/:month", controllers.HandleGetTopEarners)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
