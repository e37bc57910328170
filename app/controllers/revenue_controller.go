package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jagjar/jagjar/app/repository"
	"github.com/jagjar/jagjar/internal/pkg/database"
	"github.com/jagjar/jagjar/internal/pkg/revenue"
	"github.com/jagjar/jagjar/internal/pkg/usercontext"
)

func revenueService() *revenue.Service {
	return revenue.NewServiceFromDB(database.GetDB())
}

// developerForEarnings resolves the developer profile without creating one;
// a user who never registered as a developer has no earnings to show. The
// returned error carries the HTTP status and is rendered by respondError.
func developerForEarnings(c *fiber.Ctx) (uint, error) {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return 0, fiber.NewError(fiber.StatusUnauthorized, "Missing or invalid authentication")
	}

	dev, err := repository.GetGlobalFactory().GetDeveloperRepository().GetByUserID(userCtx.UserID)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusNotFound, "Developer profile not found")
	}
	return dev.ID, nil
}

// HandleGetEarnings returns the developer's monthly earnings history.
func HandleGetEarnings(c *fiber.Ctx) error {
	developerID, err := developerForEarnings(c)
	if err != nil {
		return respondError(c, err)
	}

	entries, err := revenueService().GetDeveloperEarnings(c.Context(), developerID, c.QueryInt("limit", 12))
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load earnings")
	}
	return c.JSON(fiber.Map{"earnings": entries})
}

// HandleGetEarningsDetails returns the per-website breakdown for one month.
func HandleGetEarningsDetails(c *fiber.Ctx) error {
	developerID, err := developerForEarnings(c)
	if err != nil {
		return respondError(c, err)
	}

	details, err := revenueService().GetDeveloperEarningsDetails(c.Context(), developerID, c.Params("month"))
	if err != nil {
		if errors.Is(err, revenue.ErrInvalidMonth) {
			return jsonError(c, fiber.StatusBadRequest, "bad_request", err.Error())
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load earnings details")
	}
	return c.JSON(fiber.Map{"month": c.Params("month"), "details": details})
}

// HandleGetPayouts returns the developer's payout history.
func HandleGetPayouts(c *fiber.Ctx) error {
	developerID, err := developerForEarnings(c)
	if err != nil {
		return respondError(c, err)
	}

	payouts, err := revenueService().GetDeveloperPayouts(c.Context(), developerID, c.QueryInt("limit", 10))
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load payouts")
	}

	out := make([]fiber.Map, 0, len(payouts))
	for _, p := range payouts {
		out = append(out, fiber.Map{
			"id":             p.ID,
			"month":          p.Month,
			"amount":         p.Amount,
			"status":         p.Status,
			"payment_method": p.PaymentMethod,
			"reference":      p.Reference,
			"notes":          p.Notes,
			"created_at":     p.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(fiber.Map{"payouts": out})
}
