package controllers

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jagjar/jagjar/internal/pkg/reportarchive"
	"github.com/jagjar/jagjar/internal/pkg/revenue"
)

type calculateRequest struct {
	Month string `json:"month"`
}

// HandleCalculateRevenue runs the monthly distribution. The month is
// optional and defaults to the previous calendar month.
func HandleCalculateRevenue(c *fiber.Ctx) error {
	var req calculateRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
		}
	}

	svc := revenueService()
	summary, err := svc.Calculate(c.Context(), req.Month)
	if err != nil {
		switch {
		case errors.Is(err, revenue.ErrInvalidMonth):
			return jsonError(c, fiber.StatusBadRequest, "bad_request", err.Error())
		case errors.Is(err, revenue.ErrMonthLocked):
			return jsonError(c, fiber.StatusConflict, "conflict", err.Error())
		default:
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Revenue distribution failed")
		}
	}

	// Archive the report in the background; the run result does not wait
	// on S3.
	go reportarchive.ArchiveDistribution(context.Background(), svc, summary)

	return c.JSON(summary)
}

// HandleGetRevenueSettings returns the current distribution settings.
func HandleGetRevenueSettings(c *fiber.Ctx) error {
	settings, err := revenueService().GetSettings(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load settings")
	}
	return c.JSON(settings)
}

// HandleUpdateRevenueSettings applies a partial settings update.
func HandleUpdateRevenueSettings(c *fiber.Ctx) error {
	var update revenue.SettingsUpdate
	if err := c.BodyParser(&update); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	settings, err := revenueService().UpdateSettings(c.Context(), update)
	if err != nil {
		return settingsUpdateError(c, err)
	}
	return c.JSON(settings)
}

// settingsUpdateError maps a failed settings update to a response: rejected
// values are the caller's fault, anything else is a storage failure.
func settingsUpdateError(c *fiber.Ctx, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}
	return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to save settings")
}

// HandleGetDistributionLogs returns the platform's distribution history.
func HandleGetDistributionLogs(c *fiber.Ctx) error {
	logs, err := revenueService().GetDistributionLogs(c.Context(), c.QueryInt("limit", 12))
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load distribution logs")
	}
	return c.JSON(fiber.Map{"distributions": logs})
}

// HandleGetTopEarners returns the top earning developers for a month.
func HandleGetTopEarners(c *fiber.Ctx) error {
	earners, err := revenueService().GetTopEarners(c.Context(), c.Params("month"), c.QueryInt("limit", 10))
	if err != nil {
		if errors.Is(err, revenue.ErrInvalidMonth) {
			return jsonError(c, fiber.StatusBadRequest, "bad_request", err.Error())
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load top earners")
	}
	return c.JSON(fiber.Map{"month": c.Params("month"), "top_earners": earners})
}
