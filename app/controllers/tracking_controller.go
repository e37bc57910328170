package controllers

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jagjar/jagjar/app/models"
	"github.com/jagjar/jagjar/app/repository"
	"github.com/jagjar/jagjar/internal/pkg/usercontext"
)

type trackRequest struct {
	URL      string `json:"url"`
	Duration int64  `json:"duration"` // seconds
}

// maxTrackedDuration caps a single report at 24 hours to keep a broken
// extension from inflating a site's share.
const maxTrackedDuration = 24 * 60 * 60

// HandleTrackTime ingests a time-on-site report from the browser extension.
// The request carries the website's API key; the premium user comes from
// the extension user's session.
func HandleTrackTime(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "Login required to track time")
	}

	apiKey, ok := c.Locals(usercontext.KeyAPIKey).(models.APIKey)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "Missing API key")
	}

	var req trackRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	if req.Duration <= 0 {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", "Duration must be positive")
	}
	if req.Duration > maxTrackedDuration {
		req.Duration = maxTrackedDuration
	}

	site, err := resolveWebsite(apiKey.ID, strings.TrimSpace(req.URL))
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to resolve website")
	}
	if site == nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "No website registered for this API key")
	}

	record := &models.TimeTrackingRecord{
		UserID:    userCtx.UserID,
		WebsiteID: site.ID,
		Duration:  req.Duration,
		Date:      time.Now().UTC(),
	}
	if err := repository.GetGlobalFactory().GetTimeTrackingRepository().Create(record); err != nil {
		log.Printf("failed to store tracking record: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to store tracking record")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"website_id": site.ID,
		"duration":   record.Duration,
		"tracked_at": record.Date.Format(time.RFC3339),
	})
}

// resolveWebsite picks the key's website matching the reported URL, falling
// back to the key's first website when no URL matches.
func resolveWebsite(apiKeyID uint, url string) (*models.Website, error) {
	sites, err := repository.GetGlobalFactory().GetWebsiteRepository().ListByAPIKeyID(apiKeyID)
	if err != nil {
		return nil, err
	}
	if len(sites) == 0 {
		return nil, nil
	}
	if url != "" {
		for i := range sites {
			if strings.HasPrefix(url, sites[i].URL) {
				return &sites[i], nil
			}
		}
	}
	return &sites[0], nil
}
