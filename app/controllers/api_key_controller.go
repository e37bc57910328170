package controllers

import (
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/jagjar/jagjar/app/models"
	"github.com/jagjar/jagjar/app/repository"
	"github.com/jagjar/jagjar/internal/pkg/usercontext"
)

type createAPIKeyRequest struct {
	Name        string `json:"name"`
	WebsiteURL  string `json:"website_url"`
	WebsiteName string `json:"website_name"`
}

// HandleListAPIKeys returns the developer's API keys. The key secret is
// never included; only the prefix survives creation.
func HandleListAPIKeys(c *fiber.Ctx) error {
	dev, err := currentDeveloper(c)
	if err != nil {
		return respondError(c, err)
	}

	repo := repository.GetGlobalFactory().GetAPIKeyRepository()
	keys, err := repo.ListByDeveloperID(dev.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load API keys")
	}

	out := make([]fiber.Map, 0, len(keys))
	for i := range keys {
		out = append(out, apiKeyResponse(&keys[i]))
	}
	return c.JSON(fiber.Map{"api_keys": out})
}

// HandleCreateAPIKey issues a new API key and optionally registers the
// website it will track. The raw secret is returned exactly once.
func HandleCreateAPIKey(c *fiber.Ctx) error {
	dev, err := currentDeveloper(c)
	if err != nil {
		return respondError(c, err)
	}

	var req createAPIKeyRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	if strings.TrimSpace(req.Name) == "" {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", "Key name is required")
	}

	key := &models.APIKey{DeveloperID: dev.ID, Name: strings.TrimSpace(req.Name)}
	rawSecret, err := key.IssueAPIKey()
	if err != nil {
		log.Printf("failed to issue api key: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to issue API key")
	}

	keyRepo := repository.GetGlobalFactory().GetAPIKeyRepository()
	if err := keyRepo.Create(key); err != nil {
		log.Printf("failed to store api key: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to store API key")
	}

	response := apiKeyResponse(key)
	response["key"] = rawSecret

	if url := strings.TrimSpace(req.WebsiteURL); url != "" {
		site := &models.Website{
			APIKeyID: key.ID,
			URL:      normalizeWebsiteURL(url),
			Name:     strings.TrimSpace(req.WebsiteName),
		}
		if site.Name == "" {
			site.Name = site.URL
		}
		if err := repository.GetGlobalFactory().GetWebsiteRepository().Create(site); err != nil {
			log.Printf("failed to register website for key %d: %v", key.ID, err)
		} else {
			response["website"] = websiteResponse(site)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}

// HandleDeleteAPIKey revokes one of the developer's API keys.
func HandleDeleteAPIKey(c *fiber.Ctx) error {
	dev, err := currentDeveloper(c)
	if err != nil {
		return respondError(c, err)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid API key id")
	}

	repo := repository.GetGlobalFactory().GetAPIKeyRepository()
	key, err := repo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "API key not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load API key")
	}
	if key.DeveloperID != dev.ID {
		return jsonError(c, fiber.StatusNotFound, "not_found", "API key not found")
	}

	if err := repo.Delete(key.ID); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to delete API key")
	}
	return c.JSON(fiber.Map{"message": "API key deleted"})
}

// HandleListWebsites returns the websites registered under the developer's keys.
func HandleListWebsites(c *fiber.Ctx) error {
	dev, err := currentDeveloper(c)
	if err != nil {
		return respondError(c, err)
	}

	sites, err := repository.GetGlobalFactory().GetWebsiteRepository().ListByDeveloperID(dev.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load websites")
	}

	out := make([]fiber.Map, 0, len(sites))
	for i := range sites {
		out = append(out, websiteResponse(&sites[i]))
	}
	return c.JSON(fiber.Map{"websites": out})
}

// currentDeveloper resolves the developer profile for the session user,
// creating it on first use. The returned error carries the HTTP status and
// is rendered by respondError.
func currentDeveloper(c *fiber.Ctx) (*models.Developer, error) {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Missing or invalid authentication")
	}

	dev, err := repository.GetGlobalFactory().GetDeveloperRepository().GetOrCreateByUserID(userCtx.UserID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load developer profile")
	}
	return dev, nil
}

func normalizeWebsiteURL(url string) string {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return "https://" + url
	}
	return url
}

func apiKeyResponse(key *models.APIKey) fiber.Map {
	return fiber.Map{
		"id":           key.ID,
		"name":         key.Name,
		"key_prefix":   key.KeyPrefix,
		"active":       key.Active,
		"created_at":   key.CreatedAt.UTC().Format(time.RFC3339),
		"last_used_at": formatTimePtr(key.LastUsedAt),
	}
}

func websiteResponse(site *models.Website) fiber.Map {
	return fiber.Map{
		"id":         site.ID,
		"api_key_id": site.APIKeyID,
		"url":        site.URL,
		"name":       site.Name,
	}
}
