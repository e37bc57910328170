package controllers

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jagjar/jagjar/app/models"
)

func TestDeveloperForEarningsAnonymousReturnsError(t *testing.T) {
	app := fiber.New()
	var devID uint
	var helperErr error
	app.Get("/earnings", func(c *fiber.Ctx) error {
		devID, helperErr = developerForEarnings(c)
		if helperErr != nil {
			return respondError(c, helperErr)
		}
		return c.JSON(fiber.Map{"earnings": []string{}})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/earnings", nil))
	require.NoError(t, err)

	require.Error(t, helperErr)
	assert.Equal(t, uint(0), devID)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"unauthorized","message":"Missing or invalid authentication"}`, string(body))
}

func TestCurrentDeveloperAnonymousReturnsError(t *testing.T) {
	app := fiber.New()
	var dev *models.Developer
	var helperErr error
	app.Get("/api-keys", func(c *fiber.Ctx) error {
		dev, helperErr = currentDeveloper(c)
		if helperErr != nil {
			return respondError(c, helperErr)
		}
		return c.JSON(fiber.Map{"id": dev.ID})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/api-keys", nil))
	require.NoError(t, err)

	require.Error(t, helperErr)
	assert.Nil(t, dev)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestHandleGetEarningsAnonymousWritesOnlyErrorBody(t *testing.T) {
	app := fiber.New()
	app.Get("/earnings", HandleGetEarnings)

	resp, err := app.Test(httptest.NewRequest("GET", "/earnings", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"unauthorized","message":"Missing or invalid authentication"}`, string(body))
}

func TestRespondErrorDefaultsToInternal(t *testing.T) {
	app := fiber.New()
	app.Get("/boom", func(c *fiber.Ctx) error {
		return respondError(c, assert.AnError)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"internal_server_error","message":"Internal server error"}`, string(body))
}
