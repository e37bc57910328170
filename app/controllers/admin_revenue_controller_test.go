package controllers

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jagjar/jagjar/internal/pkg/revenue"
)

func TestSettingsUpdateErrorRejectsInvalidValues(t *testing.T) {
	badFee := 150.0
	validationErr := validator.New().Struct(revenue.SettingsUpdate{PlatformFeePercentage: &badFee})
	require.Error(t, validationErr)

	app := fiber.New()
	app.Post("/settings", func(c *fiber.Ctx) error {
		return settingsUpdateError(c, validationErr)
	})

	resp, err := app.Test(httptest.NewRequest("POST", "/settings", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "validation_failed")
}

func TestSettingsUpdateErrorMapsStorageFailureToInternal(t *testing.T) {
	app := fiber.New()
	app.Post("/settings", func(c *fiber.Ctx) error {
		return settingsUpdateError(c, assert.AnError)
	})

	resp, err := app.Test(httptest.NewRequest("POST", "/settings", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "internal_server_error")
}
