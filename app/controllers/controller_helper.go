package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
)

func formatTimePtr(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func jsonError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": code, "message": message})
}

// respondError renders an error from a context-resolving helper as the JSON
// error envelope. Helpers return *fiber.Error so callers can branch on
// err != nil; the body is only written here. Anything else maps to 500.
func respondError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return jsonError(c, fe.Code, errorCode(fe.Code), fe.Message)
	}
	return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Internal server error")
}

func errorCode(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "bad_request"
	case fiber.StatusUnauthorized:
		return "unauthorized"
	case fiber.StatusForbidden:
		return "forbidden"
	case fiber.StatusNotFound:
		return "not_found"
	case fiber.StatusUnprocessableEntity:
		return "validation_failed"
	default:
		return "internal_server_error"
	}
}
