package controllers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatTimePtr(t *testing.T) {
	assert.Nil(t, formatTimePtr(nil))

	now := time.Date(2025, 5, 1, 12, 34, 56, 0, time.Local)
	formatted := formatTimePtr(&now)
	assert.IsType(t, "", formatted)

	expected := now.UTC().Format(time.RFC3339)
	assert.Equal(t, expected, formatted)
}

func TestNormalizeWebsiteURL(t *testing.T) {
	assert.Equal(t, "https://example.com", normalizeWebsiteURL("example.com"))
	assert.Equal(t, "https://example.com", normalizeWebsiteURL("https://example.com"))
	assert.Equal(t, "http://example.com", normalizeWebsiteURL("http://example.com"))
}
