package revenue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveMonthExplicit(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	month, start, end, err := ResolveMonth("2025-03", now)
	require.NoError(t, err)
	assert.Equal(t, "2025-03", month)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestResolveMonthDefaultsToPreviousMonth(t *testing.T) {
	now := time.Date(2025, 1, 3, 23, 59, 0, 0, time.UTC)

	month, start, end, err := ResolveMonth("", now)
	require.NoError(t, err)
	assert.Equal(t, "2024-12", month)
	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestResolveMonthRejectsBadTokens(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	for _, token := range []string{"2025", "2025-3", "03-2025", "2025-13", "2025-00", "march", "2025-03-01"} {
		_, _, _, err := ResolveMonth(token, now)
		assert.ErrorIs(t, err, ErrInvalidMonth, "token %q", token)
	}
}

func TestResolveMonthCoversLeapFebruary(t *testing.T) {
	month, start, end, err := ResolveMonth("2024-02", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "2024-02", month)
	assert.Equal(t, 29*24*time.Hour, end.Sub(start))
}
