package reportarchive

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jagjar/jagjar/internal/pkg/revenue"
)

func TestBuildReport(t *testing.T) {
	summary := &revenue.DistributionSummary{
		Month:            "2025-05",
		TotalRevenue:     2000,
		PlatformFee:      600,
		TotalDistributed: 1400,
		DeveloperCount:   2,
		Status:           "completed",
	}
	earnings := []revenue.MonthEarning{
		{DeveloperID: 1, WebsiteID: 10, WebsiteName: "Alpha", TotalTime: 1800, PremiumTime: 1800, Earnings: 466},
		{DeveloperID: 2, WebsiteID: 20, WebsiteName: "Beta, Inc", TotalTime: 3600, PremiumTime: 3600, Earnings: 933},
	}

	body, err := BuildReport(summary, earnings)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(body))).ReadAll()
	require.NoError(t, err)
	// The blank separator line is not a CSV record.
	require.Len(t, records, 5)

	assert.Equal(t, []string{"2025-05", "2000", "600", "1400", "2", "completed"}, records[1])
	assert.Equal(t, []string{"2", "20", "Beta, Inc", "3600", "3600", "933"}, records[4])
}

func TestBuildReportEmptyEarnings(t *testing.T) {
	summary := &revenue.DistributionSummary{Month: "2025-05", Status: "completed"}

	body, err := BuildReport(summary, nil)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(body))).ReadAll()
	require.NoError(t, err)
	// Summary block and detail header, no detail rows.
	assert.Len(t, records, 3)
}

func TestObjectKeyFormat(t *testing.T) {
	cfg := &Config{}
	key := cfg.GetObjectKey("2025-05", "abc-123")
	assert.Equal(t, "reports/2025-05/distribution-abc-123.csv", key)
}
