package reportarchive

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"github.com/jagjar/jagjar/internal/pkg/revenue"
)

// BuildReport renders a distribution run and its earnings rows as CSV.
func BuildReport(summary *revenue.DistributionSummary, earnings []revenue.MonthEarning) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := [][]string{
		{"month", "total_revenue_cents", "platform_fee_cents", "total_distributed_cents", "developer_count", "status"},
		{
			summary.Month,
			strconv.FormatInt(summary.TotalRevenue, 10),
			strconv.FormatInt(summary.PlatformFee, 10),
			strconv.FormatInt(summary.TotalDistributed, 10),
			strconv.Itoa(summary.DeveloperCount),
			summary.Status,
		},
		{},
		{"developer_id", "website_id", "website_name", "total_time_seconds", "premium_time_seconds", "earnings_cents"},
	}
	if err := w.WriteAll(header); err != nil {
		return nil, fmt.Errorf("failed to write report header: %w", err)
	}

	for _, e := range earnings {
		row := []string{
			strconv.FormatUint(uint64(e.DeveloperID), 10),
			strconv.FormatUint(uint64(e.WebsiteID), 10),
			e.WebsiteName,
			strconv.FormatInt(e.TotalTime, 10),
			strconv.FormatInt(e.PremiumTime, 10),
			strconv.FormatInt(e.Earnings, 10),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write report row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ArchiveDistribution builds and uploads the report for a completed run.
// Intended to run in the background; failures are logged, never fatal.
func ArchiveDistribution(ctx context.Context, svc *revenue.Service, summary *revenue.DistributionSummary) {
	cfg, err := LoadConfig()
	if err != nil {
		log.Errorf("[ReportArchive] Invalid configuration: %v", err)
		return
	}
	if !cfg.IsEnabled() {
		return
	}

	client, err := NewClient(cfg)
	if err != nil {
		log.Errorf("[ReportArchive] Failed to create client: %v", err)
		return
	}

	earnings, err := svc.GetMonthEarnings(ctx, summary.Month)
	if err != nil {
		log.Errorf("[ReportArchive] Failed to load earnings for %s: %v", summary.Month, err)
		return
	}

	body, err := BuildReport(summary, earnings)
	if err != nil {
		log.Errorf("[ReportArchive] Failed to build report for %s: %v", summary.Month, err)
		return
	}

	objectKey := cfg.GetObjectKey(summary.Month, uuid.NewString())
	if err := client.UploadReport(ctx, objectKey, body); err != nil {
		log.Errorf("[ReportArchive] Failed to archive report for %s: %v", summary.Month, err)
	}
}
