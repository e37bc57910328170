package revenue

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jagjar/jagjar/app/models"
)

const zeroUsageNote = "No premium usage recorded for this period"

// Service computes and persists the monthly revenue distribution.
type Service struct {
	repo   Repository
	source RevenueSource
}

// NewService creates a revenue service from an injected repository. The
// default revenue source derives revenue from the subscriber count.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, source: subscriberCountSource{repo: repo}}
}

// NewServiceWithSource creates a revenue service with a custom revenue source.
func NewServiceWithSource(repo Repository, source RevenueSource) *Service {
	return &Service{repo: repo, source: source}
}

// NewServiceFromDB creates a revenue service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(NewRepository(db))
}

// Calculate runs the distribution for the given month (YYYY-MM; empty means
// the previous calendar month). The run holds a per-month lock and writes
// all rows in one transaction, so recalculating a month replaces its
// earlier results instead of stacking duplicates.
func (s *Service) Calculate(ctx context.Context, month string) (*DistributionSummary, error) {
	month, start, end, err := ResolveMonth(month, time.Now())
	if err != nil {
		return nil, err
	}

	var summary *DistributionSummary
	err = s.repo.WithMonthLock(month, func() error {
		var runErr error
		summary, runErr = s.distribute(month, start, end)
		return runErr
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func (s *Service) distribute(month string, start, end time.Time) (*DistributionSummary, error) {
	settings, err := s.settingsSnapshot()
	if err != nil {
		return nil, err
	}

	totalPremiumTime, err := s.repo.SumPremiumTime(start, end)
	if err != nil {
		return nil, err
	}

	if totalPremiumTime == 0 {
		logRow := &models.RevenueDistributionLog{
			Month:  month,
			Status: models.DistributionStatusCompleted,
			Notes:  zeroUsageNote,
		}
		if err := s.repo.ReplaceMonthDistribution(month, nil, nil, nil, logRow); err != nil {
			return nil, err
		}
		return summaryFromLog(logRow), nil
	}

	totalRevenue, err := s.source.TotalRevenueForMonth(month)
	if err != nil {
		return nil, err
	}

	platformFee := int64(math.Floor(float64(totalRevenue) * settings.PlatformFeePercentage / 100))
	distributable := totalRevenue - platformFee

	usage, err := s.repo.GroupPremiumUsage(start, end)
	if err != nil {
		return nil, err
	}

	earnings := make([]models.DeveloperEarning, 0, len(usage))
	developerTotals := make(map[uint]int64)
	for _, u := range usage {
		share := distributable * u.TotalTime / totalPremiumTime
		earnings = append(earnings, models.DeveloperEarning{
			DeveloperID: u.DeveloperID,
			WebsiteID:   u.WebsiteID,
			Month:       month,
			TotalTime:   u.TotalTime,
			PremiumTime: u.TotalTime, // all aggregated time is from premium users
			Earnings:    share,
		})
		developerTotals[u.DeveloperID] += share
	}

	developerIDs := make([]uint, 0, len(developerTotals))
	for id := range developerTotals {
		developerIDs = append(developerIDs, id)
	}
	sort.Slice(developerIDs, func(i, j int) bool { return developerIDs[i] < developerIDs[j] })

	revenues := make([]models.Revenue, 0, len(developerIDs))
	payouts := make([]models.Payout, 0, len(developerIDs))
	for _, developerID := range developerIDs {
		amount := developerTotals[developerID]
		revenues = append(revenues, models.Revenue{
			DeveloperID: developerID,
			Month:       month,
			Amount:      amount,
		})
		if amount >= settings.MinimumPayoutAmount {
			payouts = append(payouts, models.Payout{
				DeveloperID:   developerID,
				Month:         month,
				Amount:        amount,
				Status:        models.PayoutStatusPending,
				PaymentMethod: models.PayoutMethodBankTransfer,
				Reference:     uuid.NewString(),
				Notes:         fmt.Sprintf("Automatic payout for %s", month),
			})
		}
	}

	logRow := &models.RevenueDistributionLog{
		Month:            month,
		TotalRevenue:     totalRevenue,
		TotalDistributed: distributable,
		PlatformFee:      platformFee,
		DeveloperCount:   len(developerTotals),
		Status:           models.DistributionStatusCompleted,
		Notes:            fmt.Sprintf("Processed on %s", time.Now().UTC().Format(time.RFC3339)),
	}

	if err := s.repo.ReplaceMonthDistribution(month, earnings, revenues, payouts, logRow); err != nil {
		return nil, err
	}
	return summaryFromLog(logRow), nil
}

func (s *Service) settingsSnapshot() (*models.RevenueSettings, error) {
	settings, err := s.repo.GetSettings()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.DefaultRevenueSettings(), nil
		}
		return nil, err
	}
	return settings, nil
}

func summaryFromLog(logRow *models.RevenueDistributionLog) *DistributionSummary {
	return &DistributionSummary{
		Month:            logRow.Month,
		TotalRevenue:     logRow.TotalRevenue,
		TotalDistributed: logRow.TotalDistributed,
		PlatformFee:      logRow.PlatformFee,
		DeveloperCount:   logRow.DeveloperCount,
		Status:           logRow.Status,
		Notes:            logRow.Notes,
	}
}

// GetSettings returns the persisted settings, or the defaults when none
// have been saved yet.
func (s *Service) GetSettings(ctx context.Context) (*models.RevenueSettings, error) {
	return s.settingsSnapshot()
}

// UpdateSettings applies a partial settings change after validating it.
func (s *Service) UpdateSettings(ctx context.Context, in SettingsUpdate) (*models.RevenueSettings, error) {
	v := validator.New()
	if err := v.Struct(in); err != nil {
		return nil, err
	}

	settings, err := s.settingsSnapshot()
	if err != nil {
		return nil, err
	}
	if in.PlatformFeePercentage != nil {
		settings.PlatformFeePercentage = *in.PlatformFeePercentage
	}
	if in.MinimumPayoutAmount != nil {
		settings.MinimumPayoutAmount = *in.MinimumPayoutAmount
	}
	if in.PayoutSchedule != nil {
		settings.PayoutSchedule = *in.PayoutSchedule
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.SaveSettings(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// GetDeveloperEarnings returns a developer's monthly earnings, newest first.
func (s *Service) GetDeveloperEarnings(ctx context.Context, developerID uint, limit int) ([]EarningsHistoryEntry, error) {
	if limit <= 0 {
		limit = 12
	}
	return s.repo.ListDeveloperEarnings(developerID, limit)
}

// GetDeveloperEarningsDetails returns the per-website breakdown for a month.
func (s *Service) GetDeveloperEarningsDetails(ctx context.Context, developerID uint, month string) ([]EarningsDetail, error) {
	if !monthPattern.MatchString(month) {
		return nil, ErrInvalidMonth
	}
	return s.repo.ListDeveloperEarningsDetails(developerID, month)
}

// GetDeveloperPayouts returns a developer's payout history, newest first.
func (s *Service) GetDeveloperPayouts(ctx context.Context, developerID uint, limit int) ([]models.Payout, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.repo.ListDeveloperPayouts(developerID, limit)
}

// GetDistributionLogs returns the platform distribution history, newest first.
func (s *Service) GetDistributionLogs(ctx context.Context, limit int) ([]models.RevenueDistributionLog, error) {
	if limit <= 0 {
		limit = 12
	}
	return s.repo.ListDistributionLogs(limit)
}

// GetTopEarners returns the top earning developers for a month.
func (s *Service) GetTopEarners(ctx context.Context, month string, limit int) ([]TopEarner, error) {
	if !monthPattern.MatchString(month) {
		return nil, ErrInvalidMonth
	}
	if limit <= 0 {
		limit = 10
	}
	return s.repo.ListTopEarners(month, limit)
}

// GetMonthEarnings returns every earnings row written for a month; used to
// build the distribution report.
func (s *Service) GetMonthEarnings(ctx context.Context, month string) ([]MonthEarning, error) {
	if !monthPattern.MatchString(month) {
		return nil, ErrInvalidMonth
	}
	return s.repo.ListEarningsByMonth(month)
}
