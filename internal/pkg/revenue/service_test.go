package revenue

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jagjar/jagjar/app/models"
)

// fakeRepository keeps everything in memory so allocator behavior can be
// checked without a database.
type fakeRepository struct {
	settings        *models.RevenueSettings
	subscriberCount int64
	usage           []WebsiteUsage

	earnings map[string][]models.DeveloperEarning
	revenues map[string][]models.Revenue
	payouts  map[string][]models.Payout
	logs     map[string][]models.RevenueDistributionLog

	lockHeld map[string]bool
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		earnings: make(map[string][]models.DeveloperEarning),
		revenues: make(map[string][]models.Revenue),
		payouts:  make(map[string][]models.Payout),
		logs:     make(map[string][]models.RevenueDistributionLog),
		lockHeld: make(map[string]bool),
	}
}

func (f *fakeRepository) GetSettings() (*models.RevenueSettings, error) {
	if f.settings == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.settings, nil
}

func (f *fakeRepository) SaveSettings(settings *models.RevenueSettings) error {
	f.settings = settings
	return nil
}

func (f *fakeRepository) CountSubscribedUsers() (int64, error) {
	return f.subscriberCount, nil
}

func (f *fakeRepository) SumPremiumTime(start, end time.Time) (int64, error) {
	var total int64
	for _, u := range f.usage {
		total += u.TotalTime
	}
	return total, nil
}

func (f *fakeRepository) GroupPremiumUsage(start, end time.Time) ([]WebsiteUsage, error) {
	return f.usage, nil
}

func (f *fakeRepository) ReplaceMonthDistribution(month string, earnings []models.DeveloperEarning, revenues []models.Revenue, payouts []models.Payout, logRow *models.RevenueDistributionLog) error {
	f.earnings[month] = earnings
	f.revenues[month] = revenues

	// Non-pending payouts survive a rerun, matching the conflict handling
	// of the real repository.
	var kept []models.Payout
	for _, p := range f.payouts[month] {
		if p.Status != models.PayoutStatusPending {
			kept = append(kept, p)
		}
	}
	for _, p := range payouts {
		conflict := false
		for _, k := range kept {
			if k.DeveloperID == p.DeveloperID {
				conflict = true
				break
			}
		}
		if !conflict {
			kept = append(kept, p)
		}
	}
	f.payouts[month] = kept

	f.logs[month] = []models.RevenueDistributionLog{*logRow}
	return nil
}

func (f *fakeRepository) WithMonthLock(month string, fn func() error) error {
	if f.lockHeld[month] {
		return ErrMonthLocked
	}
	f.lockHeld[month] = true
	defer func() { f.lockHeld[month] = false }()
	return fn()
}

func (f *fakeRepository) ListDeveloperEarnings(developerID uint, limit int) ([]EarningsHistoryEntry, error) {
	var rows []EarningsHistoryEntry
	for month, revs := range f.revenues {
		for _, r := range revs {
			if r.DeveloperID == developerID {
				rows = append(rows, EarningsHistoryEntry{Month: month, Amount: r.Amount})
			}
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Month > rows[j].Month })
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (f *fakeRepository) ListDeveloperEarningsDetails(developerID uint, month string) ([]EarningsDetail, error) {
	var rows []EarningsDetail
	for _, e := range f.earnings[month] {
		if e.DeveloperID == developerID {
			rows = append(rows, EarningsDetail{
				WebsiteID:   e.WebsiteID,
				TotalTime:   e.TotalTime,
				PremiumTime: e.PremiumTime,
				Earnings:    e.Earnings,
			})
		}
	}
	return rows, nil
}

func (f *fakeRepository) ListDeveloperPayouts(developerID uint, limit int) ([]models.Payout, error) {
	var rows []models.Payout
	for _, ps := range f.payouts {
		for _, p := range ps {
			if p.DeveloperID == developerID {
				rows = append(rows, p)
			}
		}
	}
	return rows, nil
}

func (f *fakeRepository) ListDistributionLogs(limit int) ([]models.RevenueDistributionLog, error) {
	var rows []models.RevenueDistributionLog
	for _, ls := range f.logs {
		rows = append(rows, ls...)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Month > rows[j].Month })
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (f *fakeRepository) ListTopEarners(month string, limit int) ([]TopEarner, error) {
	var rows []TopEarner
	for _, r := range f.revenues[month] {
		rows = append(rows, TopEarner{DeveloperID: r.DeveloperID, Amount: r.Amount})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Amount > rows[j].Amount })
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (f *fakeRepository) ListEarningsByMonth(month string) ([]MonthEarning, error) {
	var rows []MonthEarning
	for _, e := range f.earnings[month] {
		rows = append(rows, MonthEarning{
			DeveloperID: e.DeveloperID,
			WebsiteID:   e.WebsiteID,
			TotalTime:   e.TotalTime,
			PremiumTime: e.PremiumTime,
			Earnings:    e.Earnings,
		})
	}
	return rows, nil
}

func TestCalculateProRataShares(t *testing.T) {
	repo := newFakeRepository()
	repo.subscriberCount = 2 // 2 x 1000 cents of revenue
	repo.usage = []WebsiteUsage{
		{DeveloperID: 1, WebsiteID: 10, TotalTime: 1800},
		{DeveloperID: 2, WebsiteID: 20, TotalTime: 3600},
	}

	svc := NewService(repo)
	summary, err := svc.Calculate(context.Background(), "2025-05")
	require.NoError(t, err)

	assert.Equal(t, "2025-05", summary.Month)
	assert.Equal(t, int64(2000), summary.TotalRevenue)
	assert.Equal(t, int64(600), summary.PlatformFee)
	assert.Equal(t, int64(1400), summary.TotalDistributed)
	assert.Equal(t, 2, summary.DeveloperCount)
	assert.Equal(t, models.DistributionStatusCompleted, summary.Status)
	assert.True(t, strings.HasPrefix(summary.Notes, "Processed on "))

	revenues := repo.revenues["2025-05"]
	require.Len(t, revenues, 2)
	assert.Equal(t, int64(466), revenues[0].Amount) // 1400 * 1800 / 5400
	assert.Equal(t, int64(933), revenues[1].Amount) // 1400 * 3600 / 5400

	// Neither share reaches the 1000 cent minimum.
	assert.Empty(t, repo.payouts["2025-05"])
}

func TestCalculateFeeAndDistributableIdentity(t *testing.T) {
	repo := newFakeRepository()
	repo.subscriberCount = 7 // 7000 cents, odd numbers exercise the floor
	repo.settings = &models.RevenueSettings{PlatformFeePercentage: 33, MinimumPayoutAmount: 1000, PayoutSchedule: models.PayoutScheduleMonthly}
	repo.usage = []WebsiteUsage{
		{DeveloperID: 1, WebsiteID: 10, TotalTime: 1000},
		{DeveloperID: 2, WebsiteID: 20, TotalTime: 333},
		{DeveloperID: 3, WebsiteID: 30, TotalTime: 7},
	}

	svc := NewService(repo)
	summary, err := svc.Calculate(context.Background(), "2025-04")
	require.NoError(t, err)

	assert.Equal(t, int64(2310), summary.PlatformFee) // floor(7000 * 0.33)
	assert.Equal(t, summary.TotalRevenue-summary.PlatformFee, summary.TotalDistributed)

	// Rounding only ever loses cents, at most one per earnings row.
	var paidOut int64
	for _, r := range repo.revenues["2025-04"] {
		paidOut += r.Amount
	}
	assert.LessOrEqual(t, paidOut, summary.TotalDistributed)
	assert.GreaterOrEqual(t, paidOut, summary.TotalDistributed-int64(len(repo.usage)))
}

func TestCalculateAggregatesSitesPerDeveloper(t *testing.T) {
	repo := newFakeRepository()
	repo.subscriberCount = 10
	repo.usage = []WebsiteUsage{
		{DeveloperID: 1, WebsiteID: 10, TotalTime: 2000},
		{DeveloperID: 1, WebsiteID: 11, TotalTime: 1000},
		{DeveloperID: 2, WebsiteID: 20, TotalTime: 1000},
	}

	svc := NewService(repo)
	_, err := svc.Calculate(context.Background(), "2025-05")
	require.NoError(t, err)

	var dev1Sites int64
	for _, e := range repo.earnings["2025-05"] {
		if e.DeveloperID == 1 {
			dev1Sites += e.Earnings
		}
	}
	require.Len(t, repo.revenues["2025-05"], 2)
	for _, r := range repo.revenues["2025-05"] {
		if r.DeveloperID == 1 {
			assert.Equal(t, dev1Sites, r.Amount)
		}
	}
}

func TestCalculatePayoutThreshold(t *testing.T) {
	repo := newFakeRepository()
	repo.subscriberCount = 10 // 10000 cents, 7000 distributable
	repo.usage = []WebsiteUsage{
		{DeveloperID: 1, WebsiteID: 10, TotalTime: 9000},
		{DeveloperID: 2, WebsiteID: 20, TotalTime: 1000},
	}

	svc := NewService(repo)
	_, err := svc.Calculate(context.Background(), "2025-05")
	require.NoError(t, err)

	payouts := repo.payouts["2025-05"]
	require.Len(t, payouts, 1)
	assert.Equal(t, uint(1), payouts[0].DeveloperID)
	assert.Equal(t, int64(6300), payouts[0].Amount)
	assert.Equal(t, models.PayoutStatusPending, payouts[0].Status)
	assert.Equal(t, models.PayoutMethodBankTransfer, payouts[0].PaymentMethod)
	assert.Equal(t, "Automatic payout for 2025-05", payouts[0].Notes)
	assert.NotEmpty(t, payouts[0].Reference)
}

func TestCalculateZeroUsageStillWritesLog(t *testing.T) {
	repo := newFakeRepository()
	repo.subscriberCount = 5

	svc := NewService(repo)
	summary, err := svc.Calculate(context.Background(), "2025-05")
	require.NoError(t, err)

	assert.Equal(t, int64(0), summary.TotalRevenue)
	assert.Equal(t, int64(0), summary.TotalDistributed)
	assert.Equal(t, 0, summary.DeveloperCount)
	assert.Equal(t, models.DistributionStatusCompleted, summary.Status)

	require.Len(t, repo.logs["2025-05"], 1)
	assert.Empty(t, repo.earnings["2025-05"])
	assert.Empty(t, repo.revenues["2025-05"])
}

func TestCalculateRerunReplacesResults(t *testing.T) {
	repo := newFakeRepository()
	repo.subscriberCount = 2
	repo.usage = []WebsiteUsage{
		{DeveloperID: 1, WebsiteID: 10, TotalTime: 1800},
		{DeveloperID: 2, WebsiteID: 20, TotalTime: 3600},
	}

	svc := NewService(repo)
	_, err := svc.Calculate(context.Background(), "2025-05")
	require.NoError(t, err)

	repo.usage = []WebsiteUsage{
		{DeveloperID: 1, WebsiteID: 10, TotalTime: 3600},
	}
	summary, err := svc.Calculate(context.Background(), "2025-05")
	require.NoError(t, err)

	assert.Equal(t, 1, summary.DeveloperCount)
	require.Len(t, repo.revenues["2025-05"], 1)
	assert.Equal(t, int64(1400), repo.revenues["2025-05"][0].Amount)
	require.Len(t, repo.logs["2025-05"], 1)
}

func TestCalculateRejectsInvalidMonth(t *testing.T) {
	svc := NewService(newFakeRepository())

	_, err := svc.Calculate(context.Background(), "May 2025")
	assert.ErrorIs(t, err, ErrInvalidMonth)
}

func TestCalculateRefusesConcurrentRunForSameMonth(t *testing.T) {
	repo := newFakeRepository()
	repo.lockHeld["2025-05"] = true

	svc := NewService(repo)
	_, err := svc.Calculate(context.Background(), "2025-05")
	assert.ErrorIs(t, err, ErrMonthLocked)
}

func TestCalculateUsesSavedSettings(t *testing.T) {
	repo := newFakeRepository()
	repo.subscriberCount = 1 // 1000 cents
	repo.settings = &models.RevenueSettings{PlatformFeePercentage: 50, MinimumPayoutAmount: 100, PayoutSchedule: models.PayoutScheduleWeekly}
	repo.usage = []WebsiteUsage{
		{DeveloperID: 1, WebsiteID: 10, TotalTime: 600},
	}

	svc := NewService(repo)
	summary, err := svc.Calculate(context.Background(), "2025-05")
	require.NoError(t, err)

	assert.Equal(t, int64(500), summary.PlatformFee)
	require.Len(t, repo.payouts["2025-05"], 1)
	assert.Equal(t, int64(500), repo.payouts["2025-05"][0].Amount)
}

func TestUpdateSettingsPartial(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	fee := 25.0
	updated, err := svc.UpdateSettings(context.Background(), SettingsUpdate{PlatformFeePercentage: &fee})
	require.NoError(t, err)

	assert.Equal(t, 25.0, updated.PlatformFeePercentage)
	// Untouched fields keep their defaults.
	assert.Equal(t, int64(models.DefaultMinimumPayoutAmount), updated.MinimumPayoutAmount)
	assert.Equal(t, models.DefaultPayoutSchedule, updated.PayoutSchedule)
}

func TestUpdateSettingsRejectsOutOfRange(t *testing.T) {
	svc := NewService(newFakeRepository())

	fee := 150.0
	_, err := svc.UpdateSettings(context.Background(), SettingsUpdate{PlatformFeePercentage: &fee})
	assert.Error(t, err)

	minimum := int64(-5)
	_, err = svc.UpdateSettings(context.Background(), SettingsUpdate{MinimumPayoutAmount: &minimum})
	assert.Error(t, err)

	schedule := "daily"
	_, err = svc.UpdateSettings(context.Background(), SettingsUpdate{PayoutSchedule: &schedule})
	assert.Error(t, err)
}

func TestGetSettingsFallsBackToDefaults(t *testing.T) {
	svc := NewService(newFakeRepository())

	settings, err := svc.GetSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, float64(models.DefaultPlatformFeePercentage), settings.PlatformFeePercentage)
	assert.Equal(t, int64(models.DefaultMinimumPayoutAmount), settings.MinimumPayoutAmount)
}
