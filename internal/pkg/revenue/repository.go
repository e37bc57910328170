package revenue

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jagjar/jagjar/app/models"
)

// ErrMonthLocked is returned when another distribution run already holds
// the lock for the requested month.
var ErrMonthLocked = errors.New("distribution already running for this month")

const lockWaitSeconds = 5

// Repository is the persistence surface the allocator runs against.
type Repository interface {
	GetSettings() (*models.RevenueSettings, error)
	SaveSettings(settings *models.RevenueSettings) error

	CountSubscribedUsers() (int64, error)
	SumPremiumTime(start, end time.Time) (int64, error)
	GroupPremiumUsage(start, end time.Time) ([]WebsiteUsage, error)

	// ReplaceMonthDistribution atomically removes any previous results for
	// the month and writes the new ones. Payouts already past pending are
	// left untouched.
	ReplaceMonthDistribution(month string, earnings []models.DeveloperEarning, revenues []models.Revenue, payouts []models.Payout, logRow *models.RevenueDistributionLog) error

	// WithMonthLock runs fn while holding an exclusive per-month lock.
	WithMonthLock(month string, fn func() error) error

	ListDeveloperEarnings(developerID uint, limit int) ([]EarningsHistoryEntry, error)
	ListDeveloperEarningsDetails(developerID uint, month string) ([]EarningsDetail, error)
	ListDeveloperPayouts(developerID uint, limit int) ([]models.Payout, error)
	ListDistributionLogs(limit int) ([]models.RevenueDistributionLog, error)
	ListTopEarners(month string, limit int) ([]TopEarner, error)
	ListEarningsByMonth(month string) ([]MonthEarning, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a MySQL-backed revenue repository.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) GetSettings() (*models.RevenueSettings, error) {
	var settings models.RevenueSettings
	if err := r.db.First(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *gormRepository) SaveSettings(settings *models.RevenueSettings) error {
	var existing models.RevenueSettings
	err := r.db.First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(settings).Error
	}
	if err != nil {
		return err
	}
	settings.ID = existing.ID
	return r.db.Save(settings).Error
}

func (r *gormRepository) CountSubscribedUsers() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("is_subscribed = ?", true).
		Count(&count).Error
	return count, err
}

func (r *gormRepository) premiumUsageScope(start, end time.Time) *gorm.DB {
	return r.db.Model(&models.TimeTrackingRecord{}).
		Joins("JOIN users ON users.id = time_tracking.user_id").
		Where("users.is_subscribed = ?", true).
		Where("time_tracking.date >= ? AND time_tracking.date < ?", start, end)
}

func (r *gormRepository) SumPremiumTime(start, end time.Time) (int64, error) {
	var total int64
	err := r.premiumUsageScope(start, end).
		Select("COALESCE(SUM(time_tracking.duration), 0)").
		Scan(&total).Error
	return total, err
}

func (r *gormRepository) GroupPremiumUsage(start, end time.Time) ([]WebsiteUsage, error) {
	var rows []WebsiteUsage
	err := r.premiumUsageScope(start, end).
		Joins("JOIN websites ON websites.id = time_tracking.website_id").
		Joins("JOIN api_keys ON api_keys.id = websites.api_key_id").
		Select("api_keys.developer_id AS developer_id, websites.id AS website_id, COALESCE(SUM(time_tracking.duration), 0) AS total_time").
		Group("api_keys.developer_id, websites.id").
		Order("api_keys.developer_id ASC, websites.id ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *gormRepository) ReplaceMonthDistribution(month string, earnings []models.DeveloperEarning, revenues []models.Revenue, payouts []models.Payout, logRow *models.RevenueDistributionLog) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("month = ?", month).Delete(&models.DeveloperEarning{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("month = ?", month).Delete(&models.Revenue{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().
			Where("month = ? AND status = ?", month, models.PayoutStatusPending).
			Delete(&models.Payout{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("month = ?", month).Delete(&models.RevenueDistributionLog{}).Error; err != nil {
			return err
		}

		if len(earnings) > 0 {
			if err := tx.Create(&earnings).Error; err != nil {
				return err
			}
		}
		if len(revenues) > 0 {
			if err := tx.Create(&revenues).Error; err != nil {
				return err
			}
		}
		if len(payouts) > 0 {
			// A developer whose payout for this month moved past pending
			// keeps the original row.
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&payouts).Error; err != nil {
				return err
			}
		}
		return tx.Create(logRow).Error
	})
}

func (r *gormRepository) WithMonthLock(month string, fn func() error) error {
	lockName := fmt.Sprintf("revenue_distribution:%s", month)

	// GET_LOCK is session scoped, so both calls must ride one connection.
	return r.db.Connection(func(tx *gorm.DB) error {
		var acquired int
		if err := tx.Raw("SELECT GET_LOCK(?, ?)", lockName, lockWaitSeconds).Scan(&acquired).Error; err != nil {
			return err
		}
		if acquired != 1 {
			return ErrMonthLocked
		}
		defer tx.Exec("SELECT RELEASE_LOCK(?)", lockName)

		return fn()
	})
}

func (r *gormRepository) ListDeveloperEarnings(developerID uint, limit int) ([]EarningsHistoryEntry, error) {
	var rows []EarningsHistoryEntry
	err := r.db.Model(&models.Revenue{}).
		Select("month, amount, calculated_at").
		Where("developer_id = ?", developerID).
		Order("month DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *gormRepository) ListDeveloperEarningsDetails(developerID uint, month string) ([]EarningsDetail, error) {
	var rows []EarningsDetail
	err := r.db.Model(&models.DeveloperEarning{}).
		Joins("JOIN websites ON websites.id = developer_earnings.website_id").
		Select("websites.id AS website_id, websites.name AS website_name, websites.url AS website_url, developer_earnings.total_time, developer_earnings.premium_time, developer_earnings.earnings").
		Where("developer_earnings.developer_id = ? AND developer_earnings.month = ?", developerID, month).
		Order("developer_earnings.earnings DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *gormRepository) ListDeveloperPayouts(developerID uint, limit int) ([]models.Payout, error) {
	var rows []models.Payout
	err := r.db.Where("developer_id = ?", developerID).
		Order("month DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *gormRepository) ListDistributionLogs(limit int) ([]models.RevenueDistributionLog, error) {
	var rows []models.RevenueDistributionLog
	err := r.db.Order("month DESC").Limit(limit).Find(&rows).Error
	return rows, err
}

func (r *gormRepository) ListTopEarners(month string, limit int) ([]TopEarner, error) {
	var rows []TopEarner
	err := r.db.Model(&models.Revenue{}).
		Joins("JOIN developers ON developers.id = revenues.developer_id").
		Joins("JOIN users ON users.id = developers.user_id").
		Select("revenues.developer_id AS developer_id, users.name AS developer_name, revenues.amount AS amount").
		Where("revenues.month = ?", month).
		Order("revenues.amount DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *gormRepository) ListEarningsByMonth(month string) ([]MonthEarning, error) {
	var rows []MonthEarning
	err := r.db.Model(&models.DeveloperEarning{}).
		Joins("JOIN websites ON websites.id = developer_earnings.website_id").
		Select("developer_earnings.developer_id, developer_earnings.website_id, websites.name AS website_name, developer_earnings.total_time, developer_earnings.premium_time, developer_earnings.earnings").
		Where("developer_earnings.month = ?", month).
		Order("developer_earnings.developer_id ASC, developer_earnings.earnings DESC").
		Scan(&rows).Error
	return rows, err
}
