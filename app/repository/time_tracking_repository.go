package repository

import (
	"time"

	"github.com/jagjar/jagjar/app/models"
	"gorm.io/gorm"
)

// timeTrackingRepository implements the TimeTrackingRepository interface
type timeTrackingRepository struct {
	db *gorm.DB
}

// NewTimeTrackingRepository creates a new time tracking repository instance
func NewTimeTrackingRepository(db *gorm.DB) TimeTrackingRepository {
	return &timeTrackingRepository{db: db}
}

func (r *timeTrackingRepository) Create(record *models.TimeTrackingRecord) error {
	return r.db.Create(record).Error
}

// developerScope joins tracking rows to the owning developer through
// websites and api keys.
func (r *timeTrackingRepository) developerScope(developerID uint) *gorm.DB {
	return r.db.Model(&models.TimeTrackingRecord{}).
		Joins("JOIN websites ON websites.id = time_tracking.website_id").
		Joins("JOIN api_keys ON api_keys.id = websites.api_key_id").
		Where("api_keys.developer_id = ?", developerID)
}

func (r *timeTrackingRepository) SumDurationByDeveloper(developerID uint) (int64, error) {
	var total int64
	err := r.developerScope(developerID).
		Select("COALESCE(SUM(time_tracking.duration), 0)").
		Scan(&total).Error
	return total, err
}

func (r *timeTrackingRepository) CountDistinctUsersByDeveloper(developerID uint) (int64, error) {
	var count int64
	err := r.developerScope(developerID).
		Select("COUNT(DISTINCT time_tracking.user_id)").
		Scan(&count).Error
	return count, err
}

func (r *timeTrackingRepository) DailyTotalsByDeveloper(developerID uint, since time.Time) ([]DailyUsage, error) {
	var rows []DailyUsage
	err := r.developerScope(developerID).
		Select("DATE(time_tracking.date) AS day, COALESCE(SUM(time_tracking.duration), 0) AS seconds").
		Where("time_tracking.date >= ?", since).
		Group("DATE(time_tracking.date)").
		Order("day ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *timeTrackingRepository) SiteTotalsByDeveloper(developerID uint) ([]SiteUsage, error) {
	var rows []SiteUsage
	err := r.developerScope(developerID).
		Select("websites.id AS website_id, websites.name AS name, COALESCE(SUM(time_tracking.duration), 0) AS seconds").
		Group("websites.id, websites.name").
		Order("seconds DESC").
		Scan(&rows).Error
	return rows, err
}

// SumDurationAll returns the total tracked seconds across the platform.
func (r *timeTrackingRepository) SumDurationAll() (int64, error) {
	var total int64
	err := r.db.Model(&models.TimeTrackingRecord{}).
		Select("COALESCE(SUM(duration), 0)").
		Scan(&total).Error
	return total, err
}
