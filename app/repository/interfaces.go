package repository

import (
	"time"

	"github.com/jagjar/jagjar/app/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	Count() (int64, error)
	CountSubscribed() (int64, error)
}

// DeveloperRepository defines the interface for developer profile operations
type DeveloperRepository interface {
	Create(dev *models.Developer) error
	GetByID(id uint) (*models.Developer, error)
	GetByUserID(userID uint) (*models.Developer, error)
	GetOrCreateByUserID(userID uint) (*models.Developer, error)
	Update(dev *models.Developer) error
	Count() (int64, error)
}

// APIKeyRepository defines the interface for API key operations
type APIKeyRepository interface {
	Create(key *models.APIKey) error
	GetByID(id uint) (*models.APIKey, error)
	GetActiveByHash(hash string) (*models.APIKey, error)
	ListByDeveloperID(developerID uint) ([]models.APIKey, error)
	Delete(id uint) error
	TouchUsage(id uint) error
}

// WebsiteRepository defines the interface for registered website operations
type WebsiteRepository interface {
	Create(site *models.Website) error
	GetByID(id uint) (*models.Website, error)
	ListByAPIKeyID(apiKeyID uint) ([]models.Website, error)
	ListByDeveloperID(developerID uint) ([]models.Website, error)
	Count() (int64, error)
}

// DailyUsage is one day of tracked time for a developer's websites.
type DailyUsage struct {
	Day     time.Time
	Seconds int64
}

// SiteUsage is the tracked time accumulated on one website.
type SiteUsage struct {
	WebsiteID uint
	Name      string
	Seconds   int64
}

// TimeTrackingRepository defines the interface for time tracking operations
type TimeTrackingRepository interface {
	Create(record *models.TimeTrackingRecord) error
	SumDurationByDeveloper(developerID uint) (int64, error)
	CountDistinctUsersByDeveloper(developerID uint) (int64, error)
	DailyTotalsByDeveloper(developerID uint, since time.Time) ([]DailyUsage, error)
	SiteTotalsByDeveloper(developerID uint) ([]SiteUsage, error)
	SumDurationAll() (int64, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	User         UserRepository
	Developer    DeveloperRepository
	APIKey       APIKeyRepository
	Website      WebsiteRepository
	TimeTracking TimeTrackingRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Developer:    NewDeveloperRepository(db),
		APIKey:       NewAPIKeyRepository(db),
		Website:      NewWebsiteRepository(db),
		TimeTracking: NewTimeTrackingRepository(db),
	}
}
