package repository

import (
	"github.com/jagjar/jagjar/app/models"
	"gorm.io/gorm"
)

// websiteRepository implements the WebsiteRepository interface
type websiteRepository struct {
	db *gorm.DB
}

// NewWebsiteRepository creates a new website repository instance
func NewWebsiteRepository(db *gorm.DB) WebsiteRepository {
	return &websiteRepository{db: db}
}

func (r *websiteRepository) Create(site *models.Website) error {
	return r.db.Create(site).Error
}

func (r *websiteRepository) GetByID(id uint) (*models.Website, error) {
	var site models.Website
	err := r.db.First(&site, id).Error
	if err != nil {
		return nil, err
	}
	return &site, nil
}

func (r *websiteRepository) ListByAPIKeyID(apiKeyID uint) ([]models.Website, error) {
	var sites []models.Website
	err := r.db.Where("api_key_id = ?", apiKeyID).Find(&sites).Error
	return sites, err
}

// ListByDeveloperID resolves all websites owned by a developer through the
// website -> api key -> developer chain.
func (r *websiteRepository) ListByDeveloperID(developerID uint) ([]models.Website, error) {
	var sites []models.Website
	err := r.db.
		Joins("JOIN api_keys ON api_keys.id = websites.api_key_id").
		Where("api_keys.developer_id = ? AND api_keys.deleted_at IS NULL", developerID).
		Find(&sites).Error
	return sites, err
}

func (r *websiteRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Website{}).Count(&count).Error
	return count, err
}
