package repository

import (
	"strings"
	"time"

	"github.com/jagjar/jagjar/app/models"
	"gorm.io/gorm"
)

// apiKeyRepository implements the APIKeyRepository interface
type apiKeyRepository struct {
	db *gorm.DB
}

// NewAPIKeyRepository creates a new API key repository instance
func NewAPIKeyRepository(db *gorm.DB) APIKeyRepository {
	return &apiKeyRepository{db: db}
}

func (r *apiKeyRepository) Create(key *models.APIKey) error {
	return r.db.Create(key).Error
}

func (r *apiKeyRepository) GetByID(id uint) (*models.APIKey, error) {
	var key models.APIKey
	err := r.db.First(&key, id).Error
	if err != nil {
		return nil, err
	}
	return &key, nil
}

// GetActiveByHash resolves an API key hash to its active key record.
func (r *apiKeyRepository) GetActiveByHash(hash string) (*models.APIKey, error) {
	trimmed := strings.TrimSpace(hash)
	if trimmed == "" {
		return nil, gorm.ErrRecordNotFound
	}
	var key models.APIKey
	err := r.db.Where("key_hash = ? AND active = ?", trimmed, true).First(&key).Error
	if err != nil {
		return nil, err
	}
	return &key, nil
}

func (r *apiKeyRepository) ListByDeveloperID(developerID uint) ([]models.APIKey, error) {
	var keys []models.APIKey
	err := r.db.Where("developer_id = ?", developerID).Order("created_at DESC").Find(&keys).Error
	return keys, err
}

func (r *apiKeyRepository) Delete(id uint) error {
	return r.db.Delete(&models.APIKey{}, id).Error
}

// TouchUsage refreshes the last-used timestamp best-effort.
func (r *apiKeyRepository) TouchUsage(id uint) error {
	now := time.Now()
	return r.db.Model(&models.APIKey{}).
		Where("id = ?", id).
		Updates(map[string]any{"last_used_at": now}).Error
}
