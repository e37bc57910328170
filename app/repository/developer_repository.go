package repository

import (
	"github.com/jagjar/jagjar/app/models"
	"gorm.io/gorm"
)

// developerRepository implements the DeveloperRepository interface
type developerRepository struct {
	db *gorm.DB
}

// NewDeveloperRepository creates a new developer repository instance
func NewDeveloperRepository(db *gorm.DB) DeveloperRepository {
	return &developerRepository{db: db}
}

func (r *developerRepository) Create(dev *models.Developer) error {
	return r.db.Create(dev).Error
}

func (r *developerRepository) GetByID(id uint) (*models.Developer, error) {
	var dev models.Developer
	err := r.db.First(&dev, id).Error
	if err != nil {
		return nil, err
	}
	return &dev, nil
}

func (r *developerRepository) GetByUserID(userID uint) (*models.Developer, error) {
	var dev models.Developer
	err := r.db.Where("user_id = ?", userID).First(&dev).Error
	if err != nil {
		return nil, err
	}
	return &dev, nil
}

// GetOrCreateByUserID returns the developer profile for a user, creating an
// empty one on first access.
func (r *developerRepository) GetOrCreateByUserID(userID uint) (*models.Developer, error) {
	return models.GetOrCreateDeveloper(r.db, userID)
}

func (r *developerRepository) Update(dev *models.Developer) error {
	return r.db.Save(dev).Error
}

func (r *developerRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Developer{}).Count(&count).Error
	return count, err
}
