package models

import (
	"time"

	"gorm.io/gorm"
)

// Developer is the revenue-share account attached to a platform user.
// One developer owns API keys, which in turn own registered websites.
type Developer struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"not null;uniqueIndex" json:"user_id"`
	CompanyName string         `gorm:"type:varchar(200)" json:"company_name"`
	Website     string         `gorm:"type:varchar(255)" json:"website"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// GetOrCreateDeveloper returns the developer profile for a user, creating an
// empty one on first access the way the registration flow expects.
func GetOrCreateDeveloper(db *gorm.DB, userID uint) (*Developer, error) {
	var dev Developer
	if err := db.Where("user_id = ?", userID).First(&dev).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			dev = Developer{UserID: userID}
			if err := db.Create(&dev).Error; err != nil {
				return nil, err
			}
			return &dev, nil
		}
		return nil, err
	}
	return &dev, nil
}
