package models

import (
	"time"

	"gorm.io/gorm"
)

// Website is a registered site reachable through an API key. Ownership flows
// website -> api key -> developer.
type Website struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	APIKeyID  uint           `gorm:"not null;index" json:"api_key_id"`
	URL       string         `gorm:"type:varchar(255);not null" json:"url"`
	Name      string         `gorm:"type:varchar(150);not null" json:"name"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
