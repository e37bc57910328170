package models

import "time"

// Plan is a subscription plan offered to end users.
type Plan struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Price       int64     `gorm:"not null" json:"price"`    // cents per month
	TimeLimit   *int64    `gorm:"default:null" json:"time_limit"` // seconds, nil = unlimited
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
