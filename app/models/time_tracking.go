package models

import "time"

// TimeTrackingRecord is one session of time a user spent on a website.
// Records are written by the tracking ingestion endpoint and are immutable.
type TimeTrackingRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	WebsiteID uint      `gorm:"not null;index" json:"website_id"`
	Duration  int64     `gorm:"not null" json:"duration"` // seconds
	Date      time.Time `gorm:"not null;index" json:"date"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName keeps the original table naming.
func (TimeTrackingRecord) TableName() string {
	return "time_tracking"
}
