package models

import "time"

// DeveloperEarning is the per-developer, per-website share computed for one
// month. Rows are replaced wholesale when a month is recalculated; the unique
// index keeps duplicate runs from double-counting.
type DeveloperEarning struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	DeveloperID uint      `gorm:"not null;index:ux_developer_earnings_dev_site_month,unique,priority:1" json:"developer_id"`
	WebsiteID   uint      `gorm:"not null;index:ux_developer_earnings_dev_site_month,unique,priority:2" json:"website_id"`
	Month       string    `gorm:"type:char(7);not null;index:ux_developer_earnings_dev_site_month,unique,priority:3;index" json:"month"` // YYYY-MM
	TotalTime   int64     `gorm:"not null" json:"total_time"`   // seconds
	PremiumTime int64     `gorm:"not null" json:"premium_time"` // seconds
	Earnings    int64     `gorm:"not null" json:"earnings"`     // cents
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}
