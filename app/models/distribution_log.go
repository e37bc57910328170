package models

import "time"

const (
	DistributionStatusCompleted = "completed"
	DistributionStatusFailed    = "failed"
)

// RevenueDistributionLog is the audit record of one allocator run. The month
// is unique: recalculation replaces the previous log for that month.
type RevenueDistributionLog struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Month            string    `gorm:"type:char(7);not null;uniqueIndex" json:"month"` // YYYY-MM
	TotalRevenue     int64     `gorm:"not null" json:"total_revenue"`     // cents
	TotalDistributed int64     `gorm:"not null" json:"total_distributed"` // cents
	PlatformFee      int64     `gorm:"not null" json:"platform_fee"`      // cents
	DeveloperCount   int       `gorm:"not null" json:"developer_count"`
	Status           string    `gorm:"type:varchar(32);not null" json:"status"`
	Notes            string    `gorm:"type:text" json:"notes"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
}
