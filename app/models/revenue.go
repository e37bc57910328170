package models

import "time"

// Revenue is a developer's aggregate payable amount for one month.
type Revenue struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	DeveloperID  uint      `gorm:"not null;index:ux_revenue_dev_month,unique,priority:1" json:"developer_id"`
	Month        string    `gorm:"type:char(7);not null;index:ux_revenue_dev_month,unique,priority:2;index" json:"month"` // YYYY-MM
	Amount       int64     `gorm:"not null" json:"amount"` // cents
	CalculatedAt time.Time `gorm:"autoCreateTime" json:"calculated_at"`
}
