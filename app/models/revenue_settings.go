package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	PayoutScheduleWeekly   = "weekly"
	PayoutScheduleBiweekly = "biweekly"
	PayoutScheduleMonthly  = "monthly"
)

// Defaults used when no settings row has been persisted yet. Kept as named
// constants so a change of defaults is visible in review, not buried in a
// query fallback.
const (
	DefaultPlatformFeePercentage = 30.0
	DefaultMinimumPayoutAmount   = 1000 // cents
	DefaultPayoutSchedule        = PayoutScheduleMonthly
)

// RevenueSettings is the platform-wide allocator configuration, persisted as
// a singleton row. The allocator snapshots one value set per run.
type RevenueSettings struct {
	ID                    uint      `gorm:"primaryKey" json:"id"`
	PlatformFeePercentage float64   `gorm:"type:decimal(5,2);not null;default:30.00" json:"platform_fee_percentage" validate:"gte=0,lte=100"`
	MinimumPayoutAmount   int64     `gorm:"not null;default:1000" json:"minimum_payout_amount" validate:"gte=0"` // cents
	PayoutSchedule        string    `gorm:"type:varchar(20);not null;default:'monthly'" json:"payout_schedule" validate:"oneof=weekly biweekly monthly"`
	CreatedAt             time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// DefaultRevenueSettings returns the settings used when none are persisted.
func DefaultRevenueSettings() *RevenueSettings {
	return &RevenueSettings{
		PlatformFeePercentage: DefaultPlatformFeePercentage,
		MinimumPayoutAmount:   DefaultMinimumPayoutAmount,
		PayoutSchedule:        DefaultPayoutSchedule,
	}
}

func (s *RevenueSettings) Validate() error {
	v := validator.New()

	return v.Struct(s)
}
