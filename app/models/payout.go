package models

import "time"

const (
	PayoutStatusPending    = "pending"
	PayoutStatusProcessing = "processing"
	PayoutStatusPaid       = "paid"
	PayoutStatusFailed     = "failed"
)

const PayoutMethodBankTransfer = "bank_transfer"

// Payout is a pending payout obligation created when a developer's monthly
// aggregate clears the minimum payout threshold. Month and Reference were
// added so recalculating a month can replace its automatic payouts instead
// of stacking duplicates.
type Payout struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	DeveloperID   uint      `gorm:"not null;index:ux_payouts_dev_month,unique,priority:1" json:"developer_id"`
	Month         string    `gorm:"type:char(7);not null;index:ux_payouts_dev_month,unique,priority:2" json:"month"` // YYYY-MM
	Amount        int64     `gorm:"not null" json:"amount"` // cents
	Status        string    `gorm:"type:varchar(32);not null;default:'pending';index" json:"status"`
	PaymentMethod string    `gorm:"type:varchar(50);not null;default:'bank_transfer'" json:"payment_method"`
	Reference     string    `gorm:"type:char(36);not null" json:"reference"`
	Notes         string    `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
