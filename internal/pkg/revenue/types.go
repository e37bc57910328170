package revenue

import "time"

// WebsiteUsage is premium tracked time grouped by (developer, website) for
// the month being distributed.
type WebsiteUsage struct {
	DeveloperID uint
	WebsiteID   uint
	TotalTime   int64 // seconds
}

// DistributionSummary is the result of one allocator run.
type DistributionSummary struct {
	Month            string `json:"month"`
	TotalRevenue     int64  `json:"total_revenue"`
	TotalDistributed int64  `json:"total_distributed"`
	PlatformFee      int64  `json:"platform_fee"`
	DeveloperCount   int    `json:"developer_count"`
	Status           string `json:"status"`
	Notes            string `json:"notes"`
}

// EarningsHistoryEntry is one month in a developer's earnings history.
type EarningsHistoryEntry struct {
	Month        string    `json:"month"`
	Amount       int64     `json:"amount"`
	CalculatedAt time.Time `json:"calculated_at"`
}

// EarningsDetail is the per-website breakdown of one month's earnings.
type EarningsDetail struct {
	WebsiteID   uint   `json:"website_id"`
	WebsiteName string `json:"website_name"`
	WebsiteURL  string `json:"website_url"`
	TotalTime   int64  `json:"total_time"`
	PremiumTime int64  `json:"premium_time"`
	Earnings    int64  `json:"earnings"`
}

// MonthEarning is a flattened earnings row used for the distribution report.
type MonthEarning struct {
	DeveloperID uint   `json:"developer_id"`
	WebsiteID   uint   `json:"website_id"`
	WebsiteName string `json:"website_name"`
	TotalTime   int64  `json:"total_time"`
	PremiumTime int64  `json:"premium_time"`
	Earnings    int64  `json:"earnings"`
}

// TopEarner is one entry in the monthly top-earning developers list.
type TopEarner struct {
	DeveloperID   uint   `json:"developer_id"`
	DeveloperName string `json:"developer_name"`
	Amount        int64  `json:"amount"`
}

// SettingsUpdate carries a partial revenue settings change. Nil fields keep
// their current value.
type SettingsUpdate struct {
	PlatformFeePercentage *float64 `json:"platform_fee_percentage" validate:"omitempty,gte=0,lte=100"`
	MinimumPayoutAmount   *int64   `json:"minimum_payout_amount" validate:"omitempty,gte=0"`
	PayoutSchedule        *string  `json:"payout_schedule" validate:"omitempty,oneof=weekly biweekly monthly"`
}
