package revenue

// MonthlySubscriptionPriceCents is the flat monthly price per subscribed
// user used by the default revenue source. Stands in for real billing data
// until a payment provider source is wired in.
const MonthlySubscriptionPriceCents int64 = 1000

// RevenueSource supplies the platform revenue to distribute for a month.
// The allocator never computes revenue itself; it asks the injected source.
type RevenueSource interface {
	TotalRevenueForMonth(month string) (int64, error)
}

// subscriberCountSource estimates revenue as the current subscriber count
// times the flat monthly price.
type subscriberCountSource struct {
	repo Repository
}

func (s subscriberCountSource) TotalRevenueForMonth(month string) (int64, error) {
	count, err := s.repo.CountSubscribedUsers()
	if err != nil {
		return 0, err
	}
	return count * MonthlySubscriptionPriceCents, nil
}
