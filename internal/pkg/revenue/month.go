package revenue

import (
	"errors"
	"regexp"
	"time"
)

// ErrInvalidMonth is returned for month tokens not in YYYY-MM form.
var ErrInvalidMonth = errors.New("invalid month format, must be YYYY-MM")

var monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

const monthLayout = "2006-01"

// ResolveMonth validates a month token and returns the half-open UTC
// interval [start, end) it covers. An empty token resolves to the calendar
// month immediately preceding now.
func ResolveMonth(month string, now time.Time) (string, time.Time, time.Time, error) {
	if month == "" {
		firstOfCurrent := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		month = firstOfCurrent.AddDate(0, -1, 0).Format(monthLayout)
	}

	if !monthPattern.MatchString(month) {
		return "", time.Time{}, time.Time{}, ErrInvalidMonth
	}

	start, err := time.ParseInLocation(monthLayout, month, time.UTC)
	if err != nil {
		// Matches the pattern but is not a real month, e.g. 2024-13.
		return "", time.Time{}, time.Time{}, ErrInvalidMonth
	}

	end := start.AddDate(0, 1, 0)
	return month, start, end, nil
}
