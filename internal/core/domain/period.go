package domain

import "time"

const (
	DailyKeyLayout   = "2006-01-02"
	MonthlyKeyLayout = "2006-01"
	AnytimeKey       = "all"
)

// PeriodKey returns the entries bucket a check-in made at now lands in.
// now is interpreted in its own location, so callers pick the calendar.
func PeriodKey(t GoalType, now time.Time) string {
	switch t {
	case GoalTypeDaily:
		return now.Format(DailyKeyLayout)
	case GoalTypeMonthly:
		return now.Format(MonthlyKeyLayout)
	default:
		return AnytimeKey
	}
}

// parsePeriodKey is the inverse of PeriodKey for dated buckets.
func parsePeriodKey(t GoalType, key string) (time.Time, bool) {
	var layout string
	switch t {
	case GoalTypeDaily:
		layout = DailyKeyLayout
	case GoalTypeMonthly:
		layout = MonthlyKeyLayout
	default:
		return time.Time{}, false
	}

	p, err := time.Parse(layout, key)
	if err != nil {
		return time.Time{}, false
	}
	return p, true
}

func previousPeriod(t GoalType, p time.Time) time.Time {
	if t == GoalTypeMonthly {
		return p.AddDate(0, -1, 0)
	}
	return p.AddDate(0, 0, -1)
}
