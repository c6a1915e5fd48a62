// utils/dates.go
package utils

import (
	"errors"
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// MaxRangeDays bounds report ranges so the daily series stays small.
const MaxRangeDays = 366

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func DaysBetween(start, end time.Time) int {
	start = BeginningOfDay(start)
	end = BeginningOfDay(end)
	return int(end.Sub(start).Hours() / 24)
}

// MonthRange returns [first day of t's month, first day of next month).
func MonthRange(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, 0)
}

func YearRange(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(1, 0, 0)
}

// ParseDateRange parses inclusive YYYY-MM-DD bounds into a half-open range.
// Empty bounds default to the month containing now.
func ParseDateRange(from, to string, now time.Time) (time.Time, time.Time, error) {
	start, end := MonthRange(now)
	if from != "" {
		t, err := time.ParseInLocation(DateLayout, from, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("invalid from date, expected YYYY-MM-DD")
		}
		start = t
	}
	if to != "" {
		t, err := time.ParseInLocation(DateLayout, to, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("invalid to date, expected YYYY-MM-DD")
		}
		end = t.AddDate(0, 0, 1)
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, errors.New("to date must not be before from date")
	}
	if end.After(start.AddDate(0, 0, MaxRangeDays)) {
		return time.Time{}, time.Time{}, fmt.Errorf("date range must not exceed %d days", MaxRangeDays)
	}
	return start, end, nil
}
