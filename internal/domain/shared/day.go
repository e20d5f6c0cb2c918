package shared

import "time"

// DateLayout is the calendar date format used across the API
const DateLayout = "2006-01-02"

// DayRange returns the half-open interval [start, end) covering the calendar
// day of t in loc. DST transitions are handled by the calendar arithmetic.
func DayRange(t time.Time, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.Local
	}
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

// ParseDay parses a YYYY-MM-DD date as midnight in loc
func ParseDay(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(DateLayout, value, loc)
}
