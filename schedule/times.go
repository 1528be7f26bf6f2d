package schedule

import (
	"fmt"
	"strings"
	"time"
)

// Convert12To24 converts a 12-hour clock time like "1:05 PM" to 24-hour
// "HH:MM". The period marker is case-insensitive.
func Convert12To24(s string) (string, error) {
	normalized := strings.Join(strings.Fields(strings.ToUpper(s)), " ")
	t, err := time.Parse("3:04 PM", normalized)
	if err != nil {
		return "", fmt.Errorf("parsing clock time %q: %v", s, err)
	}
	return t.Format("15:04"), nil
}

// ParseMonthDayYear parses a civil date in "M/D/YYYY" form. Zero padding
// is accepted but not required.
func ParseMonthDayYear(s string) (time.Time, error) {
	return time.Parse("1/2/2006", strings.TrimSpace(s))
}

var weekdayByName = map[string]time.Weekday{
	"Sunday":    time.Sunday,
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
}

// FirstOccurrenceOn returns the first date on or after termStart whose
// weekday matches day, scanning at most seven days. Unknown day names
// yield nil.
func FirstOccurrenceOn(termStart time.Time, day string) *time.Time {
	target, ok := weekdayByName[day]
	if !ok {
		return nil
	}
	d := termStart
	for i := 0; i < 7; i++ {
		if d.Weekday() == target {
			match := d
			return &match
		}
		d = d.AddDate(0, 0, 1)
	}
	return nil
}

// CombineDateTime combines a civil date with a 24-hour "HH:MM" wall time.
// A blank or malformed time falls back to midnight so that serialization
// stays total.
func CombineDateTime(date time.Time, hhmm string) time.Time {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location())
}
