package footprint

import (
	"fmt"
	"time"
)

// DateKeyLayout is the canonical YYYY-MM-DD bucket key format.
const DateKeyLayout = "2006-01-02"

// ToDateKey returns the UTC date key for t.
func ToDateKey(t time.Time) string {
	return t.UTC().Format(DateKeyLayout)
}

// ParseDateKey parses a YYYY-MM-DD key into midnight UTC of that date.
func ParseDateKey(key string) (time.Time, error) {
	t, err := time.Parse(DateKeyLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date key %q: %w", key, err)
	}
	return t, nil
}

// startOfDay truncates t to midnight UTC.
func startOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// weekdayLabel returns a three letter English weekday name, independent of locale.
func weekdayLabel(t time.Time) string {
	return t.Weekday().String()[:3]
}
