package sqlite

import (
	"time"
)

// timeLayout is a fixed-width UTC layout so that lexicographic ordering
// of the stored text matches chronological ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// FormatTimeForDB formats a time.Time value for database storage
func FormatTimeForDB(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// ParseTimeFromDB parses a stored time string from the database
func ParseTimeFromDB(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}
