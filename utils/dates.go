// utils/dates.go
package utils

import "time"

// BeginningOfDay truncates an instant to midnight in its own location, for
// date-only comparisons.
func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
