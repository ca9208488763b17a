package util

import (
	"time"
)

// ClockOnDate places the wall clock of sourceTime on the calendar day of date
func ClockOnDate(date time.Time, sourceTime time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), sourceTime.Hour(), sourceTime.Minute(), 0, 0, date.Location())
}
