package metro

import (
	"fmt"
	"math"
	"time"
)

const minutesPerDay = 24 * 60

// FractionOfDay converts a wall clock time into a fraction of a 24 hour day
func FractionOfDay(t time.Time) float64 {
	seconds := t.Hour()*3600 + t.Minute()*60 + t.Second()

	return float64(seconds) / float64(minutesPerDay*60)
}

// ParseClock parses "HH:MM" or "HH:MM:SS" into a fractional day
func ParseClock(clock string) (float64, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if parsed, err := time.Parse(layout, clock); err == nil {
			return FractionOfDay(parsed), nil
		}
	}

	return 0, fmt.Errorf("invalid clock time %q", clock)
}

// FormatClock renders a fractional day as HH:MM
func FormatClock(fraction float64) string {
	minutes := int(math.Round(fraction*minutesPerDay)) % minutesPerDay
	if minutes < 0 {
		minutes += minutesPerDay
	}

	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// MinutesBetween is the whole-minute span from one fractional day time to another,
// treating a negative span as wrapping past midnight
func MinutesBetween(from float64, to float64) int {
	minutes := int(math.Round((to - from) * minutesPerDay))
	if minutes < 0 {
		minutes += minutesPerDay
	}

	return minutes
}
