package recurrence

import (
	"time"

	"lfmeet/internal/model"
)

// Weekday converts a date's calendar weekday into the provider's
// 1=Sunday…7=Saturday code.
func Weekday(t time.Time) model.Weekday {
	return model.Weekday(int(t.Weekday()) + 1)
}

// NthWeekdayOfMonth counts how many times t's weekday has occurred in its
// month up to and including t. A date in the 29th..31st can be the 5th
// occurrence; option availability (see Options) only offers the "nth"
// monthly selection for positions 1..4.
func NthWeekdayOfMonth(t time.Time) int {
	return (t.Day()-1)/7 + 1
}

// IsLastWeekdayOfMonth reports whether t is the final occurrence of its
// weekday within its month, i.e. adding 7 days crosses into the next month.
func IsLastWeekdayOfMonth(t time.Time) bool {
	return t.AddDate(0, 0, 7).Month() != t.Month()
}

// weekdayName returns the English day name for a provider weekday code.
func weekdayName(d model.Weekday) string {
	switch d {
	case model.Sunday:
		return "Sunday"
	case model.Monday:
		return "Monday"
	case model.Tuesday:
		return "Tuesday"
	case model.Wednesday:
		return "Wednesday"
	case model.Thursday:
		return "Thursday"
	case model.Friday:
		return "Friday"
	case model.Saturday:
		return "Saturday"
	default:
		return ""
	}
}
