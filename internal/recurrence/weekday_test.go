package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"lfmeet/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
}

func TestWeekday(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want model.Weekday
	}{
		{"sunday", date(2026, time.August, 23), model.Sunday},
		{"monday", date(2026, time.August, 24), model.Monday},
		{"tuesday", date(2026, time.August, 11), model.Tuesday},
		{"saturday", date(2026, time.August, 22), model.Saturday},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Weekday(tt.t))
		})
	}
}

func TestNthWeekdayOfMonth(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want int
	}{
		{"first", date(2026, time.August, 2), 1},
		{"second", date(2026, time.August, 11), 2},
		{"fourth", date(2026, time.August, 23), 4},
		{"fifth", date(2026, time.August, 30), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NthWeekdayOfMonth(tt.t))
		})
	}
}

func TestIsLastWeekdayOfMonth(t *testing.T) {
	// Aug 30, 2026 is the last Sunday of August; Aug 23 is not.
	assert.True(t, IsLastWeekdayOfMonth(date(2026, time.August, 30)))
	assert.False(t, IsLastWeekdayOfMonth(date(2026, time.August, 23)))

	// Feb 2027 (28 days): the 22nd is the last Monday.
	assert.True(t, IsLastWeekdayOfMonth(date(2027, time.February, 22)))
	assert.False(t, IsLastWeekdayOfMonth(date(2027, time.February, 15)))
}

// A date that is the last occurrence of its weekday is always the 4th or
// 5th occurrence; walking a full year keeps the two functions honest
// against each other.
func TestLastWeekdayPositionRange(t *testing.T) {
	d := date(2026, time.January, 1)
	for d.Year() == 2026 {
		if IsLastWeekdayOfMonth(d) {
			nth := NthWeekdayOfMonth(d)
			assert.Contains(t, []int{4, 5}, nth, "date %s", d.Format("2006-01-02"))
		}
		d = d.AddDate(0, 0, 1)
	}
}
