package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lfmeet/internal/model"
)

// anchorTuesday is the 2nd Tuesday of August 2026.
var anchorTuesday = date(2026, time.August, 11)

// anchorLastTuesday is the 4th and last Tuesday of August 2026.
var anchorLastTuesday = date(2026, time.August, 25)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name   string
		sel    Selection
		anchor time.Time
		want   *model.Recurrence
	}{
		{
			name:   "none",
			sel:    SelectNone,
			anchor: anchorTuesday,
			want:   nil,
		},
		{
			name:   "daily",
			sel:    SelectDaily,
			anchor: anchorTuesday,
			want:   &model.Recurrence{Kind: model.KindDaily, Interval: 1},
		},
		{
			name:   "weekly on anchor weekday",
			sel:    SelectWeekly,
			anchor: anchorTuesday,
			want: &model.Recurrence{
				Kind:       model.KindWeekly,
				Interval:   1,
				WeeklyDays: []model.Weekday{model.Tuesday},
			},
		},
		{
			name:   "every weekday",
			sel:    SelectWeekdays,
			anchor: anchorTuesday,
			want: &model.Recurrence{
				Kind:     model.KindWeekly,
				Interval: 1,
				WeeklyDays: []model.Weekday{
					model.Monday, model.Tuesday, model.Wednesday,
					model.Thursday, model.Friday,
				},
			},
		},
		{
			name:   "monthly nth",
			sel:    SelectMonthlyNth,
			anchor: anchorTuesday,
			want: &model.Recurrence{
				Kind:           model.KindMonthly,
				Interval:       1,
				MonthlyWeek:    2,
				MonthlyWeekday: model.Tuesday,
			},
		},
		{
			name:   "monthly last",
			sel:    SelectMonthlyLast,
			anchor: anchorLastTuesday,
			want: &model.Recurrence{
				Kind:           model.KindMonthly,
				Interval:       1,
				MonthlyWeek:    -1,
				MonthlyWeekday: model.Tuesday,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Generate(tt.sel, tt.anchor))
		})
	}
}

// Every selection except SelectWeekly round-trips through Generate and
// Describe. SelectWeekly on a weekday anchor still round-trips; the one
// intentional collision is covered separately below.
func TestGenerateDescribeRoundTrip(t *testing.T) {
	selections := []Selection{
		SelectNone, SelectDaily, SelectWeekly, SelectWeekdays,
		SelectMonthlyNth, SelectMonthlyLast,
	}

	for _, sel := range selections {
		rule := Generate(sel, anchorLastTuesday)
		got, _ := Describe(rule, anchorLastTuesday)
		assert.Equal(t, sel, got, "selection %d", sel)
	}
}

// A weekly rule whose day set happens to be exactly Monday–Friday renders
// as "Every weekday" even if it was never produced by SelectWeekdays. This
// non-bijection is intentional and must be preserved.
func TestDescribeWeekdaySetCollision(t *testing.T) {
	rule := &model.Recurrence{
		Kind:     model.KindWeekly,
		Interval: 1,
		// Deliberately out of order: set equality, not slice equality.
		WeeklyDays: []model.Weekday{
			model.Friday, model.Monday, model.Wednesday,
			model.Tuesday, model.Thursday,
		},
	}

	sel, label := Describe(rule, anchorTuesday)
	assert.Equal(t, SelectWeekdays, sel)
	assert.Equal(t, "Every weekday (Monday to Friday)", label)
}

func TestDescribeLabels(t *testing.T) {
	tests := []struct {
		name   string
		sel    Selection
		anchor time.Time
		label  string
	}{
		{"none", SelectNone, anchorTuesday, "Does not repeat"},
		{"daily", SelectDaily, anchorTuesday, "Daily"},
		{"weekly", SelectWeekly, anchorTuesday, "Weekly on Tuesday"},
		{"monthly nth", SelectMonthlyNth, anchorTuesday, "Monthly on the 2nd Tuesday"},
		{"monthly last", SelectMonthlyLast, anchorLastTuesday, "Monthly on the last Tuesday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := Generate(tt.sel, tt.anchor)
			_, label := Describe(rule, tt.anchor)
			assert.Equal(t, tt.label, label)
		})
	}
}

func TestOptionsAvailability(t *testing.T) {
	// 2nd Tuesday: nth choice offered, last choice not.
	sels := selectionsOf(Options(anchorTuesday))
	assert.Contains(t, sels, SelectMonthlyNth)
	assert.NotContains(t, sels, SelectMonthlyLast)

	// 4th and last Tuesday: both monthly choices offered.
	sels = selectionsOf(Options(anchorLastTuesday))
	assert.Contains(t, sels, SelectMonthlyNth)
	assert.Contains(t, sels, SelectMonthlyLast)

	// 5th Sunday (Aug 30, 2026): only the "last" monthly choice remains.
	sels = selectionsOf(Options(date(2026, time.August, 30)))
	assert.NotContains(t, sels, SelectMonthlyNth)
	assert.Contains(t, sels, SelectMonthlyLast)
}

func selectionsOf(opts []Option) []Selection {
	out := make([]Selection, 0, len(opts))
	for _, o := range opts {
		out = append(out, o.Selection)
	}
	return out
}

func TestRRule(t *testing.T) {
	daily, err := RRule(&model.Recurrence{Kind: model.KindDaily, Interval: 1})
	require.NoError(t, err)
	assert.Contains(t, daily, "FREQ=DAILY")

	weekly, err := RRule(&model.Recurrence{
		Kind:       model.KindWeekly,
		Interval:   1,
		WeeklyDays: []model.Weekday{model.Monday, model.Wednesday},
	})
	require.NoError(t, err)
	assert.Contains(t, weekly, "FREQ=WEEKLY")
	assert.Contains(t, weekly, "MO")
	assert.Contains(t, weekly, "WE")

	monthly, err := RRule(&model.Recurrence{
		Kind:           model.KindMonthly,
		Interval:       1,
		MonthlyWeek:    2,
		MonthlyWeekday: model.Tuesday,
	})
	require.NoError(t, err)
	assert.Contains(t, monthly, "FREQ=MONTHLY")
	assert.Contains(t, monthly, "2TU")

	last, err := RRule(&model.Recurrence{
		Kind:           model.KindMonthly,
		Interval:       1,
		MonthlyWeek:    -1,
		MonthlyWeekday: model.Friday,
	})
	require.NoError(t, err)
	assert.Contains(t, last, "-1FR")
}

func TestRRuleDegenerateInputs(t *testing.T) {
	s, err := RRule(nil)
	require.NoError(t, err)
	assert.Empty(t, s)

	_, err = RRule(&model.Recurrence{Kind: model.KindWeekly, Interval: 1})
	assert.Error(t, err, "weekly rule without days")

	_, err = RRule(&model.Recurrence{
		Kind:           model.KindMonthly,
		Interval:       1,
		MonthlyWeek:    6,
		MonthlyWeekday: model.Tuesday,
	})
	assert.Error(t, err, "monthly week out of range")
}
