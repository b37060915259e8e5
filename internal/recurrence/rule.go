package recurrence

import (
	"fmt"
	"time"

	"lfmeet/internal/model"
)

// Selection is a human-facing recurrence choice as offered by the meeting
// form. Selections are date-dependent: the same rule renders differently
// against different anchor dates, and a selection list built for one anchor
// is invalid for another (the form resets to SelectNone on anchor change).
type Selection int

const (
	SelectNone Selection = iota
	SelectDaily
	SelectWeekly
	SelectWeekdays
	SelectMonthlyNth
	SelectMonthlyLast
)

// weekdaySet is Monday through Friday, the set SelectWeekdays generates.
var weekdaySet = []model.Weekday{
	model.Monday, model.Tuesday, model.Wednesday, model.Thursday, model.Friday,
}

// Generate turns a form selection plus its anchor date into the canonical
// recurrence descriptor. SelectNone yields nil (no recurrence).
func Generate(sel Selection, anchor time.Time) *model.Recurrence {
	switch sel {
	case SelectDaily:
		return &model.Recurrence{Kind: model.KindDaily, Interval: 1}
	case SelectWeekly:
		return &model.Recurrence{
			Kind:       model.KindWeekly,
			Interval:   1,
			WeeklyDays: []model.Weekday{Weekday(anchor)},
		}
	case SelectWeekdays:
		days := make([]model.Weekday, len(weekdaySet))
		copy(days, weekdaySet)
		return &model.Recurrence{
			Kind:       model.KindWeekly,
			Interval:   1,
			WeeklyDays: days,
		}
	case SelectMonthlyNth:
		return &model.Recurrence{
			Kind:           model.KindMonthly,
			Interval:       1,
			MonthlyWeek:    NthWeekdayOfMonth(anchor),
			MonthlyWeekday: Weekday(anchor),
		}
	case SelectMonthlyLast:
		return &model.Recurrence{
			Kind:           model.KindMonthly,
			Interval:       1,
			MonthlyWeek:    -1,
			MonthlyWeekday: Weekday(anchor),
		}
	default:
		return nil
	}
}

// Describe inverts Generate: given a rule and the anchor date that produced
// it, it recovers the form selection and a human label. It is only defined
// for (rule, anchor) pairs Generate could have produced.
//
// A weekly rule whose day set is exactly Monday–Friday maps back to
// SelectWeekdays even though a user could in principle assemble the same
// five-day set by hand; rendering that as "Every weekday" is intentional
// and covered by tests as a known non-bijection.
func Describe(rule *model.Recurrence, anchor time.Time) (Selection, string) {
	if rule == nil || rule.Kind == model.KindNone {
		return SelectNone, "Does not repeat"
	}

	switch rule.Kind {
	case model.KindDaily:
		return SelectDaily, "Daily"
	case model.KindWeekly:
		if isWeekdaySet(rule.WeeklyDays) {
			return SelectWeekdays, "Every weekday (Monday to Friday)"
		}
		return SelectWeekly, "Weekly on " + weekdayName(Weekday(anchor))
	case model.KindMonthly:
		name := weekdayName(rule.MonthlyWeekday)
		if rule.MonthlyWeek == -1 {
			return SelectMonthlyLast, "Monthly on the last " + name
		}
		return SelectMonthlyNth, fmt.Sprintf("Monthly on the %s %s", ordinal(rule.MonthlyWeek), name)
	default:
		return SelectNone, "Does not repeat"
	}
}

// Option is one selectable recurrence choice for a given anchor date.
type Option struct {
	Selection Selection
	Label     string
}

// Options builds the list of recurrence choices valid for the anchor date.
// The monthly "nth" choice is only offered when the anchor is the 1st–4th
// occurrence of its weekday, and the "last" choice only when the anchor is
// the final occurrence in its month; both can be offered at once.
func Options(anchor time.Time) []Option {
	day := weekdayName(Weekday(anchor))

	opts := []Option{
		{SelectNone, "Does not repeat"},
		{SelectDaily, "Daily"},
		{SelectWeekly, "Weekly on " + day},
		{SelectWeekdays, "Every weekday (Monday to Friday)"},
	}

	if nth := NthWeekdayOfMonth(anchor); nth <= 4 {
		opts = append(opts, Option{
			SelectMonthlyNth,
			fmt.Sprintf("Monthly on the %s %s", ordinal(nth), day),
		})
	}
	if IsLastWeekdayOfMonth(anchor) {
		opts = append(opts, Option{SelectMonthlyLast, "Monthly on the last " + day})
	}

	return opts
}

func isWeekdaySet(days []model.Weekday) bool {
	if len(days) != len(weekdaySet) {
		return false
	}
	seen := make(map[model.Weekday]bool, len(days))
	for _, d := range days {
		seen[d] = true
	}
	for _, d := range weekdaySet {
		if !seen[d] {
			return false
		}
	}
	return true
}

func ordinal(n int) string {
	switch n {
	case 1:
		return "1st"
	case 2:
		return "2nd"
	case 3:
		return "3rd"
	default:
		return fmt.Sprintf("%dth", n)
	}
}
