package recurrence

import (
	"errors"

	"github.com/teambition/rrule-go"

	"lfmeet/internal/model"
)

// rruleWeekdays maps provider weekday codes (1=Sunday…7=Saturday) onto
// rrule-go weekday values.
var rruleWeekdays = map[model.Weekday]rrule.Weekday{
	model.Sunday:    rrule.SU,
	model.Monday:    rrule.MO,
	model.Tuesday:   rrule.TU,
	model.Wednesday: rrule.WE,
	model.Thursday:  rrule.TH,
	model.Friday:    rrule.FR,
	model.Saturday:  rrule.SA,
}

// RRule renders the canonical descriptor as an RFC 5545 RRULE value
// (without a DTSTART part), e.g. "FREQ=WEEKLY;INTERVAL=1;BYDAY=MO,WE".
// It is consumed by the ICS export; a nil rule yields an empty string.
func RRule(rule *model.Recurrence) (string, error) {
	if rule == nil || rule.Kind == model.KindNone {
		return "", nil
	}

	interval := rule.Interval
	if interval < 1 {
		interval = 1
	}

	opt := rrule.ROption{Interval: interval}

	switch rule.Kind {
	case model.KindDaily:
		opt.Freq = rrule.DAILY
	case model.KindWeekly:
		opt.Freq = rrule.WEEKLY
		for _, d := range rule.WeeklyDays {
			wd, ok := rruleWeekdays[d]
			if !ok {
				return "", errors.New("recurrence: invalid weekly day code")
			}
			opt.Byweekday = append(opt.Byweekday, wd)
		}
		if len(opt.Byweekday) == 0 {
			return "", errors.New("recurrence: weekly rule without days")
		}
	case model.KindMonthly:
		opt.Freq = rrule.MONTHLY
		wd, ok := rruleWeekdays[rule.MonthlyWeekday]
		if !ok {
			return "", errors.New("recurrence: invalid monthly weekday code")
		}
		switch {
		case rule.MonthlyWeek == -1:
			opt.Byweekday = []rrule.Weekday{wd.Nth(-1)}
		case rule.MonthlyWeek >= 1 && rule.MonthlyWeek <= 4:
			opt.Byweekday = []rrule.Weekday{wd.Nth(rule.MonthlyWeek)}
		default:
			return "", errors.New("recurrence: invalid monthly week")
		}
	default:
		return "", errors.New("recurrence: unknown kind")
	}

	// NewRRule validates the option set; serialization itself never fails.
	r, err := rrule.NewRRule(opt)
	if err != nil {
		return "", err
	}
	return r.OrigOptions.RRuleString(), nil
}
