package schema

import (
	"strconv"
	"strings"

	"lfmeet/internal/model"
)

// Normalize masks the two record generations behind the canonical Meeting
// view. Every field resolution is total: absent data resolves to an empty
// string, zero, or false — never to a panic or a leaked nil.
func Normalize(r Record) model.Meeting {
	m := model.Meeting{
		Identifier:       Identifier(r),
		Title:            Title(r, nil),
		Description:      Description(r, nil),
		StartTime:        r.StartTime,
		Timezone:         r.Timezone,
		DurationMinutes:  r.Duration,
		EarlyJoinMinutes: earlyJoinMinutes(r),
		Recurrence:       normalizeRecurrence(r.Recurrence),
		AICompanion:      AICompanion(r),
		Legacy:           IsLegacy(r),
		Password:         r.Password,
		JoinURL:          r.JoinURL,
	}
	return m
}

// Occurrences converts the record's wire occurrences into model form,
// preserving upstream order. Callers are expected to receive them sorted
// by start time; no re-sorting happens here.
func Occurrences(r Record) []model.Occurrence {
	if len(r.Occurrences) == 0 {
		return nil
	}
	out := make([]model.Occurrence, 0, len(r.Occurrences))
	for _, o := range r.Occurrences {
		out = append(out, model.Occurrence{
			OccurrenceID:    o.OccurrenceID,
			StartTime:       o.StartTime,
			DurationMinutes: o.Duration,
			Title:           o.Title,
			Description:     o.Description,
		})
	}
	return out
}

// IsLegacy reports whether the record belongs to the first generation.
func IsLegacy(r Record) bool {
	return r.Version == legacyVersion
}

// Identifier resolves the opaque join key: the legacy numeric id when the
// record is legacy and carries one, otherwise the v2 UID.
func Identifier(r Record) string {
	if IsLegacy(r) {
		if id := legacyIdentifier(r); id != "" {
			return id
		}
	}
	return r.UID
}

// Title resolves the display title: occurrence-level title first, then the
// v2 title, then the legacy topic.
func Title(r Record, occ *OccurrenceRecord) string {
	if occ != nil && occ.Title != "" {
		return occ.Title
	}
	if r.Title != "" {
		return r.Title
	}
	return legacyTitle(r)
}

// Description resolves the display description: occurrence-level
// description first, then the v2 description, then the legacy agenda.
func Description(r Record, occ *OccurrenceRecord) string {
	if occ != nil && occ.Description != "" {
		return occ.Description
	}
	if r.Description != "" {
		return r.Description
	}
	return legacyDescription(r)
}

// AICompanion resolves the AI companion flag: the v2 nested flag when the
// record carries provider config, else the legacy flat flag, else false.
func AICompanion(r Record) bool {
	if r.ZoomConfig != nil {
		return r.ZoomConfig.AICompanionEnabled
	}
	return legacyAICompanion(r)
}

// Legacy field access is isolated below so the v1 branch is trivially
// deletable once migration completes.

func legacyIdentifier(r Record) string  { return r.LegacyID }
func legacyTitle(r Record) string       { return r.Topic }
func legacyDescription(r Record) string { return r.Agenda }
func legacyAICompanion(r Record) bool   { return r.AICompanionEnabled }

// earlyJoinMinutes clamps the record's early-join window into the accepted
// [10,60] range, defaulting to 10 when unset. This is the single place the
// bound is enforced; the eligibility evaluator trusts its input.
func earlyJoinMinutes(r Record) int {
	m := r.EarlyJoinTimeMinutes
	switch {
	case m <= 0:
		return 10
	case m < 10:
		return 10
	case m > 60:
		return 60
	default:
		return m
	}
}

// normalizeRecurrence converts the provider wire recurrence into the
// canonical descriptor. Unknown types and malformed day lists degrade to
// nil rather than erroring: a record with an unusable recurrence is shown
// as a one-off meeting, which is the safe display default.
func normalizeRecurrence(rec *RecurrenceRecord) *model.Recurrence {
	if rec == nil {
		return nil
	}

	interval := rec.RepeatInterval
	if interval < 1 {
		interval = 1
	}

	switch rec.Type {
	case 1:
		return &model.Recurrence{Kind: model.KindDaily, Interval: interval}
	case 2:
		days := parseWeeklyDays(rec.WeeklyDays)
		if len(days) == 0 {
			return nil
		}
		return &model.Recurrence{
			Kind:       model.KindWeekly,
			Interval:   interval,
			WeeklyDays: days,
		}
	case 3:
		wd := model.Weekday(rec.MonthlyWeekDay)
		if wd < model.Sunday || wd > model.Saturday {
			return nil
		}
		week := rec.MonthlyWeek
		if week != -1 && (week < 1 || week > 4) {
			return nil
		}
		return &model.Recurrence{
			Kind:           model.KindMonthly,
			Interval:       interval,
			MonthlyWeek:    week,
			MonthlyWeekday: wd,
		}
	default:
		return nil
	}
}

// parseWeeklyDays parses the provider's comma-separated weekday code list
// ("2,4,6"), dropping blanks and out-of-range codes.
func parseWeeklyDays(s string) []model.Weekday {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	days := make([]model.Weekday, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			continue
		}
		d := model.Weekday(n)
		if d < model.Sunday || d > model.Saturday {
			continue
		}
		days = append(days, d)
	}
	if len(days) == 0 {
		return nil
	}
	return days
}
