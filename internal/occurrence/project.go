// Package occurrence selects the single "current" occurrence of a meeting.
//
// It performs no recurrence expansion: occurrence materialization is the
// meeting service's job, and the projector only picks from what it is given.
package occurrence

import (
	"time"

	"lfmeet/internal/model"
)

// SelectCurrentOrNext returns the occurrence a viewer should see right now:
// the first occurrence in the (pre-sorted, ascending by start time) list
// that has not yet ended.
//
// Returns nil when every listed occurrence has already ended — the meeting
// is then being viewed purely as a past meeting, and callers may fall back
// to the meeting's own start time for display only, never for join
// eligibility. Also returns nil for a recurring meeting with no occurrence
// list at all ("no data yet", not "meeting ended").
//
// A non-recurring meeting with no occurrence list stands in for its own
// single occurrence, which is synthesized from the meeting's fields.
//
// The list is deliberately not sorted here: callers supply it ordered, and
// re-sorting would mask upstream ordering bugs.
func SelectCurrentOrNext(m model.Meeting, occurrences []model.Occurrence, now time.Time) *model.Occurrence {
	if len(occurrences) > 0 {
		for i := range occurrences {
			occ := occurrences[i]
			if occ.StartTime.IsZero() {
				continue
			}
			end := occ.StartTime.Add(time.Duration(durationOf(m, occ)) * time.Minute)
			if !end.Before(now) {
				return &occ
			}
		}
		return nil
	}

	if m.Recurrence != nil {
		return nil
	}

	return &model.Occurrence{
		StartTime:       m.StartTime,
		DurationMinutes: m.DurationMinutes,
	}
}

// durationOf resolves an occurrence's effective duration, falling back to
// the parent meeting's when the occurrence carries no override.
func durationOf(m model.Meeting, occ model.Occurrence) int {
	if occ.DurationMinutes > 0 {
		return occ.DurationMinutes
	}
	return m.DurationMinutes
}
