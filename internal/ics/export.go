// Package ics builds the "Add to calendar" download for a meeting: one
// VCALENDAR with a single VEVENT carrying the meeting's schedule, its
// recurrence rule when present, and the provider join link.
package ics

import (
	"errors"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	appLog "lfmeet/internal/log"
	"lfmeet/internal/recurrence"
	"lfmeet/internal/schema"
)

// Export renders the given meeting record as an iCalendar payload.
//
// now supplies the DTSTAMP so output stays deterministic under test. The
// display timezone comes from the record itself; a record without a start
// time cannot be exported.
func Export(rec schema.Record, now time.Time) ([]byte, error) {
	m := schema.Normalize(rec)

	if m.StartTime.IsZero() {
		return nil, errors.New("ics: meeting has no start time")
	}

	uid := m.Identifier
	if uid == "" {
		// A record should always carry an identifier; generate one rather
		// than emitting an invalid VEVENT if it does not.
		uid = uuid.NewString()
		appLog.Debug("ics export: record without identifier, generated UID", "uid", uid)
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//lfmeet//meeting export//EN")

	// Timestamps are emitted in UTC form; the record's display timezone is
	// a portal rendering concern the calendar client does not need.
	ev := cal.AddEvent(uid)
	ev.SetDtStampTime(now.UTC())
	ev.SetStartAt(m.StartTime)
	ev.SetEndAt(m.StartTime.Add(time.Duration(m.DurationMinutes) * time.Minute))

	if m.Title != "" {
		ev.SetSummary(m.Title)
	}
	if m.Description != "" {
		ev.SetDescription(m.Description)
	}
	if m.JoinURL != "" {
		ev.SetURL(m.JoinURL)
	}

	if m.Recurrence != nil {
		rr, err := recurrence.RRule(m.Recurrence)
		if err != nil {
			return nil, err
		}
		if rr != "" {
			ev.SetProperty(ical.ComponentPropertyRrule, rr)
		}
	}

	return []byte(cal.Serialize()), nil
}
