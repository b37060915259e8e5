package ics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lfmeet/internal/schema"
)

var exportNow = time.Date(2026, time.August, 23, 12, 0, 0, 0, time.UTC)

func TestExportRecurringMeeting(t *testing.T) {
	rec := schema.Record{
		Version:     "v2",
		UID:         "abc-123",
		Title:       "TAC Call",
		Description: "Monthly TAC sync",
		StartTime:   time.Date(2026, time.September, 8, 16, 0, 0, 0, time.UTC),
		Duration:    60,
		JoinURL:     "https://zoom.example/j/987",
		Recurrence: &schema.RecurrenceRecord{
			Type: 2, RepeatInterval: 1, WeeklyDays: "3",
		},
	}

	payload, err := Export(rec, exportNow)
	require.NoError(t, err)

	s := string(payload)
	assert.Contains(t, s, "BEGIN:VCALENDAR")
	assert.Contains(t, s, "BEGIN:VEVENT")
	assert.Contains(t, s, "UID:abc-123")
	assert.Contains(t, s, "SUMMARY:TAC Call")
	assert.Contains(t, s, "RRULE:")
	assert.Contains(t, s, "FREQ=WEEKLY")
	assert.Contains(t, s, "https://zoom.example/j/987")
}

func TestExportLegacyOneOff(t *testing.T) {
	rec := schema.Record{
		Version:   "v1",
		LegacyID:  "42",
		Topic:     "Sync",
		Agenda:    "notes",
		StartTime: time.Date(2026, time.September, 1, 9, 0, 0, 0, time.UTC),
		Duration:  30,
	}

	payload, err := Export(rec, exportNow)
	require.NoError(t, err)

	s := string(payload)
	assert.Contains(t, s, "UID:42", "legacy id is the identifier")
	assert.Contains(t, s, "SUMMARY:Sync")
	assert.NotContains(t, s, "RRULE", "one-off meetings carry no recurrence rule")
}

func TestExportRequiresStartTime(t *testing.T) {
	_, err := Export(schema.Record{UID: "abc"}, exportNow)
	assert.Error(t, err)
}

// A record without any identifier still exports with a generated UID.
func TestExportGeneratesUIDWhenMissing(t *testing.T) {
	rec := schema.Record{
		StartTime: time.Date(2026, time.September, 1, 9, 0, 0, 0, time.UTC),
		Duration:  30,
	}

	payload, err := Export(rec, exportNow)
	require.NoError(t, err)
	assert.Contains(t, string(payload), "UID:")
}
