package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lfmeet/internal/model"
)

func TestNormalizeLegacyRecord(t *testing.T) {
	rec := Record{
		Version:  "v1",
		LegacyID: "42",
		Topic:    "Sync",
		Agenda:   "notes",
	}

	m := Normalize(rec)
	assert.Equal(t, "42", m.Identifier)
	assert.Equal(t, "Sync", m.Title)
	assert.Equal(t, "notes", m.Description)
	assert.True(t, m.Legacy)
	assert.False(t, m.AICompanion)
}

func TestNormalizeCurrentRecord(t *testing.T) {
	start := time.Date(2026, time.September, 1, 16, 0, 0, 0, time.UTC)
	rec := Record{
		Version:              "v2",
		UID:                  "abc-123",
		Title:                "TAC Call",
		Description:          "Monthly TAC sync",
		StartTime:            start,
		Duration:             60,
		Timezone:             "America/New_York",
		EarlyJoinTimeMinutes: 15,
		ZoomConfig:           &ZoomConfigRecord{AICompanionEnabled: true},
		JoinURL:              "https://zoom.example/j/987",
		Password:             "secret",
	}

	m := Normalize(rec)
	assert.Equal(t, "abc-123", m.Identifier)
	assert.Equal(t, "TAC Call", m.Title)
	assert.Equal(t, "Monthly TAC sync", m.Description)
	assert.Equal(t, start, m.StartTime)
	assert.Equal(t, 60, m.DurationMinutes)
	assert.Equal(t, 15, m.EarlyJoinMinutes)
	assert.True(t, m.AICompanion)
	assert.False(t, m.Legacy)
	assert.Equal(t, "https://zoom.example/j/987", m.JoinURL)
}

// A legacy record without its legacy id still resolves an identifier via
// the v2 UID; every canonical field is total.
func TestIdentifierFallsBackToUID(t *testing.T) {
	rec := Record{Version: "v1", UID: "uid-only"}
	assert.Equal(t, "uid-only", Identifier(rec))
}

func TestTitleDescriptionPriority(t *testing.T) {
	rec := Record{
		Version:     "v2",
		Title:       "Base title",
		Description: "Base description",
		Topic:       "Legacy topic",
		Agenda:      "Legacy agenda",
	}

	occ := &OccurrenceRecord{Title: "Override title", Description: "Override description"}
	assert.Equal(t, "Override title", Title(rec, occ))
	assert.Equal(t, "Override description", Description(rec, occ))

	assert.Equal(t, "Base title", Title(rec, nil))
	assert.Equal(t, "Base description", Description(rec, nil))

	// With no v2 fields, the legacy spellings are the last resort.
	legacy := Record{Version: "v1", Topic: "Legacy topic", Agenda: "Legacy agenda"}
	assert.Equal(t, "Legacy topic", Title(legacy, nil))
	assert.Equal(t, "Legacy agenda", Description(legacy, nil))

	// Fully empty record resolves to empty strings, never panics.
	assert.Equal(t, "", Title(Record{}, nil))
	assert.Equal(t, "", Description(Record{}, nil))
}

func TestAICompanionPriority(t *testing.T) {
	// Nested flag wins even when false and the flat flag is true.
	rec := Record{
		ZoomConfig:         &ZoomConfigRecord{AICompanionEnabled: false},
		AICompanionEnabled: true,
	}
	assert.False(t, AICompanion(rec))

	// No provider config: flat legacy flag applies.
	assert.True(t, AICompanion(Record{AICompanionEnabled: true}))
	assert.False(t, AICompanion(Record{}))
}

func TestEarlyJoinClamp(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{"unset", 0, 10},
		{"below range", 5, 10},
		{"in range", 30, 30},
		{"above range", 120, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Normalize(Record{EarlyJoinTimeMinutes: tt.in})
			assert.Equal(t, tt.want, m.EarlyJoinMinutes)
		})
	}
}

func TestNormalizeRecurrence(t *testing.T) {
	weekly := Normalize(Record{
		Recurrence: &RecurrenceRecord{Type: 2, RepeatInterval: 1, WeeklyDays: "2, 4"},
	})
	require.NotNil(t, weekly.Recurrence)
	assert.Equal(t, model.KindWeekly, weekly.Recurrence.Kind)
	assert.Equal(t, []model.Weekday{model.Monday, model.Wednesday}, weekly.Recurrence.WeeklyDays)

	monthly := Normalize(Record{
		Recurrence: &RecurrenceRecord{Type: 3, MonthlyWeek: -1, MonthlyWeekDay: 3},
	})
	require.NotNil(t, monthly.Recurrence)
	assert.Equal(t, model.KindMonthly, monthly.Recurrence.Kind)
	assert.Equal(t, -1, monthly.Recurrence.MonthlyWeek)
	assert.Equal(t, model.Tuesday, monthly.Recurrence.MonthlyWeekday)
	assert.Equal(t, 1, monthly.Recurrence.Interval, "zero interval defaults to 1")

	// Malformed wire recurrences degrade to a one-off meeting.
	assert.Nil(t, Normalize(Record{Recurrence: &RecurrenceRecord{Type: 9}}).Recurrence)
	assert.Nil(t, Normalize(Record{Recurrence: &RecurrenceRecord{Type: 2, WeeklyDays: "x,y"}}).Recurrence)
	assert.Nil(t, Normalize(Record{Recurrence: &RecurrenceRecord{Type: 3, MonthlyWeek: 7, MonthlyWeekDay: 2}}).Recurrence)
}

func TestOccurrencesConversion(t *testing.T) {
	start := time.Date(2026, time.September, 1, 16, 0, 0, 0, time.UTC)
	rec := Record{
		Occurrences: []OccurrenceRecord{
			{OccurrenceID: "1756742400", StartTime: start, Duration: 30, Title: "Special"},
			{OccurrenceID: "1757347200", StartTime: start.AddDate(0, 0, 7)},
		},
	}

	occs := Occurrences(rec)
	require.Len(t, occs, 2)
	assert.Equal(t, "1756742400", occs[0].OccurrenceID)
	assert.Equal(t, 30, occs[0].DurationMinutes)
	assert.Equal(t, "Special", occs[0].Title)
	assert.Equal(t, start.AddDate(0, 0, 7), occs[1].StartTime)

	assert.Nil(t, Occurrences(Record{}))
}
