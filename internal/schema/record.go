package schema

import "time"

// legacyVersion tags first-generation records. The whole v1 branch of the
// normalizer is confined to the legacy*() helpers in normalize.go so it can
// be deleted in one pass once the migration off v1 completes.
const legacyVersion = "v1"

// Record is the raw upstream meeting record as served by the meeting
// service. Both record generations arrive through the same endpoint, so a
// single struct carries the union of their fields; Version tells them apart.
type Record struct {
	Version string `json:"version"`

	// Current-generation (v2) fields.
	UID                  string             `json:"uid,omitempty"`
	Title                string             `json:"title,omitempty"`
	Description          string             `json:"description,omitempty"`
	StartTime            time.Time          `json:"start_time,omitzero"`
	Duration             int                `json:"duration,omitempty"`
	Timezone             string             `json:"timezone,omitempty"`
	EarlyJoinTimeMinutes int                `json:"early_join_time_minutes,omitempty"`
	Recurrence           *RecurrenceRecord  `json:"recurrence,omitempty"`
	Occurrences          []OccurrenceRecord `json:"occurrences,omitempty"`
	ZoomConfig           *ZoomConfigRecord  `json:"zoom_config,omitempty"`
	JoinURL              string             `json:"join_url,omitempty"`
	Password             string             `json:"password,omitempty"`

	// Legacy (v1) fields.
	LegacyID           string `json:"id,omitempty"`
	Topic              string `json:"topic,omitempty"`
	Agenda             string `json:"agenda,omitempty"`
	AICompanionEnabled bool   `json:"ai_companion_enabled,omitempty"`
}

// RecurrenceRecord is the provider wire form of a recurrence pattern.
type RecurrenceRecord struct {
	// Type: 1=Daily, 2=Weekly, 3=Monthly.
	Type           int    `json:"type"`
	RepeatInterval int    `json:"repeat_interval"`
	// WeeklyDays is a comma-separated list of weekday codes ("2,4,6").
	WeeklyDays     string `json:"weekly_days,omitempty"`
	MonthlyWeek    int    `json:"monthly_week,omitempty"`
	MonthlyWeekDay int    `json:"monthly_week_day,omitempty"`
}

// OccurrenceRecord is one wire-form occurrence of a recurring meeting.
type OccurrenceRecord struct {
	OccurrenceID string    `json:"occurrence_id"`
	StartTime    time.Time `json:"start_time,omitzero"`
	Duration     int       `json:"duration,omitempty"`
	Title        string    `json:"title,omitempty"`
	Description  string    `json:"description,omitempty"`
}

// ZoomConfigRecord carries provider-specific configuration on v2 records.
type ZoomConfigRecord struct {
	MeetingID          string `json:"meeting_id,omitempty"`
	Passcode           string `json:"passcode,omitempty"`
	AICompanionEnabled bool   `json:"ai_companion_enabled"`
}
