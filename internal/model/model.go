package model

import "time"

// Weekday is a day-of-week code as used by the meeting provider:
// 1=Sunday … 7=Saturday. This differs from time.Weekday (0=Sunday),
// so conversions live in internal/recurrence.
type Weekday int

const (
	Sunday Weekday = iota + 1
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// RecurrenceKind enumerates the supported recurrence frequencies.
type RecurrenceKind int

const (
	KindNone RecurrenceKind = iota
	KindDaily
	KindWeekly
	KindMonthly
)

// Recurrence is the canonical, provider-agnostic recurrence descriptor.
//
// Exactly the fields relevant to Kind are populated:
//   - KindDaily:   Interval only.
//   - KindWeekly:  Interval + WeeklyDays.
//   - KindMonthly: Interval + MonthlyWeek + MonthlyWeekday.
//
// Interval is always >= 1 (and always 1 in this system).
type Recurrence struct {
	Kind     RecurrenceKind
	Interval int

	// WeeklyDays are the weekdays a weekly meeting repeats on, ascending.
	WeeklyDays []Weekday

	// MonthlyWeek is the week-of-month for monthly meetings:
	// 1..4, or -1 for "last".
	MonthlyWeek int

	// MonthlyWeekday is the weekday a monthly meeting repeats on.
	MonthlyWeekday Weekday
}

// Meeting is the canonical read-only view of a meeting record,
// produced by internal/schema from either record generation.
type Meeting struct {
	// Identifier is the opaque join key: a legacy numeric id for v1
	// records, otherwise the v2 UID.
	Identifier string

	Title       string
	Description string

	// StartTime is the scheduled start instant; Timezone names the IANA
	// zone the meeting was scheduled in (a display concern only).
	StartTime time.Time
	Timezone  string

	DurationMinutes int

	// EarlyJoinMinutes is how long before the start time joining opens.
	// Normalized into [10,60] upstream; defaults to 10.
	EarlyJoinMinutes int

	// Recurrence is nil for one-off meetings.
	Recurrence *Recurrence

	AICompanion bool
	Legacy      bool

	Password string
	JoinURL  string
}

// Occurrence is one concrete instance of a (possibly recurring) meeting.
type Occurrence struct {
	// OccurrenceID is empty for non-recurring meetings, where the meeting
	// itself stands in for its single occurrence.
	OccurrenceID string

	StartTime time.Time

	// DurationMinutes overrides the parent meeting's duration when > 0.
	DurationMinutes int

	// Title and Description override the parent's when non-empty.
	Title       string
	Description string
}

// JoinIdentity is the identity attached to an outbound join link.
// It is never persisted.
type JoinIdentity struct {
	Name  string
	Email string

	// Organization is only ever set for guests; authenticated users'
	// profile organization is never appended to the display name.
	Organization string

	Guest bool
}
