// Package join decides whether an occurrence may be joined right now and
// builds the outbound provider join link.
//
// Everything here is pure computation over explicit inputs; the wall clock
// is always passed in, so callers can re-evaluate on a timer without any
// shared state.
package join

import (
	"fmt"
	"time"

	"lfmeet/internal/model"
)

// graceMinutes is the span after an occurrence's scheduled end during which
// joining remains permitted. Fixed system constant, not configuration.
const graceMinutes = 40

// DefaultEarlyJoinMinutes is the early-join window applied when a meeting
// does not specify one.
const DefaultEarlyJoinMinutes = 10

// Verdict pairs the eligibility boolean with its canonical user-facing
// message, so the UI and this package can never disagree on phrasing.
type Verdict struct {
	Eligible bool
	Message  string
}

// CanJoin reports whether the occurrence may be joined at now.
//
// The join window opens earlyJoinMinutes before the start time and closes
// graceMinutes after the scheduled end. earlyJoinMinutes is trusted as
// already normalized into [10,60]; values <= 0 fall back to the default.
// A past meeting (isPast) is never joinable regardless of the arithmetic,
// and a missing start time deterministically yields false.
func CanJoin(occ *model.Occurrence, earlyJoinMinutes int, isPast bool, now time.Time) bool {
	if occ == nil || isPast || occ.StartTime.IsZero() {
		return false
	}
	if earlyJoinMinutes <= 0 {
		earlyJoinMinutes = DefaultEarlyJoinMinutes
	}

	earliest := occ.StartTime.Add(-time.Duration(earlyJoinMinutes) * time.Minute)
	latest := occ.StartTime.
		Add(time.Duration(occ.DurationMinutes) * time.Minute).
		Add(graceMinutes * time.Minute)

	return !now.Before(earliest) && !now.After(latest)
}

// Evaluate combines CanJoin with the canonical message for its outcome.
func Evaluate(occ *model.Occurrence, earlyJoinMinutes int, isPast bool, now time.Time) Verdict {
	if earlyJoinMinutes <= 0 {
		earlyJoinMinutes = DefaultEarlyJoinMinutes
	}
	if CanJoin(occ, earlyJoinMinutes, isPast, now) {
		return Verdict{Eligible: true, Message: "The meeting is in progress."}
	}
	return Verdict{
		Eligible: false,
		Message: fmt.Sprintf(
			"You may only join the meeting up to %d minutes before the start time.",
			earlyJoinMinutes,
		),
	}
}
