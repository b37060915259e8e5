// Package timefmt parses the loose 12h/24h time strings accepted by the
// meeting form and canonicalizes them for round-tripping.
package timefmt

import (
	"errors"
	"strings"
	"time"
)

// parseLayouts is tried in order against the cleaned input. Covers 24h
// ("15:04", "15"), 12h with and without minutes ("3:04 PM", "3 PM"), and
// the unspaced variants users actually type ("3:04pm", "3pm").
var parseLayouts = []string{
	"15:04",
	"15",
	"3:04 PM",
	"3:04PM",
	"3 PM",
	"3PM",
}

// ErrUnparsable is returned when no accepted layout matches the input.
var ErrUnparsable = errors.New("timefmt: unparsable time string")

// Canonicalize parses a loose time string and returns its canonical 24h
// "15:04" form. Case and surrounding whitespace are ignored; internal runs
// of spaces are collapsed.
func Canonicalize(s string) (string, error) {
	cleaned := clean(s)
	if cleaned == "" {
		return "", ErrUnparsable
	}

	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t.Format("15:04"), nil
		}
	}
	return "", ErrUnparsable
}

// Format12 renders a canonical 24h "15:04" string in 12h form ("3:04 PM")
// for display. Input that is not canonical is returned unchanged rather
// than erroring, since this sits directly in a render path.
func Format12(canonical string) string {
	t, err := time.Parse("15:04", canonical)
	if err != nil {
		return canonical
	}
	return t.Format("3:04 PM")
}

func clean(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Join(strings.Fields(s), " ")
	return strings.ToUpper(s)
}
