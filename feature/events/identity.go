package events

import (
	"fmt"
	"strings"
	"time"
)

// Key derives the identity key for a source record: trimmed name, ISO start
// date and 24-hour start time, joined with pipes. Remote events are keyed the
// same way after converting their UTC start into the configured timezone, so
// both sides collide on wall-clock identity regardless of DST.
func Key(name, dateISO, time24 string) string {
	return strings.TrimSpace(name) + "|" + dateISO + "|" + time24
}

// UTCTimestamp interprets a wall-clock date and time in loc and returns the
// canonical UTC wire form (2006-01-02T15:04:05Z).
func UTCTimestamp(dateISO, time24 string, loc *time.Location) (string, error) {
	t, err := time.ParseInLocation("2006-01-02 15:04", dateISO+" "+time24, loc)
	if err != nil {
		return "", fmt.Errorf("parse local timestamp %q %q: %w", dateISO, time24, err)
	}
	return t.UTC().Format("2006-01-02T15:04:05Z"), nil
}

// ParseRemoteTimestamp parses a platform timestamp, tolerating fractional
// seconds and numeric UTC offsets.
func ParseRemoteTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse remote timestamp %q: %w", s, err)
	}
	return t, nil
}

// NormalizeUTC reduces any parseable timestamp representation (with or
// without fractional seconds, Z or +00:00 suffix) to the single canonical
// UTC string used for equality checks. Unparseable input is returned
// unchanged so diffs still show it.
func NormalizeUTC(s string) string {
	t, err := ParseRemoteTimestamp(s)
	if err != nil {
		return s
	}
	return t.UTC().Format("2006-01-02T15:04:05Z")
}
