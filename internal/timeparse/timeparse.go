package timeparse

import (
	"errors"
	"strings"
	"time"

	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/timezone"
)

// ErrMalformedTemporalInput is returned when a date or time value matches
// none of the accepted patterns. Callers reject the request; on update
// paths they may fall back to the previously stored value instead.
var ErrMalformedTemporalInput = errors.New("malformed_temporal_input")

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// Accepted date encodings: canonical plus the two legacy orderings the
// old booking clients still send.
var dateLayouts = []string{
	DateLayout,
	"02/01/2006",
	"2006/01/02",
}

var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

var clockLayouts = []string{
	ClockLayout,
	"15:04:05",
}

// Date parses a date-like value and returns midnight of that civil date
// in the operating timezone. ISO instants are accepted; their embedded
// offset is converted before the date is taken.
func Date(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	loc := timezone.Location()

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}

	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			t = t.In(loc)
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
		}
	}

	return time.Time{}, ErrMalformedTemporalInput
}

// Clock parses a time-like value and returns the canonical HH:MM string
// in the operating timezone.
func Clock(s string) (string, error) {
	s = strings.TrimSpace(s)

	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(ClockLayout), nil
		}
	}

	loc := timezone.Location()
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.In(loc).Format(ClockLayout), nil
		}
	}

	return "", ErrMalformedTemporalInput
}

// Instant resolves a (date, time) pair to the instant it names in the
// operating timezone.
func Instant(dateStr, clockStr string) (time.Time, error) {
	day, err := Date(dateStr)
	if err != nil {
		return time.Time{}, err
	}

	clock, err := Clock(clockStr)
	if err != nil {
		return time.Time{}, err
	}

	t, err := time.Parse(ClockLayout, clock)
	if err != nil {
		return time.Time{}, ErrMalformedTemporalInput
	}

	return time.Date(
		day.Year(), day.Month(), day.Day(),
		t.Hour(), t.Minute(), 0, 0,
		timezone.Location(),
	), nil
}

// Normalize returns the canonical (YYYY-MM-DD, HH:MM) pair for any
// accepted date/time encoding.
func Normalize(dateStr, clockStr string) (string, string, error) {
	at, err := Instant(dateStr, clockStr)
	if err != nil {
		return "", "", err
	}
	return at.Format(DateLayout), at.Format(ClockLayout), nil
}
