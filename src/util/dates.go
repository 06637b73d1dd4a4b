package util

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Timestamps without an offset (as sent by datetime-local inputs) are UTC.
var dateLayouts = []string{
	dateLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

// ParseDate accepts a calendar date (2025-01-10), an RFC 3339 timestamp, or
// a timestamp without offset. Calendar dates resolve to midnight UTC.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", value)
}

// ParseEndDate is ParseDate for the upper bound of a range: a bare calendar
// date covers the whole day.
func ParseEndDate(value string) (time.Time, error) {
	t, err := ParseDate(value)
	if err != nil {
		return t, err
	}
	if _, dateOnly := time.Parse(dateLayout, strings.TrimSpace(value)); dateOnly == nil {
		return t.Add(24*time.Hour - time.Millisecond), nil
	}
	return t, nil
}

// ParseMonth parses "2025-01" into the first instant of that month (UTC).
func ParseMonth(value string) (time.Time, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q", value)
	}
	return t.UTC(), nil
}

func FormatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}
