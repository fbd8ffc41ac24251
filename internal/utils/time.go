package utils

import (
	"strings"
	"time"
)

const (
	layoutFormDateTime = "2006-01-02T15:04"
	layoutDisplay      = "Mon, 02 Jan 2006 15:04"
)

// NowLocal returns current time in the server timezone.
func NowLocal() time.Time {
	return time.Now().Local()
}

// ParseFormDateTime parses the value of an HTML datetime-local input.
func ParseFormDateTime(s string) (time.Time, error) {
	return time.ParseInLocation(layoutFormDateTime, strings.TrimSpace(s), time.Local)
}

// FormatFormDateTime formats a time back into datetime-local form value.
func FormatFormDateTime(t time.Time) string {
	return t.In(time.Local).Format(layoutFormDateTime)
}

// FormatDisplayTime formats a departure time for pages and receipts.
func FormatDisplayTime(t time.Time) string {
	return t.In(time.Local).Format(layoutDisplay)
}
