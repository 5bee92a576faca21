package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// timestampLayouts are tried in order when parsing date-like cells
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseDuration safely parses duration string like "5m"
func ParseDuration(d string, def time.Duration) time.Duration {
	if d == "" {
		return def
	}
	duration, err := time.ParseDuration(d)
	if err != nil {
		return def
	}
	return duration
}

// IsBlank reports whether a cell should be treated as an absent value.
func IsBlank(s string) bool {
	switch strings.TrimSpace(s) {
	case "", "NaN", "NA", "NaT", "<nil>", "null", "NULL":
		return true
	}
	return false
}

// ParseTimestamp parses a date/time cell. Blank cells yield the zero time.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if IsBlank(s) {
		return time.Time{}, nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(s))
}

// EndOfDay returns the last representable instant of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// StartOfDay truncates t to midnight UTC.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseFloat parses a numeric cell, returning NaN when blank or invalid.
func ParseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if IsBlank(s) {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// ParseInt parses an integer cell that may be written as a float ("3.0").
func ParseInt(s string, def int) int {
	f := ParseFloat(s)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return int(f)
}

// Percent returns part/total*100, or 0 when total is 0.
func Percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
