// Package timestamp turns loosely formatted ISO-8601 date-times into a fixed
// width string form whose lexical order is chronological order.
//
// Values that carry an offset are converted to UTC and rendered with a
// trailing "Z". Values without one stay naive and are rendered without any
// marker. Sub-second precision is always dropped. A naive value and a zoned
// value compare as plain strings; that ordering is not meaningful.
package timestamp

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"interview-scheduler/apperr"
)

const (
	naiveLayout = "2006-01-02T15:04:05"
	utcLayout   = "2006-01-02T15:04:05Z"
)

// date T hh:mm [:ss [.frac]] [Z | ±hh[[:]mm]]
var pattern = regexp.MustCompile(
	`^(\d{4}-\d{2}-\d{2})T(\d{2}):(\d{2})(?::(\d{2})(?:[.,](\d+))?)?(Z|[+-]\d{2}(?::?\d{2})?)?$`,
)

// Normalize parses raw and returns its normalized form. It fails with an
// InvalidTimestamp error when raw is blank or matches no accepted shape.
func Normalize(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", invalid(raw)
	}
	s = strings.Replace(s, " ", "T", 1)

	m := pattern.FindStringSubmatch(s)
	if m == nil {
		return "", invalid(raw)
	}
	date, hour, minute, second, zone := m[1], m[2], m[3], m[4], m[6]
	if second == "" {
		second = "00"
	}

	t, err := time.Parse(naiveLayout, date+"T"+hour+":"+minute+":"+second)
	if err != nil || t.Year() < 1 {
		return "", invalid(raw)
	}

	if zone == "" {
		return t.Format(naiveLayout), nil
	}

	offset, ok := parseOffset(zone)
	if !ok {
		return "", invalid(raw)
	}
	t = t.Add(-offset)
	if t.Year() < 1 || t.Year() > 9999 {
		return "", invalid(raw)
	}
	return t.Format(utcLayout), nil
}

// IsZoned reports whether a normalized value is UTC-tagged.
func IsZoned(normalized string) bool {
	return strings.HasSuffix(normalized, "Z")
}

// Parse converts a normalized value back into a time. Naive values are
// returned in UTC with no conversion.
func Parse(normalized string) (time.Time, error) {
	if IsZoned(normalized) {
		return time.Parse(utcLayout, normalized)
	}
	return time.Parse(naiveLayout, normalized)
}

func parseOffset(zone string) (time.Duration, bool) {
	if zone == "Z" {
		return 0, true
	}
	sign := time.Duration(1)
	if zone[0] == '-' {
		sign = -1
	}
	digits := strings.ReplaceAll(zone[1:], ":", "")

	hours, err := strconv.Atoi(digits[:2])
	if err != nil || hours > 23 {
		return 0, false
	}
	minutes := 0
	if len(digits) == 4 {
		minutes, err = strconv.Atoi(digits[2:])
		if err != nil || minutes > 59 {
			return 0, false
		}
	}
	return sign * (time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute), true
}

func invalid(raw string) error {
	return apperr.New(apperr.KindInvalidTimestamp, "invalid ISO datetime: %q", raw)
}
