package services

import (
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// FormatDate renders the local calendar date of value as YYYY-MM-DD.
func FormatDate(value time.Time, location *time.Location) string {
	return DateAtLocation(value, location).Format(dateLayout)
}

func ParseDate(raw string, location *time.Location) (time.Time, error) {
	if location == nil {
		location = time.UTC
	}
	return time.ParseInLocation(dateLayout, strings.TrimSpace(raw), location)
}

// AddDays shifts a YYYY-MM-DD date by whole calendar days.
func AddDays(raw string, days int) (string, error) {
	parsed, err := time.ParseInLocation(dateLayout, strings.TrimSpace(raw), time.UTC)
	if err != nil {
		return "", err
	}
	return parsed.AddDate(0, 0, days).Format(dateLayout), nil
}

// ParseClock splits "HH:MM" into hour and minute. Missing or unparsable parts
// are 0.
func ParseClock(raw string) (int, int) {
	parts := strings.SplitN(strings.TrimSpace(raw), ":", 2)
	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		hour = 0
	}
	minute := 0
	if len(parts) == 2 {
		if parsed, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil {
			minute = parsed
		}
	}
	return hour, minute
}

// ValidClock reports whether raw is a strict 24h "HH:MM" value.
func ValidClock(raw string) bool {
	parsed, err := time.Parse("15:04", raw)
	return err == nil && parsed.Format("15:04") == raw
}

func ValidDate(raw string) bool {
	parsed, err := time.Parse(dateLayout, raw)
	return err == nil && parsed.Format(dateLayout) == raw
}
