package services

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidPeriod = errors.New("invalid stats period")

type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

func ParsePeriod(raw string) (Period, error) {
	switch Period(strings.ToLower(strings.TrimSpace(raw))) {
	case "", PeriodDaily:
		return PeriodDaily, nil
	case PeriodWeekly:
		return PeriodWeekly, nil
	case PeriodMonthly:
		return PeriodMonthly, nil
	default:
		return "", ErrInvalidPeriod
	}
}

// Window is an inclusive local time range.
type Window struct {
	Start time.Time
	End   time.Time
}

func (window Window) StartMs() int64 {
	return window.Start.UnixMilli()
}

func (window Window) EndMs() int64 {
	return window.End.UnixMilli()
}

func (window Window) Contains(timestampMs int64) bool {
	return timestampMs >= window.StartMs() && timestampMs <= window.EndMs()
}

// PeriodWindow returns the daily, weekly (Monday to Sunday) or monthly window
// containing ref in location. End is one millisecond before the next window
// starts, so windows tile without gaps across DST changes.
func PeriodWindow(period Period, ref time.Time, location *time.Location) Window {
	day := DateAtLocation(ref, location)

	var start, next time.Time
	switch period {
	case PeriodWeekly:
		weekday := int(day.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		start = day.AddDate(0, 0, 1-weekday)
		next = start.AddDate(0, 0, 7)
	case PeriodMonthly:
		start = time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		next = start.AddDate(0, 1, 0)
	default:
		start = day
		next = day.AddDate(0, 0, 1)
	}

	return Window{Start: start, End: next.Add(-time.Millisecond)}
}
