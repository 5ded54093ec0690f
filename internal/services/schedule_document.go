package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrScheduleParse  = errors.New("schedule document is not valid JSON")
	ErrScheduleFormat = errors.New("invalid schedule format")
)

// ScheduleDocument is the importable weekly feeding schedule.
type ScheduleDocument struct {
	Month            *int           `json:"month"`
	SignsOfReadiness []string       `json:"signs_of_readiness"`
	SafetyGuidelines []string       `json:"safety_guidelines"`
	WeeklySchedule   []ScheduleWeek `json:"weekly_schedule"`
}

type ScheduleWeek struct {
	Week *int               `json:"week"`
	Days []ScheduleDayEntry `json:"days"`
}

// ScheduleDayEntry is one day inside a week. Day is informational only;
// placement follows document order.
type ScheduleDayEntry struct {
	Day           int      `json:"day"`
	Time          string   `json:"time"`
	FoodType      string   `json:"food_type"`
	Food          string   `json:"food"`
	AmountGrams   float64  `json:"amount_grams"`
	Substitutions []string `json:"substitutions"`
	Notes         string   `json:"notes"`
}

func (document ScheduleDocument) DayCount() int {
	count := 0
	for _, week := range document.WeeklySchedule {
		count += len(week.Days)
	}
	return count
}

// ParseScheduleDocument decodes and validates raw schedule text. Malformed
// JSON yields ErrScheduleParse; well-formed JSON of the wrong shape yields
// ErrScheduleFormat.
func ParseScheduleDocument(raw []byte) (ScheduleDocument, error) {
	trimmed := bytes.TrimSpace(raw)
	if !json.Valid(trimmed) {
		var syntaxErr *json.SyntaxError
		if err := json.Unmarshal(trimmed, new(any)); errors.As(err, &syntaxErr) {
			return ScheduleDocument{}, fmt.Errorf("%w: %v at offset %d", ErrScheduleParse, syntaxErr, syntaxErr.Offset)
		}
		return ScheduleDocument{}, ErrScheduleParse
	}

	document := ScheduleDocument{}
	if err := json.Unmarshal(trimmed, &document); err != nil {
		return ScheduleDocument{}, fmt.Errorf("%w: %v", ErrScheduleFormat, err)
	}
	if err := document.Validate(); err != nil {
		return ScheduleDocument{}, err
	}
	return document, nil
}

func (document ScheduleDocument) Validate() error {
	if document.Month == nil {
		return fmt.Errorf("%w: month is required", ErrScheduleFormat)
	}
	if len(document.WeeklySchedule) == 0 {
		return fmt.Errorf("%w: weekly_schedule must contain at least one week", ErrScheduleFormat)
	}
	for weekIndex, week := range document.WeeklySchedule {
		if week.Week == nil {
			return fmt.Errorf("%w: weekly_schedule[%d].week is required", ErrScheduleFormat, weekIndex)
		}
		for dayIndex, day := range week.Days {
			if day.AmountGrams < 0 {
				return fmt.Errorf("%w: weekly_schedule[%d].days[%d].amount_grams must not be negative", ErrScheduleFormat, weekIndex, dayIndex)
			}
		}
	}
	if document.DayCount() == 0 {
		return fmt.Errorf("%w: weekly_schedule has no days", ErrScheduleFormat)
	}
	return nil
}
