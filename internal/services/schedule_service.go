package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/babyfeed/internal/models"
)

var (
	ErrInvalidPlanAmount = errors.New("plan amount must not be negative")
	ErrInvalidPlanTime   = errors.New("invalid plan time")
	ErrInvalidPlanFood   = errors.New("invalid plan food")
	ErrImportFailed      = errors.New("save imported schedule failed")
)

type PlanDayRepository interface {
	List(ctx context.Context) ([]models.PlanDay, error)
	Update(ctx context.Context, day *models.PlanDay) error
}

type LoadedScheduleRepository interface {
	List(ctx context.Context) ([]models.LoadedSchedule, error)
	SaveImport(ctx context.Context, schedule models.LoadedSchedule, days []models.PlanDay) error
	DeleteCascade(ctx context.Context, scheduleID string) error
}

type ImportResult struct {
	Schedule models.LoadedSchedule `json:"schedule"`
	Days     []models.PlanDay      `json:"days"`
}

// PlanDayPatch carries the editable plan day fields; nil fields are left as is.
type PlanDayPatch struct {
	Time          *string   `json:"time"`
	FoodType      *string   `json:"foodType"`
	Food          *string   `json:"food"`
	AmountGrams   *float64  `json:"amountGrams"`
	Substitutions *[]string `json:"substitutions"`
	Notes         *string   `json:"notes"`
}

type ScheduleService struct {
	days      PlanDayRepository
	schedules LoadedScheduleRepository
	changes   ChangePublisher
	location  *time.Location
	now       func() time.Time
	newID     func() string
}

func NewScheduleService(days PlanDayRepository, schedules LoadedScheduleRepository, changes ChangePublisher, location *time.Location) *ScheduleService {
	if location == nil {
		location = time.Local
	}
	return &ScheduleService{
		days:      days,
		schedules: schedules,
		changes:   changes,
		location:  location,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

func (service *ScheduleService) ListPlanDays(ctx context.Context) ([]models.PlanDay, error) {
	return service.days.List(ctx)
}

func (service *ScheduleService) ListSchedules(ctx context.Context) ([]models.LoadedSchedule, error) {
	return service.schedules.List(ctx)
}

// ImportSchedule appends the document's days after the latest existing plan
// day (or from today when there is none) and records the schedule. Nothing is
// written when the document is rejected.
func (service *ScheduleService) ImportSchedule(ctx context.Context, raw []byte) (ImportResult, error) {
	document, err := ParseScheduleDocument(raw)
	if err != nil {
		return ImportResult{}, err
	}

	existing, err := service.days.List(ctx)
	if err != nil {
		return ImportResult{}, fmt.Errorf("list plan days: %w", err)
	}
	anchor, err := service.importAnchor(existing)
	if err != nil {
		return ImportResult{}, err
	}

	schedule, days, err := BuildImport(document, anchor, service.newID)
	if err != nil {
		return ImportResult{}, err
	}
	schedule.LoadedAt = service.now().UTC()

	if err := service.schedules.SaveImport(ctx, schedule, days); err != nil {
		return ImportResult{}, fmt.Errorf("%w: %v", ErrImportFailed, err)
	}

	service.publish(ctx, ListPlanDays, ListSchedules)
	return ImportResult{Schedule: schedule, Days: days}, nil
}

func (service *ScheduleService) importAnchor(existing []models.PlanDay) (string, error) {
	latest := ""
	for _, day := range existing {
		if day.Date > latest {
			latest = day.Date
		}
	}
	if latest == "" {
		return FormatDate(service.now(), service.location), nil
	}
	next, err := AddDays(latest, 1)
	if err != nil {
		return "", fmt.Errorf("stored plan day has malformed date %q: %w", latest, err)
	}
	return next, nil
}

// BuildImport flattens document weeks and days into consecutive plan days
// starting at anchor. Every day shares the returned schedule's id.
func BuildImport(document ScheduleDocument, anchor string, newID func() string) (models.LoadedSchedule, []models.PlanDay, error) {
	scheduleID := newID()
	month := 0
	if document.Month != nil {
		month = *document.Month
	}

	days := make([]models.PlanDay, 0, document.DayCount())
	offset := 0
	for _, week := range document.WeeklySchedule {
		weekNumber := 0
		if week.Week != nil {
			weekNumber = *week.Week
		}
		for _, entry := range week.Days {
			date, err := AddDays(anchor, offset)
			if err != nil {
				return models.LoadedSchedule{}, nil, fmt.Errorf("compute plan date: %w", err)
			}
			offset++

			substitutions := entry.Substitutions
			if substitutions == nil {
				substitutions = []string{}
			}
			days = append(days, models.PlanDay{
				ID:            newID(),
				Date:          date,
				Time:          entry.Time,
				FoodType:      entry.FoodType,
				Food:          entry.Food,
				AmountGrams:   entry.AmountGrams,
				Substitutions: substitutions,
				Notes:         entry.Notes,
				SourceMonth:   month,
				WeekNumber:    weekNumber,
				ScheduleID:    scheduleID,
			})
		}
	}
	if len(days) == 0 {
		return models.LoadedSchedule{}, nil, fmt.Errorf("%w: weekly_schedule has no days", ErrScheduleFormat)
	}

	schedule := models.LoadedSchedule{
		ID:               scheduleID,
		Month:            month,
		StartDate:        days[0].Date,
		EndDate:          days[len(days)-1].Date,
		SignsOfReadiness: nonNilStrings(document.SignsOfReadiness),
		SafetyGuidelines: nonNilStrings(document.SafetyGuidelines),
	}
	return schedule, days, nil
}

// DeleteSchedule removes the schedule and all of its plan days. Unknown ids
// are ignored.
func (service *ScheduleService) DeleteSchedule(ctx context.Context, scheduleID string) error {
	schedules, err := service.schedules.List(ctx)
	if err != nil {
		return fmt.Errorf("list schedules: %w", err)
	}
	if _, ok := ScheduleByID(schedules, scheduleID); !ok {
		days, err := service.days.List(ctx)
		if err != nil {
			return fmt.Errorf("list plan days: %w", err)
		}
		if len(DaysForSchedule(days, scheduleID)) == 0 {
			return nil
		}
	}

	if err := service.schedules.DeleteCascade(ctx, scheduleID); err != nil {
		return fmt.Errorf("delete schedule %s: %w", scheduleID, err)
	}
	service.publish(ctx, ListPlanDays, ListSchedules)
	return nil
}

// UpdatePlanDay merges patch into the stored day. The bool result is false
// when no day has that id.
func (service *ScheduleService) UpdatePlanDay(ctx context.Context, id string, patch PlanDayPatch) (models.PlanDay, bool, error) {
	if err := patch.Validate(); err != nil {
		return models.PlanDay{}, false, err
	}

	days, err := service.days.List(ctx)
	if err != nil {
		return models.PlanDay{}, false, fmt.Errorf("list plan days: %w", err)
	}

	for _, day := range days {
		if day.ID != id {
			continue
		}
		patch.Apply(&day)
		if err := service.days.Update(ctx, &day); err != nil {
			return models.PlanDay{}, true, fmt.Errorf("update plan day %s: %w", id, err)
		}
		service.publish(ctx, ListPlanDays)
		return day, true, nil
	}
	return models.PlanDay{}, false, nil
}

func (patch PlanDayPatch) Validate() error {
	if patch.AmountGrams != nil && *patch.AmountGrams < 0 {
		return ErrInvalidPlanAmount
	}
	if patch.Time != nil && !ValidClock(strings.TrimSpace(*patch.Time)) {
		return ErrInvalidPlanTime
	}
	if patch.Food != nil && strings.TrimSpace(*patch.Food) == "" {
		return ErrInvalidPlanFood
	}
	return nil
}

func (patch PlanDayPatch) Apply(day *models.PlanDay) {
	if patch.Time != nil {
		day.Time = strings.TrimSpace(*patch.Time)
	}
	if patch.FoodType != nil {
		day.FoodType = strings.TrimSpace(*patch.FoodType)
	}
	if patch.Food != nil {
		day.Food = strings.TrimSpace(*patch.Food)
	}
	if patch.AmountGrams != nil {
		day.AmountGrams = *patch.AmountGrams
	}
	if patch.Substitutions != nil {
		cleaned := make([]string, 0, len(*patch.Substitutions))
		for _, substitution := range *patch.Substitutions {
			if trimmed := strings.TrimSpace(substitution); trimmed != "" {
				cleaned = append(cleaned, trimmed)
			}
		}
		day.Substitutions = cleaned
	}
	if patch.Notes != nil {
		day.Notes = strings.TrimSpace(*patch.Notes)
	}
}

func (service *ScheduleService) publish(ctx context.Context, lists ...string) {
	if service.changes == nil {
		return
	}
	for _, list := range lists {
		service.changes.Publish(ctx, list)
	}
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
