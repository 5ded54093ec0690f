package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/terraincognita07/babyfeed/internal/models"
)

type PlanDayReader interface {
	List(ctx context.Context) ([]models.PlanDay, error)
}

type ScheduleReader interface {
	List(ctx context.Context) ([]models.LoadedSchedule, error)
}

// Random picks an index in [0, n).
type Random interface {
	IntN(n int) int
}

// DayPlan is a plan day together with the schedule it came from.
type DayPlan struct {
	Date     string                 `json:"date"`
	Day      *models.PlanDay        `json:"day"`
	Schedule *models.LoadedSchedule `json:"schedule"`
}

func PlanForDate(days []models.PlanDay, date string) (models.PlanDay, bool) {
	for _, day := range days {
		if day.Date == date {
			return day, true
		}
	}
	return models.PlanDay{}, false
}

func ScheduleByID(schedules []models.LoadedSchedule, id string) (models.LoadedSchedule, bool) {
	for _, schedule := range schedules {
		if schedule.ID == id {
			return schedule, true
		}
	}
	return models.LoadedSchedule{}, false
}

func ScheduleForDay(schedules []models.LoadedSchedule, day models.PlanDay) (models.LoadedSchedule, bool) {
	return ScheduleByID(schedules, day.ScheduleID)
}

// DaysForSchedule returns the schedule's days ordered by date.
func DaysForSchedule(days []models.PlanDay, scheduleID string) []models.PlanDay {
	result := make([]models.PlanDay, 0)
	for _, day := range days {
		if day.ScheduleID == scheduleID {
			result = append(result, day)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date < result[j].Date
	})
	return result
}

// RandomSafetyTip picks one guideline uniformly across every schedule. The
// bool is false when no schedule carries guidelines.
func RandomSafetyTip(schedules []models.LoadedSchedule, random Random) (string, bool) {
	pool := make([]string, 0)
	for _, schedule := range schedules {
		pool = append(pool, schedule.SafetyGuidelines...)
	}
	if len(pool) == 0 {
		return "", false
	}
	return pool[random.IntN(len(pool))], true
}

// SafetyTipPicker keeps the tip shown to the user stable until the next
// Roll, which callers trigger once per focus of the plan view.
type SafetyTipPicker struct {
	mu      sync.Mutex
	random  Random
	tip     string
	present bool
	rolled  bool
}

func NewSafetyTipPicker(random Random) *SafetyTipPicker {
	if random == nil {
		random = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x9e3779b97f4a7c15))
	}
	return &SafetyTipPicker{random: random}
}

func (picker *SafetyTipPicker) Roll(schedules []models.LoadedSchedule) (string, bool) {
	picker.mu.Lock()
	defer picker.mu.Unlock()

	picker.tip, picker.present = RandomSafetyTip(schedules, picker.random)
	picker.rolled = true
	return picker.tip, picker.present
}

// Current returns the last rolled tip. The bool reports whether a roll has
// happened and produced a tip.
func (picker *SafetyTipPicker) Current() (string, bool) {
	picker.mu.Lock()
	defer picker.mu.Unlock()
	return picker.tip, picker.rolled && picker.present
}

func (picker *SafetyTipPicker) Rolled() bool {
	picker.mu.Lock()
	defer picker.mu.Unlock()
	return picker.rolled
}

type PlanService struct {
	days      PlanDayReader
	schedules ScheduleReader
	tips      *SafetyTipPicker
	location  *time.Location
	now       func() time.Time
}

func NewPlanService(days PlanDayReader, schedules ScheduleReader, tips *SafetyTipPicker, location *time.Location) *PlanService {
	if location == nil {
		location = time.Local
	}
	if tips == nil {
		tips = NewSafetyTipPicker(nil)
	}
	return &PlanService{
		days:      days,
		schedules: schedules,
		tips:      tips,
		location:  location,
		now:       time.Now,
	}
}

func (service *PlanService) TodayDate() string {
	return FormatDate(service.now(), service.location)
}

// TomorrowDate adds one calendar day, not 24 hours.
func (service *PlanService) TomorrowDate() string {
	return DateAtLocation(service.now(), service.location).AddDate(0, 0, 1).Format(dateLayout)
}

func (service *PlanService) TodayPlan(ctx context.Context) (models.PlanDay, bool, error) {
	return service.planFor(ctx, service.TodayDate())
}

func (service *PlanService) TomorrowPlan(ctx context.Context) (models.PlanDay, bool, error) {
	return service.planFor(ctx, service.TomorrowDate())
}

func (service *PlanService) planFor(ctx context.Context, date string) (models.PlanDay, bool, error) {
	days, err := service.days.List(ctx)
	if err != nil {
		return models.PlanDay{}, false, fmt.Errorf("list plan days: %w", err)
	}
	day, ok := PlanForDate(days, date)
	return day, ok, nil
}

// Today returns today's plan with its owning schedule, when there is one.
func (service *PlanService) Today(ctx context.Context) (DayPlan, error) {
	return service.DayPlan(ctx, service.TodayDate())
}

func (service *PlanService) Tomorrow(ctx context.Context) (DayPlan, error) {
	return service.DayPlan(ctx, service.TomorrowDate())
}

func (service *PlanService) DayPlan(ctx context.Context, date string) (DayPlan, error) {
	result := DayPlan{Date: date}
	day, ok, err := service.planFor(ctx, date)
	if err != nil || !ok {
		return result, err
	}
	result.Day = &day

	schedule, found, err := service.ScheduleForDay(ctx, day)
	if err != nil {
		return result, err
	}
	if found {
		result.Schedule = &schedule
	}
	return result, nil
}

func (service *PlanService) ScheduleForDay(ctx context.Context, day models.PlanDay) (models.LoadedSchedule, bool, error) {
	schedules, err := service.schedules.List(ctx)
	if err != nil {
		return models.LoadedSchedule{}, false, fmt.Errorf("list schedules: %w", err)
	}
	schedule, ok := ScheduleForDay(schedules, day)
	return schedule, ok, nil
}

func (service *PlanService) DaysForSchedule(ctx context.Context, scheduleID string) ([]models.PlanDay, error) {
	days, err := service.days.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list plan days: %w", err)
	}
	return DaysForSchedule(days, scheduleID), nil
}

// RollSafetyTip re-picks the displayed tip.
func (service *PlanService) RollSafetyTip(ctx context.Context) (string, bool, error) {
	schedules, err := service.schedules.List(ctx)
	if err != nil {
		return "", false, fmt.Errorf("list schedules: %w", err)
	}
	tip, ok := service.tips.Roll(schedules)
	return tip, ok, nil
}

// SafetyTip returns the displayed tip, rolling only when nothing was rolled yet.
func (service *PlanService) SafetyTip(ctx context.Context) (string, bool, error) {
	if !service.tips.Rolled() {
		return service.RollSafetyTip(ctx)
	}
	tip, ok := service.tips.Current()
	return tip, ok, nil
}

func (service *PlanService) Stats(ctx context.Context) (PlanStats, error) {
	days, err := service.days.List(ctx)
	if err != nil {
		return PlanStats{}, fmt.Errorf("list plan days: %w", err)
	}
	return BuildPlanStats(days, NewColorAssigner(models.PresetColors())), nil
}
