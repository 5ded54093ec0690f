package services

import "context"

//go:generate mockgen -source=notifier.go -destination=notifier_mock.go -package=services

// DailyPlanTag marks the single "tomorrow's plan" trigger so it can be told
// apart from reminder triggers.
const DailyPlanTag = "babyfeed.daily-plan"

type DailyTrigger struct {
	Title        string
	Body         string
	Hour         int
	Minute       int
	Tag          string
	WeekdaysOnly bool
}

type ScheduledTrigger struct {
	ID  string
	Tag string
}

// Notifier is the platform capability that delivers daily notifications.
type Notifier interface {
	RequestPermission(ctx context.Context) (bool, error)
	ScheduleDaily(ctx context.Context, trigger DailyTrigger) (string, error)
	Cancel(ctx context.Context, id string) error
	CancelAll(ctx context.Context) error
	ListScheduled(ctx context.Context) ([]ScheduledTrigger, error)
}
