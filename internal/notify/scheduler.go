package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/babyfeed/internal/services"
)

const defaultTickInterval = 30 * time.Second

var (
	ErrNoSender       = errors.New("no notification sender configured")
	ErrInvalidTrigger = errors.New("trigger hour or minute out of range")
)

type Message struct {
	Title string
	Body  string
}

type Sender interface {
	Send(ctx context.Context, message Message) error
}

type trigger struct {
	id       string
	seq      int
	daily    services.DailyTrigger
	lastSent string
}

// Scheduler delivers daily triggers in-process. Triggers live in memory only,
// so a restart drops them until reminders are rescheduled.
type Scheduler struct {
	sender   Sender
	location *time.Location
	interval time.Duration
	now      func() time.Time
	newID    func() string
	logger   *slog.Logger

	mu       sync.Mutex
	triggers map[string]*trigger
	seq      int
}

var _ services.Notifier = (*Scheduler)(nil)

// NewScheduler returns a scheduler delivering through sender. A nil sender
// means notifications are not permitted.
func NewScheduler(sender Sender, location *time.Location) *Scheduler {
	if location == nil {
		location = time.Local
	}
	return &Scheduler{
		sender:   sender,
		location: location,
		interval: defaultTickInterval,
		now:      time.Now,
		newID:    uuid.NewString,
		logger:   slog.Default().With(slog.String("component", "notify")),
		triggers: make(map[string]*trigger),
	}
}

func (scheduler *Scheduler) RequestPermission(context.Context) (bool, error) {
	return scheduler.sender != nil, nil
}

// ScheduleDaily registers trigger. When today's time has already passed the
// first delivery happens tomorrow.
func (scheduler *Scheduler) ScheduleDaily(_ context.Context, daily services.DailyTrigger) (string, error) {
	if scheduler.sender == nil {
		return "", ErrNoSender
	}
	if daily.Hour < 0 || daily.Hour > 23 || daily.Minute < 0 || daily.Minute > 59 {
		return "", fmt.Errorf("%w: %02d:%02d", ErrInvalidTrigger, daily.Hour, daily.Minute)
	}

	now := scheduler.now().In(scheduler.location)
	entry := &trigger{id: scheduler.newID(), daily: daily}
	if !now.Before(fireTime(now, daily)) {
		entry.lastSent = now.Format(time.DateOnly)
	}

	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	scheduler.seq++
	entry.seq = scheduler.seq
	scheduler.triggers[entry.id] = entry
	return entry.id, nil
}

// Cancel removes the trigger. Unknown ids are ignored.
func (scheduler *Scheduler) Cancel(_ context.Context, id string) error {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	delete(scheduler.triggers, id)
	return nil
}

func (scheduler *Scheduler) CancelAll(context.Context) error {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	scheduler.triggers = make(map[string]*trigger)
	return nil
}

// ListScheduled returns live triggers in registration order.
func (scheduler *Scheduler) ListScheduled(context.Context) ([]services.ScheduledTrigger, error) {
	scheduler.mu.Lock()
	entries := make([]*trigger, 0, len(scheduler.triggers))
	for _, entry := range scheduler.triggers {
		entries = append(entries, entry)
	}
	scheduler.mu.Unlock()

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].seq < entries[j].seq
	})
	result := make([]services.ScheduledTrigger, 0, len(entries))
	for _, entry := range entries {
		result = append(result, services.ScheduledTrigger{ID: entry.id, Tag: entry.daily.Tag})
	}
	return result, nil
}

func (scheduler *Scheduler) Start(ctx context.Context) {
	if scheduler.sender == nil {
		return
	}

	ticker := time.NewTicker(scheduler.interval)
	go func() {
		defer ticker.Stop()

		scheduler.Deliver(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				scheduler.Deliver(ctx)
			}
		}
	}()
}

// Deliver sends every trigger that is due and has not fired today. It returns
// the number of messages handed to the sender.
func (scheduler *Scheduler) Deliver(ctx context.Context) int {
	if scheduler.sender == nil {
		return 0
	}

	now := scheduler.now().In(scheduler.location)
	today := now.Format(time.DateOnly)
	weekend := now.Weekday() == time.Saturday || now.Weekday() == time.Sunday

	due := make([]*trigger, 0)
	scheduler.mu.Lock()
	for _, entry := range scheduler.triggers {
		if entry.lastSent == today || now.Before(fireTime(now, entry.daily)) {
			continue
		}
		if entry.daily.WeekdaysOnly && weekend {
			continue
		}
		entry.lastSent = today
		due = append(due, entry)
	}
	scheduler.mu.Unlock()

	sort.Slice(due, func(i, j int) bool {
		return due[i].seq < due[j].seq
	})
	sent := 0
	for _, entry := range due {
		message := Message{Title: entry.daily.Title, Body: entry.daily.Body}
		if err := scheduler.sender.Send(ctx, message); err != nil {
			scheduler.logger.ErrorContext(ctx, "deliver notification failed",
				slog.String("notification_id", entry.id),
				slog.String("error", err.Error()),
			)
			continue
		}
		sent++
	}
	return sent
}

func fireTime(now time.Time, daily services.DailyTrigger) time.Time {
	year, month, day := now.Date()
	return time.Date(year, month, day, daily.Hour, daily.Minute, 0, 0, now.Location())
}
