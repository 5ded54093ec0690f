package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/terraincognita07/babyfeed/internal/models"
)

var (
	ErrInvalidReminderTitle  = errors.New("invalid reminder title")
	ErrInvalidReminderTime   = errors.New("invalid reminder time")
	ErrInvalidReminderRepeat = errors.New("invalid reminder repeat")
	ErrReminderNotFound      = errors.New("reminder not found")
	ErrNotifierDetached      = errors.New("reminder triggers are owned by the running server")
)

const maxReminderTitleLength = 120

type ReminderRepository interface {
	List(ctx context.Context) ([]models.Reminder, error)
	Create(ctx context.Context, reminder *models.Reminder) error
	Update(ctx context.Context, reminder *models.Reminder) error
	Delete(ctx context.Context, id string) error
}

type Translator interface {
	Translate(language string, key string) string
	Translatef(language string, key string, args ...any) string
}

type ReminderInput struct {
	Title   string                `json:"title"`
	Time    string                `json:"time"`
	Enabled bool                  `json:"enabled"`
	Repeat  models.ReminderRepeat `json:"repeat"`
}

type ReminderPatch struct {
	Title   *string                `json:"title"`
	Time    *string                `json:"time"`
	Enabled *bool                  `json:"enabled"`
	Repeat  *models.ReminderRepeat `json:"repeat"`
}

// ReminderScheduler keeps platform triggers in line with stored reminders and
// owns the single "tomorrow's plan" notification. Platform failures are logged
// and leave the reminder without a live trigger; storage failures are returned.
//
// A scheduler built without a notifier is detached: it lives in a process that
// does not own the triggers, so it refuses every operation that would change a
// trigger or a stored notification id.
type ReminderScheduler struct {
	reminders ReminderRepository
	days      PlanDayReader
	notifier  Notifier
	texts     Translator
	language  string
	changes   ChangePublisher
	location  *time.Location
	now       func() time.Time
	logger    *slog.Logger
}

func NewReminderScheduler(reminders ReminderRepository, days PlanDayReader, notifier Notifier, texts Translator, language string, changes ChangePublisher, location *time.Location) *ReminderScheduler {
	if location == nil {
		location = time.Local
	}
	return &ReminderScheduler{
		reminders: reminders,
		days:      days,
		notifier:  notifier,
		texts:     texts,
		language:  language,
		changes:   changes,
		location:  location,
		now:       time.Now,
		logger:    slog.Default().With(slog.String("component", "reminders")),
	}
}

// Watch re-syncs the tomorrow's plan notification whenever plan days change.
func (scheduler *ReminderScheduler) Watch(hub *ChangeHub) func() {
	return hub.Subscribe(ListPlanDays, func(ctx context.Context) {
		if err := scheduler.SyncTomorrowPlan(ctx); err != nil {
			scheduler.logger.ErrorContext(ctx, "sync tomorrow plan after plan change failed", slog.String("error", err.Error()))
		}
	})
}

func (scheduler *ReminderScheduler) Detached() bool {
	return scheduler.notifier == nil
}

func (scheduler *ReminderScheduler) List(ctx context.Context) ([]models.Reminder, error) {
	return scheduler.reminders.List(ctx)
}

// ScheduleReminder registers a daily trigger for reminder and returns its id,
// or "" when permission is denied or the platform fails.
func (scheduler *ReminderScheduler) ScheduleReminder(ctx context.Context, reminder models.Reminder) string {
	hour, minute := ParseClock(reminder.Time)
	return scheduler.register(ctx, DailyTrigger{
		Title:        reminder.Title,
		Body:         scheduler.texts.Translate(scheduler.language, "reminder.body"),
		Hour:         hour,
		Minute:       minute,
		WeekdaysOnly: reminder.Repeat == models.RepeatWeekdays,
	})
}

func (scheduler *ReminderScheduler) register(ctx context.Context, trigger DailyTrigger) string {
	granted, err := scheduler.notifier.RequestPermission(ctx)
	if err != nil {
		scheduler.logger.WarnContext(ctx, "notification permission request failed", slog.String("error", err.Error()))
		return ""
	}
	if !granted {
		scheduler.logger.InfoContext(ctx, "notification permission denied", slog.String("title", trigger.Title))
		return ""
	}

	id, err := scheduler.notifier.ScheduleDaily(ctx, trigger)
	if err != nil {
		scheduler.logger.WarnContext(ctx, "schedule daily trigger failed",
			slog.String("title", trigger.Title),
			slog.String("error", err.Error()),
		)
		return ""
	}
	return id
}

func (scheduler *ReminderScheduler) cancel(ctx context.Context, id string) {
	if id == "" {
		return
	}
	if err := scheduler.notifier.Cancel(ctx, id); err != nil {
		scheduler.logger.WarnContext(ctx, "cancel trigger failed", slog.String("notification_id", id), slog.String("error", err.Error()))
	}
}

func (scheduler *ReminderScheduler) Create(ctx context.Context, input ReminderInput) (models.Reminder, error) {
	if scheduler.Detached() {
		return models.Reminder{}, ErrNotifierDetached
	}
	reminder := models.Reminder{
		Title:   strings.TrimSpace(input.Title),
		Time:    strings.TrimSpace(input.Time),
		Enabled: input.Enabled,
		Repeat:  input.Repeat,
	}
	if reminder.Repeat == "" {
		reminder.Repeat = models.RepeatDaily
	}
	if err := validateReminder(reminder); err != nil {
		return models.Reminder{}, err
	}

	if reminder.Enabled {
		reminder.NotificationID = scheduler.ScheduleReminder(ctx, reminder)
	}
	if err := scheduler.reminders.Create(ctx, &reminder); err != nil {
		scheduler.cancel(ctx, reminder.NotificationID)
		return models.Reminder{}, fmt.Errorf("create reminder: %w", err)
	}
	scheduler.publish(ctx)
	return reminder, nil
}

func (scheduler *ReminderScheduler) Enable(ctx context.Context, id string) (models.Reminder, error) {
	enabled := true
	return scheduler.Edit(ctx, id, ReminderPatch{Enabled: &enabled})
}

func (scheduler *ReminderScheduler) Disable(ctx context.Context, id string) (models.Reminder, error) {
	enabled := false
	return scheduler.Edit(ctx, id, ReminderPatch{Enabled: &enabled})
}

// Edit applies patch. A live trigger is always replaced by cancel then
// register, never updated in place.
func (scheduler *ReminderScheduler) Edit(ctx context.Context, id string, patch ReminderPatch) (models.Reminder, error) {
	if scheduler.Detached() {
		return models.Reminder{}, ErrNotifierDetached
	}
	reminder, err := scheduler.find(ctx, id)
	if err != nil {
		return models.Reminder{}, err
	}

	updated := reminder
	if patch.Title != nil {
		updated.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Time != nil {
		updated.Time = strings.TrimSpace(*patch.Time)
	}
	if patch.Repeat != nil {
		updated.Repeat = *patch.Repeat
	}
	if patch.Enabled != nil {
		updated.Enabled = *patch.Enabled
	}
	if err := validateReminder(updated); err != nil {
		return models.Reminder{}, err
	}

	scheduler.cancel(ctx, reminder.NotificationID)
	updated.NotificationID = ""
	if updated.Enabled {
		updated.NotificationID = scheduler.ScheduleReminder(ctx, updated)
	}

	if err := scheduler.reminders.Update(ctx, &updated); err != nil {
		scheduler.cancel(ctx, updated.NotificationID)
		return models.Reminder{}, fmt.Errorf("update reminder %s: %w", id, err)
	}
	scheduler.publish(ctx)
	return updated, nil
}

func (scheduler *ReminderScheduler) Delete(ctx context.Context, id string) error {
	if scheduler.Detached() {
		return ErrNotifierDetached
	}
	reminder, err := scheduler.find(ctx, id)
	if err != nil {
		return err
	}
	scheduler.cancel(ctx, reminder.NotificationID)
	if err := scheduler.reminders.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete reminder %s: %w", id, err)
	}
	scheduler.publish(ctx)
	return nil
}

// RescheduleAll drops every live trigger and registers one per enabled
// reminder in storage order, then re-syncs the tomorrow's plan notification.
func (scheduler *ReminderScheduler) RescheduleAll(ctx context.Context) error {
	if scheduler.Detached() {
		return ErrNotifierDetached
	}
	if err := scheduler.notifier.CancelAll(ctx); err != nil {
		scheduler.logger.WarnContext(ctx, "cancel all triggers failed", slog.String("error", err.Error()))
	}

	reminders, err := scheduler.reminders.List(ctx)
	if err != nil {
		return fmt.Errorf("list reminders: %w", err)
	}

	changed := false
	for index := range reminders {
		reminder := reminders[index]
		notificationID := ""
		if reminder.Enabled {
			notificationID = scheduler.ScheduleReminder(ctx, reminder)
		}
		if notificationID == reminder.NotificationID {
			continue
		}
		reminder.NotificationID = notificationID
		if err := scheduler.reminders.Update(ctx, &reminder); err != nil {
			return fmt.Errorf("store notification id for reminder %s: %w", reminder.ID, err)
		}
		changed = true
	}
	if changed {
		scheduler.publish(ctx)
	}

	return scheduler.SyncTomorrowPlan(ctx)
}

// SyncTomorrowPlan cancels every trigger tagged DailyPlanTag and, when a plan
// day exists for tomorrow, registers a fresh one at that day's time. Detached
// schedulers skip it; the server re-syncs when it starts.
func (scheduler *ReminderScheduler) SyncTomorrowPlan(ctx context.Context) error {
	if scheduler.Detached() {
		return nil
	}
	scheduled, err := scheduler.notifier.ListScheduled(ctx)
	if err != nil {
		scheduler.logger.WarnContext(ctx, "list scheduled triggers failed", slog.String("error", err.Error()))
		return nil
	}
	for _, trigger := range scheduled {
		if trigger.Tag == DailyPlanTag {
			scheduler.cancel(ctx, trigger.ID)
		}
	}

	days, err := scheduler.days.List(ctx)
	if err != nil {
		return fmt.Errorf("list plan days: %w", err)
	}
	tomorrow := DateAtLocation(scheduler.now(), scheduler.location).AddDate(0, 0, 1).Format(dateLayout)
	day, ok := PlanForDate(days, tomorrow)
	if !ok {
		return nil
	}

	hour, minute := ParseClock(day.Time)
	id := scheduler.register(ctx, DailyTrigger{
		Title:  scheduler.texts.Translate(scheduler.language, "plan.tomorrow.title"),
		Body:   scheduler.texts.Translatef(scheduler.language, "plan.tomorrow.body", day.Food, strconv.FormatFloat(day.AmountGrams, 'f', -1, 64)),
		Hour:   hour,
		Minute: minute,
		Tag:    DailyPlanTag,
	})
	if id != "" {
		scheduler.logger.DebugContext(ctx, "tomorrow plan notification scheduled", slog.String("date", tomorrow), slog.String("notification_id", id))
	}
	return nil
}

func (scheduler *ReminderScheduler) find(ctx context.Context, id string) (models.Reminder, error) {
	reminders, err := scheduler.reminders.List(ctx)
	if err != nil {
		return models.Reminder{}, fmt.Errorf("list reminders: %w", err)
	}
	for _, reminder := range reminders {
		if reminder.ID == id {
			return reminder, nil
		}
	}
	return models.Reminder{}, ErrReminderNotFound
}

func (scheduler *ReminderScheduler) publish(ctx context.Context) {
	if scheduler.changes != nil {
		scheduler.changes.Publish(ctx, ListReminders)
	}
}

func validateReminder(reminder models.Reminder) error {
	if reminder.Title == "" || len(reminder.Title) > maxReminderTitleLength {
		return ErrInvalidReminderTitle
	}
	if !ValidClock(reminder.Time) {
		return ErrInvalidReminderTime
	}
	switch reminder.Repeat {
	case "", models.RepeatDaily, models.RepeatWeekdays:
		return nil
	default:
		return ErrInvalidReminderRepeat
	}
}
