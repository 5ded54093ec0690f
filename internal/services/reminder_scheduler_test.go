package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/terraincognita07/babyfeed/internal/models"
	"go.uber.org/mock/gomock"
)

type memoryReminderRepo struct {
	reminders []models.Reminder
	nextID    int
	updates   int
	updateErr error
}

func (repo *memoryReminderRepo) List(context.Context) ([]models.Reminder, error) {
	result := make([]models.Reminder, len(repo.reminders))
	copy(result, repo.reminders)
	return result, nil
}

func (repo *memoryReminderRepo) Create(_ context.Context, reminder *models.Reminder) error {
	repo.nextID++
	reminder.ID = "r" + strconv.Itoa(repo.nextID)
	repo.reminders = append(repo.reminders, *reminder)
	return nil
}

func (repo *memoryReminderRepo) Update(_ context.Context, reminder *models.Reminder) error {
	repo.updates++
	if repo.updateErr != nil {
		return repo.updateErr
	}
	for index := range repo.reminders {
		if repo.reminders[index].ID == reminder.ID {
			repo.reminders[index] = *reminder
			return nil
		}
	}
	return errors.New("reminder not stored")
}

func (repo *memoryReminderRepo) Delete(_ context.Context, id string) error {
	kept := repo.reminders[:0]
	for _, reminder := range repo.reminders {
		if reminder.ID != id {
			kept = append(kept, reminder)
		}
	}
	repo.reminders = kept
	return nil
}

type stubTranslator struct{}

func (stubTranslator) Translate(_ string, key string) string {
	return key
}

func (stubTranslator) Translatef(_ string, key string, args ...any) string {
	return fmt.Sprintf("%s %v", key, args)
}

func newTestReminderScheduler(t *testing.T, repo *memoryReminderRepo, days *memoryPlanStore) (*ReminderScheduler, *MockNotifier) {
	t.Helper()
	ctrl := gomock.NewController(t)
	notifier := NewMockNotifier(ctrl)
	if days == nil {
		days = &memoryPlanStore{}
	}
	scheduler := NewReminderScheduler(repo, days, notifier, stubTranslator{}, "en", nil, time.UTC)
	scheduler.now = func() time.Time { return time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC) }
	return scheduler, notifier
}

func TestCreateEnabledReminderRegistersTrigger(t *testing.T) {
	repo := &memoryReminderRepo{}
	scheduler, notifier := newTestReminderScheduler(t, repo, nil)

	notifier.EXPECT().RequestPermission(gomock.Any()).Return(true, nil)
	notifier.EXPECT().ScheduleDaily(gomock.Any(), DailyTrigger{
		Title:  "Vitamin D",
		Body:   "reminder.body",
		Hour:   9,
		Minute: 5,
	}).Return("n-1", nil)

	reminder, err := scheduler.Create(context.Background(), ReminderInput{Title: " Vitamin D ", Time: "09:05", Enabled: true})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if reminder.NotificationID != "n-1" || reminder.Repeat != models.RepeatDaily || reminder.ID == "" {
		t.Fatalf("Create() = %#v, want notification n-1 with daily repeat", reminder)
	}
	if repo.reminders[0].NotificationID != "n-1" {
		t.Fatalf("stored reminder = %#v, want notification id persisted", repo.reminders[0])
	}
}

func TestCreateReminderWhenPermissionDenied(t *testing.T) {
	repo := &memoryReminderRepo{}
	scheduler, notifier := newTestReminderScheduler(t, repo, nil)

	notifier.EXPECT().RequestPermission(gomock.Any()).Return(false, nil)

	reminder, err := scheduler.Create(context.Background(), ReminderInput{Title: "Nap", Time: "13:00", Enabled: true, Repeat: models.RepeatWeekdays})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if reminder.NotificationID != "" || !reminder.Enabled {
		t.Fatalf("Create() = %#v, want enabled reminder without notification id", reminder)
	}
}

func TestCreateDisabledReminderSkipsPlatform(t *testing.T) {
	repo := &memoryReminderRepo{}
	scheduler, _ := newTestReminderScheduler(t, repo, nil)

	reminder, err := scheduler.Create(context.Background(), ReminderInput{Title: "Later", Time: "20:00"})
	if err != nil || reminder.NotificationID != "" {
		t.Fatalf("Create() = %#v, %v, want stored without trigger", reminder, err)
	}
}

func TestCreateReminderValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   ReminderInput
		wantErr error
	}{
		{name: "blank title", input: ReminderInput{Title: " ", Time: "09:00"}, wantErr: ErrInvalidReminderTitle},
		{name: "bad time", input: ReminderInput{Title: "Feed", Time: "9am"}, wantErr: ErrInvalidReminderTime},
		{name: "out of range time", input: ReminderInput{Title: "Feed", Time: "24:00"}, wantErr: ErrInvalidReminderTime},
		{name: "bad repeat", input: ReminderInput{Title: "Feed", Time: "09:00", Repeat: "hourly"}, wantErr: ErrInvalidReminderRepeat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &memoryReminderRepo{}
			scheduler, _ := newTestReminderScheduler(t, repo, nil)
			if _, err := scheduler.Create(context.Background(), tt.input); !errors.Is(err, tt.wantErr) {
				t.Fatalf("Create() error = %v, want %v", err, tt.wantErr)
			}
			if len(repo.reminders) != 0 {
				t.Fatalf("Create() stored %#v on validation error", repo.reminders)
			}
		})
	}
}

func TestEditReminderReplacesTrigger(t *testing.T) {
	repo := &memoryReminderRepo{reminders: []models.Reminder{
		{ID: "r1", Title: "Feed", Time: "08:00", Enabled: true, Repeat: models.RepeatDaily, NotificationID: "old"},
	}}
	scheduler, notifier := newTestReminderScheduler(t, repo, nil)

	newTime := "08:30"
	weekdays := models.RepeatWeekdays
	gomock.InOrder(
		notifier.EXPECT().Cancel(gomock.Any(), "old").Return(nil),
		notifier.EXPECT().RequestPermission(gomock.Any()).Return(true, nil),
		notifier.EXPECT().ScheduleDaily(gomock.Any(), DailyTrigger{
			Title:        "Feed",
			Body:         "reminder.body",
			Hour:         8,
			Minute:       30,
			WeekdaysOnly: true,
		}).Return("new", nil),
	)

	updated, err := scheduler.Edit(context.Background(), "r1", ReminderPatch{Time: &newTime, Repeat: &weekdays})
	if err != nil {
		t.Fatalf("Edit() unexpected error: %v", err)
	}
	if updated.NotificationID != "new" || updated.Time != "08:30" || repo.reminders[0].NotificationID != "new" {
		t.Fatalf("Edit() = %#v, stored %#v", updated, repo.reminders[0])
	}
}

func TestDisableReminderCancelsTrigger(t *testing.T) {
	repo := &memoryReminderRepo{reminders: []models.Reminder{
		{ID: "r1", Title: "Feed", Time: "08:00", Enabled: true, NotificationID: "live"},
	}}
	scheduler, notifier := newTestReminderScheduler(t, repo, nil)

	notifier.EXPECT().Cancel(gomock.Any(), "live").Return(nil)

	disabled, err := scheduler.Disable(context.Background(), "r1")
	if err != nil {
		t.Fatalf("Disable() unexpected error: %v", err)
	}
	if disabled.Enabled || disabled.NotificationID != "" {
		t.Fatalf("Disable() = %#v, want disabled without trigger", disabled)
	}

	if _, err := scheduler.Enable(context.Background(), "missing"); !errors.Is(err, ErrReminderNotFound) {
		t.Fatalf("Enable(missing) error = %v, want ErrReminderNotFound", err)
	}
}

func TestDeleteReminderCancelsTrigger(t *testing.T) {
	repo := &memoryReminderRepo{reminders: []models.Reminder{
		{ID: "r1", Title: "Feed", Time: "08:00", Enabled: true, NotificationID: "live"},
	}}
	scheduler, notifier := newTestReminderScheduler(t, repo, nil)

	notifier.EXPECT().Cancel(gomock.Any(), "live").Return(errors.New("already fired"))

	if err := scheduler.Delete(context.Background(), "r1"); err != nil {
		t.Fatalf("Delete() unexpected error: %v", err)
	}
	if len(repo.reminders) != 0 {
		t.Fatalf("Delete() left %#v", repo.reminders)
	}
}

func TestRescheduleAllIsIdempotent(t *testing.T) {
	repo := &memoryReminderRepo{reminders: []models.Reminder{
		{ID: "r1", Title: "Morning", Time: "07:00", Enabled: true, NotificationID: "stale-1"},
		{ID: "r2", Title: "Off", Time: "12:00", Enabled: false, NotificationID: "stale-2"},
		{ID: "r3", Title: "Evening", Time: "19:45", Enabled: true},
	}}
	scheduler, notifier := newTestReminderScheduler(t, repo, nil)

	issued := 0
	notifier.EXPECT().CancelAll(gomock.Any()).Return(nil).Times(2)
	notifier.EXPECT().RequestPermission(gomock.Any()).Return(true, nil).Times(4)
	notifier.EXPECT().ScheduleDaily(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, trigger DailyTrigger) (string, error) {
		issued++
		return fmt.Sprintf("%s-%d", trigger.Title, issued), nil
	}).Times(4)
	notifier.EXPECT().ListScheduled(gomock.Any()).Return(nil, nil).Times(2)

	for run := 1; run <= 2; run++ {
		if err := scheduler.RescheduleAll(context.Background()); err != nil {
			t.Fatalf("RescheduleAll() run %d unexpected error: %v", run, err)
		}
		live := 0
		for _, reminder := range repo.reminders {
			if reminder.Enabled && reminder.NotificationID == "" {
				t.Fatalf("run %d: enabled reminder %s has no trigger", run, reminder.ID)
			}
			if !reminder.Enabled && reminder.NotificationID != "" {
				t.Fatalf("run %d: disabled reminder %s kept trigger %s", run, reminder.ID, reminder.NotificationID)
			}
			if reminder.NotificationID != "" {
				live++
			}
		}
		if live != 2 {
			t.Fatalf("run %d: %d live triggers, want 2", run, live)
		}
	}
	if repo.reminders[0].NotificationID != "Morning-3" || repo.reminders[2].NotificationID != "Evening-4" {
		t.Fatalf("reminders = %#v, want ids from the second run in storage order", repo.reminders)
	}
}

func TestRescheduleAllClearsIDsWhenPermissionDenied(t *testing.T) {
	repo := &memoryReminderRepo{reminders: []models.Reminder{
		{ID: "r1", Title: "Morning", Time: "07:00", Enabled: true, NotificationID: "stale"},
	}}
	scheduler, notifier := newTestReminderScheduler(t, repo, nil)

	notifier.EXPECT().CancelAll(gomock.Any()).Return(nil)
	notifier.EXPECT().RequestPermission(gomock.Any()).Return(false, nil)
	notifier.EXPECT().ListScheduled(gomock.Any()).Return(nil, nil)

	if err := scheduler.RescheduleAll(context.Background()); err != nil {
		t.Fatalf("RescheduleAll() unexpected error: %v", err)
	}
	if repo.reminders[0].NotificationID != "" {
		t.Fatalf("stored reminder = %#v, want stale id cleared", repo.reminders[0])
	}
}

func TestSyncTomorrowPlanReplacesTaggedTriggers(t *testing.T) {
	days := &memoryPlanStore{days: []models.PlanDay{
		{ID: "d1", Date: "2024-06-02", Time: "11:15", Food: "Carrot", AmountGrams: 25.5},
	}}
	scheduler, notifier := newTestReminderScheduler(t, &memoryReminderRepo{}, days)

	notifier.EXPECT().ListScheduled(gomock.Any()).Return([]ScheduledTrigger{
		{ID: "plan-a", Tag: DailyPlanTag},
		{ID: "reminder", Tag: ""},
		{ID: "plan-b", Tag: DailyPlanTag},
	}, nil)
	notifier.EXPECT().Cancel(gomock.Any(), "plan-a").Return(nil)
	notifier.EXPECT().Cancel(gomock.Any(), "plan-b").Return(nil)
	notifier.EXPECT().RequestPermission(gomock.Any()).Return(true, nil)
	notifier.EXPECT().ScheduleDaily(gomock.Any(), DailyTrigger{
		Title:  "plan.tomorrow.title",
		Body:   "plan.tomorrow.body [Carrot 25.5]",
		Hour:   11,
		Minute: 15,
		Tag:    DailyPlanTag,
	}).Return("plan-c", nil)

	if err := scheduler.SyncTomorrowPlan(context.Background()); err != nil {
		t.Fatalf("SyncTomorrowPlan() unexpected error: %v", err)
	}
}

func TestSyncTomorrowPlanWithoutPlanOnlyCancels(t *testing.T) {
	days := &memoryPlanStore{days: []models.PlanDay{{ID: "d1", Date: "2024-06-01", Food: "Today"}}}
	scheduler, notifier := newTestReminderScheduler(t, &memoryReminderRepo{}, days)

	notifier.EXPECT().ListScheduled(gomock.Any()).Return([]ScheduledTrigger{{ID: "plan-a", Tag: DailyPlanTag}}, nil)
	notifier.EXPECT().Cancel(gomock.Any(), "plan-a").Return(nil)

	if err := scheduler.SyncTomorrowPlan(context.Background()); err != nil {
		t.Fatalf("SyncTomorrowPlan() unexpected error: %v", err)
	}
}

func TestSyncTomorrowPlanToleratesPlatformFailure(t *testing.T) {
	scheduler, notifier := newTestReminderScheduler(t, &memoryReminderRepo{}, nil)

	notifier.EXPECT().ListScheduled(gomock.Any()).Return(nil, errors.New("unavailable"))

	if err := scheduler.SyncTomorrowPlan(context.Background()); err != nil {
		t.Fatalf("SyncTomorrowPlan() error = %v, want nil", err)
	}
}

func TestWatchResyncsOnPlanChange(t *testing.T) {
	scheduler, notifier := newTestReminderScheduler(t, &memoryReminderRepo{}, nil)
	hub := NewChangeHub()

	notifier.EXPECT().ListScheduled(gomock.Any()).Return(nil, nil).Times(1)

	stop := scheduler.Watch(hub)
	hub.Publish(context.Background(), ListEntries)
	hub.Publish(context.Background(), ListPlanDays)
	stop()
	hub.Publish(context.Background(), ListPlanDays)
}

func TestEditReminderCancelsFreshTriggerWhenStoreFails(t *testing.T) {
	repo := &memoryReminderRepo{
		reminders: []models.Reminder{{ID: "r1", Title: "Feed", Time: "08:00", Enabled: true, NotificationID: "old"}},
		updateErr: errors.New("disk full"),
	}
	scheduler, notifier := newTestReminderScheduler(t, repo, nil)

	newTime := "09:00"
	gomock.InOrder(
		notifier.EXPECT().Cancel(gomock.Any(), "old").Return(nil),
		notifier.EXPECT().RequestPermission(gomock.Any()).Return(true, nil),
		notifier.EXPECT().ScheduleDaily(gomock.Any(), gomock.Any()).Return("fresh", nil),
		notifier.EXPECT().Cancel(gomock.Any(), "fresh").Return(nil),
	)

	if _, err := scheduler.Edit(context.Background(), "r1", ReminderPatch{Time: &newTime}); err == nil {
		t.Fatal("Edit() expected storage error")
	}
}

func TestDetachedSchedulerNeverTouchesTriggers(t *testing.T) {
	repo := &memoryReminderRepo{reminders: []models.Reminder{
		{ID: "r1", Title: "Feed", Time: "08:00", Enabled: true, Repeat: models.RepeatDaily, NotificationID: "live-1"},
	}}
	days := &memoryPlanStore{days: []models.PlanDay{{ID: "d1", Date: "2024-06-02", Time: "10:00", Food: "Pear", AmountGrams: 20}}}
	server, notifier := newTestReminderScheduler(t, repo, days)
	detached := NewReminderScheduler(repo, days, nil, stubTranslator{}, "en", nil, time.UTC)
	ctx := context.Background()

	if !detached.Detached() || server.Detached() {
		t.Fatal("only the scheduler without a notifier should be detached")
	}
	if err := detached.RescheduleAll(ctx); !errors.Is(err, ErrNotifierDetached) {
		t.Fatalf("RescheduleAll() error = %v, want ErrNotifierDetached", err)
	}
	if _, err := detached.Disable(ctx, "r1"); !errors.Is(err, ErrNotifierDetached) {
		t.Fatalf("Disable() error = %v, want ErrNotifierDetached", err)
	}
	if _, err := detached.Create(ctx, ReminderInput{Title: "Nap", Time: "13:00", Enabled: true}); !errors.Is(err, ErrNotifierDetached) {
		t.Fatalf("Create() error = %v, want ErrNotifierDetached", err)
	}
	if err := detached.Delete(ctx, "r1"); !errors.Is(err, ErrNotifierDetached) {
		t.Fatalf("Delete() error = %v, want ErrNotifierDetached", err)
	}
	if err := detached.SyncTomorrowPlan(ctx); err != nil {
		t.Fatalf("SyncTomorrowPlan() unexpected error: %v", err)
	}
	if repo.updates != 0 || repo.reminders[0].NotificationID != "live-1" || len(repo.reminders) != 1 {
		t.Fatalf("detached scheduler wrote reminders: %#v (updates %d)", repo.reminders, repo.updates)
	}

	notifier.EXPECT().Cancel(gomock.Any(), "live-1").Return(nil)
	disabled, err := server.Disable(ctx, "r1")
	if err != nil {
		t.Fatalf("Disable() unexpected error: %v", err)
	}
	if disabled.Enabled || disabled.NotificationID != "" {
		t.Fatalf("Disable() = %#v, want disabled without trigger", disabled)
	}
}
