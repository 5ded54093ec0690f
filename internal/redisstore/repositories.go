package redisstore

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/terraincognita07/babyfeed/internal/models"
	"github.com/terraincognita07/babyfeed/internal/services"
)

type FeedEntryRepository struct {
	lists *listStore
}

func (repo *FeedEntryRepository) List(ctx context.Context) ([]models.FeedEntry, error) {
	return readList[models.FeedEntry](ctx, repo.lists, repo.lists.client, services.ListEntries)
}

func (repo *FeedEntryRepository) Create(ctx context.Context, entry *models.FeedEntry) error {
	ensureID(&entry.ID)
	return mutate(ctx, repo.lists, services.ListEntries, func(entries []models.FeedEntry) []models.FeedEntry {
		return append(entries, *entry)
	})
}

func (repo *FeedEntryRepository) Delete(ctx context.Context, id string) error {
	return mutate(ctx, repo.lists, services.ListEntries, func(entries []models.FeedEntry) []models.FeedEntry {
		return removeWhere(entries, func(entry models.FeedEntry) bool { return entry.ID == id })
	})
}

type FoodTypeRepository struct {
	lists *listStore
}

func (repo *FoodTypeRepository) List(ctx context.Context) ([]models.FoodType, error) {
	return readList[models.FoodType](ctx, repo.lists, repo.lists.client, services.ListFoodTypes)
}

func (repo *FoodTypeRepository) Create(ctx context.Context, foodType *models.FoodType) error {
	ensureID(&foodType.ID)
	return mutate(ctx, repo.lists, services.ListFoodTypes, func(foodTypes []models.FoodType) []models.FoodType {
		return append(foodTypes, *foodType)
	})
}

func (repo *FoodTypeRepository) CreateBatch(ctx context.Context, foodTypes []models.FoodType) error {
	if len(foodTypes) == 0 {
		return nil
	}
	for index := range foodTypes {
		ensureID(&foodTypes[index].ID)
	}
	return mutate(ctx, repo.lists, services.ListFoodTypes, func(existing []models.FoodType) []models.FoodType {
		return append(existing, foodTypes...)
	})
}

func (repo *FoodTypeRepository) Update(ctx context.Context, foodType *models.FoodType) error {
	return mutate(ctx, repo.lists, services.ListFoodTypes, func(foodTypes []models.FoodType) []models.FoodType {
		return replaceByID(foodTypes, foodType.ID, func(item models.FoodType) string { return item.ID }, *foodType)
	})
}

func (repo *FoodTypeRepository) Delete(ctx context.Context, id string) error {
	return mutate(ctx, repo.lists, services.ListFoodTypes, func(foodTypes []models.FoodType) []models.FoodType {
		return removeWhere(foodTypes, func(item models.FoodType) bool { return item.ID == id })
	})
}

type ReminderRepository struct {
	lists *listStore
}

func (repo *ReminderRepository) List(ctx context.Context) ([]models.Reminder, error) {
	return readList[models.Reminder](ctx, repo.lists, repo.lists.client, services.ListReminders)
}

func (repo *ReminderRepository) Create(ctx context.Context, reminder *models.Reminder) error {
	ensureID(&reminder.ID)
	return mutate(ctx, repo.lists, services.ListReminders, func(reminders []models.Reminder) []models.Reminder {
		return append(reminders, *reminder)
	})
}

func (repo *ReminderRepository) Update(ctx context.Context, reminder *models.Reminder) error {
	return mutate(ctx, repo.lists, services.ListReminders, func(reminders []models.Reminder) []models.Reminder {
		return replaceByID(reminders, reminder.ID, func(item models.Reminder) string { return item.ID }, *reminder)
	})
}

func (repo *ReminderRepository) Delete(ctx context.Context, id string) error {
	return mutate(ctx, repo.lists, services.ListReminders, func(reminders []models.Reminder) []models.Reminder {
		return removeWhere(reminders, func(item models.Reminder) bool { return item.ID == id })
	})
}

type PlanDayRepository struct {
	lists *listStore
}

func (repo *PlanDayRepository) List(ctx context.Context) ([]models.PlanDay, error) {
	return readList[models.PlanDay](ctx, repo.lists, repo.lists.client, services.ListPlanDays)
}

func (repo *PlanDayRepository) Update(ctx context.Context, day *models.PlanDay) error {
	return mutate(ctx, repo.lists, services.ListPlanDays, func(days []models.PlanDay) []models.PlanDay {
		return replaceByID(days, day.ID, func(item models.PlanDay) string { return item.ID }, *day)
	})
}

type ScheduleRepository struct {
	lists *listStore
}

func (repo *ScheduleRepository) List(ctx context.Context) ([]models.LoadedSchedule, error) {
	return readList[models.LoadedSchedule](ctx, repo.lists, repo.lists.client, services.ListSchedules)
}

// SaveImport appends plan days and the schedule record in one MULTI/EXEC.
func (repo *ScheduleRepository) SaveImport(ctx context.Context, schedule models.LoadedSchedule, days []models.PlanDay) error {
	ensureID(&schedule.ID)
	return repo.lists.transact(ctx, func(tx *redis.Tx) error {
		existingDays, err := readList[models.PlanDay](ctx, repo.lists, tx, services.ListPlanDays)
		if err != nil {
			return err
		}
		schedules, err := readList[models.LoadedSchedule](ctx, repo.lists, tx, services.ListSchedules)
		if err != nil {
			return err
		}

		for _, day := range days {
			ensureID(&day.ID)
			existingDays = append(existingDays, day)
		}
		schedules = append(schedules, schedule)

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if err := writeList(ctx, pipe, services.ListPlanDays, existingDays); err != nil {
				return err
			}
			return writeList(ctx, pipe, services.ListSchedules, schedules)
		})
		return err
	}, services.ListPlanDays, services.ListSchedules)
}

// DeleteCascade drops the schedule's plan days and the schedule record in one
// MULTI/EXEC.
func (repo *ScheduleRepository) DeleteCascade(ctx context.Context, scheduleID string) error {
	return repo.lists.transact(ctx, func(tx *redis.Tx) error {
		days, err := readList[models.PlanDay](ctx, repo.lists, tx, services.ListPlanDays)
		if err != nil {
			return err
		}
		schedules, err := readList[models.LoadedSchedule](ctx, repo.lists, tx, services.ListSchedules)
		if err != nil {
			return err
		}

		days = removeWhere(days, func(day models.PlanDay) bool { return day.ScheduleID == scheduleID })
		schedules = removeWhere(schedules, func(schedule models.LoadedSchedule) bool { return schedule.ID == scheduleID })

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if err := writeList(ctx, pipe, services.ListPlanDays, days); err != nil {
				return err
			}
			return writeList(ctx, pipe, services.ListSchedules, schedules)
		})
		return err
	}, services.ListPlanDays, services.ListSchedules)
}
