package services

import (
	"context"
	"fmt"

	"github.com/terraincognita07/babyfeed/internal/models"
)

type memoryPlanStore struct {
	days       []models.PlanDay
	schedules  []models.LoadedSchedule
	saveErr    error
	saveCalls  int
	deleteHits []string
}

func (store *memoryPlanStore) List(context.Context) ([]models.PlanDay, error) {
	result := make([]models.PlanDay, len(store.days))
	copy(result, store.days)
	return result, nil
}

func (store *memoryPlanStore) Update(_ context.Context, day *models.PlanDay) error {
	for index := range store.days {
		if store.days[index].ID == day.ID {
			store.days[index] = *day
			return nil
		}
	}
	return nil
}

type memoryScheduleRepo struct {
	store *memoryPlanStore
}

func (repo memoryScheduleRepo) List(context.Context) ([]models.LoadedSchedule, error) {
	result := make([]models.LoadedSchedule, len(repo.store.schedules))
	copy(result, repo.store.schedules)
	return result, nil
}

func (repo memoryScheduleRepo) SaveImport(_ context.Context, schedule models.LoadedSchedule, days []models.PlanDay) error {
	repo.store.saveCalls++
	if repo.store.saveErr != nil {
		return repo.store.saveErr
	}
	repo.store.days = append(repo.store.days, days...)
	repo.store.schedules = append(repo.store.schedules, schedule)
	return nil
}

func (repo memoryScheduleRepo) DeleteCascade(_ context.Context, scheduleID string) error {
	repo.store.deleteHits = append(repo.store.deleteHits, scheduleID)
	kept := make([]models.PlanDay, 0, len(repo.store.days))
	for _, day := range repo.store.days {
		if day.ScheduleID != scheduleID {
			kept = append(kept, day)
		}
	}
	repo.store.days = kept

	schedules := make([]models.LoadedSchedule, 0, len(repo.store.schedules))
	for _, schedule := range repo.store.schedules {
		if schedule.ID != scheduleID {
			schedules = append(schedules, schedule)
		}
	}
	repo.store.schedules = schedules
	return nil
}

type recordingPublisher struct {
	lists []string
}

func (publisher *recordingPublisher) Publish(_ context.Context, list string) {
	publisher.lists = append(publisher.lists, list)
}

func sequentialIDs(prefix string) func() string {
	next := 0
	return func() string {
		next++
		return fmt.Sprintf("%s-%d", prefix, next)
	}
}
