package db

import (
	"context"

	"github.com/terraincognita07/babyfeed/internal/models"
	"gorm.io/gorm"
)

type PlanDayRepository struct {
	database *gorm.DB
}

func NewPlanDayRepository(database *gorm.DB) *PlanDayRepository {
	return &PlanDayRepository{database: database}
}

func (repo *PlanDayRepository) List(ctx context.Context) ([]models.PlanDay, error) {
	days := make([]models.PlanDay, 0)
	if err := repo.database.WithContext(ctx).Order("position ASC, id ASC").Find(&days).Error; err != nil {
		return nil, err
	}
	return days, nil
}

func (repo *PlanDayRepository) Update(ctx context.Context, day *models.PlanDay) error {
	return repo.database.WithContext(ctx).
		Model(&models.PlanDay{}).
		Where("id = ?", day.ID).
		Select("date", "time", "food_type", "food", "amount_grams", "substitutions", "notes").
		Updates(day).Error
}

type ScheduleRepository struct {
	database *gorm.DB
}

func NewScheduleRepository(database *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{database: database}
}

func (repo *ScheduleRepository) List(ctx context.Context) ([]models.LoadedSchedule, error) {
	schedules := make([]models.LoadedSchedule, 0)
	if err := repo.database.WithContext(ctx).Order("position ASC, id ASC").Find(&schedules).Error; err != nil {
		return nil, err
	}
	return schedules, nil
}

// SaveImport appends the plan days and then the schedule record in one
// transaction, so a failed import leaves neither behind.
func (repo *ScheduleRepository) SaveImport(ctx context.Context, schedule models.LoadedSchedule, days []models.PlanDay) error {
	return repo.database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dayPosition, err := nextPosition(ctx, tx, "plan_days")
		if err != nil {
			return err
		}
		if len(days) > 0 {
			rows := make([]models.PlanDay, len(days))
			copy(rows, days)
			for index := range rows {
				ensureID(&rows[index].ID)
				rows[index].Position = dayPosition + index
			}
			if err := tx.CreateInBatches(&rows, 200).Error; err != nil {
				return err
			}
		}

		schedulePosition, err := nextPosition(ctx, tx, "loaded_schedules")
		if err != nil {
			return err
		}
		ensureID(&schedule.ID)
		schedule.Position = schedulePosition
		return tx.Create(&schedule).Error
	})
}

// DeleteCascade removes a schedule's plan days and then the schedule record.
func (repo *ScheduleRepository) DeleteCascade(ctx context.Context, scheduleID string) error {
	return repo.database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("schedule_id = ?", scheduleID).Delete(&models.PlanDay{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", scheduleID).Delete(&models.LoadedSchedule{}).Error
	})
}
