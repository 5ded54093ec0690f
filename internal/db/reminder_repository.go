package db

import (
	"context"

	"github.com/terraincognita07/babyfeed/internal/models"
	"gorm.io/gorm"
)

type ReminderRepository struct {
	database *gorm.DB
}

func NewReminderRepository(database *gorm.DB) *ReminderRepository {
	return &ReminderRepository{database: database}
}

func (repo *ReminderRepository) List(ctx context.Context) ([]models.Reminder, error) {
	reminders := make([]models.Reminder, 0)
	if err := repo.database.WithContext(ctx).Order("position ASC, id ASC").Find(&reminders).Error; err != nil {
		return nil, err
	}
	return reminders, nil
}

func (repo *ReminderRepository) Create(ctx context.Context, reminder *models.Reminder) error {
	return repo.database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		position, err := nextPosition(ctx, tx, "reminders")
		if err != nil {
			return err
		}
		ensureID(&reminder.ID)
		reminder.Position = position
		return tx.Create(reminder).Error
	})
}

func (repo *ReminderRepository) Update(ctx context.Context, reminder *models.Reminder) error {
	return repo.database.WithContext(ctx).
		Model(&models.Reminder{}).
		Where("id = ?", reminder.ID).
		Select("title", "time", "enabled", "repeat", "notification_id").
		Updates(reminder).Error
}

func (repo *ReminderRepository) Delete(ctx context.Context, id string) error {
	return repo.database.WithContext(ctx).Where("id = ?", id).Delete(&models.Reminder{}).Error
}
