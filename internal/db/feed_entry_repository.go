package db

import (
	"context"

	"github.com/terraincognita07/babyfeed/internal/models"
	"gorm.io/gorm"
)

type FeedEntryRepository struct {
	database *gorm.DB
}

func NewFeedEntryRepository(database *gorm.DB) *FeedEntryRepository {
	return &FeedEntryRepository{database: database}
}

func (repo *FeedEntryRepository) List(ctx context.Context) ([]models.FeedEntry, error) {
	entries := make([]models.FeedEntry, 0)
	if err := repo.database.WithContext(ctx).Order("timestamp ASC, id ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *FeedEntryRepository) Create(ctx context.Context, entry *models.FeedEntry) error {
	ensureID(&entry.ID)
	return repo.database.WithContext(ctx).Create(entry).Error
}

func (repo *FeedEntryRepository) Delete(ctx context.Context, id string) error {
	return repo.database.WithContext(ctx).Where("id = ?", id).Delete(&models.FeedEntry{}).Error
}
