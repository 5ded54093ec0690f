package db

import (
	"context"

	"github.com/terraincognita07/babyfeed/internal/models"
	"gorm.io/gorm"
)

type FoodTypeRepository struct {
	database *gorm.DB
}

func NewFoodTypeRepository(database *gorm.DB) *FoodTypeRepository {
	return &FoodTypeRepository{database: database}
}

func (repo *FoodTypeRepository) List(ctx context.Context) ([]models.FoodType, error) {
	foodTypes := make([]models.FoodType, 0)
	if err := repo.database.WithContext(ctx).Order("position ASC, id ASC").Find(&foodTypes).Error; err != nil {
		return nil, err
	}
	return foodTypes, nil
}

func (repo *FoodTypeRepository) Create(ctx context.Context, foodType *models.FoodType) error {
	return repo.database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		position, err := nextPosition(ctx, tx, "food_types")
		if err != nil {
			return err
		}
		ensureID(&foodType.ID)
		foodType.Position = position
		return tx.Create(foodType).Error
	})
}

func (repo *FoodTypeRepository) CreateBatch(ctx context.Context, foodTypes []models.FoodType) error {
	if len(foodTypes) == 0 {
		return nil
	}
	return repo.database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		position, err := nextPosition(ctx, tx, "food_types")
		if err != nil {
			return err
		}
		for index := range foodTypes {
			ensureID(&foodTypes[index].ID)
			foodTypes[index].Position = position + index
		}
		return tx.Create(&foodTypes).Error
	})
}

// Update overwrites every column of an existing row. Position is preserved.
func (repo *FoodTypeRepository) Update(ctx context.Context, foodType *models.FoodType) error {
	return repo.database.WithContext(ctx).
		Model(&models.FoodType{}).
		Where("id = ?", foodType.ID).
		Select("name", "unit", "color", "priority", "weekly_minimum_amount").
		Updates(foodType).Error
}

func (repo *FoodTypeRepository) Delete(ctx context.Context, id string) error {
	return repo.database.WithContext(ctx).Where("id = ?", id).Delete(&models.FoodType{}).Error
}
