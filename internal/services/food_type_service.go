package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/terraincognita07/babyfeed/internal/models"
)

var (
	ErrInvalidFoodTypeName     = errors.New("invalid food type name")
	ErrInvalidFoodTypeUnit     = errors.New("invalid food type unit")
	ErrInvalidFoodTypeColor    = errors.New("invalid food type color")
	ErrInvalidFoodTypePriority = errors.New("invalid food type priority")
	ErrInvalidWeeklyMinimum    = errors.New("invalid weekly minimum amount")
	ErrFoodTypeNotFound        = errors.New("food type not found")
	ErrSaveFoodTypeFailed      = errors.New("save food type failed")
)

const maxFoodTypeNameLength = 80

var hexFoodTypeColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type FoodTypeRepository interface {
	List(ctx context.Context) ([]models.FoodType, error)
	Create(ctx context.Context, foodType *models.FoodType) error
	CreateBatch(ctx context.Context, foodTypes []models.FoodType) error
	Update(ctx context.Context, foodType *models.FoodType) error
	Delete(ctx context.Context, id string) error
}

type FoodTypeInput struct {
	Name                string              `json:"name"`
	Unit                string              `json:"unit"`
	Color               string              `json:"color"`
	Priority            models.FoodPriority `json:"priority"`
	WeeklyMinimumAmount *float64            `json:"weeklyMinimumAmount"`
}

type FoodTypeService struct {
	foodTypes FoodTypeRepository
	changes   ChangePublisher
}

func NewFoodTypeService(foodTypes FoodTypeRepository, changes ChangePublisher) *FoodTypeService {
	return &FoodTypeService{
		foodTypes: foodTypes,
		changes:   changes,
	}
}

// ListFoodTypes returns stored food types, seeding the defaults when the list
// is empty.
func (service *FoodTypeService) ListFoodTypes(ctx context.Context) ([]models.FoodType, error) {
	foodTypes, err := service.foodTypes.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(foodTypes) > 0 {
		return foodTypes, nil
	}

	if err := service.foodTypes.CreateBatch(ctx, DefaultFoodTypeRecords()); err != nil {
		return nil, fmt.Errorf("seed default food types: %w", err)
	}
	return service.foodTypes.List(ctx)
}

func (service *FoodTypeService) Create(ctx context.Context, input FoodTypeInput) (models.FoodType, error) {
	foodType, err := input.normalize()
	if err != nil {
		return models.FoodType{}, err
	}
	if err := service.foodTypes.Create(ctx, &foodType); err != nil {
		return models.FoodType{}, fmt.Errorf("%w: %v", ErrSaveFoodTypeFailed, err)
	}
	service.publish(ctx)
	return foodType, nil
}

func (service *FoodTypeService) Update(ctx context.Context, id string, input FoodTypeInput) (models.FoodType, error) {
	updated, err := input.normalize()
	if err != nil {
		return models.FoodType{}, err
	}

	existing, err := service.find(ctx, id)
	if err != nil {
		return models.FoodType{}, err
	}
	updated.ID = existing.ID
	updated.Position = existing.Position
	if err := service.foodTypes.Update(ctx, &updated); err != nil {
		return models.FoodType{}, fmt.Errorf("%w: %v", ErrSaveFoodTypeFailed, err)
	}
	service.publish(ctx)
	return updated, nil
}

// Delete removes the food type only. Entries that reference it stay stored and
// drop out of aggregation.
func (service *FoodTypeService) Delete(ctx context.Context, id string) error {
	if _, err := service.find(ctx, id); err != nil {
		return err
	}
	if err := service.foodTypes.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete food type %s: %w", id, err)
	}
	service.publish(ctx)
	return nil
}

func (service *FoodTypeService) find(ctx context.Context, id string) (models.FoodType, error) {
	foodTypes, err := service.foodTypes.List(ctx)
	if err != nil {
		return models.FoodType{}, fmt.Errorf("list food types: %w", err)
	}
	for _, foodType := range foodTypes {
		if foodType.ID == id {
			return foodType, nil
		}
	}
	return models.FoodType{}, ErrFoodTypeNotFound
}

func (service *FoodTypeService) publish(ctx context.Context) {
	if service.changes != nil {
		service.changes.Publish(ctx, ListFoodTypes)
	}
}

func (input FoodTypeInput) normalize() (models.FoodType, error) {
	name := strings.TrimSpace(input.Name)
	unit := strings.TrimSpace(input.Unit)
	color := strings.TrimSpace(input.Color)
	priority := models.FoodPriority(strings.ToLower(strings.TrimSpace(string(input.Priority))))

	if name == "" || len(name) > maxFoodTypeNameLength {
		return models.FoodType{}, ErrInvalidFoodTypeName
	}
	if unit == "" {
		return models.FoodType{}, ErrInvalidFoodTypeUnit
	}
	if !hexFoodTypeColorPattern.MatchString(color) {
		return models.FoodType{}, ErrInvalidFoodTypeColor
	}
	if !priority.Valid() {
		return models.FoodType{}, ErrInvalidFoodTypePriority
	}
	if input.WeeklyMinimumAmount != nil && *input.WeeklyMinimumAmount < 0 {
		return models.FoodType{}, ErrInvalidWeeklyMinimum
	}

	return models.FoodType{
		Name:                name,
		Unit:                unit,
		Color:               strings.ToUpper(color),
		Priority:            priority,
		WeeklyMinimumAmount: input.WeeklyMinimumAmount,
	}, nil
}

func DefaultFoodTypeRecords() []models.FoodType {
	defaults := models.DefaultFoodTypes()
	records := make([]models.FoodType, 0, len(defaults))
	for _, item := range defaults {
		records = append(records, models.FoodType{
			ID:    item.ID,
			Name:  item.Name,
			Unit:  item.Unit,
			Color: item.Color,
		})
	}
	return records
}
