package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/terraincognita07/babyfeed/internal/models"
)

var (
	ErrInvalidEntryAmount = errors.New("invalid entry amount")
	ErrUnknownFoodType    = errors.New("unknown food type")
	ErrCreateEntryFailed  = errors.New("create entry failed")
)

type FeedEntryRepository interface {
	List(ctx context.Context) ([]models.FeedEntry, error)
	Create(ctx context.Context, entry *models.FeedEntry) error
	Delete(ctx context.Context, id string) error
}

type EntryFoodTypeReader interface {
	ListFoodTypes(ctx context.Context) ([]models.FoodType, error)
}

type EntryInput struct {
	FoodTypeID string  `json:"foodTypeId"`
	Amount     float64 `json:"amount"`
	Timestamp  int64   `json:"timestamp"`
}

type EntryService struct {
	entries   FeedEntryRepository
	foodTypes EntryFoodTypeReader
	changes   ChangePublisher
	now       func() time.Time
}

func NewEntryService(entries FeedEntryRepository, foodTypes EntryFoodTypeReader, changes ChangePublisher) *EntryService {
	return &EntryService{
		entries:   entries,
		foodTypes: foodTypes,
		changes:   changes,
		now:       time.Now,
	}
}

func (service *EntryService) List(ctx context.Context) ([]models.FeedEntry, error) {
	return service.entries.List(ctx)
}

// Add records a feed. A zero timestamp means now.
func (service *EntryService) Add(ctx context.Context, input EntryInput) (models.FeedEntry, error) {
	if input.Amount <= 0 {
		return models.FeedEntry{}, ErrInvalidEntryAmount
	}

	foodTypes, err := service.foodTypes.ListFoodTypes(ctx)
	if err != nil {
		return models.FeedEntry{}, fmt.Errorf("list food types: %w", err)
	}
	known := false
	for _, foodType := range foodTypes {
		if foodType.ID == input.FoodTypeID {
			known = true
			break
		}
	}
	if !known {
		return models.FeedEntry{}, ErrUnknownFoodType
	}

	timestamp := input.Timestamp
	if timestamp <= 0 {
		timestamp = service.now().UnixMilli()
	}
	entry := models.FeedEntry{
		FoodTypeID: input.FoodTypeID,
		Amount:     input.Amount,
		Timestamp:  timestamp,
	}
	if err := service.entries.Create(ctx, &entry); err != nil {
		return models.FeedEntry{}, fmt.Errorf("%w: %v", ErrCreateEntryFailed, err)
	}
	if service.changes != nil {
		service.changes.Publish(ctx, ListEntries)
	}
	return entry, nil
}

func (service *EntryService) Delete(ctx context.Context, id string) error {
	if err := service.entries.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete entry %s: %w", id, err)
	}
	if service.changes != nil {
		service.changes.Publish(ctx, ListEntries)
	}
	return nil
}
