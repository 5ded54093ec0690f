package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/terraincognita07/babyfeed/internal/models"
)

type AggregatedFood struct {
	FoodTypeID string  `json:"foodTypeId"`
	Name       string  `json:"name"`
	Color      string  `json:"color"`
	Unit       string  `json:"unit"`
	Amount     float64 `json:"amount"`
}

type ProgressLevel string

const (
	ProgressGreen  ProgressLevel = "green"
	ProgressYellow ProgressLevel = "yellow"
	ProgressOrange ProgressLevel = "orange"
	ProgressRed    ProgressLevel = "red"
)

type MinimumProgress struct {
	FoodTypeID string        `json:"foodTypeId"`
	Name       string        `json:"name"`
	Unit       string        `json:"unit"`
	Amount     float64       `json:"amount"`
	Minimum    float64       `json:"minimum"`
	Ratio      float64       `json:"ratio"`
	Level      ProgressLevel `json:"level"`
}

type StatsOverview struct {
	Period     Period            `json:"period"`
	Start      time.Time         `json:"start"`
	End        time.Time         `json:"end"`
	Breakdown  []AggregatedFood  `json:"breakdown"`
	Total      float64           `json:"total"`
	WeeklyGoal []MinimumProgress `json:"weeklyGoal"`
}

type StatsEntryReader interface {
	List(ctx context.Context) ([]models.FeedEntry, error)
}

type StatsFoodTypeReader interface {
	ListFoodTypes(ctx context.Context) ([]models.FoodType, error)
}

type StatsService struct {
	entries   StatsEntryReader
	foodTypes StatsFoodTypeReader
	location  *time.Location
}

func NewStatsService(entries StatsEntryReader, foodTypes StatsFoodTypeReader, location *time.Location) *StatsService {
	if location == nil {
		location = time.Local
	}
	return &StatsService{
		entries:   entries,
		foodTypes: foodTypes,
		location:  location,
	}
}

func (service *StatsService) Breakdown(ctx context.Context, period Period, ref time.Time) ([]AggregatedFood, error) {
	entries, foodTypes, err := service.load(ctx)
	if err != nil {
		return nil, err
	}
	return AggregateFeeds(entries, foodTypes, period, ref, service.location), nil
}

// Overview is the breakdown for the requested period plus weekly-minimum
// progress for the week containing ref.
func (service *StatsService) Overview(ctx context.Context, period Period, ref time.Time) (StatsOverview, error) {
	entries, foodTypes, err := service.load(ctx)
	if err != nil {
		return StatsOverview{}, err
	}

	window := PeriodWindow(period, ref, service.location)
	breakdown := AggregateFeeds(entries, foodTypes, period, ref, service.location)
	total := 0.0
	for _, item := range breakdown {
		total += item.Amount
	}

	weekly := breakdown
	if period != PeriodWeekly {
		weekly = AggregateFeeds(entries, foodTypes, PeriodWeekly, ref, service.location)
	}

	return StatsOverview{
		Period:     period,
		Start:      window.Start,
		End:        window.End,
		Breakdown:  breakdown,
		Total:      total,
		WeeklyGoal: WeeklyProgress(foodTypes, weekly),
	}, nil
}

func (service *StatsService) load(ctx context.Context) ([]models.FeedEntry, []models.FoodType, error) {
	entries, err := service.entries.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list feed entries: %w", err)
	}
	foodTypes, err := service.foodTypes.ListFoodTypes(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list food types: %w", err)
	}
	return entries, foodTypes, nil
}

// AggregateFeeds sums entry amounts per food type inside the period window
// containing ref. Entries whose food type no longer exists are dropped. The
// result is ordered by amount, largest first; ties keep first-seen order.
func AggregateFeeds(entries []models.FeedEntry, foodTypes []models.FoodType, period Period, ref time.Time, location *time.Location) []AggregatedFood {
	window := PeriodWindow(period, ref, location)

	order := make([]string, 0)
	sums := make(map[string]float64)
	for _, entry := range entries {
		if !window.Contains(entry.Timestamp) {
			continue
		}
		if _, seen := sums[entry.FoodTypeID]; !seen {
			order = append(order, entry.FoodTypeID)
		}
		sums[entry.FoodTypeID] += entry.Amount
	}

	foodTypeByID := make(map[string]models.FoodType, len(foodTypes))
	for _, foodType := range foodTypes {
		foodTypeByID[foodType.ID] = foodType
	}

	result := make([]AggregatedFood, 0, len(order))
	for _, id := range order {
		foodType, ok := foodTypeByID[id]
		if !ok {
			continue
		}
		result = append(result, AggregatedFood{
			FoodTypeID: foodType.ID,
			Name:       foodType.Name,
			Color:      foodType.Color,
			Unit:       foodType.Unit,
			Amount:     sums[id],
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Amount > result[j].Amount
	})
	return result
}

func ProgressLevelFor(ratio float64) ProgressLevel {
	switch {
	case ratio >= 1:
		return ProgressGreen
	case ratio >= 0.5:
		return ProgressYellow
	case ratio >= 0.25:
		return ProgressOrange
	default:
		return ProgressRed
	}
}

// WeeklyProgress compares a weekly breakdown against each food type's weekly
// minimum. Food types without a positive minimum are skipped.
func WeeklyProgress(foodTypes []models.FoodType, weekly []AggregatedFood) []MinimumProgress {
	amounts := make(map[string]float64, len(weekly))
	for _, item := range weekly {
		amounts[item.FoodTypeID] = item.Amount
	}

	ordered := make([]models.FoodType, len(foodTypes))
	copy(ordered, foodTypes)
	SortFoodTypesByPriority(ordered)

	result := make([]MinimumProgress, 0)
	for _, foodType := range ordered {
		if foodType.WeeklyMinimumAmount == nil || *foodType.WeeklyMinimumAmount <= 0 {
			continue
		}
		minimum := *foodType.WeeklyMinimumAmount
		amount := amounts[foodType.ID]
		ratio := amount / minimum
		result = append(result, MinimumProgress{
			FoodTypeID: foodType.ID,
			Name:       foodType.Name,
			Unit:       foodType.Unit,
			Amount:     amount,
			Minimum:    minimum,
			Ratio:      ratio,
			Level:      ProgressLevelFor(ratio),
		})
	}
	return result
}

// SortFoodTypesByPriority orders high, middle, low, then unprioritized food
// types, keeping storage order within each group.
func SortFoodTypesByPriority(foodTypes []models.FoodType) {
	sort.SliceStable(foodTypes, func(i, j int) bool {
		return foodTypes[i].Priority.Rank() < foodTypes[j].Priority.Rank()
	})
}
