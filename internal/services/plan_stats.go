package services

import (
	"math"
	"sort"

	"github.com/terraincognita07/babyfeed/internal/models"
)

type PlanSummary struct {
	TotalDays       int     `json:"totalDays"`
	FirstDate       string  `json:"firstDate"`
	LastDate        string  `json:"lastDate"`
	UniqueFoods     int     `json:"uniqueFoods"`
	UniqueFoodTypes int     `json:"uniqueFoodTypes"`
	TotalGrams      float64 `json:"totalGrams"`
}

type PlanChartSlice struct {
	FoodType string  `json:"foodType"`
	Color    string  `json:"color"`
	Grams    float64 `json:"grams"`
}

type FoodStat struct {
	Food         string  `json:"food"`
	TotalGrams   float64 `json:"totalGrams"`
	Days         int     `json:"days"`
	AverageGrams float64 `json:"averageGrams"`
}

type PlanWeek struct {
	SourceMonth int              `json:"sourceMonth"`
	WeekNumber  int              `json:"weekNumber"`
	TotalGrams  float64          `json:"totalGrams"`
	Days        []models.PlanDay `json:"days"`
}

type PlanStats struct {
	Summary *PlanSummary     `json:"summary"`
	Chart   []PlanChartSlice `json:"chart"`
	PerFood []FoodStat       `json:"perFood"`
	Weeks   []PlanWeek       `json:"weeks"`
}

// ColorAssigner hands out palette colors to names in first-request order and
// keeps each name's color stable for its lifetime.
type ColorAssigner struct {
	palette  []string
	assigned map[string]string
	next     int
}

func NewColorAssigner(palette []string) *ColorAssigner {
	if len(palette) == 0 {
		palette = models.PresetColors()
	}
	return &ColorAssigner{
		palette:  palette,
		assigned: make(map[string]string),
	}
}

func (assigner *ColorAssigner) Color(name string) string {
	if color, ok := assigner.assigned[name]; ok {
		return color
	}
	color := assigner.palette[assigner.next%len(assigner.palette)]
	assigner.next++
	assigner.assigned[name] = color
	return color
}

func BuildPlanStats(days []models.PlanDay, colors *ColorAssigner) PlanStats {
	return PlanStats{
		Summary: SummarizePlan(days),
		Chart:   PlanChart(days, colors),
		PerFood: PerFoodStats(days),
		Weeks:   WeeklyBreakdown(days),
	}
}

// SummarizePlan returns nil when there are no plan days.
func SummarizePlan(days []models.PlanDay) *PlanSummary {
	if len(days) == 0 {
		return nil
	}

	dates := make([]string, 0, len(days))
	foods := make(map[string]struct{})
	foodTypes := make(map[string]struct{})
	total := 0.0
	for _, day := range days {
		dates = append(dates, day.Date)
		foods[day.Food] = struct{}{}
		foodTypes[day.FoodType] = struct{}{}
		total += day.AmountGrams
	}
	sort.Strings(dates)

	return &PlanSummary{
		TotalDays:       len(days),
		FirstDate:       dates[0],
		LastDate:        dates[len(dates)-1],
		UniqueFoods:     len(foods),
		UniqueFoodTypes: len(foodTypes),
		TotalGrams:      total,
	}
}

func PlanChart(days []models.PlanDay, colors *ColorAssigner) []PlanChartSlice {
	order := make([]string, 0)
	sums := make(map[string]float64)
	for _, day := range days {
		if _, seen := sums[day.FoodType]; !seen {
			order = append(order, day.FoodType)
		}
		sums[day.FoodType] += day.AmountGrams
	}

	result := make([]PlanChartSlice, 0, len(order))
	for _, foodType := range order {
		result = append(result, PlanChartSlice{
			FoodType: foodType,
			Color:    colors.Color(foodType),
			Grams:    sums[foodType],
		})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Grams > result[j].Grams
	})
	return result
}

func PerFoodStats(days []models.PlanDay) []FoodStat {
	order := make([]string, 0)
	stats := make(map[string]*FoodStat)
	for _, day := range days {
		stat, ok := stats[day.Food]
		if !ok {
			stat = &FoodStat{Food: day.Food}
			stats[day.Food] = stat
			order = append(order, day.Food)
		}
		stat.TotalGrams += day.AmountGrams
		stat.Days++
	}

	result := make([]FoodStat, 0, len(order))
	for _, food := range order {
		stat := *stats[food]
		stat.AverageGrams = math.Round(stat.TotalGrams / float64(stat.Days))
		result = append(result, stat)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TotalGrams > result[j].TotalGrams
	})
	return result
}

// WeeklyBreakdown groups plan days by source month and week number, ascending.
func WeeklyBreakdown(days []models.PlanDay) []PlanWeek {
	type weekKey struct {
		month int
		week  int
	}

	index := make(map[weekKey]int)
	result := make([]PlanWeek, 0)
	for _, day := range days {
		key := weekKey{month: day.SourceMonth, week: day.WeekNumber}
		position, ok := index[key]
		if !ok {
			position = len(result)
			index[key] = position
			result = append(result, PlanWeek{SourceMonth: day.SourceMonth, WeekNumber: day.WeekNumber, Days: []models.PlanDay{}})
		}
		result[position].Days = append(result[position].Days, day)
		result[position].TotalGrams += day.AmountGrams
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].SourceMonth != result[j].SourceMonth {
			return result[i].SourceMonth < result[j].SourceMonth
		}
		return result[i].WeekNumber < result[j].WeekNumber
	})
	return result
}
