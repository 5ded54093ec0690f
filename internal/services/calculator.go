package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/terraincognita07/babyfeed/internal/models"
)

type FoodNeed struct {
	Food          string   `json:"food"`
	FoodType      string   `json:"foodType"`
	TotalGrams    float64  `json:"totalGrams"`
	Substitutions []string `json:"substitutions"`
	PackageSize   float64  `json:"packageSize,omitempty"`
	Packages      *int     `json:"packages,omitempty"`
}

// FoodNeeds totals plan amounts per food, matching names case-insensitively.
// The food type is taken from the first occurrence and substitutions are
// merged without duplicates. Largest totals come first.
func FoodNeeds(days []models.PlanDay) []FoodNeed {
	order := make([]string, 0)
	needs := make(map[string]*FoodNeed)
	seenSubstitutions := make(map[string]map[string]struct{})

	for _, day := range days {
		key := strings.ToLower(day.Food)
		need, ok := needs[key]
		if !ok {
			need = &FoodNeed{Food: key, FoodType: day.FoodType, Substitutions: []string{}}
			needs[key] = need
			seenSubstitutions[key] = make(map[string]struct{})
			order = append(order, key)
		}
		need.TotalGrams += day.AmountGrams
		for _, substitution := range day.Substitutions {
			if _, dup := seenSubstitutions[key][substitution]; dup {
				continue
			}
			seenSubstitutions[key][substitution] = struct{}{}
			need.Substitutions = append(need.Substitutions, substitution)
		}
	}

	result := make([]FoodNeed, 0, len(order))
	for _, key := range order {
		result = append(result, *needs[key])
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TotalGrams > result[j].TotalGrams
	})
	return result
}

// PackagesNeeded rounds up to whole packages. It reports false for a
// non-positive package size.
func PackagesNeeded(totalGrams float64, packageSize float64) (int, bool) {
	if packageSize <= 0 {
		return 0, false
	}
	return int(math.Ceil(totalGrams / packageSize)), true
}

type CalculatorService struct {
	days PlanDayReader
}

func NewCalculatorService(days PlanDayReader) *CalculatorService {
	return &CalculatorService{days: days}
}

// Needs returns the food needs of every stored plan day. packageSizes is keyed
// by food name, case-insensitively.
func (service *CalculatorService) Needs(ctx context.Context, packageSizes map[string]float64) ([]FoodNeed, error) {
	days, err := service.days.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list plan days: %w", err)
	}

	sizes := make(map[string]float64, len(packageSizes))
	for food, size := range packageSizes {
		sizes[strings.ToLower(strings.TrimSpace(food))] = size
	}

	needs := FoodNeeds(days)
	for index := range needs {
		size, ok := sizes[needs[index].Food]
		if !ok {
			continue
		}
		if packages, valid := PackagesNeeded(needs[index].TotalGrams, size); valid {
			needs[index].PackageSize = size
			needs[index].Packages = &packages
		}
	}
	return needs, nil
}
