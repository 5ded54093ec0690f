package services

import (
	"testing"

	"github.com/terraincognita07/babyfeed/internal/models"
)

func samplePlanDays() []models.PlanDay {
	return []models.PlanDay{
		{ID: "1", Date: "2024-06-03", FoodType: "vegetable", Food: "Zucchini", AmountGrams: 30, SourceMonth: 6, WeekNumber: 2},
		{ID: "2", Date: "2024-06-01", FoodType: "vegetable", Food: "Zucchini", AmountGrams: 25, SourceMonth: 6, WeekNumber: 1},
		{ID: "3", Date: "2024-06-02", FoodType: "fruit", Food: "Apple", AmountGrams: 100, SourceMonth: 6, WeekNumber: 1},
		{ID: "4", Date: "2024-06-04", FoodType: "cereal", Food: "Rice", AmountGrams: 10, SourceMonth: 5, WeekNumber: 4},
	}
}

func TestSummarizePlan(t *testing.T) {
	if got := SummarizePlan(nil); got != nil {
		t.Fatalf("SummarizePlan(nil) = %#v, want nil", got)
	}

	summary := SummarizePlan(samplePlanDays())
	if summary.TotalDays != 4 || summary.FirstDate != "2024-06-01" || summary.LastDate != "2024-06-04" {
		t.Fatalf("SummarizePlan() = %#v, want 4 days 2024-06-01..2024-06-04", summary)
	}
	if summary.UniqueFoods != 3 || summary.UniqueFoodTypes != 3 || summary.TotalGrams != 165 {
		t.Fatalf("SummarizePlan() = %#v, want 3 foods, 3 types, 165 g", summary)
	}
}

func TestPlanChartUsesExplicitColorAssigner(t *testing.T) {
	colors := NewColorAssigner([]string{"#111111", "#222222"})

	chart := PlanChart(samplePlanDays(), colors)
	if len(chart) != 3 {
		t.Fatalf("PlanChart() = %#v, want 3 slices", chart)
	}
	if chart[0].FoodType != "fruit" || chart[0].Grams != 100 {
		t.Fatalf("PlanChart()[0] = %#v, want fruit 100", chart[0])
	}
	if chart[1].FoodType != "vegetable" || chart[1].Color != "#111111" {
		t.Fatalf("PlanChart()[1] = %#v, want vegetable with first palette color", chart[1])
	}
	if chart[0].Color != "#222222" || chart[2].Color != "#111111" {
		t.Fatalf("PlanChart() colors = %s, %s, want palette to wrap", chart[0].Color, chart[2].Color)
	}

	again := PlanChart(samplePlanDays(), NewColorAssigner([]string{"#111111", "#222222"}))
	for index := range chart {
		if chart[index] != again[index] {
			t.Fatalf("PlanChart() not deterministic across assigners: %#v vs %#v", chart, again)
		}
	}
}

func TestPerFoodStatsRoundsAverage(t *testing.T) {
	stats := PerFoodStats(samplePlanDays())
	if len(stats) != 3 {
		t.Fatalf("PerFoodStats() = %#v, want 3 foods", stats)
	}
	if stats[0].Food != "Apple" || stats[1].Food != "Zucchini" || stats[2].Food != "Rice" {
		t.Fatalf("PerFoodStats() order = %#v, want Apple, Zucchini, Rice", stats)
	}
	if stats[1].Days != 2 || stats[1].TotalGrams != 55 || stats[1].AverageGrams != 28 {
		t.Fatalf("PerFoodStats() zucchini = %#v, want 2 days, 55 g, avg 28", stats[1])
	}
}

func TestWeeklyBreakdownSortsByMonthThenWeek(t *testing.T) {
	weeks := WeeklyBreakdown(samplePlanDays())
	if len(weeks) != 3 {
		t.Fatalf("WeeklyBreakdown() = %#v, want 3 weeks", weeks)
	}
	if weeks[0].SourceMonth != 5 || weeks[1].WeekNumber != 1 || weeks[2].WeekNumber != 2 {
		t.Fatalf("WeeklyBreakdown() order = %#v", weeks)
	}
	if len(weeks[1].Days) != 2 || weeks[1].TotalGrams != 125 {
		t.Fatalf("WeeklyBreakdown() month 6 week 1 = %#v, want 2 days 125 g", weeks[1])
	}
}
