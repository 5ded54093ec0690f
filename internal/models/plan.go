package models

import "time"

// PlanDay is one scheduled feeding day produced by a schedule import.
type PlanDay struct {
	ID            string   `gorm:"primaryKey" json:"id"`
	Date          string   `gorm:"not null;index" json:"date"`
	Time          string   `gorm:"not null" json:"time"`
	FoodType      string   `gorm:"not null" json:"foodType"`
	Food          string   `gorm:"not null" json:"food"`
	AmountGrams   float64  `gorm:"not null" json:"amountGrams"`
	Substitutions []string `gorm:"serializer:json" json:"substitutions"`
	Notes         string   `json:"notes"`
	SourceMonth   int      `gorm:"not null" json:"sourceMonth"`
	WeekNumber    int      `gorm:"not null" json:"weekNumber"`
	ScheduleID    string   `gorm:"not null;index" json:"scheduleId"`
	Position      int      `gorm:"not null;default:0" json:"-"`
}

// LoadedSchedule records one imported schedule document.
type LoadedSchedule struct {
	ID               string    `gorm:"primaryKey" json:"id"`
	Month            int       `gorm:"not null" json:"month"`
	StartDate        string    `gorm:"not null" json:"startDate"`
	EndDate          string    `gorm:"not null" json:"endDate"`
	SignsOfReadiness []string  `gorm:"serializer:json" json:"signsOfReadiness"`
	SafetyGuidelines []string  `gorm:"serializer:json" json:"safetyGuidelines"`
	LoadedAt         time.Time `gorm:"not null" json:"loadedAt"`
	Position         int       `gorm:"not null;default:0" json:"-"`
}
