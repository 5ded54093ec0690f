package models

type FoodPriority string

const (
	PriorityNone   FoodPriority = ""
	PriorityLow    FoodPriority = "low"
	PriorityMiddle FoodPriority = "middle"
	PriorityHigh   FoodPriority = "high"
)

// Rank orders priorities for display: high first, unprioritized last.
func (priority FoodPriority) Rank() int {
	switch priority {
	case PriorityHigh:
		return 0
	case PriorityMiddle:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

func (priority FoodPriority) Valid() bool {
	switch priority {
	case PriorityNone, PriorityLow, PriorityMiddle, PriorityHigh:
		return true
	default:
		return false
	}
}

type FoodType struct {
	ID                  string       `gorm:"primaryKey" json:"id"`
	Name                string       `gorm:"not null" json:"name"`
	Unit                string       `gorm:"not null" json:"unit"`
	Color               string       `gorm:"not null" json:"color"`
	Priority            FoodPriority `gorm:"not null;default:''" json:"priority,omitempty"`
	WeeklyMinimumAmount *float64     `json:"weeklyMinimumAmount,omitempty"`
	Position            int          `gorm:"not null;default:0" json:"-"`
}

type DefaultFoodType struct {
	ID    string
	Name  string
	Unit  string
	Color string
}

func DefaultFoodTypes() []DefaultFoodType {
	return []DefaultFoodType{
		{ID: "1", Name: "Breast", Unit: "ml", Color: "#FFB6C1"},
		{ID: "2", Name: "Formula", Unit: "ml", Color: "#87CEEB"},
		{ID: "3", Name: "Puree", Unit: "g", Color: "#98FB98"},
		{ID: "4", Name: "Water", Unit: "ml", Color: "#ADD8E6"},
	}
}

// PresetColors is the palette offered when creating food types and used for
// plan chart slices.
func PresetColors() []string {
	return []string{
		"#FFB6C1",
		"#87CEEB",
		"#98FB98",
		"#ADD8E6",
		"#DDA0DD",
		"#F0E68C",
		"#FFA07A",
		"#E6E6FA",
	}
}
