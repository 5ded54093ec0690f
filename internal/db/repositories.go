package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/terraincognita07/babyfeed/internal/services"
	"gorm.io/gorm"
)

type Repositories struct {
	Entries   *FeedEntryRepository
	FoodTypes *FoodTypeRepository
	Reminders *ReminderRepository
	PlanDays  *PlanDayRepository
	Schedules *ScheduleRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Entries:   NewFeedEntryRepository(database),
		FoodTypes: NewFoodTypeRepository(database),
		Reminders: NewReminderRepository(database),
		PlanDays:  NewPlanDayRepository(database),
		Schedules: NewScheduleRepository(database),
	}
}

// nextPosition returns the append position for table so listings keep
// insertion order.
func nextPosition(ctx context.Context, database *gorm.DB, table string) (int, error) {
	var last int
	if err := database.WithContext(ctx).
		Table(table).
		Select("COALESCE(MAX(position), 0)").
		Scan(&last).Error; err != nil {
		return 0, err
	}
	return last + 1, nil
}

func ensureID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

func (repositories *Repositories) Stores() services.Stores {
	return services.Stores{
		Entries:   repositories.Entries,
		FoodTypes: repositories.FoodTypes,
		Reminders: repositories.Reminders,
		PlanDays:  repositories.PlanDays,
		Schedules: repositories.Schedules,
	}
}
