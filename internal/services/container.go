package services

import "time"

// Stores groups the repositories backing every service. Both the sqlite and
// the Redis backends provide one.
type Stores struct {
	Entries   FeedEntryRepository
	FoodTypes FoodTypeRepository
	Reminders ReminderRepository
	PlanDays  PlanDayRepository
	Schedules LoadedScheduleRepository
}

type ContainerOptions struct {
	Notifier Notifier
	Texts    Translator
	Language string
	Location *time.Location
	Random   Random
}

type Container struct {
	Changes    *ChangeHub
	Entries    *EntryService
	FoodTypes  *FoodTypeService
	Stats      *StatsService
	Schedules  *ScheduleService
	Plan       *PlanService
	Calculator *CalculatorService
	Reminders  *ReminderScheduler
}

// NewContainer wires the services over stores and subscribes the reminder
// scheduler to plan-day changes.
func NewContainer(stores Stores, options ContainerOptions) *Container {
	location := options.Location
	if location == nil {
		location = time.Local
	}

	changes := NewChangeHub()
	foodTypes := NewFoodTypeService(stores.FoodTypes, changes)
	container := &Container{
		Changes:    changes,
		Entries:    NewEntryService(stores.Entries, foodTypes, changes),
		FoodTypes:  foodTypes,
		Stats:      NewStatsService(stores.Entries, foodTypes, location),
		Schedules:  NewScheduleService(stores.PlanDays, stores.Schedules, changes, location),
		Plan:       NewPlanService(stores.PlanDays, stores.Schedules, NewSafetyTipPicker(options.Random), location),
		Calculator: NewCalculatorService(stores.PlanDays),
		Reminders:  NewReminderScheduler(stores.Reminders, stores.PlanDays, options.Notifier, options.Texts, options.Language, changes, location),
	}
	container.Reminders.Watch(changes)
	return container
}
