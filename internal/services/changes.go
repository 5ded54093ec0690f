package services

import (
	"context"
	"sync"
)

// Named lists tracked by the change hub.
const (
	ListEntries   = "entries"
	ListFoodTypes = "food_types"
	ListReminders = "reminders"
	ListPlanDays  = "plan_days"
	ListSchedules = "schedules"
)

type ChangePublisher interface {
	Publish(ctx context.Context, list string)
}

type changeSubscriber struct {
	id int
	fn func(ctx context.Context)
}

// ChangeHub versions every named list and notifies subscribers after each
// successful write, so readers refetch only what changed.
type ChangeHub struct {
	mu          sync.Mutex
	versions    map[string]uint64
	subscribers map[string][]changeSubscriber
	nextID      int
}

func NewChangeHub() *ChangeHub {
	return &ChangeHub{
		versions:    make(map[string]uint64),
		subscribers: make(map[string][]changeSubscriber),
	}
}

// Publish bumps the version of list and runs its subscribers synchronously in
// subscription order.
func (hub *ChangeHub) Publish(ctx context.Context, list string) {
	hub.mu.Lock()
	hub.versions[list]++
	subscribers := make([]changeSubscriber, len(hub.subscribers[list]))
	copy(subscribers, hub.subscribers[list])
	hub.mu.Unlock()

	for _, subscriber := range subscribers {
		subscriber.fn(ctx)
	}
}

// Subscribe registers fn for changes to list and returns a func removing it.
func (hub *ChangeHub) Subscribe(list string, fn func(ctx context.Context)) func() {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	hub.nextID++
	id := hub.nextID
	hub.subscribers[list] = append(hub.subscribers[list], changeSubscriber{id: id, fn: fn})

	return func() {
		hub.mu.Lock()
		defer hub.mu.Unlock()

		current := hub.subscribers[list]
		for index, subscriber := range current {
			if subscriber.id == id {
				hub.subscribers[list] = append(current[:index:index], current[index+1:]...)
				return
			}
		}
	}
}

func (hub *ChangeHub) Version(list string) uint64 {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	return hub.versions[list]
}

func (hub *ChangeHub) Versions() map[string]uint64 {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	snapshot := map[string]uint64{
		ListEntries:   0,
		ListFoodTypes: 0,
		ListReminders: 0,
		ListPlanDays:  0,
		ListSchedules: 0,
	}
	for list, version := range hub.versions {
		snapshot[list] = version
	}
	return snapshot
}
