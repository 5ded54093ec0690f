package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/terraincognita07/babyfeed/internal/config"
	"github.com/terraincognita07/babyfeed/internal/services"
)

const (
	keyPrefix  = "babyfeed:"
	maxRetries = 5
)

// ListKey is the Redis key holding the JSON array for a named list.
func ListKey(list string) string {
	return keyPrefix + list
}

func NewClient(cfg *config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// Ping checks connectivity before the store is handed to services.
func Ping(ctx context.Context, client *redis.Client) error {
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisConnection, err)
	}
	return nil
}

type Repositories struct {
	Entries   *FeedEntryRepository
	FoodTypes *FoodTypeRepository
	Reminders *ReminderRepository
	PlanDays  *PlanDayRepository
	Schedules *ScheduleRepository
}

func NewRepositories(client *redis.Client) *Repositories {
	lists := &listStore{
		client: client,
		logger: slog.Default().With(slog.String("component", "redisstore")),
	}
	return &Repositories{
		Entries:   &FeedEntryRepository{lists: lists},
		FoodTypes: &FoodTypeRepository{lists: lists},
		Reminders: &ReminderRepository{lists: lists},
		PlanDays:  &PlanDayRepository{lists: lists},
		Schedules: &ScheduleRepository{lists: lists},
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

type listReader interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

type listStore struct {
	client *redis.Client
	logger *slog.Logger
}

// readList decodes a named list. A missing key is an empty list; unreadable
// JSON is logged and also treated as empty.
func readList[T any](ctx context.Context, store *listStore, cmd listReader, list string) ([]T, error) {
	data, err := cmd.Get(ctx, ListKey(list)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return make([]T, 0), nil
		}
		return nil, err
	}

	items := make([]T, 0)
	if err := json.Unmarshal(data, &items); err != nil {
		store.logger.WarnContext(ctx, "stored list is not valid JSON, treating as empty",
			slog.String("list", list),
			slog.String("error", err.Error()),
		)
		return make([]T, 0), nil
	}
	return items, nil
}

func writeList[T any](ctx context.Context, pipe redis.Pipeliner, list string, items []T) error {
	if items == nil {
		items = make([]T, 0)
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", list, err)
	}
	pipe.Set(ctx, ListKey(list), data, 0)
	return nil
}

// transact runs fn under WATCH on every key of lists and retries when another
// writer got there first.
func (store *listStore) transact(ctx context.Context, fn func(tx *redis.Tx) error, lists ...string) error {
	keys := make([]string, 0, len(lists))
	for _, list := range lists {
		keys = append(keys, ListKey(list))
	}

	for attempt := 0; attempt < maxRetries; attempt++ {
		err := store.client.Watch(ctx, fn, keys...)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return ErrConflict
}

// mutate rewrites a single list with edit inside an optimistic transaction.
func mutate[T any](ctx context.Context, store *listStore, list string, edit func([]T) []T) error {
	return store.transact(ctx, func(tx *redis.Tx) error {
		items, err := readList[T](ctx, store, tx, list)
		if err != nil {
			return err
		}
		updated := edit(items)
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			return writeList(ctx, pipe, list, updated)
		})
		return err
	}, list)
}

func ensureID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

func replaceByID[T any](items []T, id string, idOf func(T) string, replacement T) []T {
	for index := range items {
		if idOf(items[index]) == id {
			items[index] = replacement
			break
		}
	}
	return items
}

func removeWhere[T any](items []T, drop func(T) bool) []T {
	kept := make([]T, 0, len(items))
	for _, item := range items {
		if !drop(item) {
			kept = append(kept, item)
		}
	}
	return kept
}

var (
	_ services.FeedEntryRepository      = (*FeedEntryRepository)(nil)
	_ services.FoodTypeRepository       = (*FoodTypeRepository)(nil)
	_ services.ReminderRepository       = (*ReminderRepository)(nil)
	_ services.PlanDayRepository        = (*PlanDayRepository)(nil)
	_ services.LoadedScheduleRepository = (*ScheduleRepository)(nil)
)
