package repository

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/comitanigiacomo/kanso-habit-ledger/internal/core/domain"
	"github.com/redis/go-redis/v9"
)

var _ domain.HabitRepository = (*CachedHabitRepository)(nil)

const (
	trackedHabitsKey = "tracked_habits"
	trackedHabitsTTL = 30 * time.Minute
)

// CachedHabitRepository keeps the tracked set, read on every ledger request,
// in Redis. Writes go to the wrapped repository and drop the cached copy.
type CachedHabitRepository struct {
	next  domain.HabitRepository
	cache *redis.Client
}

func NewCachedHabitRepository(next domain.HabitRepository, cache *redis.Client) *CachedHabitRepository {
	return &CachedHabitRepository{
		next:  next,
		cache: cache,
	}
}

func (r *CachedHabitRepository) invalidate(ctx context.Context) {
	if err := r.cache.Del(ctx, trackedHabitsKey).Err(); err != nil {
		log.Printf("[CACHE] Failed to invalidate tracked habits: %v", err)
	}
}

func (r *CachedHabitRepository) List(ctx context.Context) ([]*domain.HabitConfig, error) {
	val, err := r.cache.Get(ctx, trackedHabitsKey).Result()
	if err == nil {
		var habits []*domain.HabitConfig
		if err := json.Unmarshal([]byte(val), &habits); err == nil {
			return habits, nil
		}

		log.Printf("[CACHE] Corrupted tracked habits, cleaning up key")
		r.cache.Del(ctx, trackedHabitsKey)
	} else if err != redis.Nil {
		log.Printf("[CACHE] Redis read error: %v", err)
	}

	habits, err := r.next.List(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(habits); err == nil {
		if setErr := r.cache.Set(ctx, trackedHabitsKey, data, trackedHabitsTTL).Err(); setErr != nil {
			log.Printf("[CACHE] Redis set error: %v", setErr)
		}
	}

	return habits, nil
}

func (r *CachedHabitRepository) GetByProperty(ctx context.Context, property string) (*domain.HabitConfig, error) {
	return r.next.GetByProperty(ctx, property)
}

func (r *CachedHabitRepository) Create(ctx context.Context, habit *domain.HabitConfig) error {
	if err := r.next.Create(ctx, habit); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *CachedHabitRepository) Update(ctx context.Context, habit *domain.HabitConfig) error {
	if err := r.next.Update(ctx, habit); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *CachedHabitRepository) Delete(ctx context.Context, property string) error {
	defer r.invalidate(ctx)
	return r.next.Delete(ctx, property)
}

func (r *CachedHabitRepository) SaveOrder(ctx context.Context, habits []*domain.HabitConfig) error {
	defer r.invalidate(ctx)
	return r.next.SaveOrder(ctx, habits)
}
