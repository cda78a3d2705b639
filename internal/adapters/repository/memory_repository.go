package repository

import (
	"context"
	"sync"

	"github.com/comitanigiacomo/kanso-habit-ledger/internal/core/domain"
)

var _ domain.HabitRepository = (*InMemoryHabitRepository)(nil)

// InMemoryHabitRepository keeps the tracked set in process. Habits are
// cloned on the way in and out so callers never share state with the store.
type InMemoryHabitRepository struct {
	store map[string]*domain.HabitConfig

	mu sync.RWMutex
}

func NewInMemoryHabitRepository() *InMemoryHabitRepository {
	return &InMemoryHabitRepository{
		store: make(map[string]*domain.HabitConfig),
	}
}

func (r *InMemoryHabitRepository) Create(ctx context.Context, habit *domain.HabitConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[habit.PropertyName]; exists {
		return domain.ErrHabitAlreadyTracked
	}
	r.store[habit.PropertyName] = habit.Clone()
	return nil
}

func (r *InMemoryHabitRepository) GetByProperty(ctx context.Context, property string) (*domain.HabitConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habit, ok := r.store[property]
	if !ok {
		return nil, domain.ErrHabitNotFound
	}
	return habit.Clone(), nil
}

func (r *InMemoryHabitRepository) List(ctx context.Context) ([]*domain.HabitConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habits := make([]*domain.HabitConfig, 0, len(r.store))
	for _, h := range r.store {
		habits = append(habits, h.Clone())
	}

	domain.SortByOrder(habits)
	return habits, nil
}

func (r *InMemoryHabitRepository) Update(ctx context.Context, habit *domain.HabitConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[habit.PropertyName]; !ok {
		return domain.ErrHabitNotFound
	}

	r.store[habit.PropertyName] = habit.Clone()
	return nil
}

func (r *InMemoryHabitRepository) Delete(ctx context.Context, property string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[property]; !ok {
		return domain.ErrHabitNotFound
	}

	delete(r.store, property)
	return nil
}

func (r *InMemoryHabitRepository) SaveOrder(ctx context.Context, habits []*domain.HabitConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, h := range habits {
		if _, ok := r.store[h.PropertyName]; !ok {
			return domain.ErrHabitNotFound
		}
	}
	for _, h := range habits {
		r.store[h.PropertyName].Order = h.Order
	}
	return nil
}
