package domain

import (
	"context"
	"errors"
)

var (
	ErrHabitNotFound = errors.New("habit not found")
)

type HabitRepository interface {
	// Create persists a new tracked habit.
	Create(ctx context.Context, habit *HabitConfig) error

	// GetByProperty retrieves a tracked habit by its property name.
	GetByProperty(ctx context.Context, property string) (*HabitConfig, error)

	// List returns every tracked habit, ignored ones included, sorted by order.
	List(ctx context.Context) ([]*HabitConfig, error)

	// Update modifies the definition of an existing tracked habit.
	Update(ctx context.Context, habit *HabitConfig) error

	// Delete removes a habit from the tracked set.
	Delete(ctx context.Context, property string) error

	// SaveOrder persists the order of every given habit atomically.
	SaveOrder(ctx context.Context, habits []*HabitConfig) error
}
