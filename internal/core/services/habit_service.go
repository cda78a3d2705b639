package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/comitanigiacomo/kanso-habit-ledger/internal/core/domain"
)

// HabitService manages the tracked set. Structural changes are serialized so
// that order stays the dense sequence 0..N-1. Untrack deletes and renumbers in
// two repository calls; a failed renumber leaves a gap that the next Track or
// Reorder closes.
type HabitService struct {
	repo domain.HabitRepository
	mu   sync.Mutex
}

func NewHabitService(repo domain.HabitRepository) *HabitService {
	return &HabitService{
		repo: repo,
	}
}

type TrackHabitInput struct {
	PropertyName string
	DisplayName  string
	Widget       string
	Target       *float64
	IsTotal      bool
	Ignored      bool
}

type UpdateHabitInput struct {
	PropertyName string
	DisplayName  string
	Widget       string
	Target       *float64
	ClearTarget  bool
	IsTotal      *bool
	Ignored      *bool
}

func mergeString(newVal, oldVal string) string {
	if newVal == "" {
		return oldVal
	}
	return newVal
}

func (s *HabitService) Track(ctx context.Context, input TrackHabitInput) (*domain.HabitConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	habit, err := domain.NewHabitConfig(input.PropertyName, input.DisplayName, domain.Widget(input.Widget), input.Target, input.IsTotal)
	if err != nil {
		return nil, err
	}
	habit.Ignored = input.Ignored

	existing, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if domain.FindHabit(existing, habit.PropertyName) != -1 {
		return nil, domain.ErrHabitAlreadyTracked
	}

	if err := s.closeGaps(ctx, existing); err != nil {
		return nil, err
	}
	habit.ChangePosition(len(existing))

	if err := s.repo.Create(ctx, habit); err != nil {
		return nil, err
	}

	return habit, nil
}

func (s *HabitService) List(ctx context.Context) ([]*domain.HabitConfig, error) {
	return s.repo.List(ctx)
}

func (s *HabitService) ListActive(ctx context.Context) ([]*domain.HabitConfig, error) {
	habits, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.ActiveHabits(habits), nil
}

func (s *HabitService) Update(ctx context.Context, input UpdateHabitInput) (*domain.HabitConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	habit, err := s.repo.GetByProperty(ctx, input.PropertyName)
	if err != nil {
		return nil, err
	}

	display := mergeString(input.DisplayName, habit.DisplayName)
	widget := domain.Widget(mergeString(input.Widget, string(habit.Widget)))

	target := habit.Target
	if input.Target != nil {
		target = input.Target
	} else if input.ClearTarget {
		target = nil
	}

	isTotal := habit.IsTotal
	if input.IsTotal != nil {
		isTotal = *input.IsTotal
	}

	if err := habit.Update(display, widget, target, isTotal); err != nil {
		return nil, err
	}

	if input.Ignored != nil {
		habit.Ignored = *input.Ignored
	}

	if err := s.repo.Update(ctx, habit); err != nil {
		return nil, err
	}

	return habit, nil
}

func (s *HabitService) SetIgnored(ctx context.Context, property string, ignored bool) (*domain.HabitConfig, error) {
	return s.Update(ctx, UpdateHabitInput{PropertyName: property, Ignored: &ignored})
}

func (s *HabitService) Untrack(ctx context.Context, property string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Delete(ctx, property); err != nil {
		return err
	}

	remaining, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("renumber after delete: %w", err)
	}
	domain.SortByOrder(remaining)
	domain.Renumber(remaining)

	return s.repo.SaveOrder(ctx, remaining)
}

// closeGaps renumbers habits in place, persisting only when the stored order
// is not already dense.
func (s *HabitService) closeGaps(ctx context.Context, habits []*domain.HabitConfig) error {
	domain.SortByOrder(habits)
	dense := true
	for i, h := range habits {
		if h.Order != i {
			dense = false
			break
		}
	}
	if dense {
		return nil
	}

	log.Printf("[LEDGER] closing gap in habit order (%d habits)", len(habits))
	domain.Renumber(habits)
	if err := s.repo.SaveOrder(ctx, habits); err != nil {
		return fmt.Errorf("renumber before track: %w", err)
	}
	return nil
}

// Reorder moves dragged into the position held by target.
func (s *HabitService) Reorder(ctx context.Context, dragged, target string) ([]*domain.HabitConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	habits, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	ordered, err := domain.MoveHabit(habits, dragged, target)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SaveOrder(ctx, ordered); err != nil {
		return nil, err
	}

	return ordered, nil
}

// Seed tracks every habit that is not tracked yet, keeping the given order.
func (s *HabitService) Seed(ctx context.Context, inputs []TrackHabitInput) (int, error) {
	added := 0
	for _, in := range inputs {
		_, err := s.Track(ctx, in)
		if errors.Is(err, domain.ErrHabitAlreadyTracked) {
			continue
		}
		if err != nil {
			return added, fmt.Errorf("seed %q: %w", in.PropertyName, err)
		}
		added++
	}
	if added > 0 {
		log.Printf("Seeded %d tracked habits", added)
	}
	return added, nil
}
