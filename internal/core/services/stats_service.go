package services

import (
	"context"

	"github.com/comitanigiacomo/kanso-habit-ledger/internal/core/domain"
)

type StatsService struct {
	habitRepo domain.HabitRepository
	ledger    *LedgerBuilder
	settings  domain.DateSettings
}

func NewStatsService(habitRepo domain.HabitRepository, ledger *LedgerBuilder, settings domain.DateSettings) *StatsService {
	return &StatsService{
		habitRepo: habitRepo,
		ledger:    ledger,
		settings:  settings,
	}
}

func (s *StatsService) Settings() domain.DateSettings {
	return s.settings
}

// Ledger extracts the window for every tracked habit, ignored ones included.
func (s *StatsService) Ledger(ctx context.Context, timeSpanKey string) (domain.Ledger, error) {
	habits, err := s.habitRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.ledger.BuildLedger(ctx, timeSpanKey, habits, s.settings)
}

// Dashboard extracts the window once and evaluates every active habit in
// display order.
func (s *StatsService) Dashboard(ctx context.Context, timeSpanKey string) (*domain.Dashboard, error) {
	span, err := domain.LookupTimeSpan(timeSpanKey)
	if err != nil {
		return nil, err
	}

	habits, err := s.habitRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	ledger, err := s.ledger.BuildLedger(ctx, span.Key, habits, s.settings)
	if err != nil {
		return nil, err
	}

	// header dates follow the extracted days, not a second clock read
	dashboard := &domain.Dashboard{
		TimeSpan: span,
		Days:     ledger,
		Habits:   make([]domain.HabitSummary, 0, len(habits)),
	}
	if len(ledger) > 0 {
		dashboard.StartDate = ledger[0].Date
		dashboard.EndDate = ledger[len(ledger)-1].Date
	}

	for _, h := range domain.ActiveHabits(habits) {
		dashboard.Habits = append(dashboard.Habits, Summarize(h, ledger))
	}

	return dashboard, nil
}
