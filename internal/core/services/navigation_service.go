package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/comitanigiacomo/kanso-habit-ledger/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habit-ledger/internal/core/pathfmt"
)

const MaxSearchAttempts = 10

type Direction int

const (
	Previous Direction = -1
	Next     Direction = 1
)

func ParseDirection(s string) (Direction, error) {
	switch s {
	case "prev", "previous":
		return Previous, nil
	case "next":
		return Next, nil
	}
	return 0, fmt.Errorf("invalid direction %q (must be prev or next)", s)
}

type NavigationService struct {
	notes    domain.NoteResolver
	settings domain.DateSettings
}

func NewNavigationService(notes domain.NoteResolver, settings domain.DateSettings) *NavigationService {
	return &NavigationService{
		notes:    notes,
		settings: settings,
	}
}

// Adjacent finds the closest existing daily note before or after the note at
// fromPath, probing one day at a time up to MaxSearchAttempts days away.
func (s *NavigationService) Adjacent(ctx context.Context, fromPath string, dir Direction) (string, error) {
	layout, err := pathfmt.Compile(s.settings.Pattern)
	if err != nil {
		return "", err
	}

	current, err := layout.DateFromPath(fromPath, s.settings.BaseDirectory, time.UTC)
	if err != nil {
		if errors.Is(err, pathfmt.ErrOutsideBaseFolder) {
			return "", domain.ErrNotDailyNote
		}
		return "", fmt.Errorf("%w: %v", domain.ErrNotDailyNote, err)
	}

	for i := 1; i <= MaxSearchAttempts; i++ {
		candidate := layout.NotePath(current.AddDate(0, 0, i*int(dir)), s.settings.BaseDirectory)

		note, err := s.notes.ResolveNote(ctx, candidate)
		if err != nil {
			return "", err
		}
		if note.Exists {
			return candidate, nil
		}
	}

	return "", domain.ErrNoAdjacentNote
}

func (s *NavigationService) Previous(ctx context.Context, fromPath string) (string, error) {
	return s.Adjacent(ctx, fromPath, Previous)
}

func (s *NavigationService) Next(ctx context.Context, fromPath string) (string, error) {
	return s.Adjacent(ctx, fromPath, Next)
}
