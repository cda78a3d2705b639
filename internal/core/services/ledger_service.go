package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/comitanigiacomo/kanso-habit-ledger/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habit-ledger/internal/core/pathfmt"
)

const DefaultLookupConcurrency = 8

// PathFunc renders the note path of a calendar day.
type PathFunc func(day time.Time, settings domain.DateSettings) (string, error)

func defaultPathFunc(day time.Time, settings domain.DateSettings) (string, error) {
	return pathfmt.NotePath(day, settings.Pattern, settings.BaseDirectory)
}

type LedgerBuilder struct {
	notes       domain.NoteResolver
	now         func() time.Time
	loc         *time.Location
	pathFor     PathFunc
	concurrency int
}

type LedgerOption func(*LedgerBuilder)

func WithClock(now func() time.Time) LedgerOption {
	return func(b *LedgerBuilder) { b.now = now }
}

func WithLocation(loc *time.Location) LedgerOption {
	return func(b *LedgerBuilder) { b.loc = loc }
}

func WithPathFunc(fn PathFunc) LedgerOption {
	return func(b *LedgerBuilder) { b.pathFor = fn }
}

func WithLookupConcurrency(n int) LedgerOption {
	return func(b *LedgerBuilder) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

func NewLedgerBuilder(notes domain.NoteResolver, opts ...LedgerOption) *LedgerBuilder {
	b := &LedgerBuilder{
		notes:       notes,
		now:         time.Now,
		loc:         time.Local,
		pathFor:     defaultPathFunc,
		concurrency: DefaultLookupConcurrency,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Window returns the first and last calendar day of a span ending today.
func (b *LedgerBuilder) Window(span domain.TimeSpan) (time.Time, time.Time) {
	now := b.now().In(b.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, b.loc)
	return today.AddDate(0, 0, -(span.Days - 1)), today
}

// BuildLedger produces one record per calendar day of the span, oldest first.
// An unknown span key is the only error; a day whose lookup fails is logged
// and reported as a missing note.
func (b *LedgerBuilder) BuildLedger(ctx context.Context, timeSpanKey string, habits []*domain.HabitConfig, settings domain.DateSettings) (domain.Ledger, error) {
	span, err := domain.LookupTimeSpan(timeSpanKey)
	if err != nil {
		return domain.Ledger{}, err
	}

	start, _ := b.Window(span)
	ledger := make(domain.Ledger, span.Days)

	var g errgroup.Group
	g.SetLimit(b.concurrency)

	for i := 0; i < span.Days; i++ {
		// calendar arithmetic keeps every step on midnight across DST changes
		day := start.AddDate(0, 0, i)
		g.Go(func() error {
			ledger[i] = b.buildDay(ctx, day, habits, settings)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return domain.Ledger{}, fmt.Errorf("ledger: %w", err)
	}

	return ledger, nil
}

func (b *LedgerBuilder) buildDay(ctx context.Context, day time.Time, habits []*domain.HabitConfig, settings domain.DateSettings) domain.DayRecord {
	record := domain.DayRecord{
		Date:   day.Format(domain.DateLayout),
		Habits: missingHabits(habits),
	}

	path, err := b.pathFor(day, settings)
	if err != nil {
		log.Printf("[LEDGER] Failed to build note path for %s: %v", record.Date, err)
		return record
	}
	record.FilePath = path

	note, err := b.notes.ResolveNote(ctx, path)
	if err != nil {
		log.Printf("[LEDGER] Failed to resolve note %s: %v", path, err)
		return record
	}
	if !note.Exists {
		return record
	}

	record.Exists = true
	for _, h := range habits {
		value, err := NormalizeValue(h.Widget, note.Properties[h.PropertyName])
		if err != nil {
			log.Printf("[LEDGER] %s on %s: %v", h.PropertyName, record.Date, err)
		}
		record.Habits[h.PropertyName] = value
	}

	return record
}

func missingHabits(habits []*domain.HabitConfig) map[string]domain.HabitValue {
	values := make(map[string]domain.HabitValue, len(habits))
	for _, h := range habits {
		values[h.PropertyName] = domain.MissingValue()
	}
	return values
}
