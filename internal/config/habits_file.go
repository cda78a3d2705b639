package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/comitanigiacomo/kanso-habit-ledger/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habit-ledger/internal/core/services"
)

// HabitsFile is the TOML description of the tracked set, in display order:
//
//	base_directory = "Journal"
//
//	[[habit]]
//	property = "sleep"
//	widget = "number"
//	target = 8
type HabitsFile struct {
	BaseDirectory     string       `toml:"base_directory,omitempty"`
	DateFormatPattern string       `toml:"date_format_pattern,omitempty"`
	DefaultTimeSpan   string       `toml:"default_time_span,omitempty"`
	Habits            []HabitEntry `toml:"habit"`
}

type HabitEntry struct {
	Property string   `toml:"property"`
	Name     string   `toml:"name,omitempty"`
	Widget   string   `toml:"widget"`
	Target   *float64 `toml:"target,omitempty"`
	IsTotal  bool     `toml:"is_total,omitempty"`
	Ignored  bool     `toml:"ignored,omitempty"`
}

func LoadHabitsFile(path string) (*HabitsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading habits file: %w", err)
	}

	var f HabitsFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing habits file: %w", err)
	}

	return &f, nil
}

func SaveHabitsFile(path string, f *HabitsFile) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating habits dir: %w", err)
	}

	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("creating habits file: %w", err)
	}
	defer out.Close()

	return toml.NewEncoder(out).Encode(f)
}

// TrackInputs converts the entries, in file order, for HabitService.Seed.
func (f *HabitsFile) TrackInputs() []services.TrackHabitInput {
	inputs := make([]services.TrackHabitInput, 0, len(f.Habits))
	for _, h := range f.Habits {
		inputs = append(inputs, services.TrackHabitInput{
			PropertyName: h.Property,
			DisplayName:  h.Name,
			Widget:       h.Widget,
			Target:       h.Target,
			IsTotal:      h.IsTotal,
			Ignored:      h.Ignored,
		})
	}
	return inputs
}

// DateSettings overrides base with the non-empty fields of the file.
func (f *HabitsFile) DateSettings(base domain.DateSettings) domain.DateSettings {
	if f.BaseDirectory != "" {
		base.BaseDirectory = f.BaseDirectory
	}
	if f.DateFormatPattern != "" {
		base.Pattern = f.DateFormatPattern
	}
	return base
}

func HabitsFileFrom(habits []*domain.HabitConfig, settings domain.DateSettings) *HabitsFile {
	f := &HabitsFile{
		BaseDirectory:     settings.BaseDirectory,
		DateFormatPattern: settings.Pattern,
		Habits:            make([]HabitEntry, 0, len(habits)),
	}
	for _, h := range habits {
		entry := HabitEntry{
			Property: h.PropertyName,
			Widget:   string(h.Widget),
			Target:   h.Target,
			IsTotal:  h.IsTotal,
			Ignored:  h.Ignored,
		}
		if h.DisplayName != h.PropertyName {
			entry.Name = h.DisplayName
		}
		f.Habits = append(f.Habits, entry)
	}
	return f
}
