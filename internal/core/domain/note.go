package domain

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrNotDailyNote   = errors.New("note is not in the daily notes directory")
	ErrNoAdjacentNote = errors.New("no daily note found nearby")
)

const (
	DefaultBaseDirectory     = "Journal"
	DefaultDateFormatPattern = "YYYY/YYYY-MM/YYYY-MM-DD dddd"
	NoteExtension            = ".md"
)

// Note is what the note store knows about one exact path. Properties holds
// the loosely typed values of the note's frontmatter.
type Note struct {
	Path       string
	Exists     bool
	Properties map[string]any
}

type NoteResolver interface {
	// ResolveNote looks up the note stored at the exact path. A missing note
	// is reported through Exists, not through an error.
	ResolveNote(ctx context.Context, path string) (Note, error)
}

// DateSettings maps calendar days to daily note paths.
type DateSettings struct {
	BaseDirectory string `json:"base_directory"`
	Pattern       string `json:"date_format_pattern"`
}

func DefaultDateSettings() DateSettings {
	return DateSettings{
		BaseDirectory: DefaultBaseDirectory,
		Pattern:       DefaultDateFormatPattern,
	}
}

// IsRelevantNote reports whether a changed path can affect any ledger.
func (s DateSettings) IsRelevantNote(path string) bool {
	if !strings.HasSuffix(path, NoteExtension) {
		return false
	}
	if s.BaseDirectory == "" {
		return true
	}
	return strings.HasPrefix(path, strings.TrimSuffix(s.BaseDirectory, "/")+"/")
}
