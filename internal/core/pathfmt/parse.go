package pathfmt

import (
	"fmt"
	"strings"
	"time"
)

type parsed struct {
	year, month, day, yearDay int
	weekday                   int
	hasYear, hasYearDay       bool
	hasWeekday                bool
}

// Parse reads s strictly: every token must match and the whole input must be
// consumed. The result is midnight of the parsed day in loc.
func (l *Layout) Parse(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}

	p := parsed{month: 1, day: 1}
	pos := 0

	for _, tok := range l.tokens {
		var ok bool
		switch tok.kind {
		case tokLiteral:
			if strings.HasPrefix(s[pos:], tok.lit) {
				pos += len(tok.lit)
				ok = true
			}
		case tokYear4:
			p.year, pos, ok = readDigits(s, pos, 4, 4)
			p.hasYear = ok
		case tokYear2:
			var yy int
			yy, pos, ok = readDigits(s, pos, 2, 2)
			if ok {
				p.year = 1900 + yy
				if yy < 69 {
					p.year = 2000 + yy
				}
				p.hasYear = true
			}
		case tokMonthName:
			p.month, pos, ok = readName(s, pos, monthNames(false))
		case tokMonthShort:
			p.month, pos, ok = readName(s, pos, monthNames(true))
		case tokMonth2:
			p.month, pos, ok = readDigits(s, pos, 2, 2)
		case tokMonth:
			p.month, pos, ok = readDigits(s, pos, 1, 2)
		case tokYearDay3:
			p.yearDay, pos, ok = readDigits(s, pos, 3, 3)
			p.hasYearDay = ok
		case tokYearDay:
			p.yearDay, pos, ok = readDigits(s, pos, 1, 3)
			p.hasYearDay = ok
		case tokDayOrdinal:
			p.day, pos, ok = readDigits(s, pos, 1, 2)
			if ok {
				suffix := ordinalSuffix(p.day)
				ok = strings.HasPrefix(s[pos:], suffix)
				pos += len(suffix)
			}
		case tokDay2:
			p.day, pos, ok = readDigits(s, pos, 2, 2)
		case tokDay:
			p.day, pos, ok = readDigits(s, pos, 1, 2)
		case tokWeekdayName:
			p.weekday, pos, ok = readName(s, pos, weekdayNames(0))
			p.hasWeekday = ok
		case tokWeekdayShort:
			p.weekday, pos, ok = readName(s, pos, weekdayNames(3))
			p.hasWeekday = ok
		case tokWeekdayMin:
			p.weekday, pos, ok = readName(s, pos, weekdayMin[:])
			p.hasWeekday = ok
		case tokWeekdayNum:
			p.weekday, pos, ok = readDigits(s, pos, 1, 1)
			p.hasWeekday = ok && p.weekday <= 6
			ok = p.hasWeekday
		}

		if !ok {
			return time.Time{}, fmt.Errorf("%w: %q against %q", ErrNoMatch, s, l.pattern)
		}
	}

	if pos != len(s) {
		return time.Time{}, fmt.Errorf("%w: trailing %q", ErrNoMatch, s[pos:])
	}

	return p.date(loc)
}

func (p parsed) date(loc *time.Location) (time.Time, error) {
	if !p.hasYear {
		return time.Time{}, ErrIncompleteDate
	}

	var t time.Time
	if p.hasYearDay {
		t = time.Date(p.year, time.January, p.yearDay, 0, 0, 0, 0, loc)
		if p.yearDay < 1 || t.Year() != p.year {
			return time.Time{}, ErrInvalidDate
		}
	} else {
		t = time.Date(p.year, time.Month(p.month), p.day, 0, 0, 0, 0, loc)
		if t.Year() != p.year || int(t.Month()) != p.month || t.Day() != p.day {
			return time.Time{}, ErrInvalidDate
		}
	}

	if p.hasWeekday && int(t.Weekday()) != p.weekday {
		return time.Time{}, ErrWeekdayMismatch
	}
	return t, nil
}

// DateFromPath recovers the day a daily note path was rendered from.
func DateFromPath(path, pattern, baseDirectory string, loc *time.Location) (time.Time, error) {
	l, err := Compile(pattern)
	if err != nil {
		return time.Time{}, err
	}
	return l.DateFromPath(path, baseDirectory, loc)
}

func (l *Layout) DateFromPath(path, baseDirectory string, loc *time.Location) (time.Time, error) {
	rel := path
	if base := strings.TrimSuffix(baseDirectory, "/"); base != "" {
		if !strings.HasPrefix(path, base+"/") {
			return time.Time{}, ErrOutsideBaseFolder
		}
		rel = strings.TrimPrefix(path, base+"/")
	}
	rel = strings.TrimSuffix(rel, noteExtension)
	return l.Parse(rel, loc)
}

func readDigits(s string, pos, min, max int) (int, int, bool) {
	n, i := 0, pos
	for i < len(s) && i-pos < max && s[i] >= '0' && s[i] <= '9' {
		n = n*10 + int(s[i]-'0')
		i++
	}
	if i-pos < min {
		return 0, pos, false
	}
	return n, i, true
}

// readName matches one of names case-insensitively and returns its index,
// preferring the longest match.
func readName(s string, pos int, names []string) (int, int, bool) {
	best, bestLen := -1, 0
	for i, name := range names {
		if len(s)-pos >= len(name) && strings.EqualFold(s[pos:pos+len(name)], name) && len(name) > bestLen {
			best, bestLen = i, len(name)
		}
	}
	if best == -1 {
		return 0, pos, false
	}
	return best, pos + bestLen, true
}

// monthNames is indexed by month number; index 0 never matches.
func monthNames(short bool) []string {
	names := make([]string, 13)
	names[0] = "\x00"
	for m := time.January; m <= time.December; m++ {
		names[m] = m.String()
		if short {
			names[m] = names[m][:3]
		}
	}
	return names
}

func weekdayNames(length int) []string {
	names := make([]string, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		names[d] = d.String()
		if length > 0 {
			names[d] = names[d][:length]
		}
	}
	return names
}
