// Package pathfmt renders calendar days into daily note paths using
// moment-style tokens (YYYY, MM, DD, dddd, ...) and reads them back.
//
// Text wrapped in square brackets is copied verbatim; any character that does
// not start a token is a literal.
package pathfmt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrEmptyPattern      = errors.New("date format pattern cannot be empty")
	ErrUnterminatedEsc   = errors.New("date format pattern has an unterminated [ escape")
	ErrNoMatch           = errors.New("value does not match date format pattern")
	ErrIncompleteDate    = errors.New("date format pattern does not identify a calendar day")
	ErrInvalidDate       = errors.New("parsed date does not exist")
	ErrWeekdayMismatch   = errors.New("weekday does not match date")
	ErrOutsideBaseFolder = errors.New("path is outside the base directory")
)

const noteExtension = ".md"

type tokenKind int

const (
	tokLiteral tokenKind = iota
	tokYear4
	tokYear2
	tokMonthName
	tokMonthShort
	tokMonth2
	tokMonth
	tokYearDay3
	tokYearDay
	tokDayOrdinal
	tokDay2
	tokDay
	tokWeekdayName
	tokWeekdayShort
	tokWeekdayMin
	tokWeekdayNum
)

// longest spellings first so that YYYY wins over YY and so on
var tokenTable = []struct {
	text string
	kind tokenKind
}{
	{"YYYY", tokYear4},
	{"MMMM", tokMonthName},
	{"DDDD", tokYearDay3},
	{"dddd", tokWeekdayName},
	{"MMM", tokMonthShort},
	{"DDD", tokYearDay},
	{"ddd", tokWeekdayShort},
	{"YY", tokYear2},
	{"MM", tokMonth2},
	{"DD", tokDay2},
	{"Do", tokDayOrdinal},
	{"dd", tokWeekdayMin},
	{"M", tokMonth},
	{"D", tokDay},
	{"d", tokWeekdayNum},
}

var weekdayMin = [7]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

type token struct {
	kind tokenKind
	lit  string
}

// Layout is a compiled date format pattern.
type Layout struct {
	pattern string
	tokens  []token
}

func Compile(pattern string) (*Layout, error) {
	if pattern == "" {
		return nil, ErrEmptyPattern
	}

	var tokens []token
	addLiteral := func(s string) {
		if n := len(tokens); n > 0 && tokens[n-1].kind == tokLiteral {
			tokens[n-1].lit += s
			return
		}
		tokens = append(tokens, token{kind: tokLiteral, lit: s})
	}

	for i := 0; i < len(pattern); {
		if pattern[i] == '[' {
			end := strings.IndexByte(pattern[i+1:], ']')
			if end == -1 {
				return nil, ErrUnterminatedEsc
			}
			addLiteral(pattern[i+1 : i+1+end])
			i += end + 2
			continue
		}

		matched := false
		for _, t := range tokenTable {
			if strings.HasPrefix(pattern[i:], t.text) {
				tokens = append(tokens, token{kind: t.kind})
				i += len(t.text)
				matched = true
				break
			}
		}
		if !matched {
			addLiteral(pattern[i : i+1])
			i++
		}
	}

	return &Layout{pattern: pattern, tokens: tokens}, nil
}

func MustCompile(pattern string) *Layout {
	l, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return l
}

func (l *Layout) String() string { return l.pattern }

func (l *Layout) Format(t time.Time) string {
	var b strings.Builder
	for _, tok := range l.tokens {
		switch tok.kind {
		case tokLiteral:
			b.WriteString(tok.lit)
		case tokYear4:
			fmt.Fprintf(&b, "%04d", t.Year())
		case tokYear2:
			fmt.Fprintf(&b, "%02d", t.Year()%100)
		case tokMonthName:
			b.WriteString(t.Month().String())
		case tokMonthShort:
			b.WriteString(t.Month().String()[:3])
		case tokMonth2:
			fmt.Fprintf(&b, "%02d", int(t.Month()))
		case tokMonth:
			b.WriteString(strconv.Itoa(int(t.Month())))
		case tokYearDay3:
			fmt.Fprintf(&b, "%03d", t.YearDay())
		case tokYearDay:
			b.WriteString(strconv.Itoa(t.YearDay()))
		case tokDayOrdinal:
			b.WriteString(strconv.Itoa(t.Day()) + ordinalSuffix(t.Day()))
		case tokDay2:
			fmt.Fprintf(&b, "%02d", t.Day())
		case tokDay:
			b.WriteString(strconv.Itoa(t.Day()))
		case tokWeekdayName:
			b.WriteString(t.Weekday().String())
		case tokWeekdayShort:
			b.WriteString(t.Weekday().String()[:3])
		case tokWeekdayMin:
			b.WriteString(weekdayMin[t.Weekday()])
		case tokWeekdayNum:
			b.WriteString(strconv.Itoa(int(t.Weekday())))
		}
	}
	return b.String()
}

func ordinalSuffix(day int) string {
	if day%100 >= 11 && day%100 <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}

// NotePath returns the vault-relative path of the daily note for day:
// baseDirectory/<formatted day>.md.
func NotePath(day time.Time, pattern, baseDirectory string) (string, error) {
	l, err := Compile(pattern)
	if err != nil {
		return "", err
	}
	return l.NotePath(day, baseDirectory), nil
}

func (l *Layout) NotePath(day time.Time, baseDirectory string) string {
	name := l.Format(day) + noteExtension
	base := strings.TrimSuffix(baseDirectory, "/")
	if base == "" {
		return name
	}
	return base + "/" + name
}
