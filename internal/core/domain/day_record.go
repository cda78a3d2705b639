package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrInvalidValue = errors.New("invalid habit value")
)

type ValueKind int

const (
	ValueMissing ValueKind = iota
	ValueBool
	ValueNumber
)

// HabitValue is the normalized value of one habit on one day: a boolean, a
// number, or missing. Missing is distinct from false and from zero.
type HabitValue struct {
	kind ValueKind
	b    bool
	n    float64
}

func MissingValue() HabitValue {
	return HabitValue{}
}

func BoolValue(b bool) HabitValue {
	return HabitValue{kind: ValueBool, b: b}
}

func NumberValue(n float64) HabitValue {
	return HabitValue{kind: ValueNumber, n: n}
}

func (v HabitValue) Kind() ValueKind { return v.kind }

func (v HabitValue) IsMissing() bool { return v.kind == ValueMissing }

func (v HabitValue) Bool() (bool, bool) {
	return v.b, v.kind == ValueBool
}

func (v HabitValue) Number() (float64, bool) {
	return v.n, v.kind == ValueNumber
}

func (v HabitValue) String() string {
	switch v.kind {
	case ValueBool:
		return strconv.FormatBool(v.b)
	case ValueNumber:
		return strconv.FormatFloat(v.n, 'f', -1, 64)
	}
	return "null"
}

func (v HabitValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case ValueBool:
		return json.Marshal(v.b)
	case ValueNumber:
		return json.Marshal(v.n)
	}
	return []byte("null"), nil
}

func (v *HabitValue) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch t := raw.(type) {
	case nil:
		*v = MissingValue()
	case bool:
		*v = BoolValue(t)
	case float64:
		*v = NumberValue(t)
	default:
		return fmt.Errorf("%w: %s", ErrInvalidValue, string(data))
	}
	return nil
}

// DayRecord is one calendar day of a ledger.
type DayRecord struct {
	Date     string                `json:"date"`
	FilePath string                `json:"file_path"`
	Exists   bool                  `json:"exists"`
	Habits   map[string]HabitValue `json:"habits"`
}

func (d DayRecord) Value(property string) HabitValue {
	return d.Habits[property]
}

// Ledger is the ordered, gap-free sequence of days of one requested window,
// oldest first.
type Ledger []DayRecord

const DateLayout = "2006-01-02"
