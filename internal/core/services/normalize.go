package services

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/comitanigiacomo/kanso-habit-ledger/internal/core/domain"
)

// NormalizeValue converts a raw frontmatter value into the value kind of the
// widget. A value of the wrong shape yields a missing value and an error
// wrapping domain.ErrInvalidValue; callers log it and keep going.
//
// An absent number property counts as zero while an absent checkbox or list
// stays missing.
func NormalizeValue(widget domain.Widget, raw any) (domain.HabitValue, error) {
	if raw == nil {
		if widget == domain.WidgetNumber {
			return domain.NumberValue(0), nil
		}
		return domain.MissingValue(), nil
	}

	switch widget {
	case domain.WidgetCheckbox:
		switch v := raw.(type) {
		case bool:
			return domain.BoolValue(v), nil
		case string:
			if v == "true" {
				return domain.BoolValue(true), nil
			}
			if v == "false" {
				return domain.BoolValue(false), nil
			}
		}
		return domain.MissingValue(), fmt.Errorf("%w: checkbox value %v", domain.ErrInvalidValue, raw)

	case domain.WidgetNumber:
		n, ok := toNumber(raw)
		if !ok {
			return domain.MissingValue(), fmt.Errorf("%w: number value %v", domain.ErrInvalidValue, raw)
		}
		return domain.NumberValue(n), nil

	case domain.WidgetMultitext:
		count, ok := itemCount(raw)
		if !ok {
			return domain.MissingValue(), fmt.Errorf("%w: list value %v", domain.ErrInvalidValue, raw)
		}
		return domain.NumberValue(float64(count)), nil
	}

	return domain.MissingValue(), fmt.Errorf("%w: %q", domain.ErrInvalidWidget, widget)
}

// toNumber follows the loose numeric coercion of the note host: booleans
// count as 0/1, blank strings as 0, other strings must parse completely.
// Only finite results are accepted. NaN, "inf", YAML .inf and strings that
// overflow a float64 such as "1e500" are all rejected, so they surface as an
// invalid value rather than an infinite average.
func toNumber(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return finite(v)
	case float32:
		return finite(float64(v))
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case uint:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return finite(f)
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, true
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return finite(f)
	}
	return 0, false
}

func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// itemCount counts list items. A byte slice is raw data, not a list.
func itemCount(raw any) (int, bool) {
	switch v := raw.(type) {
	case []any:
		return len(v), true
	case []string:
		return len(v), true
	case []byte:
		return 0, false
	}

	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return 0, false
		}
		return rv.Len(), true
	}
	return 0, false
}
