package domain

import (
	"errors"
	"math"
	"sort"
	"strings"
)

var (
	ErrHabitPropertyEmpty   = errors.New("habit property name cannot be empty")
	ErrHabitPropertyTooLong = errors.New("habit property name is too long (max 100 chars)")
	ErrHabitNameTooLong     = errors.New("habit display name is too long (max 100 chars)")
	ErrInvalidWidget        = errors.New("invalid widget (must be checkbox, number, or multitext)")
	ErrInvalidTarget        = errors.New("target must be a finite, non-negative number")
	ErrInvalidCheckboxGoal  = errors.New("checkbox target must be 0 (unchecked) or 1 (checked)")
	ErrHabitAlreadyTracked  = errors.New("property is already being tracked")
)

type Widget string

const (
	WidgetCheckbox  Widget = "checkbox"
	WidgetNumber    Widget = "number"
	WidgetMultitext Widget = "multitext"

	MaxPropertyLen = 100
	MaxDisplayLen  = 100
)

func (w Widget) Valid() bool {
	switch w {
	case WidgetCheckbox, WidgetNumber, WidgetMultitext:
		return true
	}
	return false
}

// Numeric reports whether values of this widget are summed and compared
// against a numeric target.
func (w Widget) Numeric() bool {
	return w == WidgetNumber || w == WidgetMultitext
}

type HabitConfig struct {
	PropertyName string   `json:"property_name"`
	DisplayName  string   `json:"display_name"`
	Widget       Widget   `json:"widget"`
	Target       *float64 `json:"target,omitempty"`
	IsTotal      bool     `json:"is_total"`
	Order        int      `json:"order"`
	Ignored      bool     `json:"ignored"`
}

func validateAndNormalize(property, display string, widget Widget, target *float64, isTotal bool) (string, string, *float64, bool, error) {
	cleanProp := strings.TrimSpace(property)
	if cleanProp == "" {
		return "", "", nil, false, ErrHabitPropertyEmpty
	}
	if len(cleanProp) > MaxPropertyLen {
		return "", "", nil, false, ErrHabitPropertyTooLong
	}

	cleanDisplay := strings.TrimSpace(display)
	if cleanDisplay == "" {
		cleanDisplay = cleanProp
	}
	if len(cleanDisplay) > MaxDisplayLen {
		return "", "", nil, false, ErrHabitNameTooLong
	}

	if !widget.Valid() {
		return "", "", nil, false, ErrInvalidWidget
	}

	if target != nil {
		if *target < 0 || math.IsNaN(*target) || math.IsInf(*target, 0) {
			return "", "", nil, false, ErrInvalidTarget
		}
		if widget == WidgetCheckbox && *target != 0 && *target != 1 {
			return "", "", nil, false, ErrInvalidCheckboxGoal
		}
		t := *target
		target = &t
	}

	// a checkbox has no period total
	if widget == WidgetCheckbox {
		isTotal = false
	}

	return cleanProp, cleanDisplay, target, isTotal, nil
}

func NewHabitConfig(property, display string, widget Widget, target *float64, isTotal bool) (*HabitConfig, error) {
	prop, name, safeTarget, safeTotal, err := validateAndNormalize(property, display, widget, target, isTotal)
	if err != nil {
		return nil, err
	}

	return &HabitConfig{
		PropertyName: prop,
		DisplayName:  name,
		Widget:       widget,
		Target:       safeTarget,
		IsTotal:      safeTotal,
	}, nil
}

// Update replaces the mutable definition. The property name is the identity
// of a tracked habit and never changes.
func (h *HabitConfig) Update(display string, widget Widget, target *float64, isTotal bool) error {
	_, name, safeTarget, safeTotal, err := validateAndNormalize(h.PropertyName, display, widget, target, isTotal)
	if err != nil {
		return err
	}

	h.DisplayName = name
	h.Widget = widget
	h.Target = safeTarget
	h.IsTotal = safeTotal
	return nil
}

func (h *HabitConfig) ChangePosition(newOrder int) {
	h.Order = newOrder
}

// DesiredChecked is the checkbox state that counts as a success: unchecked
// only when the target is explicitly 0.
func (h *HabitConfig) DesiredChecked() bool {
	return h.Target == nil || *h.Target != 0
}

// EffectiveTarget returns the numeric threshold used for number and
// multitext habits. A number habit without a positive target has no success
// criterion; a multitext habit defaults to one item.
func (h *HabitConfig) EffectiveTarget() (float64, bool) {
	switch h.Widget {
	case WidgetNumber:
		if h.Target == nil || *h.Target == 0 {
			return 0, false
		}
		return *h.Target, true
	case WidgetMultitext:
		if h.Target == nil || *h.Target <= 0 {
			return 1, true
		}
		return *h.Target, true
	}
	return 0, false
}

func (h *HabitConfig) Clone() *HabitConfig {
	clone := *h
	if h.Target != nil {
		t := *h.Target
		clone.Target = &t
	}
	return &clone
}

func SortByOrder(habits []*HabitConfig) {
	sort.SliceStable(habits, func(i, j int) bool {
		return habits[i].Order < habits[j].Order
	})
}

// Renumber rewrites Order as the dense sequence 0..N-1 following slice order.
func Renumber(habits []*HabitConfig) {
	for i, h := range habits {
		h.ChangePosition(i)
	}
}

func ActiveHabits(habits []*HabitConfig) []*HabitConfig {
	active := make([]*HabitConfig, 0, len(habits))
	for _, h := range habits {
		if !h.Ignored {
			active = append(active, h)
		}
	}
	SortByOrder(active)
	return active
}

func FindHabit(habits []*HabitConfig, property string) int {
	for i, h := range habits {
		if h.PropertyName == property {
			return i
		}
	}
	return -1
}

// MoveHabit moves the dragged habit into the slot currently held by target
// and renumbers the set. The input slice is not modified.
func MoveHabit(habits []*HabitConfig, dragged, target string) ([]*HabitConfig, error) {
	ordered := make([]*HabitConfig, len(habits))
	copy(ordered, habits)
	SortByOrder(ordered)

	from := FindHabit(ordered, dragged)
	to := FindHabit(ordered, target)
	if from == -1 || to == -1 {
		return nil, ErrHabitNotFound
	}

	moved := ordered[from]
	ordered = append(ordered[:from], ordered[from+1:]...)
	ordered = append(ordered[:to], append([]*HabitConfig{moved}, ordered[to:]...)...)

	Renumber(ordered)
	return ordered, nil
}
