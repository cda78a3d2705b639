package domain_test

import (
	"math"
	"strings"
	"testing"

	"github.com/comitanigiacomo/kanso-habit-ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func target(v float64) *float64 {
	return &v
}

func TestNewHabitConfig(t *testing.T) {
	t.Run("Success: Creates a trimmed habit", func(t *testing.T) {
		h, err := domain.NewHabitConfig("  sleep ", " Sleep ", domain.WidgetNumber, target(8), false)

		require.NoError(t, err)
		assert.Equal(t, "sleep", h.PropertyName)
		assert.Equal(t, "Sleep", h.DisplayName)
		assert.Equal(t, domain.WidgetNumber, h.Widget)
		assert.Equal(t, 8.0, *h.Target)
		assert.Equal(t, 0, h.Order)
		assert.False(t, h.Ignored)
	})

	t.Run("Success: Target is copied", func(t *testing.T) {
		goal := target(8)
		h, err := domain.NewHabitConfig("sleep", "", domain.WidgetNumber, goal, false)
		require.NoError(t, err)

		*goal = 4
		assert.Equal(t, 8.0, *h.Target)
	})

	t.Run("Success: Checkbox never keeps a period total", func(t *testing.T) {
		h, err := domain.NewHabitConfig("gym", "", domain.WidgetCheckbox, nil, true)

		require.NoError(t, err)
		assert.False(t, h.IsTotal)
	})
}

func TestHabitConfig_Validation(t *testing.T) {
	tests := []struct {
		name     string
		property string
		display  string
		widget   domain.Widget
		target   *float64
		wantErr  error
	}{
		{"Empty property", "   ", "", domain.WidgetCheckbox, nil, domain.ErrHabitPropertyEmpty},
		{"Property too long", strings.Repeat("p", 101), "", domain.WidgetCheckbox, nil, domain.ErrHabitPropertyTooLong},
		{"Display too long", "p", strings.Repeat("d", 101), domain.WidgetCheckbox, nil, domain.ErrHabitNameTooLong},
		{"Unknown widget", "p", "", domain.Widget("slider"), nil, domain.ErrInvalidWidget},
		{"Negative target", "p", "", domain.WidgetNumber, target(-1), domain.ErrInvalidTarget},
		{"NaN target", "p", "", domain.WidgetNumber, target(math.NaN()), domain.ErrInvalidTarget},
		{"Infinite target", "p", "", domain.WidgetNumber, target(math.Inf(1)), domain.ErrInvalidTarget},
		{"Negative infinite target", "p", "", domain.WidgetMultitext, target(math.Inf(-1)), domain.ErrInvalidTarget},
		{"Checkbox target out of range", "p", "", domain.WidgetCheckbox, target(2), domain.ErrInvalidCheckboxGoal},
		{"Checkbox target zero", "p", "", domain.WidgetCheckbox, target(0), nil},
		{"Multitext target", "p", "", domain.WidgetMultitext, target(3), nil},
		{"Max length property", strings.Repeat("p", 100), "", domain.WidgetNumber, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewHabitConfig(tt.property, tt.display, tt.widget, tt.target, false)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestHabitConfig_Update(t *testing.T) {
	h, err := domain.NewHabitConfig("pages", "Pages", domain.WidgetNumber, target(100), true)
	require.NoError(t, err)

	t.Run("Failure: Invalid update leaves the habit untouched", func(t *testing.T) {
		err := h.Update("Pages", domain.WidgetCheckbox, target(100), true)

		assert.ErrorIs(t, err, domain.ErrInvalidCheckboxGoal)
		assert.Equal(t, domain.WidgetNumber, h.Widget)
		assert.True(t, h.IsTotal)
	})

	t.Run("Success: Property name is kept", func(t *testing.T) {
		err := h.Update("", domain.WidgetMultitext, nil, false)

		require.NoError(t, err)
		assert.Equal(t, "pages", h.PropertyName)
		assert.Equal(t, "pages", h.DisplayName)
		assert.Nil(t, h.Target)
	})
}

func TestHabitConfig_Targets(t *testing.T) {
	tests := []struct {
		name        string
		habit       domain.HabitConfig
		wantTarget  float64
		wantOK      bool
		wantChecked bool
	}{
		{"Checkbox default", domain.HabitConfig{Widget: domain.WidgetCheckbox}, 0, false, true},
		{"Checkbox unchecked", domain.HabitConfig{Widget: domain.WidgetCheckbox, Target: target(0)}, 0, false, false},
		{"Number with target", domain.HabitConfig{Widget: domain.WidgetNumber, Target: target(8)}, 8, true, true},
		{"Number without target", domain.HabitConfig{Widget: domain.WidgetNumber}, 0, false, true},
		{"Number zero target", domain.HabitConfig{Widget: domain.WidgetNumber, Target: target(0)}, 0, false, false},
		{"Multitext default", domain.HabitConfig{Widget: domain.WidgetMultitext}, 1, true, true},
		{"Multitext target", domain.HabitConfig{Widget: domain.WidgetMultitext, Target: target(3)}, 3, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.habit.EffectiveTarget()
			assert.Equal(t, tt.wantTarget, got)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantChecked, tt.habit.DesiredChecked())
		})
	}
}

func trackedSet(properties ...string) []*domain.HabitConfig {
	habits := make([]*domain.HabitConfig, len(properties))
	for i, p := range properties {
		habits[i] = &domain.HabitConfig{PropertyName: p, Widget: domain.WidgetCheckbox, Order: i}
	}
	return habits
}

func names(habits []*domain.HabitConfig) []string {
	out := make([]string, len(habits))
	for i, h := range habits {
		out[i] = h.PropertyName
	}
	return out
}

func TestMoveHabit(t *testing.T) {
	t.Run("Success: Moves down and renumbers", func(t *testing.T) {
		habits := trackedSet("a", "b", "c", "d")

		moved, err := domain.MoveHabit(habits, "b", "d")

		require.NoError(t, err)
		assert.Equal(t, []string{"a", "c", "d", "b"}, names(moved))
		for i, h := range moved {
			assert.Equal(t, i, h.Order)
		}
		assert.Equal(t, []string{"a", "b", "c", "d"}, names(habits), "input slice order must not change")
	})

	t.Run("Success: Moves up", func(t *testing.T) {
		moved, err := domain.MoveHabit(trackedSet("a", "b", "c"), "c", "a")

		require.NoError(t, err)
		assert.Equal(t, []string{"c", "a", "b"}, names(moved))
	})

	t.Run("Success: Same position is a no-op", func(t *testing.T) {
		moved, err := domain.MoveHabit(trackedSet("a", "b", "c"), "b", "b")

		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, names(moved))
	})

	t.Run("Failure: Unknown habit", func(t *testing.T) {
		_, err := domain.MoveHabit(trackedSet("a"), "a", "z")
		assert.ErrorIs(t, err, domain.ErrHabitNotFound)
	})
}

func TestActiveHabits(t *testing.T) {
	habits := trackedSet("a", "b", "c")
	habits[0].Order, habits[2].Order = 2, 0
	habits[1].Ignored = true

	active := domain.ActiveHabits(habits)

	assert.Equal(t, []string{"c", "a"}, names(active))
	assert.Equal(t, 1, domain.FindHabit(habits, "b"))
	assert.Equal(t, -1, domain.FindHabit(habits, "z"))
}

func TestHabitConfig_Clone(t *testing.T) {
	h := &domain.HabitConfig{PropertyName: "sleep", Widget: domain.WidgetNumber, Target: target(8)}

	clone := h.Clone()
	*clone.Target = 6

	assert.Equal(t, 8.0, *h.Target)
}
