package services

import (
	"testing"

	"github.com/comitanigiacomo/kanso-habit-ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestSuccessColorAndClass(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pct   int
		color string
		class string
	}{
		{100, "#22c55e", SuccessHigh},
		{90, "#22c55e", SuccessHigh},
		{89, "#65a30d", SuccessHigh},
		{75, "#65a30d", SuccessHigh},
		{74, "#eab308", SuccessMedium},
		{50, "#eab308", SuccessMedium},
		{49, "#f97316", SuccessLow},
		{25, "#f97316", SuccessLow},
		{0, "#ef4444", SuccessLow},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.color, SuccessColor(tt.pct), "color for %d", tt.pct)
		assert.Equal(t, tt.class, SuccessClass(tt.pct), "class for %d", tt.pct)
	}
}

func TestFormatNumericHabit(t *testing.T) {
	assert.Equal(t, "5/10 (50%)", FormatNumericHabit(5, 10))
	assert.Equal(t, "2.5/4 (63%)", FormatNumericHabit(2.5, 4))
	assert.Equal(t, "3/0", FormatNumericHabit(3, 0))
}

func TestSummaryLine(t *testing.T) {
	t.Parallel()

	t.Run("Checkbox shows the desired state", func(t *testing.T) {
		habit := &domain.HabitConfig{PropertyName: "smoke", Widget: domain.WidgetCheckbox, Target: fptr(0)}
		line := SummaryLine(habit, ComputeStats(habit, ledgerOf("smoke", false, true)))

		assert.Equal(t, "1/2 (50%) - target: unchecked", line)
	})

	t.Run("Period total shows the sum", func(t *testing.T) {
		habit := &domain.HabitConfig{PropertyName: "pages", Widget: domain.WidgetNumber, Target: fptr(100), IsTotal: true}
		line := SummaryLine(habit, ComputeStats(habit, ledgerOf("pages", 20, 30)))

		assert.Equal(t, "Total: 50/100 (50%) - target: 100", line)
	})

	t.Run("Daily target shows the average", func(t *testing.T) {
		habit := &domain.HabitConfig{PropertyName: "sleep", Widget: domain.WidgetNumber, Target: fptr(8)}
		line := SummaryLine(habit, ComputeStats(habit, ledgerOf("sleep", 7, 8)))

		assert.Equal(t, "Avg: 7.5/8 (94%) - target: 8", line)
	})

	t.Run("Daily target without data shows zero", func(t *testing.T) {
		habit := &domain.HabitConfig{PropertyName: "sleep", Widget: domain.WidgetNumber, Target: fptr(8)}
		line := SummaryLine(habit, ComputeStats(habit, ledgerOf("sleep", nil)))

		assert.Equal(t, "Avg: 0/8 (0%) - target: 8", line)
	})

	t.Run("Number without target falls back to the rate", func(t *testing.T) {
		habit := &domain.HabitConfig{PropertyName: "coffee", Widget: domain.WidgetNumber}
		line := SummaryLine(habit, ComputeStats(habit, ledgerOf("coffee", 1, 2)))

		assert.Equal(t, "0/2 (0%)", line)
	})
}

func TestSummarize(t *testing.T) {
	habit := &domain.HabitConfig{PropertyName: "meditate", DisplayName: "Meditate", Widget: domain.WidgetCheckbox}
	summary := Summarize(habit, ledgerOf("meditate", true, false, true, true, true))

	assert.Equal(t, "Meditate", summary.Habit.DisplayName)
	assert.Equal(t, 80, summary.Stats.SuccessRate)
	assert.Equal(t, SuccessHigh, summary.SuccessClass)
	assert.Equal(t, "#65a30d", summary.Color)
	assert.Equal(t, []bool{true, false, true, true, true}, summary.DailySuccess)
	assert.Equal(t, "4/5 (80%) - target: checked", summary.Summary)
}
