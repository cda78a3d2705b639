package services

import (
	"fmt"
	"strconv"

	"github.com/comitanigiacomo/kanso-habit-ledger/internal/core/domain"
)

const (
	SuccessHigh   = "success-high"
	SuccessMedium = "success-medium"
	SuccessLow    = "success-low"
)

func SuccessColor(percentage int) string {
	switch {
	case percentage >= 90:
		return "#22c55e"
	case percentage >= 75:
		return "#65a30d"
	case percentage >= 50:
		return "#eab308"
	case percentage >= 25:
		return "#f97316"
	}
	return "#ef4444"
}

func SuccessClass(percentage int) string {
	switch {
	case percentage >= 75:
		return SuccessHigh
	case percentage >= 50:
		return SuccessMedium
	}
	return SuccessLow
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatNumericHabit renders "value/target (pct%)".
func FormatNumericHabit(value, target float64) string {
	if target == 0 {
		return fmt.Sprintf("%s/%s", formatNumber(value), formatNumber(target))
	}
	return fmt.Sprintf("%s/%s (%d%%)", formatNumber(value), formatNumber(target), roundPercent(value/target))
}

// SummaryLine is the one-line headline shown next to a habit.
func SummaryLine(habit *domain.HabitConfig, stats domain.HabitStats) string {
	if habit.Widget == domain.WidgetCheckbox {
		targetText := "checked"
		if !habit.DesiredChecked() {
			targetText = "unchecked"
		}
		return fmt.Sprintf("%d/%d (%d%%) - target: %s", stats.SuccessfulDays, stats.TotalDays, stats.SuccessRate, targetText)
	}

	target, ok := achievementTarget(habit)
	if !ok || stats.TargetAchievement == nil {
		return fmt.Sprintf("%d/%d (%d%%)", stats.SuccessfulDays, stats.TotalDays, stats.SuccessRate)
	}

	if habit.IsTotal {
		return fmt.Sprintf("Total: %s/%s (%d%%) - target: %s",
			formatNumber(stats.TotalValue), formatNumber(target), *stats.TargetAchievement, formatNumber(target))
	}

	avg := "0"
	if stats.AverageValue != nil && *stats.AverageValue != 0 {
		avg = strconv.FormatFloat(*stats.AverageValue, 'f', 1, 64)
	}
	return fmt.Sprintf("Avg: %s/%s (%d%%) - target: %s",
		avg, formatNumber(target), *stats.TargetAchievement, formatNumber(target))
}

func Summarize(habit *domain.HabitConfig, ledger domain.Ledger) domain.HabitSummary {
	stats := ComputeStats(habit, ledger)
	return domain.HabitSummary{
		Habit:        *habit.Clone(),
		Stats:        stats,
		Summary:      SummaryLine(habit, stats),
		SuccessClass: SuccessClass(stats.SuccessRate),
		Color:        SuccessColor(stats.SuccessRate),
		DailySuccess: DailySuccess(habit, ledger),
	}
}
