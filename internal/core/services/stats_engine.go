package services

import (
	"math"

	"github.com/comitanigiacomo/kanso-habit-ledger/internal/core/domain"
)

type dayOutcomes struct {
	success        []bool
	successfulDays int
	totalValue     float64
	validValues    int
}

// ComputeStats evaluates one habit over a ledger. It is a pure function of
// its inputs.
func ComputeStats(habit *domain.HabitConfig, ledger domain.Ledger) domain.HabitStats {
	outcomes := evaluateDays(habit, ledger)
	current, longest := calculateStreaks(outcomes.success)

	totalDays := len(ledger)
	stats := domain.HabitStats{
		PropertyName:   habit.PropertyName,
		TotalDays:      totalDays,
		SuccessfulDays: outcomes.successfulDays,
		CurrentStreak:  current,
		LongestStreak:  longest,
		ValidValues:    outcomes.validValues,
		TotalValue:     outcomes.totalValue,
	}

	if totalDays > 0 {
		stats.SuccessRate = roundPercent(float64(outcomes.successfulDays) / float64(totalDays))
	}

	if outcomes.validValues > 0 {
		avg := outcomes.totalValue / float64(outcomes.validValues)
		stats.AverageValue = &avg
	}

	if target, ok := achievementTarget(habit); ok {
		achievement := 0
		switch {
		case habit.IsTotal:
			achievement = roundPercent(outcomes.totalValue / target)
		case stats.AverageValue != nil:
			achievement = roundPercent(*stats.AverageValue / target)
		}
		stats.TargetAchievement = &achievement
	}

	return stats
}

// DailySuccess exposes the per-day outcome used for streaks, oldest first.
func DailySuccess(habit *domain.HabitConfig, ledger domain.Ledger) []bool {
	return evaluateDays(habit, ledger).success
}

// evaluateDays walks the ledger oldest to newest and decides every day once.
//
// For a period total the day is a success when the running sum is at or ahead
// of the straight-line pace towards the target, so early days can pass even if
// the period ends short of it.
func evaluateDays(habit *domain.HabitConfig, ledger domain.Ledger) dayOutcomes {
	totalDays := len(ledger)
	out := dayOutcomes{success: make([]bool, totalDays)}

	target, hasTarget := habit.EffectiveTarget()
	desired := habit.DesiredChecked()
	runningSum := 0.0

	for i, day := range ledger {
		value := day.Value(habit.PropertyName)
		if value.IsMissing() {
			continue
		}
		out.validValues++

		isSuccess := false
		switch habit.Widget {
		case domain.WidgetCheckbox:
			if checked, ok := value.Bool(); ok {
				isSuccess = checked == desired
			}
			if isSuccess {
				out.totalValue++
			}

		case domain.WidgetNumber, domain.WidgetMultitext:
			n, ok := value.Number()
			if !ok {
				break
			}
			out.totalValue += n
			runningSum += n

			if !hasTarget {
				break
			}
			if habit.IsTotal {
				expected := target * float64(i+1) / float64(totalDays)
				isSuccess = runningSum >= expected
			} else {
				isSuccess = n >= target
			}
		}

		out.success[i] = isSuccess
		if isSuccess {
			out.successfulDays++
		}
	}

	return out
}

// calculateStreaks walks the decided days newest to oldest. The current
// streak is the run anchored at the most recent day.
func calculateStreaks(success []bool) (int, int) {
	current, longest, run := 0, 0, 0
	trailing := true

	for i := len(success) - 1; i >= 0; i-- {
		if success[i] {
			run++
			if trailing {
				current = run
			}
			continue
		}

		trailing = false
		if run > longest {
			longest = run
		}
		run = 0
	}

	if run > longest {
		longest = run
	}

	return current, longest
}

func achievementTarget(habit *domain.HabitConfig) (float64, bool) {
	if !habit.Widget.Numeric() {
		return 0, false
	}
	return habit.EffectiveTarget()
}

// roundPercent rounds half up like the host's Math.round.
func roundPercent(ratio float64) int {
	return int(math.Floor(ratio*100 + 0.5))
}
