package domain

type HabitStats struct {
	PropertyName      string   `json:"property_name"`
	TotalDays         int      `json:"total_days"`
	SuccessfulDays    int      `json:"successful_days"`
	SuccessRate       int      `json:"success_rate"`
	CurrentStreak     int      `json:"current_streak"`
	LongestStreak     int      `json:"longest_streak"`
	ValidValues       int      `json:"valid_values"`
	TotalValue        float64  `json:"total_value"`
	AverageValue      *float64 `json:"average_value,omitempty"`
	TargetAchievement *int     `json:"target_achievement,omitempty"`
}

type HabitSummary struct {
	Habit        HabitConfig `json:"habit"`
	Stats        HabitStats  `json:"stats"`
	Summary      string      `json:"summary"`
	SuccessClass string      `json:"success_class"`
	Color        string      `json:"color"`
	DailySuccess []bool      `json:"daily_success"`
}

type Dashboard struct {
	TimeSpan  TimeSpan       `json:"time_span"`
	StartDate string         `json:"start_date"`
	EndDate   string         `json:"end_date"`
	Days      Ledger         `json:"days"`
	Habits    []HabitSummary `json:"habits"`
}
