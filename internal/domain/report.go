package domain

import "time"

// WeeklyReport is derived on every request and never persisted, so it is
// always fresh relative to the metric tables at call time.
type WeeklyReport struct {
	UserName            string    `json:"user_name"`
	PeriodStart         time.Time `json:"period_start"`
	PeriodEnd           time.Time `json:"period_end"`
	WeightChangeKG      float64   `json:"weight_change_kg"`
	WorkoutsCompleted   int       `json:"workouts_completed"`
	DietAdherenceScore  float64   `json:"diet_adherence_score"`
	TargetDailyCalories int       `json:"target_daily_calories"`
}

// DaySummary is one calendar day's calorie total inside a diet summary
// window.
type DaySummary struct {
	Date          string `json:"date"`
	TotalCalories int    `json:"total_calories"`
}

// DietSummary is the weekly diet summary: total and per-day calorie counts
// over the trailing window.
type DietSummary struct {
	PeriodStart   time.Time    `json:"period_start"`
	PeriodEnd     time.Time    `json:"period_end"`
	TotalCalories int          `json:"total_calories"`
	Days          []DaySummary `json:"days"`
}
