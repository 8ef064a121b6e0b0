package domain

import "time"

// Metric log rows are append-only: the engines read them within time
// windows and never update or delete them.

type DietLog struct {
	ID        int64     `json:"id"`
	TenantID  int64     `json:"-"`
	UserID    int64     `json:"user_id"`
	MealName  string    `json:"meal_name"`
	FoodItems *string   `json:"food_items,omitempty"`
	Calories  int       `json:"calories"`
	ProteinG  *float64  `json:"protein_g,omitempty"`
	CarbsG    *float64  `json:"carbs_g,omitempty"`
	FatG      *float64  `json:"fat_g,omitempty"`
	LoggedAt  time.Time `json:"logged_at"`
}

type WorkoutLog struct {
	ID        int64           `json:"id"`
	TenantID  int64           `json:"-"`
	UserID    int64           `json:"user_id"`
	Name      string          `json:"name"`
	Exercises []ExerciseEntry `json:"exercises"`
	LoggedAt  time.Time       `json:"logged_at"`
}

type ExerciseEntry struct {
	ID           int64   `json:"id"`
	TenantID     int64   `json:"-"`
	WorkoutLogID int64   `json:"-"`
	Name         string  `json:"name"`
	Sets         int     `json:"sets"`
	Reps         int     `json:"reps"`
	Weight       float64 `json:"weight"`
}

type WeightEntry struct {
	ID       int64     `json:"id"`
	TenantID int64     `json:"-"`
	UserID   int64     `json:"user_id"`
	WeightKG float64   `json:"weight_kg"`
	LoggedAt time.Time `json:"logged_at"`
}

type MeasurementLog struct {
	ID       int64     `json:"id"`
	TenantID int64     `json:"-"`
	UserID   int64     `json:"user_id"`
	WaistCM  *float64  `json:"waist_cm,omitempty"`
	ChestCM  *float64  `json:"chest_cm,omitempty"`
	ArmsCM   *float64  `json:"arms_cm,omitempty"`
	HipsCM   *float64  `json:"hips_cm,omitempty"`
	LoggedAt time.Time `json:"logged_at"`
}
