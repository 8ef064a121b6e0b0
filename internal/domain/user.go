package domain

import "time"

// User is an end-user profile owned by a tenant. Biometric and lifestyle
// fields are nullable because tenants register users incrementally.
type User struct {
	ID               int64     `json:"id"`
	TenantID         int64     `json:"tenant_id"`
	Username         string    `json:"username"`
	Name             string    `json:"name"`
	ContactInfo      string    `json:"contact_info"`
	Age              int       `json:"age"`
	Gender           string    `json:"gender"`
	WeightKG         float64   `json:"weight_kg"`
	HeightCM         float64   `json:"height_cm"`
	FitnessGoals     string    `json:"fitness_goals"`
	ActivityLevel    string    `json:"activity_level"`
	WorkoutsPerWeek  *string   `json:"workouts_per_week,omitempty"`
	WorkoutDuration  *int      `json:"workout_duration,omitempty"`
	DislikedFoods    *string   `json:"disliked_foods,omitempty"`
	Allergies        *string   `json:"allergies,omitempty"`
	HealthConditions *string   `json:"health_conditions,omitempty"`
	SleepHours       *string   `json:"sleep_hours,omitempty"`
	StressLevel      *string   `json:"stress_level,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}
