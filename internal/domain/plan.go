package domain

import "time"

// PlanKind distinguishes the two generated plan types stored in the same
// shape.
type PlanKind string

const (
	PlanKindDiet    PlanKind = "diet"
	PlanKindWorkout PlanKind = "workout"
)

// GeneratedPlan is a persisted AI-generated diet or workout plan. The plan
// body is stored as the raw JSON text returned by the model.
type GeneratedPlan struct {
	ID        int64     `json:"id"`
	TenantID  int64     `json:"-"`
	UserID    int64     `json:"user_id"`
	Kind      PlanKind  `json:"kind"`
	Plan      string    `json:"generated_plan"`
	CreatedAt time.Time `json:"created_at"`
}
