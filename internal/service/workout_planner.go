package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fittrackhq/fittrack-backend/internal/domain"
)

// WorkoutPlanOptions carries request-scoped preferences for workout plan
// generation.
type WorkoutPlanOptions struct {
	FitnessLevel string `json:"fitness_level"`
	Equipment    string `json:"equipment"`
}

// WorkoutPlannerService generates a 7-day workout plan via the generative
// collaborator and persists it.
type WorkoutPlannerService struct {
	generator TextGenerator
	plans     PlanStore
	now       func() time.Time
}

func NewWorkoutPlannerService(generator TextGenerator, plans PlanStore) *WorkoutPlannerService {
	return &WorkoutPlannerService{generator: generator, plans: plans, now: time.Now}
}

func (s *WorkoutPlannerService) GeneratePlan(ctx context.Context, user *domain.User, opts WorkoutPlanOptions) (*domain.GeneratedPlan, error) {
	text, err := s.generator.Generate(ctx, buildWorkoutPrompt(user, opts))
	if err != nil {
		return nil, fmt.Errorf("workout plan generation failed for user %d: %w", user.ID, err)
	}

	plan := &domain.GeneratedPlan{
		TenantID:  user.TenantID,
		UserID:    user.ID,
		Kind:      domain.PlanKindWorkout,
		Plan:      text,
		CreatedAt: s.now().UTC(),
	}
	id, err := s.plans.Create(plan)
	if err != nil {
		return nil, fmt.Errorf("failed to save workout plan for user %d: %v: %w",
			user.ID, err, domain.ErrPersistence)
	}
	plan.ID = id
	return plan, nil
}

func buildWorkoutPrompt(user *domain.User, opts WorkoutPlanOptions) string {
	level := opts.FitnessLevel
	if level == "" {
		level = "beginner"
	}
	equipment := opts.Equipment
	if equipment == "" {
		equipment = "bodyweight only"
	}

	workoutsPerWeek := "3"
	if user.WorkoutsPerWeek != nil && *user.WorkoutsPerWeek != "" {
		workoutsPerWeek = *user.WorkoutsPerWeek
	}
	duration := 45
	if user.WorkoutDuration != nil && *user.WorkoutDuration > 0 {
		duration = *user.WorkoutDuration
	}

	var b strings.Builder
	b.WriteString("Generate a detailed, 7-day weekly workout plan (Monday to Sunday) for the following user profile. The output MUST be only a valid JSON object.\n\n")
	fmt.Fprintf(&b, "- Primary goal: %s\n", user.FitnessGoals)
	fmt.Fprintf(&b, "- Fitness level: %s\n", level)
	fmt.Fprintf(&b, "- Workouts per week: %s (schedule rest days accordingly)\n", workoutsPerWeek)
	fmt.Fprintf(&b, "- Preferred duration: %d minutes per session\n", duration)
	fmt.Fprintf(&b, "- Equipment availability: %s\n", equipment)
	fmt.Fprintf(&b, "- Existing injuries or conditions: %s\n\n", orNone(user.HealthConditions))
	b.WriteString("For each workout day provide 5-7 exercises with name, sets, reps, rest time in seconds and a brief form_guidance tip. ")
	b.WriteString("Categorize each day by muscle group or workout type (e.g. Push, Pull, Legs, Cardio). ")
	b.WriteString(`Structure: {"plan_name": "...", "weekly_schedule": {"Monday": {"day_type": "...", "exercises": [...]}, ...}} with rest days as {"day_type": "Rest"}.`)
	return b.String()
}
