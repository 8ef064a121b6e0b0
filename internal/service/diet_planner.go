package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/fittrackhq/fittrack-backend/internal/domain"
)

// DietPlanOptions carries request-scoped preferences that are not part of
// the stored profile.
type DietPlanOptions struct {
	DietType         string   `json:"diet_type"`
	MonthlyBudget    string   `json:"budget"`
	OptionalCuisines []string `json:"optional_cuisines"`
}

// DietPlannerService generates a 7-day diet plan via the generative
// collaborator and persists it.
type DietPlannerService struct {
	generator TextGenerator
	plans     PlanStore
	now       func() time.Time
}

func NewDietPlannerService(generator TextGenerator, plans PlanStore) *DietPlannerService {
	return &DietPlannerService{generator: generator, plans: plans, now: time.Now}
}

// GeneratePlan builds the prompt from the profile and the derived calorie
// target (shifted by calorieAdjustment), calls the model, and persists the
// returned plan. A generation failure surfaces as ErrExternalService; a
// failed insert as ErrPersistence.
func (s *DietPlannerService) GeneratePlan(ctx context.Context, user *domain.User, opts DietPlanOptions, calorieAdjustment int) (*domain.GeneratedPlan, error) {
	target := TargetDailyCalories(user, calorieAdjustment)
	prompt := buildDietPrompt(user, opts, target)

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("diet plan generation failed for user %d: %w", user.ID, err)
	}

	plan := &domain.GeneratedPlan{
		TenantID:  user.TenantID,
		UserID:    user.ID,
		Kind:      domain.PlanKindDiet,
		Plan:      text,
		CreatedAt: s.now().UTC(),
	}
	id, err := s.plans.Create(plan)
	if err != nil {
		return nil, fmt.Errorf("failed to save diet plan for user %d: %v: %w",
			user.ID, err, domain.ErrPersistence)
	}
	plan.ID = id
	return plan, nil
}

func buildDietPrompt(user *domain.User, opts DietPlanOptions, targetCalories float64) string {
	dietType := opts.DietType
	if dietType == "" {
		dietType = "veg"
	}
	budget := strings.ReplaceAll(opts.MonthlyBudget, ",", "")
	if budget == "" {
		budget = "5000"
	}

	var cuisines []string
	for _, c := range opts.OptionalCuisines {
		c = strings.TrimSpace(c)
		if c != "" && !strings.EqualFold(c, "string") {
			cuisines = append(cuisines, c)
		}
	}
	cuisineLine := "The diet must be strictly Indian, using commonly available ingredients in India."
	if len(cuisines) > 0 {
		cuisineLine = fmt.Sprintf(
			"The diet should be primarily Indian, but incorporate 2-3 meals from the following cuisines for variety: %s.",
			strings.Join(cuisines, ", "))
	}

	var b strings.Builder
	b.WriteString("You are an expert nutritionist and fitness coach.\n")
	b.WriteString("Generate a comprehensive, 7-day weekly diet plan (Monday to Sunday) with Breakfast, Lunch, Dinner and two Snacks per day.\n\n")
	b.WriteString("Core instructions:\n")
	fmt.Fprintf(&b, "- Cuisine focus: %s\n", cuisineLine)
	fmt.Fprintf(&b, "- Dietary preference: %s\n", dietType)
	fmt.Fprintf(&b, "- Monthly food budget: approximately %s. Meals should be cost-effective.\n", budget)
	fmt.Fprintf(&b, "- Primary goal: %s\n", user.FitnessGoals)
	fmt.Fprintf(&b, "- Target daily calories: approximately %.0f kcal/day. Ensure meal diversity and portion control.\n", math.Round(targetCalories))
	b.WriteString("- Meals must be balanced in macronutrients. Avoid processed, sugary, or deep-fried foods.\n\n")
	b.WriteString("User profile:\n")
	fmt.Fprintf(&b, "- Age: %d\n- Gender: %s\n- Weight: %.1f kg\n- Height: %.1f cm\n- Activity level: %s\n",
		user.Age, user.Gender, user.WeightKG, user.HeightCM, user.ActivityLevel)
	fmt.Fprintf(&b, "- Disliked foods (must not appear in the plan): %s\n", orNone(user.DislikedFoods))
	fmt.Fprintf(&b, "- Allergies (ingredients causing these must be excluded): %s\n\n", orNone(user.Allergies))
	b.WriteString("For each meal list food items, portion sizes and estimated calories.\n")
	b.WriteString(`Output must be ONLY a valid JSON object with keys "weekly_plan" (day name -> meals) and "summary" - no comments, markdown, or extra text.`)
	return b.String()
}

func orNone(s *string) string {
	if s == nil || *s == "" {
		return "None"
	}
	return *s
}
