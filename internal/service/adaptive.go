package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/fittrackhq/fittrack-backend/internal/domain"
)

// AdaptivePlannerService is the weekly batch pass: for every user it takes
// the fresh weekly report, asks the model for a calorie adjustment, and
// regenerates the diet plan with that adjustment baked in.
type AdaptivePlannerService struct {
	users     UserStore
	reporting *ReportingService
	generator TextGenerator
	planner   *DietPlannerService
}

func NewAdaptivePlannerService(users UserStore, reporting *ReportingService, generator TextGenerator, planner *DietPlannerService) *AdaptivePlannerService {
	return &AdaptivePlannerService{
		users:     users,
		reporting: reporting,
		generator: generator,
		planner:   planner,
	}
}

// RunForAllUsers processes users sequentially. A failure for one user is
// logged and never aborts the batch; there are no retries within a run.
func (s *AdaptivePlannerService) RunForAllUsers(ctx context.Context) {
	users, err := s.users.GetAll()
	if err != nil {
		log.Printf("[adaptive] failed to list users, aborting run: %v", err)
		return
	}

	log.Printf("[adaptive] starting weekly planning run for %d users", len(users))
	for i := range users {
		s.runForUser(ctx, &users[i])
	}
	log.Printf("[adaptive] weekly planning run finished")
}

func (s *AdaptivePlannerService) runForUser(ctx context.Context, user *domain.User) {
	report, err := s.reporting.WeeklyReport(user.ID)
	if err != nil {
		log.Printf("[adaptive] user %d (%s): report failed: %v", user.ID, user.Name, err)
		return
	}

	adjustment := s.calorieAdjustment(ctx, user, report)

	if _, err := s.planner.GeneratePlan(ctx, user, DietPlanOptions{}, adjustment); err != nil {
		log.Printf("[adaptive] user %d (%s): plan regeneration failed: %v", user.ID, user.Name, err)
		return
	}
	log.Printf("[adaptive] user %d (%s): new diet plan generated (adjustment %+d kcal)",
		user.ID, user.Name, adjustment)
}

// calorieAdjustment asks the model for a bare-integer daily calorie
// adjustment. Any failure - call error, missing configuration, or a reply
// that does not parse as an integer - defaults to 0 and never propagates.
func (s *AdaptivePlannerService) calorieAdjustment(ctx context.Context, user *domain.User, report *domain.WeeklyReport) int {
	prompt := buildAdjustmentPrompt(user, report)

	reply, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		log.Printf("[adaptive] user %d: adjustment call failed, defaulting to 0: %v", user.ID, err)
		return 0
	}

	adjustment, err := strconv.Atoi(strings.TrimSpace(reply))
	if err != nil {
		log.Printf("[adaptive] user %d: adjustment reply %q not an integer, defaulting to 0", user.ID, reply)
		return 0
	}
	return adjustment
}

func buildAdjustmentPrompt(user *domain.User, report *domain.WeeklyReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A user's primary fitness goal is '%s'.\n", user.FitnessGoals)
	b.WriteString("Based on their weekly progress report below, suggest a daily calorie adjustment for the next week.\n")
	fmt.Fprintf(&b, "The user's target daily calories were %d kcal.\n", report.TargetDailyCalories)
	fmt.Fprintf(&b, "Their diet adherence was %v%% and their weight changed by %v kg.\n\n",
		report.DietAdherenceScore, report.WeightChangeKG)
	b.WriteString("- If their goal is 'weight loss' and they gained weight or didn't lose enough, suggest a negative adjustment (e.g., -150).\n")
	b.WriteString("- If their goal is 'weight gain' and they lost weight or didn't gain enough, suggest a positive adjustment (e.g., +150).\n")
	b.WriteString("- If progress is good, suggest a small or zero adjustment.\n\n")
	b.WriteString("Respond with ONLY a single integer number representing the calorie adjustment and nothing else.\nExample response: -100")
	return b.String()
}
