package service

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/fittrackhq/fittrack-backend/internal/domain"
)

// activityMultipliers maps normalized activity levels to their TDEE
// multiplier. Lookup keys are lower-cased with spaces, hyphens and
// underscores removed, so "Lightly Active" and "lightly-active" both
// resolve.
var activityMultipliers = map[string]float64{
	"sedentary":        1.2,
	"lightlyactive":    1.375,
	"moderatelyactive": 1.55,
	"veryactive":       1.725,
	"extraactive":      1.9,
}

const defaultActivityMultiplier = 1.2

// TargetDailyCalories derives the calorie target from the profile alone:
// Mifflin-St Jeor BMR, scaled by the activity multiplier, shifted ±500 for
// a loss/gain goal, plus an optional adjustment from the adaptive loop.
//
// The goal text is matched case-insensitively, "loss" before "gain": a
// goal containing both words takes the loss branch.
func TargetDailyCalories(user *domain.User, adjustment int) float64 {
	bmr := 10*user.WeightKG + 6.25*user.HeightCM - 5*float64(user.Age)
	if strings.EqualFold(strings.TrimSpace(user.Gender), "male") {
		bmr += 5
	} else {
		bmr -= 161
	}

	tdee := bmr * activityMultiplier(user.ActivityLevel)

	goal := strings.ToLower(user.FitnessGoals)
	switch {
	case strings.Contains(goal, "loss"):
		tdee -= 500
	case strings.Contains(goal, "gain"):
		tdee += 500
	}

	return tdee + float64(adjustment)
}

func activityMultiplier(level string) float64 {
	normalized := strings.ToLower(level)
	for _, cut := range []string{" ", "-", "_"} {
		normalized = strings.ReplaceAll(normalized, cut, "")
	}
	if m, ok := activityMultipliers[normalized]; ok {
		return m
	}
	return defaultActivityMultiplier
}

// adherenceFromDays averages the per-day closeness of actual to target
// calories. Each day scores max(0, 100 - |actual-target|/target*100); the
// mean is rounded to 2 decimals. An empty window scores 0, not NaN.
func adherenceFromDays(days []domain.DaySummary, target float64) float64 {
	if len(days) == 0 {
		return 0
	}

	var total float64
	for _, day := range days {
		actual := float64(day.TotalCalories)
		score := 100 - math.Abs(actual-target)/target*100
		if score < 0 {
			score = 0
		}
		total += score
	}
	return round2(total / float64(len(days)))
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// ReportingService aggregates time-windowed metric logs into adherence
// scores and weekly progress reports. Reports are recomputed from the
// store on every call; nothing is cached.
type ReportingService struct {
	users   UserStore
	metrics MetricStore
	now     func() time.Time
}

func NewReportingService(users UserStore, metrics MetricStore) *ReportingService {
	return &ReportingService{users: users, metrics: metrics, now: time.Now}
}

func (s *ReportingService) getUser(userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %d: %w", userID, err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", userID, domain.ErrNotFound)
	}
	return user, nil
}

// DietAdherenceScore computes the adherence score over the trailing
// `days` window. Returns ErrNotFound when the user does not exist.
func (s *ReportingService) DietAdherenceScore(userID int64, days int) (float64, error) {
	user, err := s.getUser(userID)
	if err != nil {
		return 0, err
	}
	return s.adherenceForUser(user, days)
}

func (s *ReportingService) adherenceForUser(user *domain.User, days int) (float64, error) {
	since := s.now().UTC().AddDate(0, 0, -days)
	totals, err := s.metrics.DailyCalorieTotals(user.ID, since)
	if err != nil {
		return 0, fmt.Errorf("failed to load diet logs for user %d: %w", user.ID, err)
	}
	return adherenceFromDays(totals, TargetDailyCalories(user, 0)), nil
}

// WeeklyReport assembles the trailing-7-day progress report. The three
// underlying reads (weights, workout count, diet totals) are independent
// queries, not one snapshot; a concurrently arriving log may produce a
// momentarily inconsistent view, which is accepted.
func (s *ReportingService) WeeklyReport(userID int64) (*domain.WeeklyReport, error) {
	user, err := s.getUser(userID)
	if err != nil {
		return nil, err
	}

	end := s.now().UTC()
	start := end.AddDate(0, 0, -7)

	weights, err := s.metrics.WeightEntriesInWindow(user.ID, start)
	if err != nil {
		return nil, fmt.Errorf("failed to load weight entries for user %d: %w", userID, err)
	}
	weightChange := 0.0
	if len(weights) >= 2 {
		weightChange = round2(weights[len(weights)-1].WeightKG - weights[0].WeightKG)
	}

	workouts, err := s.metrics.CountWorkoutsInWindow(user.ID, start)
	if err != nil {
		return nil, fmt.Errorf("failed to count workouts for user %d: %w", userID, err)
	}

	adherence, err := s.adherenceForUser(user, 7)
	if err != nil {
		return nil, err
	}

	return &domain.WeeklyReport{
		UserName:            user.Name,
		PeriodStart:         start,
		PeriodEnd:           end,
		WeightChangeKG:      weightChange,
		WorkoutsCompleted:   workouts,
		DietAdherenceScore:  adherence,
		TargetDailyCalories: int(math.Round(TargetDailyCalories(user, 0))),
	}, nil
}

// WeeklyDietSummary returns total and per-day calorie counts over the
// trailing 7 days.
func (s *ReportingService) WeeklyDietSummary(userID int64) (*domain.DietSummary, error) {
	user, err := s.getUser(userID)
	if err != nil {
		return nil, err
	}

	end := s.now().UTC()
	start := end.AddDate(0, 0, -7)

	totals, err := s.metrics.DailyCalorieTotals(user.ID, start)
	if err != nil {
		return nil, fmt.Errorf("failed to load diet logs for user %d: %w", userID, err)
	}

	summary := &domain.DietSummary{
		PeriodStart: start,
		PeriodEnd:   end,
		Days:        totals,
	}
	if summary.Days == nil {
		summary.Days = []domain.DaySummary{}
	}
	for _, day := range totals {
		summary.TotalCalories += day.TotalCalories
	}
	return summary, nil
}
