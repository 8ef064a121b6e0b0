package service

import (
	"errors"
	"math"
	"testing"

	"github.com/fittrackhq/fittrack-backend/internal/domain"
)

func baseProfile() *domain.User {
	return &domain.User{
		ID:            1,
		TenantID:      1,
		Name:          "Test User",
		Age:           30,
		Gender:        "male",
		WeightKG:      80,
		HeightCM:      180,
		ActivityLevel: "sedentary",
		FitnessGoals:  "maintain",
	}
}

// Male baseline: BMR = 10*80 + 6.25*180 - 5*30 + 5 = 1780, TDEE = 1780*1.2 = 2136.
func TestTargetDailyCalories(t *testing.T) {
	cases := []struct {
		name   string
		mutFn  func(u *domain.User)
		adjust int
		want   float64
	}{
		{"male sedentary maintain", func(u *domain.User) {}, 0, 2136},
		{"female sedentary maintain", func(u *domain.User) { u.Gender = "female" }, 0, 1936.8},
		{"gender match is case-insensitive", func(u *domain.User) { u.Gender = "Male" }, 0, 2136},
		{"moderately active", func(u *domain.User) { u.ActivityLevel = "moderately active" }, 0, 2759},
		{"hyphenated activity level", func(u *domain.User) { u.ActivityLevel = "lightly-active" }, 0, 2447.5},
		{"camel-case activity level", func(u *domain.User) { u.ActivityLevel = "veryActive" }, 0, 3070.5},
		{"extra active", func(u *domain.User) { u.ActivityLevel = "extra_active" }, 0, 3382},
		{"unknown level defaults to sedentary", func(u *domain.User) { u.ActivityLevel = "olympian" }, 0, 2136},
		{"missing level defaults to sedentary", func(u *domain.User) { u.ActivityLevel = "" }, 0, 2136},
		{"loss goal subtracts 500", func(u *domain.User) { u.FitnessGoals = "weight loss" }, 0, 1636},
		{"gain goal adds 500", func(u *domain.User) { u.FitnessGoals = "muscle gain" }, 0, 2636},
		{"goal match is case-insensitive", func(u *domain.User) { u.FitnessGoals = "Weight LOSS" }, 0, 1636},
		// "Weight loss and toning" must take the loss branch even though
		// the text could read gain-adjacent.
		{"loss and toning takes loss branch", func(u *domain.User) { u.FitnessGoals = "Weight loss and toning" }, 0, 1636},
		{"loss wins over gain", func(u *domain.User) { u.FitnessGoals = "fat loss then muscle gain" }, 0, 1636},
		{"adjustment applied on top", func(u *domain.User) { u.FitnessGoals = "weight loss" }, -150, 1486},
		{"positive adjustment", func(u *domain.User) {}, 200, 2336},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u := baseProfile()
			tc.mutFn(u)
			got := TargetDailyCalories(u, tc.adjust)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("TargetDailyCalories() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestTargetDailyCalories_PositiveForRealisticProfiles(t *testing.T) {
	for _, gender := range []string{"male", "female"} {
		for _, goal := range []string{"weight loss", "muscle gain", "maintain"} {
			u := baseProfile()
			u.Gender = gender
			u.FitnessGoals = goal
			if got := TargetDailyCalories(u, 0); got <= 0 {
				t.Errorf("target for %s/%s = %v, want > 0", gender, goal, got)
			}
		}
	}
}

func TestAdherenceFromDays(t *testing.T) {
	cases := []struct {
		name   string
		days   []int
		target float64
		want   float64
	}{
		// [100, 90, 90] -> mean 93.33
		{"spec example", []int{2000, 1800, 2200}, 2000, 93.33},
		{"perfect week", []int{2000, 2000}, 2000, 100},
		{"empty window scores zero", nil, 2000, 0},
		{"far-off day clamps at zero", []int{5000}, 2000, 0},
		{"clamped day pulls mean down", []int{2000, 5000}, 2000, 50},
		{"rounding to 2 decimals", []int{2000, 1999, 2001}, 2000, 99.97},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var days []domain.DaySummary
			for _, cal := range tc.days {
				days = append(days, domain.DaySummary{TotalCalories: cal})
			}
			got := adherenceFromDays(days, tc.target)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("adherenceFromDays(%v, %v) = %v, want %v", tc.days, tc.target, got, tc.want)
			}
			if got < 0 || got > 100 {
				t.Errorf("adherence %v outside [0, 100]", got)
			}
		})
	}
}

func newReportingFixture(metrics *fakeMetricStore) (*ReportingService, *fakeUserStore) {
	users := &fakeUserStore{users: map[int64]domain.User{1: *baseProfile()}}
	s := NewReportingService(users, metrics)
	s.now = fixedClock
	return s, users
}

func TestDietAdherenceScore_UserNotFound(t *testing.T) {
	s, _ := newReportingFixture(&fakeMetricStore{})
	_, err := s.DietAdherenceScore(99, 7)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestWeeklyReport(t *testing.T) {
	metrics := &fakeMetricStore{
		days: []domain.DaySummary{
			{Date: "2026-08-17", TotalCalories: 2136},
		},
		weights: []domain.WeightEntry{
			{UserID: 1, WeightKG: 80.0, LoggedAt: fixedNow.AddDate(0, 0, -6)},
			{UserID: 1, WeightKG: 78.0, LoggedAt: fixedNow},
		},
		workoutCount: 4,
	}
	s, _ := newReportingFixture(metrics)

	report, err := s.WeeklyReport(1)
	if err != nil {
		t.Fatalf("WeeklyReport() error: %v", err)
	}

	if report.UserName != "Test User" {
		t.Errorf("user_name = %q, want %q", report.UserName, "Test User")
	}
	if report.WeightChangeKG != -2.0 {
		t.Errorf("weight_change_kg = %v, want -2.0", report.WeightChangeKG)
	}
	if report.WorkoutsCompleted != 4 {
		t.Errorf("workouts_completed = %d, want 4", report.WorkoutsCompleted)
	}
	if report.DietAdherenceScore != 100 {
		t.Errorf("diet_adherence_score = %v, want 100", report.DietAdherenceScore)
	}
	if report.TargetDailyCalories != 2136 {
		t.Errorf("target_daily_calories = %d, want 2136", report.TargetDailyCalories)
	}
	if !report.PeriodStart.Equal(fixedNow.AddDate(0, 0, -7)) || !report.PeriodEnd.Equal(fixedNow) {
		t.Errorf("period = %v..%v, want %v..%v",
			report.PeriodStart, report.PeriodEnd, fixedNow.AddDate(0, 0, -7), fixedNow)
	}
}

func TestWeeklyReport_SingleWeightEntryMeansNoChange(t *testing.T) {
	metrics := &fakeMetricStore{
		weights: []domain.WeightEntry{
			{UserID: 1, WeightKG: 80.0, LoggedAt: fixedNow},
		},
	}
	s, _ := newReportingFixture(metrics)

	report, err := s.WeeklyReport(1)
	if err != nil {
		t.Fatalf("WeeklyReport() error: %v", err)
	}
	if report.WeightChangeKG != 0.0 {
		t.Errorf("weight_change_kg = %v, want 0.0 for fewer than 2 entries", report.WeightChangeKG)
	}
	if report.DietAdherenceScore != 0 {
		t.Errorf("diet_adherence_score = %v, want 0 for empty diet window", report.DietAdherenceScore)
	}
}

func TestWeeklyReport_UserNotFound(t *testing.T) {
	s, _ := newReportingFixture(&fakeMetricStore{})
	_, err := s.WeeklyReport(42)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestWeeklyDietSummary(t *testing.T) {
	metrics := &fakeMetricStore{
		days: []domain.DaySummary{
			{Date: "2026-08-17", TotalCalories: 1800},
			{Date: "2026-08-18", TotalCalories: 2200},
		},
	}
	s, _ := newReportingFixture(metrics)

	summary, err := s.WeeklyDietSummary(1)
	if err != nil {
		t.Fatalf("WeeklyDietSummary() error: %v", err)
	}
	if summary.TotalCalories != 4000 {
		t.Errorf("total_calories = %d, want 4000", summary.TotalCalories)
	}
	if len(summary.Days) != 2 {
		t.Errorf("len(days) = %d, want 2", len(summary.Days))
	}
}

func TestWeeklyDietSummary_EmptyWindow(t *testing.T) {
	s, _ := newReportingFixture(&fakeMetricStore{})
	summary, err := s.WeeklyDietSummary(1)
	if err != nil {
		t.Fatalf("WeeklyDietSummary() error: %v", err)
	}
	if summary.TotalCalories != 0 || len(summary.Days) != 0 {
		t.Errorf("expected empty summary, got %+v", summary)
	}
}
