package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/fittrackhq/fittrack-backend/internal/domain"
)

func newRewardFixture(metrics *fakeMetricStore) (*RewardService, *fakeAchievementStore) {
	users := &fakeUserStore{users: map[int64]domain.User{1: *baseProfile()}}
	reporting := NewReportingService(users, metrics)
	reporting.now = fixedClock
	achievements := newFakeAchievementStore()
	s := NewRewardService(users, metrics, achievements, reporting)
	s.now = fixedClock
	return s, achievements
}

// onTargetWeek yields a 100% adherence score: every day exactly matches
// the 2136 kcal target of baseProfile.
func onTargetWeek() []domain.DaySummary {
	return []domain.DaySummary{
		{Date: "2026-08-17", TotalCalories: 2136},
		{Date: "2026-08-18", TotalCalories: 2136},
	}
}

func TestCheckAndGrantRewards_CheatMeal(t *testing.T) {
	s, achievements := newRewardFixture(&fakeMetricStore{days: onTargetWeek()})

	names, err := s.CheckAndGrantRewards(1)
	if err != nil {
		t.Fatalf("CheckAndGrantRewards() error: %v", err)
	}
	if len(names) != 1 || names[0] != "Cheat Meal Unlocked" {
		t.Fatalf("names = %v, want [Cheat Meal Unlocked]", names)
	}
	if got := achievements.created[0].Description; !strings.Contains(got, "100%") {
		t.Errorf("description %q does not embed the score", got)
	}
}

func TestCheckAndGrantRewards_CheatMealBelowThreshold(t *testing.T) {
	// One day at 2136, one far off: scores [100, 0] -> 50, below 90.
	s, achievements := newRewardFixture(&fakeMetricStore{
		days: []domain.DaySummary{
			{Date: "2026-08-17", TotalCalories: 2136},
			{Date: "2026-08-18", TotalCalories: 6000},
		},
	})

	names, err := s.CheckAndGrantRewards(1)
	if err != nil {
		t.Fatalf("CheckAndGrantRewards() error: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("names = %v, want none", names)
	}
	if len(achievements.created) != 0 {
		t.Errorf("created = %v, want none", achievements.created)
	}
}

func TestCheckAndGrantRewards_WeightLossMilestone(t *testing.T) {
	// initial 100kg, current 94kg (baseProfile mutated below): 6.0% loss.
	metrics := &fakeMetricStore{
		oldestWeight: &domain.WeightEntry{UserID: 1, WeightKG: 100},
	}
	users := &fakeUserStore{users: map[int64]domain.User{}}
	profile := *baseProfile()
	profile.WeightKG = 94
	users.users[1] = profile

	reporting := NewReportingService(users, metrics)
	reporting.now = fixedClock
	achievements := newFakeAchievementStore()
	s := NewRewardService(users, metrics, achievements, reporting)
	s.now = fixedClock

	names, err := s.CheckAndGrantRewards(1)
	if err != nil {
		t.Fatalf("CheckAndGrantRewards() error: %v", err)
	}
	if len(names) != 1 || names[0] != "5% Weight Loss Milestone" {
		t.Fatalf("names = %v, want [5%% Weight Loss Milestone]", names)
	}
	if got := achievements.created[0].Description; !strings.Contains(got, "6.0%") {
		t.Errorf("description %q does not contain 6.0%%", got)
	}
}

func TestCheckAndGrantRewards_MilestoneSkippedWithoutHistory(t *testing.T) {
	s, achievements := newRewardFixture(&fakeMetricStore{oldestWeight: nil})

	names, err := s.CheckAndGrantRewards(1)
	if err != nil {
		t.Fatalf("CheckAndGrantRewards() error: %v", err)
	}
	if len(names) != 0 || len(achievements.created) != 0 {
		t.Errorf("expected no grants without weight history, got %v", names)
	}
}

func TestCheckAndGrantRewards_MilestoneSkippedForZeroInitialWeight(t *testing.T) {
	s, achievements := newRewardFixture(&fakeMetricStore{
		oldestWeight: &domain.WeightEntry{UserID: 1, WeightKG: 0},
	})

	names, err := s.CheckAndGrantRewards(1)
	if err != nil {
		t.Fatalf("CheckAndGrantRewards() error: %v", err)
	}
	if len(names) != 0 || len(achievements.created) != 0 {
		t.Errorf("expected no grants for zero initial weight, got %v", names)
	}
}

func TestCheckAndGrantRewards_Idempotent(t *testing.T) {
	metrics := &fakeMetricStore{
		days:         onTargetWeek(),
		oldestWeight: &domain.WeightEntry{UserID: 1, WeightKG: 100},
	}
	users := &fakeUserStore{users: map[int64]domain.User{}}
	profile := *baseProfile()
	profile.WeightKG = 94
	users.users[1] = profile

	reporting := NewReportingService(users, metrics)
	reporting.now = fixedClock
	achievements := newFakeAchievementStore()
	s := NewRewardService(users, metrics, achievements, reporting)
	s.now = fixedClock

	first, err := s.CheckAndGrantRewards(1)
	if err != nil {
		t.Fatalf("first call error: %v", err)
	}
	// Fixed rule order: adherence rule before the milestone rule.
	if len(first) != 2 || first[0] != "Cheat Meal Unlocked" || first[1] != "5% Weight Loss Milestone" {
		t.Fatalf("first call names = %v", first)
	}

	second, err := s.CheckAndGrantRewards(1)
	if err != nil {
		t.Fatalf("second call error: %v", err)
	}
	if len(second) != 0 {
		t.Errorf("second call names = %v, want empty", second)
	}
	if len(achievements.created) != 2 {
		t.Errorf("created %d achievements, want exactly 2", len(achievements.created))
	}
}

func TestCheckAndGrantRewards_CommitFailureRollsBackAll(t *testing.T) {
	s, achievements := newRewardFixture(&fakeMetricStore{days: onTargetWeek()})
	achievements.createErr = errors.New("deadlock")

	_, err := s.CheckAndGrantRewards(1)
	if !errors.Is(err, domain.ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
	if len(achievements.created) != 0 {
		t.Errorf("no achievement may persist after a failed batch, got %v", achievements.created)
	}

	// The failed batch must not have marked anything granted: a retry
	// succeeds.
	achievements.createErr = nil
	names, err := s.CheckAndGrantRewards(1)
	if err != nil {
		t.Fatalf("retry error: %v", err)
	}
	if len(names) != 1 {
		t.Errorf("retry names = %v, want one grant", names)
	}
}

func TestCheckAndGrantRewards_UserNotFound(t *testing.T) {
	s, _ := newRewardFixture(&fakeMetricStore{})
	_, err := s.CheckAndGrantRewards(404)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
