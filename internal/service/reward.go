package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fittrackhq/fittrack-backend/internal/domain"
)

const (
	cheatMealName       = "Cheat Meal Unlocked"
	weightMilestone     = "5% Weight Loss Milestone"
	cheatMealScore      = 90.0
	milestonePercent    = 5.0
	adherenceWindowDays = 7
)

// RewardService evaluates the fixed achievement rules and grants newly
// earned ones. Rules run in a fixed order; a rule whose achievement
// already exists for the user is skipped silently. All grants of one call
// commit in a single transaction.
type RewardService struct {
	users        UserStore
	metrics      MetricStore
	achievements AchievementStore
	reporting    *ReportingService
	now          func() time.Time
}

func NewRewardService(users UserStore, metrics MetricStore, achievements AchievementStore, reporting *ReportingService) *RewardService {
	return &RewardService{
		users:        users,
		metrics:      metrics,
		achievements: achievements,
		reporting:    reporting,
		now:          time.Now,
	}
}

// CheckAndGrantRewards returns the names of achievements unlocked by this
// call. Calling it again against unchanged state returns an empty list:
// no duplicate (user, name) row is ever created.
func (s *RewardService) CheckAndGrantRewards(userID int64) ([]string, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %d: %w", userID, err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", userID, domain.ErrNotFound)
	}

	var pending []domain.Achievement

	cheat, err := s.checkCheatMeal(user)
	if err != nil {
		return nil, err
	}
	if cheat != nil {
		pending = append(pending, *cheat)
	}

	milestone, err := s.checkWeightLossMilestone(user)
	if err != nil {
		return nil, err
	}
	if milestone != nil {
		pending = append(pending, *milestone)
	}

	if len(pending) > 0 {
		if err := s.achievements.CreateBatch(pending); err != nil {
			return nil, fmt.Errorf("failed to grant rewards for user %d: %v: %w",
				userID, err, domain.ErrPersistence)
		}
	}

	names := make([]string, 0, len(pending))
	for _, a := range pending {
		names = append(names, a.Name)
	}
	return names, nil
}

// checkCheatMeal returns the achievement to grant when the trailing-7-day
// adherence score reaches 90, or nil when already granted or not earned.
func (s *RewardService) checkCheatMeal(user *domain.User) (*domain.Achievement, error) {
	exists, err := s.achievements.ExistsByUserAndName(user.ID, cheatMealName)
	if err != nil {
		return nil, fmt.Errorf("failed to check %q for user %d: %w", cheatMealName, user.ID, err)
	}
	if exists {
		return nil, nil
	}

	score, err := s.reporting.adherenceForUser(user, adherenceWindowDays)
	if err != nil {
		return nil, err
	}
	if score < cheatMealScore {
		return nil, nil
	}

	return &domain.Achievement{
		TenantID: user.TenantID,
		UserID:   user.ID,
		Name:     cheatMealName,
		Description: fmt.Sprintf(
			"Unlocked for maintaining a %s%% diet adherence for 7 days.",
			strconv.FormatFloat(score, 'f', -1, 64)),
		UnlockedAt: s.now().UTC(),
	}, nil
}

// checkWeightLossMilestone compares the oldest recorded weight against the
// profile's current weight. Users with no weight history, or whose first
// entry is exactly 0, are skipped without error.
func (s *RewardService) checkWeightLossMilestone(user *domain.User) (*domain.Achievement, error) {
	exists, err := s.achievements.ExistsByUserAndName(user.ID, weightMilestone)
	if err != nil {
		return nil, fmt.Errorf("failed to check %q for user %d: %w", weightMilestone, user.ID, err)
	}
	if exists {
		return nil, nil
	}

	oldest, err := s.metrics.GetOldestWeightEntry(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load weight history for user %d: %w", user.ID, err)
	}
	if oldest == nil || oldest.WeightKG == 0 {
		return nil, nil
	}

	lossPercent := (oldest.WeightKG - user.WeightKG) / oldest.WeightKG * 100
	if lossPercent < milestonePercent {
		return nil, nil
	}

	return &domain.Achievement{
		TenantID: user.TenantID,
		UserID:   user.ID,
		Name:     weightMilestone,
		Description: fmt.Sprintf(
			"Congratulations on losing %.1f%% of your starting body weight!",
			lossPercent),
		UnlockedAt: s.now().UTC(),
	}, nil
}
