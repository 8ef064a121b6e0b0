package handler

import (
	"net/http"

	"github.com/fittrackhq/fittrack-backend/internal/domain"
	"github.com/fittrackhq/fittrack-backend/internal/middleware"
	"github.com/fittrackhq/fittrack-backend/internal/repository"
	"github.com/fittrackhq/fittrack-backend/internal/service"
)

type RewardHandler struct {
	rewards      *service.RewardService
	achievements *repository.AchievementRepository
}

func NewRewardHandler(rewards *service.RewardService, achievements *repository.AchievementRepository) *RewardHandler {
	return &RewardHandler{rewards: rewards, achievements: achievements}
}

// Status evaluates the reward rules for the authenticated user and
// returns both the just-unlocked names and the full achievement history.
func (h *RewardHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	newlyUnlocked, err := h.rewards.CheckAndGrantRewards(userID)
	if err != nil {
		writeServiceError(w, err, "failed to check rewards")
		return
	}
	if newlyUnlocked == nil {
		newlyUnlocked = []string{}
	}

	all, err := h.achievements.ListByUser(userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list achievements")
		return
	}
	if all == nil {
		all = []domain.Achievement{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"newly_unlocked_rewards": newlyUnlocked,
		"all_achievements":       all,
	})
}
