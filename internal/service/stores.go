package service

import (
	"context"
	"time"

	"github.com/fittrackhq/fittrack-backend/internal/domain"
)

// The engines depend on these narrow store interfaces rather than on the
// concrete repositories, so any storage technology (and the in-memory
// fakes in tests) can sit behind them.

type UserStore interface {
	GetByID(id int64) (*domain.User, error)
	GetAll() ([]domain.User, error)
}

// MetricStore is the read surface of the metrics store: windowed queries
// per log kind, each ordered by timestamp.
type MetricStore interface {
	DailyCalorieTotals(userID int64, since time.Time) ([]domain.DaySummary, error)
	WeightEntriesInWindow(userID int64, since time.Time) ([]domain.WeightEntry, error)
	CountWorkoutsInWindow(userID int64, since time.Time) (int, error)
	GetOldestWeightEntry(userID int64) (*domain.WeightEntry, error)
}

type AchievementStore interface {
	ExistsByUserAndName(userID int64, name string) (bool, error)
	CreateBatch(achievements []domain.Achievement) error
}

type PlanStore interface {
	Create(p *domain.GeneratedPlan) (int64, error)
}

// TextGenerator is the generative-AI collaborator: one prompt in, one text
// completion out.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
