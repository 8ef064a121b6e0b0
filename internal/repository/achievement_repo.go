package repository

import (
	"database/sql"
	"fmt"

	"github.com/fittrackhq/fittrack-backend/internal/domain"
)

type AchievementRepository struct {
	db *sql.DB
}

func NewAchievementRepository(db *sql.DB) *AchievementRepository {
	return &AchievementRepository{db: db}
}

func (r *AchievementRepository) ExistsByUserAndName(userID int64, name string) (bool, error) {
	var count int
	err := r.db.QueryRow(
		`SELECT COUNT(*) FROM achievements WHERE user_id = ? AND name = ?`,
		userID, name,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check achievement: %w", err)
	}
	return count > 0, nil
}

// CreateBatch inserts all achievements of one grant invocation in a single
// transaction: either every row commits or none do.
func (r *AchievementRepository) CreateBatch(achievements []domain.Achievement) error {
	if len(achievements) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin achievement transaction: %w", err)
	}

	for _, a := range achievements {
		if _, err := tx.Exec(
			`INSERT INTO achievements (tenant_id, user_id, name, description, unlocked_at)
			 VALUES (?, ?, ?, ?, ?)`,
			a.TenantID, a.UserID, a.Name, a.Description, a.UnlockedAt,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to create achievement %q: %w", a.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit achievements: %w", err)
	}
	return nil
}

func (r *AchievementRepository) ListByUser(userID int64) ([]domain.Achievement, error) {
	rows, err := r.db.Query(
		`SELECT id, tenant_id, user_id, name, description, unlocked_at
		 FROM achievements WHERE user_id = ?
		 ORDER BY unlocked_at DESC, id DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}
	defer rows.Close()

	var achievements []domain.Achievement
	for rows.Next() {
		var a domain.Achievement
		if err := rows.Scan(&a.ID, &a.TenantID, &a.UserID, &a.Name, &a.Description, &a.UnlockedAt); err != nil {
			return nil, fmt.Errorf("failed to scan achievement: %w", err)
		}
		achievements = append(achievements, a)
	}
	return achievements, rows.Err()
}
