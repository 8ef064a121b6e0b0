package repository

import (
	"database/sql"
	"fmt"

	"github.com/fittrackhq/fittrack-backend/internal/domain"
)

type PlanRepository struct {
	db *sql.DB
}

func NewPlanRepository(db *sql.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

func (r *PlanRepository) Create(p *domain.GeneratedPlan) (int64, error) {
	result, err := r.db.Exec(
		`INSERT INTO generated_plans (tenant_id, user_id, kind, plan_json, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		p.TenantID, p.UserID, p.Kind, p.Plan, p.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create plan: %w", err)
	}
	return result.LastInsertId()
}

// GetLatestByUserAndKind returns nil, nil when the user has no plan of the
// given kind yet.
func (r *PlanRepository) GetLatestByUserAndKind(userID int64, kind domain.PlanKind) (*domain.GeneratedPlan, error) {
	var p domain.GeneratedPlan
	err := r.db.QueryRow(
		`SELECT id, tenant_id, user_id, kind, plan_json, created_at
		 FROM generated_plans
		 WHERE user_id = ? AND kind = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT 1`, userID, kind,
	).Scan(&p.ID, &p.TenantID, &p.UserID, &p.Kind, &p.Plan, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest plan: %w", err)
	}
	return &p, nil
}
