package repository

import (
	"database/sql"
	"fmt"

	"github.com/fittrackhq/fittrack-backend/internal/domain"
)

type TenantRepository struct {
	db *sql.DB
}

func NewTenantRepository(db *sql.DB) *TenantRepository {
	return &TenantRepository{db: db}
}

func (r *TenantRepository) Create(companyName, apiKey, passwordHash string) (int64, error) {
	result, err := r.db.Exec(
		`INSERT INTO tenants (company_name, api_key, password_hash) VALUES (?, ?, ?)`,
		companyName, apiKey, passwordHash,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create tenant: %w", err)
	}
	return result.LastInsertId()
}

func (r *TenantRepository) GetByAPIKey(apiKey string) (*domain.Tenant, error) {
	var t domain.Tenant
	err := r.db.QueryRow(
		`SELECT id, company_name, api_key, password_hash, created_at
		 FROM tenants WHERE api_key = ?`, apiKey,
	).Scan(&t.ID, &t.CompanyName, &t.APIKey, &t.PasswordHash, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant by api key: %w", err)
	}
	return &t, nil
}

func (r *TenantRepository) GetByCompanyName(companyName string) (*domain.Tenant, error) {
	var t domain.Tenant
	err := r.db.QueryRow(
		`SELECT id, company_name, api_key, password_hash, created_at
		 FROM tenants WHERE company_name = ?`, companyName,
	).Scan(&t.ID, &t.CompanyName, &t.APIKey, &t.PasswordHash, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant by company name: %w", err)
	}
	return &t, nil
}

func (r *TenantRepository) UpdateAPIKey(id int64, apiKey string) error {
	_, err := r.db.Exec(`UPDATE tenants SET api_key = ? WHERE id = ?`, apiKey, id)
	if err != nil {
		return fmt.Errorf("failed to update api key: %w", err)
	}
	return nil
}
