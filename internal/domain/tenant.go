package domain

import "time"

// Tenant is a B2B client company. Every row in the metric tables is
// partitioned by tenant id, and the tenant's API key authenticates all
// client-level requests.
type Tenant struct {
	ID           int64     `json:"id"`
	CompanyName  string    `json:"company_name"`
	APIKey       string    `json:"api_key,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
