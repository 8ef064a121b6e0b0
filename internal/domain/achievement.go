package domain

import "time"

// Achievement is created exactly once per (user, name) pair and never
// updated or deleted afterwards.
type Achievement struct {
	ID          int64     `json:"id"`
	TenantID    int64     `json:"-"`
	UserID      int64     `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	UnlockedAt  time.Time `json:"unlocked_at"`
}
