package repository

import (
	"database/sql"
	"fmt"

	"github.com/fittrackhq/fittrack-backend/internal/domain"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, tenant_id, username, name, contact_info, age, gender,
	weight_kg, height_cm, fitness_goals, activity_level, workouts_per_week,
	workout_duration, disliked_foods, allergies, health_conditions,
	sleep_hours, stress_level, created_at`

func scanUser(row interface{ Scan(...interface{}) error }) (*domain.User, error) {
	var u domain.User
	var age sql.NullInt64
	var gender, goals, activity sql.NullString
	var weight, height sql.NullFloat64
	err := row.Scan(
		&u.ID, &u.TenantID, &u.Username, &u.Name, &u.ContactInfo,
		&age, &gender, &weight, &height, &goals, &activity,
		&u.WorkoutsPerWeek, &u.WorkoutDuration, &u.DislikedFoods,
		&u.Allergies, &u.HealthConditions, &u.SleepHours, &u.StressLevel,
		&u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.Age = int(age.Int64)
	u.Gender = gender.String
	u.WeightKG = weight.Float64
	u.HeightCM = height.Float64
	u.FitnessGoals = goals.String
	u.ActivityLevel = activity.String
	return &u, nil
}

func (r *UserRepository) Create(u *domain.User) (int64, error) {
	result, err := r.db.Exec(
		`INSERT INTO users (tenant_id, username, name, contact_info, age,
			gender, weight_kg, height_cm, fitness_goals, activity_level,
			workouts_per_week, workout_duration, disliked_foods, allergies,
			health_conditions, sleep_hours, stress_level)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.TenantID, u.Username, u.Name, u.ContactInfo, u.Age, u.Gender,
		u.WeightKG, u.HeightCM, u.FitnessGoals, u.ActivityLevel,
		u.WorkoutsPerWeek, u.WorkoutDuration, u.DislikedFoods, u.Allergies,
		u.HealthConditions, u.SleepHours, u.StressLevel,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create user: %w", err)
	}
	return result.LastInsertId()
}

// GetByID returns nil, nil when no user exists with the given id.
func (r *UserRepository) GetByID(id int64) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRow(
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// GetByTenantAndID scopes the lookup to one tenant so a client can never
// address another client's user.
func (r *UserRepository) GetByTenantAndID(tenantID, id int64) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRow(
		`SELECT `+userColumns+` FROM users WHERE id = ? AND tenant_id = ?`,
		id, tenantID,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) GetByUsername(tenantID int64, username string) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRow(
		`SELECT `+userColumns+` FROM users WHERE username = ? AND tenant_id = ?`,
		username, tenantID,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return u, nil
}

func (r *UserRepository) GetAll() ([]domain.User, error) {
	rows, err := r.db.Query(`SELECT ` + userColumns + ` FROM users ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// UpdateWeight keeps the profile's current weight in sync when a new
// weight entry is logged.
func (r *UserRepository) UpdateWeight(id int64, weightKG float64) error {
	_, err := r.db.Exec(`UPDATE users SET weight_kg = ? WHERE id = ?`, weightKG, id)
	if err != nil {
		return fmt.Errorf("failed to update user weight: %w", err)
	}
	return nil
}
