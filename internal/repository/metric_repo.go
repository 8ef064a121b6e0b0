package repository

import (
	"database/sql"
	"fmt"

	"time"

	"github.com/fittrackhq/fittrack-backend/internal/domain"
)

// MetricRepository is the read/write surface over the append-only metric
// tables. The reporting and reward engines only use the windowed read
// methods; log creation happens from the handlers.
type MetricRepository struct {
	db *sql.DB
}

func NewMetricRepository(db *sql.DB) *MetricRepository {
	return &MetricRepository{db: db}
}

func (r *MetricRepository) CreateDietLog(l *domain.DietLog) (int64, error) {
	result, err := r.db.Exec(
		`INSERT INTO diet_logs (tenant_id, user_id, meal_name, food_items,
			calories, protein_g, carbs_g, fat_g, logged_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.TenantID, l.UserID, l.MealName, l.FoodItems, l.Calories,
		l.ProteinG, l.CarbsG, l.FatG, l.LoggedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create diet log: %w", err)
	}
	return result.LastInsertId()
}

// CreateWorkoutLog inserts the log and its exercise entries in one
// transaction so a partial workout never becomes visible.
func (r *MetricRepository) CreateWorkoutLog(l *domain.WorkoutLog) (int64, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin workout log transaction: %w", err)
	}

	result, err := tx.Exec(
		`INSERT INTO workout_logs (tenant_id, user_id, name, logged_at)
		 VALUES (?, ?, ?, ?)`,
		l.TenantID, l.UserID, l.Name, l.LoggedAt,
	)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("failed to create workout log: %w", err)
	}
	logID, err := result.LastInsertId()
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("failed to read workout log id: %w", err)
	}

	for _, ex := range l.Exercises {
		if _, err := tx.Exec(
			`INSERT INTO exercise_entries (tenant_id, workout_log_id, name, sets, reps, weight)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			l.TenantID, logID, ex.Name, ex.Sets, ex.Reps, ex.Weight,
		); err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("failed to create exercise entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit workout log: %w", err)
	}
	return logID, nil
}

func (r *MetricRepository) CreateWeightEntry(e *domain.WeightEntry) (int64, error) {
	result, err := r.db.Exec(
		`INSERT INTO weight_entries (tenant_id, user_id, weight_kg, logged_at)
		 VALUES (?, ?, ?, ?)`,
		e.TenantID, e.UserID, e.WeightKG, e.LoggedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create weight entry: %w", err)
	}
	return result.LastInsertId()
}

func (r *MetricRepository) CreateMeasurementLog(m *domain.MeasurementLog) (int64, error) {
	result, err := r.db.Exec(
		`INSERT INTO measurement_logs (tenant_id, user_id, waist_cm, chest_cm, arms_cm, hips_cm, logged_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.TenantID, m.UserID, m.WaistCM, m.ChestCM, m.ArmsCM, m.HipsCM, m.LoggedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create measurement log: %w", err)
	}
	return result.LastInsertId()
}

// DailyCalorieTotals groups a user's diet logs by calendar day from `since`
// onward and sums calories per day, ordered by day ascending.
func (r *MetricRepository) DailyCalorieTotals(userID int64, since time.Time) ([]domain.DaySummary, error) {
	rows, err := r.db.Query(
		`SELECT DATE(logged_at) AS day, COALESCE(SUM(calories), 0)
		 FROM diet_logs
		 WHERE user_id = ? AND logged_at >= ?
		 GROUP BY DATE(logged_at)
		 ORDER BY day ASC`,
		userID, since,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily calorie totals: %w", err)
	}
	defer rows.Close()

	var days []domain.DaySummary
	for rows.Next() {
		var d domain.DaySummary
		if err := rows.Scan(&d.Date, &d.TotalCalories); err != nil {
			return nil, fmt.Errorf("failed to scan daily calorie total: %w", err)
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

// WeightEntriesInWindow returns the user's weight entries from `since`
// onward in ascending timestamp order.
func (r *MetricRepository) WeightEntriesInWindow(userID int64, since time.Time) ([]domain.WeightEntry, error) {
	rows, err := r.db.Query(
		`SELECT id, tenant_id, user_id, weight_kg, logged_at
		 FROM weight_entries
		 WHERE user_id = ? AND logged_at >= ?
		 ORDER BY logged_at ASC, id ASC`,
		userID, since,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query weight entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.WeightEntry
	for rows.Next() {
		var e domain.WeightEntry
		if err := rows.Scan(&e.ID, &e.TenantID, &e.UserID, &e.WeightKG, &e.LoggedAt); err != nil {
			return nil, fmt.Errorf("failed to scan weight entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *MetricRepository) CountWorkoutsInWindow(userID int64, since time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(
		`SELECT COUNT(*) FROM workout_logs WHERE user_id = ? AND logged_at >= ?`,
		userID, since,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count workouts: %w", err)
	}
	return count, nil
}

// GetOldestWeightEntry returns the user's first recorded weight, or
// nil, nil when the user has no weight history.
func (r *MetricRepository) GetOldestWeightEntry(userID int64) (*domain.WeightEntry, error) {
	var e domain.WeightEntry
	err := r.db.QueryRow(
		`SELECT id, tenant_id, user_id, weight_kg, logged_at
		 FROM weight_entries
		 WHERE user_id = ?
		 ORDER BY logged_at ASC, id ASC
		 LIMIT 1`, userID,
	).Scan(&e.ID, &e.TenantID, &e.UserID, &e.WeightKG, &e.LoggedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get oldest weight entry: %w", err)
	}
	return &e, nil
}

func (r *MetricRepository) ListDietLogsByUser(userID int64) ([]domain.DietLog, error) {
	rows, err := r.db.Query(
		`SELECT id, tenant_id, user_id, meal_name, food_items, calories,
			protein_g, carbs_g, fat_g, logged_at
		 FROM diet_logs WHERE user_id = ?
		 ORDER BY logged_at DESC, id DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list diet logs: %w", err)
	}
	defer rows.Close()

	var logs []domain.DietLog
	for rows.Next() {
		var l domain.DietLog
		if err := rows.Scan(&l.ID, &l.TenantID, &l.UserID, &l.MealName,
			&l.FoodItems, &l.Calories, &l.ProteinG, &l.CarbsG, &l.FatG,
			&l.LoggedAt); err != nil {
			return nil, fmt.Errorf("failed to scan diet log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (r *MetricRepository) ListWorkoutLogsByUser(userID int64) ([]domain.WorkoutLog, error) {
	rows, err := r.db.Query(
		`SELECT id, tenant_id, user_id, name, logged_at
		 FROM workout_logs WHERE user_id = ?
		 ORDER BY logged_at DESC, id DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list workout logs: %w", err)
	}
	defer rows.Close()

	var logs []domain.WorkoutLog
	for rows.Next() {
		var l domain.WorkoutLog
		if err := rows.Scan(&l.ID, &l.TenantID, &l.UserID, &l.Name, &l.LoggedAt); err != nil {
			return nil, fmt.Errorf("failed to scan workout log: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range logs {
		exercises, err := r.listExercises(logs[i].ID)
		if err != nil {
			return nil, err
		}
		logs[i].Exercises = exercises
	}
	return logs, nil
}

func (r *MetricRepository) listExercises(workoutLogID int64) ([]domain.ExerciseEntry, error) {
	rows, err := r.db.Query(
		`SELECT id, tenant_id, workout_log_id, name, sets, reps, weight
		 FROM exercise_entries WHERE workout_log_id = ? ORDER BY id ASC`,
		workoutLogID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}
	defer rows.Close()

	var entries []domain.ExerciseEntry
	for rows.Next() {
		var e domain.ExerciseEntry
		if err := rows.Scan(&e.ID, &e.TenantID, &e.WorkoutLogID, &e.Name, &e.Sets, &e.Reps, &e.Weight); err != nil {
			return nil, fmt.Errorf("failed to scan exercise: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *MetricRepository) ListWeightEntriesByUser(userID int64) ([]domain.WeightEntry, error) {
	rows, err := r.db.Query(
		`SELECT id, tenant_id, user_id, weight_kg, logged_at
		 FROM weight_entries WHERE user_id = ?
		 ORDER BY logged_at ASC, id ASC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list weight entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.WeightEntry
	for rows.Next() {
		var e domain.WeightEntry
		if err := rows.Scan(&e.ID, &e.TenantID, &e.UserID, &e.WeightKG, &e.LoggedAt); err != nil {
			return nil, fmt.Errorf("failed to scan weight entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
