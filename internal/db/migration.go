package db

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
)

type migration struct {
	version string
	sql     string
}

var migrations = []migration{
	{
		version: "000_create_tenants",
		sql: `
			CREATE TABLE IF NOT EXISTS tenants (
				id            BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
				company_name  VARCHAR(100) NOT NULL UNIQUE,
				api_key       VARCHAR(128) NOT NULL UNIQUE,
				password_hash VARCHAR(255) NOT NULL,
				created_at    DATETIME DEFAULT CURRENT_TIMESTAMP,
				INDEX idx_tenants_api_key (api_key)
			)`,
	},
	{
		version: "001_create_users",
		sql: `
			CREATE TABLE IF NOT EXISTS users (
				id                BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
				tenant_id         BIGINT UNSIGNED NOT NULL,
				username          VARCHAR(80) NOT NULL,
				name              VARCHAR(120) NOT NULL,
				contact_info      VARCHAR(120) NOT NULL,
				age               INT,
				gender            VARCHAR(20),
				weight_kg         DOUBLE,
				height_cm         DOUBLE,
				fitness_goals     TEXT,
				activity_level    VARCHAR(50),
				workouts_per_week VARCHAR(10),
				workout_duration  INT,
				disliked_foods    TEXT,
				allergies         TEXT,
				health_conditions TEXT,
				sleep_hours       VARCHAR(10),
				stress_level      VARCHAR(20),
				created_at        DATETIME DEFAULT CURRENT_TIMESTAMP,
				UNIQUE KEY uq_users_username_tenant (username, tenant_id),
				UNIQUE KEY uq_users_contact_tenant (contact_info, tenant_id),
				FOREIGN KEY (tenant_id) REFERENCES tenants(id) ON DELETE CASCADE
			)`,
	},
	{
		version: "002_create_diet_logs",
		sql: `
			CREATE TABLE IF NOT EXISTS diet_logs (
				id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
				tenant_id  BIGINT UNSIGNED NOT NULL,
				user_id    BIGINT UNSIGNED NOT NULL,
				meal_name  VARCHAR(100) NOT NULL,
				food_items TEXT,
				calories   INT NOT NULL,
				protein_g  DOUBLE,
				carbs_g    DOUBLE,
				fat_g      DOUBLE,
				logged_at  DATETIME NOT NULL,
				INDEX idx_diet_logs_user_date (user_id, logged_at),
				FOREIGN KEY (tenant_id) REFERENCES tenants(id) ON DELETE CASCADE,
				FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
			)`,
	},
	{
		version: "003_create_workout_logs",
		sql: `
			CREATE TABLE IF NOT EXISTS workout_logs (
				id        BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
				tenant_id BIGINT UNSIGNED NOT NULL,
				user_id   BIGINT UNSIGNED NOT NULL,
				name      VARCHAR(150) NOT NULL,
				logged_at DATETIME NOT NULL,
				INDEX idx_workout_logs_user_date (user_id, logged_at),
				FOREIGN KEY (tenant_id) REFERENCES tenants(id) ON DELETE CASCADE,
				FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
			);
			CREATE TABLE IF NOT EXISTS exercise_entries (
				id             BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
				tenant_id      BIGINT UNSIGNED NOT NULL,
				workout_log_id BIGINT UNSIGNED NOT NULL,
				name           VARCHAR(150) NOT NULL,
				sets           INT NOT NULL,
				reps           INT NOT NULL,
				weight         DOUBLE NOT NULL,
				FOREIGN KEY (tenant_id) REFERENCES tenants(id) ON DELETE CASCADE,
				FOREIGN KEY (workout_log_id) REFERENCES workout_logs(id) ON DELETE CASCADE
			)`,
	},
	{
		version: "004_create_weight_entries",
		sql: `
			CREATE TABLE IF NOT EXISTS weight_entries (
				id        BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
				tenant_id BIGINT UNSIGNED NOT NULL,
				user_id   BIGINT UNSIGNED NOT NULL,
				weight_kg DOUBLE NOT NULL,
				logged_at DATETIME NOT NULL,
				INDEX idx_weight_entries_user_date (user_id, logged_at),
				FOREIGN KEY (tenant_id) REFERENCES tenants(id) ON DELETE CASCADE,
				FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
			)`,
	},
	{
		version: "005_create_measurement_logs",
		sql: `
			CREATE TABLE IF NOT EXISTS measurement_logs (
				id        BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
				tenant_id BIGINT UNSIGNED NOT NULL,
				user_id   BIGINT UNSIGNED NOT NULL,
				waist_cm  DOUBLE,
				chest_cm  DOUBLE,
				arms_cm   DOUBLE,
				hips_cm   DOUBLE,
				logged_at DATETIME NOT NULL,
				INDEX idx_measurement_logs_user_date (user_id, logged_at),
				FOREIGN KEY (tenant_id) REFERENCES tenants(id) ON DELETE CASCADE,
				FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
			)`,
	},
	{
		version: "006_create_generated_plans",
		sql: `
			CREATE TABLE IF NOT EXISTS generated_plans (
				id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
				tenant_id  BIGINT UNSIGNED NOT NULL,
				user_id    BIGINT UNSIGNED NOT NULL,
				kind       VARCHAR(20) NOT NULL,
				plan_json  MEDIUMTEXT NOT NULL,
				created_at DATETIME NOT NULL,
				INDEX idx_generated_plans_user_kind (user_id, kind, created_at),
				FOREIGN KEY (tenant_id) REFERENCES tenants(id) ON DELETE CASCADE,
				FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
			)`,
	},
	{
		version: "007_create_achievements",
		sql: `
			CREATE TABLE IF NOT EXISTS achievements (
				id          BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
				tenant_id   BIGINT UNSIGNED NOT NULL,
				user_id     BIGINT UNSIGNED NOT NULL,
				name        VARCHAR(200) NOT NULL,
				description TEXT,
				unlocked_at DATETIME NOT NULL,
				UNIQUE KEY uq_achievements_user_name (user_id, name),
				FOREIGN KEY (tenant_id) REFERENCES tenants(id) ON DELETE CASCADE,
				FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
			)`,
	},
}

func RunMigrations(db *sql.DB) error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    VARCHAR(255) PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		applied, err := isMigrationApplied(db, m.version)
		if err != nil {
			return err
		}
		if applied {
			continue
		}

		if err := executeMigration(db, m); err != nil {
			return err
		}

		log.Printf("applied migration: %s", m.version)
	}

	return nil
}

func isMigrationApplied(db *sql.DB, version string) (bool, error) {
	var count int
	err := db.QueryRow(
		"SELECT COUNT(*) FROM schema_migrations WHERE version = ?",
		version,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check migration %s: %w", version, err)
	}
	return count > 0, nil
}

func executeMigration(db *sql.DB, m migration) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction for %s: %w", m.version, err)
	}

	for _, stmt := range strings.Split(m.sql, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := tx.Exec(stmt); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to execute migration %s: %w", m.version, err)
		}
	}

	if _, err := tx.Exec(
		"INSERT INTO schema_migrations (version) VALUES (?)",
		m.version,
	); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to record migration %s: %w", m.version, err)
	}

	return tx.Commit()
}
