package config

import "os"

// Config carries every runtime setting. It is loaded once in main and
// passed into constructors explicitly; engine code never reads the
// environment itself.
type Config struct {
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	JWTSecret      string
	GeminiAPIKey   string
	GeminiBaseURL  string
	GeminiModel    string
	Port           string
	AllowedOrigins string
	// PlannerSchedule is a cron expression for the weekly adaptive
	// planning job. Default mirrors the production cadence: Sunday 02:00.
	PlannerSchedule string
}

func Load() *Config {
	return &Config{
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "3306"),
		DBUser:          getEnv("DB_USER", "fittrack"),
		DBPassword:      getEnv("DB_PASSWORD", "fittrack_pass"),
		DBName:          getEnv("DB_NAME", "fittrack"),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		GeminiBaseURL:   getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.5-pro"),
		Port:            getEnv("PORT", "8080"),
		AllowedOrigins:  getEnv("ALLOWED_ORIGINS", "*"),
		PlannerSchedule: getEnv("PLANNER_SCHEDULE", "0 2 * * 0"),
	}
}

func (c *Config) DSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true&charset=utf8mb4"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
