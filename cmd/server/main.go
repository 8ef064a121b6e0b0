package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/fittrackhq/fittrack-backend/internal/config"
	"github.com/fittrackhq/fittrack-backend/internal/db"
	"github.com/fittrackhq/fittrack-backend/internal/handler"
	"github.com/fittrackhq/fittrack-backend/internal/middleware"
	"github.com/fittrackhq/fittrack-backend/internal/repository"
	"github.com/fittrackhq/fittrack-backend/internal/scheduler"
	"github.com/fittrackhq/fittrack-backend/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}
	cfg := config.Load()

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET environment variable must be set")
	}

	database, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations(database); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	tenantRepo := repository.NewTenantRepository(database)
	userRepo := repository.NewUserRepository(database)
	metricRepo := repository.NewMetricRepository(database)
	planRepo := repository.NewPlanRepository(database)
	achievementRepo := repository.NewAchievementRepository(database)

	gemini := service.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiBaseURL, cfg.GeminiModel)
	reporting := service.NewReportingService(userRepo, metricRepo)
	rewards := service.NewRewardService(userRepo, metricRepo, achievementRepo, reporting)
	dietPlanner := service.NewDietPlannerService(gemini, planRepo)
	workoutPlanner := service.NewWorkoutPlannerService(gemini, planRepo)
	adaptive := service.NewAdaptivePlannerService(userRepo, reporting, gemini, dietPlanner)

	tenantHandler := handler.NewTenantHandler(tenantRepo)
	authHandler := handler.NewAuthHandler(cfg.JWTSecret, userRepo)
	userHandler := handler.NewUserHandler(userRepo)
	dietHandler := handler.NewDietHandler(userRepo, metricRepo, planRepo, reporting, dietPlanner)
	workoutHandler := handler.NewWorkoutHandler(userRepo, metricRepo, planRepo, workoutPlanner)
	progressHandler := handler.NewProgressHandler(userRepo, metricRepo, reporting)
	rewardHandler := handler.NewRewardHandler(rewards, achievementRepo)

	// Rate limiter on tenant onboarding
	registerRL := middleware.NewRateLimiter(5, 15*time.Minute)

	r := mux.NewRouter()

	// Global middleware: CORS → Security Headers → MaxBytesReader
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
			next.ServeHTTP(w, r)
		})
	})

	r.HandleFunc("/api/v1/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet, http.MethodOptions)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Tenant onboarding: the only surface without an API key.
	api.Handle("/tenants/register", registerRL.Middleware(http.HandlerFunc(tenantHandler.Register))).Methods(http.MethodPost, http.MethodOptions)
	api.Handle("/tenants/rotate-key", registerRL.Middleware(http.HandlerFunc(tenantHandler.RotateKey))).Methods(http.MethodPost, http.MethodOptions)

	// B2B client routes: X-API-Key resolves the tenant.
	client := api.NewRoute().Subrouter()
	client.Use(middleware.APIKeyMiddleware(tenantRepo))

	client.HandleFunc("/auth/register", authHandler.RegisterUser).Methods(http.MethodPost, http.MethodOptions)
	client.HandleFunc("/auth/token", authHandler.IssueToken).Methods(http.MethodPost, http.MethodOptions)
	client.HandleFunc("/diet/generate-plan", dietHandler.GeneratePlan).Methods(http.MethodPost, http.MethodOptions)
	client.HandleFunc("/workout/generate-plan", workoutHandler.GeneratePlan).Methods(http.MethodPost, http.MethodOptions)

	// End-user routes: Bearer token resolves the user.
	user := api.NewRoute().Subrouter()
	user.Use(middleware.AuthMiddleware(cfg.JWTSecret))

	user.HandleFunc("/users/profile/me", userHandler.Me).Methods(http.MethodGet, http.MethodOptions)
	user.HandleFunc("/diet/log", dietHandler.LogMeal).Methods(http.MethodPost, http.MethodOptions)
	user.HandleFunc("/diet/logs/me", dietHandler.MyLogs).Methods(http.MethodGet, http.MethodOptions)
	user.HandleFunc("/diet/weekly-summary/me", dietHandler.WeeklySummary).Methods(http.MethodGet, http.MethodOptions)
	user.HandleFunc("/diet/plan/latest/me", dietHandler.LatestPlan).Methods(http.MethodGet, http.MethodOptions)
	user.HandleFunc("/workout/log", workoutHandler.LogWorkout).Methods(http.MethodPost, http.MethodOptions)
	user.HandleFunc("/workout/logs/me", workoutHandler.MyLogs).Methods(http.MethodGet, http.MethodOptions)
	user.HandleFunc("/workout/plan/latest/me", workoutHandler.LatestPlan).Methods(http.MethodGet, http.MethodOptions)
	user.HandleFunc("/progress/weight/log", progressHandler.LogWeight).Methods(http.MethodPost, http.MethodOptions)
	user.HandleFunc("/progress/weight/me", progressHandler.MyWeightHistory).Methods(http.MethodGet, http.MethodOptions)
	user.HandleFunc("/progress/measurements/log", progressHandler.LogMeasurements).Methods(http.MethodPost, http.MethodOptions)
	user.HandleFunc("/progress/weekly-report/me", progressHandler.WeeklyReport).Methods(http.MethodGet, http.MethodOptions)
	user.HandleFunc("/reward/status/me", rewardHandler.Status).Methods(http.MethodGet, http.MethodOptions)

	weekly, err := scheduler.New(cfg.PlannerSchedule, func() {
		adaptive.RunForAllUsers(context.Background())
	})
	if err != nil {
		log.Fatalf("scheduler setup failed: %v", err)
	}
	weekly.Start()
	defer weekly.Stop()

	addr := ":" + cfg.Port
	log.Printf("server starting on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
