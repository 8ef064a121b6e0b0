package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/fittrackhq/fittrack-backend/internal/domain"
	"github.com/fittrackhq/fittrack-backend/internal/middleware"
	"github.com/fittrackhq/fittrack-backend/internal/repository"
)

// AuthHandler covers the API-key-protected user lifecycle: a tenant
// registers its end-users and requests tokens on their behalf.
type AuthHandler struct {
	jwtSecret string
	users     *repository.UserRepository
}

func NewAuthHandler(jwtSecret string, users *repository.UserRepository) *AuthHandler {
	return &AuthHandler{jwtSecret: jwtSecret, users: users}
}

type registerUserRequest struct {
	Name             string  `json:"name"`
	ContactInfo      string  `json:"contact_info"`
	Age              int     `json:"age"`
	Gender           string  `json:"gender"`
	WeightKG         float64 `json:"weight_kg"`
	HeightCM         float64 `json:"height_cm"`
	FitnessGoals     string  `json:"fitness_goals"`
	ActivityLevel    string  `json:"activity_level"`
	WorkoutsPerWeek  *string `json:"workouts_per_week"`
	WorkoutDuration  *int    `json:"workout_duration"`
	DislikedFoods    *string `json:"disliked_foods"`
	Allergies        *string `json:"allergies"`
	HealthConditions *string `json:"health_conditions"`
	SleepHours       *string `json:"sleep_hours"`
	StressLevel      *string `json:"stress_level"`
}

func (h *AuthHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	tenant := middleware.TenantFromContext(r.Context())

	var req registerUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" || strings.TrimSpace(req.ContactInfo) == "" {
		writeError(w, http.StatusBadRequest, "name and contact_info are required")
		return
	}
	if req.Age < 0 || req.WeightKG < 0 || req.HeightCM < 0 {
		writeError(w, http.StatusBadRequest, "age, weight_kg and height_cm must be non-negative")
		return
	}

	username := strings.ReplaceAll(strings.ToLower(name), " ", "_")

	user := &domain.User{
		TenantID:         tenant.ID,
		Username:         username,
		Name:             name,
		ContactInfo:      strings.TrimSpace(req.ContactInfo),
		Age:              req.Age,
		Gender:           req.Gender,
		WeightKG:         req.WeightKG,
		HeightCM:         req.HeightCM,
		FitnessGoals:     req.FitnessGoals,
		ActivityLevel:    req.ActivityLevel,
		WorkoutsPerWeek:  req.WorkoutsPerWeek,
		WorkoutDuration:  req.WorkoutDuration,
		DislikedFoods:    req.DislikedFoods,
		Allergies:        req.Allergies,
		HealthConditions: req.HealthConditions,
		SleepHours:       req.SleepHours,
		StressLevel:      req.StressLevel,
	}

	id, err := h.users.Create(user)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			writeError(w, http.StatusConflict, "user already exists for this client")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "user created successfully",
		"user_id": id,
	})
}

type tokenRequest struct {
	UserID int64 `json:"user_id"`
}

// IssueToken issues an end-user JWT to the calling tenant. The user must
// belong to that tenant; other tenants' user ids are indistinguishable
// from nonexistent ones.
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	tenant := middleware.TenantFromContext(r.Context())

	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID <= 0 {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	user, err := h.users.GetByTenantAndID(tenant.ID, req.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "user not found for this client")
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.TenantID, h.jwtSecret)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}
