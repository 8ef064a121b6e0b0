package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/fittrackhq/fittrack-backend/internal/domain"
	"github.com/fittrackhq/fittrack-backend/internal/middleware"
	"github.com/fittrackhq/fittrack-backend/internal/repository"
	"github.com/fittrackhq/fittrack-backend/internal/service"
)

type WorkoutHandler struct {
	users   *repository.UserRepository
	metrics *repository.MetricRepository
	plans   *repository.PlanRepository
	planner *service.WorkoutPlannerService
}

func NewWorkoutHandler(
	users *repository.UserRepository,
	metrics *repository.MetricRepository,
	plans *repository.PlanRepository,
	planner *service.WorkoutPlannerService,
) *WorkoutHandler {
	return &WorkoutHandler{users: users, metrics: metrics, plans: plans, planner: planner}
}

type exerciseRequest struct {
	Name   string  `json:"name"`
	Sets   int     `json:"sets"`
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"`
}

type workoutLogRequest struct {
	Name      string            `json:"name"`
	Exercises []exerciseRequest `json:"exercises"`
}

func (h *WorkoutHandler) LogWorkout(w http.ResponseWriter, r *http.Request) {
	var req workoutLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if len(req.Exercises) == 0 {
		writeError(w, http.StatusBadRequest, "at least one exercise is required")
		return
	}
	for _, ex := range req.Exercises {
		if strings.TrimSpace(ex.Name) == "" || ex.Sets <= 0 || ex.Reps <= 0 || ex.Weight < 0 {
			writeError(w, http.StatusBadRequest, "invalid exercise entry")
			return
		}
	}

	tenantID := middleware.UserTenantIDFromContext(r.Context())
	log := &domain.WorkoutLog{
		TenantID: tenantID,
		UserID:   middleware.UserIDFromContext(r.Context()),
		Name:     strings.TrimSpace(req.Name),
		LoggedAt: time.Now().UTC(),
	}
	for _, ex := range req.Exercises {
		log.Exercises = append(log.Exercises, domain.ExerciseEntry{
			TenantID: tenantID,
			Name:     strings.TrimSpace(ex.Name),
			Sets:     ex.Sets,
			Reps:     ex.Reps,
			Weight:   ex.Weight,
		})
	}

	id, err := h.metrics.CreateWorkoutLog(log)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to log workout")
		return
	}
	log.ID = id

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "workout logged successfully",
		"log":     log,
	})
}

func (h *WorkoutHandler) MyLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.metrics.ListWorkoutLogsByUser(middleware.UserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list workout logs")
		return
	}
	if logs == nil {
		logs = []domain.WorkoutLog{}
	}
	writeJSON(w, http.StatusOK, logs)
}

type generateWorkoutPlanRequest struct {
	UserID int64 `json:"user_id"`
	service.WorkoutPlanOptions
}

func (h *WorkoutHandler) GeneratePlan(w http.ResponseWriter, r *http.Request) {
	tenant := middleware.TenantFromContext(r.Context())

	var req generateWorkoutPlanRequest
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
		writeError(w, http.StatusInternalServerError, "failed to load user")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "user not found or does not belong to this client")
		return
	}

	plan, err := h.planner.GeneratePlan(r.Context(), user, req.WorkoutPlanOptions)
	if err != nil {
		writeServiceError(w, err, "failed to generate workout plan")
		return
	}

	writeJSON(w, http.StatusOK, plan)
}

func (h *WorkoutHandler) LatestPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := h.plans.GetLatestByUserAndKind(
		middleware.UserIDFromContext(r.Context()), domain.PlanKindWorkout)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load workout plan")
		return
	}
	if plan == nil {
		writeError(w, http.StatusNotFound, "no workout plan found for this user")
		return
	}
	writeJSON(w, http.StatusOK, plan)
}
