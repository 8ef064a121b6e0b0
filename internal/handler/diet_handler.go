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

type DietHandler struct {
	users     *repository.UserRepository
	metrics   *repository.MetricRepository
	plans     *repository.PlanRepository
	reporting *service.ReportingService
	planner   *service.DietPlannerService
}

func NewDietHandler(
	users *repository.UserRepository,
	metrics *repository.MetricRepository,
	plans *repository.PlanRepository,
	reporting *service.ReportingService,
	planner *service.DietPlannerService,
) *DietHandler {
	return &DietHandler{
		users:     users,
		metrics:   metrics,
		plans:     plans,
		reporting: reporting,
		planner:   planner,
	}
}

type dietLogRequest struct {
	MealName  string   `json:"meal_name"`
	FoodItems *string  `json:"food_items"`
	Calories  int      `json:"calories"`
	ProteinG  *float64 `json:"protein_g"`
	CarbsG    *float64 `json:"carbs_g"`
	FatG      *float64 `json:"fat_g"`
}

func (h *DietHandler) LogMeal(w http.ResponseWriter, r *http.Request) {
	var req dietLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.MealName) == "" {
		writeError(w, http.StatusBadRequest, "meal_name is required")
		return
	}
	if req.Calories < 0 {
		writeError(w, http.StatusBadRequest, "calories must be non-negative")
		return
	}

	log := &domain.DietLog{
		TenantID:  middleware.UserTenantIDFromContext(r.Context()),
		UserID:    middleware.UserIDFromContext(r.Context()),
		MealName:  strings.TrimSpace(req.MealName),
		FoodItems: req.FoodItems,
		Calories:  req.Calories,
		ProteinG:  req.ProteinG,
		CarbsG:    req.CarbsG,
		FatG:      req.FatG,
		LoggedAt:  time.Now().UTC(),
	}

	id, err := h.metrics.CreateDietLog(log)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to log meal")
		return
	}
	log.ID = id

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "meal logged successfully",
		"log":     log,
	})
}

func (h *DietHandler) MyLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.metrics.ListDietLogsByUser(middleware.UserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list diet logs")
		return
	}
	if logs == nil {
		logs = []domain.DietLog{}
	}
	writeJSON(w, http.StatusOK, logs)
}

func (h *DietHandler) WeeklySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reporting.WeeklyDietSummary(middleware.UserIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err, "failed to generate diet summary")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

type generateDietPlanRequest struct {
	UserID int64 `json:"user_id"`
	service.DietPlanOptions
}

// GeneratePlan is a B2B client action: the tenant requests a fresh plan
// for one of its users. External-service failures surface to the caller
// here, unlike in the weekly batch.
func (h *DietHandler) GeneratePlan(w http.ResponseWriter, r *http.Request) {
	tenant := middleware.TenantFromContext(r.Context())

	var req generateDietPlanRequest
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

	plan, err := h.planner.GeneratePlan(r.Context(), user, req.DietPlanOptions, 0)
	if err != nil {
		writeServiceError(w, err, "failed to generate diet plan")
		return
	}

	writeJSON(w, http.StatusOK, plan)
}

func (h *DietHandler) LatestPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := h.plans.GetLatestByUserAndKind(
		middleware.UserIDFromContext(r.Context()), domain.PlanKindDiet)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load diet plan")
		return
	}
	if plan == nil {
		writeError(w, http.StatusNotFound, "no diet plan found for this user")
		return
	}
	writeJSON(w, http.StatusOK, plan)
}
