package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/fittrackhq/fittrack-backend/internal/domain"
	"github.com/fittrackhq/fittrack-backend/internal/middleware"
	"github.com/fittrackhq/fittrack-backend/internal/repository"
	"github.com/fittrackhq/fittrack-backend/internal/service"
)

type ProgressHandler struct {
	users     *repository.UserRepository
	metrics   *repository.MetricRepository
	reporting *service.ReportingService
}

func NewProgressHandler(
	users *repository.UserRepository,
	metrics *repository.MetricRepository,
	reporting *service.ReportingService,
) *ProgressHandler {
	return &ProgressHandler{users: users, metrics: metrics, reporting: reporting}
}

func (h *ProgressHandler) WeeklyReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.reporting.WeeklyReport(middleware.UserIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err, "failed to generate report")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

type weightLogRequest struct {
	WeightKG float64 `json:"weight_kg"`
}

func (h *ProgressHandler) LogWeight(w http.ResponseWriter, r *http.Request) {
	var req weightLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.WeightKG <= 0 {
		writeError(w, http.StatusBadRequest, "weight_kg must be positive")
		return
	}

	userID := middleware.UserIDFromContext(r.Context())
	entry := &domain.WeightEntry{
		TenantID: middleware.UserTenantIDFromContext(r.Context()),
		UserID:   userID,
		WeightKG: req.WeightKG,
		LoggedAt: time.Now().UTC(),
	}

	id, err := h.metrics.CreateWeightEntry(entry)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to log weight")
		return
	}
	entry.ID = id

	// The profile carries the current weight used by the milestone rule;
	// keep it in sync with the newest entry.
	if err := h.users.UpdateWeight(userID, req.WeightKG); err != nil {
		log.Printf("[progress] failed to sync profile weight for user %d: %v", userID, err)
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "weight logged successfully",
		"entry":   entry,
	})
}

type measurementLogRequest struct {
	WaistCM *float64 `json:"waist_cm"`
	ChestCM *float64 `json:"chest_cm"`
	ArmsCM  *float64 `json:"arms_cm"`
	HipsCM  *float64 `json:"hips_cm"`
}

func (h *ProgressHandler) LogMeasurements(w http.ResponseWriter, r *http.Request) {
	var req measurementLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	for _, v := range []*float64{req.WaistCM, req.ChestCM, req.ArmsCM, req.HipsCM} {
		if v != nil && *v < 0 {
			writeError(w, http.StatusBadRequest, "measurements must be non-negative")
			return
		}
	}

	entry := &domain.MeasurementLog{
		TenantID: middleware.UserTenantIDFromContext(r.Context()),
		UserID:   middleware.UserIDFromContext(r.Context()),
		WaistCM:  req.WaistCM,
		ChestCM:  req.ChestCM,
		ArmsCM:   req.ArmsCM,
		HipsCM:   req.HipsCM,
		LoggedAt: time.Now().UTC(),
	}

	id, err := h.metrics.CreateMeasurementLog(entry)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to log measurements")
		return
	}
	entry.ID = id

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "measurements logged successfully",
		"log":     entry,
	})
}

func (h *ProgressHandler) MyWeightHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := h.metrics.ListWeightEntriesByUser(middleware.UserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list weight entries")
		return
	}
	if entries == nil {
		entries = []domain.WeightEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}
