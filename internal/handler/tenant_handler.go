package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/fittrackhq/fittrack-backend/internal/repository"
)

// TenantHandler manages B2B client onboarding: registration issues the
// API key that authenticates all of the tenant's subsequent requests, and
// a password-verified rotation endpoint replaces a leaked key.
type TenantHandler struct {
	repo *repository.TenantRepository
}

func NewTenantHandler(repo *repository.TenantRepository) *TenantHandler {
	return &TenantHandler{repo: repo}
}

type tenantRegisterRequest struct {
	CompanyName string `json:"company_name"`
	Password    string `json:"password"`
}

func (h *TenantHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req tenantRegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	companyName := strings.TrimSpace(req.CompanyName)
	if companyName == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "company_name and password are required")
		return
	}
	if len(req.Password) < 8 {
		writeError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	apiKey := uuid.NewString()
	id, err := h.repo.Create(companyName, apiKey, string(passwordHash))
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			writeError(w, http.StatusConflict, "company name already registered")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create tenant")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"tenant_id": id,
		"api_key":   apiKey,
	})
}

type rotateKeyRequest struct {
	CompanyName string `json:"company_name"`
	Password    string `json:"password"`
}

// RotateKey replaces the tenant's API key after verifying the admin
// password. The old key stops working immediately.
func (h *TenantHandler) RotateKey(w http.ResponseWriter, r *http.Request) {
	var req rotateKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CompanyName == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "company_name and password are required")
		return
	}

	tenant, err := h.repo.GetByCompanyName(strings.TrimSpace(req.CompanyName))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to rotate key")
		return
	}
	if tenant == nil {
		writeError(w, http.StatusUnauthorized, "invalid company name or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(tenant.PasswordHash), []byte(req.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, "invalid company name or password")
		return
	}

	apiKey := uuid.NewString()
	if err := h.repo.UpdateAPIKey(tenant.ID, apiKey); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to rotate key")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"api_key": apiKey})
}
