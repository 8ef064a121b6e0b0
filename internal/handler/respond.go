package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fittrackhq/fittrack-backend/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps service-layer error kinds to transport statuses.
// The fallback message is used for unclassified errors so internal detail
// never leaks to clients.
func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, "invalid input")
	case errors.Is(err, domain.ErrExternalService):
		writeError(w, http.StatusBadGateway, "generative service unavailable")
	case errors.Is(err, domain.ErrPersistence):
		writeError(w, http.StatusInternalServerError, fallback)
	default:
		writeError(w, http.StatusInternalServerError, fallback)
	}
}
