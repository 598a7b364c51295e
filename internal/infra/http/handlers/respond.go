package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"leadflow/internal/usecase"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError maps the usecase error taxonomy onto HTTP statuses. Expected
// domain outcomes keep their message; faults collapse into a generic 500.
func writeError(w http.ResponseWriter, err error) {
	var domainErr *usecase.DomainError
	if errors.As(err, &domainErr) {
		writeJSON(w, statusForCode(domainErr.Code), errorResponse{Error: domainErr.Message})
		return
	}

	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}

func statusForCode(code string) int {
	switch code {
	case usecase.CodeLeadNotFound:
		return http.StatusNotFound
	case usecase.CodeValidation, usecase.CodeInvalidStage:
		return http.StatusBadRequest
	case usecase.CodeScoringFailed, usecase.CodeMailFailed:
		return http.StatusBadGateway
	default:
		return http.StatusUnprocessableEntity
	}
}
