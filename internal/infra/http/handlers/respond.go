package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/xavierca1/leadmail/internal/logger"
	"github.com/xavierca1/leadmail/internal/usecase"
)

type ErrorResponse struct {
	Message string                    `json:"message"`
	Code    string                    `json:"code,omitempty"`
	Errors  []usecase.ValidationError `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Message: message, Code: code})
}

// writeUseCaseError maps a use case error to a status code. Validation
// failures carry their field list; technical failures are logged and their
// cause is not exposed.
func writeUseCaseError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error, fallback string) {
	var verrs usecase.ValidationErrors
	if errors.As(err, &verrs) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request data",
			Code:    usecase.CodeValidation,
			Errors:  verrs,
		})
		return
	}

	var de *usecase.DomainError
	if errors.As(err, &de) {
		writeErrorResponse(w, domainStatus(de.Code), de.Code, de.Message)
		return
	}

	logger.WithRequestID(r.Context(), log).Error(fallback, zap.Error(err))

	var te *usecase.TechnicalError
	if errors.As(err, &te) {
		writeErrorResponse(w, http.StatusInternalServerError, te.Code, te.Message)
		return
	}
	writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
}

func domainStatus(code string) int {
	switch code {
	case usecase.CodeEmailNotFound:
		return http.StatusNotFound
	case usecase.CodeMailNotEnabled:
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadRequest
	}
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// emailID reads the {id} route parameter. Only positive integers are valid.
func emailID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
