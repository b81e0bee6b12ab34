package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hashicorp/go-hclog"
	"github.com/shopkart/commerce-api/internal/auth"
	"github.com/shopkart/commerce-api/internal/domain"
)

// envelope is the response body every handler writes: a success flag, a
// human-readable message and, on success, the affected entity or list.
type envelope struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeSuccess(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, envelope{Status: true, Message: message, Data: data})
}

// writeError maps a domain error onto the HTTP status taxonomy and
// writes the failure envelope. Unexpected errors surface as 500 with the
// underlying detail and get logged.
func writeError(w http.ResponseWriter, logger hclog.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", "error", err)
	}
	writeJSON(w, status, envelope{Status: false, Message: err.Error()})
}

func statusFor(err error) int {
	var fieldErr *domain.ValidationError
	var fieldErrs domain.ValidationErrors
	switch {
	case errors.As(err, &fieldErr), errors.As(err, &fieldErrs):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrCartNotFound),
		errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateTitle),
		errors.Is(err, domain.ErrDuplicateSize),
		errors.Is(err, domain.ErrDuplicateEmail),
		errors.Is(err, domain.ErrOrderNotCancellable):
		return http.StatusConflict
	case errors.Is(err, domain.ErrProductDeleted),
		errors.Is(err, domain.ErrCartNotOwned):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrWrongPassword),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
