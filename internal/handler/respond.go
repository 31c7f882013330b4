package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Admintools08/BP/internal/apperror"
	"github.com/Admintools08/BP/internal/ctxkeys"
	"github.com/Admintools08/BP/internal/service"
	"github.com/Admintools08/BP/internal/storage"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	err := dec.Decode(v)
	if err != nil {
		return apperror.Validation("body", "malformed JSON: "+err.Error())
	}
	return nil
}

// writeError maps the error taxonomy onto HTTP status codes.
// Persistence and unknown failures are logged and reported without detail.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validationErr *apperror.ValidationError
		notFoundErr   *apperror.NotFoundError
		authzErr      *apperror.AuthorizationError
		transitionErr *apperror.InvalidTransitionError
	)

	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: validationErr.Message, Field: validationErr.Field})
	case errors.As(err, &notFoundErr):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: notFoundErr.Error()})
	case errors.As(err, &authzErr):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: authzErr.Error()})
	case errors.As(err, &transitionErr):
		writeJSON(w, http.StatusConflict, errorResponse{Error: transitionErr.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case errors.Is(err, storage.ErrStorageDisabled):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
	default:
		slog.Error("request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"user_id", ctxkeys.UserID(r.Context()),
			"request_id", ctxkeys.RequestID(r.Context()),
		)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
