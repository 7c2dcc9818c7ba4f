package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/secondchance/apiserver/internal/services"
	"github.com/secondchance/apiserver/internal/store"
)

type contextKey string

const contextUserIDKey contextKey = "userID"

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

func userIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(contextUserIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeServiceError is the single boundary translator from error kinds to
// HTTP responses. Keeping the mapping in one place guarantees that
// responses for the same kind are byte-identical regardless of cause; in
// particular, invalid-credentials replies never reveal whether the email
// exists. Anything unrecognized becomes a 500 with no internal detail.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrDuplicateEmail):
		writeError(w, http.StatusBadRequest, "email id already exists")
	case errors.Is(err, services.ErrInvalidCredentials):
		writeError(w, http.StatusBadRequest, "invalid credentials")
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// Healthz reports process liveness.
func Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
