package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/adharshSciPy/DenStack-Superadmin/components/console"
	"github.com/adharshSciPy/DenStack-Superadmin/components/console/commands"
)

// ErrNotConfigured is returned when an executor method has no backing
// command or query.
var ErrNotConfigured = errors.New("httpapi: operation not configured")

// StatusFor maps console errors onto HTTP status codes.
func StatusFor(err error) int {
	var authFailure *console.AuthFailure
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &authFailure), errors.Is(err, console.ErrUnauthorized), errors.Is(err, console.ErrNoSession):
		return http.StatusUnauthorized
	case errors.Is(err, console.ErrUnknownSection), errors.Is(err, console.ErrInvalidCriteria), errors.Is(err, commands.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, console.ErrSessionDisposed), errors.Is(err, ErrNotConfigured):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Message is the error text shown to clients. Login failures carry the
// collaborator's message.
func Message(err error) string {
	var authFailure *console.AuthFailure
	if errors.As(err, &authFailure) {
		return authFailure.UserMessage()
	}
	return err.Error()
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": Message(err)})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
