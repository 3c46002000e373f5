package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/avolkov/tourneyadmin/internal/common"
)

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

// writeError translates a service error to a transport status. Anything not
// in the sentinel taxonomy is reported as a bare 500: internal detail never
// reaches the caller.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, common.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: common.ErrInvalidCredentials.Error()})
	case errors.Is(err, common.ErrUnauthenticated),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		// Expired and tampered tokens are deliberately indistinguishable
		// here: both mean "please log in again".
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
	case errors.Is(err, common.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "forbidden"})
	case errors.Is(err, common.ErrAlreadyInitialized):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: common.ErrAlreadyInitialized.Error()})
	case errors.Is(err, common.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: common.ErrNotFound.Error()})
	case errors.Is(err, common.ErrDuplicateUsername):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: common.ErrDuplicateUsername.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// decodeBody parses a JSON request body into dst, mapping malformed input to
// a validation error.
func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid request body", common.ErrValidation)
	}
	return nil
}
