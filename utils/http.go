package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// WriteErrorMessage writes a {"error": ...} body with the given status.
func WriteErrorMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"error": message})
}

// WriteError translates a service error into the HTTP error taxonomy.
// Validation messages are shown to the caller verbatim; everything else gets
// a short generic message so upstream details never leak.
func WriteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		WriteErrorMessage(w, http.StatusBadRequest, strings.TrimPrefix(err.Error(), "validation: "))
	case errors.Is(err, ErrUnauthorized):
		WriteErrorMessage(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, ErrForbidden):
		WriteErrorMessage(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, ErrNotFound):
		WriteErrorMessage(w, http.StatusNotFound, "Not found")
	default:
		WriteErrorMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}
