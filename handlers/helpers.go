package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"libraryhub/auth"
	"libraryhub/repository"
)

// ApiResponse is the JSON envelope used for mutations and errors.
type ApiResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps sentinel errors to their status codes and writes the
// failure envelope. msg overrides the error text when non-empty.
func writeError(w http.ResponseWriter, err error, msg string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, repository.ErrConflict), errors.Is(err, repository.ErrDuplicate):
		status = http.StatusBadRequest
	case errors.Is(err, auth.ErrUnauthenticated):
		status = http.StatusUnauthorized
		w.Header().Set("WWW-Authenticate", "Bearer")
	case errors.Is(err, auth.ErrForbidden):
		status = http.StatusForbidden
	}

	if msg == "" {
		msg = err.Error()
	}
	writeJSON(w, status, ApiResponse{Success: false, Message: msg})
}
