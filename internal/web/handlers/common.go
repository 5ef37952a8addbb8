package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pageatlas/page-atlas/internal/grid"
)

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// statusForError maps the grid error taxonomy onto HTTP statuses.
func statusForError(err error) int {
	switch {
	case errors.Is(err, grid.ErrInvalidInput), errors.Is(err, grid.ErrDegenerateLayout):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// HealthCheck handles the health check endpoint.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}
