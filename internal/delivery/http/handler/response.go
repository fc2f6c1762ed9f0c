package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// Response represents a standard API response
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// SendJSON sends a JSON response
func SendJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// SendSuccess sends a successful JSON response
func SendSuccess(w http.ResponseWriter, message string, data any) {
	SendJSON(w, http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// SendCreated sends a 201 JSON response
func SendCreated(w http.ResponseWriter, message string, data any) {
	SendJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// SendError sends an error JSON response
func SendError(w http.ResponseWriter, message string, statusCode int) {
	SendJSON(w, statusCode, Response{
		Success: false,
		Message: message,
	})
}

// Health handles GET /health
func Health(w http.ResponseWriter, r *http.Request) {
	SendSuccess(w, "", map[string]string{"status": "ok"})
}

// pathID parses a numeric route parameter.
func pathID(r *http.Request, name string) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
