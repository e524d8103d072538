package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/julianstephens/moodatlas/internal/logger"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode JSON response", "error", err)
	}
}

func respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	reqID := middleware.GetReqID(r.Context())
	logger.Debug("Sending error response",
		"status", status,
		"message", message,
		"request_id", reqID,
		"path", r.URL.Path,
	)
	respondJSON(w, status, ErrorResponse{Error: message, RequestID: reqID})
}

// respondInternalError logs err in full and sends a generic message so
// storage details never reach the client.
func respondInternalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	logger.Error(msg, "error", err, "request_id", middleware.GetReqID(r.Context()), "path", r.URL.Path)
	respondError(w, r, http.StatusInternalServerError, "internal server error")
}
