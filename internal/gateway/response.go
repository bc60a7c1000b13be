package gateway

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

const (
	msgTitleRequired   = "Title is required"
	msgInvalidJSON     = "Invalid JSON body"
	msgBodyTooLarge    = "Request body too large"
	msgNotFound        = "Not found"
	msgInternalFailure = "Internal server error"
)

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Message: message})
}
