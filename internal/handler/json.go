package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]any{"error": message})
}

// respondErrorDetail reports an upstream failure: a generic message for
// the client plus the underlying error for diagnostics.
func respondErrorDetail(w http.ResponseWriter, status int, message, detail string) {
	respondJSON(w, status, map[string]any{"error": message, "detail": detail})
}
