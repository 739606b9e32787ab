package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"
)

// AdminSecretHeader carries the shared secret on admin-guarded routes.
const AdminSecretHeader = "x-admin-secret"

// RequireAdmin compares the request's shared-secret header against the
// configured value. A missing server-side secret is a misconfiguration
// and is reported as a server error, distinct from the client
// authentication failure. Fails closed either way.
func RequireAdmin(adminSecret string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if adminSecret == "" {
				slog.Error("admin secret not configured, rejecting admin request", "path", r.URL.Path)
				writeJSONError(w, http.StatusInternalServerError, "Server misconfiguration: admin secret not set")
				return
			}

			secret := r.Header.Get(AdminSecretHeader)
			if secret == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(adminSecret)) != 1 {
				writeJSONError(w, http.StatusUnauthorized, "Unauthorized: invalid admin secret")
				return
			}

			next.ServeHTTP(w, r)
		}
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
