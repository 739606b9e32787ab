package handler

import "net/http"

type HealthHandler struct {
	appName string
	appEnv  string
}

func NewHealthHandler(appName, appEnv string) *HealthHandler {
	return &HealthHandler{appName: appName, appEnv: appEnv}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":      h.appName + " backend up",
		"environment": h.appEnv,
	})
}
