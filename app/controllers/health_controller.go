package controllers

import "net/http"

// Health handles GET /api/health. Liveness only.
func Health(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "griddle backend is running",
	})
}
