package api

import (
	"net/http"
)

// ==========================================
// SERVICE OPERATIONS
// ==========================================

// HandleHealth - GET /health
func (a *API) HandleHealth(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]string{"status": "alive"})
}
