package api

import (
	"encoding/json"
	"net/http"
)

// jsonResponse sends a standard JSON response
func jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// errorResponse sends a standard Error response
func errorResponse(w http.ResponseWriter, status int, msg string) {
	jsonResponse(w, status, StandardResponse{
		Success: false,
		Error:   msg,
	})
}

// okResponse wraps a payload in the success envelope
func okResponse(w http.ResponseWriter, data interface{}) {
	jsonResponse(w, http.StatusOK, StandardResponse{
		Success: true,
		Data:    data,
	})
}

// decodeBody parses a JSON request body, replying with a 400 on failure.
// Returns false when the handler should bail out.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}
