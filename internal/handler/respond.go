package handler

import (
	"encoding/json"
	"net/http"
)

// genericFailureBody is the fixed plain-text body for every internal failure.
// No error detail ever crosses the boundary to the client.
const genericFailureBody = "Sorry, something went wrong"

// internalError logs the real cause and answers with the generic 500.
func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.ErrorContext(r.Context(), "request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	http.Error(w, genericFailureBody, http.StatusInternalServerError)
}

// badRequest rejects a request whose query parameters are missing or
// malformed, before any resolver runs.
func badRequest(w http.ResponseWriter, message string) {
	http.Error(w, message, http.StatusBadRequest)
}

// writeJSON writes v as the JSON response body with a 200 status.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
