package middleware

import (
	"encoding/json"
	"net/http"
)

// writeError sends a JSON error body. Middleware responses use the same
// shape as the handlers so clients parse one format.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
